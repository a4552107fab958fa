package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"reelhub/internal/storage"
	"reelhub/pkg/models"
)

// StatsRepository persists per-user stats records and unlocked achievement
// IDs. Missing or malformed persisted state loads as zero defaults rather
// than failing - a corrupt blob must never take the engine down.
type StatsRepository interface {
	GetStats(ctx context.Context, userID string) (*models.StatsRecord, error)
	SaveStats(ctx context.Context, userID string, stats *models.StatsRecord) error
	GetUnlocked(ctx context.Context, userID string) ([]string, error)
	SaveUnlocked(ctx context.Context, userID string, ids []string) error
	Reset(ctx context.Context, userID string) error
}

type statsRepository struct {
	store storage.Store
}

// NewStatsRepository creates a storage-backed stats repository.
func NewStatsRepository(store storage.Store) StatsRepository {
	return &statsRepository{store: store}
}

func (r *statsRepository) GetStats(ctx context.Context, userID string) (*models.StatsRecord, error) {
	blob, err := r.store.Get(ctx, CollectionStats, userID)
	if err == storage.ErrNotFound {
		return models.NewStatsRecord(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}

	var stats models.StatsRecord
	if err := json.Unmarshal(blob, &stats); err != nil {
		// Treat a corrupt blob as no prior state.
		return models.NewStatsRecord(), nil
	}
	stats.Normalize()
	return &stats, nil
}

func (r *statsRepository) SaveStats(ctx context.Context, userID string, stats *models.StatsRecord) error {
	blob, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	if err := r.store.Set(ctx, CollectionStats, userID, blob); err != nil {
		return fmt.Errorf("failed to store stats: %w", err)
	}
	return nil
}

func (r *statsRepository) GetUnlocked(ctx context.Context, userID string) ([]string, error) {
	blob, err := r.store.Get(ctx, CollectionUnlocked, userID)
	if err == storage.ErrNotFound {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load unlocked achievements: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(blob, &ids); err != nil {
		return []string{}, nil
	}
	return ids, nil
}

func (r *statsRepository) SaveUnlocked(ctx context.Context, userID string, ids []string) error {
	blob, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to marshal unlocked achievements: %w", err)
	}
	if err := r.store.Set(ctx, CollectionUnlocked, userID, blob); err != nil {
		return fmt.Errorf("failed to store unlocked achievements: %w", err)
	}
	return nil
}

func (r *statsRepository) Reset(ctx context.Context, userID string) error {
	if err := r.store.Delete(ctx, CollectionStats, userID); err != nil {
		return fmt.Errorf("failed to reset stats: %w", err)
	}
	if err := r.store.Delete(ctx, CollectionUnlocked, userID); err != nil {
		return fmt.Errorf("failed to reset unlocked achievements: %w", err)
	}
	return nil
}
