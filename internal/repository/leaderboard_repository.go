package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"reelhub/internal/storage"
	"reelhub/pkg/models"
)

// LeaderboardRepository is the append-only log of completed-challenge
// records. There are no update or delete operations.
type LeaderboardRepository interface {
	Append(ctx context.Context, entry *models.LeaderboardEntry) error
	All(ctx context.Context) ([]models.LeaderboardEntry, error)
}

type leaderboardRepository struct {
	store storage.Store
}

// NewLeaderboardRepository creates a storage-backed leaderboard log.
func NewLeaderboardRepository(store storage.Store) LeaderboardRepository {
	return &leaderboardRepository{store: store}
}

func (r *leaderboardRepository) Append(ctx context.Context, entry *models.LeaderboardEntry) error {
	blob, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal leaderboard entry: %w", err)
	}
	if err := r.store.Set(ctx, CollectionLeaderboard, entry.ID, blob); err != nil {
		return fmt.Errorf("failed to append leaderboard entry: %w", err)
	}
	return nil
}

func (r *leaderboardRepository) All(ctx context.Context) ([]models.LeaderboardEntry, error) {
	blobs, err := r.store.List(ctx, CollectionLeaderboard)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaderboard entries: %w", err)
	}

	entries := make([]models.LeaderboardEntry, 0, len(blobs))
	for _, blob := range blobs {
		var entry models.LeaderboardEntry
		if err := json.Unmarshal(blob, &entry); err != nil {
			continue // skip corrupt rows, the log must stay readable
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
