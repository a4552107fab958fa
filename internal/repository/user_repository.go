// Package repository persists the domain models as JSON blobs through the
// storage capability. Fixed collection names keep the layout identical across
// the memory, SQLite and Postgres backends.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"reelhub/internal/storage"
	"reelhub/pkg/models"
)

// Collection names. One logical collection per §persisted structure.
const (
	CollectionUsers       = "users"
	CollectionUsernames   = "usernames" // username -> user id index
	CollectionStats       = "stats"
	CollectionUnlocked    = "unlocked_achievements"
	CollectionLeaderboard = "leaderboard"
	CollectionFavorites   = "favorites" // sub-scoped per user, see FavoritesCollection
)

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// UserRepository handles account persistence.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}

type userRepository struct {
	store storage.Store
}

// NewUserRepository creates a storage-backed user repository.
func NewUserRepository(store storage.Store) UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	blob, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}
	if err := r.store.Set(ctx, CollectionUsers, user.ID, blob); err != nil {
		return fmt.Errorf("failed to store user: %w", err)
	}
	if err := r.store.Set(ctx, CollectionUsernames, user.Username, []byte(user.ID)); err != nil {
		return fmt.Errorf("failed to index username: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	blob, err := r.store.Get(ctx, CollectionUsers, id)
	if err == storage.ErrNotFound {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var user models.User
	if err := json.Unmarshal(blob, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	id, err := r.store.Get(ctx, CollectionUsernames, username)
	if err == storage.ErrNotFound {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve username: %w", err)
	}
	return r.GetByID(ctx, string(id))
}

func (r *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := r.store.Get(ctx, CollectionUsernames, username)
	if err == storage.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return true, nil
}
