package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"reelhub/internal/storage"
	"reelhub/pkg/models"
)

// FavoritesCollection returns the per-user favorites collection name, so
// change subscriptions are scoped to one user's list.
func FavoritesCollection(userID string) string {
	return fmt.Sprintf("%s/%s", CollectionFavorites, userID)
}

// FavoritesRepository handles keyed add/remove/query of saved items.
type FavoritesRepository interface {
	Add(ctx context.Context, userID string, fav *models.Favorite) error
	Remove(ctx context.Context, userID, itemID string) error
	List(ctx context.Context, userID string) ([]models.Favorite, error)
}

type favoritesRepository struct {
	store storage.Store
}

// NewFavoritesRepository creates a storage-backed favorites repository.
func NewFavoritesRepository(store storage.Store) FavoritesRepository {
	return &favoritesRepository{store: store}
}

func (r *favoritesRepository) Add(ctx context.Context, userID string, fav *models.Favorite) error {
	blob, err := json.Marshal(fav)
	if err != nil {
		return fmt.Errorf("failed to marshal favorite: %w", err)
	}
	if err := r.store.Set(ctx, FavoritesCollection(userID), fav.ID, blob); err != nil {
		return fmt.Errorf("failed to store favorite: %w", err)
	}
	return nil
}

func (r *favoritesRepository) Remove(ctx context.Context, userID, itemID string) error {
	if err := r.store.Delete(ctx, FavoritesCollection(userID), itemID); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

func (r *favoritesRepository) List(ctx context.Context, userID string) ([]models.Favorite, error) {
	blobs, err := r.store.List(ctx, FavoritesCollection(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	favorites := make([]models.Favorite, 0, len(blobs))
	for _, blob := range blobs {
		var fav models.Favorite
		if err := json.Unmarshal(blob, &fav); err != nil {
			continue
		}
		favorites = append(favorites, fav)
	}

	// Newest first, the way the saved list renders.
	sort.Slice(favorites, func(i, j int) bool {
		return favorites[i].AddedAt.After(favorites[j].AddedAt)
	})
	return favorites, nil
}
