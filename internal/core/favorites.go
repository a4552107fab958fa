package core

import (
	"context"
	"errors"
	"time"

	"reelhub/internal/repository"
	"reelhub/pkg/models"
)

// ErrInvalidFavorite is returned for favorites without an item id.
var ErrInvalidFavorite = errors.New("favorite requires an item id")

// FavoritesService is the keyed add/remove/query of liked items. Writes are
// optimistic from the caller's perspective; the backing store is eventually
// consistent with the UI.
type FavoritesService interface {
	Add(ctx context.Context, userID string, fav *models.Favorite) error
	Remove(ctx context.Context, userID, itemID string) error
	List(ctx context.Context, userID string) ([]models.Favorite, error)
}

type favoritesService struct {
	repo repository.FavoritesRepository
}

// NewFavoritesService creates the favorites service.
func NewFavoritesService(repo repository.FavoritesRepository) FavoritesService {
	return &favoritesService{repo: repo}
}

func (s *favoritesService) Add(ctx context.Context, userID string, fav *models.Favorite) error {
	if fav == nil || fav.ID == "" {
		return ErrInvalidFavorite
	}
	if fav.AddedAt.IsZero() {
		fav.AddedAt = time.Now()
	}
	return s.repo.Add(ctx, userID, fav)
}

func (s *favoritesService) Remove(ctx context.Context, userID, itemID string) error {
	if itemID == "" {
		return ErrInvalidFavorite
	}
	return s.repo.Remove(ctx, userID, itemID)
}

func (s *favoritesService) List(ctx context.Context, userID string) ([]models.Favorite, error) {
	return s.repo.List(ctx, userID)
}
