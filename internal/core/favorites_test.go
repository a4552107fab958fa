package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reelhub/internal/repository"
	"reelhub/internal/storage"
	"reelhub/pkg/models"
)

func newTestFavorites(t *testing.T) FavoritesService {
	t.Helper()
	store := storage.NewMemoryStore()
	t.Cleanup(func() { store.Close() })
	return NewFavoritesService(repository.NewFavoritesRepository(store))
}

func TestFavoritesAddAndList(t *testing.T) {
	svc := newTestFavorites(t)
	ctx := context.Background()

	err := svc.Add(ctx, "u1", &models.Favorite{ID: "abc", Title: "clip", Subreddit: "videos"})
	require.NoError(t, err)

	favorites, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "abc", favorites[0].ID)
	assert.False(t, favorites[0].AddedAt.IsZero())
}

func TestFavoritesRejectsMissingID(t *testing.T) {
	svc := newTestFavorites(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Add(ctx, "u1", nil), ErrInvalidFavorite)
	assert.ErrorIs(t, svc.Add(ctx, "u1", &models.Favorite{Title: "no id"}), ErrInvalidFavorite)
	assert.ErrorIs(t, svc.Remove(ctx, "u1", ""), ErrInvalidFavorite)
}

func TestFavoritesAddIsIdempotentPerItem(t *testing.T) {
	svc := newTestFavorites(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "u1", &models.Favorite{ID: "abc", Title: "first"}))
	require.NoError(t, svc.Add(ctx, "u1", &models.Favorite{ID: "abc", Title: "second"}))

	favorites, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "second", favorites[0].Title)
}

func TestFavoritesRemove(t *testing.T) {
	svc := newTestFavorites(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "u1", &models.Favorite{ID: "abc"}))
	require.NoError(t, svc.Remove(ctx, "u1", "abc"))

	favorites, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, favorites)

	// Removing an item that was never saved is fine.
	assert.NoError(t, svc.Remove(ctx, "u1", "ghost"))
}

func TestFavoritesAreScopedPerUser(t *testing.T) {
	svc := newTestFavorites(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "u1", &models.Favorite{ID: "abc"}))

	other, err := svc.List(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestFavoritesListNewestFirst(t *testing.T) {
	svc := newTestFavorites(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	require.NoError(t, svc.Add(ctx, "u1", &models.Favorite{ID: "old", AddedAt: base}))
	require.NoError(t, svc.Add(ctx, "u1", &models.Favorite{ID: "new", AddedAt: base.Add(time.Hour)}))

	favorites, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, favorites, 2)
	assert.Equal(t, "new", favorites[0].ID)
	assert.Equal(t, "old", favorites[1].ID)
}
