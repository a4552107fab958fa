package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reelhub/internal/core"
	"reelhub/internal/reddit"
	"reelhub/internal/repository"
	"reelhub/internal/storage"
	"reelhub/pkg/config"
	"reelhub/pkg/models"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	store := storage.NewMemoryStore()
	t.Cleanup(func() { store.Close() })

	authSvc := core.NewAuthService(repository.NewUserRepository(store), "test-secret", "reelhub-test", time.Hour)
	listingSvc := core.NewListingService(reddit.NewClient(config.RedditConfig{}, nil), []string{"videos"})
	favoritesSvc := core.NewFavoritesService(repository.NewFavoritesRepository(store))
	challengeSvc := core.NewChallengeService(0)
	t.Cleanup(challengeSvc.Shutdown)
	achieveSvc := core.NewAchievementService(repository.NewStatsRepository(store), nil)
	boardSvc := core.NewLeaderboardService(repository.NewLeaderboardRepository(store), nil)

	return NewServer(&config.Config{}, authSvc, listingSvc, favoritesSvc, challengeSvc, achieveSvc, boardSvc, store)
}

func doJSON(t *testing.T, srv *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder, out any) models.APIResponse {
	t.Helper()

	var envelope models.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	if out != nil && envelope.Data != nil {
		raw, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, out))
	}
	return envelope
}

func registerAndLogin(t *testing.T, srv *Server, username string) string {
	t.Helper()

	w := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", models.RegisterRequest{
		Username: username, Password: "password123",
	})
	require.Equal(t, 201, w.Code)

	w = doJSON(t, srv, http.MethodPost, "/api/auth/login", "", models.LoginRequest{
		Username: username, Password: "password123",
	})
	require.Equal(t, 200, w.Code)

	var resp models.LoginResponse
	decodeEnvelope(t, w, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/health", "", nil)
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestRegisterConflictAndBadLogin(t *testing.T) {
	srv := newTestServer(t)
	registerAndLogin(t, srv, "alice")

	w := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", models.RegisterRequest{
		Username: "alice", Password: "password123",
	})
	assert.Equal(t, 409, w.Code)

	w = doJSON(t, srv, http.MethodPost, "/api/auth/login", "", models.LoginRequest{
		Username: "alice", Password: "wrong-password",
	})
	assert.Equal(t, 401, w.Code)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/api/favorites", "/api/gamification/summary", "/api/challenges/state"} {
		w := doJSON(t, srv, http.MethodGet, path, "", nil)
		assert.Equal(t, 401, w.Code, path)
	}

	w := doJSON(t, srv, http.MethodGet, "/api/favorites", "not-a-token", nil)
	assert.Equal(t, 401, w.Code)
}

func TestChallengeLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv, "alice")

	// Idle until started.
	w := doJSON(t, srv, http.MethodGet, "/api/challenges/state", token, nil)
	require.Equal(t, 200, w.Code)
	var status models.ChallengeStatus
	decodeEnvelope(t, w, &status)
	assert.Equal(t, models.ChallengeIdle, status.State)

	w = doJSON(t, srv, http.MethodPost, "/api/challenges/start", token, map[string]any{
		"type": models.TypeTryNotToCum, "duration": 300,
	})
	require.Equal(t, 201, w.Code)
	decodeEnvelope(t, w, &status)
	assert.Equal(t, models.ChallengeActive, status.State)
	assert.Equal(t, 300, status.Duration)

	// Starting again conflicts.
	w = doJSON(t, srv, http.MethodPost, "/api/challenges/start", token, map[string]any{
		"type": models.TypeTryNotToCum, "duration": 300,
	})
	assert.Equal(t, 409, w.Code)

	w = doJSON(t, srv, http.MethodPost, "/api/challenges/video", token, map[string]any{"heat": "nuclear"})
	require.Equal(t, 200, w.Code)
	decodeEnvelope(t, w, &status)
	assert.Equal(t, 1, status.VideosWatched)

	w = doJSON(t, srv, http.MethodPost, "/api/challenges/complete", token, nil)
	require.Equal(t, 200, w.Code)
	var snapshot models.ChallengeSnapshot
	decodeEnvelope(t, w, &snapshot)
	assert.Equal(t, models.ChallengeComplete, snapshot.State)
	assert.Equal(t, 1, snapshot.VideosWatched)

	w = doJSON(t, srv, http.MethodPost, "/api/challenges/end", token, nil)
	assert.Equal(t, 200, w.Code)
}

func TestUnknownChallengeTypeOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv, "alice")

	w := doJSON(t, srv, http.MethodPost, "/api/challenges/start", token, map[string]any{"type": "nope"})
	assert.Equal(t, 400, w.Code)
}

func TestGamificationFlowOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv, "alice")

	w := doJSON(t, srv, http.MethodPost, "/api/gamification/challenge-complete", token, map[string]any{
		"challenge_type": models.TypeTryNotToCum, "duration": 0,
	})
	require.Equal(t, 200, w.Code)
	var summary models.GamificationSummary
	decodeEnvelope(t, w, &summary)
	assert.Equal(t, 200, summary.Stats.XP())
	assert.Contains(t, summary.NewlyUnlocked, "first_steps")

	w = doJSON(t, srv, http.MethodGet, "/api/gamification/summary", token, nil)
	require.Equal(t, 200, w.Code)
	decodeEnvelope(t, w, &summary)
	assert.Equal(t, 200, summary.Stats.XP())

	w = doJSON(t, srv, http.MethodGet, "/api/gamification/achievements", token, nil)
	require.Equal(t, 200, w.Code)
	var achievements []models.AchievementStatus
	decodeEnvelope(t, w, &achievements)
	assert.Len(t, achievements, len(core.AchievementCatalog))

	w = doJSON(t, srv, http.MethodGet, "/api/gamification/achievements/first_steps/progress", token, nil)
	require.Equal(t, 200, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/api/gamification/achievements/bogus/progress", token, nil)
	assert.Equal(t, 404, w.Code)
}

func TestLeaderboardOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv, "alice")

	w := doJSON(t, srv, http.MethodPost, "/api/leaderboard", token, map[string]any{
		"challenge_type": models.TypeEnduranceRun, "duration": 420, "videos_watched": 7,
	})
	require.Equal(t, 201, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/api/leaderboard?window=all", "", nil)
	require.Equal(t, 200, w.Code)
	var board models.LeaderboardResponse
	decodeEnvelope(t, w, &board)
	require.Len(t, board.Entries, 1)
	assert.Equal(t, "alice", board.Entries[0].Username)
	assert.Equal(t, 420, board.Entries[0].Duration)
	assert.Equal(t, 1, board.Entries[0].Rank)
}

func TestFavoritesOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv, "alice")

	w := doJSON(t, srv, http.MethodPost, "/api/favorites", token, models.Favorite{
		ID: "abc", Title: "clip", Subreddit: "videos",
	})
	require.Equal(t, 201, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/api/favorites", token, nil)
	require.Equal(t, 200, w.Code)
	var favorites []models.Favorite
	decodeEnvelope(t, w, &favorites)
	require.Len(t, favorites, 1)
	assert.Equal(t, "abc", favorites[0].ID)

	w = doJSON(t, srv, http.MethodDelete, "/api/favorites/abc", token, nil)
	require.Equal(t, 200, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/api/favorites", token, nil)
	require.Equal(t, 200, w.Code)
	favorites = nil
	decodeEnvelope(t, w, &favorites)
	assert.Empty(t, favorites)
}

func TestSubredditsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/api/subreddits", "", nil)
	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "videos")
}
