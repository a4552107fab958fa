package reddit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reelhub/pkg/config"
	"reelhub/pkg/models"
)

const testListingBody = `{"data":{"children":[{"data":{"id":"abc","title":"hi","ups":42}}],"after":"t3_next"}}`

func TestHotListingAnonymous(t *testing.T) {
	var gotPath, gotQuery, gotAgent string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte(testListingBody))
	}))
	defer upstream.Close()

	client := NewClient(config.RedditConfig{
		BaseURL:    upstream.URL,
		UserAgent:  "reelhub-test/1.0",
		PageSize:   25,
		RatePerSec: 100,
		RateBurst:  10,
	}, nil)

	body, err := client.HotListing(context.Background(), "videos", "")
	require.NoError(t, err)
	assert.Equal(t, "/r/videos/hot.json", gotPath)
	assert.Contains(t, gotQuery, "limit=25")
	assert.Contains(t, gotQuery, "raw_json=1")
	assert.Equal(t, "reelhub-test/1.0", gotAgent)

	var listing models.Listing
	require.NoError(t, json.Unmarshal(body, &listing))
	require.Len(t, listing.Data.Children, 1)
	assert.Equal(t, "abc", listing.Data.Children[0].Data.ID)
	assert.Equal(t, "t3_next", listing.Data.After)
}

func TestHotListingPassesAfterCursor(t *testing.T) {
	var gotQuery string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(testListingBody))
	}))
	defer upstream.Close()

	client := NewClient(config.RedditConfig{
		BaseURL:    upstream.URL,
		RatePerSec: 100,
		RateBurst:  10,
	}, nil)

	_, err := client.HotListing(context.Background(), "videos", "t3_cursor")
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "after=t3_cursor")
}

func TestHotListingUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	client := NewClient(config.RedditConfig{
		BaseURL:    upstream.URL,
		RatePerSec: 100,
		RateBurst:  10,
	}, nil)

	_, err := client.HotListing(context.Background(), "videos", "")
	assert.ErrorContains(t, err, "502")
}

func TestOAuthTokenFetchedOnceAcrossCalls(t *testing.T) {
	var tokenCalls, listingCalls int32

	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&tokenCalls, 1)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "cid", user)
		assert.Equal(t, "secret", pass)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))

		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-123",
			"expires_in":   3600,
		})
	}))
	defer tokenSrv.Close()

	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&listingCalls, 1)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.Write([]byte(testListingBody))
	}))
	defer apiSrv.Close()

	client := NewClient(config.RedditConfig{
		OAuthBaseURL: apiSrv.URL,
		TokenURL:     tokenSrv.URL,
		ClientID:     "cid",
		ClientSecret: "secret",
		RatePerSec:   100,
		RateBurst:    10,
	}, nil)

	ctx := context.Background()
	_, err := client.HotListing(ctx, "videos", "")
	require.NoError(t, err)
	_, err = client.HotListing(ctx, "videos", "t3_next")
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&tokenCalls))
	assert.Equal(t, int32(2), atomic.LoadInt32(&listingCalls))
}

func TestOAuthTokenErrorSurfaces(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer tokenSrv.Close()

	client := NewClient(config.RedditConfig{
		OAuthBaseURL: "http://127.0.0.1:0",
		TokenURL:     tokenSrv.URL,
		ClientID:     "cid",
		ClientSecret: "bad",
		RatePerSec:   100,
		RateBurst:    10,
	}, nil)

	_, err := client.HotListing(context.Background(), "videos", "")
	assert.ErrorContains(t, err, "token endpoint returned 401")
}
