package core

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reelhub/internal/reddit"
	"reelhub/pkg/config"
)

const listingFixture = `{"data":{"children":[
	{"data":{"id":"v1","title":"clip one","subreddit":"videos","ups":6000,"is_video":true,
		"media":{"reddit_video":{"fallback_url":"https://v.redd.it/v1/DASH_720.mp4"}}}},
	{"data":{"id":"t1","title":"text post","subreddit":"videos","ups":10}}
],"after":"t3_next"}}`

func newTestListing(t *testing.T, subreddits []string) (ListingService, *string) {
	t.Helper()

	var requestedPath string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Write([]byte(listingFixture))
	}))
	t.Cleanup(upstream.Close)

	client := reddit.NewClient(config.RedditConfig{
		BaseURL:    upstream.URL,
		RatePerSec: 100,
		RateBurst:  10,
	}, nil)
	return NewListingService(client, subreddits), &requestedPath
}

func TestSubredditsReturnsCopy(t *testing.T) {
	svc, _ := newTestListing(t, []string{"videos", "gifs"})

	subs := svc.Subreddits()
	require.Equal(t, []string{"videos", "gifs"}, subs)

	subs[0] = "mutated"
	assert.Equal(t, []string{"videos", "gifs"}, svc.Subreddits())
}

func TestListingDefaultsToFirstSubreddit(t *testing.T) {
	svc, requestedPath := newTestListing(t, []string{"videos", "gifs"})

	body, err := svc.Listing(context.Background(), "", "")
	require.NoError(t, err)
	assert.NotEmpty(t, body)
	assert.Equal(t, "/r/videos/hot.json", *requestedPath)

	_, err = svc.Listing(context.Background(), "gifs", "")
	require.NoError(t, err)
	assert.Equal(t, "/r/gifs/hot.json", *requestedPath)
}

func TestListingFailsWithoutSubreddits(t *testing.T) {
	svc, _ := newTestListing(t, nil)

	_, err := svc.Listing(context.Background(), "", "")
	assert.Error(t, err)

	_, err = svc.RandomReels(context.Background())
	assert.Error(t, err)
}

func TestRandomReelsExtractsVideos(t *testing.T) {
	svc, _ := newTestListing(t, []string{"videos"})

	reels, err := svc.RandomReels(context.Background())
	require.NoError(t, err)
	require.Len(t, reels, 1)
	assert.Equal(t, "v1", reels[0].ID)
	assert.Equal(t, "https://v.redd.it/v1/DASH_720.mp4", reels[0].URL)
}
