package core

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"

	"reelhub/internal/reddit"
	"reelhub/pkg/models"
)

// ListingService re-exposes the Reddit listing API: subreddit catalog,
// native-shape listing passthrough, and the shuffled random reels feed.
type ListingService interface {
	Subreddits() []string
	Listing(ctx context.Context, subreddit, after string) ([]byte, error)
	RandomReels(ctx context.Context) ([]models.MediaItem, error)
}

type listingService struct {
	client     *reddit.Client
	subreddits []string
}

// NewListingService creates a listing service over the upstream client.
func NewListingService(client *reddit.Client, subreddits []string) ListingService {
	return &listingService{client: client, subreddits: subreddits}
}

// Subreddits returns the configured subreddit list.
func (s *listingService) Subreddits() []string {
	out := make([]string, len(s.subreddits))
	copy(out, s.subreddits)
	return out
}

// Listing returns one raw listing page. The Reddit JSON shape passes through
// unmodified; consumers only depend on data.children[].data and data.after.
func (s *listingService) Listing(ctx context.Context, subreddit, after string) ([]byte, error) {
	if subreddit == "" {
		if len(s.subreddits) == 0 {
			return nil, fmt.Errorf("no subreddits configured")
		}
		subreddit = s.subreddits[0]
	}
	return s.client.HotListing(ctx, subreddit, after)
}

// RandomReels fetches a random configured subreddit's hot page, extracts the
// playable videos and shuffles them.
func (s *listingService) RandomReels(ctx context.Context) ([]models.MediaItem, error) {
	if len(s.subreddits) == 0 {
		return nil, fmt.Errorf("no subreddits configured")
	}
	subreddit := s.subreddits[rand.Intn(len(s.subreddits))]

	body, err := s.client.HotListing(ctx, subreddit, "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reels listing: %w", err)
	}

	var listing models.Listing
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, fmt.Errorf("failed to parse reels listing: %w", err)
	}

	reels := ExtractVideos(&listing)
	Shuffle(reels)
	return reels, nil
}
