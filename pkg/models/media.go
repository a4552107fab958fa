// Package models - Media and Listing Types
// Reddit-native listing shapes plus the extracted media items
// the galleries and reels feed consume.
package models

// Heat is a coarse popularity classification derived from upvote counts.
type Heat string

const (
	HeatNuclear Heat = "nuclear"
	HeatFire    Heat = "fire"
	HeatSpicy   Heat = "spicy"
	HeatNone    Heat = ""
)

// Heat classification thresholds (upvotes)
const (
	NuclearThreshold = 5000
	FireThreshold    = 1000
	SpicyThreshold   = 500
)

// HeatForUps classifies a post's upvote count into a heat band.
func HeatForUps(ups int) Heat {
	switch {
	case ups > NuclearThreshold:
		return HeatNuclear
	case ups > FireThreshold:
		return HeatFire
	case ups > SpicyThreshold:
		return HeatSpicy
	default:
		return HeatNone
	}
}

// Listing mirrors the Reddit listing envelope. Only the fields the proxy
// inspects are declared; everything else passes through untouched as raw JSON.
type Listing struct {
	Data ListingData `json:"data"`
}

// ListingData holds one page of posts plus the pagination cursor.
type ListingData struct {
	Children []ListingChild `json:"children"`
	After    string         `json:"after"`
}

// ListingChild wraps a single post.
type ListingChild struct {
	Data Post `json:"data"`
}

// Post carries the post metadata the media extractor inspects.
type Post struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Subreddit  string   `json:"subreddit"`
	Ups        int      `json:"ups"`
	CreatedUTC float64  `json:"created_utc"`
	IsVideo    bool     `json:"is_video"`
	Media      *Media   `json:"media,omitempty"`
	Preview    *Preview `json:"preview,omitempty"`
}

// Media holds the hosted-video block of a post.
type Media struct {
	RedditVideo *RedditVideo `json:"reddit_video,omitempty"`
}

// RedditVideo is the playable video descriptor.
type RedditVideo struct {
	FallbackURL string `json:"fallback_url"`
	Duration    int    `json:"duration"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

// Preview holds preview images and the crossposted video preview.
type Preview struct {
	Images             []PreviewImage `json:"images"`
	RedditVideoPreview *RedditVideo   `json:"reddit_video_preview,omitempty"`
}

// PreviewImage is a single preview image variant set.
type PreviewImage struct {
	Source ImageSource `json:"source"`
}

// ImageSource is the full-size preview image.
type ImageSource struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// MediaItem is an extracted, playable/viewable item served to the frontend.
type MediaItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Subreddit string `json:"subreddit"`
	Ups       int    `json:"ups"`
	Heat      Heat   `json:"heat,omitempty"`
}

// SubredditsResponse is the configured subreddit list.
type SubredditsResponse struct {
	Subreddits []string `json:"subreddits"`
}

// ReelsResponse is a shuffled batch of random video items.
type ReelsResponse struct {
	Reels []MediaItem `json:"reels"`
}
