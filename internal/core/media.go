// Package core - Core Business Logic
// Media extraction: filters a Reddit listing page into playable video or
// image items by inspecting post metadata.
package core

import (
	"math/rand"
	"strings"

	"reelhub/pkg/models"
)

// ExtractVideos returns the playable video items of a listing page, in page
// order, deduplicated by post id.
func ExtractVideos(listing *models.Listing) []models.MediaItem {
	seen := make(map[string]bool)
	var items []models.MediaItem

	for _, child := range listing.Data.Children {
		post := child.Data
		if post.ID == "" || seen[post.ID] {
			continue
		}

		videoURL := videoURLFor(&post)
		if videoURL == "" {
			continue
		}
		seen[post.ID] = true

		items = append(items, models.MediaItem{
			ID:        post.ID,
			Title:     post.Title,
			URL:       videoURL,
			Thumbnail: thumbnailFor(&post),
			Subreddit: post.Subreddit,
			Ups:       post.Ups,
			Heat:      models.HeatForUps(post.Ups),
		})
	}
	return items
}

// ExtractImages returns the viewable image items of a listing page.
func ExtractImages(listing *models.Listing) []models.MediaItem {
	seen := make(map[string]bool)
	var items []models.MediaItem

	for _, child := range listing.Data.Children {
		post := child.Data
		if post.ID == "" || seen[post.ID] || post.IsVideo {
			continue
		}

		imageURL := thumbnailFor(&post)
		if imageURL == "" {
			continue
		}
		seen[post.ID] = true

		items = append(items, models.MediaItem{
			ID:        post.ID,
			Title:     post.Title,
			URL:       imageURL,
			Subreddit: post.Subreddit,
			Ups:       post.Ups,
			Heat:      models.HeatForUps(post.Ups),
		})
	}
	return items
}

// videoURLFor picks the playable URL: hosted video first, then the
// crossposted video preview.
func videoURLFor(post *models.Post) string {
	if post.IsVideo && post.Media != nil && post.Media.RedditVideo != nil {
		return post.Media.RedditVideo.FallbackURL
	}
	if post.Preview != nil && post.Preview.RedditVideoPreview != nil {
		return post.Preview.RedditVideoPreview.FallbackURL
	}
	return ""
}

// thumbnailFor returns the source preview image URL. Reddit HTML-escapes
// ampersands in preview URLs.
func thumbnailFor(post *models.Post) string {
	if post.Preview == nil || len(post.Preview.Images) == 0 {
		return ""
	}
	return strings.ReplaceAll(post.Preview.Images[0].Source.URL, "&amp;", "&")
}

// Shuffle randomizes item order in place (Fisher-Yates).
func Shuffle(items []models.MediaItem) {
	rand.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}
