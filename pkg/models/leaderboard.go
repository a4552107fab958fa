// Package models - Leaderboard
package models

import "time"

// Leaderboard time-window filters
const (
	WindowAll   = "all"
	WindowWeek  = "week"
	WindowMonth = "month"
)

// Leaderboard page sizes
const (
	LeaderboardDisplayLimit = 10
	LeaderboardFetchLimit   = 50
)

// LeaderboardEntry is one completed-challenge record. Entries are immutable
// once written; the leaderboard is a pure event log.
type LeaderboardEntry struct {
	ID            string    `json:"id"`
	Username      string    `json:"username,omitempty"`
	ChallengeType string    `json:"challenge_type"`
	Duration      int       `json:"duration"` // seconds survived
	VideosWatched int       `json:"videos_watched"`
	Intensity     float64   `json:"intensity"`
	Timestamp     time.Time `json:"timestamp"`
}

// RankedEntry decorates an entry with its display rank.
type RankedEntry struct {
	LeaderboardEntry
	Rank int `json:"rank"`
}

// LeaderboardResponse is the ranked, filtered read-model.
type LeaderboardResponse struct {
	Entries    []RankedEntry `json:"entries"`
	TimeFilter string        `json:"time_filter"`
	Challenge  string        `json:"challenge_filter"`
	Total      int           `json:"total"`
}
