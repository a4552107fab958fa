package core

import (
	"context"
	"fmt"
	"sort"
	"time"

	"reelhub/internal/repository"
	"reelhub/pkg/models"
	"reelhub/pkg/utils"
)

// LeaderboardService writes completed-challenge records into the append-only
// log and serves ranked, filtered views over it.
type LeaderboardService interface {
	Add(ctx context.Context, entry *models.LeaderboardEntry) (*models.LeaderboardEntry, error)
	Top(ctx context.Context, timeFilter, challengeFilter string, limit int) (*models.LeaderboardResponse, error)
}

type leaderboardService struct {
	repo repository.LeaderboardRepository
	now  func() time.Time
}

// NewLeaderboardService creates the leaderboard over its repository. nowFn
// overrides the clock; pass nil for time.Now.
func NewLeaderboardService(repo repository.LeaderboardRepository, nowFn func() time.Time) LeaderboardService {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &leaderboardService{repo: repo, now: nowFn}
}

// Add appends an entry, assigning its id and server timestamp. Entries are
// immutable once written.
func (s *leaderboardService) Add(ctx context.Context, entry *models.LeaderboardEntry) (*models.LeaderboardEntry, error) {
	if entry.ChallengeType == "" {
		return nil, fmt.Errorf("challenge type is required")
	}
	if entry.Duration < 0 {
		return nil, fmt.Errorf("duration must be non-negative")
	}

	entry.ID = utils.GenerateEntryID()
	entry.Timestamp = s.now()

	if err := s.repo.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to append leaderboard entry: %w", err)
	}
	return entry, nil
}

// Top returns entries matching the time window and challenge filter, sorted
// by duration descending. Equal durations rank the earlier timestamp first.
func (s *leaderboardService) Top(ctx context.Context, timeFilter, challengeFilter string, limit int) (*models.LeaderboardResponse, error) {
	if limit <= 0 || limit > models.LeaderboardFetchLimit {
		limit = models.LeaderboardDisplayLimit
	}
	if timeFilter == "" {
		timeFilter = models.WindowAll
	}
	if challengeFilter == "" {
		challengeFilter = "all"
	}

	entries, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}

	var cutoff time.Time
	switch timeFilter {
	case models.WindowWeek:
		cutoff = s.now().Add(-7 * 24 * time.Hour)
	case models.WindowMonth:
		cutoff = s.now().Add(-30 * 24 * time.Hour)
	}

	filtered := entries[:0]
	for _, entry := range entries {
		if !cutoff.IsZero() && entry.Timestamp.Before(cutoff) {
			continue
		}
		if challengeFilter != "all" && entry.ChallengeType != challengeFilter {
			continue
		}
		filtered = append(filtered, entry)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].Duration != filtered[j].Duration {
			return filtered[i].Duration > filtered[j].Duration
		}
		return filtered[i].Timestamp.Before(filtered[j].Timestamp)
	})

	total := len(filtered)
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}

	ranked := make([]models.RankedEntry, 0, len(filtered))
	for i, entry := range filtered {
		ranked = append(ranked, models.RankedEntry{LeaderboardEntry: entry, Rank: i + 1})
	}

	return &models.LeaderboardResponse{
		Entries:    ranked,
		TimeFilter: timeFilter,
		Challenge:  challengeFilter,
		Total:      total,
	}, nil
}
