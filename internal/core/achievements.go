package core

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"reelhub/internal/repository"
	"reelhub/pkg/logger"
	"reelhub/pkg/models"
	"reelhub/pkg/utils"
)

// XP grants
const (
	XPPerNuclearWatch   = 10
	XPPerFireWatch      = 5
	XPChallengeBase     = 100
	XPPerCompletedMin   = 10
	XPPerStreakDay      = 50
	LevelXPUnit         = 500
	NewlyUnlockedWindow = 5 * time.Second
)

// ErrUnknownAchievement is returned for ids not in the catalog.
var ErrUnknownAchievement = errors.New("unknown achievement")

// challengeStatKeys maps a challenge-type id to its completion-count stat.
var challengeStatKeys = map[string]string{
	models.TypeTryNotToCum:  models.StatTryNotToCumCompleted,
	models.TypeEnduranceRun: models.StatEnduranceRunCompleted,
	models.TypeRoulette:     models.StatRouletteCompleted,
	models.TypeTenMinute:    models.StatTenMinuteCompleted,
	models.TypeRapidFire:    models.StatRapidFireCompleted,
	models.TypeNoControl:    models.StatNoControlCompleted,
}

// AchievementService is the achievement and stats engine: pure state
// transforms over the per-user stats record, with a reactive unlock check
// after every mutation. Persistence failures are logged and swallowed - a
// failed persist leaves the engine usable but not durable.
type AchievementService interface {
	RecordVideoWatch(ctx context.Context, userID string, heat models.Heat) (*models.GamificationSummary, error)
	RecordChallengeComplete(ctx context.Context, userID, challengeType string, durationSeconds int) (*models.GamificationSummary, error)
	RecordContinuousWatch(ctx context.Context, userID string, minutes int) (*models.GamificationSummary, error)
	IncrementStat(ctx context.Context, userID, stat string, amount int) (*models.GamificationSummary, error)
	Summary(ctx context.Context, userID string) (*models.GamificationSummary, error)
	Achievements(ctx context.Context, userID string) ([]models.AchievementStatus, error)
	GetProgress(ctx context.Context, userID, achievementID string) (float64, error)
	ClearNewlyUnlocked(userID string)
	Reset(ctx context.Context, userID string) error
}

type achievementService struct {
	repo repository.StatsRepository
	now  func() time.Time

	mu    sync.Mutex
	fresh map[string]newlyUnlockedBatch
}

// newlyUnlockedBatch is the transient "just unlocked" list surfaced to the
// UI; it expires after the display window so a stale toast never sticks.
type newlyUnlockedBatch struct {
	ids       []string
	expiresAt time.Time
}

// NewAchievementService creates the engine over a stats repository. nowFn
// overrides the clock; pass nil for time.Now.
func NewAchievementService(repo repository.StatsRepository, nowFn func() time.Time) AchievementService {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &achievementService{
		repo:  repo,
		now:   nowFn,
		fresh: make(map[string]newlyUnlockedBatch),
	}
}

// RecordVideoWatch increments the matching heat counter plus a small fixed
// XP grant.
func (s *achievementService) RecordVideoWatch(ctx context.Context, userID string, heat models.Heat) (*models.GamificationSummary, error) {
	return s.mutate(ctx, userID, func(stats *models.StatsRecord) {
		switch heat {
		case models.HeatNuclear:
			stats.Add(models.StatNuclearVideosWatched, 1)
			stats.Add(models.StatXP, XPPerNuclearWatch)
		case models.HeatFire:
			stats.Add(models.StatFireVideosWatched, 1)
			stats.Add(models.StatXP, XPPerFireWatch)
		case models.HeatSpicy:
			stats.Add(models.StatSpicyVideosWatched, 1)
		}
	})
}

// RecordChallengeComplete applies the full completion accounting: XP with
// duration and streak bonuses, total and per-type counts, same-day
// consecutive tracking, the exact-yesterday daily streak, the bounded
// challenge-date list, and the perfect-days run.
func (s *achievementService) RecordChallengeComplete(ctx context.Context, userID, challengeType string, durationSeconds int) (*models.GamificationSummary, error) {
	now := s.now()
	today := utils.DayKey(now)
	yesterday := utils.PrevDayKey(now)

	return s.mutate(ctx, userID, func(stats *models.StatsRecord) {
		xp := XPChallengeBase
		if durationSeconds > 0 {
			xp += (durationSeconds / 60) * XPPerCompletedMin
		}

		stats.Add(models.StatChallengesCompleted, 1)
		if key, ok := challengeStatKeys[challengeType]; ok {
			stats.Add(key, 1)
		}

		// Consecutive challenges: same-day completions chain, anything else
		// restarts the chain; consecutiveChallenges is the running maximum.
		if stats.LastChallengeDate == today {
			stats.Add(models.StatCurrentConsecutive, 1)
		} else {
			stats.Set(models.StatCurrentConsecutive, 1)
		}
		if stats.Get(models.StatCurrentConsecutive) > stats.Get(models.StatConsecutiveChallenges) {
			stats.Set(models.StatConsecutiveChallenges, stats.Get(models.StatCurrentConsecutive))
		}

		// Daily streak continues only when the previous completion was
		// exactly yesterday. The streak bonus applies whenever the streak
		// starts or advances, not on same-day repeats.
		switch {
		case stats.LastChallengeDate == yesterday:
			stats.Add(models.StatDailyStreak, 1)
			xp += stats.Get(models.StatDailyStreak) * XPPerStreakDay
		case stats.LastChallengeDate != today:
			stats.Set(models.StatDailyStreak, 1)
			xp += XPPerStreakDay
		}

		stats.LastChallengeDate = today

		// Bounded date log feeding the perfect-days run.
		if !containsDay(stats.ChallengeDates, today) {
			stats.ChallengeDates = append(stats.ChallengeDates, today)
		}
		if len(stats.ChallengeDates) > 30 {
			stats.ChallengeDates = stats.ChallengeDates[len(stats.ChallengeDates)-30:]
		}
		stats.Set(models.StatPerfectDays, perfectDayRun(stats.ChallengeDates, now))

		// Endurance high-water-mark, in whole minutes.
		if challengeType == models.TypeEnduranceRun {
			minutes := durationSeconds / 60
			if minutes > stats.Get(models.StatEnduranceRunMinutes) {
				stats.Set(models.StatEnduranceRunMinutes, minutes)
			}
		}

		stats.Add(models.StatXP, xp)
	})
}

// RecordContinuousWatch raises the continuous-watch high-water-mark.
func (s *achievementService) RecordContinuousWatch(ctx context.Context, userID string, minutes int) (*models.GamificationSummary, error) {
	return s.mutate(ctx, userID, func(stats *models.StatsRecord) {
		if minutes > stats.Get(models.StatContinuousWatchMinutes) {
			stats.Set(models.StatContinuousWatchMinutes, minutes)
		}
	})
}

// IncrementStat bumps an arbitrary counter (e.g. roulette rounds).
func (s *achievementService) IncrementStat(ctx context.Context, userID, stat string, amount int) (*models.GamificationSummary, error) {
	if amount == 0 {
		amount = 1
	}
	return s.mutate(ctx, userID, func(stats *models.StatsRecord) {
		stats.Add(stat, amount)
	})
}

// mutate loads the stats record, applies fn, runs the unlock check and
// persists. The in-memory result is returned even when persistence fails.
func (s *achievementService) mutate(ctx context.Context, userID string, fn func(*models.StatsRecord)) (*models.GamificationSummary, error) {
	stats, err := s.repo.GetStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	unlocked, err := s.repo.GetUnlocked(ctx, userID)
	if err != nil {
		return nil, err
	}

	fn(stats)

	newIDs := s.checkUnlocks(stats, &unlocked)
	if len(newIDs) > 0 {
		s.mu.Lock()
		s.fresh[userID] = newlyUnlockedBatch{ids: newIDs, expiresAt: s.now().Add(NewlyUnlockedWindow)}
		s.mu.Unlock()
		if err := s.repo.SaveUnlocked(ctx, userID, unlocked); err != nil {
			logger.Storage("set", repository.CollectionUnlocked, userID, err)
		}
	}
	if err := s.repo.SaveStats(ctx, userID, stats); err != nil {
		logger.Storage("set", repository.CollectionStats, userID, err)
	}

	return s.summaryFor(userID, stats, unlocked), nil
}

// checkUnlocks appends every newly passing achievement to the unlocked set
// (append-only, never revoked) and grants the summed XP rewards.
func (s *achievementService) checkUnlocks(stats *models.StatsRecord, unlocked *[]string) []string {
	have := make(map[string]bool, len(*unlocked))
	for _, id := range *unlocked {
		have[id] = true
	}

	var newIDs []string
	xpGain := 0
	for _, id := range achievementOrder {
		if have[id] {
			continue
		}
		a := AchievementCatalog[id]
		if a.Unlocked(stats) {
			*unlocked = append(*unlocked, id)
			newIDs = append(newIDs, id)
			xpGain += a.XP
		}
	}
	if xpGain > 0 {
		stats.Add(models.StatXP, xpGain)
	}
	return newIDs
}

// Summary returns the engine read-model.
func (s *achievementService) Summary(ctx context.Context, userID string) (*models.GamificationSummary, error) {
	stats, err := s.repo.GetStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	unlocked, err := s.repo.GetUnlocked(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.summaryFor(userID, stats, unlocked), nil
}

func (s *achievementService) summaryFor(userID string, stats *models.StatsRecord, unlocked []string) *models.GamificationSummary {
	xp := stats.XP()
	return &models.GamificationSummary{
		Stats:         stats,
		Unlocked:      unlocked,
		NewlyUnlocked: s.newlyUnlocked(userID),
		Level:         Level(xp),
		LevelProgress: LevelProgress(xp),
	}
}

func (s *achievementService) newlyUnlocked(userID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch, ok := s.fresh[userID]
	if !ok {
		return nil
	}
	if s.now().After(batch.expiresAt) {
		delete(s.fresh, userID)
		return nil
	}
	return batch.ids
}

// ClearNewlyUnlocked drops the transient batch once the UI has shown it.
func (s *achievementService) ClearNewlyUnlocked(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.fresh, userID)
}

// Achievements returns the catalog decorated with unlock state and display
// progress.
func (s *achievementService) Achievements(ctx context.Context, userID string) ([]models.AchievementStatus, error) {
	stats, err := s.repo.GetStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	unlocked, err := s.repo.GetUnlocked(ctx, userID)
	if err != nil {
		return nil, err
	}

	have := make(map[string]bool, len(unlocked))
	for _, id := range unlocked {
		have[id] = true
	}

	out := make([]models.AchievementStatus, 0, len(achievementOrder))
	for _, id := range achievementOrder {
		a := AchievementCatalog[id]
		out = append(out, models.AchievementStatus{
			Achievement: a,
			IsUnlocked:  have[id] || a.Unlocked(stats),
			Progress:    progressFor(a, stats),
		})
	}
	return out, nil
}

// GetProgress returns display progress in [0, 100]. Unlocked achievements
// report exactly 100. Multi-criterion achievements report the unweighted
// average of each criterion's capped ratio - a display simplification, the
// unlock predicate itself stays strict AND.
func (s *achievementService) GetProgress(ctx context.Context, userID, achievementID string) (float64, error) {
	a, ok := AchievementCatalog[achievementID]
	if !ok {
		return 0, ErrUnknownAchievement
	}
	stats, err := s.repo.GetStats(ctx, userID)
	if err != nil {
		return 0, err
	}
	return progressFor(a, stats), nil
}

func progressFor(a models.Achievement, stats *models.StatsRecord) float64 {
	if a.Unlocked(stats) {
		return 100
	}
	if len(a.Criteria) == 0 {
		return 100
	}

	total := 0.0
	for key, required := range a.Criteria {
		ratio := float64(stats.Get(key)) / float64(required)
		if ratio > 1 {
			ratio = 1
		}
		total += ratio
	}
	return total / float64(len(a.Criteria)) * 100
}

// Reset wipes the stats record and unlocked set.
func (s *achievementService) Reset(ctx context.Context, userID string) error {
	s.ClearNewlyUnlocked(userID)
	return s.repo.Reset(ctx, userID)
}

// Level derives the level from accumulated XP.
func Level(xp int) int {
	if xp <= 0 {
		return 1
	}
	return int(1 + math.Sqrt(float64(xp)/LevelXPUnit))
}

// LevelProgress returns percent progress between the current and next level
// thresholds, clamped to [0, 100].
func LevelProgress(xp int) float64 {
	level := Level(xp)
	currentFloor := float64(LevelXPUnit) * float64(level-1) * float64(level-1)
	nextFloor := float64(LevelXPUnit) * float64(level) * float64(level)

	progress := (float64(xp) - currentFloor) / (nextFloor - currentFloor) * 100
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

// perfectDayRun counts how many consecutive calendar days ending today
// appear in the date log.
func perfectDayRun(dates []string, now time.Time) int {
	set := make(map[string]bool, len(dates))
	for _, d := range dates {
		set[d] = true
	}

	run := 0
	for i := 0; ; i++ {
		if !set[utils.DaysAgoKey(now, i)] {
			break
		}
		run++
	}
	return run
}

func containsDay(dates []string, day string) bool {
	for _, d := range dates {
		if d == day {
			return true
		}
	}
	return false
}
