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

func newTestEngine(t *testing.T) (AchievementService, *time.Time) {
	t.Helper()
	store := storage.NewMemoryStore()
	t.Cleanup(func() { store.Close() })

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := NewAchievementService(repository.NewStatsRepository(store), func() time.Time { return now })
	return svc, &now
}

func TestFirstChallengeCompletion(t *testing.T) {
	svc, _ := newTestEngine(t)
	ctx := context.Background()

	summary, err := svc.RecordChallengeComplete(ctx, "u1", models.TypeTryNotToCum, 0)
	require.NoError(t, err)

	// Base 100 + streak start 50 + First Steps bronze reward 50.
	assert.Equal(t, 200, summary.Stats.XP())
	assert.Equal(t, 1, summary.Stats.Get(models.StatChallengesCompleted))
	assert.Equal(t, 1, summary.Stats.Get(models.StatTryNotToCumCompleted))
	assert.Equal(t, 1, summary.Stats.Get(models.StatDailyStreak))
	assert.Equal(t, []string{AchFirstSteps}, summary.Unlocked)
	assert.Equal(t, []string{AchFirstSteps}, summary.NewlyUnlocked)
	assert.Equal(t, 1, summary.Level)
}

func TestDurationXP(t *testing.T) {
	svc, _ := newTestEngine(t)
	ctx := context.Background()

	// 10 minutes: base 100 + 10*10 duration + 50 streak + 50 First Steps.
	summary, err := svc.RecordChallengeComplete(ctx, "u1", models.TypeRoulette, 600)
	require.NoError(t, err)
	assert.Equal(t, 300, summary.Stats.XP())
}

func TestDailyStreakAdvancesOnConsecutiveDays(t *testing.T) {
	svc, now := newTestEngine(t)
	ctx := context.Background()

	first, err := svc.RecordChallengeComplete(ctx, "u1", models.TypeTryNotToCum, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Stats.Get(models.StatDailyStreak))

	*now = now.Add(24 * time.Hour)
	second, err := svc.RecordChallengeComplete(ctx, "u1", models.TypeTryNotToCum, 0)
	require.NoError(t, err)

	// Streak advanced to 2 with a 2*50 bonus on top of the base 100.
	assert.Equal(t, 2, second.Stats.Get(models.StatDailyStreak))
	assert.Equal(t, first.Stats.XP()+200, second.Stats.XP())
}

func TestDailyStreakResetsAfterGap(t *testing.T) {
	svc, now := newTestEngine(t)
	ctx := context.Background()

	_, err := svc.RecordChallengeComplete(ctx, "u1", models.TypeTryNotToCum, 0)
	require.NoError(t, err)

	*now = now.Add(72 * time.Hour)
	summary, err := svc.RecordChallengeComplete(ctx, "u1", models.TypeTryNotToCum, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Stats.Get(models.StatDailyStreak))
}

func TestSameDayRepeatKeepsStreak(t *testing.T) {
	svc, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := svc.RecordChallengeComplete(ctx, "u1", models.TypeTryNotToCum, 0)
	require.NoError(t, err)
	summary, err := svc.RecordChallengeComplete(ctx, "u1", models.TypeTryNotToCum, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Stats.Get(models.StatDailyStreak))
	assert.Equal(t, 2, summary.Stats.Get(models.StatCurrentConsecutive))
}

func TestConsecutiveChallengesUnlockEnduranceMaster(t *testing.T) {
	svc, _ := newTestEngine(t)
	ctx := context.Background()

	var summary *models.GamificationSummary
	var err error
	for i := 0; i < 5; i++ {
		summary, err = svc.RecordChallengeComplete(ctx, "u1", models.TypeTryNotToCum, 0)
		require.NoError(t, err)
	}

	assert.Equal(t, 5, summary.Stats.Get(models.StatConsecutiveChallenges))
	assert.Contains(t, summary.Unlocked, AchEnduranceMaster)
}

func TestNuclearWatchesUnlockHeatSeeker(t *testing.T) {
	svc, _ := newTestEngine(t)
	ctx := context.Background()

	var summary *models.GamificationSummary
	var err error
	for i := 0; i < 25; i++ {
		summary, err = svc.RecordVideoWatch(ctx, "u1", models.HeatNuclear)
		require.NoError(t, err)
	}

	// 25*10 watch XP + 50 bronze reward.
	assert.Equal(t, 25, summary.Stats.Get(models.StatNuclearVideosWatched))
	assert.Contains(t, summary.Unlocked, AchHeatSeeker)
	assert.Equal(t, 300, summary.Stats.XP())
}

func TestSpicyWatchGrantsNoXP(t *testing.T) {
	svc, _ := newTestEngine(t)
	ctx := context.Background()

	summary, err := svc.RecordVideoWatch(ctx, "u1", models.HeatSpicy)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Stats.Get(models.StatSpicyVideosWatched))
	assert.Equal(t, 0, summary.Stats.XP())
}

func TestEnduranceRunMinutesHighWaterMark(t *testing.T) {
	svc, _ := newTestEngine(t)
	ctx := context.Background()

	summary, err := svc.RecordChallengeComplete(ctx, "u1", models.TypeEnduranceRun, 1800)
	require.NoError(t, err)
	assert.Equal(t, 30, summary.Stats.Get(models.StatEnduranceRunMinutes))
	assert.Contains(t, summary.Unlocked, AchUltimateEndurance)

	// A shorter run never lowers the mark.
	summary, err = svc.RecordChallengeComplete(ctx, "u1", models.TypeEnduranceRun, 300)
	require.NoError(t, err)
	assert.Equal(t, 30, summary.Stats.Get(models.StatEnduranceRunMinutes))
}

func TestContinuousWatchHighWaterMark(t *testing.T) {
	svc, _ := newTestEngine(t)
	ctx := context.Background()

	summary, err := svc.RecordContinuousWatch(ctx, "u1", 30)
	require.NoError(t, err)
	assert.Equal(t, 30, summary.Stats.Get(models.StatContinuousWatchMinutes))

	summary, err = svc.RecordContinuousWatch(ctx, "u1", 20)
	require.NoError(t, err)
	assert.Equal(t, 30, summary.Stats.Get(models.StatContinuousWatchMinutes))

	summary, err = svc.RecordContinuousWatch(ctx, "u1", 60)
	require.NoError(t, err)
	assert.Contains(t, summary.Unlocked, AchMarathonRunner)
}

func TestUnlocksAreNeverRevoked(t *testing.T) {
	svc, _ := newTestEngine(t)
	ctx := context.Background()

	summary, err := svc.RecordContinuousWatch(ctx, "u1", 60)
	require.NoError(t, err)
	require.Contains(t, summary.Unlocked, AchMarathonRunner)

	// A later unrelated mutation must keep the achievement unlocked.
	summary, err = svc.IncrementStat(ctx, "u1", models.StatRouletteRoundsCompleted, 1)
	require.NoError(t, err)
	assert.Contains(t, summary.Unlocked, AchMarathonRunner)
}

func TestNewlyUnlockedExpires(t *testing.T) {
	svc, now := newTestEngine(t)
	ctx := context.Background()

	summary, err := svc.RecordChallengeComplete(ctx, "u1", models.TypeTryNotToCum, 0)
	require.NoError(t, err)
	require.NotEmpty(t, summary.NewlyUnlocked)

	*now = now.Add(NewlyUnlockedWindow + time.Second)
	summary, err = svc.Summary(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, summary.NewlyUnlocked)
}

func TestClearNewlyUnlocked(t *testing.T) {
	svc, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := svc.RecordChallengeComplete(ctx, "u1", models.TypeTryNotToCum, 0)
	require.NoError(t, err)

	svc.ClearNewlyUnlocked("u1")
	summary, err := svc.Summary(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, summary.NewlyUnlocked)
}

func TestGetProgress(t *testing.T) {
	svc, _ := newTestEngine(t)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		_, err := svc.RecordVideoWatch(ctx, "u1", models.HeatFire)
		require.NoError(t, err)
	}

	progress, err := svc.GetProgress(ctx, "u1", AchFireStarter)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, progress, 0.001)

	// Unlocked achievements report exactly 100.
	for i := 0; i < 25; i++ {
		_, err := svc.RecordVideoWatch(ctx, "u1", models.HeatFire)
		require.NoError(t, err)
	}
	progress, err = svc.GetProgress(ctx, "u1", AchFireStarter)
	require.NoError(t, err)
	assert.Equal(t, 100.0, progress)

	_, err = svc.GetProgress(ctx, "u1", "no_such_achievement")
	assert.ErrorIs(t, err, ErrUnknownAchievement)
}

func TestMultiCriterionProgressIsAveraged(t *testing.T) {
	svc, _ := newTestEngine(t)
	ctx := context.Background()

	// Challenge Master needs 10 completions of each of six types; complete
	// one type 10 times for 1/6 of the display progress.
	for i := 0; i < 10; i++ {
		_, err := svc.RecordChallengeComplete(ctx, "u1", models.TypeRapidFire, 0)
		require.NoError(t, err)
	}

	progress, err := svc.GetProgress(ctx, "u1", AchChallengeMaster)
	require.NoError(t, err)
	assert.InDelta(t, 100.0/6, progress, 0.001)
}

func TestPerfectWeek(t *testing.T) {
	svc, now := newTestEngine(t)
	ctx := context.Background()

	var summary *models.GamificationSummary
	var err error
	for day := 0; day < 7; day++ {
		summary, err = svc.RecordChallengeComplete(ctx, "u1", models.TypeTryNotToCum, 0)
		require.NoError(t, err)
		if day < 6 {
			*now = now.Add(24 * time.Hour)
		}
	}

	assert.Equal(t, 7, summary.Stats.Get(models.StatPerfectDays))
	assert.Contains(t, summary.Unlocked, AchPerfectWeek)
	assert.Contains(t, summary.Unlocked, AchStreakKing)
}

func TestReset(t *testing.T) {
	svc, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := svc.RecordChallengeComplete(ctx, "u1", models.TypeTryNotToCum, 0)
	require.NoError(t, err)

	require.NoError(t, svc.Reset(ctx, "u1"))

	summary, err := svc.Summary(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Stats.XP())
	assert.Empty(t, summary.Unlocked)
	assert.Empty(t, summary.NewlyUnlocked)
}

func TestLevelCurve(t *testing.T) {
	assert.Equal(t, 1, Level(0))
	assert.Equal(t, 1, Level(499))
	assert.Equal(t, 2, Level(500))
	assert.Equal(t, 2, Level(1999))
	assert.Equal(t, 3, Level(2000))
}

func TestLevelProgressBounds(t *testing.T) {
	for _, xp := range []int{0, 1, 250, 499, 500, 1234, 100000} {
		progress := LevelProgress(xp)
		assert.GreaterOrEqual(t, progress, 0.0, "xp=%d", xp)
		assert.LessOrEqual(t, progress, 100.0, "xp=%d", xp)
	}
	assert.Equal(t, 0.0, LevelProgress(0))
}
