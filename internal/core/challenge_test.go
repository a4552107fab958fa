package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reelhub/pkg/models"
)

// tickInterval 0 disables the automatic ticker so tests drive Tick directly.
func newTestChallengeService() ChallengeService {
	return NewChallengeService(0)
}

func TestStartUnknownType(t *testing.T) {
	svc := newTestChallengeService()
	_, err := svc.Start("u1", "definitely-not-a-mode", 300)
	assert.ErrorIs(t, err, ErrUnknownChallengeType)
}

func TestStartWhileInProgress(t *testing.T) {
	svc := newTestChallengeService()

	_, err := svc.Start("u1", models.TypeTryNotToCum, 300)
	require.NoError(t, err)

	_, err = svc.Start("u1", models.TypeRoulette, 300)
	assert.ErrorIs(t, err, ErrChallengeInProgress)

	// A different user is unaffected.
	_, err = svc.Start("u2", models.TypeRoulette, 300)
	assert.NoError(t, err)
}

func TestStartAfterTerminalState(t *testing.T) {
	svc := newTestChallengeService()

	_, err := svc.Start("u1", models.TypeTryNotToCum, 300)
	require.NoError(t, err)

	session, err := svc.Session("u1")
	require.NoError(t, err)
	_, err = session.Fail("gave_up")
	require.NoError(t, err)

	_, err = svc.Start("u1", models.TypeRoulette, 300)
	assert.NoError(t, err)
}

func TestElapsedOnlyAdvancesWhileActive(t *testing.T) {
	svc := newTestChallengeService()

	_, err := svc.Start("u1", models.TypeTryNotToCum, 0)
	require.NoError(t, err)
	session, err := svc.Session("u1")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		session.Tick()
	}
	assert.Equal(t, 5, session.Status().ElapsedTime)

	session.Pause()
	for i := 0; i < 3; i++ {
		session.Tick()
	}
	status := session.Status()
	assert.Equal(t, models.ChallengePaused, status.State)
	assert.Equal(t, 5, status.ElapsedTime)
	assert.Equal(t, 1, status.PauseCount)

	session.Resume()
	for i := 0; i < 5; i++ {
		session.Tick()
	}
	assert.Equal(t, 10, session.Status().ElapsedTime)
}

func TestAutoCompleteAtTargetDuration(t *testing.T) {
	svc := newTestChallengeService()

	_, err := svc.Start("u1", models.TypeTenMinute, 600)
	require.NoError(t, err)
	session, err := svc.Session("u1")
	require.NoError(t, err)

	for i := 0; i < 600; i++ {
		session.Tick()
	}

	status := session.Status()
	assert.Equal(t, models.ChallengeComplete, status.State)
	assert.Equal(t, 600, status.ElapsedTime)

	// Ticks past the terminal state change nothing.
	session.Tick()
	assert.Equal(t, 600, session.Status().ElapsedTime)

	snapshot, err := session.Complete()
	require.NoError(t, err)
	assert.Equal(t, 600, snapshot.Duration)
	assert.Equal(t, models.TypeTenMinute, snapshot.ChallengeType)
}

func TestRemainingTime(t *testing.T) {
	svc := newTestChallengeService()

	_, err := svc.Start("u1", models.TypeTryNotToCum, 180)
	require.NoError(t, err)
	session, err := svc.Session("u1")
	require.NoError(t, err)

	for i := 0; i < 60; i++ {
		session.Tick()
	}
	status := session.Status()
	require.NotNil(t, status.RemainingTime)
	assert.Equal(t, 120, *status.RemainingTime)

	// Open-ended sessions have no remaining time.
	_, err = svc.Start("u2", models.TypeEnduranceRun, 0)
	require.NoError(t, err)
	open, err := svc.Session("u2")
	require.NoError(t, err)
	assert.Nil(t, open.Status().RemainingTime)
}

func TestNonPausableTypeIgnoresPause(t *testing.T) {
	svc := newTestChallengeService()

	_, err := svc.Start("u1", models.TypeNoControl, 300)
	require.NoError(t, err)
	session, err := svc.Session("u1")
	require.NoError(t, err)

	session.Pause()
	status := session.Status()
	assert.Equal(t, models.ChallengeActive, status.State)
	assert.Equal(t, 0, status.PauseCount)
}

func TestSkipFailsNonSkippableType(t *testing.T) {
	svc := newTestChallengeService()

	_, err := svc.Start("u1", models.TypeNoControl, 300)
	require.NoError(t, err)
	session, err := svc.Session("u1")
	require.NoError(t, err)

	snapshot := session.RecordSkip()
	require.NotNil(t, snapshot)
	assert.Equal(t, models.ChallengeFailed, snapshot.State)
	assert.Equal(t, "skipped", snapshot.Reason)
	assert.Equal(t, 1, snapshot.SkipCount)
}

func TestSkipOnSkippableTypeJustCounts(t *testing.T) {
	svc := newTestChallengeService()

	_, err := svc.Start("u1", models.TypeTryNotToCum, 300)
	require.NoError(t, err)
	session, err := svc.Session("u1")
	require.NoError(t, err)

	snapshot := session.RecordSkip()
	assert.Nil(t, snapshot)
	status := session.Status()
	assert.Equal(t, models.ChallengeActive, status.State)
	assert.Equal(t, 1, status.SkipCount)
}

func TestVideoWatchRetargetsMeter(t *testing.T) {
	svc := newTestChallengeService()

	_, err := svc.Start("u1", models.TypeTryNotToCum, 0)
	require.NoError(t, err)
	session, err := svc.Session("u1")
	require.NoError(t, err)

	session.RecordVideoWatched(models.HeatNuclear)
	for i := 0; i < 10; i++ {
		session.Tick()
	}

	status := session.Status()
	assert.Equal(t, 1, status.VideosWatched)
	// 10 ticks at 0.3 * 3.0 nuclear multiplier.
	assert.InDelta(t, 9.0, status.Intensity, 0.001)
}

func TestCompleteIsIdempotent(t *testing.T) {
	svc := newTestChallengeService()

	_, err := svc.Start("u1", models.TypeTryNotToCum, 0)
	require.NoError(t, err)
	session, err := svc.Session("u1")
	require.NoError(t, err)

	for i := 0; i < 42; i++ {
		session.Tick()
	}

	first, err := session.Complete()
	require.NoError(t, err)
	second, err := session.Complete()
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 42, first.Duration)
}

func TestEndClearsSession(t *testing.T) {
	svc := newTestChallengeService()

	_, err := svc.Start("u1", models.TypeTryNotToCum, 0)
	require.NoError(t, err)

	require.NoError(t, svc.End("u1"))
	_, err = svc.Session("u1")
	assert.ErrorIs(t, err, ErrNoActiveChallenge)

	assert.ErrorIs(t, svc.End("u1"), ErrNoActiveChallenge)
}

func TestTypesCatalogOrder(t *testing.T) {
	svc := newTestChallengeService()

	types := svc.Types()
	require.Len(t, types, 6)
	assert.Equal(t, models.TypeTryNotToCum, types[0].ID)
	assert.Equal(t, models.TypeNoControl, types[5].ID)

	for _, ct := range types {
		if ct.ID == models.TypeTenMinute || ct.ID == models.TypeNoControl {
			assert.False(t, ct.Pausable, ct.ID)
			assert.False(t, ct.Skippable, ct.ID)
		} else {
			assert.True(t, ct.Pausable, ct.ID)
			assert.True(t, ct.Skippable, ct.ID)
		}
	}
}
