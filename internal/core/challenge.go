package core

import (
	"errors"
	"sync"
	"time"

	"reelhub/pkg/models"
)

var (
	ErrUnknownChallengeType = errors.New("unknown challenge type")
	ErrChallengeInProgress  = errors.New("a challenge is already in progress")
	ErrNoActiveChallenge    = errors.New("no active challenge")
	ErrNotFinished          = errors.New("challenge is not in a terminal state")
)

// ChallengeSession is one user's live challenge. States:
// idle -> active <-> paused -> {complete | failed} -> idle.
// The session owns at most one ticker goroutine; the stop channel is the
// single handle, so starting and stopping is never ambiguous and elapsed
// time can never accumulate at double speed.
type ChallengeSession struct {
	mu sync.Mutex

	challengeType models.ChallengeType
	state         string
	elapsed       int // seconds in active state
	duration      int // target seconds, 0 = open-ended
	videosWatched int
	pauseCount    int
	skipCount     int
	startedAt     time.Time
	snapshot      *models.ChallengeSnapshot

	meter    *IntensityMeter
	tickStop chan struct{}
}

func newChallengeSession(ct models.ChallengeType, duration int) *ChallengeSession {
	meter := NewIntensityMeter()
	meter.SetActive(true)
	return &ChallengeSession{
		challengeType: ct,
		state:         models.ChallengeActive,
		duration:      duration,
		startedAt:     time.Now(),
		meter:         meter,
	}
}

// Tick advances the session clock by one second. While active, elapsed time
// and the intensity meter accumulate; while paused, only the meter decays.
// Terminal states ignore ticks.
func (s *ChallengeSession) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case models.ChallengeActive:
		s.elapsed++
		s.meter.Tick()
		if s.duration > 0 && s.elapsed >= s.duration {
			s.finishLocked(models.ChallengeComplete, "")
		}
	case models.ChallengePaused:
		s.meter.Tick()
	}
}

// Pause stops elapsed-time accumulation. No-op unless active; non-pausable
// challenge types ignore pause entirely.
func (s *ChallengeSession) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.ChallengeActive || !s.challengeType.Pausable {
		return
	}
	s.state = models.ChallengePaused
	s.pauseCount++
	s.meter.SetActive(false)
}

// Resume restarts elapsed-time accumulation. No-op unless paused.
func (s *ChallengeSession) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.ChallengePaused {
		return
	}
	s.state = models.ChallengeActive
	s.meter.SetActive(true)
}

// RecordVideoWatched counts a finished video and retargets the intensity
// meter at its heat. State is unchanged.
func (s *ChallengeSession) RecordVideoWatched(heat models.Heat) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.ChallengeActive && s.state != models.ChallengePaused {
		return
	}
	s.videosWatched++
	s.meter.SetHeat(heat)
}

// RecordSkip counts a skip. For non-skippable challenge types the session
// immediately fails with reason "skipped".
func (s *ChallengeSession) RecordSkip() *models.ChallengeSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.ChallengeActive && s.state != models.ChallengePaused {
		return nil
	}
	s.skipCount++
	if !s.challengeType.Skippable {
		s.finishLocked(models.ChallengeFailed, "skipped")
		return s.snapshot
	}
	return nil
}

// Complete freezes the session as successful and returns the snapshot.
// Persisting the snapshot is the caller's responsibility.
func (s *ChallengeSession) Complete() (*models.ChallengeSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case models.ChallengeActive, models.ChallengePaused:
		s.finishLocked(models.ChallengeComplete, "")
		return s.snapshot, nil
	case models.ChallengeComplete, models.ChallengeFailed:
		return s.snapshot, nil
	default:
		return nil, ErrNoActiveChallenge
	}
}

// Fail freezes the session as failed with the given reason.
func (s *ChallengeSession) Fail(reason string) (*models.ChallengeSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case models.ChallengeActive, models.ChallengePaused:
		s.finishLocked(models.ChallengeFailed, reason)
		return s.snapshot, nil
	case models.ChallengeComplete, models.ChallengeFailed:
		return s.snapshot, nil
	default:
		return nil, ErrNoActiveChallenge
	}
}

// finishLocked freezes counters into a snapshot and stops the ticker.
// Caller holds the lock.
func (s *ChallengeSession) finishLocked(state, reason string) {
	if s.state == models.ChallengeComplete || s.state == models.ChallengeFailed {
		return
	}
	s.state = state
	s.meter.SetActive(false)
	s.snapshot = &models.ChallengeSnapshot{
		ChallengeType: s.challengeType.ID,
		State:         state,
		Duration:      s.elapsed,
		VideosWatched: s.videosWatched,
		PauseCount:    s.pauseCount,
		SkipCount:     s.skipCount,
		Reason:        reason,
	}
	if s.tickStop != nil {
		close(s.tickStop)
		s.tickStop = nil
	}
}

// stop tears down the ticker without freezing a snapshot (endChallenge path).
func (s *ChallengeSession) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tickStop != nil {
		close(s.tickStop)
		s.tickStop = nil
	}
	s.state = models.ChallengeIdle
}

// Status returns the live read-model.
func (s *ChallengeSession) Status() models.ChallengeStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := models.ChallengeStatus{
		ChallengeType: s.challengeType.ID,
		State:         s.state,
		ElapsedTime:   s.elapsed,
		Duration:      s.duration,
		VideosWatched: s.videosWatched,
		PauseCount:    s.pauseCount,
		SkipCount:     s.skipCount,
		Intensity:     s.meter.Value(),
		DangerZone:    s.meter.IsDanger(),
		Critical:      s.meter.IsCritical(),
	}
	if s.duration > 0 {
		remaining := s.duration - s.elapsed
		if remaining < 0 {
			remaining = 0
		}
		status.RemainingTime = &remaining
	}
	return status
}

// Meter exposes the session's intensity meter.
func (s *ChallengeSession) Meter() *IntensityMeter {
	return s.meter
}

// ChallengeService manages at most one live session per user and drives the
// per-session 1-second tick.
type ChallengeService interface {
	Start(userID, typeID string, duration int) (*models.ChallengeStatus, error)
	Session(userID string) (*ChallengeSession, error)
	End(userID string) error
	Types() []models.ChallengeType
	Shutdown()
}

type challengeService struct {
	mu           sync.Mutex
	sessions     map[string]*ChallengeSession
	tickInterval time.Duration
}

// NewChallengeService creates a session manager. tickInterval is normally
// one second; zero disables the automatic ticker so callers drive Tick
// themselves (tests do this).
func NewChallengeService(tickInterval time.Duration) ChallengeService {
	return &challengeService{
		sessions:     make(map[string]*ChallengeSession),
		tickInterval: tickInterval,
	}
}

func (s *challengeService) Start(userID, typeID string, duration int) (*models.ChallengeStatus, error) {
	ct, ok := models.ChallengeTypes[typeID]
	if !ok {
		return nil, ErrUnknownChallengeType
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.sessions[userID]; ok {
		st := existing.Status()
		if st.State == models.ChallengeActive || st.State == models.ChallengePaused {
			return nil, ErrChallengeInProgress
		}
		existing.stop()
	}

	session := newChallengeSession(ct, duration)
	if s.tickInterval > 0 {
		stop := make(chan struct{})
		session.tickStop = stop
		go runTicker(session, s.tickInterval, stop)
	}
	s.sessions[userID] = session

	status := session.Status()
	return &status, nil
}

func runTicker(session *ChallengeSession, interval time.Duration, stop chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			session.Tick()
		}
	}
}

func (s *challengeService) Session(userID string) (*ChallengeSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return nil, ErrNoActiveChallenge
	}
	return session, nil
}

// End returns the user to idle, clearing all session state.
func (s *challengeService) End(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return ErrNoActiveChallenge
	}
	session.stop()
	delete(s.sessions, userID)
	return nil
}

// Shutdown stops every live session ticker. Used on server exit.
func (s *challengeService) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for userID, session := range s.sessions {
		session.stop()
		delete(s.sessions, userID)
	}
}

// Types returns the static challenge catalog in a stable order.
func (s *challengeService) Types() []models.ChallengeType {
	order := []string{
		models.TypeTryNotToCum,
		models.TypeEnduranceRun,
		models.TypeRoulette,
		models.TypeTenMinute,
		models.TypeRapidFire,
		models.TypeNoControl,
	}
	out := make([]models.ChallengeType, 0, len(order))
	for _, id := range order {
		out = append(out, models.ChallengeTypes[id])
	}
	return out
}
