// Package models - Gamification Statistics
// Cumulative per-user stats record driving achievement unlocks,
// XP/levels and streaks.
package models

// Stat keys referenced by achievement criteria. The stats record is addressed
// by these keys so criteria maps and counters stay in one vocabulary.
const (
	StatChallengesCompleted     = "challengesCompleted"
	StatNuclearVideosWatched    = "nuclearVideosWatched"
	StatFireVideosWatched       = "fireVideosWatched"
	StatSpicyVideosWatched      = "spicyVideosWatched"
	StatTenMinuteCompleted      = "tenMinuteChallengeCompleted"
	StatConsecutiveChallenges   = "consecutiveChallenges"
	StatCurrentConsecutive      = "currentConsecutive"
	StatRouletteRoundsCompleted = "rouletteRoundsCompleted"
	StatRapidFireCompleted      = "rapidFireCompleted"
	StatContinuousWatchMinutes  = "continuousWatchMinutes"
	StatDailyStreak             = "dailyStreak"
	StatNoControlCompleted      = "noControlCompleted"
	StatEnduranceRunCompleted   = "enduranceRunCompleted"
	StatEnduranceRunMinutes     = "enduranceRunMinutes"
	StatTryNotToCumCompleted    = "tryNotToCumCompleted"
	StatRouletteCompleted       = "rouletteCompleted"
	StatPerfectDays             = "perfectDays"
	StatXP                      = "xp"
)

// StatsRecord is the cumulative gamification record for one user.
// Counters map holds every integer stat keyed by the Stat* constants above;
// unknown keys from persisted state are kept as-is so old records survive
// catalog changes.
type StatsRecord struct {
	Counters map[string]int `json:"counters"`

	// LastChallengeDate is the calendar day (YYYY-MM-DD) of the most recent
	// completed challenge; empty when no challenge was ever completed.
	LastChallengeDate string `json:"last_challenge_date,omitempty"`

	// ChallengeDates holds the most recent 30 distinct calendar days with at
	// least one completed challenge, oldest first.
	ChallengeDates []string `json:"challenge_dates,omitempty"`
}

// NewStatsRecord returns an all-zero stats record.
func NewStatsRecord() *StatsRecord {
	return &StatsRecord{Counters: map[string]int{}}
}

// Get returns a counter value, zero when absent.
func (s *StatsRecord) Get(key string) int {
	if s.Counters == nil {
		return 0
	}
	return s.Counters[key]
}

// Add increments a counter by delta.
func (s *StatsRecord) Add(key string, delta int) {
	if s.Counters == nil {
		s.Counters = map[string]int{}
	}
	s.Counters[key] += delta
}

// Set overwrites a counter.
func (s *StatsRecord) Set(key string, value int) {
	if s.Counters == nil {
		s.Counters = map[string]int{}
	}
	s.Counters[key] = value
}

// XP returns the accumulated experience points.
func (s *StatsRecord) XP() int { return s.Get(StatXP) }

// Normalize repairs a record loaded from persistence so malformed or partial
// state degrades to zero defaults instead of panicking downstream.
func (s *StatsRecord) Normalize() {
	if s.Counters == nil {
		s.Counters = map[string]int{}
	}
	if s.ChallengeDates == nil {
		s.ChallengeDates = []string{}
	}
}
