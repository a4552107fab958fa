// Package models - Challenge Types and Sessions
package models

// Challenge session states
const (
	ChallengeIdle     = "idle"
	ChallengeActive   = "active"
	ChallengePaused   = "paused"
	ChallengeComplete = "complete"
	ChallengeFailed   = "failed"
)

// Challenge type ids
const (
	TypeTryNotToCum  = "tryNotToCum"
	TypeEnduranceRun = "enduranceRun"
	TypeRoulette     = "roulette"
	TypeTenMinute    = "tenMinute"
	TypeRapidFire    = "rapidFire"
	TypeNoControl    = "noControl"
)

// ChallengeType is a static per-type definition. Pausable/Skippable are fixed
// flags; the UI must consult them before offering pause or skip controls.
type ChallengeType struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Icon        string   `json:"icon"`
	Description string   `json:"description"`
	Durations   []int    `json:"durations,omitempty"` // seconds; nil means open-ended
	Rules       []string `json:"rules"`
	Pausable    bool     `json:"pausable"`
	Skippable   bool     `json:"skippable"`
}

// ChallengeTypes is the static challenge catalog, keyed by type id.
var ChallengeTypes = map[string]ChallengeType{
	TypeTryNotToCum: {
		ID:          TypeTryNotToCum,
		Name:        "Try Not to Cum",
		Icon:        "droplet",
		Description: "Survive for the selected duration without pausing or skipping",
		Durations:   []int{180, 300, 600},
		Rules: []string{
			"No pausing allowed",
			"No skipping videos",
			"Give up if you can't continue",
			"Intensity meter tracks your progress",
		},
		Pausable:  true,
		Skippable: true,
	},
	TypeEnduranceRun: {
		ID:          TypeEnduranceRun,
		Name:        "Endurance Run",
		Icon:        "runner",
		Description: "Videos get progressively more intense - see how long you last",
		Durations:   nil,
		Rules: []string{
			"Content intensity increases over time",
			"No time limit - pure endurance",
			"Give up to end the challenge",
		},
		Pausable:  true,
		Skippable: true,
	},
	TypeRoulette: {
		ID:          TypeRoulette,
		Name:        "Roulette Mode",
		Icon:        "slot-machine",
		Description: "Completely random content - you never know what's next",
		Durations:   []int{300, 600, 900},
		Rules: []string{
			"Random shuffle across all categories",
			"Quick 20-30 second intervals",
			"High-intensity content prioritized",
			"No control over what plays next",
		},
		Pausable:  true,
		Skippable: true,
	},
	TypeTenMinute: {
		ID:          TypeTenMinute,
		Name:        "10 Minute Challenge",
		Icon:        "timer",
		Description: "Fixed 10 minutes - no pause, no skip, just survive",
		Durations:   []int{600},
		Rules: []string{
			"Fixed 10-minute duration",
			"No pausing",
			"No skipping",
			"One shot to complete",
		},
		Pausable:  false,
		Skippable: false,
	},
	TypeRapidFire: {
		ID:          TypeRapidFire,
		Name:        "Rapid Fire",
		Icon:        "lightning",
		Description: "Quick 10-15 second clips in rapid succession",
		Durations:   []int{300, 600},
		Rules: []string{
			"Quick 10-15 second clips",
			"No breathing room",
			"High stimulation focus",
			"Automatic advancement",
		},
		Pausable:  true,
		Skippable: true,
	},
	TypeNoControl: {
		ID:          TypeNoControl,
		Name:        "No Control Mode",
		Icon:        "lock",
		Description: "Hardcore mode - absolutely no control",
		Durations:   []int{300, 600},
		Rules: []string{
			"Cannot pause or skip",
			"Cannot control playback",
			"Pure endurance test",
			"Highest difficulty",
		},
		Pausable:  false,
		Skippable: false,
	},
}

// ChallengeSnapshot is the frozen result of a completed or failed session.
// It is returned to the caller and not persisted by the state machine itself.
type ChallengeSnapshot struct {
	ChallengeType string `json:"challenge_type"`
	State         string `json:"state"`
	Duration      int    `json:"duration"` // elapsed seconds
	VideosWatched int    `json:"videos_watched"`
	PauseCount    int    `json:"pause_count"`
	SkipCount     int    `json:"skip_count"`
	Reason        string `json:"reason,omitempty"` // set on failure
}

// ChallengeStatus is the live read-model of an active session.
type ChallengeStatus struct {
	ChallengeType string  `json:"challenge_type,omitempty"`
	State         string  `json:"state"`
	ElapsedTime   int     `json:"elapsed_time"`
	Duration      int     `json:"duration"` // 0 means open-ended
	RemainingTime *int    `json:"remaining_time,omitempty"`
	VideosWatched int     `json:"videos_watched"`
	PauseCount    int     `json:"pause_count"`
	SkipCount     int     `json:"skip_count"`
	Intensity     float64 `json:"intensity"`
	DangerZone    bool    `json:"danger_zone"`
	Critical      bool    `json:"critical"`
}
