// Package models - Achievement System
// Static achievement catalog with tiers, XP rewards and
// AND-of-thresholds unlock criteria over the stats record.
package models

// Achievement tiers, ordered by XP reward and visual weight.
const (
	TierBronze   = "bronze"
	TierSilver   = "silver"
	TierGold     = "gold"
	TierPlatinum = "platinum"
)

// TierXP maps a tier to the XP granted when an achievement of that tier
// unlocks.
var TierXP = map[string]int{
	TierBronze:   50,
	TierSilver:   100,
	TierGold:     250,
	TierPlatinum: 500,
}

// Achievement is one entry of the static catalog. An achievement is unlocked
// iff every criteria key is present in the stats record with a value at or
// above the threshold.
type Achievement struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Icon        string         `json:"icon"`
	Tier        string         `json:"tier"`
	XP          int            `json:"xp"`
	Criteria    map[string]int `json:"criteria"`
}

// Unlocked reports whether stats satisfies every criterion.
func (a Achievement) Unlocked(stats *StatsRecord) bool {
	for key, required := range a.Criteria {
		if stats.Get(key) < required {
			return false
		}
	}
	return true
}

// AchievementStatus pairs a catalog entry with a user's unlock state and
// display progress, for the achievements screen.
type AchievementStatus struct {
	Achievement
	IsUnlocked bool    `json:"unlocked"`
	Progress   float64 `json:"progress"`
}

// GamificationSummary is the read-model the achievement endpoints return.
type GamificationSummary struct {
	Stats         *StatsRecord `json:"stats"`
	Unlocked      []string     `json:"unlocked"`
	NewlyUnlocked []string     `json:"newly_unlocked,omitempty"`
	Level         int          `json:"level"`
	LevelProgress float64      `json:"level_progress"`
}
