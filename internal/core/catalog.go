package core

import "reelhub/pkg/models"

// Achievement ids
const (
	AchFirstSteps        = "first_steps"
	AchHeatSeeker        = "heat_seeker"
	AchFireStarter       = "fire_starter"
	AchIronWill          = "iron_will"
	AchEnduranceMaster   = "endurance_master"
	AchRouletteWinner    = "roulette_winner"
	AchRapidFireKing     = "rapid_fire_king"
	AchMarathonRunner    = "marathon_runner"
	AchStreakKing        = "streak_king"
	AchNoControlSurvivor = "no_control_survivor"
	AchCenturyClub       = "century_club"
	AchUltimateEndurance = "ultimate_endurance"
	AchPerfectWeek       = "perfect_week"
	AchNuclearVeteran    = "nuclear_veteran"
	AchLegendaryStreak   = "legendary_streak"
	AchChallengeMaster   = "challenge_master"
)

// achievementOrder keeps catalog listings stable, beginner tiers first.
var achievementOrder = []string{
	AchFirstSteps, AchHeatSeeker, AchFireStarter,
	AchIronWill, AchEnduranceMaster, AchRouletteWinner, AchRapidFireKing,
	AchMarathonRunner, AchStreakKing, AchNoControlSurvivor, AchCenturyClub,
	AchUltimateEndurance, AchPerfectWeek, AchNuclearVeteran, AchLegendaryStreak,
	AchChallengeMaster,
}

// AchievementCatalog is the static, read-only achievement catalog. XP rewards
// follow the tier.
var AchievementCatalog = buildCatalog([]models.Achievement{
	{
		ID:          AchFirstSteps,
		Name:        "First Steps",
		Description: "Complete your first challenge",
		Icon:        "target",
		Tier:        models.TierBronze,
		Criteria:    map[string]int{models.StatChallengesCompleted: 1},
	},
	{
		ID:          AchHeatSeeker,
		Name:        "Heat Seeker",
		Description: "Watch 25 Nuclear-rated videos",
		Icon:        "radioactive",
		Tier:        models.TierBronze,
		Criteria:    map[string]int{models.StatNuclearVideosWatched: 25},
	},
	{
		ID:          AchFireStarter,
		Name:        "Fire Starter",
		Description: "Watch 50 Fire-rated videos",
		Icon:        "fire",
		Tier:        models.TierBronze,
		Criteria:    map[string]int{models.StatFireVideosWatched: 50},
	},
	{
		ID:          AchIronWill,
		Name:        "Iron Will",
		Description: "Complete a 10-minute challenge",
		Icon:        "muscle",
		Tier:        models.TierSilver,
		Criteria:    map[string]int{models.StatTenMinuteCompleted: 1},
	},
	{
		ID:          AchEnduranceMaster,
		Name:        "Endurance Master",
		Description: "Complete 5 challenges in a row",
		Icon:        "trophy",
		Tier:        models.TierSilver,
		Criteria:    map[string]int{models.StatConsecutiveChallenges: 5},
	},
	{
		ID:          AchRouletteWinner,
		Name:        "Roulette Winner",
		Description: "Complete 25 roulette rounds",
		Icon:        "slot-machine",
		Tier:        models.TierSilver,
		Criteria:    map[string]int{models.StatRouletteRoundsCompleted: 25},
	},
	{
		ID:          AchRapidFireKing,
		Name:        "Rapid Fire King",
		Description: "Complete Rapid Fire mode 10 times",
		Icon:        "lightning",
		Tier:        models.TierSilver,
		Criteria:    map[string]int{models.StatRapidFireCompleted: 10},
	},
	{
		ID:          AchMarathonRunner,
		Name:        "Marathon Runner",
		Description: "Watch for 1 hour straight",
		Icon:        "runner",
		Tier:        models.TierGold,
		Criteria:    map[string]int{models.StatContinuousWatchMinutes: 60},
	},
	{
		ID:          AchStreakKing,
		Name:        "Streak King",
		Description: "Maintain a 7-day challenge streak",
		Icon:        "crown",
		Tier:        models.TierGold,
		Criteria:    map[string]int{models.StatDailyStreak: 7},
	},
	{
		ID:          AchNoControlSurvivor,
		Name:        "No Control Survivor",
		Description: "Complete No Control mode",
		Icon:        "lock",
		Tier:        models.TierGold,
		Criteria:    map[string]int{models.StatNoControlCompleted: 1},
	},
	{
		ID:          AchCenturyClub,
		Name:        "Century Club",
		Description: "Complete 100 challenges",
		Icon:        "hundred",
		Tier:        models.TierGold,
		Criteria:    map[string]int{models.StatChallengesCompleted: 100},
	},
	{
		ID:          AchUltimateEndurance,
		Name:        "Ultimate Endurance",
		Description: "Survive a 30-minute Endurance Run",
		Icon:        "star",
		Tier:        models.TierPlatinum,
		Criteria:    map[string]int{models.StatEnduranceRunMinutes: 30},
	},
	{
		ID:          AchPerfectWeek,
		Name:        "Perfect Week",
		Description: "Complete at least one challenge every day for 7 days",
		Icon:        "medal",
		Tier:        models.TierPlatinum,
		Criteria:    map[string]int{models.StatPerfectDays: 7},
	},
	{
		ID:          AchNuclearVeteran,
		Name:        "Nuclear Veteran",
		Description: "Watch 500 Nuclear-rated videos",
		Icon:        "atom",
		Tier:        models.TierPlatinum,
		Criteria:    map[string]int{models.StatNuclearVideosWatched: 500},
	},
	{
		ID:          AchLegendaryStreak,
		Name:        "Legendary Streak",
		Description: "Maintain a 30-day challenge streak",
		Icon:        "flame-crown",
		Tier:        models.TierPlatinum,
		Criteria:    map[string]int{models.StatDailyStreak: 30},
	},
	{
		ID:          AchChallengeMaster,
		Name:        "Challenge Master",
		Description: "Complete all challenge types at least 10 times each",
		Icon:        "grand-crown",
		Tier:        models.TierPlatinum,
		Criteria: map[string]int{
			models.StatTryNotToCumCompleted:  10,
			models.StatEnduranceRunCompleted: 10,
			models.StatRouletteCompleted:     10,
			models.StatTenMinuteCompleted:    10,
			models.StatRapidFireCompleted:    10,
			models.StatNoControlCompleted:    10,
		},
	},
})

func buildCatalog(list []models.Achievement) map[string]models.Achievement {
	catalog := make(map[string]models.Achievement, len(list))
	for _, a := range list {
		a.XP = models.TierXP[a.Tier]
		catalog[a.ID] = a
	}
	return catalog
}
