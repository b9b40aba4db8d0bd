package gamification

import (
	"github.com/moodcompanion/mood-companion/internal/models"
)

// The achievement catalog is fixed. Unlock state and progress are computed on
// demand from the current reward state and entry history rather than
// maintained incrementally.

type achievementDef struct {
	models.Achievement
	evaluate func(state models.GamificationState, entries []models.MoodEntry) (progress, max int)
}

var catalog = []achievementDef{
	{
		Achievement: models.Achievement{
			ID: "first-entry", Name: "First Steps", Description: "Log your first mood entry",
			Icon: "🌟", Category: "consistency", Rarity: "common", Points: 10,
		},
		evaluate: func(_ models.GamificationState, entries []models.MoodEntry) (int, int) {
			if len(entries) > 0 {
				return 1, 1
			}
			return 0, 1
		},
	},
	{
		Achievement: models.Achievement{
			ID: "week-streak", Name: "Week Warrior", Description: "Log moods for 7 consecutive days",
			Icon: "🔥", Category: "consistency", Rarity: "rare", Points: 50,
		},
		evaluate: func(state models.GamificationState, _ []models.MoodEntry) (int, int) {
			return min(state.Streaks.Daily, 7), 7
		},
	},
	{
		Achievement: models.Achievement{
			ID: "month-streak", Name: "Monthly Master", Description: "Log moods for 30 consecutive days",
			Icon: "👑", Category: "consistency", Rarity: "epic", Points: 200,
		},
		evaluate: func(state models.GamificationState, _ []models.MoodEntry) (int, int) {
			return min(state.Streaks.Daily, 30), 30
		},
	},
	{
		Achievement: models.Achievement{
			ID: "level-5", Name: "Rising Star", Description: "Reach level 5",
			Icon: "⭐", Category: "growth", Rarity: "common", Points: 25,
		},
		evaluate: func(state models.GamificationState, _ []models.MoodEntry) (int, int) {
			return min(state.Level, 5), 5
		},
	},
	{
		Achievement: models.Achievement{
			ID: "level-10", Name: "Mood Master", Description: "Reach level 10",
			Icon: "🏆", Category: "growth", Rarity: "rare", Points: 100,
		},
		evaluate: func(state models.GamificationState, _ []models.MoodEntry) (int, int) {
			return min(state.Level, 10), 10
		},
	},
	{
		Achievement: models.Achievement{
			ID: "positive-week", Name: "Positive Vibes", Description: "Have 7 consecutive positive mood entries",
			Icon: "😊", Category: "growth", Rarity: "rare", Points: 75,
		},
		evaluate: func(_ models.GamificationState, entries []models.MoodEntry) (int, int) {
			best, run := 0, 0
			for _, entry := range entries {
				if models.PositiveMoods[entry.Mood] {
					run++
					if run > best {
						best = run
					}
				} else {
					run = 0
				}
			}
			return min(best, 7), 7
		},
	},
	{
		Achievement: models.Achievement{
			ID: "reflection-master", Name: "Reflection Master", Description: "Write detailed descriptions for 20 entries",
			Icon: "✍️", Category: "reflection", Rarity: "epic", Points: 150,
		},
		evaluate: func(_ models.GamificationState, entries []models.MoodEntry) (int, int) {
			detailed := 0
			for _, entry := range entries {
				if len(entry.Description) > 50 {
					detailed++
				}
			}
			return min(detailed, 20), 20
		},
	},
	{
		Achievement: models.Achievement{
			ID: "ai-friend", Name: "AI Companion", Description: "Use AI sentiment analysis 10 times",
			Icon: "🤖", Category: "special", Rarity: "legendary", Points: 300,
		},
		evaluate: func(_ models.GamificationState, entries []models.MoodEntry) (int, int) {
			analyzed := 0
			for _, entry := range entries {
				if entry.AIConfidence > 0 {
					analyzed++
				}
			}
			return min(analyzed, 10), 10
		},
	},
}

// Evaluate returns the full catalog with unlock state and progress filled in.
func Evaluate(state models.GamificationState, entries []models.MoodEntry) []models.Achievement {
	results := make([]models.Achievement, 0, len(catalog))
	for _, def := range catalog {
		achievement := def.Achievement
		progress, max := def.evaluate(state, entries)
		achievement.Progress = progress
		achievement.MaxProgress = max
		achievement.Unlocked = progress >= max
		results = append(results, achievement)
	}
	return results
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
