package gamification

import (
	"testing"
	"time"

	"github.com/moodcompanion/mood-companion/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestPointsForEntry(t *testing.T) {
	tests := []struct {
		name     string
		draft    models.EntryDraft
		expected int
	}{
		{
			name:     "Bare entry",
			draft:    models.EntryDraft{Mood: models.MoodSad, Intensity: 4},
			expected: 10,
		},
		{
			name:     "Positive mood bonus",
			draft:    models.EntryDraft{Mood: models.MoodHappy, Intensity: 7},
			expected: 12,
		},
		{
			name: "Medium description",
			draft: models.EntryDraft{
				Mood:        models.MoodSad,
				Description: "a reflection over twenty chars",
			},
			expected: 15,
		},
		{
			name: "Long description stacks both tiers",
			draft: models.EntryDraft{
				Mood:        models.MoodSad,
				Description: "a much longer reflection that easily clears the fifty character tier",
			},
			expected: 18,
		},
		{
			name: "Everything",
			draft: models.EntryDraft{
				Mood:        models.MoodGrateful,
				Description: "a much longer reflection that easily clears the fifty character tier",
				Activities:  []string{"walk", "reading", "music"},
				Location:    "home",
				Weather:     "sunny",
				Tags:        []string{"weekend"},
			},
			// 10 +5 +3 +3 +2 +1 +1 +2 +2
			expected: 29,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PointsForEntry(tt.draft))
		})
	}
}

func TestApplyPoints(t *testing.T) {
	state := models.NewGamificationState()

	ApplyPoints(&state, 29)
	assert.Equal(t, 29, state.Points)
	assert.Equal(t, 29, state.Experience)
	assert.Equal(t, 1, state.Level)
	assert.Equal(t, 71, state.ExperienceToNext)

	ApplyPoints(&state, 85)
	assert.Equal(t, 114, state.Experience)
	assert.Equal(t, 2, state.Level)
	assert.Equal(t, 86, state.ExperienceToNext)
}

func TestApplyPoints_invariant(t *testing.T) {
	state := models.NewGamificationState()
	for _, points := range []int{10, 15, 29, 100, 1, 0, 73} {
		ApplyPoints(&state, points)
		assert.Equal(t, 100, state.ExperienceToNext+state.Experience%100)
	}
}

func TestUpdateStreak(t *testing.T) {
	state := models.NewGamificationState()
	day1 := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	UpdateStreak(&state, day1)
	assert.Equal(t, 1, state.Streaks.Daily)

	// Second entry the same calendar day does not increment.
	UpdateStreak(&state, day1.Add(6*time.Hour))
	assert.Equal(t, 1, state.Streaks.Daily)

	// Next day extends the streak.
	UpdateStreak(&state, day1.AddDate(0, 0, 1))
	assert.Equal(t, 2, state.Streaks.Daily)

	// A missed day resets instead of silently continuing.
	UpdateStreak(&state, day1.AddDate(0, 0, 3))
	assert.Equal(t, 1, state.Streaks.Daily)
}

func TestEvaluate(t *testing.T) {
	state := models.NewGamificationState()
	state.Streaks.Daily = 7
	state.Level = 3

	entries := []models.MoodEntry{
		{Mood: models.MoodHappy, AIConfidence: 0.8, Description: "a much longer reflection that easily clears the fifty character tier"},
		{Mood: models.MoodCalm},
		{Mood: models.MoodSad},
	}

	byID := make(map[string]models.Achievement)
	for _, a := range Evaluate(state, entries) {
		byID[a.ID] = a
	}

	assert.True(t, byID["first-entry"].Unlocked)
	assert.True(t, byID["week-streak"].Unlocked)
	assert.False(t, byID["month-streak"].Unlocked)
	assert.Equal(t, 7, byID["month-streak"].Progress)
	assert.False(t, byID["level-5"].Unlocked)
	assert.Equal(t, 3, byID["level-5"].Progress)
	assert.Equal(t, 2, byID["positive-week"].Progress)
	assert.Equal(t, 1, byID["reflection-master"].Progress)
	assert.Equal(t, 1, byID["ai-friend"].Progress)
}
