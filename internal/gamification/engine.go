package gamification

import (
	"time"

	"github.com/moodcompanion/mood-companion/internal/models"
)

const (
	basePoints          = 10
	descriptionBonus    = 5 // description longer than 20 chars
	longFormBonus       = 3 // description longer than 50 chars, stacks
	activityBonus       = 3 // at least one activity
	manyActivitiesBonus = 2 // more than two activities
	locationBonus       = 1
	weatherBonus        = 1
	tagBonus            = 2
	positiveMoodBonus   = 2
)

const dayFormat = "2006-01-02"

// PointsForEntry computes the reward for a submitted entry. All bonuses are
// independent and additive. The draft is scored before any privacy stripping,
// so writing a reflection earns points even when the text is not retained.
func PointsForEntry(draft models.EntryDraft) int {
	points := basePoints

	if len(draft.Description) > 20 {
		points += descriptionBonus
	}
	if len(draft.Description) > 50 {
		points += longFormBonus
	}
	if len(draft.Activities) > 0 {
		points += activityBonus
	}
	if len(draft.Activities) > 2 {
		points += manyActivitiesBonus
	}
	if draft.Location != "" {
		points += locationBonus
	}
	if draft.Weather != "" {
		points += weatherBonus
	}
	if len(draft.Tags) > 0 {
		points += tagBonus
	}
	if models.PositiveMoods[draft.Mood] {
		points += positiveMoodBonus
	}

	return points
}

// ApplyPoints folds earned points into the reward aggregate. Points and
// experience only ever grow; level and the distance to the next level are
// re-derived from experience.
func ApplyPoints(state *models.GamificationState, points int) {
	state.Points += points
	state.Experience += points
	state.Level = state.Experience/100 + 1
	state.ExperienceToNext = 100 - state.Experience%100
}

// UpdateStreak advances the daily check-in counter for an entry logged at
// entryTime. Same calendar day: unchanged. The day immediately after the last
// entry: increment. Anything else, including the first entry ever and a gap of
// a missed day, resets to 1.
func UpdateStreak(state *models.GamificationState, entryTime time.Time) {
	day := entryTime.Format(dayFormat)

	switch state.LastEntryDay {
	case day:
		// second entry on the same day
	case entryTime.AddDate(0, 0, -1).Format(dayFormat):
		state.Streaks.Daily++
	default:
		state.Streaks.Daily = 1
	}

	state.LastEntryDay = day
}
