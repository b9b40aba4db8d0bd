package store

import (
	"sort"
	"time"

	"github.com/moodcompanion/mood-companion/internal/models"
)

// defaultAverageMood is the baseline reported when no entries exist yet.
const defaultAverageMood = 5

// Trends aggregates the entries inside the trailing week or month window.
// With no entries in the window it returns the neutral baseline.
func (s *Store) Trends(period models.TrendPeriod) models.MoodTrend {
	s.mu.RLock()
	defer s.mu.RUnlock()

	days := 7
	if period == models.TrendMonth {
		days = 30
	}

	now := s.now()
	cutoff := now.AddDate(0, 0, -days)

	var recent []models.MoodEntry
	for _, entry := range s.entries {
		if entry.Timestamp.After(cutoff) {
			recent = append(recent, entry)
		}
	}

	if len(recent) == 0 {
		return models.MoodTrend{
			Period:           period,
			AverageMood:      defaultAverageMood,
			MoodDistribution: map[models.MoodType]int{},
			TopActivities:    []string{},
		}
	}

	intensitySum := 0
	distribution := make(map[models.MoodType]int)
	for _, entry := range recent {
		intensitySum += entry.Intensity
		distribution[entry.Mood]++
	}

	return models.MoodTrend{
		Period:           period,
		AverageMood:      float64(intensitySum) / float64(len(recent)),
		MoodDistribution: distribution,
		TopActivities:    topActivities(recent, 5),
		Improvement:      s.improvementLocked(now),
	}
}

// topActivities counts activity labels and returns the n most frequent.
// Ties keep first-encountered order.
func topActivities(entries []models.MoodEntry, n int) []string {
	counts := make(map[string]int)
	var order []string
	for _, entry := range entries {
		for _, activity := range entry.Activities {
			if counts[activity] == 0 {
				order = append(order, activity)
			}
			counts[activity]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > n {
		order = order[:n]
	}
	if order == nil {
		order = []string{}
	}
	return order
}

// improvementLocked compares the mean intensity of the trailing 7 days with
// the 7 days before. Positive means improving. Zero when either window is
// empty. Callers must hold the lock.
func (s *Store) improvementLocked(now time.Time) float64 {
	weekAgo := now.AddDate(0, 0, -7)
	twoWeeksAgo := now.AddDate(0, 0, -14)

	var recentSum, priorSum, recentN, priorN int
	for _, entry := range s.entries {
		switch {
		case entry.Timestamp.After(weekAgo):
			recentSum += entry.Intensity
			recentN++
		case entry.Timestamp.After(twoWeeksAgo):
			priorSum += entry.Intensity
			priorN++
		}
	}

	if recentN == 0 || priorN == 0 {
		return 0
	}
	return float64(recentSum)/float64(recentN) - float64(priorSum)/float64(priorN)
}

// CurrentStreak returns the consecutive-day check-in counter.
func (s *Store) CurrentStreak() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gamification.Streaks.Daily
}

// AverageMood returns the mean intensity over all entries, or the neutral
// baseline 5 when the journal is empty.
func (s *Store) AverageMood() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.entries) == 0 {
		return defaultAverageMood
	}

	sum := 0
	for _, entry := range s.entries {
		sum += entry.Intensity
	}
	return float64(sum) / float64(len(s.entries))
}

// MostFrequentMood returns the label occurring most often, defaulting to calm
// for an empty journal. Ties keep the first label encountered in the fold.
func (s *Store) MostFrequentMood() models.MoodType {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.entries) == 0 {
		return models.MoodCalm
	}

	counts := make(map[models.MoodType]int)
	var order []models.MoodType
	for _, entry := range s.entries {
		if counts[entry.Mood] == 0 {
			order = append(order, entry.Mood)
		}
		counts[entry.Mood]++
	}

	best := order[0]
	for _, mood := range order[1:] {
		if counts[mood] > counts[best] {
			best = mood
		}
	}
	return best
}
