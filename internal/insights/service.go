package insights

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/moodcompanion/mood-companion/internal/config"
	"github.com/moodcompanion/mood-companion/internal/models"
	"github.com/moodcompanion/mood-companion/internal/notifications"
	"github.com/moodcompanion/mood-companion/internal/sentiment"
	"github.com/moodcompanion/mood-companion/internal/storage"
	"github.com/moodcompanion/mood-companion/internal/store"
	"github.com/sirupsen/logrus"
)

// Service builds periodic mood reports from the journal, archives them, and
// delivers them through the notification channels.
type Service struct {
	config   *config.Config
	store    *store.Store
	storage  storage.Interface
	notifier notifications.Interface
	metrics  *Metrics
	mu       sync.RWMutex
}

// Metrics holds report-run metrics
type Metrics struct {
	TotalEntries       int            `json:"total_entries"`
	LastRun            time.Time      `json:"last_run"`
	LastRunDuration    string         `json:"last_run_duration"`
	MoodBreakdown      map[string]int `json:"mood_breakdown"`
	SentimentBreakdown map[string]int `json:"sentiment_breakdown"`
	ErrorCount         int            `json:"error_count"`
}

// NewService creates a new insights service
func NewService(cfg *config.Config, st *store.Store, backend storage.Interface, notifier notifications.Interface) *Service {
	return &Service{
		config:   cfg,
		store:    st,
		storage:  backend,
		notifier: notifier,
		metrics: &Metrics{
			MoodBreakdown:      make(map[string]int),
			SentimentBreakdown: make(map[string]int),
		},
	}
}

// RunWeekly builds the report for the trailing week, archives it, sends it
// through the configured channels, and leaves a trend insight in the journal.
func (s *Service) RunWeekly() error {
	start := time.Now()
	logrus.Info("Starting weekly insight run")

	report := s.BuildReport()

	errorCount := 0
	if err := s.archiveReport(report); err != nil {
		logrus.Errorf("Failed to archive report: %v", err)
		errorCount++
	}

	if err := s.notifier.SendReport(report); err != nil {
		logrus.Errorf("Failed to send report: %v", err)
		errorCount++
	}

	s.store.AddInsight("trend", "Your weekly check-in",
		fmt.Sprintf("You logged %d entries this week with an average mood of %.1f.",
			report.TotalEntries, report.AverageMood))

	s.updateMetrics(report, time.Since(start), errorCount)

	logrus.Infof("Weekly insight run completed in %v (%d entries)", time.Since(start), report.TotalEntries)
	if errorCount > 0 {
		return fmt.Errorf("weekly insight run finished with %d errors", errorCount)
	}
	return nil
}

// BuildReport assembles the report for the window matching the configured
// schedule: the trailing day for a daily schedule, the trailing week
// otherwise.
func (s *Service) BuildReport() *models.Report {
	days, period := 7, "weekly"
	if s.config.ReportSchedule == "daily" {
		days, period = 1, "daily"
	}

	entries := s.store.Entries()
	cutoff := time.Now().AddDate(0, 0, -days)

	moodCount := make(map[models.MoodType]int)
	sentimentCount := make(map[models.Sentiment]int)
	activityCount := make(map[string]int)
	var activityOrder []string
	total, intensitySum := 0, 0
	for _, entry := range entries {
		if !entry.Timestamp.After(cutoff) {
			continue
		}
		total++
		intensitySum += entry.Intensity
		moodCount[entry.Mood]++
		sentimentCount[scoreSentiment(entry.AISentimentScore)]++
		for _, activity := range entry.Activities {
			if activityCount[activity] == 0 {
				activityOrder = append(activityOrder, activity)
			}
			activityCount[activity]++
		}
	}

	averageMood := 0.0
	if total > 0 {
		averageMood = float64(intensitySum) / float64(total)
	}

	sort.SliceStable(activityOrder, func(i, j int) bool {
		return activityCount[activityOrder[i]] > activityCount[activityOrder[j]]
	})
	if len(activityOrder) > 5 {
		activityOrder = activityOrder[:5]
	}
	if activityOrder == nil {
		activityOrder = []string{}
	}

	return &models.Report{
		GeneratedAt:        time.Now(),
		Period:             period,
		TotalEntries:       total,
		AverageMood:        averageMood,
		MoodBreakdown:      moodCount,
		SentimentBreakdown: sentimentCount,
		TopActivities:      activityOrder,
		Insights:           sentiment.GenerateInsights(entries),
		Streak:             s.store.CurrentStreak(),
	}
}

func scoreSentiment(score float64) models.Sentiment {
	switch {
	case score > 0:
		return models.SentimentPositive
	case score < 0:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

func (s *Service) archiveReport(report *models.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	filename := fmt.Sprintf("report-%s.json", report.GeneratedAt.Format("2006-01-02-15-04-05"))
	return s.storage.Store(filename, data)
}

func (s *Service) updateMetrics(report *models.Report, duration time.Duration, errorCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.TotalEntries = report.TotalEntries
	s.metrics.LastRun = time.Now()
	s.metrics.LastRunDuration = duration.String()
	s.metrics.ErrorCount = errorCount

	s.metrics.MoodBreakdown = make(map[string]int)
	s.metrics.SentimentBreakdown = make(map[string]int)
	for mood, count := range report.MoodBreakdown {
		s.metrics.MoodBreakdown[string(mood)] = count
	}
	for sent, count := range report.SentimentBreakdown {
		s.metrics.SentimentBreakdown[strings.ToLower(string(sent))] = count
	}
}

// GetMetrics returns current metrics as JSON
func (s *Service) GetMetrics() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, _ := json.MarshalIndent(s.metrics, "", "  ")
	return string(data)
}
