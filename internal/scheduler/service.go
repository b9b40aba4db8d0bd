package scheduler

import (
	"time"

	"github.com/moodcompanion/mood-companion/internal/config"
	"github.com/moodcompanion/mood-companion/internal/insights"
	"github.com/moodcompanion/mood-companion/internal/notifications"
	"github.com/moodcompanion/mood-companion/internal/store"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Service handles scheduling of insight runs and reminders
type Service struct {
	config   *config.Config
	insights *insights.Service
	store    *store.Store
	notifier notifications.Interface
	cron     *cron.Cron
}

// NewService creates a new scheduler service
func NewService(cfg *config.Config, insightsService *insights.Service, st *store.Store, notifier notifications.Interface) *Service {
	loc := time.UTC
	if cfg.TimeZone != "" {
		if parsed, err := time.LoadLocation(cfg.TimeZone); err == nil {
			loc = parsed
		} else {
			logrus.Warnf("Invalid TIMEZONE %q, falling back to UTC: %v", cfg.TimeZone, err)
		}
	}

	return &Service{
		config:   cfg,
		insights: insightsService,
		store:    st,
		notifier: notifier,
		cron:     cron.New(cron.WithSeconds(), cron.WithLocation(loc)),
	}
}

// Start begins the scheduled runs
func (s *Service) Start() error {
	var cronExpression string

	switch s.config.ReportSchedule {
	case "daily":
		// Run daily at 9 AM
		cronExpression = "0 0 9 * * *"
	case "weekly":
		// Run weekly on Monday at 9 AM
		cronExpression = "0 0 9 * * MON"
	default:
		// Default to weekly
		cronExpression = "0 0 9 * * MON"
	}

	_, err := s.cron.AddFunc(cronExpression, func() {
		logrus.Info("Starting scheduled insight run")
		if err := s.insights.RunWeekly(); err != nil {
			logrus.Errorf("Scheduled insight run failed: %v", err)
		}
	})

	if err != nil {
		return err
	}

	// Daily check-in reminder at 9 AM, honoring the user's preference at
	// fire time so toggling it takes effect without a restart.
	_, err = s.cron.AddFunc("0 0 9 * * *", func() {
		if !s.store.Profile().Preferences.Notifications.DailyReminder {
			logrus.Debug("Daily reminder disabled, skipping")
			return
		}
		logrus.Info("Sending daily check-in reminder")
		if err := s.notifier.SendReminder("How are you feeling today? Take a minute to log your mood."); err != nil {
			logrus.Errorf("Daily reminder failed: %v", err)
		}
	})

	if err != nil {
		return err
	}

	s.cron.Start()
	logrus.Infof("Scheduler started with %s schedule (plus daily reminders)", s.config.ReportSchedule)
	return nil
}

// Stop stops the scheduler
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		logrus.Info("Scheduler stopped")
	}
}
