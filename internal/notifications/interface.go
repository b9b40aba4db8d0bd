package notifications

import "github.com/moodcompanion/mood-companion/internal/models"

// Interface defines the contract for notification services
type Interface interface {
	SendReport(report *models.Report) error
	SendReminder(message string) error
}
