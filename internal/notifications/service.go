package notifications

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/moodcompanion/mood-companion/internal/config"
	"github.com/moodcompanion/mood-companion/internal/models"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Service handles sending notifications via various channels
type Service struct {
	config *config.Config
	client *resty.Client
}

// Ensure Service implements Interface
var _ Interface = (*Service)(nil)

// WebhookMessage is the JSON card posted to the configured webhook.
type WebhookMessage struct {
	Title    string           `json:"title"`
	Text     string           `json:"text"`
	Sections []WebhookSection `json:"sections,omitempty"`
}

type WebhookSection struct {
	ActivityTitle string        `json:"activityTitle,omitempty"`
	ActivityText  string        `json:"activityText,omitempty"`
	Facts         []WebhookFact `json:"facts,omitempty"`
}

type WebhookFact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewService creates a new notification service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		client: resty.New().SetTimeout(30 * time.Second),
	}
}

// SendReport sends a report via configured notification channels
func (s *Service) SendReport(report *models.Report) error {
	var errors []string

	if s.config.WebhookURL != "" {
		if err := s.sendToWebhook(report); err != nil {
			logrus.Errorf("Failed to send webhook notification: %v", err)
			errors = append(errors, fmt.Sprintf("Webhook: %v", err))
		} else {
			logrus.Info("Successfully sent report to webhook")
		}
	}

	if s.config.NotificationEmail != "" {
		if err := s.sendEmail(report); err != nil {
			logrus.Errorf("Failed to send email notification: %v", err)
			errors = append(errors, fmt.Sprintf("Email: %v", err))
		} else {
			logrus.Info("Successfully sent report via email")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("notification errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// SendReminder delivers a short nudge through the same channels.
func (s *Service) SendReminder(message string) error {
	var errors []string

	if s.config.WebhookURL != "" {
		card := &WebhookMessage{Title: "Mood check-in reminder", Text: message}
		if err := s.postWebhook(card); err != nil {
			logrus.Errorf("Failed to send reminder webhook: %v", err)
			errors = append(errors, fmt.Sprintf("Webhook: %v", err))
		}
	}

	if s.config.NotificationEmail != "" {
		m := gomail.NewMessage()
		m.SetHeader("From", s.config.SMTPUsername)
		m.SetHeader("To", s.config.NotificationEmail)
		m.SetHeader("Subject", "Mood check-in reminder")
		m.SetBody("text/plain", message)

		d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)
		if err := d.DialAndSend(m); err != nil {
			logrus.Errorf("Failed to send reminder email: %v", err)
			errors = append(errors, fmt.Sprintf("Email: %v", err))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("notification errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

func (s *Service) sendToWebhook(report *models.Report) error {
	return s.postWebhook(s.buildWebhookMessage(report))
}

func (s *Service) postWebhook(message *WebhookMessage) error {
	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(message).
		Post(s.config.WebhookURL)

	if err != nil {
		return fmt.Errorf("failed to send webhook message: %w", err)
	}

	if resp.StatusCode() != 200 {
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return nil
}

func (s *Service) buildWebhookMessage(report *models.Report) *WebhookMessage {
	message := &WebhookMessage{
		Title: fmt.Sprintf("Mood Report - %s", strings.Title(report.Period)),
		Text:  fmt.Sprintf("You logged %d entries in the last %s", report.TotalEntries, report.Period),
	}

	facts := []WebhookFact{
		{Name: "Total Entries", Value: fmt.Sprintf("%d", report.TotalEntries)},
		{Name: "Average Mood", Value: fmt.Sprintf("%.1f", report.AverageMood)},
		{Name: "Current Streak", Value: fmt.Sprintf("%d days", report.Streak)},
		{Name: "Generated", Value: report.GeneratedAt.Format("2006-01-02 15:04:05 UTC")},
	}
	for sentiment, count := range report.SentimentBreakdown {
		facts = append(facts, WebhookFact{
			Name:  fmt.Sprintf("%s Entries", strings.Title(string(sentiment))),
			Value: fmt.Sprintf("%d", count),
		})
	}
	message.Sections = append(message.Sections, WebhookSection{
		ActivityTitle: "Summary",
		Facts:         facts,
	})

	if len(report.Insights) > 0 {
		message.Sections = append(message.Sections, WebhookSection{
			ActivityTitle: "Insights",
			ActivityText:  strings.Join(report.Insights, "\n\n"),
		})
	}

	if len(report.TopActivities) > 0 {
		message.Sections = append(message.Sections, WebhookSection{
			ActivityTitle: "Top Activities",
			ActivityText:  strings.Join(report.TopActivities, ", "),
		})
	}

	return message
}

func (s *Service) sendEmail(report *models.Report) error {
	subject := fmt.Sprintf("Mood Report - %s (%d entries)",
		strings.Title(report.Period), report.TotalEntries)

	htmlBody, err := s.buildEmailHTML(report)
	if err != nil {
		return fmt.Errorf("failed to build email HTML: %w", err)
	}

	textBody := s.buildEmailText(report)

	m := gomail.NewMessage()
	m.SetHeader("From", s.config.SMTPUsername)
	m.SetHeader("To", s.config.NotificationEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func (s *Service) buildEmailHTML(report *models.Report) (string, error) {
	tmpl := `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Mood Report</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        .header { background-color: #6c5ce7; color: white; padding: 20px; border-radius: 5px; }
        .summary { background-color: #f5f5f5; padding: 15px; margin: 20px 0; border-radius: 5px; }
        .insight { border-left: 4px solid #6c5ce7; padding: 10px; margin: 10px 0; background-color: #fafafa; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Your Mood Report</h1>
        <p>{{.Period | title}} report generated on {{.GeneratedAt.Format "January 2, 2006 at 3:04 PM UTC"}}</p>
    </div>

    <div class="summary">
        <h2>Summary</h2>
        <p><strong>Entries Logged:</strong> {{.TotalEntries}}</p>
        <p><strong>Average Mood:</strong> {{printf "%.1f" .AverageMood}} / 10</p>
        <p><strong>Current Streak:</strong> {{.Streak}} days</p>
        {{range $mood, $count := .MoodBreakdown}}
            <p><strong>{{$mood | title}}:</strong> {{$count}}</p>
        {{end}}
    </div>

    {{if .Insights}}
    <h2>Insights</h2>
    {{range .Insights}}
        <div class="insight">{{.}}</div>
    {{end}}
    {{end}}

    {{if .TopActivities}}
    <h2>Top Activities</h2>
    <p>{{join .TopActivities ", "}}</p>
    {{end}}

    <hr>
    <p><small>This report was generated automatically by your Mood Companion.</small></p>
</body>
</html>
`

	t := template.New("email").Funcs(template.FuncMap{
		"title": func(v interface{}) string { return strings.Title(fmt.Sprint(v)) },
		"join":  strings.Join,
	})

	t, err := t.Parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, report); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *Service) buildEmailText(report *models.Report) string {
	var text strings.Builder

	text.WriteString(fmt.Sprintf("Mood Report - %s\n", strings.Title(report.Period)))
	text.WriteString(fmt.Sprintf("Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC")))

	text.WriteString("SUMMARY\n")
	text.WriteString("=======\n")
	text.WriteString(fmt.Sprintf("Entries Logged: %d\n", report.TotalEntries))
	text.WriteString(fmt.Sprintf("Average Mood: %.1f / 10\n", report.AverageMood))
	text.WriteString(fmt.Sprintf("Current Streak: %d days\n", report.Streak))

	for mood, count := range report.MoodBreakdown {
		text.WriteString(fmt.Sprintf("%s: %d\n", strings.Title(string(mood)), count))
	}

	if len(report.Insights) > 0 {
		text.WriteString("\nINSIGHTS\n")
		text.WriteString("========\n")
		for i, insight := range report.Insights {
			text.WriteString(fmt.Sprintf("%d. %s\n", i+1, insight))
		}
	}

	if len(report.TopActivities) > 0 {
		text.WriteString(fmt.Sprintf("\nTop Activities: %s\n", strings.Join(report.TopActivities, ", ")))
	}

	text.WriteString("\n---\nThis report was generated automatically by your Mood Companion.\n")

	return text.String()
}
