package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/moodcompanion/mood-companion/internal/config"
	"github.com/moodcompanion/mood-companion/internal/insights"
	"github.com/moodcompanion/mood-companion/internal/models"
	"github.com/moodcompanion/mood-companion/internal/sentiment"
	"github.com/moodcompanion/mood-companion/internal/storage"
	"github.com/moodcompanion/mood-companion/internal/store"
)

const outputDir = "preview_output"

// PreviewNotifier outputs reports to terminal and files
type PreviewNotifier struct{}

func (p *PreviewNotifier) SendReport(report *models.Report) error {
	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Println("📊 MOOD REPORT")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("📅 Period: %s\n", report.Period)
	fmt.Printf("🕒 Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Printf("📈 Entries Logged: %d\n", report.TotalEntries)
	fmt.Printf("💙 Average Mood: %.1f / 10\n", report.AverageMood)
	fmt.Printf("🔥 Current Streak: %d days\n", report.Streak)

	if len(report.MoodBreakdown) > 0 {
		fmt.Println("\n🎭 Moods:")
		for mood, count := range report.MoodBreakdown {
			fmt.Printf("   • %-12s %d entries\n", string(mood)+":", count)
		}
	}

	if len(report.SentimentBreakdown) > 0 {
		fmt.Println("\n💭 Sentiment Analysis:")
		for sentiment, count := range report.SentimentBreakdown {
			emoji := "😐"
			switch sentiment {
			case models.SentimentPositive:
				emoji = "😊"
			case models.SentimentNegative:
				emoji = "😞"
			}
			fmt.Printf("   %s %-10s %d entries\n", emoji, strings.ToLower(string(sentiment))+":", count)
		}
	}

	if len(report.Insights) > 0 {
		fmt.Println("\n💡 Insights:")
		for i, insight := range report.Insights {
			fmt.Printf("   %d. %s\n", i+1, insight)
		}
	}

	if len(report.TopActivities) > 0 {
		fmt.Printf("\n🏃 Top Activities: %s\n", strings.Join(report.TopActivities, ", "))
	}

	if err := p.saveReportToFile(report); err != nil {
		fmt.Printf("\n⚠️  Warning: Could not save to file: %v\n", err)
	}

	fmt.Println("\n" + strings.Repeat("=", 70))
	return nil
}

func (p *PreviewNotifier) SendReminder(message string) error {
	fmt.Printf("\n🔔 Reminder: %s\n", message)
	return nil
}

func (p *PreviewNotifier) saveReportToFile(report *models.Report) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	timestamp := report.GeneratedAt.Format("2006-01-02_15-04-05")
	filename := filepath.Join(outputDir, fmt.Sprintf("mood_report_%s.json", timestamp))

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return err
	}

	fmt.Printf("\n💾 Report saved to: %s\n", filename)
	return nil
}

func main() {
	fmt.Println("🌱 Mood Companion - Report Preview")
	fmt.Println("==================================")

	cfg := &config.Config{
		SnapshotBlob:    "preview-state.json",
		StoreJournal:    true,
		AutoVerifyFloor: 0.6,
	}

	backend, err := storage.NewLocalStorage(outputDir)
	if err != nil {
		fmt.Printf("❌ Error creating preview storage: %v\n", err)
		os.Exit(1)
	}
	// Start from a clean slate on every run.
	_ = backend.Delete(cfg.SnapshotBlob)

	journalStore := store.New(cfg, backend)
	notifier := &PreviewNotifier{}
	service := insights.NewService(cfg, journalStore, backend, notifier)

	// Seed a week of sample entries
	sampleDrafts := []models.EntryDraft{
		{
			Mood:        models.MoodHappy,
			Intensity:   8,
			Description: "Had a wonderful walk in the park and caught up with an old friend. Feeling great!",
			Activities:  []string{"walking", "socializing"},
			Tags:        []string{"friends"},
		},
		{
			Mood:        models.MoodCalm,
			Intensity:   7,
			Description: "Quiet morning with tea and a good book. Peaceful and relaxed.",
			Activities:  []string{"reading"},
		},
		{
			Mood:        models.MoodTired,
			Intensity:   4,
			Description: "Long day at work, exhausted and drained by the evening.",
			Activities:  []string{"work"},
			Tags:        []string{"work"},
		},
		{
			Mood:        models.MoodExcited,
			Intensity:   9,
			Description: "Amazing news today! The project I have been working on was approved. So thrilled!",
			Activities:  []string{"work", "celebrating"},
			Tags:        []string{"work", "milestone"},
		},
		{
			Mood:        models.MoodAnxious,
			Intensity:   5,
			Description: "Worried about the presentation tomorrow. Stressed and a bit overwhelmed.",
			Activities:  []string{"work"},
		},
	}

	fmt.Printf("\n📊 Seeding %d sample entries...\n", len(sampleDrafts))

	for _, draft := range sampleDrafts {
		entry, points, err := journalStore.AddEntry(draft)
		if err != nil {
			fmt.Printf("❌ Error adding sample entry: %v\n", err)
			os.Exit(1)
		}
		analysis := sentiment.Analyze(draft.Description, draft.Mood)
		journalStore.ApplyAnalysis(entry.ID, analysis)
		fmt.Printf("   • %-8s intensity %d → %s sentiment, %d points\n",
			string(entry.Mood), entry.Intensity, strings.ToLower(string(analysis.Sentiment)), points)
	}

	report := service.BuildReport()

	if err := notifier.SendReport(report); err != nil {
		fmt.Printf("❌ Error sending report: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\n✅ Report preview completed!")
	fmt.Println("\n💡 Next steps:")
	fmt.Printf("   • Check the '%s' directory for the saved JSON report\n", outputDir)
	fmt.Println("   • Run 'go test ./...' for the full test suite")
	fmt.Println("   • Start the server with 'go run cmd/server/main.go'")
}
