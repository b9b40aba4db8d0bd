package sentiment

import (
	"github.com/moodcompanion/mood-companion/internal/models"
)

// Reply is a short supportive message with follow-up suggestions.
type Reply struct {
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions"`
}

// SupportiveReply picks a supportive message keyed by an effective polarity:
// the detected sentiment when one is available, otherwise the polarity the
// declared mood implies. A mood whose canonical polarity is neutral resolves
// to the negative reply set, so every mood yields a concrete reply.
func SupportiveReply(mood models.MoodType, detected models.Sentiment) Reply {
	effective := detected
	if effective == "" {
		effective = ExpectedSentiment(mood)
		if effective == models.SentimentNeutral {
			effective = models.SentimentNegative
		}
	}

	switch effective {
	case models.SentimentNegative:
		return Reply{
			Message: "I'm sorry you're feeling low today. You're not alone, and small steps help.",
			Suggestions: []string{
				"Try 4-7-8 breathing for a minute",
				"Write 2-3 sentences about what feels heavy",
				"Take a 5-minute walk or stretch",
			},
		}
	case models.SentimentPositive:
		return Reply{
			Message: "That's wonderful! Savor this energy and let's help it last.",
			Suggestions: []string{
				"Note one thing that made today good",
				"Send a kind message to someone you appreciate",
				"Queue a favorite song and enjoy it fully",
			},
		}
	default:
		return Reply{
			Message: "Feeling neutral is okay. Want to share what's on your mind?",
			Suggestions: []string{
				"Name one thing that feels okay right now",
				"Consider a short body scan to check in",
				"Pick a small, doable task for momentum",
			},
		}
	}
}

// GenerateInsights derives up to three observations from the entry history.
// Entries are expected newest first.
func GenerateInsights(entries []models.MoodEntry) []string {
	if len(entries) < 3 {
		return []string{"Keep logging your moods to unlock personalized insights!"}
	}

	var insights []string

	moodCounts := make(map[models.MoodType]int)
	intensitySum := 0
	for _, entry := range entries {
		moodCounts[entry.Mood]++
		intensitySum += entry.Intensity
	}

	mostFrequent := models.MoodType("")
	best := 0
	for _, mood := range models.AllMoods {
		if moodCounts[mood] > best {
			best = moodCounts[mood]
			mostFrequent = mood
		}
	}

	averageIntensity := float64(intensitySum) / float64(len(entries))

	if mostFrequent == models.MoodHappy || mostFrequent == models.MoodExcited {
		insights = append(insights, "You've been feeling quite positive lately! This is a great foundation for mental wellness.")
	}

	if averageIntensity > 7 {
		insights = append(insights, "Your mood intensity has been quite high. Consider what's contributing to these strong emotions.")
	} else if averageIntensity < 4 {
		insights = append(insights, "Your moods have been on the lower side. Remember that it's okay to seek support when needed.")
	}

	recent := entries
	if len(recent) > 7 {
		recent = recent[:7]
	}
	var older []models.MoodEntry
	if len(entries) > 7 {
		older = entries[7:]
		if len(older) > 7 {
			older = older[:7]
		}
	}
	if len(recent) > 0 && len(older) > 0 {
		recentAvg := meanIntensity(recent)
		olderAvg := meanIntensity(older)
		if recentAvg > olderAvg+1 {
			insights = append(insights, "Your mood has been improving recently! Keep up whatever positive habits you've been practicing.")
		} else if recentAvg < olderAvg-1 {
			insights = append(insights, "Your mood has been trending downward. Consider reaching out to friends, family, or a professional for support.")
		}
	}

	if len(insights) > 3 {
		insights = insights[:3]
	}
	return insights
}

func meanIntensity(entries []models.MoodEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	sum := 0
	for _, entry := range entries {
		sum += entry.Intensity
	}
	return float64(sum) / float64(len(entries))
}

var activitySuggestions = map[models.MoodType][]string{
	models.MoodHappy: {
		"Share your joy with someone you care about",
		"Try a new hobby or creative activity",
		"Go for a walk and enjoy nature",
		"Listen to uplifting music",
		"Practice gratitude by writing down 3 things you appreciate",
	},
	models.MoodSad: {
		"Reach out to a friend or family member",
		"Try gentle physical activity like yoga or walking",
		"Listen to calming music",
		"Write about your feelings in a journal",
		"Practice self-compassion and be kind to yourself",
	},
	models.MoodAngry: {
		"Take deep breaths and count to 10",
		"Go for a run or do intense exercise",
		"Write down your feelings to process them",
		"Try progressive muscle relaxation",
		"Take a break from the situation if possible",
	},
	models.MoodAnxious: {
		"Practice the 4-7-8 breathing technique",
		"Try grounding exercises (5-4-3-2-1 method)",
		"Take a warm bath or shower",
		"Listen to guided meditation",
		"Write down your worries and possible solutions",
	},
	models.MoodCalm: {
		"Maintain this peaceful state with meditation",
		"Enjoy a quiet activity like reading or drawing",
		"Take a leisurely walk",
		"Practice mindfulness throughout your day",
		"Share this calm energy with others",
	},
	models.MoodExcited: {
		"Channel this energy into a creative project",
		"Plan something fun to look forward to",
		"Share your enthusiasm with others",
		"Try a new activity or adventure",
		"Use this motivation to tackle important tasks",
	},
	models.MoodTired: {
		"Take a short nap if possible",
		"Do gentle stretching or yoga",
		"Stay hydrated and eat nutritious food",
		"Take breaks throughout your day",
		"Practice good sleep hygiene tonight",
	},
	models.MoodGrateful: {
		"Write a thank you note to someone",
		"Share your gratitude with others",
		"Create a gratitude jar or journal",
		"Volunteer or help someone in need",
		"Reflect on the positive aspects of your life",
	},
	models.MoodFrustrated: {
		"Take a step back and reassess the situation",
		"Break down problems into smaller steps",
		"Talk to someone about what's bothering you",
		"Try a different approach to the problem",
		"Practice patience and self-compassion",
	},
	models.MoodContent: {
		"Savor this feeling of satisfaction",
		"Continue with activities that bring you peace",
		"Share this contentment with loved ones",
		"Reflect on what's working well in your life",
		"Use this stable state to plan for the future",
	},
	models.MoodOverwhelmed: {
		"Prioritize your tasks and focus on one thing at a time",
		"Ask for help from friends, family, or colleagues",
		"Take breaks and practice self-care",
		"Simplify your schedule where possible",
		"Practice saying \"no\" to additional commitments",
	},
	models.MoodPeaceful: {
		"Maintain this tranquility with meditation",
		"Spend time in nature or quiet spaces",
		"Practice mindfulness and presence",
		"Share this peace with others",
		"Use this calm state for reflection and planning",
	},
}

// SuggestActivities returns the fixed activity ideas for a mood. Unknown
// labels fall back to the calm set.
func SuggestActivities(mood models.MoodType) []string {
	if suggestions, ok := activitySuggestions[mood]; ok {
		return suggestions
	}
	return activitySuggestions[models.MoodCalm]
}
