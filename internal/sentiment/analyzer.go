package sentiment

import (
	"regexp"
	"strings"

	"github.com/moodcompanion/mood-companion/internal/models"
)

// The heuristic is a fixed keyword scan. It is deterministic, total over its
// input domain, and keeps no state between calls.

var positiveWords = []string{
	"happy", "joy", "excited", "great", "wonderful", "amazing", "fantastic", "good",
	"positive", "grateful", "blessed", "lucky", "content", "peaceful", "calm",
	"relaxed", "satisfied", "fulfilled", "energized", "motivated", "inspired",
}

var negativeWords = []string{
	"sad", "angry", "frustrated", "anxious", "worried", "stressed", "tired",
	"exhausted", "depressed", "lonely", "scared", "afraid", "nervous", "upset",
	"disappointed", "hurt", "pain", "suffering", "miserable", "hopeless",
}

var emotionalKeywords = regexp.MustCompile(`(?i)(happy|sad|angry|excited|worried|calm|tired|grateful)`)

// emotionCategory maps a named emotion to its trigger keywords. Order matters:
// categories are checked in declaration order and only the first three matches
// are reported.
type emotionCategory struct {
	name     string
	keywords []string
}

var emotionCategories = []emotionCategory{
	{"joy", []string{"happy", "joy", "excited", "thrilled", "elated"}},
	{"sadness", []string{"sad", "depressed", "melancholy", "blue", "down"}},
	{"anger", []string{"angry", "furious", "irritated", "annoyed", "mad"}},
	{"fear", []string{"scared", "afraid", "terrified", "anxious", "worried"}},
	{"surprise", []string{"surprised", "shocked", "amazed", "astonished"}},
	{"disgust", []string{"disgusted", "repulsed", "revolted"}},
	{"trust", []string{"trusting", "confident", "secure", "safe"}},
	{"anticipation", []string{"excited", "eager", "hopeful", "optimistic"}},
	{"love", []string{"loving", "caring", "affectionate", "warm"}},
	{"gratitude", []string{"grateful", "thankful", "blessed", "appreciative"}},
	{"calm", []string{"calm", "peaceful", "serene", "tranquil", "relaxed"}},
	{"energy", []string{"energized", "motivated", "inspired", "pumped"}},
	{"tiredness", []string{"tired", "exhausted", "fatigued", "drained"}},
	{"contentment", []string{"content", "satisfied", "fulfilled", "complete"}},
	{"frustration", []string{"frustrated", "annoyed", "irritated", "bothered"}},
	{"overwhelm", []string{"overwhelmed", "stressed", "burdened", "swamped"}},
}

// expectedSentiment is the canonical mood-to-polarity table. Both mismatch
// detection and supportive-reply selection read from it, so the two can never
// diverge. "tired" is the one deliberately neutral label.
var expectedSentiment = map[models.MoodType]models.Sentiment{
	models.MoodHappy:       models.SentimentPositive,
	models.MoodExcited:     models.SentimentPositive,
	models.MoodGrateful:    models.SentimentPositive,
	models.MoodCalm:        models.SentimentPositive,
	models.MoodContent:     models.SentimentPositive,
	models.MoodPeaceful:    models.SentimentPositive,
	models.MoodSad:         models.SentimentNegative,
	models.MoodAngry:       models.SentimentNegative,
	models.MoodAnxious:     models.SentimentNegative,
	models.MoodFrustrated:  models.SentimentNegative,
	models.MoodOverwhelmed: models.SentimentNegative,
	models.MoodTired:       models.SentimentNeutral,
}

// ExpectedSentiment returns the polarity a mood label typically implies.
func ExpectedSentiment(mood models.MoodType) models.Sentiment {
	if s, ok := expectedSentiment[mood]; ok {
		return s
	}
	return models.SentimentNeutral
}

// MismatchThreshold is the confidence above which a polarity disagreement is
// surfaced to the user.
const MismatchThreshold = 0.7

// Analyze runs the sentiment heuristic over free text against the declared
// mood. It cannot fail; every branch is total.
func Analyze(text string, declared models.MoodType) models.SentimentResult {
	detected := classify(text)
	confidence := calculateConfidence(text)
	emotions := extractEmotions(text)

	return models.SentimentResult{
		Sentiment:   detected,
		Score:       sentimentScore(detected),
		Confidence:  confidence,
		Emotions:    emotions,
		Suggestions: buildSuggestions(detected, emotions),
		Mismatch:    detectMismatch(detected, declared, confidence),
	}
}

func classify(text string) models.Sentiment {
	words := strings.Fields(strings.ToLower(text))

	positiveCount := 0
	negativeCount := 0
	for _, word := range words {
		if containsWord(positiveWords, word) {
			positiveCount++
		}
		if containsWord(negativeWords, word) {
			negativeCount++
		}
	}

	if positiveCount > negativeCount {
		return models.SentimentPositive
	}
	if negativeCount > positiveCount {
		return models.SentimentNegative
	}
	return models.SentimentNeutral
}

func containsWord(list []string, word string) bool {
	for _, w := range list {
		if w == word {
			return true
		}
	}
	return false
}

func calculateConfidence(text string) float64 {
	wordCount := len(strings.Fields(text))

	confidence := 0.5
	if wordCount > 10 {
		confidence += 0.2
	}
	if wordCount > 20 {
		confidence += 0.1
	}
	if emotionalKeywords.MatchString(text) {
		confidence += 0.2
	}
	if strings.Contains(text, "!") {
		confidence += 0.1
	}
	if strings.Contains(text, "?") {
		confidence -= 0.1
	}

	if confidence < 0.1 {
		confidence = 0.1
	}
	if confidence > 0.95 {
		confidence = 0.95
	}
	return confidence
}

func extractEmotions(text string) []string {
	lower := strings.ToLower(text)

	emotions := []string{}
	for _, category := range emotionCategories {
		for _, keyword := range category.keywords {
			if strings.Contains(lower, keyword) {
				emotions = append(emotions, category.name)
				break
			}
		}
		if len(emotions) == 3 {
			break
		}
	}
	return emotions
}

func buildSuggestions(detected models.Sentiment, emotions []string) []string {
	var suggestions []string

	switch detected {
	case models.SentimentNegative:
		suggestions = append(suggestions,
			"Consider taking a few deep breaths to help you feel more centered.",
			"Would you like to try a quick mindfulness exercise?",
			"Remember that difficult emotions are temporary and valid.")
	case models.SentimentPositive:
		suggestions = append(suggestions,
			"Great to see you feeling positive! Consider journaling about what made today special.",
			"This is a perfect time to practice gratitude and savor the moment.")
	default:
		suggestions = append(suggestions,
			"Taking time to reflect on your feelings is a great self-care practice.",
			"Consider what activities might help you feel more balanced today.")
	}

	if containsWord(emotions, "anxiety") {
		suggestions = append(suggestions, "Try the 4-7-8 breathing technique.")
	}
	if containsWord(emotions, "anger") {
		suggestions = append(suggestions, "Physical activity can help release tension.")
	}
	if containsWord(emotions, "sadness") {
		suggestions = append(suggestions, "Consider reaching out to someone you trust.")
	}

	if len(suggestions) > 3 {
		suggestions = suggestions[:3]
	}
	return suggestions
}

var mismatchReasons = map[models.Sentiment]string{
	models.SentimentPositive: "Your text sounds quite positive, but you selected a mood that typically indicates negative feelings.",
	models.SentimentNegative: "Your text suggests you might be feeling down, but you selected a mood that typically indicates positive feelings.",
	models.SentimentNeutral:  "Your text seems neutral, but you selected a mood that typically indicates stronger emotions.",
}

var mismatchSuggestions = map[models.Sentiment]string{
	models.SentimentPositive: "Would you like to reconsider your mood selection, or add more context about what's affecting you?",
	models.SentimentNegative: "It's okay to have mixed feelings. Would you like to add more details about your current state?",
	models.SentimentNeutral:  "Consider if there might be underlying emotions that aren't immediately apparent.",
}

func detectMismatch(detected models.Sentiment, declared models.MoodType, confidence float64) models.MismatchResult {
	expected := ExpectedSentiment(declared)
	if detected != expected && confidence > MismatchThreshold {
		return models.MismatchResult{
			Detected:   true,
			Reason:     mismatchReasons[detected],
			Suggestion: mismatchSuggestions[detected],
		}
	}
	return models.MismatchResult{}
}

func sentimentScore(s models.Sentiment) float64 {
	switch s {
	case models.SentimentPositive:
		return 0.7
	case models.SentimentNegative:
		return -0.7
	default:
		return 0
	}
}
