package models

import "time"

// MoodType is one of the 12 fixed mood labels a user can attach to an entry.
type MoodType string

const (
	MoodHappy       MoodType = "happy"
	MoodSad         MoodType = "sad"
	MoodAngry       MoodType = "angry"
	MoodAnxious     MoodType = "anxious"
	MoodCalm        MoodType = "calm"
	MoodExcited     MoodType = "excited"
	MoodTired       MoodType = "tired"
	MoodGrateful    MoodType = "grateful"
	MoodFrustrated  MoodType = "frustrated"
	MoodContent     MoodType = "content"
	MoodOverwhelmed MoodType = "overwhelmed"
	MoodPeaceful    MoodType = "peaceful"
)

// AllMoods lists every valid mood label in declaration order.
var AllMoods = []MoodType{
	MoodHappy, MoodSad, MoodAngry, MoodAnxious, MoodCalm, MoodExcited,
	MoodTired, MoodGrateful, MoodFrustrated, MoodContent, MoodOverwhelmed, MoodPeaceful,
}

// PositiveMoods are the labels that earn the positive-mood point bonus.
var PositiveMoods = map[MoodType]bool{
	MoodHappy:    true,
	MoodExcited:  true,
	MoodGrateful: true,
	MoodCalm:     true,
	MoodContent:  true,
	MoodPeaceful: true,
}

// Valid reports whether m is one of the 12 fixed labels.
func (m MoodType) Valid() bool {
	for _, mood := range AllMoods {
		if m == mood {
			return true
		}
	}
	return false
}

// Sentiment is a text-derived polarity classification.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// MoodEntry is one journaled moment.
type MoodEntry struct {
	ID               string    `json:"id"`
	Timestamp        time.Time `json:"timestamp"`
	Mood             MoodType  `json:"mood"`
	Intensity        int       `json:"intensity"` // 1-10
	Description      string    `json:"description,omitempty"`
	Activities       []string  `json:"activities"`
	Location         string    `json:"location,omitempty"`
	Weather          string    `json:"weather,omitempty"`
	Tags             []string  `json:"tags"`
	AISentimentScore float64   `json:"ai_sentiment_score"` // -1 to 1
	AIConfidence     float64   `json:"ai_confidence"`      // 0 to 1
	AISuggestions    []string  `json:"ai_suggestions,omitempty"`
	IsVerified       bool      `json:"is_verified"`
}

// EntryDraft carries the user-supplied fields of a new entry before the store
// assigns identity and runs the reward pipeline.
type EntryDraft struct {
	Mood        MoodType `json:"mood"`
	Intensity   int      `json:"intensity"`
	Description string   `json:"description,omitempty"`
	Activities  []string `json:"activities"`
	Location    string   `json:"location,omitempty"`
	Weather     string   `json:"weather,omitempty"`
	Tags        []string `json:"tags"`
}

// EntryPatch holds optional updates to an existing entry. Nil fields are left
// untouched. ID and Timestamp are never patchable.
type EntryPatch struct {
	Mood             *MoodType `json:"mood,omitempty"`
	Intensity        *int      `json:"intensity,omitempty"`
	Description      *string   `json:"description,omitempty"`
	Activities       []string  `json:"activities,omitempty"`
	Location         *string   `json:"location,omitempty"`
	Weather          *string   `json:"weather,omitempty"`
	Tags             []string  `json:"tags,omitempty"`
	AISentimentScore *float64  `json:"ai_sentiment_score,omitempty"`
	AIConfidence     *float64  `json:"ai_confidence,omitempty"`
	AISuggestions    []string  `json:"ai_suggestions,omitempty"`
	IsVerified       *bool     `json:"is_verified,omitempty"`
}

// SentimentResult is the output of the sentiment heuristic. It is ephemeral:
// the store keeps only the most recent one.
type SentimentResult struct {
	Sentiment   Sentiment      `json:"sentiment"`
	Score       float64        `json:"score"` // -1 to 1
	Confidence  float64        `json:"confidence"`
	Emotions    []string       `json:"emotions"`
	Suggestions []string       `json:"suggestions"`
	Mismatch    MismatchResult `json:"mismatch"`
}

// MismatchResult describes a disagreement between the declared mood and the
// text-derived sentiment.
type MismatchResult struct {
	Detected   bool   `json:"detected"`
	Reason     string `json:"reason"`
	Suggestion string `json:"suggestion"`
}

// MismatchRecord is the audit trail entry kept when a mismatch is flagged.
type MismatchRecord struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	SelectedMood MoodType  `json:"selected_mood"`
	AISentiment  Sentiment `json:"ai_sentiment"`
	Confidence   float64   `json:"confidence"`
	Adjusted     bool      `json:"adjusted"` // user revised their mood
}

// ConversationMode selects the tone of the chat companion.
type ConversationMode string

const (
	ConversationNeutral    ConversationMode = "neutral"
	ConversationSupportive ConversationMode = "supportive"
)

// Streaks tracks consecutive check-in counters.
type Streaks struct {
	Daily   int `json:"daily"`
	Weekly  int `json:"weekly"`
	Monthly int `json:"monthly"`
}

// GamificationState is the single mutable reward aggregate for the user.
type GamificationState struct {
	Points           int           `json:"points"`
	Level            int           `json:"level"`
	Experience       int           `json:"experience"`
	ExperienceToNext int           `json:"experience_to_next"`
	Streaks          Streaks       `json:"streaks"`
	LastEntryDay     string        `json:"last_entry_day,omitempty"` // YYYY-MM-DD of the latest entry
	Badges           []Badge       `json:"badges"`
	Achievements     []Achievement `json:"achievements"`
	Challenges       []Challenge   `json:"challenges"`
}

// NewGamificationState returns the zero-value reward state for a fresh user.
func NewGamificationState() GamificationState {
	return GamificationState{
		Level:            1,
		ExperienceToNext: 100,
		Badges:           []Badge{},
		Achievements:     []Achievement{},
		Challenges:       []Challenge{},
	}
}

// Achievement is a catalog entry with an unlock predicate evaluated on demand.
type Achievement struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Category    string     `json:"category"` // consistency, reflection, growth, special
	Rarity      string     `json:"rarity"`   // common, rare, epic, legendary
	Points      int        `json:"points"`
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
	Progress    int        `json:"progress"`
	MaxProgress int        `json:"max_progress"`
}

// Badge is the cosmetic counterpart minted when an achievement unlocks.
type Badge struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Rarity      string    `json:"rarity"`
	Category    string    `json:"category"`
	UnlockedAt  time.Time `json:"unlocked_at"`
}

// Challenge is a time-boxed goal. Stored and persisted but not driven by the
// core entry flow.
type Challenge struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Difficulty  string    `json:"difficulty"`
	Progress    int       `json:"progress"`
	Target      int       `json:"target"`
	Completed   bool      `json:"completed"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Insight is a short derived observation surfaced to the user.
type Insight struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"` // pattern, suggestion, achievement, trend
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	Read        bool      `json:"read"`
}

// NotificationPrefs controls which outbound messages the user wants.
type NotificationPrefs struct {
	DailyReminder     bool `json:"daily_reminder"`
	WeeklyInsights    bool `json:"weekly_insights"`
	AchievementAlerts bool `json:"achievement_alerts"`
}

// PrivacyPrefs controls what the store is allowed to retain.
type PrivacyPrefs struct {
	// StoreJournal opts in to retaining free-text descriptions. When off,
	// descriptions are discarded before an entry is stored.
	StoreJournal bool `json:"store_journal"`
}

// Preferences groups user-tunable settings.
type Preferences struct {
	Notifications NotificationPrefs `json:"notifications"`
	Privacy       PrivacyPrefs      `json:"privacy"`
}

// UserProfile is the single local user of the journal.
type UserProfile struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Preferences Preferences `json:"preferences"`
	CreatedAt   time.Time   `json:"created_at"`
	LastActive  time.Time   `json:"last_active"`
}

// TrendPeriod selects the window of a trends query.
type TrendPeriod string

const (
	TrendWeek  TrendPeriod = "week"
	TrendMonth TrendPeriod = "month"
)

// MoodTrend aggregates entries over a trailing window.
type MoodTrend struct {
	Period           TrendPeriod      `json:"period"`
	AverageMood      float64          `json:"average_mood"`
	MoodDistribution map[MoodType]int `json:"mood_distribution"`
	TopActivities    []string         `json:"top_activities"`
	// Improvement is the mean-intensity delta of the last 7 days against the
	// 7 days before; positive means improving.
	Improvement float64 `json:"improvement"`
}

// Report is the periodic artifact delivered by the notification channels.
type Report struct {
	GeneratedAt        time.Time         `json:"generated_at"`
	Period             string            `json:"period"` // "daily" or "weekly"
	TotalEntries       int               `json:"total_entries"`
	AverageMood        float64           `json:"average_mood"`
	MoodBreakdown      map[MoodType]int  `json:"mood_breakdown"`
	SentimentBreakdown map[Sentiment]int `json:"sentiment_breakdown"`
	TopActivities      []string          `json:"top_activities"`
	Insights           []string          `json:"insights"`
	Streak             int               `json:"streak"`
}
