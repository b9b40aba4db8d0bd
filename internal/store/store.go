package store

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/moodcompanion/mood-companion/internal/config"
	"github.com/moodcompanion/mood-companion/internal/gamification"
	"github.com/moodcompanion/mood-companion/internal/models"
	"github.com/moodcompanion/mood-companion/internal/storage"
	"github.com/sirupsen/logrus"
)

const (
	snapshotVersion    = 1
	maxMismatchHistory = 100
	maxAuthenticity    = 100
)

// snapshot is the persisted subset of the application state. Transient flags
// (loading, current view, in-flight analysis) are deliberately absent.
type snapshot struct {
	Version           int                     `json:"version"`
	User              models.UserProfile      `json:"user"`
	Entries           []models.MoodEntry      `json:"entries"`
	Gamification      models.GamificationState `json:"gamification"`
	Insights          []models.Insight        `json:"insights"`
	ConversationMode  models.ConversationMode `json:"conversation_mode"`
	AuthenticityScore int                     `json:"authenticity_score"`
	MismatchHistory   []models.MismatchRecord `json:"mismatch_history"`
	SupportiveReply   string                  `json:"supportive_reply,omitempty"`
}

// Store owns the entry list, the reward state, the mismatch history and the
// UI-addressable flags. Every mutation writes a best-effort snapshot through
// the storage backend.
type Store struct {
	mu      sync.RWMutex
	config  *config.Config
	storage storage.Interface
	now     func() time.Time

	user              models.UserProfile
	entries           []models.MoodEntry
	gamification      models.GamificationState
	insights          []models.Insight
	conversationMode  models.ConversationMode
	authenticityScore int
	mismatchHistory   []models.MismatchRecord
	supportiveReply   string

	// transient, never persisted
	lastAnalysis *models.SentimentResult
	loading      bool
	currentView  string
}

// New builds a store backed by the given storage and rehydrates the last
// persisted snapshot if one exists. A missing or unreadable snapshot starts a
// fresh journal; it never fails startup.
func New(cfg *config.Config, backend storage.Interface) *Store {
	s := &Store{
		config:  cfg,
		storage: backend,
		now:     time.Now,

		user:              defaultProfile(cfg),
		entries:           []models.MoodEntry{},
		gamification:      models.NewGamificationState(),
		insights:          []models.Insight{},
		conversationMode:  models.ConversationSupportive,
		authenticityScore: 80,
		mismatchHistory:   []models.MismatchRecord{},
		currentView:       "dashboard",
	}

	s.load()
	return s
}

func defaultProfile(cfg *config.Config) models.UserProfile {
	now := time.Now()
	return models.UserProfile{
		ID:    uuid.NewString(),
		Name:  "Local User",
		Email: cfg.NotificationEmail,
		Preferences: models.Preferences{
			Notifications: models.NotificationPrefs{
				DailyReminder:     true,
				WeeklyInsights:    true,
				AchievementAlerts: true,
			},
			Privacy: models.PrivacyPrefs{StoreJournal: cfg.StoreJournal},
		},
		CreatedAt:  now,
		LastActive: now,
	}
}

func (s *Store) load() {
	data, err := s.storage.Retrieve(s.config.SnapshotBlob)
	if err != nil {
		logrus.Infof("No previous state snapshot, starting fresh: %v", err)
		return
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		logrus.Warnf("Could not decode state snapshot, starting fresh: %v", err)
		return
	}

	s.user = snap.User
	s.entries = snap.Entries
	s.gamification = snap.Gamification
	s.insights = snap.Insights
	s.conversationMode = snap.ConversationMode
	s.authenticityScore = snap.AuthenticityScore
	s.mismatchHistory = snap.MismatchHistory
	s.supportiveReply = snap.SupportiveReply

	if s.entries == nil {
		s.entries = []models.MoodEntry{}
	}
	if s.insights == nil {
		s.insights = []models.Insight{}
	}
	if s.mismatchHistory == nil {
		s.mismatchHistory = []models.MismatchRecord{}
	}
	if s.conversationMode == "" {
		s.conversationMode = models.ConversationSupportive
	}

	logrus.Infof("Restored state snapshot: %d entries, level %d", len(s.entries), s.gamification.Level)
}

// persist writes the current snapshot. Callers must hold the lock. Failures
// are logged and swallowed: losing a snapshot must never fail a mutation.
func (s *Store) persist() {
	snap := snapshot{
		Version:           snapshotVersion,
		User:              s.user,
		Entries:           s.entries,
		Gamification:      s.gamification,
		Insights:          s.insights,
		ConversationMode:  s.conversationMode,
		AuthenticityScore: s.authenticityScore,
		MismatchHistory:   s.mismatchHistory,
		SupportiveReply:   s.supportiveReply,
	}

	data, err := json.Marshal(snap)
	if err != nil {
		logrus.Warnf("Failed to marshal state snapshot: %v", err)
		return
	}

	if err := s.storage.Store(s.config.SnapshotBlob, data); err != nil {
		logrus.Warnf("Failed to persist state snapshot: %v", err)
	}
}

// AddEntry validates a draft, assigns identity, applies the privacy policy,
// prepends the entry and folds it into the reward state. It returns the stored
// entry together with the points awarded.
func (s *Store) AddEntry(draft models.EntryDraft) (models.MoodEntry, int, error) {
	if !draft.Mood.Valid() {
		return models.MoodEntry{}, 0, fmt.Errorf("unknown mood label %q", draft.Mood)
	}
	if draft.Intensity < 1 || draft.Intensity > 10 {
		return models.MoodEntry{}, 0, fmt.Errorf("intensity must be between 1 and 10, got %d", draft.Intensity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry := models.MoodEntry{
		ID:         uuid.NewString(),
		Timestamp:  now,
		Mood:       draft.Mood,
		Intensity:  draft.Intensity,
		Activities: dedupe(draft.Activities),
		Location:   draft.Location,
		Weather:    draft.Weather,
		Tags:       dedupe(draft.Tags),
	}

	// Free text is only retained when the user opted in.
	if s.user.Preferences.Privacy.StoreJournal {
		entry.Description = draft.Description
	}

	s.entries = append([]models.MoodEntry{entry}, s.entries...)

	// Points are earned on the submitted draft, before privacy stripping.
	points := gamification.PointsForEntry(draft)
	gamification.UpdateStreak(&s.gamification, now)
	gamification.ApplyPoints(&s.gamification, points)

	s.user.LastActive = now
	s.persist()

	return entry, points, nil
}

// dedupe drops repeated labels while preserving first-seen order.
func dedupe(labels []string) []string {
	seen := make(map[string]bool, len(labels))
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		out = append(out, label)
	}
	return out
}

// UpdateEntry merges a patch into the matching entry. Unknown ids are a
// silent no-op. ID and timestamp are never touched.
func (s *Store) UpdateEntry(id string, patch models.EntryPatch) error {
	if patch.Mood != nil && !patch.Mood.Valid() {
		return fmt.Errorf("unknown mood label %q", *patch.Mood)
	}
	if patch.Intensity != nil && (*patch.Intensity < 1 || *patch.Intensity > 10) {
		return fmt.Errorf("intensity must be between 1 and 10, got %d", *patch.Intensity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID != id {
			continue
		}
		applyPatch(&s.entries[i], patch)
		s.persist()
		return nil
	}
	return nil
}

func applyPatch(entry *models.MoodEntry, patch models.EntryPatch) {
	if patch.Mood != nil {
		entry.Mood = *patch.Mood
	}
	if patch.Intensity != nil {
		entry.Intensity = *patch.Intensity
	}
	if patch.Description != nil {
		entry.Description = *patch.Description
	}
	if patch.Activities != nil {
		entry.Activities = dedupe(patch.Activities)
	}
	if patch.Location != nil {
		entry.Location = *patch.Location
	}
	if patch.Weather != nil {
		entry.Weather = *patch.Weather
	}
	if patch.Tags != nil {
		entry.Tags = dedupe(patch.Tags)
	}
	if patch.AISentimentScore != nil {
		entry.AISentimentScore = *patch.AISentimentScore
	}
	if patch.AIConfidence != nil {
		entry.AIConfidence = *patch.AIConfidence
	}
	if patch.AISuggestions != nil {
		entry.AISuggestions = patch.AISuggestions
	}
	if patch.IsVerified != nil {
		entry.IsVerified = *patch.IsVerified
	}
}

// DeleteEntry removes the matching entry. Unknown ids are a silent no-op.
func (s *Store) DeleteEntry(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			s.persist()
			return
		}
	}
}

// Entries returns a copy of the entry list, newest first.
func (s *Store) Entries() []models.MoodEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.MoodEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Entry looks up a single entry by id.
func (s *Store) Entry(id string) (models.MoodEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, entry := range s.entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return models.MoodEntry{}, false
}

// ApplyAnalysis attaches a sentiment result to the entry, stores it as the
// most recent analysis, and auto-verifies the entry when nothing disagrees
// and the heuristic is confident enough. It reports whether the user should
// be prompted to review.
func (s *Store) ApplyAnalysis(id string, result models.SentimentResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastAnalysis = &result

	needsReview := result.Mismatch.Detected || result.Confidence < s.config.AutoVerifyFloor

	for i := range s.entries {
		if s.entries[i].ID != id {
			continue
		}
		s.entries[i].AISentimentScore = result.Score
		s.entries[i].AIConfidence = result.Confidence
		s.entries[i].AISuggestions = result.Suggestions
		if !needsReview {
			s.entries[i].IsVerified = true
		}
		break
	}

	s.persist()
	return needsReview
}

// LastAnalysis returns the single-slot most recent sentiment result.
func (s *Store) LastAnalysis() *models.SentimentResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.lastAnalysis == nil {
		return nil
	}
	result := *s.lastAnalysis
	return &result
}

// adjustedMood maps a detected sentiment to the mood the entry is rewritten
// to when the user accepts the heuristic's read.
var adjustedMood = map[models.Sentiment]models.MoodType{
	models.SentimentPositive: models.MoodHappy,
	models.SentimentNegative: models.MoodSad,
	models.SentimentNeutral:  models.MoodContent,
}

// ResolveMismatch closes the review prompt for an entry. When adjust is true
// the declared mood is rewritten to match the detected sentiment, the
// conversation turns supportive and honesty is rewarded; otherwise the user's
// choice stands and the conversation tone goes neutral. Either way the entry
// becomes verified and a mismatch record is kept.
func (s *Store) ResolveMismatch(id string, adjust bool) (models.MoodEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entry *models.MoodEntry
	for i := range s.entries {
		if s.entries[i].ID == id {
			entry = &s.entries[i]
			break
		}
	}
	if entry == nil {
		return models.MoodEntry{}, false
	}

	detected := models.SentimentNeutral
	confidence := entry.AIConfidence
	if s.lastAnalysis != nil {
		detected = s.lastAnalysis.Sentiment
		confidence = s.lastAnalysis.Confidence
	}

	s.recordMismatchLocked(entry.Mood, detected, confidence, adjust)

	if adjust {
		if mood, ok := adjustedMood[detected]; ok {
			entry.Mood = mood
		}
		s.conversationMode = models.ConversationSupportive
		s.rewardAuthenticityLocked(confidence)
	} else {
		s.conversationMode = models.ConversationNeutral
	}
	entry.IsVerified = true

	s.persist()
	return *entry, true
}

// RecordMismatch appends an audit record to the bounded mismatch history.
func (s *Store) RecordMismatch(selected models.MoodType, detected models.Sentiment, confidence float64, adjusted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recordMismatchLocked(selected, detected, confidence, adjusted)
	s.persist()
}

func (s *Store) recordMismatchLocked(selected models.MoodType, detected models.Sentiment, confidence float64, adjusted bool) {
	record := models.MismatchRecord{
		ID:           uuid.NewString(),
		Timestamp:    s.now(),
		SelectedMood: selected,
		AISentiment:  detected,
		Confidence:   confidence,
		Adjusted:     adjusted,
	}

	s.mismatchHistory = append([]models.MismatchRecord{record}, s.mismatchHistory...)
	if len(s.mismatchHistory) > maxMismatchHistory {
		s.mismatchHistory = s.mismatchHistory[:maxMismatchHistory]
	}
}

// RewardAuthenticity credits a user who revised their mood after a mismatch
// prompt: a small authenticity bump capped at 100, bonus points (larger when
// the heuristic itself was unsure), and an honesty insight.
func (s *Store) RewardAuthenticity(confidence float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rewardAuthenticityLocked(confidence)
	s.persist()
}

func (s *Store) rewardAuthenticityLocked(confidence float64) {
	s.authenticityScore += 5
	if s.authenticityScore > maxAuthenticity {
		s.authenticityScore = maxAuthenticity
	}

	bonus := 10
	if confidence < 0.6 {
		bonus = 20
	}
	gamification.ApplyPoints(&s.gamification, bonus)

	s.addInsightLocked("suggestion", "Thanks for your honesty",
		"Adjusting your mood helps keep your reflections accurate. Great job practicing self-awareness.")
}

// AddInsight appends a derived observation, newest first.
func (s *Store) AddInsight(insightType, title, description string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.addInsightLocked(insightType, title, description)
	s.persist()
}

func (s *Store) addInsightLocked(insightType, title, description string) {
	s.insights = append([]models.Insight{{
		ID:          uuid.NewString(),
		Type:        insightType,
		Title:       title,
		Description: description,
		Timestamp:   s.now(),
	}}, s.insights...)
}

// MarkInsightRead flags an insight as read. Unknown ids are a no-op.
func (s *Store) MarkInsightRead(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.insights {
		if s.insights[i].ID == id {
			s.insights[i].Read = true
			s.persist()
			return
		}
	}
}

// Insights returns a copy of the insight list, newest first.
func (s *Store) Insights() []models.Insight {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Insight, len(s.insights))
	copy(out, s.insights)
	return out
}

// UnlockAchievement appends an achievement and mints its badge. Already
// unlocked achievements are ignored; the collections are append-only.
func (s *Store) UnlockAchievement(achievement models.Achievement) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, unlocked := range s.gamification.Achievements {
		if unlocked.ID == achievement.ID {
			return
		}
	}

	now := s.now()
	achievement.Unlocked = true
	achievement.UnlockedAt = &now
	s.gamification.Achievements = append(s.gamification.Achievements, achievement)
	s.gamification.Badges = append(s.gamification.Badges, models.Badge{
		ID:          achievement.ID,
		Name:        achievement.Name,
		Description: achievement.Description,
		Icon:        achievement.Icon,
		Rarity:      achievement.Rarity,
		Category:    achievement.Category,
		UnlockedAt:  now,
	})
	gamification.ApplyPoints(&s.gamification, achievement.Points)

	s.persist()
}

// Gamification returns a copy of the reward aggregate.
func (s *Store) Gamification() models.GamificationState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gamification
}

// Profile returns the user profile.
func (s *Store) Profile() models.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// UpdatePreferences replaces the user's preferences.
func (s *Store) UpdatePreferences(prefs models.Preferences) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user.Preferences = prefs
	s.persist()
}

// ConversationMode returns the current chat tone.
func (s *Store) ConversationMode() models.ConversationMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conversationMode
}

// AuthenticityScore returns the bounded honesty counter.
func (s *Store) AuthenticityScore() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticityScore
}

// MismatchHistory returns a copy of the audit ring, newest first.
func (s *Store) MismatchHistory() []models.MismatchRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.MismatchRecord, len(s.mismatchHistory))
	copy(out, s.mismatchHistory)
	return out
}

// SetSupportiveReply stores the latest companion reply shown to the user.
func (s *Store) SetSupportiveReply(reply string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.supportiveReply = reply
	s.persist()
}

// SupportiveReply returns the stored companion reply.
func (s *Store) SupportiveReply() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.supportiveReply
}

// SetLoading flips the transient loading flag for the UI.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

// Loading reports the transient loading flag.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// SetCurrentView records which view the UI is showing. Not persisted.
func (s *Store) SetCurrentView(view string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentView = view
}

// CurrentView returns the transient active view.
func (s *Store) CurrentView() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentView
}
