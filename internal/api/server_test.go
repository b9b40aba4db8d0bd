package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/moodcompanion/mood-companion/internal/chat"
	"github.com/moodcompanion/mood-companion/internal/config"
	"github.com/moodcompanion/mood-companion/internal/insights"
	"github.com/moodcompanion/mood-companion/internal/models"
	"github.com/moodcompanion/mood-companion/internal/storage"
	"github.com/moodcompanion/mood-companion/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockNotifier is a mock implementation of the notifications interface
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendReport(report *models.Report) error {
	args := m.Called(report)
	return args.Error(0)
}

func (m *MockNotifier) SendReminder(message string) error {
	args := m.Called(message)
	return args.Error(0)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := &config.Config{
		SnapshotBlob:    "state.json",
		StoreJournal:    true,
		AutoVerifyFloor: 0.6,
		ChatModel:       "gpt-3.5-turbo",
	}

	backend, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	st := store.New(cfg, backend)
	notifier := &MockNotifier{}
	notifier.On("SendReport", mock.Anything).Return(nil)

	return NewServer(cfg, st, chat.NewService(cfg), insights.NewService(cfg, st, backend, notifier))
}

func doJSON(t *testing.T, server *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)
	return rec
}

func TestCreateEntry(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, "POST", "/api/entries", models.EntryDraft{
		Mood:        models.MoodHappy,
		Intensity:   8,
		Description: "I am so happy and joyful today! Everything has been wonderful and amazing and great!",
		Activities:  []string{"walk"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp entryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	assert.NotEmpty(t, resp.Entry.ID)
	assert.Equal(t, models.SentimentPositive, resp.Analysis.Sentiment)
	assert.False(t, resp.NeedsReview)
	assert.True(t, resp.Entry.IsVerified)
	assert.NotEmpty(t, resp.Reply.Message)
	assert.Greater(t, resp.Points, 0)
}

func TestCreateEntry_validation(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, "POST", "/api/entries", models.EntryDraft{Mood: "bogus", Intensity: 5})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, server, "POST", "/api/entries", models.EntryDraft{Mood: models.MoodCalm, Intensity: 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateEntry_mismatchNeedsReview(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, "POST", "/api/entries", models.EntryDraft{
		Mood:        models.MoodSad,
		Intensity:   3,
		Description: "I am so happy and joyful today! Everything has been wonderful and amazing and great!",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp entryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Analysis.Mismatch.Detected)
	assert.True(t, resp.NeedsReview)
	assert.False(t, resp.Entry.IsVerified)

	t.Run("Resolve with adjustment", func(t *testing.T) {
		rec := doJSON(t, server, "POST", "/api/entries/"+resp.Entry.ID+"/resolve", map[string]bool{"adjust": true})
		require.Equal(t, http.StatusOK, rec.Code)

		var resolved struct {
			Entry             models.MoodEntry        `json:"entry"`
			ConversationMode  models.ConversationMode `json:"conversation_mode"`
			AuthenticityScore int                     `json:"authenticity_score"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resolved))
		assert.Equal(t, models.MoodHappy, resolved.Entry.Mood)
		assert.Equal(t, models.ConversationSupportive, resolved.ConversationMode)
		assert.Equal(t, 85, resolved.AuthenticityScore)
	})
}

func TestResolveMismatch_notFound(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, "POST", "/api/entries/missing/resolve", map[string]bool{"adjust": false})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListAndDeleteEntries(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, "POST", "/api/entries", models.EntryDraft{Mood: models.MoodCalm, Intensity: 5})
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp entryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	rec = doJSON(t, server, "GET", "/api/entries", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var entries []models.MoodEntry
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&entries))
	assert.Len(t, entries, 1)

	rec = doJSON(t, server, "DELETE", "/api/entries/"+resp.Entry.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, server, "GET", "/api/entries", nil)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&entries))
	assert.Empty(t, entries)
}

func TestUpdateEntry(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, "POST", "/api/entries", models.EntryDraft{Mood: models.MoodCalm, Intensity: 5})
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp entryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	rec = doJSON(t, server, "PATCH", "/api/entries/"+resp.Entry.ID, map[string]interface{}{"intensity": 9})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.MoodEntry
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&updated))
	assert.Equal(t, 9, updated.Intensity)

	rec = doJSON(t, server, "PATCH", "/api/entries/missing", map[string]interface{}{"intensity": 9})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTrends_validation(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, "GET", "/api/trends?period=year", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, server, "GET", "/api/trends", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var trend models.MoodTrend
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&trend))
	assert.Equal(t, models.TrendWeek, trend.Period)
}

func TestStats_defaults(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, "GET", "/api/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&stats))
	assert.Equal(t, float64(0), stats["total_entries"])
	assert.Equal(t, float64(5), stats["average_mood"])
	assert.Equal(t, string(models.MoodCalm), stats["most_frequent_mood"])
}

func TestAchievements_firstEntry(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, "POST", "/api/entries", models.EntryDraft{Mood: models.MoodCalm, Intensity: 5})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, server, "GET", "/api/achievements", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var achievements []models.Achievement
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&achievements))
	ids := make([]string, 0, len(achievements))
	for _, a := range achievements {
		ids = append(ids, a.ID)
	}
	assert.Contains(t, ids, "first-entry")
}

func TestAnalyze(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, "POST", "/api/analyze", map[string]string{
		"text": "what a wonderful amazing day!",
		"mood": "happy",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var result models.SentimentResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, models.SentimentPositive, result.Sentiment)

	rec = doJSON(t, server, "POST", "/api/analyze", map[string]string{"text": "x", "mood": "bogus"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSuggestActivities(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, "GET", "/api/activities?mood=anxious", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Mood       models.MoodType `json:"mood"`
		Activities []string        `json:"activities"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, models.MoodAnxious, resp.Mood)
	assert.Len(t, resp.Activities, 5)

	// No mood falls back to the journal's most frequent (calm when empty).
	rec = doJSON(t, server, "GET", "/api/activities", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, models.MoodCalm, resp.Mood)

	rec = doJSON(t, server, "GET", "/api/activities?mood=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChat_localFallback(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, "POST", "/api/chat", map[string]interface{}{"message": "rough day"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Contains(t, resp["reply"], "(Local)")

	rec = doJSON(t, server, "POST", "/api/chat", map[string]interface{}{"message": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfile(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, "GET", "/api/profile", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile models.UserProfile
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&profile))
	assert.NotEmpty(t, profile.ID)

	prefs := profile.Preferences
	prefs.Notifications.DailyReminder = true
	rec = doJSON(t, server, "PUT", "/api/profile", prefs)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&profile))
	assert.True(t, profile.Preferences.Notifications.DailyReminder)
}

func TestHealth(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, "GET", "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
}
