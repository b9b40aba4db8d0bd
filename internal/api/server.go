package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/moodcompanion/mood-companion/internal/chat"
	"github.com/moodcompanion/mood-companion/internal/config"
	"github.com/moodcompanion/mood-companion/internal/gamification"
	"github.com/moodcompanion/mood-companion/internal/insights"
	"github.com/moodcompanion/mood-companion/internal/models"
	"github.com/moodcompanion/mood-companion/internal/sentiment"
	"github.com/moodcompanion/mood-companion/internal/store"
	"github.com/sirupsen/logrus"
)

// Server wires the journal, companion, and insight services into the HTTP API.
type Server struct {
	config   *config.Config
	store    *store.Store
	chat     *chat.Service
	insights *insights.Service
	router   *mux.Router
}

// NewServer creates the API server and registers its routes.
func NewServer(cfg *config.Config, st *store.Store, chatService *chat.Service, insightsService *insights.Service) *Server {
	s := &Server{
		config:   cfg,
		store:    st,
		chat:     chatService,
		insights: insightsService,
		router:   mux.NewRouter(),
	}
	s.routes()
	return s
}

// Router returns the configured handler.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) routes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/metrics", s.handleMetrics).Methods("GET")

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/entries", s.handleCreateEntry).Methods("POST")
	api.HandleFunc("/entries", s.handleListEntries).Methods("GET")
	api.HandleFunc("/entries/{id}", s.handleUpdateEntry).Methods("PATCH")
	api.HandleFunc("/entries/{id}", s.handleDeleteEntry).Methods("DELETE")
	api.HandleFunc("/entries/{id}/resolve", s.handleResolveMismatch).Methods("POST")
	api.HandleFunc("/trends", s.handleTrends).Methods("GET")
	api.HandleFunc("/stats", s.handleStats).Methods("GET")
	api.HandleFunc("/achievements", s.handleAchievements).Methods("GET")
	api.HandleFunc("/insights", s.handleInsights).Methods("GET")
	api.HandleFunc("/insights/{id}/read", s.handleMarkInsightRead).Methods("POST")
	api.HandleFunc("/profile", s.handleGetProfile).Methods("GET")
	api.HandleFunc("/profile", s.handleUpdateProfile).Methods("PUT")
	api.HandleFunc("/activities", s.handleSuggestActivities).Methods("GET")
	api.HandleFunc("/analyze", s.handleAnalyze).Methods("POST")
	api.HandleFunc("/chat", s.handleChat).Methods("POST")
	api.HandleFunc("/report/run", s.handleRunReport).Methods("POST")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(s.insights.GetMetrics()))
}

// entryResponse is the payload returned when a new entry is logged.
type entryResponse struct {
	Entry       models.MoodEntry       `json:"entry"`
	Analysis    models.SentimentResult `json:"analysis"`
	Reply       sentiment.Reply        `json:"reply"`
	Points      int                    `json:"points"`
	NeedsReview bool                   `json:"needs_review"`
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var draft models.EntryDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	entry, points, err := s.store.AddEntry(draft)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Analysis runs on the submitted text even when the journal is not
	// retaining it.
	analysis := sentiment.Analyze(draft.Description, draft.Mood)
	needsReview := s.store.ApplyAnalysis(entry.ID, analysis)

	reply := sentiment.SupportiveReply(entry.Mood, analysis.Sentiment)
	s.store.SetSupportiveReply(reply.Message)

	s.unlockEarnedAchievements()

	stored, _ := s.store.Entry(entry.ID)
	writeJSON(w, http.StatusCreated, entryResponse{
		Entry:       stored,
		Analysis:    analysis,
		Reply:       reply,
		Points:      points,
		NeedsReview: needsReview,
	})
}

func (s *Server) unlockEarnedAchievements() {
	state := s.store.Gamification()
	unlocked := make(map[string]bool, len(state.Achievements))
	for _, a := range state.Achievements {
		unlocked[a.ID] = true
	}

	for _, achievement := range gamification.Evaluate(state, s.store.Entries()) {
		if !achievement.Unlocked || unlocked[achievement.ID] {
			continue
		}
		logrus.Infof("Achievement unlocked: %s", achievement.Name)
		s.store.UnlockAchievement(achievement)
	}
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Entries())
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	var patch models.EntryPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	id := mux.Vars(r)["id"]
	if err := s.store.UpdateEntry(id, patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, ok := s.store.Entry(id)
	if !ok {
		writeError(w, http.StatusNotFound, "entry not found")
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	s.store.DeleteEntry(mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResolveMismatch(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Adjust bool `json:"adjust"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	entry, ok := s.store.ResolveMismatch(mux.Vars(r)["id"], body.Adjust)
	if !ok {
		writeError(w, http.StatusNotFound, "entry not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entry":              entry,
		"conversation_mode":  s.store.ConversationMode(),
		"authenticity_score": s.store.AuthenticityScore(),
	})
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	period := models.TrendPeriod(r.URL.Query().Get("period"))
	if period == "" {
		period = models.TrendWeek
	}
	if period != models.TrendWeek && period != models.TrendMonth {
		writeError(w, http.StatusBadRequest, "period must be week or month")
		return
	}
	writeJSON(w, http.StatusOK, s.store.Trends(period))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total_entries":      len(s.store.Entries()),
		"average_mood":       s.store.AverageMood(),
		"most_frequent_mood": s.store.MostFrequentMood(),
		"current_streak":     s.store.CurrentStreak(),
		"authenticity_score": s.store.AuthenticityScore(),
		"gamification":       s.store.Gamification(),
	})
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	s.unlockEarnedAchievements()
	writeJSON(w, http.StatusOK, gamification.Evaluate(s.store.Gamification(), s.store.Entries()))
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Insights())
}

func (s *Server) handleMarkInsightRead(w http.ResponseWriter, r *http.Request) {
	s.store.MarkInsightRead(mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Profile())
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var prefs models.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	s.store.UpdatePreferences(prefs)
	writeJSON(w, http.StatusOK, s.store.Profile())
}

func (s *Server) handleSuggestActivities(w http.ResponseWriter, r *http.Request) {
	mood := models.MoodType(r.URL.Query().Get("mood"))
	if mood == "" {
		mood = s.store.MostFrequentMood()
	}
	if !mood.Valid() {
		writeError(w, http.StatusBadRequest, "unknown mood")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"mood":       mood,
		"activities": sentiment.SuggestActivities(mood),
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string          `json:"text"`
		Mood models.MoodType `json:"mood"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !body.Mood.Valid() {
		writeError(w, http.StatusBadRequest, "unknown mood")
		return
	}
	writeJSON(w, http.StatusOK, sentiment.Analyze(body.Text, body.Mood))
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Message string         `json:"message"`
		History []chat.Message `json:"history"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	reply := s.chat.Reply(r.Context(), body.Message, body.History)
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

func (s *Server) handleRunReport(w http.ResponseWriter, r *http.Request) {
	go func() {
		if err := s.insights.RunWeekly(); err != nil {
			logrus.Errorf("Manual report trigger failed: %v", err)
		}
	}()
	writeJSON(w, http.StatusAccepted, map[string]string{"message": "Report run triggered"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Errorf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
