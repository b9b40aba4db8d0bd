package insights

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/moodcompanion/mood-companion/internal/config"
	"github.com/moodcompanion/mood-companion/internal/models"
	"github.com/moodcompanion/mood-companion/internal/storage"
	"github.com/moodcompanion/mood-companion/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStorage is a mock implementation of the storage interface
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Store(name string, data []byte) error {
	args := m.Called(name, data)
	return args.Error(0)
}

func (m *MockStorage) Retrieve(name string) ([]byte, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockStorage) List(prefix string) ([]string, error) {
	args := m.Called(prefix)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStorage) Delete(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

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

func testStore(t *testing.T) *store.Store {
	t.Helper()
	cfg := &config.Config{
		SnapshotBlob:    "state.json",
		StoreJournal:    true,
		AutoVerifyFloor: 0.6,
	}
	backend, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return store.New(cfg, backend)
}

func seedEntries(t *testing.T, st *store.Store) {
	t.Helper()
	for _, draft := range []models.EntryDraft{
		{Mood: models.MoodHappy, Intensity: 8, Activities: []string{"walk"}},
		{Mood: models.MoodHappy, Intensity: 7, Activities: []string{"walk", "music"}},
		{Mood: models.MoodTired, Intensity: 4},
	} {
		_, _, err := st.AddEntry(draft)
		require.NoError(t, err)
	}
}

func TestBuildReport(t *testing.T) {
	st := testStore(t)
	seedEntries(t, st)

	service := NewService(&config.Config{}, st, &MockStorage{}, &MockNotifier{})
	report := service.BuildReport()

	assert.Equal(t, "weekly", report.Period)
	assert.Equal(t, 3, report.TotalEntries)
	assert.Equal(t, 2, report.MoodBreakdown[models.MoodHappy])
	assert.Equal(t, 1, report.MoodBreakdown[models.MoodTired])
	assert.Equal(t, []string{"walk", "music"}, report.TopActivities)
	assert.Equal(t, 1, report.Streak)
	// No analysis applied yet, everything reads neutral.
	assert.Equal(t, 3, report.SentimentBreakdown[models.SentimentNeutral])
}

func TestBuildReport_dailySchedule(t *testing.T) {
	st := testStore(t)
	seedEntries(t, st)

	service := NewService(&config.Config{ReportSchedule: "daily"}, st, &MockStorage{}, &MockNotifier{})
	report := service.BuildReport()

	assert.Equal(t, "daily", report.Period)
	assert.Equal(t, 3, report.TotalEntries)
}

func TestRunWeekly(t *testing.T) {
	st := testStore(t)
	seedEntries(t, st)

	mockStorage := &MockStorage{}
	mockStorage.On("Store", mock.MatchedBy(func(name string) bool {
		return strings.HasPrefix(name, "report-") && strings.HasSuffix(name, ".json")
	}), mock.Anything).Return(nil)

	mockNotifier := &MockNotifier{}
	mockNotifier.On("SendReport", mock.MatchedBy(func(report *models.Report) bool {
		return report.TotalEntries == 3
	})).Return(nil)

	service := NewService(&config.Config{}, st, mockStorage, mockNotifier)
	require.NoError(t, service.RunWeekly())

	mockStorage.AssertExpectations(t)
	mockNotifier.AssertExpectations(t)

	// The run leaves a trend insight in the journal.
	insights := st.Insights()
	require.NotEmpty(t, insights)
	assert.Equal(t, "trend", insights[0].Type)
	assert.Equal(t, "Your weekly check-in", insights[0].Title)

	// Archived payload is valid JSON holding the report.
	data := mockStorage.Calls[0].Arguments.Get(1).([]byte)
	var archived models.Report
	require.NoError(t, json.Unmarshal(data, &archived))
	assert.Equal(t, 3, archived.TotalEntries)
}

func TestRunWeekly_notifierFailure(t *testing.T) {
	st := testStore(t)

	mockStorage := &MockStorage{}
	mockStorage.On("Store", mock.Anything, mock.Anything).Return(nil)

	mockNotifier := &MockNotifier{}
	mockNotifier.On("SendReport", mock.Anything).Return(assert.AnError)

	service := NewService(&config.Config{}, st, mockStorage, mockNotifier)
	assert.Error(t, service.RunWeekly())

	// Metrics record the failure.
	var metrics Metrics
	require.NoError(t, json.Unmarshal([]byte(service.GetMetrics()), &metrics))
	assert.Equal(t, 1, metrics.ErrorCount)
	assert.False(t, metrics.LastRun.IsZero())
}
