package testutil

import (
	"context"
	"errors"
	"fmt"
	"survey/internal/apperr"
	"survey/internal/models"
	"survey/internal/providers"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockStore implements interfaces.ResponseStoreInterface. Set Err to make
// every call fail.
type MockStore struct {
	mu          sync.Mutex
	Records     []*models.SurveyResponse
	Err         error
	DurableFlag bool
	Closed      bool
	LastLimit   int
	LastOffset  int
}

func (m *MockStore) Create(_ context.Context, record *models.SurveyResponse) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	stored := *record
	stored.ID = fmt.Sprintf("mock_%d", len(m.Records)+1)
	m.Records = append(m.Records, &stored)
	return stored.ID, nil
}

// QueryByUser returns matching records in reverse insertion order.
func (m *MockStore) QueryByUser(_ context.Context, userID string) ([]*models.SurveyResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*models.SurveyResponse
	for i := len(m.Records) - 1; i >= 0; i-- {
		if m.Records[i].UserID == userID {
			out = append(out, m.Records[i])
		}
	}
	return out, nil
}

func (m *MockStore) QueryAll(_ context.Context, limit, offset int) ([]*models.SurveyResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastLimit, m.LastOffset = limit, offset
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*models.SurveyResponse
	for i := len(m.Records) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.Records[i])
	}
	return out, nil
}

func (m *MockStore) Durable() bool { return m.DurableFlag }

func (m *MockStore) Close(_ context.Context) error {
	m.Closed = true
	return nil
}

// MockVerifier implements identity.VerifierInterface. Tokens maps accepted
// credentials to identities; anything else is unauthenticated.
type MockVerifier struct {
	Tokens map[string]*models.Identity
	Err    error
}

func (m *MockVerifier) Verify(_ context.Context, credential string) (*models.Identity, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if ident, ok := m.Tokens[credential]; ok {
		return ident, nil
	}
	return nil, apperr.Unauthenticated("invalid token")
}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu            sync.Mutex
	Requests      int
	CacheHits     int
	CacheMisses   int
	Submissions   map[string]int
	Verifications map[string]int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) IncSubmissions(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Submissions == nil {
		m.Submissions = map[string]int{}
	}
	m.Submissions[outcome]++
}
func (m *MockMetrics) IncIdentityVerifications(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Verifications == nil {
		m.Verifications = map[string]int{}
	}
	m.Verifications[result]++
}

// MockSurveyService implements services.SurveyServiceInterface with canned
// results. Nil results fall through to errors.
type MockSurveyService struct {
	SubmitID       string
	SubmitErr      error
	Status         *models.UserStatus
	Latest         *models.SurveyResponse
	ResultsData    *models.SurveyResults
	Err            error
	Available      bool
	SubmitCalls    []*models.SurveyRequest
	SubmitIdentity *models.Identity
	LimitArg       int
	OffsetArg      int
}

var ErrMockNotConfigured = errors.New("mock not configured")

func (m *MockSurveyService) Submit(_ context.Context, ident *models.Identity, req *models.SurveyRequest) (string, error) {
	m.SubmitCalls = append(m.SubmitCalls, req)
	m.SubmitIdentity = ident
	if m.SubmitErr != nil {
		return "", m.SubmitErr
	}
	return m.SubmitID, nil
}

func (m *MockSurveyService) UserStatus(_ context.Context, userID string) (*models.UserStatus, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Status != nil {
		return m.Status, nil
	}
	return models.NewUserStatus(userID, nil), nil
}

func (m *MockSurveyService) LatestResponse(_ context.Context, _ string) (*models.SurveyResponse, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Latest == nil {
		return nil, apperr.NotFound("No response found")
	}
	return m.Latest, nil
}

func (m *MockSurveyService) Results(_ context.Context, limit, offset int) (*models.SurveyResults, error) {
	m.LimitArg, m.OffsetArg = limit, offset
	if m.Err != nil {
		return nil, m.Err
	}
	if m.ResultsData == nil {
		return nil, ErrMockNotConfigured
	}
	return m.ResultsData, nil
}

func (m *MockSurveyService) StoreAvailable() bool { return m.Available }
