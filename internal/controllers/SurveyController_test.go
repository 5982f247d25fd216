package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"survey/internal/apperr"
	"survey/internal/models"
	"survey/internal/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withIdentity(r *http.Request, ident *models.Identity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), identityKey{}, ident))
}

func testIdentity() *models.Identity {
	return &models.Identity{ID: "U123", DisplayName: "Taro"}
}

func TestSubmit_Success(t *testing.T) {
	svc := &testutil.MockSurveyService{SubmitID: "abc123"}
	sc := NewSurveyController(&testutil.MockLogger{}, svc)

	payload := `{"age":"20-29","gender":"male","frequency":"daily","satisfaction":"5","userId":"someone"}`
	r := withIdentity(httptest.NewRequest(http.MethodPost, "/survey/submit", strings.NewReader(payload)), testIdentity())
	rr := httptest.NewRecorder()
	sc.Submit(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decodeEnvelope(t, rr)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Survey response saved", body["message"])
	assert.Equal(t, map[string]any{"id": "abc123"}, body["data"])

	require.Len(t, svc.SubmitCalls, 1)
	assert.Equal(t, "male", svc.SubmitCalls[0].Gender)
	assert.Equal(t, "U123", svc.SubmitIdentity.ID)
}

func TestSubmit_MalformedJSON(t *testing.T) {
	svc := &testutil.MockSurveyService{}
	sc := NewSurveyController(&testutil.MockLogger{}, svc)

	r := withIdentity(httptest.NewRequest(http.MethodPost, "/survey/submit", strings.NewReader(`{not json`)), testIdentity())
	rr := httptest.NewRecorder()
	sc.Submit(rr, r)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Empty(t, svc.SubmitCalls)
}

func TestSubmit_EmptyBody(t *testing.T) {
	svc := &testutil.MockSurveyService{}
	sc := NewSurveyController(&testutil.MockLogger{}, svc)

	r := withIdentity(httptest.NewRequest(http.MethodPost, "/survey/submit", http.NoBody), testIdentity())
	rr := httptest.NewRecorder()
	sc.Submit(rr, r)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestSubmit_BodyTooLarge(t *testing.T) {
	svc := &testutil.MockSurveyService{}
	sc := NewSurveyController(&testutil.MockLogger{}, svc)

	big := `{"feedback":"` + strings.Repeat("x", maxRequestBodySize) + `"}`
	r := withIdentity(httptest.NewRequest(http.MethodPost, "/survey/submit", strings.NewReader(big)), testIdentity())
	rr := httptest.NewRecorder()
	sc.Submit(rr, r)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Empty(t, svc.SubmitCalls)
}

func TestSubmit_ValidationErrorFromService(t *testing.T) {
	svc := &testutil.MockSurveyService{SubmitErr: apperr.Validation("invalid survey data", map[string]string{"gender": "bad"})}
	sc := NewSurveyController(&testutil.MockLogger{}, svc)

	r := withIdentity(httptest.NewRequest(http.MethodPost, "/survey/submit", strings.NewReader(`{}`)), testIdentity())
	rr := httptest.NewRecorder()
	sc.Submit(rr, r)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	body := decodeEnvelope(t, rr)
	assert.Equal(t, "validation_error", body["error"])
	assert.Equal(t, map[string]any{"gender": "bad"}, body["data"])
}

func TestSubmit_WithoutIdentity(t *testing.T) {
	sc := NewSurveyController(&testutil.MockLogger{}, &testutil.MockSurveyService{})

	rr := httptest.NewRecorder()
	sc.Submit(rr, httptest.NewRequest(http.MethodPost, "/survey/submit", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestSubmit_StoreFailure(t *testing.T) {
	svc := &testutil.MockSurveyService{SubmitErr: apperr.Upstream("failed to save survey response", errors.New("timeout"))}
	sc := NewSurveyController(&testutil.MockLogger{}, svc)

	payload := `{"age":"20-29","gender":"male","frequency":"daily","satisfaction":"5"}`
	r := withIdentity(httptest.NewRequest(http.MethodPost, "/survey/submit", strings.NewReader(payload)), testIdentity())
	rr := httptest.NewRecorder()
	sc.Submit(rr, r)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "timeout")
}

func TestResults_Defaults(t *testing.T) {
	svc := &testutil.MockSurveyService{ResultsData: &models.SurveyResults{
		Responses:  []*models.SurveyResponse{},
		Statistics: models.NewStatistics(),
		Pagination: models.Pagination{Limit: 100},
	}}
	sc := NewSurveyController(&testutil.MockLogger{}, svc)

	rr := httptest.NewRecorder()
	sc.Results(rr, httptest.NewRequest(http.MethodGet, "/survey/results", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 100, svc.LimitArg)
	assert.Equal(t, 0, svc.OffsetArg)

	data := decodeEnvelope(t, rr)["data"].(map[string]any)
	assert.Contains(t, data, "responses")
	assert.Contains(t, data, "statistics")
	assert.Contains(t, data, "pagination")
	stats := data["statistics"].(map[string]any)
	assert.Contains(t, stats, "total_responses")
	assert.Contains(t, stats, "responses_by_date")
}

func TestResults_QueryParams(t *testing.T) {
	svc := &testutil.MockSurveyService{ResultsData: &models.SurveyResults{Statistics: models.NewStatistics()}}
	sc := NewSurveyController(&testutil.MockLogger{}, svc)

	rr := httptest.NewRecorder()
	sc.Results(rr, httptest.NewRequest(http.MethodGet, "/survey/results?limit=5&offset=10", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 5, svc.LimitArg)
	assert.Equal(t, 10, svc.OffsetArg)
}

func TestResults_NonIntegerParams(t *testing.T) {
	svc := &testutil.MockSurveyService{}
	sc := NewSurveyController(&testutil.MockLogger{}, svc)

	rr := httptest.NewRecorder()
	sc.Results(rr, httptest.NewRequest(http.MethodGet, "/survey/results?limit=ten&offset=x", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	data := decodeEnvelope(t, rr)["data"].(map[string]any)
	assert.Contains(t, data, "limit")
	assert.Contains(t, data, "offset")
}

func TestResults_OutOfRangeFromService(t *testing.T) {
	svc := &testutil.MockSurveyService{Err: apperr.Validation("invalid pagination", map[string]string{"limit": "limit must be between 1 and 1000"})}
	sc := NewSurveyController(&testutil.MockLogger{}, svc)

	rr := httptest.NewRecorder()
	sc.Results(rr, httptest.NewRequest(http.MethodGet, "/survey/results?limit=0", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, 0, svc.LimitArg)
}
