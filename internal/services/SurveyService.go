package services

import (
	"context"
	"survey/internal/apperr"
	"survey/internal/models"
	"survey/internal/providers"
	"survey/internal/store/interfaces"
	"time"
)

const (
	DefaultResultsLimit = 100
	MaxResultsLimit     = 1000
)

type SurveyServiceInterface interface {
	Submit(ctx context.Context, ident *models.Identity, req *models.SurveyRequest) (string, error)
	UserStatus(ctx context.Context, userID string) (*models.UserStatus, error)
	LatestResponse(ctx context.Context, userID string) (*models.SurveyResponse, error)
	Results(ctx context.Context, limit, offset int) (*models.SurveyResults, error)
	StoreAvailable() bool
}

type SurveyService struct {
	store      interfaces.ResponseStoreInterface
	validator  SurveyValidatorInterface
	statistics StatisticServiceInterface
	metrics    providers.MetricsProviderInterface
	logger     providers.Logger
	now        func() time.Time
}

func NewSurveyService(
	store interfaces.ResponseStoreInterface,
	validator SurveyValidatorInterface,
	statistics StatisticServiceInterface,
	metrics providers.MetricsProviderInterface,
	logger providers.Logger,
) SurveyServiceInterface {
	return &SurveyService{
		store:      store,
		validator:  validator,
		statistics: statistics,
		metrics:    metrics,
		logger:     logger,
		now:        time.Now,
	}
}

// Submit validates and persists a submission. The owner fields always come
// from the verified identity, whatever the client sent.
func (s *SurveyService) Submit(ctx context.Context, ident *models.Identity, req *models.SurveyRequest) (string, error) {
	if err := s.validator.Validate(req); err != nil {
		s.metrics.IncSubmissions("invalid")
		return "", err
	}

	ts := models.FormatTimestamp(s.now())
	record := &models.SurveyResponse{
		Age:          req.Age,
		Gender:       req.Gender,
		Frequency:    req.Frequency,
		Satisfaction: req.Satisfaction,
		Feedback:     req.Feedback,
		UserID:       ident.ID,
		DisplayName:  ident.DisplayName,
		Timestamp:    ts,
		CreatedAt:    ts,
	}

	id, err := s.store.Create(ctx, record)
	if err != nil {
		s.metrics.IncSubmissions("failed")
		return "", apperr.Upstream("failed to save survey response", err)
	}

	s.metrics.IncSubmissions("stored")
	s.logger.Infof(providers.TypePost, "Survey response %s saved for user %s", id, ident.ID)
	return id, nil
}

func (s *SurveyService) UserStatus(ctx context.Context, userID string) (*models.UserStatus, error) {
	responses, err := s.store.QueryByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Upstream("failed to load user status", err)
	}
	return models.NewUserStatus(userID, responses), nil
}

func (s *SurveyService) LatestResponse(ctx context.Context, userID string) (*models.SurveyResponse, error) {
	responses, err := s.store.QueryByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Upstream("failed to load latest response", err)
	}
	if len(responses) == 0 {
		return nil, apperr.NotFound("No response found")
	}
	return responses[0], nil
}

// Results returns one page of responses, newest first, with statistics over
// that page only.
func (s *SurveyService) Results(ctx context.Context, limit, offset int) (*models.SurveyResults, error) {
	fields := map[string]string{}
	if limit < 1 || limit > MaxResultsLimit {
		fields["limit"] = "limit must be between 1 and 1000"
	}
	if offset < 0 {
		fields["offset"] = "offset must not be negative"
	}
	if len(fields) > 0 {
		return nil, apperr.Validation("invalid pagination", fields)
	}

	responses, err := s.store.QueryAll(ctx, limit, offset)
	if err != nil {
		return nil, apperr.Upstream("failed to load survey results", err)
	}
	if responses == nil {
		responses = []*models.SurveyResponse{}
	}

	return &models.SurveyResults{
		Responses:  responses,
		Statistics: s.statistics.Aggregate(responses),
		Pagination: models.Pagination{
			Limit:  limit,
			Offset: offset,
			Total:  len(responses),
		},
	}, nil
}

func (s *SurveyService) StoreAvailable() bool {
	return s.store.Durable()
}
