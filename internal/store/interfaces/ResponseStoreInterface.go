package interfaces

import (
	"context"
	"survey/internal/models"
)

// ResponseStoreInterface persists survey responses. Query results are
// ordered by createdAt, newest first.
type ResponseStoreInterface interface {
	Create(ctx context.Context, record *models.SurveyResponse) (string, error)
	QueryByUser(ctx context.Context, userID string) ([]*models.SurveyResponse, error)
	QueryAll(ctx context.Context, limit, offset int) ([]*models.SurveyResponse, error)
	// Durable is false when the process fell back to in-memory storage.
	Durable() bool
	Close(ctx context.Context) error
}
