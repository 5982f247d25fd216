package store

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"survey/internal/models"
	"sync"
)

// MemoryStore is the degraded-mode fallback. Nothing survives a restart.
type MemoryStore struct {
	mu        sync.RWMutex
	responses []*models.SurveyResponse
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (ms *MemoryStore) Create(_ context.Context, record *models.SurveyResponse) (string, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	// ids derive from the collection length, so they must be assigned under the lock
	stored := *record
	stored.ID = fmt.Sprintf("fallback_%d", len(ms.responses)+1)
	ms.responses = append(ms.responses, &stored)
	return stored.ID, nil
}

func (ms *MemoryStore) QueryByUser(_ context.Context, userID string) ([]*models.SurveyResponse, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	var out []*models.SurveyResponse
	for _, r := range ms.newestFirst() {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (ms *MemoryStore) QueryAll(_ context.Context, limit, offset int) ([]*models.SurveyResponse, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	sorted := ms.newestFirst()
	if offset >= len(sorted) {
		return []*models.SurveyResponse{}, nil
	}
	end := min(offset+limit, len(sorted))
	return sorted[offset:end], nil
}

func (ms *MemoryStore) Durable() bool { return false }

func (ms *MemoryStore) Close(_ context.Context) error { return nil }

func (ms *MemoryStore) Len() int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return len(ms.responses)
}

// newestFirst returns copies of the stored records ordered by createdAt
// descending; later inserts win ties. Callers must hold the read lock.
func (ms *MemoryStore) newestFirst() []*models.SurveyResponse {
	out := make([]*models.SurveyResponse, 0, len(ms.responses))
	for i := len(ms.responses) - 1; i >= 0; i-- {
		r := *ms.responses[i]
		out = append(out, &r)
	}
	slices.SortStableFunc(out, func(a, b *models.SurveyResponse) int {
		return strings.Compare(b.CreatedAt, a.CreatedAt)
	})
	return out
}
