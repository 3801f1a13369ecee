package memory

import (
	"context"
	"sync"

	"exam-paper-service/internal/domain"
)

// ResultRepository is a map-backed stand-in for the relational results
// table, used in dev mode without Postgres and in tests.
type ResultRepository struct {
	mu      sync.RWMutex
	results []domain.Result
}

func NewResultRepository() *ResultRepository {
	return &ResultRepository{}
}

// Add records a submitted result.
func (r *ResultRepository) Add(result domain.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
}

func (r *ResultRepository) ListByExam(_ context.Context, examID int64) ([]domain.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Result, 0)
	for _, result := range r.results {
		if result.ExamID == examID {
			out = append(out, result)
		}
	}
	return out, nil
}
