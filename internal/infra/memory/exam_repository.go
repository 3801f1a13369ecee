package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"exam-paper-service/internal/domain"
)

type examRecord struct {
	title      string
	totalMarks int
}

// ExamRepository is a map-backed stand-in for the relational exam table,
// used in dev mode without Postgres and in tests.
type ExamRepository struct {
	mu         sync.RWMutex
	exams      map[int64]examRecord
	failWrites map[int64]bool
}

func NewExamRepository() *ExamRepository {
	return &ExamRepository{
		exams:      make(map[int64]examRecord),
		failWrites: make(map[int64]bool),
	}
}

// Seed inserts an exam record directly.
func (r *ExamRepository) Seed(examID int64, title string, totalMarks int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exams[examID] = examRecord{title: title, totalMarks: totalMarks}
}

// FailWritesFor makes SetTotalMarks fail for one exam; lets tests exercise
// the batch reconciler's log-and-continue behavior.
func (r *ExamRepository) FailWritesFor(examID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failWrites[examID] = true
}

// TotalMarks reads the stored aggregate for assertions.
func (r *ExamRepository) TotalMarks(examID int64) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.exams[examID].totalMarks
}

func (r *ExamRepository) SetTotalMarks(_ context.Context, examID int64, total int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrites[examID] {
		return fmt.Errorf("exam %d: write rejected", examID)
	}
	record, ok := r.exams[examID]
	if !ok {
		return fmt.Errorf("%w: %d", domain.ErrExamNotFound, examID)
	}
	record.totalMarks = total
	r.exams[examID] = record
	return nil
}

func (r *ExamRepository) ListIDs(_ context.Context) ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]int64, 0, len(r.exams))
	for id := range r.exams {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
