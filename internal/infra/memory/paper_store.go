package memory

import (
	"context"
	"sync"

	"exam-paper-service/internal/domain"
)

// PaperStore is an in-memory implementation of app.PaperStore, used when no
// Redis is configured and throughout the unit tests. Whole-document
// semantics: Get hands out a copy, Put replaces the stored document.
type PaperStore struct {
	mu     sync.RWMutex
	papers map[int64]domain.Paper
}

func NewPaperStore() *PaperStore {
	return &PaperStore{papers: make(map[int64]domain.Paper)}
}

func (s *PaperStore) Get(_ context.Context, examID int64) (domain.Paper, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	paper, ok := s.papers[examID]
	if !ok {
		return domain.Paper{}, false, nil
	}
	return copyPaper(paper), true, nil
}

func (s *PaperStore) Put(_ context.Context, paper domain.Paper) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.papers[paper.ExamID] = copyPaper(paper)
	return nil
}

// copyPaper deep-copies the question slice so callers cannot mutate the
// stored document without going through Put.
func copyPaper(paper domain.Paper) domain.Paper {
	out := paper
	out.Questions = make([]domain.Question, len(paper.Questions))
	copy(out.Questions, paper.Questions)
	for i := range out.Questions {
		if out.Questions[i].Options != nil {
			options := make([]string, len(out.Questions[i].Options))
			copy(options, out.Questions[i].Options)
			out.Questions[i].Options = options
		}
		if out.Questions[i].Answer != nil {
			answer := *out.Questions[i].Answer
			out.Questions[i].Answer = &answer
		}
	}
	return out
}
