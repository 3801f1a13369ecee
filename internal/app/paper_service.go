package app

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"exam-paper-service/internal/domain"
	"exam-paper-service/internal/paperid"
)

// PaperStore abstracts the keyed document medium holding one paper per exam
// (Redis, in-memory, etc). Operations are whole-document read/replace; all
// finer-grained mutation is composed here by read-modify-write. Concurrent
// writers to the same exam's paper are not serialized by this layer.
type PaperStore interface {
	Get(ctx context.Context, examID int64) (domain.Paper, bool, error)
	Put(ctx context.Context, paper domain.Paper) error
}

// QuestionInput carries the fields accepted when adding a question. Options
// may arrive either as a single list or as the four discrete legacy fields;
// both forms are normalized the same way.
type QuestionInput struct {
	Kind    string
	Prompt  string
	Marks   int
	Order   *int
	Options []string
	OptionA string
	OptionB string
	OptionC string
	OptionD string
	Answer  *string
}

// QuestionPatch is a partial update; nil fields are left untouched.
type QuestionPatch struct {
	Kind    *string
	Prompt  *string
	Marks   *int
	Order   *int
	Options []string
	Answer  *string
}

// PaperService contains the question CRUD use cases over one paper per exam.
// It does not reconcile marks and does not broadcast; both are separate,
// explicit steps owned by the caller.
type PaperService struct {
	papers PaperStore
	now    func() time.Time
}

func NewPaperService(papers PaperStore) *PaperService {
	return &PaperService{papers: papers, now: time.Now}
}

// NewPaperServiceWithClock is test-only for deterministic timestamps.
func NewPaperServiceWithClock(papers PaperStore, now func() time.Time) *PaperService {
	return &PaperService{papers: papers, now: now}
}

// List returns the exam's questions in stable display order. An absent paper
// is a valid empty state, not an error.
func (s *PaperService) List(ctx context.Context, token string) ([]domain.Question, error) {
	examID, err := paperid.ExamID(token)
	if err != nil {
		return nil, err
	}
	paper, ok, err := s.papers.Get(ctx, examID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.Question{}, nil
	}
	questions := append([]domain.Question(nil), paper.Questions...)
	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].Order < questions[j].Order
	})
	return questions, nil
}

// Add appends a question to the exam's paper, creating the paper on first
// insertion, and persists the whole document.
func (s *PaperService) Add(ctx context.Context, token string, input QuestionInput) (domain.Question, error) {
	examID, err := paperid.ExamID(token)
	if err != nil {
		return domain.Question{}, err
	}
	paper, ok, err := s.papers.Get(ctx, examID)
	if err != nil {
		return domain.Question{}, err
	}
	if !ok {
		paper = domain.Paper{
			ExamID: examID,
			Title:  "Paper " + strconv.FormatInt(examID, 10),
		}
	}

	now := s.now()
	question := domain.Question{
		ID:        paper.NextQuestionID(),
		Kind:      paperid.InternalKind(input.Kind),
		Prompt:    input.Prompt,
		Marks:     input.Marks,
		Answer:    input.Answer,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.Order != nil {
		question.Order = *input.Order
	} else {
		question.Order = len(paper.Questions) + 1
	}
	if question.Kind == domain.KindMultipleChoice {
		question.Options = normalizeOptions(input.Options, input.OptionA, input.OptionB, input.OptionC, input.OptionD)
	}
	if question.FreeResponse() {
		// Free-response kinds are graded manually; an answer marker is meaningless.
		question.Answer = nil
	}

	paper.Questions = append(paper.Questions, question)
	if err := s.papers.Put(ctx, paper); err != nil {
		return domain.Question{}, err
	}
	return question, nil
}

// Update applies only the provided fields to an existing question and
// persists the containing paper.
func (s *PaperService) Update(ctx context.Context, token string, questionID int, patch QuestionPatch) (domain.Question, error) {
	examID, err := paperid.ExamID(token)
	if err != nil {
		return domain.Question{}, err
	}
	paper, ok, err := s.papers.Get(ctx, examID)
	if err != nil {
		return domain.Question{}, err
	}
	if !ok {
		return domain.Question{}, domain.ErrQuestionNotFound
	}

	idx := -1
	for i := range paper.Questions {
		if paper.Questions[i].ID == questionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.Question{}, domain.ErrQuestionNotFound
	}

	question := &paper.Questions[idx]
	if patch.Kind != nil {
		question.Kind = paperid.InternalKind(*patch.Kind)
	}
	if patch.Prompt != nil {
		question.Prompt = *patch.Prompt
	}
	if patch.Marks != nil {
		question.Marks = *patch.Marks
	}
	if patch.Order != nil {
		question.Order = *patch.Order
	}
	if patch.Options != nil {
		question.Options = normalizeOptions(patch.Options, "", "", "", "")
	}
	if patch.Answer != nil {
		question.Answer = patch.Answer
	}
	if question.FreeResponse() {
		question.Answer = nil
	}
	question.UpdatedAt = s.now()

	if err := s.papers.Put(ctx, paper); err != nil {
		return domain.Question{}, err
	}
	return *question, nil
}

// Remove deletes a question from the exam's paper and persists the document.
func (s *PaperService) Remove(ctx context.Context, token string, questionID int) error {
	examID, err := paperid.ExamID(token)
	if err != nil {
		return err
	}
	paper, ok, err := s.papers.Get(ctx, examID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrQuestionNotFound
	}

	kept := paper.Questions[:0]
	found := false
	for _, q := range paper.Questions {
		if q.ID == questionID {
			found = true
			continue
		}
		kept = append(kept, q)
	}
	if !found {
		return domain.ErrQuestionNotFound
	}
	paper.Questions = kept
	return s.papers.Put(ctx, paper)
}

// normalizeOptions merges the list form and the four legacy fields, drops
// blank entries preserving order, and caps the result at MaxOptions.
func normalizeOptions(list []string, a, b, c, d string) []string {
	candidates := list
	if len(candidates) == 0 {
		candidates = []string{a, b, c, d}
	}
	options := make([]string, 0, domain.MaxOptions)
	for _, option := range candidates {
		if strings.TrimSpace(option) == "" {
			continue
		}
		options = append(options, option)
		if len(options) == domain.MaxOptions {
			break
		}
	}
	return options
}
