package domain

import "time"

// Internal question kind tags. The externally-facing vocabulary is mapped
// onto these by the paperid package.
const (
	KindMultipleChoice = "multiple_choice"
	KindShortAnswer    = "short_answer"
	KindEssay          = "essay"
	KindTrueFalse      = "true_false"
)

// MaxOptions caps the option list of a multiple-choice question.
const MaxOptions = 4

// Question is one graded entry inside a Paper. The ID is only unique within
// its paper. Answer is nil for free-response kinds, where grading is manual.
type Question struct {
	ID        int       `json:"id"`
	Kind      string    `json:"kind"`
	Prompt    string    `json:"prompt"`
	Marks     int       `json:"marks"`
	Order     int       `json:"order"`
	Options   []string  `json:"options,omitempty"`
	Answer    *string   `json:"answer,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FreeResponse reports whether the question kind is graded manually and
// therefore carries no answer marker.
func (q Question) FreeResponse() bool {
	return q.Kind == KindShortAnswer || q.Kind == KindEssay
}

// Paper is the per-exam document holding the ordered question set. One paper
// per exam; created implicitly on first question insertion.
type Paper struct {
	ExamID    int64      `json:"examId"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// TotalMarks sums the marks of every question in the paper.
func (p Paper) TotalMarks() int {
	total := 0
	for _, q := range p.Questions {
		total += q.Marks
	}
	return total
}

// NextQuestionID returns the next free internal question id for the paper.
func (p Paper) NextQuestionID() int {
	next := 1
	for _, q := range p.Questions {
		if q.ID >= next {
			next = q.ID + 1
		}
	}
	return next
}

// Result is one student's submitted outcome for an exam. Rank is never
// stored; it is derived per request by the ranking engine.
type Result struct {
	StudentID  int64   `json:"studentId"`
	ExamID     int64   `json:"examId"`
	Score      float64 `json:"score"`
	Percentage float64 `json:"percentage"`
}

// Standing is a student's derived position within one exam's results.
type Standing struct {
	Rank              int `json:"rank"`
	TotalParticipants int `json:"totalParticipants"`
}

// Question event actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// EventKindQuestions is the event kind emitted for every paper mutation.
const EventKindQuestions = "questions_updated"

// QuestionEvent is the fire-and-forget notification fanned out to live
// subscribers after a question mutation. Question is set for created and
// updated actions; deletes carry only the question id.
type QuestionEvent struct {
	Kind       string    `json:"kind"`
	ExamID     int64     `json:"examId"`
	Action     string    `json:"action"`
	Question   *Question `json:"question,omitempty"`
	QuestionID int       `json:"questionId,omitempty"`
}
