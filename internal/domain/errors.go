package domain

import "errors"

var (
	// ErrInvalidIdentifier is returned when an external token cannot be
	// resolved to a numeric exam id.
	ErrInvalidIdentifier = errors.New("invalid exam identifier")
	// ErrPaperNotFound indicates the exam has no paper document where one
	// is required. A paper with zero questions is not this error.
	ErrPaperNotFound = errors.New("paper not found")
	// ErrQuestionNotFound indicates the addressed question id does not
	// exist inside the exam's paper.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrExamNotFound indicates the relational exam record is missing.
	ErrExamNotFound = errors.New("exam not found")
	// ErrStorageUnavailable wraps I/O failures of the document medium.
	ErrStorageUnavailable = errors.New("document storage unavailable")
	// ErrDecode indicates a stored paper could not be parsed back; treated
	// as corruption and surfaced, never returned as an empty paper.
	ErrDecode = errors.New("paper document malformed")
)
