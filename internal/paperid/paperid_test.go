package paperid

import (
	"errors"
	"testing"

	"exam-paper-service/internal/domain"
)

func TestExamIDCompositeToken(t *testing.T) {
	id, err := ExamID("paper_42_new")
	if err != nil {
		t.Fatalf("parse composite: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected 42, got %d", id)
	}
}

func TestExamIDBareNumber(t *testing.T) {
	id, err := ExamID("42")
	if err != nil {
		t.Fatalf("parse bare: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected 42, got %d", id)
	}
}

func TestExamIDCompositeWithoutSuffix(t *testing.T) {
	id, err := ExamID("paper_7")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if id != 7 {
		t.Fatalf("expected 7, got %d", id)
	}
}

func TestExamIDRejectsGarbage(t *testing.T) {
	for _, token := range []string{"not-a-number", "paper_x_new", "", "paper__3"} {
		_, err := ExamID(token)
		if !errors.Is(err, domain.ErrInvalidIdentifier) {
			t.Fatalf("token %q: expected ErrInvalidIdentifier, got %v", token, err)
		}
	}
}

func TestKindMappingRoundTrip(t *testing.T) {
	cases := map[string]string{
		"mcq":       domain.KindMultipleChoice,
		"written":   domain.KindShortAnswer,
		"essay":     domain.KindEssay,
		"truefalse": domain.KindTrueFalse,
	}
	for external, internal := range cases {
		if got := InternalKind(external); got != internal {
			t.Fatalf("InternalKind(%q) = %q, want %q", external, got, internal)
		}
		if got := ExternalKind(internal); got != external {
			t.Fatalf("ExternalKind(%q) = %q, want %q", internal, got, external)
		}
	}
}

func TestUnknownKindPassesThrough(t *testing.T) {
	if got := InternalKind("matching"); got != "matching" {
		t.Fatalf("expected pass-through, got %q", got)
	}
	if got := ExternalKind("matching"); got != "matching" {
		t.Fatalf("expected pass-through, got %q", got)
	}
}
