// Package paperid resolves the external identifier and vocabulary ambiguity
// around papers. The same paper is addressed three ways by callers: by bare
// exam id, by a legacy composite token of the form paper_<examID>_<suffix>,
// and via query parameters carrying either. Everything that touches a paper
// goes through ExamID rather than re-implementing the parsing.
package paperid

import (
	"fmt"
	"strconv"
	"strings"

	"exam-paper-service/internal/domain"
)

const compositePrefix = "paper_"

// ExamID extracts the numeric exam id from an external token. Composite
// tokens embed the id as their second segment; the trailing suffix is opaque
// and ignored. Anything else must parse as a bare number.
func ExamID(token string) (int64, error) {
	raw := strings.TrimSpace(token)
	if strings.HasPrefix(raw, compositePrefix) {
		rest := strings.TrimPrefix(raw, compositePrefix)
		if i := strings.IndexByte(rest, '_'); i >= 0 {
			rest = rest[:i]
		}
		raw = rest
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidIdentifier, token)
	}
	return id, nil
}

// externalToInternal is the fixed kind vocabulary table. Unknown external
// kinds pass through unchanged so newer callers are not rejected here.
var externalToInternal = map[string]string{
	"mcq":       domain.KindMultipleChoice,
	"written":   domain.KindShortAnswer,
	"essay":     domain.KindEssay,
	"truefalse": domain.KindTrueFalse,
}

var internalToExternal = map[string]string{
	domain.KindMultipleChoice: "mcq",
	domain.KindShortAnswer:    "written",
	domain.KindEssay:          "essay",
	domain.KindTrueFalse:      "truefalse",
}

// InternalKind maps an external question kind onto the internal tag.
func InternalKind(external string) string {
	if internal, ok := externalToInternal[external]; ok {
		return internal
	}
	return external
}

// ExternalKind maps an internal kind tag back to the external vocabulary.
func ExternalKind(internal string) string {
	if external, ok := internalToExternal[internal]; ok {
		return external
	}
	return internal
}
