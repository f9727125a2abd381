// SPDX-License-Identifier: MIT
//
// File: record.go
// Role: Interaction record model, kind vocabulary and record validation.

package aggregate

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Kind is the interaction type of a record.
type Kind string

// Interaction kinds. KindIssueOpened is never collected directly; it is derived
// from issue comments by DeriveIssueOpened.
const (
	KindComment     Kind = "comment"
	KindClosure     Kind = "closure"
	KindReview      Kind = "review"
	KindMerge       Kind = "merge"
	KindIssueOpened Kind = "issue_opened"
)

// kindOrder is the canonical processing order of kinds.
var kindOrder = []Kind{KindComment, KindIssueOpened, KindClosure, KindReview, KindMerge}

// Kinds returns every kind in canonical order.
func Kinds() []Kind {
	out := make([]Kind, len(kindOrder))
	copy(out, kindOrder)

	return out
}

// Derived reports whether k is produced by DeriveIssueOpened rather than read
// from input.
func (k Kind) Derived() bool { return k == KindIssueOpened }

// Rank returns k's position in canonical order; unknown kinds sort last.
func (k Kind) Rank() int {
	for i, known := range kindOrder {
		if k == known {
			return i
		}
	}

	return len(kindOrder)
}

// SubjectKind names what a record's Subject refers to.
type SubjectKind string

// Subject kinds.
const (
	SubjectIssue       SubjectKind = "issue"
	SubjectPullRequest SubjectKind = "pull_request"
)

// Record is one user-to-user interaction.
//
// Source acted on Target: the commenter → the issue/PR author, the closer →
// the issue author, the reviewer or merger → the PR author. Subject optionally
// identifies the issue or pull request the interaction happened on.
type Record struct {
	Source      string      `json:"source" validate:"userid"`
	Target      string      `json:"target" validate:"userid"`
	Kind        Kind        `json:"kind" validate:"required,oneof=comment closure review merge issue_opened"`
	Subject     string      `json:"subject,omitempty"`
	SubjectKind SubjectKind `json:"subject_kind,omitempty" validate:"omitempty,oneof=issue pull_request"`
}

// recordValidate is the validator instance for records.
// Initialized in init() with custom validators.
var recordValidate *validator.Validate

func init() {
	recordValidate = validator.New()

	_ = recordValidate.RegisterValidation("userid", func(fl validator.FieldLevel) bool {
		return validUserID(fl.Field().String())
	})
}

// validUserID rejects blank ids, invalid UTF-8 and characters XML 1.0 cannot
// carry (control characters, U+FFFE, U+FFFF).
func validUserID(id string) bool {
	if strings.TrimSpace(id) == "" || !utf8.ValidString(id) {
		return false
	}
	for _, r := range id {
		if unicode.IsControl(r) || r == 0xFFFE || r == 0xFFFF {
			return false
		}
	}

	return true
}

var (
	// ErrInvalidRecord is the sentinel matched by every *ValidationError.
	ErrInvalidRecord = errors.New("aggregate: invalid record")

	// ErrDerivedKind marks an input record carrying a kind that only
	// DeriveIssueOpened may produce.
	ErrDerivedKind = errors.New("aggregate: derived kind in input")
)

// ValidationError reports a record rejected before aggregation.
type ValidationError struct {
	// Field is the first offending field ("Source", "Target", "Kind", ...).
	Field string
	// Record is the rejected record, unchanged.
	Record Record
	// Err is the underlying validator error.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("aggregate: invalid record %s->%s (%s): field %s: %v",
		e.Record.Source, e.Record.Target, e.Record.Kind, e.Field, e.Err)
}

// Unwrap returns the underlying validator error.
func (e *ValidationError) Unwrap() error { return e.Err }

// Is matches ErrInvalidRecord.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidRecord }

// Validate checks an input record: both endpoints are printable non-blank ids
// and the kind is one of comment, closure, review or merge.
// Errors: *ValidationError.
func (r Record) Validate() error {
	if err := r.check(); err != nil {
		return err
	}
	if r.Kind.Derived() {
		return &ValidationError{Field: "Kind", Record: r, Err: ErrDerivedKind}
	}

	return nil
}

// check is Validate without the input-only kind restriction; derived records
// pass it too.
func (r Record) check() error {
	err := recordValidate.Struct(r)
	if err == nil {
		return nil
	}
	field := ""
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field = verrs[0].StructField()
	}

	return &ValidationError{Field: field, Record: r, Err: err}
}

// Filter splits records into valid ones and the validation errors of the rest,
// preserving input order on both sides.
func Filter(records []Record) ([]Record, []error) {
	valid := make([]Record, 0, len(records))
	var invalid []error
	for _, r := range records {
		if err := r.Validate(); err != nil {
			invalid = append(invalid, err)
			continue
		}
		valid = append(valid, r)
	}

	return valid, invalid
}
