package envconfig

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Redblueflame/env-config/pkg/schema"
)

// Sentinel errors for errors.Is.
var (
	ErrRead          = errors.New("configuration source could not be read")
	ErrParsing       = errors.New("configuration source could not be parsed")
	ErrType          = errors.New("environment value has the wrong type")
	ErrMissingFields = errors.New("required fields are missing")
	ErrConstraint    = errors.New("field constraint violated")
)

// ReadError reports a source that could not be accessed. It aborts the run.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Is matches ErrRead.
func (e *ReadError) Is(target error) bool { return target == ErrRead }

// ParsingError reports source content that could not be decoded into a
// partial record. Field is set when the document decoded but a value had
// the wrong shape for its field. It aborts the run, so only the first
// mismatched field in schema order is reported.
type ParsingError struct {
	Path  string
	Field string
	Err   error
}

func (e *ParsingError) Error() string {
	path := e.Path
	if path == "" {
		path = "<inline>"
	}
	if e.Field != "" {
		return fmt.Sprintf("parse %s: field %s: %v", path, e.Field, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", path, e.Err)
}

func (e *ParsingError) Unwrap() error { return e.Err }

// Is matches ErrParsing.
func (e *ParsingError) Is(target error) bool { return target == ErrParsing }

// TypeError reports an environment override that could not be converted
// to its field's kind. Value is empty for secret fields.
type TypeError struct {
	Field  string
	EnvKey string
	Kind   schema.Kind
	Value  string
	Err    error
}

func (e *TypeError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("field %s: %s is not a valid %s", e.Field, e.EnvKey, e.Kind)
	}
	return fmt.Sprintf("field %s: %s=%q is not a valid %s", e.Field, e.EnvKey, e.Value, e.Kind)
}

func (e *TypeError) Unwrap() error { return e.Err }

// Is matches ErrType.
func (e *TypeError) Is(target error) bool { return target == ErrType }

// MissingFieldsError lists the required fields that had no value in any
// source, in schema order.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// Is matches ErrMissingFields.
func (e *MissingFieldsError) Is(target error) bool { return target == ErrMissingFields }

// ConstraintError reports a `validate` tag that failed on the bound value.
type ConstraintError struct {
	Field string
	Tag   string
	Param string
}

func (e *ConstraintError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("field %s: failed constraint %s=%s", e.Field, e.Tag, e.Param)
	}
	return fmt.Sprintf("field %s: failed constraint %s", e.Field, e.Tag)
}

// Is matches ErrConstraint.
func (e *ConstraintError) Is(target error) bool { return target == ErrConstraint }

// Problem categories.
const (
	CategoryType       = "type"
	CategoryMissing    = "missing"
	CategoryConstraint = "constraint"
)

// Problem is one entry of an AssemblyError, flattened for reporting.
type Problem struct {
	Field    string `json:"field" yaml:"field"`
	Category string `json:"category" yaml:"category"`
	Detail   string `json:"detail" yaml:"detail"`
}

// AssemblyError aggregates every recoverable problem found in one run.
// Each list is in schema order.
type AssemblyError struct {
	TypeErrors  []*TypeError
	Missing     *MissingFieldsError
	Constraints []*ConstraintError

	problems []Problem
}

func (e *AssemblyError) Error() string {
	parts := make([]string, 0, len(e.problems))
	for _, p := range e.problems {
		parts = append(parts, p.Field+": "+p.Detail)
	}
	noun := "problems"
	if len(parts) == 1 {
		noun = "problem"
	}
	return fmt.Sprintf("invalid configuration (%d %s): %s", len(parts), noun, strings.Join(parts, "; "))
}

// Unwrap returns every underlying error.
func (e *AssemblyError) Unwrap() []error {
	errs := make([]error, 0, len(e.TypeErrors)+len(e.Constraints)+1)
	for _, te := range e.TypeErrors {
		errs = append(errs, te)
	}
	if e.Missing != nil {
		errs = append(errs, e.Missing)
	}
	for _, ce := range e.Constraints {
		errs = append(errs, ce)
	}
	return errs
}

// Problems returns one entry per problem, ordered by schema position.
func (e *AssemblyError) Problems() []Problem {
	return slices.Clone(e.problems)
}

// MissingFields returns the names of the missing required fields.
func (e *AssemblyError) MissingFields() []string {
	if e.Missing == nil {
		return nil
	}
	return slices.Clone(e.Missing.Fields)
}

// newAssemblyError builds the aggregate and its ordered problem list.
// envKeys holds the environment key of each field, by schema position.
func newAssemblyError(desc *schema.Descriptor, envKeys []string, typeErrs []*TypeError, missing []string, constraints []*ConstraintError) *AssemblyError {
	e := &AssemblyError{
		TypeErrors:  typeErrs,
		Constraints: constraints,
	}
	if len(missing) > 0 {
		e.Missing = &MissingFieldsError{Fields: missing}
	}

	type ranked struct {
		pos int
		p   Problem
	}
	var all []ranked

	for _, te := range typeErrs {
		all = append(all, ranked{desc.IndexOf(te.Field), Problem{
			Field:    te.Field,
			Category: CategoryType,
			Detail:   fmt.Sprintf("environment variable %s is not a valid %s", te.EnvKey, te.Kind),
		}})
	}
	for _, name := range missing {
		pos := desc.IndexOf(name)
		detail := "required but not set in the file"
		if pos >= 0 && pos < len(envKeys) {
			detail += " or in environment variable " + envKeys[pos]
		}
		all = append(all, ranked{pos, Problem{
			Field:    name,
			Category: CategoryMissing,
			Detail:   detail,
		}})
	}
	for _, ce := range constraints {
		detail := "failed constraint " + ce.Tag
		if ce.Param != "" {
			detail += "=" + ce.Param
		}
		all = append(all, ranked{desc.IndexOf(ce.Field), Problem{
			Field:    ce.Field,
			Category: CategoryConstraint,
			Detail:   detail,
		}})
	}

	slices.SortStableFunc(all, func(a, b ranked) int {
		return a.pos - b.pos
	})

	e.problems = make([]Problem, len(all))
	for i, r := range all {
		e.problems[i] = r.p
	}
	return e
}
