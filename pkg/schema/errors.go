package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnsupportedSchema is wrapped by a ConstructionError when a value has no schema shape.
	ErrUnsupportedSchema = errors.New("unsupported schema-like")
	// ErrMissingKey is reported when an Object field is absent from the input.
	ErrMissingKey = errors.New("missing key")
	// ErrNotMapping is reported when an Object is applied to a value that cannot be indexed by key.
	ErrNotMapping = errors.New("not a mapping")
	// ErrNotSequence is reported when a List is applied to a value that is not a slice or array.
	ErrNotSequence = errors.New("not a sequence")
)

// PathElem is a single level of nesting: a mapping key (string) or a sequence index (int).
type PathElem any

// ParseError tags an error with the key or index at which it occurred.
// Errors compose by nesting, so the outermost ParseError holds the first path element.
type ParseError struct {
	Path PathElem
	Err  error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	var err error = e
	for {
		pe, ok := err.(*ParseError)
		if !ok {
			break
		}
		writePathElem(&b, pe.Path)
		err = pe.Err
	}
	if err == nil {
		return b.String()
	}
	return b.String() + ": " + err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// CheckFailed is reported when a predicate returns false.
type CheckFailed struct {
	Check string // descriptor of the predicate
	Value any    // the value that failed the check
}

func (e *CheckFailed) Error() string {
	return fmt.Sprintf("check %q failed for %v", e.Check, e.Value)
}

// TypeError is reported when a value has the wrong Go shape for an operation.
type TypeError struct {
	Want  string
	Value any
	Err   error
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("expected %s, got %T", e.Want, e.Value)
}

func (e *TypeError) Unwrap() error { return e.Err }

// ConstructionError is returned when a schema-like cannot be normalized.
// It is always raised at build time, never during Parse.
type ConstructionError struct {
	Value any
	Err   error
}

func (e *ConstructionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("cannot build schema from %T", e.Value)
	}
	return fmt.Sprintf("cannot build schema from %T: %v", e.Value, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }

// ParseException aggregates every error of one top-level parse.
type ParseException struct {
	Errors []error
}

func (e *ParseException) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

func (e *ParseException) Unwrap() []error { return e.Errors }

// ParseErrors returns all errors if err is a ParseException.
// Otherwise returns nil.
func ParseErrors(err error) []error {
	var pe *ParseException
	if errors.As(err, &pe) {
		return pe.Errors
	}
	return nil
}

// Path returns the key/index trail of err, outer to inner.
func Path(err error) []PathElem {
	var path []PathElem
	for {
		pe, ok := err.(*ParseError)
		if !ok {
			return path
		}
		path = append(path, pe.Path)
		err = pe.Err
	}
}

// Cause strips every ParseError layer and returns the underlying failure.
func Cause(err error) error {
	for {
		pe, ok := err.(*ParseError)
		if !ok {
			return err
		}
		err = pe.Err
	}
}

// FormatPath renders a path as "a.b[2].c". The empty path renders as "".
func FormatPath(path []PathElem) string {
	var b strings.Builder
	for _, p := range path {
		writePathElem(&b, p)
	}
	return b.String()
}

func writePathElem(b *strings.Builder, p PathElem) {
	switch v := p.(type) {
	case int:
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(v))
		b.WriteByte(']')
	default:
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		fmt.Fprint(b, v)
	}
}

// Issue is a flattened, serializable view of one parse error.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Issues flattens errs into path/message pairs, preserving order.
func Issues(errs []error) []Issue {
	out := make([]Issue, 0, len(errs))
	for _, err := range errs {
		msg := "<nil>"
		if c := Cause(err); c != nil {
			msg = c.Error()
		}
		out = append(out, Issue{Path: FormatPath(Path(err)), Message: msg})
	}
	return out
}
