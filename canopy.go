package canopy

import (
	"log/slog"
	"time"

	"github.com/aretw0/canopy/internal/logging"
	"github.com/aretw0/canopy/pkg/schema"
)

// Version is the library version reported by the CLI and the HTTP adapter.
const Version = "0.1.0"

// Root is the high-level entry point for the canopy library.
// It wraps a normalized schema tree and adds the raise-on-error contract.
type Root struct {
	inner  schema.Schema
	hooks  Hooks
	logger *slog.Logger
	Name   string
}

// Option defines a functional option for configuring a Root.
type Option func(*Root)

// WithLogger sets a structured logger. Every parse is logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Root) {
		r.logger = logger
	}
}

// WithName labels the root in logs and lifecycle events.
func WithName(name string) Option {
	return func(r *Root) {
		r.Name = name
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks Hooks) Option {
	return func(r *Root) {
		r.hooks = hooks
	}
}

// New normalizes schemaLike and wraps it in a Root.
// A malformed description fails here with a *schema.ConstructionError; it is
// never deferred to parse time.
func New(schemaLike any, opts ...Option) (*Root, error) {
	inner, err := schema.Normalize(schemaLike)
	if err != nil {
		return nil, err
	}

	r := &Root{inner: inner}
	for _, opt := range opts {
		opt(r)
	}

	if r.Name == "" {
		r.Name = inner.Kind().String()
	}
	if r.logger == nil {
		r.logger = logging.NewNop()
	}
	r.logger = r.logger.With("schema", r.Name)

	return r, nil
}

// MustNew is like New but panics on a construction error.
// It is meant for package-level schema declarations.
func MustNew(schemaLike any, opts ...Option) *Root {
	r, err := New(schemaLike, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Kind reports the variant of the wrapped schema.
func (r *Root) Kind() schema.Kind {
	return r.inner.Kind()
}

// Schema returns the normalized schema tree.
func (r *Root) Schema() schema.Schema {
	return r.inner
}

// Parse delegates to the wrapped schema. It never returns a Go error for
// invalid data: every validation failure is in the returned slice.
func (r *Root) Parse(data any) (any, []error) {
	start := time.Now()
	value, errs := r.inner.Parse(data)
	elapsed := time.Since(start)

	r.logger.Debug("parse", "errors", len(errs), "duration", elapsed)
	if r.hooks.OnParse != nil {
		r.hooks.OnParse(&ParseEvent{
			EventBase: EventBase{Timestamp: start, Type: EventParse},
			Schema:    r.Name,
			Errors:    len(errs),
			Duration:  elapsed,
		})
	}
	return value, errs
}

// ParseOrError returns the parsed value, or a *schema.ParseException holding
// every error when the data does not conform.
func (r *Root) ParseOrError(data any) (any, error) {
	value, errs := r.Parse(data)
	if len(errs) > 0 {
		return nil, &schema.ParseException{Errors: errs}
	}
	return value, nil
}
