// Package schema implements a combinator engine for validating and coercing
// loosely typed data.
//
// Every schema satisfies the same contract:
//
//	Parse(data any) (any, []error)
//
// Parse never fails fast. It returns a best-effort value together with every
// error it observed, each tagged with the key or index where it occurred.
//
// Schemas are usually described with plain Go literals and converted by
// Normalize:
//
//	s, err := schema.Normalize(map[string]any{
//	    "name":    schema.String(),
//	    "retries": schema.Seq{schema.Int(), schema.Positive()},
//	    "tags":    schema.MustList(schema.String()),
//	    "extra":   nil, // anything
//	})
//
//	value, errs := s.Parse(map[string]any{"name": "api", "retries": "3"})
//
// Mappings become Objects, functions become Transforms, slices become And
// pipelines and nil accepts anything. Combinators can also be built directly
// with Object, List, And, Or, Transform and Predicate.
//
// Errors are data: a failing field produces a *ParseError whose Path is the
// field key, wrapping the child error. Use Path, Cause and Issues to inspect
// them.
//
// Schemas hold only configuration and can be shared between goroutines.
package schema
