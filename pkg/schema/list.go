package schema

import "reflect"

// ListSchema parses every element of a sequence with one item schema. See List.
type ListSchema struct {
	item Schema
}

// List normalizes item and returns a schema for homogeneous sequences.
//
// Only slices and arrays are sequences. Strings and maps are rejected with a
// single error that carries no path; elements are parsed in order and their
// errors are prefixed with the element index.
func List(item any) (*ListSchema, error) {
	s, err := Normalize(item)
	if err != nil {
		return nil, err
	}
	return &ListSchema{item: s}, nil
}

// MustList is like List but panics on a construction error.
func MustList(item any) *ListSchema {
	s, err := List(item)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *ListSchema) Kind() Kind { return KindList }

// Item returns the element schema.
func (s *ListSchema) Item() Schema { return s.item }

func (s *ListSchema) Parse(data any) (any, []error) {
	rv := reflect.ValueOf(data)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, []error{&TypeError{Want: "sequence", Value: data, Err: ErrNotSequence}}
	}

	result := make([]any, rv.Len())
	var errs []error
	for i := range rv.Len() {
		r, itemErrs := s.item.Parse(rv.Index(i).Interface())
		for _, e := range itemErrs {
			errs = append(errs, &ParseError{Path: i, Err: e})
		}
		result[i] = r
	}
	return result, errs
}
