package schema

import (
	"reflect"
	"sort"
)

// ObjectSchema narrows a mapping to its declared fields. See Object.
type ObjectSchema struct {
	fields []Field
}

// Object builds a mapping schema from already normalized fields, in order.
//
// Parse extracts each declared key, parses it with the field schema and
// prefixes the field's errors with the key. A key that cannot be extracted is
// reported once and left out of the result. Undeclared input keys are dropped.
func Object(fields ...Field) *ObjectSchema {
	return &ObjectSchema{fields: fields}
}

// NewObject normalizes every value of m. Keys are visited in sorted order.
func NewObject(m map[string]any) (*ObjectSchema, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make(Fields, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, FieldLike{Key: k, Schema: m[k]})
	}
	obj, err := fields.Object()
	if ce, ok := err.(*ConstructionError); ok {
		ce.Value = m
	}
	return obj, err
}

// Object normalizes the entries of f into an ObjectSchema, keeping their order.
func (f Fields) Object() (*ObjectSchema, error) {
	out := make([]Field, 0, len(f))
	for _, fl := range f {
		s, err := Normalize(fl.Schema)
		if err != nil {
			return nil, nestConstruction(f, fl.Key, err)
		}
		out = append(out, Field{Key: fl.Key, Schema: s})
	}
	return Object(out...), nil
}

func (s *ObjectSchema) Kind() Kind { return KindObject }

// Fields returns the declared fields in order.
func (s *ObjectSchema) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

func (s *ObjectSchema) Parse(data any) (any, []error) {
	result := make(map[string]any, len(s.fields))
	var errs []error
	for _, f := range s.fields {
		v, err := lookup(data, f.Key)
		if err != nil {
			errs = append(errs, &ParseError{Path: f.Key, Err: err})
			continue
		}
		r, fieldErrs := f.Schema.Parse(v)
		for _, e := range fieldErrs {
			errs = append(errs, &ParseError{Path: f.Key, Err: e})
		}
		result[f.Key] = r
	}
	return result, errs
}

// lookup extracts data[key] from any map whose key type is a string kind.
func lookup(data any, key string) (any, error) {
	if m, ok := data.(map[string]any); ok {
		v, found := m[key]
		if !found {
			return nil, ErrMissingKey
		}
		return v, nil
	}

	rv := reflect.ValueOf(data)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, &TypeError{Want: "mapping", Value: data, Err: ErrNotMapping}
	}
	v := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
	if !v.IsValid() {
		return nil, ErrMissingKey
	}
	return v.Interface(), nil
}
