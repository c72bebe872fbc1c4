package schema

import (
	"reflect"
	"runtime"
)

var errorType = reflect.TypeFor[error]()

// Normalize converts a schema-like value into a Schema.
//
// Shapes are tried in order:
//   - a Schema is returned unchanged
//   - a mapping with string keys (or Fields) becomes an Object
//   - a single-argument function becomes a Transform
//   - a slice, array or Set becomes an And over its normalized elements
//   - nil becomes Anything
//
// Any other value yields a *ConstructionError.
func Normalize(schemaLike any) (Schema, error) {
	switch v := schemaLike.(type) {
	case nil:
		return Anything(), nil
	case Schema:
		return v, nil
	case Fields:
		return v.Object()
	case map[string]any:
		return NewObject(v)
	case TransformFunc:
		if v == nil {
			return nil, &ConstructionError{Value: schemaLike, Err: ErrUnsupportedSchema}
		}
		return Transform(v), nil
	case func(any) (any, error):
		if v == nil {
			return nil, &ConstructionError{Value: schemaLike, Err: ErrUnsupportedSchema}
		}
		return Transform(v), nil
	case func(any) any:
		if v == nil {
			return nil, &ConstructionError{Value: schemaLike, Err: ErrUnsupportedSchema}
		}
		return Transform(func(x any) (any, error) { return v(x), nil }), nil
	case Set:
		return newAnd(v, []any(v))
	case []any:
		return newAnd(v, v)
	}

	rv := reflect.ValueOf(schemaLike)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return NewObject(m)
	case reflect.Func:
		if rv.IsNil() {
			break
		}
		if t, ok := reflectTransform(rv); ok {
			return t, nil
		}
	case reflect.Slice, reflect.Array:
		elems := make([]any, rv.Len())
		for i := range elems {
			elems[i] = rv.Index(i).Interface()
		}
		return newAnd(schemaLike, elems)
	}
	return nil, &ConstructionError{Value: schemaLike, Err: ErrUnsupportedSchema}
}

// MustNormalize is like Normalize but panics on a construction error.
func MustNormalize(schemaLike any) Schema {
	s, err := Normalize(schemaLike)
	if err != nil {
		panic(err)
	}
	return s
}

// NormalizeList normalizes every element of a slice, array or Set.
// Any other input, or any element that fails to normalize, yields a *ConstructionError.
func NormalizeList(seq any) ([]Schema, error) {
	var elems []any
	switch v := seq.(type) {
	case Set:
		elems = v
	case []any:
		elems = v
	case Fields:
		return nil, &ConstructionError{Value: seq, Err: ErrUnsupportedSchema}
	default:
		rv := reflect.ValueOf(seq)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return nil, &ConstructionError{Value: seq, Err: ErrUnsupportedSchema}
		}
		elems = make([]any, rv.Len())
		for i := range elems {
			elems[i] = rv.Index(i).Interface()
		}
	}

	out := make([]Schema, 0, len(elems))
	for i, e := range elems {
		s, err := Normalize(e)
		if err != nil {
			return nil, nestConstruction(seq, i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// nestConstruction reports a failure to normalize the child at path, merging
// the child's own path so the error reads "a.b[1]" rather than nesting messages.
func nestConstruction(value any, path PathElem, err error) *ConstructionError {
	if ce, ok := err.(*ConstructionError); ok {
		if pe, ok := ce.Err.(*ParseError); ok {
			err = pe
		}
	}
	return &ConstructionError{Value: value, Err: &ParseError{Path: path, Err: err}}
}

func newAnd(orig any, elems []any) (Schema, error) {
	stages, err := NormalizeList(elems)
	if err != nil {
		if ce, ok := err.(*ConstructionError); ok {
			ce.Value = orig
		}
		return nil, err
	}
	return And(stages...), nil
}

// reflectTransform adapts func(T) R and func(T) (R, error) into a Transform.
// An input not assignable to T is reported as a *TypeError at parse time.
func reflectTransform(fn reflect.Value) (*TransformSchema, bool) {
	t := fn.Type()
	if t.NumIn() != 1 || t.IsVariadic() {
		return nil, false
	}
	switch {
	case t.NumOut() == 1:
	case t.NumOut() == 2 && t.Out(1) == errorType:
	default:
		return nil, false
	}

	in := t.In(0)
	name := "transform"
	if f := runtime.FuncForPC(fn.Pointer()); f != nil {
		name = f.Name()
	}
	return NamedTransform(name, func(data any) (any, error) {
		arg := reflect.ValueOf(data)
		switch {
		case !arg.IsValid() && nillable(in.Kind()):
			arg = reflect.Zero(in)
		case !arg.IsValid() || !arg.Type().AssignableTo(in):
			return nil, &TypeError{Want: in.String(), Value: data}
		}
		out := fn.Call([]reflect.Value{arg})
		if len(out) == 2 && !out[1].IsNil() {
			return nil, out[1].Interface().(error)
		}
		return out[0].Interface(), nil
	}), true
}

func nillable(k reflect.Kind) bool {
	switch k {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}
