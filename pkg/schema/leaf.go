package schema

// TransformFunc derives a new value from its input, or reports why it could not.
type TransformFunc func(any) (any, error)

// PredicateFunc decides whether a value is acceptable.
// A non-nil error means the check itself could not be evaluated.
type PredicateFunc func(any) (bool, error)

// TransformSchema applies a function to the input. See Transform.
type TransformSchema struct {
	name string
	fn   TransformFunc
}

// Transform wraps fn as a schema. A failure is captured as the sole error and the value is nil.
// It panics if fn is nil.
func Transform(fn TransformFunc) *TransformSchema {
	return NamedTransform("transform", fn)
}

// NamedTransform is Transform with a descriptor used in diagnostics.
func NamedTransform(name string, fn TransformFunc) *TransformSchema {
	if fn == nil {
		panic("schema: nil transform function")
	}
	return &TransformSchema{name: name, fn: fn}
}

func (s *TransformSchema) Kind() Kind     { return KindTransform }
func (s *TransformSchema) String() string { return s.name }

func (s *TransformSchema) Parse(data any) (any, []error) {
	v, err := s.fn(data)
	if err != nil {
		return nil, []error{err}
	}
	return v, nil
}

// PredicateSchema gates a value without changing it. See Predicate.
type PredicateSchema struct {
	name string
	fn   PredicateFunc
}

// Predicate builds a gate named name. The input is always returned unchanged;
// a false result adds a CheckFailed error, and a predicate error is reported as is.
// It panics if fn is nil.
func Predicate(name string, fn PredicateFunc) *PredicateSchema {
	if fn == nil {
		panic("schema: nil predicate function")
	}
	return &PredicateSchema{name: name, fn: fn}
}

// Is adapts an infallible boolean check into a Predicate. It panics if fn is nil.
func Is(name string, fn func(any) bool) *PredicateSchema {
	if fn == nil {
		panic("schema: nil predicate function")
	}
	return Predicate(name, func(v any) (bool, error) { return fn(v), nil })
}

// Anything accepts every value.
func Anything() *PredicateSchema {
	return Is("anything", func(any) bool { return true })
}

func (s *PredicateSchema) Kind() Kind     { return KindPredicate }
func (s *PredicateSchema) String() string { return s.name }

func (s *PredicateSchema) Parse(data any) (any, []error) {
	ok, err := s.fn(data)
	switch {
	case err != nil:
		return data, []error{err}
	case !ok:
		return data, []error{&CheckFailed{Check: s.name, Value: data}}
	}
	return data, nil
}
