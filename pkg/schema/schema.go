package schema

// Schema is the contract shared by every combinator.
// Parse always returns a value together with the errors observed while
// producing it; the value is a best-effort partial result when errors is non-empty.
type Schema interface {
	// Parse validates and/or transforms data.
	Parse(data any) (any, []error)
	// Kind reports which variant the schema is.
	Kind() Kind
}

// Kind tags the closed set of schema variants.
type Kind int

const (
	KindObject Kind = iota
	KindList
	KindAnd
	KindOr
	KindTransform
	KindPredicate
)

var kindNames = [...]string{
	KindObject:    "object",
	KindList:      "list",
	KindAnd:       "and",
	KindOr:        "or",
	KindTransform: "transform",
	KindPredicate: "predicate",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Field is one declared entry of an Object.
type Field struct {
	Key    string
	Schema Schema
}

// Fields is an ordered mapping of keys to schema-likes.
// Unlike a Go map it keeps declaration order when normalized.
type Fields []FieldLike

// FieldLike pairs a key with a not yet normalized schema-like.
type FieldLike struct {
	Key    string
	Schema any
}

// Set is a multiset literal of schema-likes. It normalizes exactly like a slice.
type Set []any

// Seq is shorthand for a pipeline literal, e.g. Seq{Int(), Positive()}.
type Seq = []any
