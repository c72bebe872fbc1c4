package schema

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

var builtinTypes = map[string]func() Schema{
	"int":      func() Schema { return Int() },
	"float":    func() Schema { return Float() },
	"string":   func() Schema { return String() },
	"bool":     func() Schema { return Bool() },
	"any":      func() Schema { return Anything() },
	"positive": func() Schema { return Positive() },
	"nonempty": func() Schema { return NonEmpty() },
	"nil":      func() Schema { return IsNil() },
}

// ParseType converts a type name into a Schema.
// Supports the built-in names ("int", "float", "string", "bool", "any",
// "positive", "nonempty", "nil"), list types such as "[int]" and optional
// types such as "int?". Nesting is allowed: "[[string]?]".
func ParseType(typeStr string) (Schema, error) {
	typeStr = strings.TrimSpace(typeStr)

	if inner, ok := strings.CutSuffix(typeStr, "?"); ok && inner != "" {
		elem, err := ParseType(inner)
		if err != nil {
			return nil, err
		}
		return Or(IsNil(), elem), nil
	}

	// "[T]" is a List whose items parse as T.
	if len(typeStr) > 2 && typeStr[0] == '[' && typeStr[len(typeStr)-1] == ']' {
		elem, err := ParseType(typeStr[1 : len(typeStr)-1])
		if err != nil {
			return nil, err
		}
		return &ListSchema{item: elem}, nil
	}

	if mk, ok := builtinTypes[typeStr]; ok {
		return mk(), nil
	}
	return nil, &ConstructionError{Value: typeStr, Err: fmt.Errorf("%w: unknown type %q", ErrUnsupportedSchema, typeStr)}
}

// FromDescription builds a Schema from a decoded JSON or YAML tree.
// Mappings become Objects (keys in sorted order), lists become And pipelines,
// strings are type names for ParseType and nil accepts anything.
func FromDescription(desc any) (Schema, error) {
	switch v := desc.(type) {
	case nil:
		return Anything(), nil
	case string:
		return ParseType(v)
	case map[string]any:
		m := make(map[string]any, len(v))
		for k, child := range v {
			s, err := FromDescription(child)
			if err != nil {
				return nil, nestConstruction(desc, k, err)
			}
			m[k] = s
		}
		return NewObject(m)
	case []any:
		stages := make([]Schema, 0, len(v))
		for i, child := range v {
			s, err := FromDescription(child)
			if err != nil {
				return nil, nestConstruction(desc, i, err)
			}
			stages = append(stages, s)
		}
		return And(stages...), nil
	}
	return nil, &ConstructionError{Value: desc, Err: ErrUnsupportedSchema}
}

// FromYAML builds a Schema from a YAML description, keeping the declaration
// order of mapping keys. An empty document accepts anything.
func FromYAML(data []byte) (Schema, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ConstructionError{Value: string(data), Err: err}
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return Anything(), nil
	}
	return fromNode(doc.Content[0])
}

func fromNode(n *yaml.Node) (Schema, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return fromNode(n.Alias)
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return Anything(), nil
		}
		return ParseType(n.Value)
	case yaml.MappingNode:
		fields := make([]Field, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			s, err := fromNode(n.Content[i+1])
			if err != nil {
				return nil, nestConstruction(n.Value, key, err)
			}
			fields = append(fields, Field{Key: key, Schema: s})
		}
		return Object(fields...), nil
	case yaml.SequenceNode:
		stages := make([]Schema, 0, len(n.Content))
		for i, c := range n.Content {
			s, err := fromNode(c)
			if err != nil {
				return nil, nestConstruction(n.Value, i, err)
			}
			stages = append(stages, s)
		}
		return And(stages...), nil
	}
	return nil, &ConstructionError{Value: n.Value, Err: fmt.Errorf("%w: yaml node at line %d", ErrUnsupportedSchema, n.Line)}
}
