package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/canopy"
	"github.com/aretw0/canopy/pkg/schema"
)

// LoadSchema reads a schema description file (YAML or JSON, by extension)
// and builds a Root from it.
func LoadSchema(path string, opts ...canopy.Option) (*canopy.Root, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}

	var s schema.Schema
	if isJSON(path) {
		var desc any
		if err := json.Unmarshal(data, &desc); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
		s, err = schema.FromDescription(desc)
	} else {
		// Default to YAML, which keeps the declaration order of fields.
		s, err = schema.FromYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid schema %s: %w", filepath.Base(path), err)
	}

	opts = append([]canopy.Option{canopy.WithName(SchemaName(path))}, opts...)
	return canopy.New(s, opts...)
}

// LoadDocument reads a data document (YAML or JSON, by extension).
func LoadDocument(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return DecodeDocument(data, isJSON(path))
}

// DecodeDocument decodes raw bytes as JSON or YAML.
func DecodeDocument(data []byte, asJSON bool) (any, error) {
	var doc any
	if asJSON {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse json: %w", err)
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	return doc, nil
}

// SchemaName derives a schema name from its file name: "schemas/user.yaml" -> "user".
func SchemaName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
