package schema

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Decode returns a Transform that decodes its input into a new T using
// "mapstructure" struct tags. It is meant as the last stage of a pipeline,
// after the input has been validated and narrowed by an Object:
//
//	s := schema.And(object, schema.Decode[Config]())
func Decode[T any]() *TransformSchema {
	var zero T
	return NamedTransform(fmt.Sprintf("decode %T", zero), func(v any) (any, error) {
		var out T
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:      &out,
			ErrorUnused: true,
		})
		if err != nil {
			return nil, err
		}
		if err := dec.Decode(v); err != nil {
			return nil, err
		}
		return out, nil
	})
}
