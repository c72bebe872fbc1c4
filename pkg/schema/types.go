package schema

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// --- Coercers ---
//
// Coercers are Transforms: a value already of the target type is returned as
// is, a convertible representation is converted, and anything else is
// captured as an error. nil is never coerced.

// Int coerces to int. "1" becomes 1; "1.1" is rejected.
// Strings are always read in base 10, so "010" is 10 and "0x10" is rejected.
func Int() *TransformSchema {
	return NamedTransform("int", coerce("int", toInt))
}

// Float coerces to float64.
func Float() *TransformSchema {
	return NamedTransform("float", coerce("float", cast.ToFloat64E))
}

// String coerces to string.
func String() *TransformSchema {
	return NamedTransform("string", coerce("string", cast.ToStringE))
}

// Bool coerces to bool. Accepts the strconv.ParseBool spellings and numbers.
func Bool() *TransformSchema {
	return NamedTransform("bool", coerce("bool", cast.ToBoolE))
}

// toInt keeps cast for non-string values. cast.ToIntE guesses the base of
// strings from their prefix.
func toInt(v any) (int, error) {
	s, ok := v.(string)
	if !ok {
		return cast.ToIntE(v)
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 0)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func coerce[T any](want string, fn func(any) (T, error)) TransformFunc {
	return func(v any) (any, error) {
		if v == nil {
			return nil, &TypeError{Want: want, Value: v}
		}
		out, err := fn(v)
		if err != nil {
			return nil, &TypeError{Want: want, Value: v, Err: err}
		}
		return out, nil
	}
}

// --- Kind checks ---

// IsInt accepts signed and unsigned integers of any width.
func IsInt() *PredicateSchema {
	return Is("int", kindIn(reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64))
}

// IsFloat accepts float32 and float64.
func IsFloat() *PredicateSchema {
	return Is("float", kindIn(reflect.Float32, reflect.Float64))
}

// IsString accepts strings.
func IsString() *PredicateSchema {
	return Is("string", kindIn(reflect.String))
}

// IsBool accepts booleans.
func IsBool() *PredicateSchema {
	return Is("bool", kindIn(reflect.Bool))
}

// IsMap accepts maps keyed by strings.
func IsMap() *PredicateSchema {
	return Is("map", func(v any) bool {
		rv := reflect.ValueOf(v)
		return rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String
	})
}

// IsSlice accepts slices and arrays.
func IsSlice() *PredicateSchema {
	return Is("slice", kindIn(reflect.Slice, reflect.Array))
}

// IsNil accepts only nil.
func IsNil() *PredicateSchema {
	return Is("nil", func(v any) bool { return v == nil })
}

func kindIn(kinds ...reflect.Kind) func(any) bool {
	return func(v any) bool {
		k := reflect.ValueOf(v).Kind()
		for _, want := range kinds {
			if k == want {
				return true
			}
		}
		return false
	}
}

// --- Value checks ---

// Positive accepts numbers greater than zero. Non-numbers are an error, not a failed check.
func Positive() *PredicateSchema {
	return Predicate("positive", func(v any) (bool, error) {
		f, ok := number(v)
		if !ok {
			return false, &TypeError{Want: "number", Value: v}
		}
		return f > 0, nil
	})
}

// NonEmpty accepts strings, slices, arrays and maps of non-zero length.
func NonEmpty() *PredicateSchema {
	return Predicate("nonempty", func(v any) (bool, error) {
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
			return rv.Len() > 0, nil
		}
		return false, &TypeError{Want: "string, sequence or mapping", Value: v}
	})
}

// OneOf accepts values deeply equal to one of allowed.
func OneOf(allowed ...any) *PredicateSchema {
	return Is(fmt.Sprintf("one of %v", allowed), func(v any) bool {
		for _, a := range allowed {
			if reflect.DeepEqual(a, v) {
				return true
			}
		}
		return false
	})
}

// Matches accepts strings matched by re.
func Matches(re *regexp.Regexp) *PredicateSchema {
	return Predicate("matches "+re.String(), func(v any) (bool, error) {
		s, ok := v.(string)
		if !ok {
			return false, &TypeError{Want: "string", Value: v}
		}
		return re.MatchString(s), nil
	})
}

// Optional lets nil through unchanged and parses anything else with schemaLike.
func Optional(schemaLike any) (*OrSchema, error) {
	s, err := Normalize(schemaLike)
	if err != nil {
		return nil, err
	}
	return Or(IsNil(), s), nil
}

func number(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
