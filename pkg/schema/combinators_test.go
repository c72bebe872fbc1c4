package schema

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObject_DropsUnknownKeys(t *testing.T) {
	s := Object(Field{Key: "a", Schema: Int()})

	got, errs := s.Parse(map[string]any{"a": 1, "b": 1})
	assert.Empty(t, errs)
	assert.Equal(t, map[string]any{"a": 1}, got)
}

func TestObject_MissingKey(t *testing.T) {
	s := Object(Field{Key: "a", Schema: Int()}, Field{Key: "b", Schema: Int()})

	got, errs := s.Parse(map[string]any{"b": "2"})
	require.Len(t, errs, 1)
	assert.Equal(t, map[string]any{"b": 2}, got, "missing field is omitted from the result")

	var pe *ParseError
	require.ErrorAs(t, errs[0], &pe)
	assert.Equal(t, "a", pe.Path)
	assert.ErrorIs(t, errs[0], ErrMissingKey)
}

func TestObject_CollectsEveryField(t *testing.T) {
	s := Object(
		Field{Key: "a", Schema: Int()},
		Field{Key: "b", Schema: Positive()},
		Field{Key: "c", Schema: Int()},
	)

	got, errs := s.Parse(map[string]any{"a": "x", "b": -1, "c": "3"})
	require.Len(t, errs, 2)
	assert.Equal(t, []PathElem{"a"}, Path(errs[0]))
	assert.Equal(t, []PathElem{"b"}, Path(errs[1]))

	// Invalid but extracted values keep their partial result.
	assert.Equal(t, map[string]any{"a": nil, "b": -1, "c": 3}, got)
}

func TestObject_NotAMapping(t *testing.T) {
	s := Object(Field{Key: "a", Schema: Anything()}, Field{Key: "b", Schema: Anything()})

	for _, input := range []any{"b", 42, nil, []any{1}, map[int]any{1: 1}} {
		t.Run(fmt.Sprintf("%T", input), func(t *testing.T) {
			got, errs := s.Parse(input)
			assert.Equal(t, map[string]any{}, got)
			require.Len(t, errs, 2, "one error per declared field")
			assert.ErrorIs(t, errs[0], ErrNotMapping)
			assert.Equal(t, []PathElem{"a"}, Path(errs[0]))
			assert.Equal(t, []PathElem{"b"}, Path(errs[1]))
		})
	}
}

func TestObject_TypedMaps(t *testing.T) {
	type key string
	s := Object(Field{Key: "a", Schema: Positive()})

	got, errs := s.Parse(map[key]int{"a": 1, "z": 0})
	assert.Empty(t, errs)
	assert.Equal(t, map[string]any{"a": 1}, got)

	_, errs = s.Parse(map[string]int{})
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrMissingKey)
}

func TestObject_NestedPaths(t *testing.T) {
	s := MustNormalize(map[string]any{
		"a": map[string]any{
			"b": map[string]any{"c": nil},
		},
	})

	got, errs := s.Parse(map[string]any{"a": map[string]any{"b": map[string]any{"c": "hello", "d": "there"}}})
	assert.Empty(t, errs)
	assert.Equal(t, map[string]any{"a": map[string]any{"b": map[string]any{"c": "hello"}}}, got)

	_, errs = s.Parse(map[string]any{"a": "b"})
	require.Len(t, errs, 1)
	assert.Equal(t, []PathElem{"a", "b"}, Path(errs[0]))
	assert.ErrorIs(t, errs[0], ErrNotMapping)

	_, errs = s.Parse(map[string]any{"a": map[string]any{"b": map[string]any{}}})
	require.Len(t, errs, 1)
	assert.Equal(t, []PathElem{"a", "b", "c"}, Path(errs[0]))
	assert.ErrorIs(t, errs[0], ErrMissingKey)
}

func TestList(t *testing.T) {
	s := MustList(map[string]any{"a": Int()})

	t.Run("empty", func(t *testing.T) {
		got, errs := s.Parse([]any{})
		assert.Empty(t, errs)
		assert.Equal(t, []any{}, got)
	})

	t.Run("order and length preserved", func(t *testing.T) {
		got, errs := s.Parse([]any{map[string]any{"a": 1}, map[string]any{"a": 2}})
		assert.Empty(t, errs)
		assert.Equal(t, []any{map[string]any{"a": 1}, map[string]any{"a": 2}}, got)
	})

	t.Run("typed slices and arrays", func(t *testing.T) {
		got, errs := MustList(Int()).Parse([2]string{"1", "2"})
		assert.Empty(t, errs)
		assert.Equal(t, []any{1, 2}, got)
	})

	t.Run("element errors are index tagged", func(t *testing.T) {
		got, errs := s.Parse([]any{map[string]any{"a": 1}, map[string]any{"a": "x"}, map[string]any{}})
		require.Len(t, errs, 2)
		assert.Equal(t, []PathElem{1, "a"}, Path(errs[0]))
		assert.Equal(t, []PathElem{2, "a"}, Path(errs[1]))
		assert.Len(t, got, 3, "partial results keep their position")
	})

	t.Run("mapping is not a sequence", func(t *testing.T) {
		got, errs := s.Parse(map[string]any{"a": 1})
		assert.Nil(t, got)
		require.Len(t, errs, 1)
		assert.ErrorIs(t, errs[0], ErrNotSequence)
		assert.Empty(t, Path(errs[0]), "sequence errors carry no path")
	})

	t.Run("non-iterables", func(t *testing.T) {
		for _, input := range []any{nil, 1, "abc", true} {
			got, errs := s.Parse(input)
			assert.Nil(t, got)
			require.Len(t, errs, 1)
			assert.ErrorIs(t, errs[0], ErrNotSequence)
		}
	})
}

func TestList_ConstructionError(t *testing.T) {
	_, err := List(3.5)
	var ce *ConstructionError
	assert.ErrorAs(t, err, &ce)
	assert.Panics(t, func() { MustList(3.5) })
}

func TestAnd_ThreadsValuesAndKeepsAllErrors(t *testing.T) {
	s := And(Int(), Positive())

	got, errs := s.Parse("5")
	assert.Empty(t, errs)
	assert.Equal(t, 5, got)

	got, errs = s.Parse("-5")
	assert.Equal(t, -5, got)
	require.Len(t, errs, 1)

	// The coercer fails and the next stage still runs against its nil result.
	got, errs = s.Parse("x")
	assert.Nil(t, got)
	require.Len(t, errs, 2)
	var te *TypeError
	assert.ErrorAs(t, errs[0], &te)
	assert.ErrorAs(t, errs[1], &te)
}

func TestAnd_Empty(t *testing.T) {
	got, errs := And().Parse("x")
	assert.Empty(t, errs)
	assert.Equal(t, "x", got)
}

func TestOr(t *testing.T) {
	t.Run("first success wins untouched", func(t *testing.T) {
		s := Or(IsString(), Int())
		got, errs := s.Parse("7")
		assert.Empty(t, errs)
		assert.Equal(t, "7", got)
	})

	t.Run("alternatives see the original input", func(t *testing.T) {
		double := Transform(func(v any) (any, error) {
			n, ok := v.(int)
			if !ok {
				return nil, errors.New("not an int")
			}
			return n * 2, nil
		})
		s := Or(And(double, Is("never", func(any) bool { return false })), double)
		got, errs := s.Parse(2)
		assert.Empty(t, errs)
		assert.Equal(t, 4, got)
	})

	t.Run("all fail reports only the last alternative", func(t *testing.T) {
		first := Is("first", func(any) bool { return false })
		last := Transform(func(any) (any, error) { return nil, errors.New("last failed") })
		s := Or(first, last)

		got, errs := s.Parse("x")
		assert.Nil(t, got)
		require.Len(t, errs, 1)
		assert.EqualError(t, errs[0], "last failed")
		var cf *CheckFailed
		assert.False(t, errors.As(errs[0], &cf))
	})

	t.Run("no alternatives", func(t *testing.T) {
		got, errs := Or().Parse("x")
		assert.Empty(t, errs)
		assert.Equal(t, "x", got)
	})
}

func TestTransform(t *testing.T) {
	boom := errors.New("boom")
	s := Transform(func(v any) (any, error) {
		if v == "bad" {
			return "ignored", boom
		}
		return fmt.Sprint(v, "!"), nil
	})

	got, errs := s.Parse("ok")
	assert.Empty(t, errs)
	assert.Equal(t, "ok!", got)

	got, errs = s.Parse("bad")
	assert.Nil(t, got)
	assert.Equal(t, []error{boom}, errs)
}

func TestPredicate(t *testing.T) {
	boom := errors.New("cannot tell")
	s := Predicate("even", func(v any) (bool, error) {
		n, ok := v.(int)
		if !ok {
			return false, boom
		}
		return n%2 == 0, nil
	})

	got, errs := s.Parse(4)
	assert.Empty(t, errs)
	assert.Equal(t, 4, got)

	got, errs = s.Parse(3)
	assert.Equal(t, 3, got)
	assert.Equal(t, []error{&CheckFailed{Check: "even", Value: 3}}, errs)

	got, errs = s.Parse("x")
	assert.Equal(t, "x", got)
	assert.Equal(t, []error{boom}, errs)
}

func TestAnything(t *testing.T) {
	for _, v := range []any{nil, 0, "", []any{}, map[string]any{}} {
		got, errs := Anything().Parse(v)
		assert.Empty(t, errs)
		assert.Equal(t, v, got)
	}
}

func TestKinds(t *testing.T) {
	assert.Equal(t, KindObject, Object().Kind())
	assert.Equal(t, KindList, MustList(nil).Kind())
	assert.Equal(t, KindAnd, And().Kind())
	assert.Equal(t, KindOr, Or().Kind())
	assert.Equal(t, KindTransform, Int().Kind())
	assert.Equal(t, KindPredicate, Anything().Kind())
	assert.Equal(t, "list", KindList.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
