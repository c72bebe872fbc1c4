package schema

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntCoercer(t *testing.T) {
	s := Int()

	if s.String() != "int" {
		t.Errorf("String() = %q, want %q", s.String(), "int")
	}

	tests := []struct {
		value   any
		want    any
		wantErr bool
	}{
		{1, 1, false},
		{"1", 1, false},
		{int64(7), 7, false},
		{"1.1", nil, true},
		{"010", 10, false},
		{"08", 8, false},
		{" 42 ", 42, false},
		{"-7", -7, false},
		{"0x10", nil, true},
		{"0b1", nil, true},
		{"hello", nil, true},
		{nil, nil, true},
		{[]int{1}, nil, true},
	}

	for _, tt := range tests {
		got, errs := s.Parse(tt.value)
		if (len(errs) > 0) != tt.wantErr {
			t.Errorf("Parse(%#v) errs = %v, wantErr %v", tt.value, errs, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%#v) = %#v, want %#v", tt.value, got, tt.want)
		}
	}
}

func TestIntCoercer_ErrorIsTypeError(t *testing.T) {
	_, errs := Int().Parse("1.1")
	require.Len(t, errs, 1)

	var te *TypeError
	require.ErrorAs(t, errs[0], &te)
	assert.Equal(t, "int", te.Want)
	assert.Equal(t, "1.1", te.Value)
}

func TestFloatStringBoolCoercers(t *testing.T) {
	got, errs := Float().Parse("1.5")
	assert.Empty(t, errs)
	assert.Equal(t, 1.5, got)

	got, errs = Float().Parse(2)
	assert.Empty(t, errs)
	assert.Equal(t, float64(2), got)

	got, errs = String().Parse(42)
	assert.Empty(t, errs)
	assert.Equal(t, "42", got)

	got, errs = Bool().Parse("true")
	assert.Empty(t, errs)
	assert.Equal(t, true, got)

	got, errs = Bool().Parse("nope")
	assert.Len(t, errs, 1)
	assert.Nil(t, got)
}

func TestKindChecks(t *testing.T) {
	tests := []struct {
		name  string
		s     *PredicateSchema
		value any
		ok    bool
	}{
		{"int accepts int", IsInt(), 3, true},
		{"int accepts uint8", IsInt(), uint8(3), true},
		{"int rejects numeral string", IsInt(), "1", false},
		{"float accepts float32", IsFloat(), float32(1.5), true},
		{"float rejects int", IsFloat(), 1, false},
		{"string", IsString(), "x", true},
		{"bool", IsBool(), false, true},
		{"map with string keys", IsMap(), map[string]int{"a": 1}, true},
		{"map with int keys", IsMap(), map[int]int{1: 1}, false},
		{"slice", IsSlice(), []string{}, true},
		{"array", IsSlice(), [2]int{}, true},
		{"nil", IsNil(), nil, true},
		{"nil rejects zero", IsNil(), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errs := tt.s.Parse(tt.value)
			assert.Equal(t, tt.value, got, "predicates never change the value")
			if tt.ok {
				assert.Empty(t, errs)
				return
			}
			require.Len(t, errs, 1)
			var cf *CheckFailed
			require.ErrorAs(t, errs[0], &cf)
			assert.Equal(t, tt.s.String(), cf.Check)
			assert.Equal(t, tt.value, cf.Value)
		})
	}
}

func TestPositive(t *testing.T) {
	_, errs := Positive().Parse(3)
	assert.Empty(t, errs)

	got, errs := Positive().Parse(-1)
	assert.Equal(t, -1, got)
	require.Len(t, errs, 1)
	var cf *CheckFailed
	assert.ErrorAs(t, errs[0], &cf)

	// A non-number cannot be checked at all.
	got, errs = Positive().Parse("x")
	assert.Equal(t, "x", got)
	require.Len(t, errs, 1)
	var te *TypeError
	assert.ErrorAs(t, errs[0], &te)
	assert.False(t, errors.As(errs[0], &cf))
}

func TestNonEmpty(t *testing.T) {
	_, errs := NonEmpty().Parse("a")
	assert.Empty(t, errs)
	_, errs = NonEmpty().Parse([]int{1})
	assert.Empty(t, errs)
	_, errs = NonEmpty().Parse("")
	assert.Len(t, errs, 1)
	_, errs = NonEmpty().Parse(map[string]any{})
	assert.Len(t, errs, 1)
	_, errs = NonEmpty().Parse(5)
	assert.Len(t, errs, 1)
}

func TestOneOfAndMatches(t *testing.T) {
	s := OneOf("a", "b")
	_, errs := s.Parse("a")
	assert.Empty(t, errs)
	_, errs = s.Parse("c")
	assert.Len(t, errs, 1)

	m := Matches(regexp.MustCompile(`^v\d+$`))
	_, errs = m.Parse("v12")
	assert.Empty(t, errs)
	_, errs = m.Parse("x12")
	assert.Len(t, errs, 1)
	_, errs = m.Parse(12)
	require.Len(t, errs, 1)
	var te *TypeError
	assert.ErrorAs(t, errs[0], &te)
}

func TestOptional(t *testing.T) {
	s, err := Optional(Int())
	require.NoError(t, err)

	got, errs := s.Parse(nil)
	assert.Empty(t, errs)
	assert.Nil(t, got)

	got, errs = s.Parse("2")
	assert.Empty(t, errs)
	assert.Equal(t, 2, got)

	_, errs = s.Parse("two")
	require.Len(t, errs, 1)
	var te *TypeError
	assert.ErrorAs(t, errs[0], &te, "the coercer's error is reported, not the nil check's")

	_, err = Optional(42)
	assert.Error(t, err)
}
