package optparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCastValue(t *testing.T) {
	tests := []struct {
		name  string
		as    ArgType
		value any
		want  any
	}{
		{"raw", ArgRaw, "x", "x"},
		{"bool_passthrough", ArgInteger, true, true},
		{"nil_passthrough", ArgString, nil, nil},
		{"string", ArgString, 42, "42"},
		{"symbol", ArgSymbol, "fast", Symbol("fast")},
		{"integer", ArgInteger, "42", 42},
		{"integer_negative", ArgInteger, "-7", -7},
		{"integer_leading", ArgInteger, "12abc", 12},
		{"integer_none", ArgInteger, "abc", 0},
		{"integer_from_float", ArgInteger, 2.9, 2},
		{"float", ArgFloat, "2.5", 2.5},
		{"float_leading", ArgFloat, "1.5kg", 1.5},
		{"float_exponent", ArgFloat, "1e3", 1000.0},
		{"float_none", ArgFloat, "x", 0.0},
		{"range_dots", ArgRange, "1..5", Range{Start: 1, End: 5}},
		{"range_exclusive", ArgRange, "1...5", Range{Start: 1, End: 5, Exclusive: true}},
		{"range_dash", ArgRange, "10-20", Range{Start: 10, End: 20}},
		{"range_comma", ArgRange, "1,5", Range{Start: 1, End: 5}},
		{"range_negative", ArgRange, "-3..-1", Range{Start: -3, End: -1}},
		{"range_single", ArgRange, "7", 7},
		{"range_invalid", ArgRange, "a..b", "a..b"},
		{"array_passthrough", ArgArray, []string{"a"}, []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, castValue(tt.as, tt.value))
		})
	}
}

func TestRange(t *testing.T) {
	inclusive := Range{Start: 1, End: 3}
	exclusive := Range{Start: 1, End: 3, Exclusive: true}

	assert.True(t, inclusive.Contains(3))
	assert.False(t, exclusive.Contains(3))
	assert.True(t, exclusive.Contains(1))
	assert.False(t, inclusive.Contains(0))
	assert.Equal(t, "1..3", inclusive.String())
	assert.Equal(t, "1...3", exclusive.String())
}

func TestParseArgType(t *testing.T) {
	for _, as := range []ArgType{ArgRaw, ArgArray, ArgRange, ArgFloat, ArgString, ArgSymbol, ArgInteger} {
		got, err := ParseArgType(as.String())
		require.NoError(t, err)
		assert.Equal(t, as, got)
	}

	got, err := ParseArgType("Integer")
	require.NoError(t, err)
	assert.Equal(t, ArgInteger, got)

	_, err = ParseArgType("complex")
	assert.Error(t, err)
	assert.Equal(t, "ArgType(99)", ArgType(99).String())
}

func TestSplitLimit(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitLimit("a,b,,", ",", 0))
	assert.Equal(t, []string{"a", "", "b"}, splitLimit("a,,b", ",", 0))
	assert.Equal(t, []string{"a", "b,c"}, splitLimit("a,b,c", ",", 2))
	assert.Empty(t, splitLimit("", ",", 0))
}
