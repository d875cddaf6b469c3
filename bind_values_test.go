package optparse

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
)

// Custom type that implements TextUnmarshaler on pointer
type customTextType struct {
	Value string
}

func (c *customTextType) UnmarshalText(text []byte) error {
	if string(text) == "error" {
		return errors.New("custom error")
	}
	c.Value = "custom:" + string(text)
	return nil
}

func ptr[T any](v T) *T {
	return &v
}

func valueFromInterface(v any) reflect.Value {
	return reflect.ValueOf(v).Elem()
}

func TestSetFieldValue(t *testing.T) {
	tests := []struct {
		name    string
		field   any
		value   string
		want    any
		wantErr bool
	}{
		// Strings
		{"string_basic", ptr(""), "hello", "hello", false},
		{"string_empty", ptr("x"), "", "", false},
		{"symbol", ptr(Symbol("")), "fast", Symbol("fast"), false},

		// Integers
		{"int_basic", ptr(int(0)), "42", int(42), false},
		{"int_spaces", ptr(int(0)), " 42 ", int(42), false},
		{"int8_overflow", ptr(int8(0)), "128", int8(0), true},
		{"int64_max", ptr(int64(0)), "9223372036854775807", int64(9223372036854775807), false},
		{"int_invalid", ptr(int(0)), "abc", int(0), true},

		// Unsigned integers
		{"uint16_basic", ptr(uint16(0)), "8080", uint16(8080), false},
		{"uint8_overflow", ptr(uint8(0)), "256", uint8(0), true},
		{"uint_negative", ptr(uint(0)), "-1", uint(0), true},

		// Floats
		{"float32_basic", ptr(float32(0)), "3.14", float32(3.14), false},
		{"float64_basic", ptr(float64(0)), "3.14159265359", float64(3.14159265359), false},
		{"float32_overflow", ptr(float32(0)), "3.4028235e+39", float32(0), true},

		// Booleans
		{"bool_true", ptr(false), "true", true, false},
		{"bool_yes", ptr(false), "YES", true, false},
		{"bool_off", ptr(true), "off", false, false},
		{"bool_empty", ptr(true), "", false, false},
		{"bool_invalid", ptr(false), "maybe", false, true},

		// Slices
		{"slice_bytes", ptr([]byte{}), "hello", []byte("hello"), false},
		{"slice_strings", ptr([]string{}), "a,b,c", []string{"a", "b", "c"}, false},
		{"slice_ints", ptr([]int{}), "1,2,3", []int{1, 2, 3}, false},
		{"slice_ints_invalid", ptr([]int{}), "1,x", []int{}, true},

		// Pointers
		{"pointer_int", ptr((*int)(nil)), "7", ptr(7), false},
		{"pointer_to_slice", ptr((*[]string)(nil)), "a,b", ptr([]string{"a", "b"}), false},
		{"pointer_to_pointer", ptr((**int)(nil)), "9", ptr(ptr(9)), false},
		{"slice_of_pointers", ptr([]*int{}), "1,2", []*int{ptr(1), ptr(2)}, false},
		{"slice_of_durations", ptr([]time.Duration{}), "1s,2m", []time.Duration{time.Second, 2 * time.Minute}, false},

		// Special structs
		{"uuid_valid", ptr(uuid.UUID{}), "550e8400-e29b-41d4-a716-446655440000", uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"), false},
		{"uuid_invalid", ptr(uuid.UUID{}), "invalid-uuid", uuid.UUID{}, true},
		{"time_rfc3339", ptr(time.Time{}), "2023-01-01T00:00:00Z", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"time_date_only", ptr(time.Time{}), "2023-01-01", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"time_invalid", ptr(time.Time{}), "invalid-time", time.Time{}, true},
		{"duration", ptr(time.Duration(0)), "1m30s", 90 * time.Second, false},
		{"duration_invalid", ptr(time.Duration(0)), "90", time.Duration(0), true},
		{"range_inclusive", ptr(Range{}), "1..5", Range{Start: 1, End: 5}, false},
		{"range_exclusive", ptr(Range{}), "1...5", Range{Start: 1, End: 5, Exclusive: true}, false},
		{"range_single", ptr(Range{}), "3", Range{Start: 3, End: 3}, false},
		{"range_invalid", ptr(Range{}), "a..b", Range{}, true},

		// Interfaces
		{"interface_empty", ptr(any(nil)), "hello", "hello", false},

		// TextUnmarshaler
		{"text_unmarshaler", ptr(customTextType{}), "test", customTextType{Value: "custom:test"}, false},
		{"text_unmarshaler_error", ptr(customTextType{}), "error", customTextType{}, true},

		// Unsupported
		{"map_unsupported", ptr(map[string]int{}), "a", map[string]int{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field := valueFromInterface(tt.field)
			err := setFieldValue(field, tt.value)

			if (err != nil) != tt.wantErr {
				t.Errorf("setFieldValue() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr {
				got := field.Interface()
				if !reflect.DeepEqual(got, tt.want) {
					t.Errorf("setFieldValue() got = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestAssignValue(t *testing.T) {
	tests := []struct {
		name    string
		field   any
		value   any
		want    any
		wantErr bool
	}{
		{"bool_direct", ptr(false), true, true, false},
		{"bool_to_string", ptr(""), true, "true", false},
		{"int_direct", ptr(0), 5, 5, false},
		{"int_to_int64", ptr(int64(0)), 5, int64(5), false},
		{"string_to_uint", ptr(uint16(0)), "443", uint16(443), false},
		{"symbol_to_string", ptr(""), Symbol("fast"), "fast", false},
		{"list_direct", ptr([]string(nil)), []string{"a", "b"}, []string{"a", "b"}, false},
		{"list_to_ints", ptr([]int(nil)), []string{"1", "2"}, []int{1, 2}, false},
		{"range_direct", ptr(Range{}), Range{Start: 1, End: 2}, Range{Start: 1, End: 2}, false},
		{"float_to_int", ptr(0), 2.5, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field := valueFromInterface(tt.field)
			err := assignValue(field, tt.value)

			if (err != nil) != tt.wantErr {
				t.Errorf("assignValue() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr {
				got := field.Interface()
				if !reflect.DeepEqual(got, tt.want) {
					t.Errorf("assignValue() got = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestIsSpecialStructType(t *testing.T) {
	for _, typ := range []reflect.Type{UUIDType, TimeType, DurationType, RangeType} {
		if !isSpecialStructType(typ) {
			t.Errorf("isSpecialStructType(%s) = false, want true", typ)
		}
	}
	if isSpecialStructType(reflect.TypeOf(struct{}{})) {
		t.Errorf("isSpecialStructType(struct{}) = true, want false")
	}
}
