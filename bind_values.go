package optparse

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

///////////////////////////////////////////////////////////////////////////////
// Field setters
///////////////////////////////////////////////////////////////////////////////

var (
	UUIDType     = reflect.TypeOf(uuid.UUID{})
	TimeType     = reflect.TypeOf(time.Time{})
	DurationType = reflect.TypeOf(time.Duration(0))
	RangeType    = reflect.TypeOf(Range{})
)

// timeFormats are tried in order when binding a time.Time field.
var timeFormats = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"15:04:05",
}

type fieldSetter func(field reflect.Value, value string) error

// typeSetters handle types that would otherwise be matched by kind.
var typeSetters = map[reflect.Type]fieldSetter{
	UUIDType:     setUUIDValue,
	TimeType:     setTimeValue,
	DurationType: setDurationValue,
	RangeType:    setRangeValue,
}

// kindSetters is filled in init since the slice and pointer setters recurse
// through setFieldValue.
var kindSetters map[reflect.Kind]fieldSetter

func init() {
	kindSetters = map[reflect.Kind]fieldSetter{
		reflect.String:    setStringValue,
		reflect.Int:       setIntValue,
		reflect.Int8:      setIntValue,
		reflect.Int16:     setIntValue,
		reflect.Int32:     setIntValue,
		reflect.Int64:     setIntValue,
		reflect.Uint:      setUintValue,
		reflect.Uint8:     setUintValue,
		reflect.Uint16:    setUintValue,
		reflect.Uint32:    setUintValue,
		reflect.Uint64:    setUintValue,
		reflect.Float32:   setFloatValue,
		reflect.Float64:   setFloatValue,
		reflect.Bool:      setBoolValue,
		reflect.Slice:     setSliceValue,
		reflect.Interface: setInterfaceValue,
		reflect.Pointer:   setPointerValue,
	}
}

// setFieldValue converts value into the field's type.
//
// Supported, in order of precedence:
//   - uuid.UUID, time.Time, time.Duration and Range
//   - encoding.TextUnmarshaler
//   - strings, signed and unsigned integers, floats and bools
//   - []byte, and other slices from a comma separated list
//   - pointers to any of the above
//   - empty interfaces, which receive the string
func setFieldValue(field reflect.Value, value string) error {
	if setter, ok := typeSetters[field.Type()]; ok {
		return setter(field, value)
	}

	if field.CanAddr() {
		if unmarshaler, ok := field.Addr().Interface().(encoding.TextUnmarshaler); ok {
			return unmarshaler.UnmarshalText([]byte(value))
		}
	}

	setter, ok := kindSetters[field.Kind()]
	if !ok {
		return fmt.Errorf("unsupported field type: %s", field.Type())
	}
	return setter(field, value)
}

func setStringValue(field reflect.Value, value string) error {
	field.SetString(value)
	return nil
}

func setIntValue(field reflect.Value, value string) error {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return fmt.Errorf("error converting %q to int: %w", value, err)
	}
	if field.OverflowInt(n) {
		return fmt.Errorf("value %d overflows %s", n, field.Type())
	}
	field.SetInt(n)
	return nil
}

func setUintValue(field reflect.Value, value string) error {
	n, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return fmt.Errorf("error converting %q to uint: %w", value, err)
	}
	if field.OverflowUint(n) {
		return fmt.Errorf("value %d overflows %s", n, field.Type())
	}
	field.SetUint(n)
	return nil
}

func setFloatValue(field reflect.Value, value string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), field.Type().Bits())
	if err != nil {
		return fmt.Errorf("error converting %q to float: %w", value, err)
	}
	if field.OverflowFloat(f) {
		return fmt.Errorf("value %f overflows %s", f, field.Type())
	}
	field.SetFloat(f)
	return nil
}

// setBoolValue accepts yes/no and on/off besides what strconv.ParseBool
// understands.
func setBoolValue(field reflect.Value, value string) error {
	switch strings.ToLower(value) {
	case "yes", "on":
		field.SetBool(true)
		return nil
	case "no", "off", "":
		field.SetBool(false)
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("error converting %q to bool: %w", value, err)
	}
	field.SetBool(b)
	return nil
}

// setSliceValue stores bytes verbatim and splits anything else on
// DefaultDelimiter, converting each piece into the element type.
func setSliceValue(field reflect.Value, value string) error {
	if field.Type().Elem().Kind() == reflect.Uint8 {
		field.SetBytes([]byte(value))
		return nil
	}
	return setSliceElements(field, splitLimit(value, DefaultDelimiter, DefaultLimit))
}

func setSliceElements(field reflect.Value, values []string) error {
	slice := reflect.MakeSlice(field.Type(), len(values), len(values))
	for i, v := range values {
		if err := setFieldValue(slice.Index(i), v); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	field.Set(slice)
	return nil
}

func setPointerValue(field reflect.Value, value string) error {
	elem := reflect.New(field.Type().Elem())
	if err := setFieldValue(elem.Elem(), value); err != nil {
		return err
	}
	field.Set(elem)
	return nil
}

func setInterfaceValue(field reflect.Value, value string) error {
	if field.NumMethod() != 0 {
		return fmt.Errorf("cannot set value for interface with methods: %s", field.Type())
	}
	field.Set(reflect.ValueOf(value))
	return nil
}

func setUUIDValue(field reflect.Value, value string) error {
	id, err := uuid.Parse(value)
	if err != nil {
		return fmt.Errorf("error converting %q to UUID: %w", value, err)
	}
	field.Set(reflect.ValueOf(id))
	return nil
}

func setTimeValue(field reflect.Value, value string) error {
	var err error
	for _, format := range timeFormats {
		var t time.Time
		if t, err = time.Parse(format, value); err == nil {
			field.Set(reflect.ValueOf(t))
			return nil
		}
	}
	return fmt.Errorf("error converting %q to time.Time: %w", value, err)
}

func setDurationValue(field reflect.Value, value string) error {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("error converting %q to time.Duration: %w", value, err)
	}
	field.SetInt(int64(d))
	return nil
}

func setRangeValue(field reflect.Value, value string) error {
	switch r := toRange(value).(type) {
	case Range:
		field.Set(reflect.ValueOf(r))
	case int:
		field.Set(reflect.ValueOf(Range{Start: r, End: r}))
	default:
		return fmt.Errorf("error converting %q to Range", value)
	}
	return nil
}

// isSpecialStructType reports whether a struct type is bound as a single
// value rather than recursed into.
func isSpecialStructType(t reflect.Type) bool {
	_, ok := typeSetters[t]
	return ok
}
