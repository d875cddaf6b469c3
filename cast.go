package optparse

import (
	"fmt"
	"strconv"
	"strings"
)

// ArgType selects how an option's raw value is cast when read.
type ArgType int

const (
	ArgRaw ArgType = iota
	ArgArray
	ArgRange
	ArgFloat
	ArgString
	ArgSymbol
	ArgInteger
)

var argTypeNames = map[ArgType]string{
	ArgRaw:     "raw",
	ArgArray:   "array",
	ArgRange:   "range",
	ArgFloat:   "float",
	ArgString:  "string",
	ArgSymbol:  "symbol",
	ArgInteger: "integer",
}

func (t ArgType) String() string {
	if name, ok := argTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ArgType(%d)", int(t))
}

// ParseArgType maps a type tag ("array", "integer", ...) to its ArgType.
func ParseArgType(name string) (ArgType, error) {
	for t, n := range argTypeNames {
		if strings.EqualFold(n, name) {
			return t, nil
		}
	}
	return ArgRaw, fmt.Errorf("unknown argument type %q", name)
}

// Symbol is the value of an option declared with ArgSymbol.
type Symbol string

// Range is the value of an option declared with ArgRange.
type Range struct {
	Start     int  `json:"start"`
	End       int  `json:"end"`
	Exclusive bool `json:"exclusive"`
}

// Contains reports whether n falls inside the range.
func (r Range) Contains(n int) bool {
	if n < r.Start {
		return false
	}
	if r.Exclusive {
		return n < r.End
	}
	return n <= r.End
}

func (r Range) String() string {
	if r.Exclusive {
		return fmt.Sprintf("%d...%d", r.Start, r.End)
	}
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

// castValue converts a raw option value according to t. Booleans and nil
// are returned untouched since they are placeholders for switches.
func castValue(t ArgType, value any) any {
	switch value.(type) {
	case nil, bool:
		return value
	}

	switch t {
	case ArgArray:
		return value
	case ArgRange:
		return toRange(value)
	case ArgFloat:
		return toFloat(value)
	case ArgString:
		return toString(value)
	case ArgSymbol:
		return Symbol(toString(value))
	case ArgInteger:
		return toInteger(value)
	default:
		return value
	}
}

func toString(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

// toInteger reads the leading integer of the value, 0 when there is none.
func toInteger(value any) int {
	switch v := value.(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	match := leadingIntPattern.FindString(toString(value))
	n, err := strconv.Atoi(strings.TrimSpace(match))
	if err != nil {
		return 0
	}
	return n
}

// toFloat reads the leading float of the value, 0 when there is none.
func toFloat(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	match := leadingFloatPattern.FindString(toString(value))
	f, err := strconv.ParseFloat(strings.TrimSpace(match), 64)
	if err != nil {
		return 0
	}
	return f
}

// toRange parses "A..B", "A...B", "A-B" and "A,B". A bare integer becomes
// an int, anything else is returned unchanged.
func toRange(value any) any {
	s, ok := value.(string)
	if !ok {
		return value
	}

	if integerPattern.MatchString(s) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return value
		}
		return n
	}

	m := rangePattern.FindStringSubmatch(s)
	if m == nil {
		return value
	}
	start, err := strconv.Atoi(m[1])
	if err != nil {
		return value
	}
	end, err := strconv.Atoi(m[3])
	if err != nil {
		return value
	}
	return Range{Start: start, End: end, Exclusive: m[2] == "..."}
}

// splitLimit splits s by delim. A limit <= 0 is unbounded and drops
// trailing empty pieces, a positive limit caps the number of pieces.
func splitLimit(s, delim string, limit int) []string {
	if limit > 0 {
		return strings.SplitN(s, delim, limit)
	}
	parts := strings.Split(s, delim)
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}
