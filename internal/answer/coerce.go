package answer

import (
	"math"
	"strconv"
	"strings"
)

// CompareString coerces a value to its string form for equality and
// substring tests. Lists are joined with "," so a multi-select answer
// compares the way it renders. Maps use their canonical JSON form, which
// keeps the coercion deterministic for the odd condition authored
// against a composite answer.
func CompareString(v Value) string {
	switch val := v.(type) {
	case Text:
		return string(val)
	case Number:
		return strconv.FormatFloat(float64(val), 'f', -1, 64)
	case Bool:
		return strconv.FormatBool(bool(val))
	case List:
		return strings.Join(val, ",")
	case NumberMap, TextMap:
		b, err := MarshalCanonical(val)
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return ""
	}
}

// CompareNumber coerces a value for numeric comparison. Anything that
// does not parse as a number yields NaN, and NaN comparisons are always
// false - this is accepted behavior, not an error path.
func CompareNumber(v Value) float64 {
	switch val := v.(type) {
	case Number:
		return float64(val)
	case Text:
		n, err := strconv.ParseFloat(strings.TrimSpace(string(val)), 64)
		if err != nil {
			return math.NaN()
		}
		return n
	default:
		return math.NaN()
	}
}

// ParseNumber coerces an authored condition operand the same way
// CompareNumber coerces an answer.
func ParseNumber(s string) float64 {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return n
}

// ToList normalizes a value to a string slice for membership and
// carry-forward filtering: lists pass through, a bare string wraps into
// a singleton, every other shape normalizes to empty.
func ToList(v Value) []string {
	switch val := v.(type) {
	case List:
		return val
	case Text:
		if val == "" {
			return nil
		}
		return []string{string(val)}
	default:
		return nil
	}
}

// IsEmpty reports whether a value counts as unanswered: a nil value, an
// empty string, or an empty list. Maps and scalars of other kinds are
// never empty - a zero rating is still an answer.
func IsEmpty(v Value) bool {
	switch val := v.(type) {
	case nil:
		return true
	case Text:
		return val == ""
	case List:
		return len(val) == 0
	default:
		return false
	}
}
