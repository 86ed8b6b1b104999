// Package answer models the polymorphic answer payload as a sealed
// tagged union and provides the coercion helpers shared by every
// resolver in the engine.
//
// The value shape is polymorphic by question type: scalar text, number,
// or bool for simple inputs; an ordered string list for multi-select and
// ranking; a string-keyed number map for matrix ratings and constant-sum
// distributions; a string-keyed string map for address-style composite
// inputs. The engine never interprets the type-specific payload beyond
// the coercions defined in coerce.go.
package answer

import (
	"encoding/json"
	"fmt"
)

// Value is a sealed interface over the allowed answer payload shapes.
// Only Text, Number, Bool, List, NumberMap, and TextMap implement it.
type Value interface {
	answerValue() // Sealed - only these types implement it
}

// Text is a scalar string answer.
type Text string

func (Text) answerValue() {}

// Number is a scalar numeric answer (ratings, sliders, number inputs).
type Number float64

func (Number) answerValue() {}

// Bool is a scalar boolean answer (yes/no, legal consent).
type Bool bool

func (Bool) answerValue() {}

// List is an ordered string list (multi-select, ranking).
type List []string

func (List) answerValue() {}

// NumberMap keys numbers by label (matrix row ratings, constant-sum
// allocations).
type NumberMap map[string]float64

func (NumberMap) answerValue() {}

// TextMap keys strings by field name (address-style composite inputs).
type TextMap map[string]string

func (TextMap) answerValue() {}

// Map is the answers-so-far mapping from question id to answer value.
// It grows monotonically during a respondent session.
type Map map[string]Value

// UnmarshalJSON decodes an answer map, dispatching each value to the
// appropriate union member.
func (m *Map) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*m = make(Map, len(raw))
	for id, v := range raw {
		val, err := UnmarshalValue(v)
		if err != nil {
			return fmt.Errorf("answer for %q: %w", id, err)
		}
		(*m)[id] = val
	}
	return nil
}

// MarshalJSON encodes an answer map with each value in its wire shape.
func (m Map) MarshalJSON() ([]byte, error) {
	raw := make(map[string]json.RawMessage, len(m))
	for id, v := range m {
		b, err := MarshalValue(v)
		if err != nil {
			return nil, fmt.Errorf("answer for %q: %w", id, err)
		}
		raw[id] = b
	}
	return json.Marshal(raw)
}

// UnmarshalValue decodes a single JSON value into the union.
//
// Dispatch is by leading byte: strings, bools, and numbers map to their
// scalar members; arrays become List; objects become NumberMap when every
// value is numeric, else TextMap. Nulls are rejected - an unanswered
// question is simply absent from the map, never null.
func UnmarshalValue(data []byte) (Value, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty JSON value")
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return Text(s), nil

	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, err
		}
		return Bool(b), nil

	case 'n':
		return nil, fmt.Errorf("null is not a valid answer value")

	case '[':
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("answer arrays must contain only strings: %w", err)
		}
		return List(items), nil

	case '{':
		return unmarshalMapValue(data)

	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		return Number(n), nil
	}
}

// unmarshalMapValue decodes a JSON object as NumberMap when every field
// is numeric, otherwise as TextMap when every field is a string.
// Mixed-type objects are rejected.
func unmarshalMapValue(data []byte) (Value, error) {
	var nm map[string]float64
	if err := json.Unmarshal(data, &nm); err == nil {
		return NumberMap(nm), nil
	}

	var tm map[string]string
	if err := json.Unmarshal(data, &tm); err == nil {
		return TextMap(tm), nil
	}

	return nil, fmt.Errorf("answer objects must be all-numeric or all-string")
}

// MarshalValue encodes a single union member to JSON.
func MarshalValue(v Value) ([]byte, error) {
	switch val := v.(type) {
	case Text:
		return json.Marshal(string(val))
	case Number:
		return json.Marshal(float64(val))
	case Bool:
		return json.Marshal(bool(val))
	case List:
		return json.Marshal([]string(val))
	case NumberMap:
		return json.Marshal(map[string]float64(val))
	case TextMap:
		return json.Marshal(map[string]string(val))
	default:
		return nil, fmt.Errorf("unknown answer value type: %T", v)
	}
}
