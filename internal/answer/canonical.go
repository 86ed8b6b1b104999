package answer

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces the canonical serialization of an answer
// value: object keys sorted, strings NFC normalized, numbers in
// shortest-round-trip form.
//
// This is the ONLY serialization used where byte equality matters -
// stored answer events, replay verification, and golden traces. Standard
// json.Marshal is fine everywhere else.
func MarshalCanonical(v Value) ([]byte, error) {
	switch val := v.(type) {
	case Text:
		return canonicalString(string(val)), nil
	case Number:
		return []byte(strconv.FormatFloat(float64(val), 'f', -1, 64)), nil
	case Bool:
		return []byte(strconv.FormatBool(bool(val))), nil
	case List:
		return canonicalList(val), nil
	case NumberMap:
		return canonicalNumberMap(val), nil
	case TextMap:
		return canonicalTextMap(val), nil
	default:
		return nil, fmt.Errorf("unknown answer value type: %T", v)
	}
}

// MarshalMapCanonical serializes a full answer map canonically,
// question ids in sorted order.
func MarshalMapCanonical(m Map) ([]byte, error) {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range ids {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(canonicalString(id))
		buf.WriteByte(':')
		vb, err := MarshalCanonical(m[id])
		if err != nil {
			return nil, fmt.Errorf("canonical answer for %q: %w", id, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Digest returns the hex SHA-256 of a byte string. Used for answer
// snapshot and path hashing in replay verification.
func Digest(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func canonicalString(s string) []byte {
	// NFC normalization keeps visually identical answers byte-identical.
	b, _ := json.Marshal(norm.NFC.String(s))
	return b
}

func canonicalList(l List) []byte {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, item := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(canonicalString(item))
	}
	buf.WriteByte(']')
	return buf.Bytes()
}

func canonicalNumberMap(m NumberMap) []byte {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(canonicalString(k))
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatFloat(m[k], 'f', -1, 64))
	}
	buf.WriteByte('}')
	return buf.Bytes()
}

func canonicalTextMap(m TextMap) []byte {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(canonicalString(k))
		buf.WriteByte(':')
		buf.Write(canonicalString(m[k]))
	}
	buf.WriteByte('}')
	return buf.Bytes()
}
