package answer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalValue_Scalars(t *testing.T) {
	v, err := UnmarshalValue([]byte(`"Ada"`))
	require.NoError(t, err)
	assert.Equal(t, Text("Ada"), v)

	v, err = UnmarshalValue([]byte(`7.5`))
	require.NoError(t, err)
	assert.Equal(t, Number(7.5), v)

	v, err = UnmarshalValue([]byte(`-3`))
	require.NoError(t, err)
	assert.Equal(t, Number(-3), v)

	v, err = UnmarshalValue([]byte(`true`))
	require.NoError(t, err)
	assert.Equal(t, Bool(true), v)

	v, err = UnmarshalValue([]byte(`false`))
	require.NoError(t, err)
	assert.Equal(t, Bool(false), v)
}

func TestUnmarshalValue_List(t *testing.T) {
	v, err := UnmarshalValue([]byte(`["A","B"]`))
	require.NoError(t, err)
	assert.Equal(t, List{"A", "B"}, v)

	// Arrays must be homogeneous strings
	_, err = UnmarshalValue([]byte(`["A", 1]`))
	assert.Error(t, err)
}

func TestUnmarshalValue_Maps(t *testing.T) {
	v, err := UnmarshalValue([]byte(`{"speed": 4, "quality": 5}`))
	require.NoError(t, err)
	assert.Equal(t, NumberMap{"speed": 4, "quality": 5}, v)

	v, err = UnmarshalValue([]byte(`{"street": "1 Main St"}`))
	require.NoError(t, err)
	assert.Equal(t, TextMap{"street": "1 Main St"}, v)

	// Mixed objects are rejected
	_, err = UnmarshalValue([]byte(`{"a": 1, "b": "x"}`))
	assert.Error(t, err)
}

func TestUnmarshalValue_NullRejected(t *testing.T) {
	_, err := UnmarshalValue([]byte(`null`))
	assert.Error(t, err, "unanswered questions are absent, never null")
}

func TestUnmarshalValue_Empty(t *testing.T) {
	_, err := UnmarshalValue(nil)
	assert.Error(t, err)
}

func TestMap_RoundTrip(t *testing.T) {
	raw := []byte(`{
		"name": "Ada",
		"rating": 7,
		"legal": true,
		"topics": ["A", "C"],
		"matrix": {"speed": 4},
		"addr": {"street": "1 Main St", "city": "Springfield"}
	}`)

	var m Map
	require.NoError(t, json.Unmarshal(raw, &m))

	assert.Equal(t, Text("Ada"), m["name"])
	assert.Equal(t, Number(7), m["rating"])
	assert.Equal(t, Bool(true), m["legal"])
	assert.Equal(t, List{"A", "C"}, m["topics"])
	assert.Equal(t, NumberMap{"speed": 4}, m["matrix"])
	assert.Equal(t, TextMap{"street": "1 Main St", "city": "Springfield"}, m["addr"])

	out, err := json.Marshal(m)
	require.NoError(t, err)

	var m2 Map
	require.NoError(t, json.Unmarshal(out, &m2))
	assert.Equal(t, m, m2)
}

func TestMap_BadEntryNamesQuestion(t *testing.T) {
	var m Map
	err := json.Unmarshal([]byte(`{"q7": null}`), &m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "q7")
}
