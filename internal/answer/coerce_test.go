package answer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareString(t *testing.T) {
	assert.Equal(t, "Ada", CompareString(Text("Ada")))
	assert.Equal(t, "7", CompareString(Number(7)))
	assert.Equal(t, "7.5", CompareString(Number(7.5)))
	assert.Equal(t, "true", CompareString(Bool(true)))
	assert.Equal(t, "A,B,C", CompareString(List{"A", "B", "C"}))
	assert.Equal(t, `{"speed":4}`, CompareString(NumberMap{"speed": 4}))
	assert.Equal(t, `{"street":"1 Main St"}`, CompareString(TextMap{"street": "1 Main St"}))
	assert.Equal(t, "", CompareString(nil))
}

func TestCompareNumber(t *testing.T) {
	assert.Equal(t, 7.0, CompareNumber(Number(7)))
	assert.Equal(t, 9.5, CompareNumber(Text("9.5")))
	assert.Equal(t, 9.5, CompareNumber(Text("  9.5  ")))

	assert.True(t, math.IsNaN(CompareNumber(Text("abc"))))
	assert.True(t, math.IsNaN(CompareNumber(Bool(true))))
	assert.True(t, math.IsNaN(CompareNumber(List{"1"})))
	assert.True(t, math.IsNaN(CompareNumber(nil)))
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, 18.0, ParseNumber("18"))
	assert.Equal(t, -2.5, ParseNumber(" -2.5 "))
	assert.True(t, math.IsNaN(ParseNumber("")))
	assert.True(t, math.IsNaN(ParseNumber("eighteen")))
}

func TestToList(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, ToList(List{"A", "B"}))
	assert.Equal(t, []string{"solo"}, ToList(Text("solo")))
	assert.Nil(t, ToList(Text("")))
	assert.Nil(t, ToList(Number(7)))
	assert.Nil(t, ToList(NumberMap{"a": 1}))
	assert.Nil(t, ToList(nil))
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(nil))
	assert.True(t, IsEmpty(Text("")))
	assert.True(t, IsEmpty(List{}))

	assert.False(t, IsEmpty(Text("x")))
	assert.False(t, IsEmpty(List{"x"}))

	// Zero values are still answers
	assert.False(t, IsEmpty(Number(0)))
	assert.False(t, IsEmpty(Bool(false)))

	// Maps are never empty, even with no keys
	assert.False(t, IsEmpty(NumberMap{}))
	assert.False(t, IsEmpty(TextMap{}))
}
