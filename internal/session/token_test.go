package session

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDv7Generator_ValidFormat(t *testing.T) {
	gen := UUIDv7Generator{}
	token := gen.Generate()

	// Verify 36 characters (hyphenated UUID format)
	assert.Equal(t, 36, len(token), "UUID should be 36 characters")

	parsed, err := uuid.Parse(token)
	require.NoError(t, err, "token should be valid UUID")

	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestUUIDv7Generator_Uniqueness(t *testing.T) {
	gen := UUIDv7Generator{}
	const iterations = 1000

	tokens := make(map[string]bool, iterations)
	for i := 0; i < iterations; i++ {
		token := gen.Generate()
		require.False(t, tokens[token], "token %s generated twice", token)
		tokens[token] = true
	}

	assert.Equal(t, iterations, len(tokens))
}

func TestUUIDv7Generator_Concurrent(t *testing.T) {
	gen := UUIDv7Generator{}
	const goroutines = 100

	tokens := make(chan string, goroutines)
	var wg sync.WaitGroup

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tokens <- gen.Generate()
		}()
	}

	wg.Wait()
	close(tokens)

	seen := make(map[string]bool)
	for token := range tokens {
		require.False(t, seen[token], "duplicate token generated")
		seen[token] = true
	}

	assert.Equal(t, goroutines, len(seen))
}

func TestFixedGenerator_Sequential(t *testing.T) {
	gen := NewFixedGenerator("tok-1", "tok-2", "tok-3")

	assert.Equal(t, "tok-1", gen.Generate())
	assert.Equal(t, "tok-2", gen.Generate())
	assert.Equal(t, "tok-3", gen.Generate())
}

func TestFixedGenerator_PanicsWhenExhausted(t *testing.T) {
	gen := NewFixedGenerator("only")
	gen.Generate()

	assert.Panics(t, func() {
		gen.Generate()
	})
}
