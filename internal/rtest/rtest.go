// Package rtest contains test helpers shared across the module's tests.
package rtest

import (
	"crypto/sha256"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/neilotoole/slogt"
)

// NewLogger returns a logger that routes through t.Log.
func NewLogger(t *testing.T) *slog.Logger {
	return slogt.New(t)
}

// RandomBlocksForTest returns n byte slices of size sz
// containing pseudorandom data, derived from a seed based on the test name.
func RandomBlocksForTest(t *testing.T, n, sz int) [][]byte {
	// Sha256 happens to be the right size for the chacha8 seed,
	// and this fits well anyway since that means
	// we are not limited by the length of any particular test name.
	seed := sha256.Sum256([]byte(t.Name()))
	chacha := rand.NewChaCha8(seed)

	out := make([][]byte, n)
	for i := range out {
		out[i] = make([]byte, sz)
		if _, err := chacha.Read(out[i]); err != nil {
			panic(fmt.Errorf("failed to read test randomness: %w", err))
		}
	}

	return out
}

// RandomDataForTest returns a single byte slice of size sz
// containing pseudorandom data, derived the same way as [RandomBlocksForTest].
func RandomDataForTest(t *testing.T, sz int) []byte {
	return RandomBlocksForTest(t, 1, sz)[0]
}
