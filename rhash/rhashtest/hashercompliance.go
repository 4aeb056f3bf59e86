// Package rhashtest offers a compliance suite for [rhash.Hasher] implementations.
package rhashtest

import (
	"testing"

	"github.com/rowan-engine/rowan/rhash"
	"github.com/stretchr/testify/require"
)

type HasherFactory func() (h rhash.Hasher, hashSize int)

func TestHasherCompliance(t *testing.T, f HasherFactory) {
	t.Run("sum is deterministic", func(t *testing.T) {
		t.Parallel()

		h, sz := f()

		dst01 := h.Sum([]byte("deterministic_data"), nil)
		require.Len(t, dst01, sz)

		dst02 := h.Sum([]byte("deterministic_data"), nil)
		require.Equal(t, dst01, dst02)
	})

	t.Run("sum respects input", func(t *testing.T) {
		t.Parallel()

		h, _ := f()

		dst01 := h.Sum([]byte("input_1"), nil)
		dst02 := h.Sum([]byte("input_2"), nil)

		require.NotEqual(t, dst01, dst02)
	})

	t.Run("sum appends to dst", func(t *testing.T) {
		t.Parallel()

		h, sz := f()

		prefix := []byte("existing_prefix")
		out := h.Sum([]byte("appended_data"), append([]byte(nil), prefix...))

		require.Len(t, out, len(prefix)+sz)
		require.Equal(t, prefix, out[:len(prefix)])
		require.Equal(t, h.Sum([]byte("appended_data"), nil), out[len(prefix):])
	})
}
