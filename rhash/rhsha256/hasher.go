package rhsha256

import (
	"crypto/sha256"
)

const HashSize = sha256.Size

// Hasher is a [rhash.Hasher] backed by SHA256 hashes.
type Hasher struct{}

func (Hasher) Sum(in, dst []byte) []byte {
	h := sha256.New()
	_, _ = h.Write(in)
	return h.Sum(dst)
}
