// Package rhash declares the hash strategy injected into tree construction.
package rhash

// Hasher is the user-defined digest strategy for tree leaves and nodes.
// [rowan.New] passes raw block bytes through Sum to create leaf digests,
// and passes concatenated child digests through Sum to create node digests.
//
// To be allocation-efficient, implementations
// must append the digest of in to dst and return the extended slice,
// instead of always creating a new byte slice.
// Implementations must not retain references to in or dst.
//
// Sum must be pure: the same input always yields the same digest,
// with no side effects, and it must be safe to call concurrently.
// The digest may be any length; the tree treats it as opaque bytes.
type Hasher interface {
	Sum(in, dst []byte) []byte
}

// Fn adapts an ordinary hash function to the [Hasher] interface,
// so that any func(bytes) digest can be injected without a wrapper type.
type Fn func(in []byte) []byte

func (f Fn) Sum(in, dst []byte) []byte {
	return append(dst, f(in)...)
}
