package rowan

import (
	"bytes"

	"github.com/rowan-engine/rowan/rhash"
)

// ProofStep is one sibling digest on the path from a leaf to the root.
// Side records where the sibling sits relative to the ascending path,
// which determines concatenation order during verification:
// a SideLeft sibling is hashed before the running digest,
// a SideRight sibling after it.
type ProofStep struct {
	Sibling []byte
	Side    Side
}

// Proof is the ordered sibling sequence for one leaf,
// in leaf-to-root order: the first step is the leaf's own sibling,
// the last step is a child of the root.
//
// Together with the leaf's digest and the claimed root digest,
// a Proof is all an independent verifier needs; see [VerifyProof].
type Proof []ProofStep

// VerifyProof reports whether folding proof upward from blockHash
// reproduces rootValue.
// It requires no access to the tree the proof came from.
func VerifyProof(rootValue, blockHash []byte, proof Proof, h rhash.Hasher) bool {
	cur := blockHash
	var in []byte
	for _, step := range proof {
		in = in[:0]
		if step.Side == SideLeft {
			in = append(in, step.Sibling...)
			in = append(in, cur...)
		} else {
			in = append(in, cur...)
			in = append(in, step.Sibling...)
		}
		cur = h.Sum(in, nil)
	}

	return bytes.Equal(cur, rootValue)
}
