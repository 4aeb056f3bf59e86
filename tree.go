package rowan

import (
	"bytes"

	"github.com/rowan-engine/rowan/rhash"
)

// Tree is a binary hash tree over an ordered list of data blocks.
//
// Build one with [New].
// A built tree is immutable, so all query methods
// are safe to call concurrently.
type Tree struct {
	root *Node

	hasher rhash.Hasher
}

// New builds a tree over blocks, in order, using h for every digest.
//
// Each block becomes a leaf whose Value is h(block).
// Levels are then combined bottom-up, pairing adjacent nodes
// left to right; an interior node's Value is
// h(left.Value ++ right.Value).
// When a level has an odd count, the last node is paired with a
// deep copy of itself marked Copied, never with a shared reference,
// so identity-based queries can still tell the two apart.
// A single block produces a tree whose root is that leaf.
//
// The root digest is fully determined by the block order and h:
// reordering blocks or changing the hash changes the root.
//
// New returns [EmptyInputError] when blocks is empty.
func New(blocks [][]byte, h rhash.Hasher) (*Tree, error) {
	if len(blocks) == 0 {
		return nil, EmptyInputError{}
	}

	level := make([]*Node, len(blocks))
	for i, b := range blocks {
		level[i] = &Node{
			Value:   h.Sum(b, nil),
			Content: bytes.Clone(b),
		}
	}

	var in []byte
	for len(level) > 1 {
		if len(level)%2 == 1 {
			pad := level[len(level)-1].Copy()
			pad.Copied = true
			level = append(level, pad)
		}

		next := level[:0:len(level)/2]
		for i := 0; i < len(level); i += 2 {
			left, right := level[i], level[i+1]

			in = in[:0]
			in = append(in, left.Value...)
			in = append(in, right.Value...)

			next = append(next, &Node{
				Left:  left,
				Right: right,
				Value: h.Sum(in, nil),
			})
		}
		level = next
	}

	return &Tree{
		root: level[0],

		hasher: h,
	}, nil
}

// Root returns an independent deep snapshot of the root node.
// Every call returns a fresh copy;
// mutating a snapshot never affects the tree or other snapshots.
func (t *Tree) Root() *Node {
	return t.root.Copy()
}

// RootValue returns a copy of the root digest.
func (t *Tree) RootValue() []byte {
	return bytes.Clone(t.root.Value)
}

// Compare reports whether t and other are structurally equal:
// equal digests, contents, Copied flags, and shape at every node.
//
// This is deliberately stronger than comparing root digests.
// Two trees whose roots collide under a weak hash
// still compare unequal when any node differs structurally.
func (t *Tree) Compare(other *Tree) bool {
	return t.root.equal(other.root)
}

// Location returns the root-to-leaf path of the leaf
// whose digest equals blockHash,
// or false when no leaf matches.
//
// The search runs left to right and skips padding duplicates,
// so when a block's digest matches both a genuine leaf and its
// padding copy, the genuine (leftmost, non-copied) leaf wins.
func (t *Tree) Location(blockHash []byte) (Location, bool) {
	sides, ok := locate(t.root, blockHash, nil)
	if !ok {
		return Location{}, false
	}
	return newLocation(sides), true
}

// locate searches the subtree at n for a non-copied leaf
// whose digest equals blockHash,
// appending direction markers to path as it descends.
func locate(n *Node, blockHash []byte, path []Side) ([]Side, bool) {
	if n == nil {
		return nil, false
	}

	if n.IsLeaf() {
		if !n.Copied && bytes.Equal(n.Value, blockHash) {
			return path, true
		}
		return nil, false
	}

	if found, ok := locate(n.Left, blockHash, append(path, SideLeft)); ok {
		return found, ok
	}
	return locate(n.Right, blockHash, append(path, SideRight))
}

// Proof returns the sibling digests for the leaf
// whose digest equals blockHash, in leaf-to-root order,
// or false when no leaf matches.
// The returned digests are copies and never alias tree internals.
func (t *Tree) Proof(blockHash []byte) (Proof, bool) {
	sides, ok := locate(t.root, blockHash, nil)
	if !ok {
		return nil, false
	}

	// Collect siblings while descending along the located path,
	// then reverse into the ascending order the verifier folds in.
	proof := make(Proof, len(sides))
	n := t.root
	for i, s := range sides {
		step := ProofStep{}
		if s == SideLeft {
			step.Sibling = bytes.Clone(n.Right.Value)
			step.Side = SideRight
			n = n.Left
		} else {
			step.Sibling = bytes.Clone(n.Left.Value)
			step.Side = SideLeft
			n = n.Right
		}
		proof[len(sides)-1-i] = step
	}

	return proof, true
}

// VerifyBlock reports whether the tree contains a leaf
// whose digest equals blockHash,
// AND recombining that leaf's siblings upward reproduces rootValue.
//
// The second condition guards against a mismatched root:
// a block present in this tree still fails verification
// against the root digest of a different tree.
func (t *Tree) VerifyBlock(rootValue, blockHash []byte) bool {
	proof, ok := t.Proof(blockHash)
	if !ok {
		return false
	}
	return VerifyProof(rootValue, blockHash, proof, t.hasher)
}
