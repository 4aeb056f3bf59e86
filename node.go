package rowan

import "bytes"

// Node is one cell of a built tree.
// Leaves hold the original block in Content and its digest in Value;
// interior nodes hold the digest of their children's concatenated values
// and have a nil Content.
//
// A Node never hashes or validates anything itself;
// [New] is responsible for keeping Value consistent with the children.
//
// Values returned from [*Tree.Root] are deep snapshots,
// so callers may inspect or even modify them freely
// without affecting the tree they came from.
type Node struct {
	Left, Right *Node

	// Value is the node's digest.
	Value []byte

	// Content is the original block for leaves, nil for interior nodes.
	// Retaining raw content defeats the storage compactness of the tree;
	// it is kept for diagnostics and for [*Tree.VerifyBlock] round trips.
	Content []byte

	// Copied marks a node manufactured to balance an odd level,
	// as opposed to a node derived from genuine input data.
	// Padding nodes carry the same digest as the leaf they duplicate,
	// so callers must use this flag, not hash equality,
	// to tell the two apart.
	Copied bool
}

// Copy returns a deep copy of n and everything beneath it.
// The returned subtree shares no memory with n:
// children are copied recursively and byte slices are cloned.
// The Copied flag is carried over as-is.
func (n *Node) Copy() *Node {
	if n == nil {
		return nil
	}

	return &Node{
		Left:  n.Left.Copy(),
		Right: n.Right.Copy(),

		Value:   bytes.Clone(n.Value),
		Content: bytes.Clone(n.Content),

		Copied: n.Copied,
	}
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// equal reports structural equality with other:
// same digest, same content, same Copied flag, and same shape below.
func (n *Node) equal(other *Node) bool {
	if n == nil || other == nil {
		return n == nil && other == nil
	}

	if !bytes.Equal(n.Value, other.Value) ||
		!bytes.Equal(n.Content, other.Content) ||
		n.Copied != other.Copied {
		return false
	}

	return n.Left.equal(other.Left) && n.Right.equal(other.Right)
}
