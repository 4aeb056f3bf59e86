// Package rowan builds binary hash trees (Merkle trees) over ordered
// collections of data blocks and answers membership queries against them.
//
// A [Tree] is built once from a fixed block list and a pluggable hash
// strategy, and is read-only afterwards.
// Callers interact with the tree through digest-level queries:
// [*Tree.Location] returns the root-to-leaf path of a block,
// [*Tree.Proof] returns the sibling digests needed to recompute the root,
// and [*Tree.VerifyBlock] confirms membership against a claimed root.
// The internal node graph is never handed out;
// [*Tree.Root] returns an independent deep snapshot on every call.
package rowan
