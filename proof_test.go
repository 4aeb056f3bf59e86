package rowan_test

import (
	"crypto/sha256"
	"fmt"
	"testing"

	"github.com/rowan-engine/rowan"
	"github.com/rowan-engine/rowan/internal/rtest"
	"github.com/rowan-engine/rowan/rhash/rhsha256"
	"github.com/stretchr/testify/require"
)

func TestTree_Proof_sha256_3_leaves(t *testing.T) {
	t.Parallel()

	tree, err := rowan.New([][]byte{
		[]byte("value1"),
		[]byte("value2"),
		[]byte("value3"),
	}, rhsha256.Hasher{})
	require.NoError(t, err)

	/* Tree structure, ' marking the padding copy:

	root
	12 33'
	1 2 3 3'

	*/

	expLeaf1 := sha256Hash("value1")
	expLeaf2 := sha256Hash("value2")
	expLeaf3 := sha256Hash("value3")

	expNode12 := sha256Hash(expLeaf1 + expLeaf2)
	expNode33 := sha256Hash(expLeaf3 + expLeaf3)
	expRoot := sha256Hash(expNode12 + expNode33)

	require.Equal(t, expRoot, string(tree.RootValue()))

	proof, ok := tree.Proof([]byte(expLeaf1))
	require.True(t, ok)
	require.Equal(t, rowan.Proof{
		{Sibling: []byte(expLeaf2), Side: rowan.SideRight},
		{Sibling: []byte(expNode33), Side: rowan.SideRight},
	}, proof)

	proof, ok = tree.Proof([]byte(expLeaf2))
	require.True(t, ok)
	require.Equal(t, rowan.Proof{
		{Sibling: []byte(expLeaf1), Side: rowan.SideLeft},
		{Sibling: []byte(expNode33), Side: rowan.SideRight},
	}, proof)

	proof, ok = tree.Proof([]byte(expLeaf3))
	require.True(t, ok)
	require.Equal(t, rowan.Proof{
		{Sibling: []byte(expLeaf3), Side: rowan.SideRight},
		{Sibling: []byte(expNode12), Side: rowan.SideLeft},
	}, proof)
}

// TestTree_endToEnd_sha256 pins the end-to-end behavior for
// three sha256-hashed blocks:
// a two-step location, a two-sibling proof that folds to the root,
// and membership verification that rejects an absent block.
func TestTree_endToEnd_sha256(t *testing.T) {
	t.Parallel()

	tree, err := rowan.New([][]byte{
		[]byte("value1"),
		[]byte("value2"),
		[]byte("value3"),
	}, rhsha256.Hasher{})
	require.NoError(t, err)

	blockHash := []byte(sha256Hash("value1"))

	loc, ok := tree.Location(blockHash)
	require.True(t, ok)
	require.Equal(t, 2, loc.Depth())

	proof, ok := tree.Proof(blockHash)
	require.True(t, ok)
	require.Len(t, proof, 2)

	require.True(t, rowan.VerifyProof(tree.RootValue(), blockHash, proof, rhsha256.Hasher{}))
	require.True(t, tree.VerifyBlock(tree.RootValue(), blockHash))

	absent := []byte(sha256Hash("valueX"))
	require.False(t, tree.VerifyBlock(tree.RootValue(), absent))

	_, ok = tree.Location(absent)
	require.False(t, ok)
	_, ok = tree.Proof(absent)
	require.False(t, ok)
}

func TestTree_Proof_everyLeafFoldsToRoot(t *testing.T) {
	t.Parallel()

	for nLeaves := 1; nLeaves <= 9; nLeaves++ {
		t.Run(fmt.Sprintf("%d_leaves", nLeaves), func(t *testing.T) {
			t.Parallel()

			blocks := make([][]byte, nLeaves)
			for i := range blocks {
				blocks[i] = fmt.Appendf(nil, "block_%d", i)
			}

			tree, err := rowan.New(blocks, fnv32Hasher{})
			require.NoError(t, err)

			for i, b := range blocks {
				blockHash := fnv32Hasher{}.Sum(b, nil)

				proof, ok := tree.Proof(blockHash)
				require.Truef(t, ok, "missing proof for leaf %d", i)

				require.Truef(
					t,
					rowan.VerifyProof(tree.RootValue(), blockHash, proof, fnv32Hasher{}),
					"proof for leaf %d did not fold to the root", i,
				)
				require.True(t, tree.VerifyBlock(tree.RootValue(), blockHash))

				loc, ok := tree.Location(blockHash)
				require.True(t, ok)
				require.Len(t, proof, loc.Depth())
			}
		})
	}
}

func TestTree_Proof_randomBlocks_sha256(t *testing.T) {
	t.Parallel()

	blocks := rtest.RandomBlocksForTest(t, 33, 64)

	tree, err := rowan.New(blocks, rhsha256.Hasher{})
	require.NoError(t, err)

	rootValue := tree.RootValue()
	for i, b := range blocks {
		blockHash := rhsha256.Hasher{}.Sum(b, nil)

		proof, ok := tree.Proof(blockHash)
		require.Truef(t, ok, "missing proof for leaf %d", i)
		require.True(t, rowan.VerifyProof(rootValue, blockHash, proof, rhsha256.Hasher{}))
		require.True(t, tree.VerifyBlock(rootValue, blockHash))
	}
}

func TestTree_Proof_singleLeaf(t *testing.T) {
	t.Parallel()

	tree, err := rowan.New([][]byte{[]byte("only")}, fnv32Hasher{})
	require.NoError(t, err)

	blockHash := fnv32Hash("only")

	proof, ok := tree.Proof(blockHash)
	require.True(t, ok)
	require.Empty(t, proof)

	require.True(t, tree.VerifyBlock(tree.RootValue(), blockHash))
}

func TestTree_Proof_digestsAreCopies(t *testing.T) {
	t.Parallel()

	tree, err := rowan.New([][]byte{
		[]byte("zero"), []byte("one"),
	}, fnv32Hasher{})
	require.NoError(t, err)

	blockHash := fnv32Hash("zero")

	proof, ok := tree.Proof(blockHash)
	require.True(t, ok)

	proof[0].Sibling[0] ^= 0xff

	fresh, ok := tree.Proof(blockHash)
	require.True(t, ok)
	require.Equal(t, fnv32Hash("one"), fresh[0].Sibling)
}

func TestTree_VerifyBlock_rejectsMismatchedRoot(t *testing.T) {
	t.Parallel()

	blocks := [][]byte{[]byte("zero"), []byte("one")}

	tree, err := rowan.New(blocks, fnv32Hasher{})
	require.NoError(t, err)

	other, err := rowan.New([][]byte{
		[]byte("zero"), []byte("one"), []byte("two"),
	}, fnv32Hasher{})
	require.NoError(t, err)

	blockHash := fnv32Hash("zero")

	// The block is present in both trees,
	// but each tree only verifies it against its own root.
	require.True(t, tree.VerifyBlock(tree.RootValue(), blockHash))
	require.False(t, tree.VerifyBlock(other.RootValue(), blockHash))
	require.True(t, other.VerifyBlock(other.RootValue(), blockHash))
}

func TestVerifyProof_tamperedProof(t *testing.T) {
	t.Parallel()

	tree, err := rowan.New([][]byte{
		[]byte("zero"), []byte("one"), []byte("two"), []byte("three"),
	}, fnv32Hasher{})
	require.NoError(t, err)

	blockHash := fnv32Hash("zero")

	proof, ok := tree.Proof(blockHash)
	require.True(t, ok)

	// Flipping a sibling bit breaks the fold.
	proof[1].Sibling[0] ^= 0x01
	require.False(t, rowan.VerifyProof(tree.RootValue(), blockHash, proof, fnv32Hasher{}))
	proof[1].Sibling[0] ^= 0x01
	require.True(t, rowan.VerifyProof(tree.RootValue(), blockHash, proof, fnv32Hasher{}))

	// Flipping a side marker changes concatenation order and breaks it too.
	proof[0].Side = rowan.SideLeft
	require.False(t, rowan.VerifyProof(tree.RootValue(), blockHash, proof, fnv32Hasher{}))
}

func sha256Hash(in string) string {
	res := sha256.Sum256([]byte(in))
	return string(res[:])
}
