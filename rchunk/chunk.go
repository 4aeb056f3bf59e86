// Package rchunk prepares byte payloads for integrity-checked storage.
//
// A payload is split into fixed-size data blocks,
// optionally extended with Reed-Solomon parity blocks,
// and a hash tree is built over all of the blocks.
// Any block can then be verified in isolation against the tree root,
// and the payload survives losing up to the parity count of blocks.
package rchunk

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/bits-and-blooms/bitset"
	"github.com/klauspost/reedsolomon"
	"github.com/rowan-engine/rowan"
	"github.com/rowan-engine/rowan/rhash"
)

// The default Reed-Solomon codec tops out at 256 shards.
const maxBlocks = 256

// Config is the configuration for [Prepare].
type Config struct {
	// Maximum size of one data block, in bytes.
	BlockSize int

	// ParityRatio indicates the desired ratio of
	// parity blocks to data blocks.
	// For example, ParityRatio=0.25 means there will be
	// one parity block for every four data blocks.
	// The parity count is rounded down
	// if the ratio does not result in a whole number.
	// Zero means no parity blocks.
	ParityRatio float32

	// How to hash blocks and tree nodes.
	Hasher rhash.Hasher

	// Optional logger. Defaults to a discarding logger.
	Log *slog.Logger
}

// Prepared is the value returned by [Prepare].
type Prepared struct {
	// The number of data and parity blocks.
	NumData, NumParity int

	// Length of the original payload,
	// needed by [Restore] to trim block padding.
	DataLen int

	// The data blocks followed by the parity blocks,
	// aligned one-to-one with the tree's leaves.
	Blocks [][]byte

	// The hash tree over Blocks.
	Tree *rowan.Tree
}

// BlockSizeError is returned from [Prepare]
// if the configured block size is not positive.
type BlockSizeError struct {
	Size int
}

func (e BlockSizeError) Error() string {
	return fmt.Sprintf("block size must be positive (got %d)", e.Size)
}

// Prepare splits data into blocks per cfg,
// encodes parity blocks when cfg.ParityRatio is positive,
// and builds a hash tree over every block.
func Prepare(data []byte, cfg Config) (*Prepared, error) {
	if cfg.BlockSize <= 0 {
		return nil, BlockSizeError{Size: cfg.BlockSize}
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("cannot prepare empty data")
	}

	log := cfg.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	nData := len(data) / cfg.BlockSize
	if len(data)%cfg.BlockSize > 0 {
		nData++
	}

	nParity := int(cfg.ParityRatio * float32(nData))

	if nData+nParity > maxBlocks {
		return nil, fmt.Errorf(
			"data too large: resulted in %d data and %d parity blocks, but limit is %d",
			nData, nParity, maxBlocks,
		)
	}

	enc, err := reedsolomon.New(
		nData, nParity,
		reedsolomon.WithAutoGoroutines(cfg.BlockSize),
	)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to build Reed-Solomon encoder: %w", err,
		)
	}

	blocks, err := enc.Split(data)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to split data into blocks: %w", err,
		)
	}

	if err := enc.Encode(blocks); err != nil {
		return nil, fmt.Errorf(
			"failed to erasure-code blocks: %w", err,
		)
	}

	// Now that the parity is in place,
	// we can build the hash tree over the full block set.
	tree, err := rowan.New(blocks, cfg.Hasher)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to build hash tree over blocks: %w", err,
		)
	}

	log.Debug(
		"Prepared payload",
		"data_len", len(data),
		"data_blocks", nData,
		"parity_blocks", nParity,
		"block_size", len(blocks[0]),
	)

	return &Prepared{
		NumData:   nData,
		NumParity: nParity,

		DataLen: len(data),

		Blocks: blocks,
		Tree:   tree,
	}, nil
}

// RestoreConfig is the configuration for [Restore].
// NumData, NumParity, and DataLen must match the [Prepared] value
// the blocks came from, and Hasher must be the hasher used to prepare.
type RestoreConfig struct {
	NumData, NumParity int

	DataLen int

	Hasher rhash.Hasher

	// Optional logger. Defaults to a discarding logger.
	Log *slog.Logger
}

// Restore reassembles the original payload from blocks,
// where a nil entry marks a missing block.
// Missing blocks are reconstructed from parity,
// and the restored block set is verified
// by rebuilding the hash tree and comparing its root to rootValue.
//
// Restore fails when fewer than NumData blocks are present,
// or when the rebuilt root does not match rootValue.
func Restore(blocks [][]byte, rootValue []byte, cfg RestoreConfig) ([]byte, error) {
	if len(blocks) != cfg.NumData+cfg.NumParity {
		return nil, fmt.Errorf(
			"expected %d blocks (%d data + %d parity), got %d",
			cfg.NumData+cfg.NumParity, cfg.NumData, cfg.NumParity, len(blocks),
		)
	}

	log := cfg.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	present := bitset.New(uint(len(blocks)))
	for i, b := range blocks {
		if b != nil {
			present.Set(uint(i))
		}
	}

	if int(present.Count()) < cfg.NumData {
		return nil, fmt.Errorf(
			"not enough blocks to restore: have %d, need at least %d",
			present.Count(), cfg.NumData,
		)
	}

	enc, err := reedsolomon.New(cfg.NumData, cfg.NumParity)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to build Reed-Solomon encoder: %w", err,
		)
	}

	nMissing := len(blocks) - int(present.Count())
	if nMissing > 0 {
		if err := enc.Reconstruct(blocks); err != nil {
			return nil, fmt.Errorf(
				"failed to reconstruct missing blocks: %w", err,
			)
		}

		log.Debug(
			"Reconstructed missing blocks",
			"missing", nMissing,
			"present", present.Count(),
		)
	}

	// The rebuilt tree covers reconstructed blocks too,
	// so a single root comparison authenticates the entire block set.
	tree, err := rowan.New(blocks, cfg.Hasher)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to rebuild hash tree over blocks: %w", err,
		)
	}

	if !bytes.Equal(tree.RootValue(), rootValue) {
		return nil, fmt.Errorf(
			"restored blocks do not match the expected tree root",
		)
	}

	// Join trims the padding Split added to the final data block.
	var buf bytes.Buffer
	buf.Grow(cfg.DataLen)
	if err := enc.Join(&buf, blocks, cfg.DataLen); err != nil {
		return nil, fmt.Errorf(
			"failed to join blocks: %w", err,
		)
	}

	return buf.Bytes(), nil
}
