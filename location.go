package rowan

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Side identifies which child a step descends through,
// or which side a proof sibling sits on.
type Side uint8

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideLeft {
		return "L"
	}
	return "R"
}

// Location is the root-to-leaf path identifying a leaf's position.
// Step 0 is the choice made at the root.
// A single-leaf tree yields a location with depth zero.
type Location struct {
	// Bit i is set when step i descends through the right child.
	// The depth is tracked separately because the bitset alone
	// cannot distinguish trailing left steps from the end of the path.
	dirs  *bitset.BitSet
	depth uint
}

func newLocation(sides []Side) Location {
	loc := Location{
		dirs:  bitset.New(uint(len(sides))),
		depth: uint(len(sides)),
	}
	for i, s := range sides {
		if s == SideRight {
			loc.dirs.Set(uint(i))
		}
	}
	return loc
}

// Depth returns the number of steps from the root to the leaf.
func (l Location) Depth() int {
	return int(l.depth)
}

// Side returns the direction of step i, counting from the root.
func (l Location) Side(i int) Side {
	if i < 0 || uint(i) >= l.depth {
		panic(fmt.Errorf(
			"BUG: step index %d out of range [0, %d)", i, l.depth,
		))
	}
	if l.dirs.Test(uint(i)) {
		return SideRight
	}
	return SideLeft
}

// Sides returns all steps in root-to-leaf order.
func (l Location) Sides() []Side {
	out := make([]Side, l.depth)
	for i := range out {
		out[i] = l.Side(i)
	}
	return out
}

// String renders the path as a sequence of L and R markers.
func (l Location) String() string {
	buf := make([]byte, l.depth)
	for i := range buf {
		buf[i] = l.Side(i).String()[0]
	}
	return string(buf)
}
