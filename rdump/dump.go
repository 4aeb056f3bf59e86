// Package rdump renders human-readable dumps of built hash trees.
//
// It is a consumer of [rowan.Tree] snapshots, not part of the tree core:
// it only reads the exported fields of nodes obtained from [*rowan.Tree.Root].
package rdump

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/rowan-engine/rowan"
)

// Options controls tree dump output.
type Options struct {
	// Brief truncates each digest to its first four bytes.
	Brief bool

	// Colorize emits ANSI color codes for digests and markers.
	Colorize bool
}

// Fdump writes an indented depth-first dump of the subtree at root to w.
// Each line shows the node's digest, its content for leaves,
// and a marker on padding copies.
//
// A nil root writes nothing.
func Fdump(w io.Writer, root *rowan.Node, o Options) error {
	d := dumper{
		w: w,
		o: o,

		digestColor: color.New(color.FgCyan),
		copyColor:   color.New(color.FgYellow),
	}
	if o.Colorize {
		d.digestColor.EnableColor()
		d.copyColor.EnableColor()
	} else {
		d.digestColor.DisableColor()
		d.copyColor.DisableColor()
	}

	return d.dump(root, 0)
}

type dumper struct {
	w io.Writer
	o Options

	digestColor *color.Color
	copyColor   *color.Color
}

func (d dumper) dump(n *rowan.Node, level int) error {
	if n == nil {
		return nil
	}

	v := n.Value
	if d.o.Brief && len(v) > 4 {
		v = v[:4]
	}

	for range level {
		if _, err := io.WriteString(d.w, "    "); err != nil {
			return err
		}
	}

	if _, err := d.digestColor.Fprint(d.w, hex.EncodeToString(v)); err != nil {
		return err
	}

	if n.IsLeaf() {
		if _, err := fmt.Fprintf(d.w, " %q", n.Content); err != nil {
			return err
		}
	}

	if n.Copied {
		if _, err := io.WriteString(d.w, " "); err != nil {
			return err
		}
		if _, err := d.copyColor.Fprint(d.w, "(copy)"); err != nil {
			return err
		}
	}

	if _, err := io.WriteString(d.w, "\n"); err != nil {
		return err
	}

	if err := d.dump(n.Left, level+1); err != nil {
		return err
	}
	return d.dump(n.Right, level+1)
}
