package ancora

import (
	"bytes"
	"fmt"
	"strings"
)

// Tree is a constituency parse tree node: a leaf carrying a word, or an
// internal node with at least one child. A preterminal is an internal node
// directly above exactly one leaf; its label is the part-of-speech tag.
type Tree struct {
	Label    Label
	Children []*Tree
}

func (t *Tree) IsLeaf() bool {
	return len(t.Children) == 0
}

func (t *Tree) IsPreTerminal() bool {
	return len(t.Children) == 1 && t.Children[0].IsLeaf()
}

// Walk visits t and all nodes below it in preorder.
func (t *Tree) Walk(fn func(*Tree)) {
	fn(t)
	for _, c := range t.Children {
		c.Walk(fn)
	}
}

// Leaves returns the leaf nodes in left-to-right order.
func (t *Tree) Leaves() []*Tree {
	leaves := make([]*Tree, 0)
	t.Walk(func(n *Tree) {
		if n.IsLeaf() {
			leaves = append(leaves, n)
		}
	})
	return leaves
}

// Yield returns the surface string: the leaf values joined by spaces.
func (t *Tree) Yield() string {
	words := make([]string, 0)
	for _, leaf := range t.Leaves() {
		words = append(words, leaf.Label.Value())
	}
	return strings.Join(words, " ")
}

// String renders the tree in bracketed form: a leaf as its text, anything
// else as (label child ...).
func (t *Tree) String() string {
	var buf bytes.Buffer
	t.write(&buf)
	return buf.String()
}

func (t *Tree) write(buf *bytes.Buffer) {
	if t.IsLeaf() {
		buf.WriteString(t.Label.Value())
		return
	}
	fmt.Fprintf(buf, "(%s", t.Label.Value())
	for _, c := range t.Children {
		buf.WriteString(" ")
		c.write(buf)
	}
	buf.WriteString(")")
}
