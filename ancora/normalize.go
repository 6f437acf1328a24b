package ancora

import (
	"strings"
)

// Normalizer cleans up labels and trees as they are built. Terminal
// normalization is applied to surface words, nonterminal normalization to
// category names and POS tags (a POS tag is the label of a preterminal),
// and the whole-tree pass runs once over each finished sentence.
type Normalizer interface {
	NormalizeTerminal(word string) string
	NormalizeNonterminal(label string) string
	NormalizeWholeTree(t *Tree, f Factory) *Tree
}

// TrimNormalizer trims surrounding whitespace from terminals and
// nonterminals and leaves the tree structure alone. It is the default.
type TrimNormalizer struct{}

func (TrimNormalizer) NormalizeTerminal(word string) string {
	return strings.TrimSpace(word)
}

func (TrimNormalizer) NormalizeNonterminal(label string) string {
	return strings.TrimSpace(label)
}

func (TrimNormalizer) NormalizeWholeTree(t *Tree, f Factory) *Tree {
	return t
}
