package ancora

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTree() *Tree {
	f := NodeLabelFactory{}
	return f.NewInternal("sentence", []*Tree{
		f.NewInternal("sn", []*Tree{
			f.NewInternal("da", []*Tree{f.NewLeaf("la")}),
			f.NewInternal("nc", []*Tree{f.NewLeaf("casa")}),
		}),
		f.NewInternal("grup.verb", []*Tree{
			f.NewInternal("vm", []*Tree{f.NewLeaf("es")}),
		}),
	})
}

func TestTreeShape(t *testing.T) {
	tree := testTree()

	assert.False(t, tree.IsLeaf())
	assert.False(t, tree.IsPreTerminal())

	pre := tree.Children[0].Children[1]
	assert.True(t, pre.IsPreTerminal())
	assert.False(t, pre.IsLeaf())
	assert.True(t, pre.Children[0].IsLeaf())
}

func TestTreeString(t *testing.T) {
	tree := testTree()
	assert.Equal(t, "(sentence (sn (da la) (nc casa)) (grup.verb (vm es)))", tree.String())
}

func TestTreeYield(t *testing.T) {
	tree := testTree()
	assert.Equal(t, "la casa es", tree.Yield())

	leaves := tree.Leaves()
	require.Len(t, leaves, 3)
	assert.Equal(t, "la", leaves[0].Label.Value())
	assert.Equal(t, "es", leaves[2].Label.Value())
}

func TestMatches(t *testing.T) {
	tree := testTree()

	// nil patterns match anything
	assert.True(t, Matches(tree, nil, nil))

	assert.True(t, Matches(tree, regexp.MustCompile(`^nc`), nil))
	assert.False(t, Matches(tree, regexp.MustCompile(`^xx`), nil))

	assert.True(t, Matches(tree, nil, regexp.MustCompile(`^casa$`)))
	assert.False(t, Matches(tree, nil, regexp.MustCompile(`^perro$`)))

	// both patterns must hit on the same preterminal
	assert.True(t, Matches(tree, regexp.MustCompile(`^nc`), regexp.MustCompile(`^casa$`)))
	assert.False(t, Matches(tree, regexp.MustCompile(`^vm`), regexp.MustCompile(`^casa$`)))
}

func TestStringLabel(t *testing.T) {
	var l Label = StringLabel("np")
	assert.Equal(t, "np", l.Value())

	_, ok := l.(HasWord)
	assert.False(t, ok)
	_, ok = l.(HasAnnotation)
	assert.False(t, ok)
}

func TestNodeLabelCapabilities(t *testing.T) {
	l := NewNodeLabel("nc")
	l.SetWord("casa")
	l.SetLemma("casa")
	l.SetTag("nc")
	l.SetAnnotation(SentenceIDAnnotation, "7")

	assert.Equal(t, "nc", l.Value())
	assert.Equal(t, "casa", l.Word())
	assert.Equal(t, "casa", l.Lemma())
	assert.Equal(t, "nc", l.Tag())
	assert.Equal(t, "7", l.Annotation(SentenceIDAnnotation))
	assert.Equal(t, "", l.Annotation("missing"))
}

func TestTrimNormalizer(t *testing.T) {
	n := TrimNormalizer{}
	assert.Equal(t, "casa", n.NormalizeTerminal(" casa\t"))
	assert.Equal(t, "grup.nom", n.NormalizeNonterminal(" grup.nom "))

	tree := testTree()
	assert.Same(t, tree, n.NormalizeWholeTree(tree, NodeLabelFactory{}))
}
