package ancora

import (
	"regexp"
)

// Matches reports whether some preterminal in the tree has a part of
// speech matching pos and a word matching word. A nil pattern matches
// anything.
func Matches(t *Tree, pos, word *regexp.Regexp) bool {
	found := false
	t.Walk(func(n *Tree) {
		if found || !n.IsPreTerminal() {
			return
		}
		if pos != nil && !pos.MatchString(n.Label.Value()) {
			return
		}
		if word != nil && !word.MatchString(n.Children[0].Label.Value()) {
			return
		}
		found = true
	})
	return found
}
