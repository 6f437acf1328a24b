package ancora

import (
	"strings"
)

// posOf returns the part-of-speech tag of a word element. When the pos
// attribute is present and non-empty it is returned as is. Otherwise a
// chain of recovery rules is tried in order, making up for the tags the
// annotators left out; the first matching rule wins. When no rule matches
// the result is the empty string.
//
// The surface word must already be extracted (rule 7 matches on it), and
// the simplified flag is the session-wide simplified-tagset mode (rule 8).
func posOf(e *Element, word string, simplified bool) string {
	pos := e.Attr("pos")
	if pos != "" {
		return pos
	}

	switch e.Attr("ne") {
	case "date":
		return "w"
	case "number":
		return "z0"
	}

	tag := e.Tag()
	switch tag {
	case "i":
		return "i"
	case "r":
		return "rg"
	case "z":
		return "z0"
	}

	// "que" is annotated as both a conjunction and a relative pronoun
	postype := e.Attr("postype")
	if tag == "c" && postype == "subordinating" {
		return "cs"
	}
	if tag == "p" && postype == "relative" && strings.EqualFold(word, "que") {
		return "pr0cn000"
	}

	if simplified && tag == "a" {
		return "aq0000"
	}

	if e.HasAttr("punct") {
		return "f"
	}

	return ""
}
