// Package ancora reads XML files from the AnCora Spanish treebank and
// turns each sentence element into a constituency parse tree.
package ancora

import (
	"golang.org/x/net/html/charset"

	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	// EmptyLeaf is the surface text of an empty category: an elliptic
	// constituent, or a word element with a blank wd attribute.
	EmptyLeaf = "-NONE-"

	// SentenceIDAnnotation is the annotation name under which a tree's
	// root label carries the ordinal position of its sentence element.
	SentenceIDAnnotation = "sentence-id"

	// DefaultEncoding is the character encoding of the AnCora
	// distribution.
	DefaultEncoding = "iso-8859-1"
)

// Options configures a Reader. The zero value (or a nil *Options) selects
// the AnCora defaults.
type Options struct {
	// Encoding is the charset label of the input stream. Default
	// DefaultEncoding.
	Encoding string

	// Simplified selects the simplified tagset for recovered
	// part-of-speech tags. Fixed for the lifetime of the reader.
	Simplified bool

	// Normalizer and Factory replace the default TrimNormalizer and
	// NodeLabelFactory.
	Normalizer Normalizer
	Factory    Factory

	// Diag receives discard diagnostics. Default os.Stderr.
	Diag io.Writer
}

// Reader is one reading session over one document: forward-only, single
// pass, not safe for concurrent use.
type Reader struct {
	src        io.Reader
	sentences  []*Element
	sentIdx    int
	simplified bool
	norm       Normalizer
	fact       Factory
	diag       io.Writer
	closed     bool
}

func (o *Options) fill() {
	if o.Encoding == "" {
		o.Encoding = DefaultEncoding
	}
	if o.Normalizer == nil {
		o.Normalizer = TrimNormalizer{}
	}
	if o.Factory == nil {
		o.Factory = NodeLabelFactory{}
	}
	if o.Diag == nil {
		o.Diag = os.Stderr
	}
}

// NewReader parses the document on r and prepares its sentence elements
// for reading. When the document cannot be parsed the error is returned
// here, once, together with a reader that is already exhausted: ReadTree
// on it returns io.EOF, it does not fail again.
func NewReader(r io.Reader, opts *Options) (*Reader, error) {
	var o Options
	if opts != nil {
		o = *opts
	}
	o.fill()

	rd := &Reader{
		src:        r,
		simplified: o.Simplified,
		norm:       o.Normalizer,
		fact:       o.Factory,
		diag:       o.Diag,
	}

	in, err := charset.NewReaderLabel(o.Encoding, r)
	if err != nil {
		return rd, err
	}

	dec := xml.NewDecoder(in)
	// the stream was already converted to UTF-8 above
	dec.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	var doc Element
	if err := dec.Decode(&doc); err != nil {
		return rd, err
	}

	rd.sentences = doc.collect("sentence", nil)
	return rd, nil
}

// ReadTree returns the next sentence's tree. Sentences that yield no tree
// are skipped. At the end of the document, and on every call after that,
// the error is io.EOF.
func (r *Reader) ReadTree() (*Tree, error) {
	for r.sentIdx < len(r.sentences) {
		id := r.sentIdx
		r.sentIdx++

		t := r.treeFromElement(r.sentences[id])
		if t == nil {
			continue
		}

		t = r.norm.NormalizeWholeTree(t, r.fact)
		if ann, ok := t.Label.(HasAnnotation); ok {
			ann.SetAnnotation(SentenceIDAnnotation, strconv.Itoa(id))
		}
		return t, nil
	}
	return nil, io.EOF
}

// Close releases the underlying stream if it is closable. Calling it more
// than once is harmless, and it never returns an error: a failure to close
// must not mask whatever came before it.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if c, ok := r.src.(io.Closer); ok {
		c.Close()
	}
	return nil
}

// treeFromElement converts one element. A nil result means the element is
// empty and must be dropped; emptiness propagates upward, so a whole
// sentence can come out nil.
func (r *Reader) treeFromElement(e *Element) *Tree {
	if e.HasAttr("wd") {
		return r.buildWordNode(e)
	}
	if e.HasAttr("elliptic") {
		return r.buildEllipticNode(e)
	}

	kids := make([]*Tree, 0, len(e.Children))
	for _, c := range e.Children {
		t := r.treeFromElement(c)
		if t == nil {
			fmt.Fprintf(r.diag, "ancora: discarding empty tree (root: %s)\n", c.Tag())
			continue
		}
		kids = append(kids, t)
	}
	if len(kids) == 0 {
		return nil
	}

	label := strings.TrimSpace(e.Tag())
	return r.fact.NewInternal(r.norm.NormalizeNonterminal(label), kids)
}

// buildWordNode makes the preterminal for a word element: a leaf with the
// normalized surface word under a node labeled with the POS tag.
func (r *Reader) buildWordNode(e *Element) *Tree {
	word := wordOf(e)
	pos := r.norm.NormalizeNonterminal(posOf(e, word, r.simplified))
	lemma := e.Attr("lem")

	leafStr := r.norm.NormalizeTerminal(word)
	leaf := r.fact.NewLeaf(leafStr)
	if l, ok := leaf.Label.(HasWord); ok {
		l.SetWord(leafStr)
	}
	if l, ok := leaf.Label.(HasLemma); ok && lemma != "" {
		l.SetLemma(lemma)
	}

	t := r.fact.NewInternal(pos, []*Tree{leaf})
	if l, ok := t.Label.(HasTag); ok {
		l.SetTag(pos)
	}
	return t
}

// buildEllipticNode makes the preterminal for an elided constituent: an
// empty-category leaf under a node labeled with the element's own tag.
// Elliptic nodes are never word nodes, so the label skips the POS
// heuristics.
func (r *Reader) buildEllipticNode(e *Element) *Tree {
	leaf := r.fact.NewLeaf(EmptyLeaf)
	if l, ok := leaf.Label.(HasWord); ok {
		l.SetWord(EmptyLeaf)
	}
	return r.fact.NewInternal(e.Tag(), []*Tree{leaf})
}

// wordOf extracts the surface word: the wd attribute, trimmed. A word
// element with a missing or blank wd gets the empty-category token. This
// is not the elliptic case, which never reaches here.
func wordOf(e *Element) string {
	word := strings.TrimSpace(e.Attr("wd"))
	if word == "" {
		return EmptyLeaf
	}
	return word
}
