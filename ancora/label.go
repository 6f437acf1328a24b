package ancora

// Label is the value carried by a tree node: a word for leaves, a POS tag
// for preterminals, a category name for everything above.
type Label interface {
	Value() string
}

// The optional capabilities of a label. A Factory may produce labels that
// support any subset of these; the reader checks for each capability and
// skips the setter when it is missing.

type HasWord interface {
	Word() string
	SetWord(word string)
}

type HasLemma interface {
	Lemma() string
	SetLemma(lemma string)
}

type HasTag interface {
	Tag() string
	SetTag(tag string)
}

type HasAnnotation interface {
	Annotation(name string) string
	SetAnnotation(name, value string)
}

// StringLabel is a bare label without any of the optional capabilities.
type StringLabel string

func (l StringLabel) Value() string {
	return string(l)
}

// NodeLabel supports the full set of capabilities. It is what the default
// factory produces.
type NodeLabel struct {
	value string
	word  string
	lemma string
	tag   string
	ann   map[string]string
}

func NewNodeLabel(value string) *NodeLabel {
	return &NodeLabel{value: value}
}

func (l *NodeLabel) Value() string {
	return l.value
}

func (l *NodeLabel) Word() string {
	return l.word
}

func (l *NodeLabel) SetWord(word string) {
	l.word = word
}

func (l *NodeLabel) Lemma() string {
	return l.lemma
}

func (l *NodeLabel) SetLemma(lemma string) {
	l.lemma = lemma
}

func (l *NodeLabel) Tag() string {
	return l.tag
}

func (l *NodeLabel) SetTag(tag string) {
	l.tag = tag
}

func (l *NodeLabel) Annotation(name string) string {
	return l.ann[name]
}

func (l *NodeLabel) SetAnnotation(name, value string) {
	if l.ann == nil {
		l.ann = make(map[string]string)
	}
	l.ann[name] = value
}

// Factory allocates tree nodes. Children of an internal node must be
// non-empty; the reader never calls NewInternal with zero children.
type Factory interface {
	NewLeaf(text string) *Tree
	NewInternal(label string, children []*Tree) *Tree
}

// NodeLabelFactory builds trees labeled with *NodeLabel.
type NodeLabelFactory struct{}

func (NodeLabelFactory) NewLeaf(text string) *Tree {
	return &Tree{Label: NewNodeLabel(text)}
}

func (NodeLabelFactory) NewInternal(label string, children []*Tree) *Tree {
	return &Tree{Label: NewNodeLabel(label), Children: children}
}
