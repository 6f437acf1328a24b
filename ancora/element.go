package ancora

import (
	"encoding/xml"
)

// Element is one element of a decoded AnCora document. AnCora uses the
// syntactic category as the element name (sn, grup.nom, relatiu, ...), so
// the document is decoded untyped: any tag, any attributes, element
// children in document order. Text and comment nodes are not kept.
type Element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []*Element `xml:",any"`
}

// Tag is the element name.
func (e *Element) Tag() string {
	return e.XMLName.Local
}

// Attr returns the value of the named attribute, or "" when absent.
func (e *Element) Attr(name string) string {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// HasAttr reports whether the named attribute is present, even with an
// empty value.
func (e *Element) HasAttr(name string) bool {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return true
		}
	}
	return false
}

// collect appends, in document order, every element below and including e
// whose tag equals name.
func (e *Element) collect(name string, dst []*Element) []*Element {
	if e.Tag() == name {
		dst = append(dst, e)
	}
	for _, c := range e.Children {
		dst = c.collect(name, dst)
	}
	return dst
}
