package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Fragment is a detached root holding parsed or generated content.
// It renders only its children.
type Fragment struct {
	*Element
}

// NewFragment creates an empty fragment.
func NewFragment() Fragment {
	return Fragment{Element: NewElement("#fragment")}
}

// ParseFragment parses HTML body content into a fragment.
// Whitespace-only text between elements is dropped.
func ParseFragment(src string) (Fragment, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}

	nodes, err := html.ParseFragment(strings.NewReader(src), body)
	if err != nil {
		return Fragment{}, fmt.Errorf("parse fragment: %w", err)
	}

	frag := NewFragment()
	for _, n := range nodes {
		if el := fromNode(n); el != nil {
			frag.AppendChild(el)
		}
	}

	return frag, nil
}

// Clone deep-copies the fragment.
func (f Fragment) Clone() Fragment {
	return Fragment{Element: f.Element.Clone()}
}

// Render writes the fragment's children as HTML.
func (f Fragment) Render(w io.Writer) error {
	for _, c := range f.children {
		if err := c.Render(w); err != nil {
			return err
		}
	}

	return nil
}

// Render writes e as HTML. Inputs are serialised with their live value.
func (e *Element) Render(w io.Writer) error {
	if err := html.Render(w, e.toNode()); err != nil {
		return fmt.Errorf("render %s: %w", e.Tag, err)
	}

	return nil
}

// HTML returns e rendered as a string.
func (e *Element) HTML() string {
	var sb strings.Builder
	_ = e.Render(&sb)

	return sb.String()
}

func fromNode(n *html.Node) *Element {
	switch n.Type {
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return nil
		}

		return NewText(n.Data)
	case html.ElementNode:
		el := NewElement(n.Data)
		for _, a := range n.Attr {
			el.SetAttr(a.Key, a.Val)
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := fromNode(c); child != nil {
				el.AppendChild(child)
			}
		}

		return el
	default:
		return nil
	}
}

func (e *Element) toNode() *html.Node {
	if e.IsText() {
		return &html.Node{Type: html.TextNode, Data: e.text}
	}

	n := &html.Node{
		Type:     html.ElementNode,
		Data:     e.Tag,
		DataAtom: atom.Lookup([]byte(e.Tag)),
		Attr:     e.Attrs(),
	}

	if e.Tag == "input" && e.value != nil {
		n.Attr = setNodeAttr(n.Attr, "value", *e.value)
	}

	for _, c := range e.children {
		n.AppendChild(c.toNode())
	}

	return n
}

func setNodeAttr(attrs []html.Attribute, key, val string) []html.Attribute {
	for i := range attrs {
		if attrs[i].Key == key {
			attrs[i].Val = val
			return attrs
		}
	}

	return append(attrs, html.Attribute{Key: key, Val: val})
}
