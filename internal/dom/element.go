// Package dom is the host document model widgets render into.
//
// It is deliberately small: an element tree with attributes, class markers,
// text, live input values and synchronous event dispatch. Fragments are parsed
// from and serialised to HTML with golang.org/x/net/html.
package dom

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// Event types dispatched by hosts.
const (
	EventInput  = "input"
	EventChange = "change"
)

// Event is delivered to handlers registered on an element.
type Event struct {
	Type   string
	Target *Element
}

// Handler reacts to an event. Returned errors are collected by Dispatch.
type Handler func(Event) error

// Element is a node in a host document. A text node has an empty Tag.
type Element struct {
	Tag string

	attrs    []html.Attribute
	text     string
	value    *string
	parent   *Element
	children []*Element
	handlers map[string][]Handler
}

// NewElement creates a detached element with the given tag name.
func NewElement(tag string) *Element {
	return &Element{Tag: strings.ToLower(tag)}
}

// NewText creates a detached text node.
func NewText(text string) *Element {
	return &Element{text: text}
}

// IsText reports whether e is a text node.
func (e *Element) IsText() bool {
	return e.Tag == ""
}

// Parent returns the parent element, or nil when detached.
func (e *Element) Parent() *Element {
	return e.parent
}

// Children returns a copy of the child list.
func (e *Element) Children() []*Element {
	return slices.Clone(e.children)
}

// Attr returns the value of the named attribute and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.attrs {
		if a.Key == name {
			return a.Val, true
		}
	}

	return "", false
}

// SetAttr sets or replaces an attribute, keeping first-set order.
func (e *Element) SetAttr(name, value string) {
	for i, a := range e.attrs {
		if a.Key == name {
			e.attrs[i].Val = value
			return
		}
	}

	e.attrs = append(e.attrs, html.Attribute{Key: name, Val: value})
}

// RemoveAttr deletes an attribute if present.
func (e *Element) RemoveAttr(name string) {
	e.attrs = slices.DeleteFunc(e.attrs, func(a html.Attribute) bool {
		return a.Key == name
	})
}

// Attrs returns a copy of the attribute list in order.
func (e *Element) Attrs() []html.Attribute {
	return slices.Clone(e.attrs)
}

// Classes returns the class list.
func (e *Element) Classes() []string {
	v, _ := e.Attr("class")
	return strings.Fields(v)
}

// HasClass reports whether the class list contains c.
func (e *Element) HasClass(c string) bool {
	return slices.Contains(e.Classes(), c)
}

// AddClass appends c to the class list unless already present.
func (e *Element) AddClass(c string) {
	if e.HasClass(c) {
		return
	}

	e.SetAttr("class", strings.Join(append(e.Classes(), c), " "))
}

// TextContent returns the concatenated text of e and its descendants.
func (e *Element) TextContent() string {
	if e.IsText() {
		return e.text
	}

	var sb strings.Builder
	for _, c := range e.children {
		sb.WriteString(c.TextContent())
	}

	return sb.String()
}

// SetTextContent replaces all children with a single text node.
func (e *Element) SetTextContent(text string) {
	if e.IsText() {
		e.text = text
		return
	}

	for _, c := range e.children {
		c.parent = nil
	}

	e.children = nil
	if text != "" {
		e.AppendChild(NewText(text))
	}
}

// Value returns the live value of an input: the last value set by the host,
// falling back to the value attribute.
func (e *Element) Value() string {
	if e.value != nil {
		return *e.value
	}

	v, _ := e.Attr("value")

	return v
}

// SetValue sets the live value without dispatching any event.
func (e *Element) SetValue(v string) {
	e.value = &v
}

// AppendChild detaches child from any previous parent and appends it to e.
func (e *Element) AppendChild(child *Element) {
	child.detach()
	child.parent = e
	e.children = append(e.children, child)
}

// InsertAfter places el immediately after e in e's parent.
// It reports false when e has no parent.
func (e *Element) InsertAfter(el *Element) bool {
	p := e.parent
	if p == nil {
		return false
	}

	el.detach()

	idx := slices.Index(p.children, e)
	el.parent = p
	p.children = slices.Insert(p.children, idx+1, el)

	return true
}

func (e *Element) detach() {
	if e.parent == nil {
		return
	}

	e.parent.children = slices.DeleteFunc(e.parent.children, func(c *Element) bool {
		return c == e
	})
	e.parent = nil
}

// AddEventListener registers h for events of type typ, in order.
func (e *Element) AddEventListener(typ string, h Handler) {
	if e.handlers == nil {
		e.handlers = make(map[string][]Handler)
	}

	e.handlers[typ] = append(e.handlers[typ], h)
}

// Listeners reports how many handlers are registered for typ.
func (e *Element) Listeners(typ string) int {
	return len(e.handlers[typ])
}

// Clone returns a deep copy of e without parent or event handlers.
func (e *Element) Clone() *Element {
	c := &Element{
		Tag:   e.Tag,
		attrs: slices.Clone(e.attrs),
		text:  e.text,
	}

	if e.value != nil {
		v := *e.value
		c.value = &v
	}

	for _, child := range e.children {
		c.AppendChild(child.Clone())
	}

	return c
}
