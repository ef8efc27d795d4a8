package dom

import "strings"

// selector is a compound selector of the form tag, .class or tag.class.
type selector struct {
	tag     string
	classes []string
}

func parseSelector(s string) selector {
	parts := strings.Split(strings.TrimSpace(s), ".")

	return selector{
		tag:     strings.ToLower(parts[0]),
		classes: parts[1:],
	}
}

func (s selector) matches(e *Element) bool {
	if e.IsText() {
		return false
	}

	if s.tag != "" && s.tag != "*" && s.tag != e.Tag {
		return false
	}

	for _, c := range s.classes {
		if !e.HasClass(c) {
			return false
		}
	}

	return true
}

// QuerySelector returns the first descendant of e, in document order,
// matching sel. Only tag, .class and tag.class selectors are supported.
func (e *Element) QuerySelector(sel string) *Element {
	s := parseSelector(sel)

	var found *Element
	e.walk(func(el *Element) bool {
		if s.matches(el) {
			found = el
			return false
		}

		return true
	})

	return found
}

// QuerySelectorAll returns every descendant of e matching sel in document order.
func (e *Element) QuerySelectorAll(sel string) []*Element {
	s := parseSelector(sel)

	var found []*Element
	e.walk(func(el *Element) bool {
		if s.matches(el) {
			found = append(found, el)
		}

		return true
	})

	return found
}

// walk visits descendants of e depth first until visit returns false.
func (e *Element) walk(visit func(*Element) bool) bool {
	for _, c := range e.children {
		if !visit(c) || !c.walk(visit) {
			return false
		}
	}

	return true
}
