package dom

import (
	"fmt"

	"github.com/andybalholm/cascadia"
)

// compile parses a CSS selector group.
func compile(sel string) (cascadia.Selector, error) {
	s, err := cascadia.Compile(sel)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidSelector, sel, err)
	}
	return s, nil
}

// QuerySelector returns the first element matching the CSS selector sel, or
// nil when nothing matches. An unparsable selector yields ErrInvalidSelector.
func (d *Document) QuerySelector(sel string) (*Node, error) {
	s, err := compile(sel)
	if err != nil {
		return nil, err
	}
	return d.wrap(cascadia.Query(d.root, s)), nil
}

// QuerySelectorAll returns every element matching sel in document order.
func (d *Document) QuerySelectorAll(sel string) ([]*Node, error) {
	s, err := compile(sel)
	if err != nil {
		return nil, err
	}
	found := cascadia.QueryAll(d.root, s)
	out := make([]*Node, len(found))
	for i, n := range found {
		out[i] = d.wrap(n)
	}
	return out, nil
}

// QuerySelector returns the first descendant of n matching sel, or nil.
func (n *Node) QuerySelector(sel string) (*Node, error) {
	s, err := compile(sel)
	if err != nil {
		return nil, err
	}
	return n.doc.wrap(cascadia.Query(n.n, s)), nil
}
