package dom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Host errors. The mount renderer maps these onto its own error codes.
var (
	ErrUnknownTag      = errors.New("dom: unknown element tag")
	ErrInvalidAttrName = errors.New("dom: invalid attribute name")
	ErrVoidElement     = errors.New("dom: void element cannot have children")
	ErrHierarchy       = errors.New("dom: node cannot be inserted here")
	ErrInvalidSelector = errors.New("dom: invalid selector")
)

// BlankHTML is the document used when no template is supplied.
const BlankHTML = `<!DOCTYPE html><html><head><meta charset="utf-8"><title>mount</title></head><body><div id="root"></div></body></html>`

// Document is a live HTML document tree.
type Document struct {
	root *html.Node
}

// Parse reads a complete HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseString parses s as a complete HTML document.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Blank returns a new document containing an empty <div id="root">.
func Blank() *Document {
	doc, err := ParseString(BlankHTML)
	if err != nil {
		panic(err)
	}
	return doc
}

// Root returns the document node.
func (d *Document) Root() *Node {
	return d.wrap(d.root)
}

// Body returns the <body> element, or nil.
func (d *Document) Body() *Node {
	body, _ := d.QuerySelector("body")
	return body
}

// CreateElement creates a detached element of the given kind. Tag names are
// lowercased as an HTML document does.
func (d *Document) CreateElement(tag string) (*Node, error) {
	name := strings.ToLower(tag)
	if !IsKnownElement(name) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     name,
		DataAtom: atom.Lookup([]byte(name)),
	}
	return d.wrap(n), nil
}

// GetElementByID returns the first connected element with the given id.
func (d *Document) GetElementByID(id string) *Node {
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && attrValue(n, "id") == id {
			found = n
			return false
		}
		return true
	})
	return d.wrap(found)
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return renderNode(w, d.root)
}

// String returns the document as HTML.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// wrap returns a Node handle for n, or nil.
func (d *Document) wrap(n *html.Node) *Node {
	if n == nil {
		return nil
	}
	return &Node{n: n, doc: d}
}

// walk visits n and its descendants depth-first until fn returns false.
// renderNode serializes n, omitting the children of void elements as a
// browser does. x/net/html refuses to render them at all.
func renderNode(w io.Writer, n *html.Node) error {
	if !hasVoidChildren(n) {
		return html.Render(w, n)
	}
	return html.Render(w, prune(n))
}

func hasVoidChildren(n *html.Node) bool {
	found := false
	walk(n, func(c *html.Node) bool {
		if c.Type == html.ElementNode && voidElements[c.Data] && c.FirstChild != nil {
			found = true
		}
		return !found
	})
	return found
}

// prune returns a detached deep copy of n without the children of void
// elements.
func prune(n *html.Node) *html.Node {
	out := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	if n.Type == html.ElementNode && voidElements[n.Data] {
		return out
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out.AppendChild(prune(c))
	}
	return out
}

func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}
