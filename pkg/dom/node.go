package dom

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Attribute is a name/value pair on an element.
type Attribute struct {
	Name  string
	Value string
}

// Node is a handle to a node in a Document. Several handles may refer to the
// same underlying node; compare them with Same.
type Node struct {
	n   *html.Node
	doc *Document
}

// HTMLNode returns the underlying x/net/html node.
func (n *Node) HTMLNode() *html.Node {
	return n.n
}

// OwnerDocument returns the document that created the node.
func (n *Node) OwnerDocument() *Document {
	return n.doc
}

// Same reports whether n and other refer to the same node.
func (n *Node) Same(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.n == other.n
}

// Tag returns the element tag name, or "" for non-element nodes.
func (n *Node) Tag() string {
	if !n.IsElement() {
		return ""
	}
	return n.n.Data
}

// IsElement reports whether n is an element node.
func (n *Node) IsElement() bool {
	return n != nil && n.n != nil && n.n.Type == html.ElementNode
}

// IsText reports whether n is a text node.
func (n *Node) IsText() bool {
	return n != nil && n.n != nil && n.n.Type == html.TextNode
}

// IsConnected reports whether n is reachable from its owner document's root.
func (n *Node) IsConnected() bool {
	if n == nil || n.n == nil || n.doc == nil {
		return false
	}
	top := n.n
	for top.Parent != nil {
		top = top.Parent
	}
	return top == n.doc.root
}

// AcceptsChildren reports whether children can be appended to n.
func (n *Node) AcceptsChildren() bool {
	return n.IsElement() && !voidElements[n.n.Data]
}

// Parent returns the parent node, or nil.
func (n *Node) Parent() *Node {
	return n.doc.wrap(n.n.Parent)
}

// ChildNodes returns all child nodes in order.
func (n *Node) ChildNodes() []*Node {
	var out []*Node
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, n.doc.wrap(c))
	}
	return out
}

// Children returns the element children in order.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, n.doc.wrap(c))
		}
	}
	return out
}

// ChildCount returns the number of child nodes.
func (n *Node) ChildCount() int {
	count := 0
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	return count
}

// LastChild returns the last child node, or nil.
func (n *Node) LastChild() *Node {
	return n.doc.wrap(n.n.LastChild)
}

// SetAttribute sets name to value, replacing any existing value. Names are
// lowercased as on HTML elements.
func (n *Node) SetAttribute(name, value string) error {
	if !n.IsElement() {
		return fmt.Errorf("%w: attributes require an element", ErrHierarchy)
	}
	if !validAttrName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidAttrName, name)
	}
	key := strings.ToLower(name)
	for i := range n.n.Attr {
		if n.n.Attr[i].Namespace == "" && n.n.Attr[i].Key == key {
			n.n.Attr[i].Val = value
			return nil
		}
	}
	n.n.Attr = append(n.n.Attr, html.Attribute{Key: key, Val: value})
	return nil
}

// GetAttribute returns the value of name.
func (n *Node) GetAttribute(name string) (string, bool) {
	if !n.IsElement() {
		return "", false
	}
	key := strings.ToLower(name)
	for _, a := range n.n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Attributes returns the element's attributes in order.
func (n *Node) Attributes() []Attribute {
	if !n.IsElement() {
		return nil
	}
	out := make([]Attribute, 0, len(n.n.Attr))
	for _, a := range n.n.Attr {
		name := a.Key
		if a.Namespace != "" {
			name = a.Namespace + ":" + a.Key
		}
		out = append(out, Attribute{Name: name, Value: a.Val})
	}
	return out
}

// SetInnerHTML replaces n's children with markup parsed in n's context.
// The markup is not escaped. Void elements keep the parsed children in the
// tree, but serialization omits them.
func (n *Node) SetInnerHTML(markup string) error {
	if !n.IsElement() {
		return fmt.Errorf("%w: inner HTML requires an element", ErrHierarchy)
	}

	if markup == "" {
		n.removeChildren()
		return nil
	}

	context := n.n
	if voidElements[n.n.Data] {
		context = &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return fmt.Errorf("dom: parse fragment: %w", err)
	}

	n.removeChildren()
	for _, c := range nodes {
		n.n.AppendChild(c)
	}
	return nil
}

// SetTextContent replaces n's children with a single text node.
func (n *Node) SetTextContent(text string) error {
	if !n.IsElement() {
		return fmt.Errorf("%w: text content requires an element", ErrHierarchy)
	}
	n.removeChildren()
	if text != "" {
		n.n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
	return nil
}

// TextContent returns the concatenated text of n and its descendants.
func (n *Node) TextContent() string {
	var b strings.Builder
	walk(n.n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

// InnerHTML serializes n's children. Children of void elements are not
// serialized.
func (n *Node) InnerHTML() string {
	if voidElements[n.n.Data] && n.n.Type == html.ElementNode {
		return ""
	}
	var buf bytes.Buffer
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		if err := renderNode(&buf, c); err != nil {
			return ""
		}
	}
	return buf.String()
}

// OuterHTML serializes n itself.
func (n *Node) OuterHTML() string {
	var buf bytes.Buffer
	if err := renderNode(&buf, n.n); err != nil {
		return ""
	}
	return buf.String()
}

// AppendChild inserts child as n's last child, moving it if it already has
// a parent.
func (n *Node) AppendChild(child *Node) error {
	if child == nil {
		return fmt.Errorf("%w: nil child", ErrHierarchy)
	}
	if !n.IsElement() {
		return fmt.Errorf("%w: parent is not an element", ErrHierarchy)
	}
	if !n.AcceptsChildren() {
		return fmt.Errorf("%w: <%s>", ErrVoidElement, n.n.Data)
	}
	for p := n.n; p != nil; p = p.Parent {
		if p == child.n {
			return fmt.Errorf("%w: child is an ancestor of the parent", ErrHierarchy)
		}
	}

	if child.n.Parent != nil {
		child.n.Parent.RemoveChild(child.n)
	}
	n.n.AppendChild(child.n)
	child.doc = n.doc
	return nil
}

// Remove detaches n from its parent.
func (n *Node) Remove() {
	if n.n.Parent != nil {
		n.n.Parent.RemoveChild(n.n)
	}
}

func (n *Node) removeChildren() {
	for c := n.n.FirstChild; c != nil; {
		next := c.NextSibling
		n.n.RemoveChild(c)
		c = next
	}
}

// validAttrName reports whether name is an acceptable attribute name.
func validAttrName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		switch c := name[i]; {
		case c <= ' ', c == 0x7f:
			return false
		case c == '"', c == '\'', c == '>', c == '<', c == '/', c == '=':
			return false
		}
	}
	return true
}
