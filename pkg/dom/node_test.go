package dom

import (
	"errors"
	"strings"
	"testing"
)

func mustCreate(t *testing.T, doc *Document, tag string) *Node {
	t.Helper()
	n, err := doc.CreateElement(tag)
	if err != nil {
		t.Fatalf("CreateElement(%q): %v", tag, err)
	}
	return n
}

func TestSetInnerHTML_ParsesMarkup(t *testing.T) {
	doc := Blank()
	a := mustCreate(t, doc, "a")

	if err := a.SetInnerHTML("<b>x</b>"); err != nil {
		t.Fatalf("SetInnerHTML error: %v", err)
	}

	children := a.ChildNodes()
	if len(children) != 1 {
		t.Fatalf("got %d children, want 1", len(children))
	}
	if children[0].Tag() != "b" {
		t.Errorf("child tag = %q, want b", children[0].Tag())
	}
	if a.TextContent() != "x" {
		t.Errorf("TextContent() = %q, want x", a.TextContent())
	}
	if a.InnerHTML() != "<b>x</b>" {
		t.Errorf("InnerHTML() = %q", a.InnerHTML())
	}
}

func TestSetInnerHTML_DecodesEntitiesAndReplaces(t *testing.T) {
	doc := Blank()
	p := mustCreate(t, doc, "p")

	if err := p.SetInnerHTML("old"); err != nil {
		t.Fatal(err)
	}
	if err := p.SetInnerHTML("a &lt; b"); err != nil {
		t.Fatal(err)
	}

	if p.ChildCount() != 1 {
		t.Fatalf("ChildCount() = %d, want 1", p.ChildCount())
	}
	if p.TextContent() != "a < b" {
		t.Errorf("TextContent() = %q, want %q", p.TextContent(), "a < b")
	}

	if err := p.SetInnerHTML(""); err != nil {
		t.Fatal(err)
	}
	if p.ChildCount() != 0 {
		t.Errorf("empty markup should clear children, have %d", p.ChildCount())
	}
}

func TestSetInnerHTML_VoidElement(t *testing.T) {
	doc := Blank()
	img := mustCreate(t, doc, "img")

	if err := img.SetInnerHTML(""); err != nil {
		t.Errorf("empty markup on void element: %v", err)
	}
	if err := img.SetInnerHTML("<b>x</b>"); err != nil {
		t.Fatalf("SetInnerHTML on img: %v", err)
	}
	if img.ChildCount() != 1 {
		t.Errorf("ChildCount() = %d, want 1", img.ChildCount())
	}
	if img.TextContent() != "x" {
		t.Errorf("TextContent() = %q, want x", img.TextContent())
	}
	if got := img.OuterHTML(); got != "<img/>" {
		t.Errorf("OuterHTML() = %q, want <img/>", got)
	}
	if got := img.InnerHTML(); got != "" {
		t.Errorf("InnerHTML() = %q, want empty", got)
	}
}

func TestSetTextContent_VoidElement(t *testing.T) {
	doc := Blank()
	br := mustCreate(t, doc, "br")

	if err := br.SetTextContent("x"); err != nil {
		t.Fatalf("SetTextContent on br: %v", err)
	}
	if br.TextContent() != "x" {
		t.Errorf("TextContent() = %q, want x", br.TextContent())
	}

	root := doc.GetElementByID("root")
	if err := root.AppendChild(br); err != nil {
		t.Fatal(err)
	}
	if got := root.OuterHTML(); got != `<div id="root"><br/></div>` {
		t.Errorf("OuterHTML() = %q", got)
	}
	if !strings.Contains(doc.String(), `<div id="root"><br/></div>`) {
		t.Errorf("document = %q", doc.String())
	}
	if br.ChildCount() != 1 {
		t.Errorf("serialization changed the tree: ChildCount() = %d", br.ChildCount())
	}
}

func TestSetTextContent_Escapes(t *testing.T) {
	doc := Blank()
	p := mustCreate(t, doc, "p")

	if err := p.SetTextContent("<b>x</b>"); err != nil {
		t.Fatal(err)
	}

	if p.ChildCount() != 1 || !p.ChildNodes()[0].IsText() {
		t.Fatal("expected a single text child")
	}
	if p.TextContent() != "<b>x</b>" {
		t.Errorf("TextContent() = %q", p.TextContent())
	}
	if got := p.OuterHTML(); got != "<p>&lt;b&gt;x&lt;/b&gt;</p>" {
		t.Errorf("OuterHTML() = %q", got)
	}
}

func TestSetAttribute(t *testing.T) {
	doc := Blank()
	a := mustCreate(t, doc, "a")

	if err := a.SetAttribute("href", "/one"); err != nil {
		t.Fatal(err)
	}
	if err := a.SetAttribute("TARGET", "_blank"); err != nil {
		t.Fatal(err)
	}
	if err := a.SetAttribute("href", "/two"); err != nil {
		t.Fatal(err)
	}

	attrs := a.Attributes()
	if len(attrs) != 2 {
		t.Fatalf("Attributes() = %v, want 2 entries", attrs)
	}
	if attrs[0] != (Attribute{Name: "href", Value: "/two"}) {
		t.Errorf("attrs[0] = %+v", attrs[0])
	}
	if attrs[1] != (Attribute{Name: "target", Value: "_blank"}) {
		t.Errorf("attrs[1] = %+v", attrs[1])
	}
	if v, ok := a.GetAttribute("Target"); !ok || v != "_blank" {
		t.Errorf("GetAttribute(Target) = %q, %v", v, ok)
	}
}

func TestSetAttribute_InvalidName(t *testing.T) {
	doc := Blank()
	a := mustCreate(t, doc, "a")

	for _, name := range []string{"", "a b", `x"`, "x=y", "x/"} {
		if err := a.SetAttribute(name, "v"); !errors.Is(err, ErrInvalidAttrName) {
			t.Errorf("SetAttribute(%q) = %v, want ErrInvalidAttrName", name, err)
		}
	}
	if len(a.Attributes()) != 0 {
		t.Error("invalid names should not be applied")
	}
}

func TestAppendChild(t *testing.T) {
	doc := Blank()
	root := doc.GetElementByID("root")

	first := mustCreate(t, doc, "span")
	second := mustCreate(t, doc, "span")
	if err := root.AppendChild(first); err != nil {
		t.Fatal(err)
	}
	if err := root.AppendChild(second); err != nil {
		t.Fatal(err)
	}

	if root.ChildCount() != 2 {
		t.Fatalf("ChildCount() = %d, want 2", root.ChildCount())
	}
	if !root.LastChild().Same(second) {
		t.Error("second append should be the last child")
	}
	if !first.IsConnected() || !first.Parent().Same(root) {
		t.Error("appended child should be connected under root")
	}

	// Re-appending moves rather than duplicates.
	if err := root.AppendChild(first); err != nil {
		t.Fatal(err)
	}
	if root.ChildCount() != 2 || !root.LastChild().Same(first) {
		t.Error("re-appending should move the node to the end")
	}
}

func TestAppendChild_Errors(t *testing.T) {
	doc := Blank()
	root := doc.GetElementByID("root")
	span := mustCreate(t, doc, "span")
	if err := root.AppendChild(span); err != nil {
		t.Fatal(err)
	}

	if err := span.AppendChild(root); !errors.Is(err, ErrHierarchy) {
		t.Errorf("appending an ancestor = %v, want ErrHierarchy", err)
	}
	if err := span.AppendChild(span); !errors.Is(err, ErrHierarchy) {
		t.Errorf("appending self = %v, want ErrHierarchy", err)
	}
	if err := root.AppendChild(nil); !errors.Is(err, ErrHierarchy) {
		t.Errorf("appending nil = %v, want ErrHierarchy", err)
	}

	img := mustCreate(t, doc, "img")
	if err := img.AppendChild(mustCreate(t, doc, "b")); !errors.Is(err, ErrVoidElement) {
		t.Errorf("appending to img = %v, want ErrVoidElement", err)
	}

	if err := doc.Root().AppendChild(mustCreate(t, doc, "b")); !errors.Is(err, ErrHierarchy) {
		t.Errorf("appending to document node = %v, want ErrHierarchy", err)
	}
}

func TestRemove(t *testing.T) {
	doc := Blank()
	root := doc.GetElementByID("root")
	span := mustCreate(t, doc, "span")
	_ = root.AppendChild(span)

	span.Remove()
	if span.IsConnected() {
		t.Error("removed node should be detached")
	}
	if root.ChildCount() != 0 {
		t.Errorf("root ChildCount() = %d, want 0", root.ChildCount())
	}
}

func TestAcceptsChildren(t *testing.T) {
	doc := Blank()
	tests := []struct {
		tag  string
		want bool
	}{
		{"div", true},
		{"a", true},
		{"img", false},
		{"br", false},
	}
	for _, tt := range tests {
		if got := mustCreate(t, doc, tt.tag).AcceptsChildren(); got != tt.want {
			t.Errorf("<%s>.AcceptsChildren() = %v, want %v", tt.tag, got, tt.want)
		}
	}

	p := mustCreate(t, doc, "p")
	_ = p.SetTextContent("x")
	if p.ChildNodes()[0].AcceptsChildren() {
		t.Error("text nodes should not accept children")
	}
}

func TestOuterHTML_Anchor(t *testing.T) {
	doc := Blank()
	a := mustCreate(t, doc, "a")
	_ = a.SetInnerHTML("Click")
	_ = a.SetAttribute("href", "http://example.com")
	_ = a.SetAttribute("target", "_blank")

	want := `<a href="http://example.com" target="_blank">Click</a>`
	if got := a.OuterHTML(); got != want {
		t.Errorf("OuterHTML() = %q, want %q", got, want)
	}
	if !strings.HasPrefix(a.OuterHTML(), "<a ") {
		t.Error("expected anchor serialization")
	}
}
