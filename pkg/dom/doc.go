// Package dom is the host document system the mount renderer writes into.
//
// It wraps a golang.org/x/net/html node tree with the small set of DOM
// operations mounting needs:
//
//	doc, _ := dom.ParseString(`<div id="root"></div>`)
//	a, err := doc.CreateElement("a")      // fails with ErrUnknownTag
//	_ = a.SetInnerHTML("<b>Click</b>")    // parsed as markup
//	_ = a.SetAttribute("href", "/")
//	_ = doc.GetElementByID("root").AppendChild(a)
//
// The tree is not safe for concurrent mutation.
//
// # Element Kinds
//
// CreateElement accepts the elements of the HTML standard plus custom
// element names (lowercase, starting with a letter, containing a hyphen).
// Anything else is ErrUnknownTag, mirroring a host that refuses to construct
// unknown node kinds.
package dom
