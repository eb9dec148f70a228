// Package element defines the element descriptor consumed by the mount
// renderer.
//
// A Descriptor is a passive record naming one node to create: its tag, an
// ordered set of attributes, and its inner content. Content is markup, not
// text: the renderer hands it to the document's markup parser unescaped.
//
//	d, err := element.New("a",
//	    element.Href("http://example.com"),
//	    element.Target("_blank"),
//	    element.Content("Click"),
//	)
//
// Descriptors can also be written as literals and checked with Validate:
//
//	d := &element.Descriptor{
//	    Tag:     "a",
//	    Attrs:   element.Attrs{{Key: "href", Value: "/"}},
//	    Content: "Home",
//	}
//
// # Reserved Content Key
//
// An attribute whose key is ContentKey ("children") is never applied as an
// attribute. This keeps descriptors decoded from the classic
// {type, props, children} element shape from echoing their content into the
// attribute list.
package element
