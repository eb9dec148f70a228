// Package mount provides the public API for mounting described elements into
// HTML documents.
//
// This is the recommended import for most applications:
//
//	import "github.com/vango-dev/mount"
//
// Usage:
//
//	doc := mount.BlankDocument()
//	link := mount.MustElement("a",
//	    mount.Attr("href", "http://example.com"),
//	    mount.Attr("target", "_blank"),
//	    mount.Content("Click"),
//	)
//	if err := mount.Render(link, doc.GetElementByID("root")); err != nil {
//	    ...
//	}
package mount

import (
	"github.com/vango-dev/mount/pkg/dom"
	"github.com/vango-dev/mount/pkg/element"
	"github.com/vango-dev/mount/pkg/render"
)

// =============================================================================
// Descriptors (re-export from pkg/element)
// =============================================================================

// Descriptor describes one element: tag, ordered attributes and content.
type Descriptor = element.Descriptor

// Option configures a Descriptor built with Element.
type Option = element.Option

// ContentKey is the attribute key that is never applied as an attribute.
const ContentKey = element.ContentKey

// Element builds and validates a descriptor.
func Element(tag string, opts ...Option) (*Descriptor, error) {
	return element.New(tag, opts...)
}

// MustElement is like Element but panics on an invalid descriptor.
func MustElement(tag string, opts ...Option) *Descriptor {
	return element.MustNew(tag, opts...)
}

// Attr sets one attribute.
var Attr = element.WithAttr

// Content sets the descriptor's markup content.
var Content = element.Content

// =============================================================================
// Documents (re-export from pkg/dom)
// =============================================================================

// Document is a live HTML document tree.
type Document = dom.Document

// Node is an element or text node inside a Document.
type Node = dom.Node

// ParseDocument parses a complete HTML document.
var ParseDocument = dom.ParseString

// BlankDocument returns a document with an empty <div id="root">.
var BlankDocument = dom.Blank

// =============================================================================
// Rendering (re-export from pkg/render)
// =============================================================================

// Renderer mounts descriptors with logging and middleware.
type Renderer = render.Renderer

// RendererConfig configures NewRenderer.
type RendererConfig = render.Config

// Middleware wraps a mount.
type Middleware = render.Middleware

// Content modes.
const (
	ContentMarkup = render.ContentMarkup
	ContentText   = render.ContentText
)

// Errors returned by Render and Renderer.Mount, for use with errors.Is.
var (
	ErrInvalidTag        = render.ErrInvalidTag
	ErrDetachedContainer = render.ErrDetachedContainer
	ErrInvalidAttribute  = render.ErrInvalidAttribute
)

// Render creates the element d describes and appends it to container.
func Render(d *Descriptor, container *Node) error {
	return render.Render(d, container)
}

// NewRenderer creates a Renderer.
func NewRenderer(config RendererConfig) *Renderer {
	return render.NewRenderer(config)
}

// ErrorCode returns the mount error code carried by err, or "".
var ErrorCode = render.ErrorCode
