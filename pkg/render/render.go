package render

import (
	"github.com/vango-dev/mount/internal/errors"
	"github.com/vango-dev/mount/pkg/dom"
	"github.com/vango-dev/mount/pkg/element"
)

// ContentMode selects how descriptor content is assigned.
type ContentMode uint8

const (
	ContentMarkup ContentMode = iota // Parsed as markup (innerHTML)
	ContentText                      // Escaped text (textContent)
)

// String returns the string representation of the ContentMode.
func (m ContentMode) String() string {
	switch m {
	case ContentMarkup:
		return "markup"
	case ContentText:
		return "text"
	default:
		return "unknown"
	}
}

// ParseContentMode parses "markup" or "text". The empty string is markup.
func ParseContentMode(s string) (ContentMode, bool) {
	switch s {
	case "", "markup":
		return ContentMarkup, true
	case "text":
		return ContentText, true
	default:
		return ContentMarkup, false
	}
}

// Render mounts d into container: it creates the element, sets its content
// as markup, applies its attributes and appends it as the container's last
// child.
func Render(d *element.Descriptor, container *dom.Node) error {
	_, err := mount(d, container, ContentMarkup)
	return err
}

// mount builds the node fully before touching the container, so a failure
// never leaves a partial child behind.
func mount(d *element.Descriptor, container *dom.Node, mode ContentMode) (*dom.Node, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if err := checkContainer(container); err != nil {
		return nil, err
	}

	node, err := container.OwnerDocument().CreateElement(d.Tag)
	if err != nil {
		return nil, hostError(err, d.Tag)
	}

	switch mode {
	case ContentText:
		err = node.SetTextContent(d.Content)
	default:
		err = node.SetInnerHTML(d.Content)
	}
	if err != nil {
		return nil, hostError(err, d.Tag)
	}

	for _, attr := range d.Attrs {
		if attr.Key == element.ContentKey {
			continue
		}
		if err := node.SetAttribute(attr.Key, attr.Value); err != nil {
			return nil, hostError(err, d.Tag)
		}
	}

	if err := container.AppendChild(node); err != nil {
		return nil, errors.New(errors.CodeDetachedContainer).Wrap(err)
	}
	return node, nil
}

// checkContainer reports ErrDetachedContainer for anything that is not an
// attached element able to hold children.
func checkContainer(c *dom.Node) error {
	switch {
	case c == nil:
		return errors.New(errors.CodeDetachedContainer).WithDetail("container is nil")
	case !c.IsElement():
		return errors.New(errors.CodeDetachedContainer).WithDetail("container is not an element")
	case c.OwnerDocument() == nil || !c.IsConnected():
		return errors.New(errors.CodeDetachedContainer).
			WithDetailf("<%s> is not attached to a document", c.Tag())
	case !c.AcceptsChildren():
		return errors.New(errors.CodeDetachedContainer).
			WithDetailf("<%s> cannot hold children", c.Tag())
	}
	return nil
}
