package element

import (
	"strings"

	"github.com/vango-dev/mount/internal/errors"
)

// ContentKey is the reserved attribute key that denotes content.
const ContentKey = "children"

// Descriptor describes a single element to mount.
type Descriptor struct {
	Tag     string // Element tag name (e.g., "a")
	Attrs   Attrs  // Attributes in insertion order
	Content string // Inner content, interpreted as markup
}

// Option configures a Descriptor built with New.
type Option func(*Descriptor)

// New builds a descriptor for tag and validates it.
func New(tag string, opts ...Option) (*Descriptor, error) {
	d := &Descriptor{Tag: tag}
	for _, opt := range opts {
		opt(d)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// MustNew is like New but panics on an invalid descriptor.
func MustNew(tag string, opts ...Option) *Descriptor {
	d, err := New(tag, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// Content sets the descriptor's inner markup.
func Content(markup string) Option {
	return func(d *Descriptor) {
		d.Content = markup
	}
}

// Validate checks the descriptor's shape. It does not consult a document, so
// a syntactically valid tag may still be rejected by the host when mounted.
//
// Attribute keys that differ only in case (href and HREF) are rejected with
// M004. A browser would silently let the later value win; Validate reports
// the collision instead, as an extra failure beyond the ones a host raises.
func (d *Descriptor) Validate() error {
	if d == nil {
		return errors.New(errors.CodeInvalidTag).WithDetail("descriptor is nil")
	}
	if !ValidTagName(d.Tag) {
		return errors.New(errors.CodeInvalidTag).WithDetailf("%q is not a valid tag name", d.Tag)
	}

	seen := make(map[string]struct{}, len(d.Attrs))
	for _, a := range d.Attrs {
		if !ValidAttrName(a.Key) {
			return errors.New(errors.CodeInvalidAttribute).WithDetailf("%q on <%s>", a.Key, d.Tag)
		}
		key := strings.ToLower(a.Key)
		if _, dup := seen[key]; dup {
			return errors.New(errors.CodeDuplicateAttr).WithDetailf("%q appears more than once on <%s>", a.Key, d.Tag)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// AppliedAttrs returns the attributes the renderer assigns, in order. The
// reserved content key is omitted.
func (d *Descriptor) AppliedAttrs() Attrs {
	if d == nil {
		return nil
	}
	out := make(Attrs, 0, len(d.Attrs))
	for _, a := range d.Attrs {
		if a.Key == ContentKey {
			continue
		}
		out = append(out, a)
	}
	return out
}

// ValidTagName reports whether name is syntactically usable as a tag: an
// ASCII letter followed by characters that cannot end or break a tag.
func ValidTagName(name string) bool {
	if name == "" || !isASCIILetter(name[0]) {
		return false
	}
	for i := 1; i < len(name); i++ {
		switch c := name[i]; {
		case c <= ' ', c == '/', c == '>', c == '<', c == 0x7f:
			return false
		}
	}
	return true
}

// ValidAttrName reports whether name can be used as an attribute name.
func ValidAttrName(name string) bool {
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

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
