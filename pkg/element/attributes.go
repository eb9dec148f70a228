package element

// Attr is a single attribute assignment.
type Attr struct {
	Key   string
	Value string
}

// Attrs is an ordered attribute mapping. Keys are unique.
type Attrs []Attr

// Get returns the value for key.
func (a Attrs) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// Set assigns key, keeping its original position if already present.
func (a Attrs) Set(key, value string) Attrs {
	for i := range a {
		if a[i].Key == key {
			a[i].Value = value
			return a
		}
	}
	return append(a, Attr{Key: key, Value: value})
}

// Keys returns the attribute names in order.
func (a Attrs) Keys() []string {
	keys := make([]string, len(a))
	for i, attr := range a {
		keys[i] = attr.Key
	}
	return keys
}

// Map returns the attributes as an unordered map.
func (a Attrs) Map() map[string]string {
	m := make(map[string]string, len(a))
	for _, attr := range a {
		m[attr.Key] = attr.Value
	}
	return m
}

// WithAttr sets one attribute on the descriptor.
func WithAttr(key, value string) Option {
	return func(d *Descriptor) {
		d.Attrs = d.Attrs.Set(key, value)
	}
}

// WithAttrs appends attrs in order.
func WithAttrs(attrs ...Attr) Option {
	return func(d *Descriptor) {
		for _, attr := range attrs {
			d.Attrs = d.Attrs.Set(attr.Key, attr.Value)
		}
	}
}

// Identity attributes

// ID sets the id attribute.
func ID(id string) Option { return WithAttr("id", id) }

// Class sets the class attribute.
func Class(class string) Option { return WithAttr("class", class) }

// Link attributes

// Href sets the href attribute.
func Href(url string) Option { return WithAttr("href", url) }

// Target sets the target attribute (e.g., "_blank").
func Target(target string) Option { return WithAttr("target", target) }

// Rel sets the rel attribute.
func Rel(rel string) Option { return WithAttr("rel", rel) }

// Data sets a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Option { return WithAttr("data-"+key, value) }
