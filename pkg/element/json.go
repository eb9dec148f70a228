package element

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/vango-dev/mount/internal/errors"
)

// MarshalJSON encodes attributes as a JSON object in insertion order.
func (a Attrs) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, attr := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(attr.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(attr.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping key order. String, number and
// boolean values are accepted; numbers and booleans keep their JSON text.
func (a *Attrs) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*a = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("attributes must be a JSON object")
	}

	var out Attrs
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key := tok.(string)

		tok, err = dec.Token()
		if err != nil {
			return err
		}
		var value string
		switch v := tok.(type) {
		case string:
			value = v
		case json.Number:
			value = v.String()
		case bool:
			value = strconv.FormatBool(v)
		default:
			return fmt.Errorf("attribute %q must be a string, number or boolean", key)
		}
		out = out.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*a = out
	return nil
}

// descriptorJSON accepts both the native field names and the classic
// {type, props, children} element shape.
type descriptorJSON struct {
	Tag        string `json:"tag"`
	Attributes Attrs  `json:"attributes,omitempty"`
	Content    string `json:"content,omitempty"`

	Type     string `json:"type,omitempty"`
	Props    Attrs  `json:"props,omitempty"`
	Children string `json:"children,omitempty"`
}

// MarshalJSON encodes the descriptor using the native field names.
func (d Descriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Tag        string `json:"tag"`
		Attributes Attrs  `json:"attributes"`
		Content    string `json:"content"`
	}{d.Tag, d.Attrs, d.Content})
}

// UnmarshalJSON decodes either descriptor shape. It does not validate.
func (d *Descriptor) UnmarshalJSON(data []byte) error {
	var raw descriptorJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	d.Tag = raw.Tag
	if d.Tag == "" {
		d.Tag = raw.Type
	}
	d.Attrs = raw.Attributes
	for _, attr := range raw.Props {
		d.Attrs = d.Attrs.Set(attr.Key, attr.Value)
	}
	d.Content = raw.Content
	if d.Content == "" {
		d.Content = raw.Children
	}
	return nil
}

// Decode reads one JSON descriptor from r and validates it.
func Decode(r io.Reader) (*Descriptor, error) {
	var d Descriptor
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, errors.New(errors.CodeBadDescriptor).Wrap(err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}
