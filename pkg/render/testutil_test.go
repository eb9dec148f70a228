package render

import (
	"testing"

	"github.com/vango-dev/mount/pkg/dom"
)

// newRoot returns a blank document's #root container.
func newRoot(t *testing.T) (*dom.Document, *dom.Node) {
	t.Helper()
	doc := dom.Blank()
	root := doc.GetElementByID("root")
	if root == nil {
		t.Fatal("blank document has no #root")
	}
	return doc, root
}

// attrMap returns n's attributes as a map.
func attrMap(n *dom.Node) map[string]string {
	m := make(map[string]string)
	for _, a := range n.Attributes() {
		m[a.Name] = a.Value
	}
	return m
}
