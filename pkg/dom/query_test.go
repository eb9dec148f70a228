package dom

import (
	"errors"
	"testing"
)

const queryHTML = `<!DOCTYPE html><html><body>
<div id="app" class="shell main">
  <nav><a class="link" href="/">Home</a></nav>
  <section id="root" data-slot="main"><p class="lead">one</p><p>two</p></section>
  <main><div class="child"></div><aside><div class="nested"></div></aside></main>
</div>
</body></html>`

func TestQuerySelector(t *testing.T) {
	doc, err := ParseString(queryHTML)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		sel       string
		wantTag   string
		wantID    string
		wantClass string
	}{
		{"#root", "section", "root", ""},
		{"section#root", "section", "root", ""},
		{"div.shell", "div", "app", "shell main"},
		{".shell.main", "div", "app", "shell main"},
		{"nav a", "a", "", "link"},
		{"#app p.lead", "p", "", "lead"},
		{"BODY", "body", "", ""},
		{"main > div", "div", "", "child"},
		{"aside > div", "div", "", "nested"},
		{"[data-slot]", "section", "root", ""},
		{`[data-slot="main"] p:last-child`, "p", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.sel, func(t *testing.T) {
			n, err := doc.QuerySelector(tt.sel)
			if err != nil {
				t.Fatalf("QuerySelector(%q) error: %v", tt.sel, err)
			}
			if n == nil {
				t.Fatalf("QuerySelector(%q) = nil", tt.sel)
			}
			if n.Tag() != tt.wantTag {
				t.Errorf("tag = %q, want %q", n.Tag(), tt.wantTag)
			}
			if id, _ := n.GetAttribute("id"); id != tt.wantID {
				t.Errorf("id = %q, want %q", id, tt.wantID)
			}
			if class, _ := n.GetAttribute("class"); class != tt.wantClass {
				t.Errorf("class = %q, want %q", class, tt.wantClass)
			}
		})
	}
}

func TestQuerySelector_NoMatch(t *testing.T) {
	doc, _ := ParseString(queryHTML)

	for _, sel := range []string{"#missing", ".nope", "nav p", "#a#b", "main > aside > p"} {
		n, err := doc.QuerySelector(sel)
		if err != nil {
			t.Errorf("QuerySelector(%q) error: %v", sel, err)
		}
		if n != nil {
			t.Errorf("QuerySelector(%q) = <%s>, want nil", sel, n.Tag())
		}
	}
}

func TestQuerySelector_Invalid(t *testing.T) {
	doc, _ := ParseString(queryHTML)

	for _, sel := range []string{"", "#", "a..b", "div >", "[data-slot"} {
		n, err := doc.QuerySelector(sel)
		if !errors.Is(err, ErrInvalidSelector) {
			t.Errorf("QuerySelector(%q) error = %v, want ErrInvalidSelector", sel, err)
		}
		if n != nil {
			t.Errorf("QuerySelector(%q) returned a node", sel)
		}
	}

	if _, err := doc.QuerySelectorAll("::"); !errors.Is(err, ErrInvalidSelector) {
		t.Errorf("QuerySelectorAll error = %v, want ErrInvalidSelector", err)
	}
}

func TestQuerySelectorAll(t *testing.T) {
	doc, _ := ParseString(queryHTML)

	ps, err := doc.QuerySelectorAll("#root p")
	if err != nil {
		t.Fatal(err)
	}
	if len(ps) != 2 {
		t.Fatalf("got %d matches, want 2", len(ps))
	}
	if ps[0].TextContent() != "one" || ps[1].TextContent() != "two" {
		t.Errorf("matches out of document order: %q, %q", ps[0].TextContent(), ps[1].TextContent())
	}
}

func TestNode_QuerySelector(t *testing.T) {
	doc, _ := ParseString(queryHTML)
	nav, err := doc.QuerySelector("nav")
	if err != nil || nav == nil {
		t.Fatalf("QuerySelector(nav) = %v, %v", nav, err)
	}

	if a, _ := nav.QuerySelector("a.link"); a == nil {
		t.Error("expected nav to contain a.link")
	}
	if p, _ := nav.QuerySelector("p"); p != nil {
		t.Error("nav should not contain p")
	}
	if _, err := nav.QuerySelector("a["); !errors.Is(err, ErrInvalidSelector) {
		t.Errorf("error = %v, want ErrInvalidSelector", err)
	}
}
