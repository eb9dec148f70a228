package dom

import "strings"

// knownElements lists the element kinds CreateElement constructs.
var knownElements = map[string]bool{
	// Document metadata and sectioning
	"html": true, "head": true, "title": true, "base": true, "link": true,
	"meta": true, "style": true, "body": true, "article": true,
	"section": true, "nav": true, "aside": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "h5": true, "h6": true, "hgroup": true,
	"header": true, "footer": true, "address": true, "main": true,
	"search": true,

	// Grouping content
	"p": true, "hr": true, "pre": true, "blockquote": true, "ol": true,
	"ul": true, "menu": true, "li": true, "dl": true, "dt": true, "dd": true,
	"figure": true, "figcaption": true, "div": true,

	// Text-level semantics
	"a": true, "em": true, "strong": true, "small": true, "s": true,
	"cite": true, "q": true, "dfn": true, "abbr": true, "ruby": true,
	"rt": true, "rp": true, "data": true, "time": true, "code": true,
	"var": true, "samp": true, "kbd": true, "sub": true, "sup": true,
	"i": true, "b": true, "u": true, "mark": true, "bdi": true, "bdo": true,
	"span": true, "br": true, "wbr": true,

	// Edits
	"ins": true, "del": true,

	// Embedded content
	"picture": true, "source": true, "img": true, "iframe": true,
	"embed": true, "object": true, "video": true, "audio": true,
	"track": true, "map": true, "area": true, "svg": true, "math": true,
	"canvas": true,

	// Tables
	"table": true, "caption": true, "colgroup": true, "col": true,
	"tbody": true, "thead": true, "tfoot": true, "tr": true, "td": true,
	"th": true,

	// Forms
	"form": true, "label": true, "input": true, "button": true,
	"select": true, "datalist": true, "optgroup": true, "option": true,
	"textarea": true, "output": true, "progress": true, "meter": true,
	"fieldset": true, "legend": true,

	// Interactive and scripting
	"details": true, "summary": true, "dialog": true, "script": true,
	"noscript": true, "template": true, "slot": true,
}

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"keygen": true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// reservedCustomNames are hyphenated names that are not valid custom elements.
var reservedCustomNames = map[string]bool{
	"annotation-xml":   true,
	"color-profile":    true,
	"font-face":        true,
	"font-face-src":    true,
	"font-face-uri":    true,
	"font-face-format": true,
	"font-face-name":   true,
	"missing-glyph":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[strings.ToLower(tag)]
}

// IsKnownElement reports whether CreateElement can construct tag.
func IsKnownElement(tag string) bool {
	tag = strings.ToLower(tag)
	return knownElements[tag] || isCustomElementName(tag)
}

// isCustomElementName reports whether name is a valid custom element name.
func isCustomElementName(name string) bool {
	if name == "" || name[0] < 'a' || name[0] > 'z' {
		return false
	}
	if !strings.Contains(name, "-") || reservedCustomNames[name] {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		case c == '-', c == '.', c == '_':
		case c >= 0x80:
		default:
			return false
		}
	}
	return true
}
