package errors

import "sort"

// Registered error codes.
const (
	CodeInvalidTag        = "M001"
	CodeDetachedContainer = "M002"
	CodeInvalidAttribute  = "M003"
	CodeDuplicateAttr     = "M004"
	CodeBadDescriptor     = "M010"
	CodeNoContainer       = "M020"
	CodeDocument          = "M021"
	CodeInvalidSelector   = "M022"
	CodePublishFailed     = "M040"
	CodePublishDisabled   = "M041"
	CodeConfigInvalid     = "M120"
	CodeConfigRange       = "M122"
	CodeConfigNotFound    = "M141"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Suggestion string
	DocURL     string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Descriptor Errors (M001-M019)
	// ============================================

	CodeInvalidTag: {
		Category:   CategoryDescriptor,
		Message:    "Invalid tag",
		Suggestion: "Use a standard HTML tag or a custom element name containing a hyphen",
		DocURL:     "https://vango.dev/docs/mount/errors/M001",
	},
	CodeInvalidAttribute: {
		Category:   CategoryDescriptor,
		Message:    "Invalid attribute name",
		Suggestion: "Attribute names cannot be empty or contain whitespace, quotes, '>', '/' or '='",
		DocURL:     "https://vango.dev/docs/mount/errors/M003",
	},
	CodeDuplicateAttr: {
		Category:   CategoryDescriptor,
		Message:    "Duplicate attribute",
		Suggestion: "Each attribute name may appear once per descriptor",
		DocURL:     "https://vango.dev/docs/mount/errors/M004",
	},
	CodeBadDescriptor: {
		Category:   CategoryDescriptor,
		Message:    "Descriptor could not be decoded",
		Suggestion: `Descriptors look like {"tag":"a","attributes":{"href":"/"},"content":"Home"}`,
		DocURL:     "https://vango.dev/docs/mount/errors/M010",
	},

	// ============================================
	// Mount Errors (M002, M020-M039)
	// ============================================

	CodeDetachedContainer: {
		Category:   CategoryMount,
		Message:    "Detached container",
		Suggestion: "Mount into an element that is attached to a document and can hold children",
		DocURL:     "https://vango.dev/docs/mount/errors/M002",
	},
	CodeNoContainer: {
		Category:   CategoryMount,
		Message:    "Container not found",
		Suggestion: "Check the container selector, e.g. #root",
		DocURL:     "https://vango.dev/docs/mount/errors/M020",
	},
	CodeDocument: {
		Category: CategoryMount,
		Message:  "Document could not be read or written",
		DocURL:   "https://vango.dev/docs/mount/errors/M021",
	},
	CodeInvalidSelector: {
		Category:   CategoryMount,
		Message:    "Invalid container selector",
		Suggestion: "Use a CSS selector such as #root, main > div or [data-slot]",
		DocURL:     "https://vango.dev/docs/mount/errors/M022",
	},

	// ============================================
	// Publish Errors (M040-M059)
	// ============================================

	CodePublishFailed: {
		Category: CategoryPublish,
		Message:  "Publishing the document failed",
		DocURL:   "https://vango.dev/docs/mount/errors/M040",
	},
	CodePublishDisabled: {
		Category:   CategoryPublish,
		Message:    "Publishing is not configured",
		Suggestion: `Set "publish.bucket" in mount.json or pass --dir`,
		DocURL:     "https://vango.dev/docs/mount/errors/M041",
	},

	// ============================================
	// Config Errors (M120-M149)
	// ============================================

	CodeConfigInvalid: {
		Category:   CategoryConfig,
		Message:    "Invalid configuration",
		Suggestion: "Check that mount.json is valid JSON",
		DocURL:     "https://vango.dev/docs/mount/errors/M120",
	},
	CodeConfigRange: {
		Category: CategoryConfig,
		Message:  "Configuration value out of range",
		DocURL:   "https://vango.dev/docs/mount/errors/M122",
	},
	CodeConfigNotFound: {
		Category:   CategoryConfig,
		Message:    "Configuration file not found",
		Suggestion: "Run 'mount init' to create mount.json",
		DocURL:     "https://vango.dev/docs/mount/errors/M141",
	},
}

// GetAllCodes returns all registered error codes in ascending order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
