// Package errors provides coded, actionable errors for mount.
//
// Every failure the renderer, the host document layer, the CLI or the
// preview server reports is an *Error carrying:
//   - A stable code (e.g. "M001") registered in the code registry
//   - A category (descriptor, mount, publish, config, cli)
//   - A short message and a longer detail
//   - An optional suggestion and example
//
// Errors compare by code, so a freshly built error matches a sentinel with
// the same code under errors.Is:
//
//	var ErrInvalidTag = errors.New(errors.CodeInvalidTag)
//
//	err := errors.New(errors.CodeInvalidTag).WithDetail(`"blink2" is not an element`)
//	stderrors.Is(err, ErrInvalidTag) // true
//
// # Terminal Output
//
//	fmt.Fprint(os.Stderr, err.Format())
//	// ERROR M001: Invalid tag
//	//
//	//   "blink2" is not an element
//	//
//	//   Hint: Use a standard HTML tag or a custom element name containing a hyphen
package errors
