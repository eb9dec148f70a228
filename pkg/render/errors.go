package render

import (
	stderrors "errors"

	"github.com/vango-dev/mount/internal/errors"
	"github.com/vango-dev/mount/pkg/dom"
)

// Sentinel errors. Errors returned by Render match these under errors.Is.
var (
	ErrInvalidTag        error = errors.New(errors.CodeInvalidTag)
	ErrDetachedContainer error = errors.New(errors.CodeDetachedContainer)
	ErrInvalidAttribute  error = errors.New(errors.CodeInvalidAttribute)
)

// ErrorCode returns the mount error code carried by err (e.g. "M001"), or "".
func ErrorCode(err error) string {
	return errors.Code(err)
}

// hostError maps a dom failure onto a coded error.
func hostError(err error, tag string) error {
	switch {
	case stderrors.Is(err, dom.ErrUnknownTag):
		return errors.New(errors.CodeInvalidTag).
			WithDetailf("%q is not an element the document can create", tag).
			Wrap(err)
	case stderrors.Is(err, dom.ErrInvalidAttrName):
		return errors.New(errors.CodeInvalidAttribute).Wrap(err)
	default:
		return errors.New(errors.CodeDetachedContainer).Wrap(err)
	}
}
