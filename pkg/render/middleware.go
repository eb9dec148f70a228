package render

import (
	"context"

	"github.com/vango-dev/mount/pkg/dom"
	"github.com/vango-dev/mount/pkg/element"
)

// Call describes one mount passing through the middleware chain.
type Call struct {
	ctx context.Context

	// Descriptor is the element being mounted.
	Descriptor *element.Descriptor

	// Container receives the new node.
	Container *dom.Node

	// Mode is the content assignment mode.
	Mode ContentMode

	// Node is the mounted node. It is nil until the mount succeeds.
	Node *dom.Node
}

// Context returns the call's context.
func (c *Call) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// SetContext replaces the call's context, e.g. with one carrying a span.
func (c *Call) SetContext(ctx context.Context) {
	c.ctx = ctx
}

// Tag returns the descriptor's tag, or "" when there is no descriptor.
func (c *Call) Tag() string {
	if c.Descriptor == nil {
		return ""
	}
	return c.Descriptor.Tag
}

// Middleware wraps a mount.
type Middleware interface {
	Handle(call *Call, next func() error) error
}

// MiddlewareFunc adapts a function to Middleware.
type MiddlewareFunc func(call *Call, next func() error) error

// Handle implements Middleware.
func (f MiddlewareFunc) Handle(call *Call, next func() error) error {
	return f(call, next)
}

// ComposeMiddleware builds a handler chain from middleware and a final handler.
// Middleware is executed in order (first to last), with the handler at the end.
func ComposeMiddleware(call *Call, mw []Middleware, handler func() error) error {
	if len(mw) == 0 {
		return handler()
	}

	chain := handler
	for i := len(mw) - 1; i >= 0; i-- {
		m := mw[i]
		next := chain
		chain = func() error {
			return m.Handle(call, next)
		}
	}

	return chain()
}

// Chain creates a middleware that combines multiple middleware in order.
func Chain(middleware ...Middleware) Middleware {
	return MiddlewareFunc(func(call *Call, next func() error) error {
		return ComposeMiddleware(call, middleware, next)
	})
}
