package render

import (
	"context"
	"log/slog"

	"github.com/vango-dev/mount/pkg/dom"
	"github.com/vango-dev/mount/pkg/element"
)

// Config configures a Renderer.
type Config struct {
	// Mode selects markup (default) or text content assignment.
	Mode ContentMode

	// Logger receives mount logs. If nil, slog.Default() is used.
	Logger *slog.Logger

	// Middleware runs around every mount, first to last.
	Middleware []Middleware
}

// Renderer mounts descriptors with logging and middleware. It holds no
// per-mount state and may be reused.
type Renderer struct {
	mode       ContentMode
	logger     *slog.Logger
	middleware []Middleware
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config Config) *Renderer {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		mode:       config.Mode,
		logger:     logger,
		middleware: config.Middleware,
	}
}

// Mode returns the renderer's content mode.
func (r *Renderer) Mode() ContentMode {
	return r.mode
}

// Use appends middleware to the chain.
func (r *Renderer) Use(mw ...Middleware) {
	r.middleware = append(r.middleware, mw...)
}

// Mount mounts d into container and returns the new node. It has the same
// semantics and errors as Render; ctx is passed to middleware only.
func (r *Renderer) Mount(ctx context.Context, d *element.Descriptor, container *dom.Node) (*dom.Node, error) {
	call := &Call{
		ctx:        ctx,
		Descriptor: d,
		Container:  container,
		Mode:       r.mode,
	}

	err := ComposeMiddleware(call, r.middleware, func() error {
		node, err := mount(d, container, r.mode)
		call.Node = node
		return err
	})
	if err != nil {
		r.logger.Warn("mount failed",
			"tag", call.Tag(),
			"code", ErrorCode(err),
			"error", err,
		)
		return nil, err
	}

	r.logger.Debug("mounted",
		"tag", call.Tag(),
		"attrs", len(d.AppliedAttrs()),
		"container", container.Tag(),
		"mode", r.mode.String(),
	)
	return call.Node, nil
}
