// Package render mounts element descriptors into a live document.
//
// Render is the whole contract: it creates the node a descriptor names,
// sets its content as markup, copies its attributes and appends it to the
// container the caller supplies.
//
//	doc := dom.Blank()
//	d := element.MustNew("a",
//	    element.Href("http://example.com"),
//	    element.Target("_blank"),
//	    element.Content("Click"),
//	)
//	err := render.Render(d, doc.GetElementByID("root"))
//
// # Errors
//
// Render reports ErrInvalidTag when the descriptor's tag names no element
// kind the document can construct, and ErrDetachedContainer when the
// container is not an attached element able to hold children. On any error
// the container is left unchanged.
//
// # Repeated Calls
//
// Render does not reconcile. Mounting the same descriptor twice appends two
// sibling nodes; callers that retry must remove the first attempt.
//
// # Content
//
// Content is parsed as markup and is not escaped. Use a Renderer with
// ContentText to assign content as plain text instead.
//
// # Renderer
//
// Renderer adds logging and a middleware chain around each mount. The
// middleware package provides Prometheus and OpenTelemetry middleware:
//
//	r := render.NewRenderer(render.Config{
//	    Logger: slog.Default(),
//	    Middleware: []render.Middleware{
//	        middleware.Prometheus(),
//	        middleware.OpenTelemetry(),
//	    },
//	})
//	node, err := r.Mount(ctx, d, container)
package render
