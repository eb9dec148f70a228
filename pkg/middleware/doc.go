// Package middleware provides observability middleware for the mount
// renderer.
//
//	r := render.NewRenderer(render.Config{
//	    Middleware: []render.Middleware{
//	        middleware.Prometheus(middleware.WithNamespace("myapp")),
//	        middleware.OpenTelemetry(middleware.WithTracerName("myapp")),
//	    },
//	})
//
// Prometheus records mount counts, durations and error codes. OpenTelemetry
// wraps each mount in a span and stores the span context on the call.
package middleware
