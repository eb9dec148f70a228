package middleware

import (
	"context"

	"github.com/vango-dev/mount/pkg/render"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for mount.
const defaultTracerName = "mount"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "mount").
	TracerName string

	// TracerProvider supplies the tracer. If nil, the global provider is used.
	TracerProvider trace.TracerProvider

	// IncludeContent records the descriptor content as a span attribute.
	// Content may be large or sensitive - disabled by default.
	IncludeContent bool

	// AttributeExtractor extracts custom attributes from the call.
	AttributeExtractor func(call *render.Call) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithIncludeContent enables recording descriptor content on spans.
func WithIncludeContent(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeContent = include
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(call *render.Call) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// OpenTelemetry creates middleware that traces every mount.
//
// Each mount gets a span named "mount <tag>", with the tag reduced to the
// same label the metrics use ("custom", "invalid"). The span carries the raw
// tag, attribute count, content length, content mode and container tag. Errors are recorded
// with their mount error code. The span context replaces the call context,
// so later middleware can reach it with SpanFromCall.
func OpenTelemetry(opts ...OTelOption) render.Middleware {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}

	tp := config.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	tracer := tp.Tracer(config.TracerName)

	return render.MiddlewareFunc(func(call *render.Call, next func() error) error {
		attrs := []attribute.KeyValue{
			attribute.String("mount.tag", call.Tag()),
			attribute.String("mount.mode", call.Mode.String()),
		}
		if d := call.Descriptor; d != nil {
			attrs = append(attrs,
				attribute.Int("mount.attributes", len(d.AppliedAttrs())),
				attribute.Int("mount.content_length", len(d.Content)),
			)
			if config.IncludeContent {
				attrs = append(attrs, attribute.String("mount.content", d.Content))
			}
		}
		if call.Container != nil {
			attrs = append(attrs, attribute.String("mount.container", call.Container.Tag()))
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(call)...)
		}

		ctx, span := tracer.Start(call.Context(), "mount "+metricTag(call),
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrs...),
		)
		defer span.End()
		call.SetContext(ctx)

		err := next()

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("mount.error_code", errorCode(err)))
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}

		return err
	})
}

// SpanFromCall returns the span started for call, or a non-recording span.
func SpanFromCall(call *render.Call) trace.Span {
	return trace.SpanFromContext(call.Context())
}

// TraceContext returns the call context for propagation to other services.
func TraceContext(call *render.Call) context.Context {
	return call.Context()
}
