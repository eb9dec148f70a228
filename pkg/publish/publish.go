package publish

import (
	"bytes"
	"context"
	"log/slog"
	"path"
	"strings"

	"github.com/vango-dev/mount/internal/errors"
	"github.com/vango-dev/mount/pkg/dom"
)

// ContentTypeHTML is the content type documents are stored with.
const ContentTypeHTML = "text/html; charset=utf-8"

// Store is a destination for published documents.
type Store interface {
	// Put stores body under key and returns where it can be found.
	Put(ctx context.Context, key, contentType string, body []byte) (location string, err error)
}

// Result describes a published document.
type Result struct {
	Key         string
	Location    string
	Size        int
	ContentType string
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithLogger sets the publisher's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// Publisher renders documents and uploads them to a Store.
type Publisher struct {
	store  Store
	logger *slog.Logger
}

// New creates a Publisher writing to store.
func New(store Store, opts ...Option) *Publisher {
	p := &Publisher{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish renders doc and stores it under name.
func (p *Publisher) Publish(ctx context.Context, name string, doc *dom.Document) (*Result, error) {
	if p.store == nil {
		return nil, errors.New(errors.CodePublishDisabled)
	}
	if doc == nil {
		return nil, errors.New(errors.CodePublishFailed).WithDetail("document is nil")
	}
	key, err := cleanKey(name)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return nil, errors.New(errors.CodeDocument).Wrap(err)
	}

	location, err := p.store.Put(ctx, key, ContentTypeHTML, buf.Bytes())
	if err != nil {
		p.logger.Warn("publish failed", "key", key, "error", err)
		return nil, errors.FromError(err, errors.CodePublishFailed)
	}

	p.logger.Info("published", "key", key, "location", location, "bytes", buf.Len())
	return &Result{
		Key:         key,
		Location:    location,
		Size:        buf.Len(),
		ContentType: ContentTypeHTML,
	}, nil
}

// cleanKey normalizes a document name into a relative slash path.
func cleanKey(name string) (string, error) {
	name = strings.TrimLeft(strings.TrimSpace(name), "/")
	if name == "" {
		return "", errors.New(errors.CodePublishFailed).WithDetail("document name is empty")
	}
	key := path.Clean(name)
	if key == "." || key == ".." || strings.HasPrefix(key, "../") {
		return "", errors.New(errors.CodePublishFailed).
			WithDetailf("document name %q escapes the destination", name)
	}
	return key, nil
}
