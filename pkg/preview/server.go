package preview

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/mount/internal/errors"
	"github.com/vango-dev/mount/pkg/dom"
	"github.com/vango-dev/mount/pkg/element"
	"github.com/vango-dev/mount/pkg/render"
)

// DefaultContainer is the selector used when neither the config nor the
// request names one.
const DefaultContainer = "#root"

// maxDescriptorBytes bounds POST /mount bodies.
const maxDescriptorBytes = 1 << 20

// Config configures a preview Server.
type Config struct {
	// Document is the live document. If nil, dom.Blank() is used.
	Document *dom.Document

	// Container is the default container selector.
	// Default: "#root"
	Container string

	// Renderer mounts descriptors. If nil, a markup renderer using Logger
	// is created.
	Renderer *render.Renderer

	// Gatherer backs GET /metrics. If nil, prometheus.DefaultGatherer is used.
	Gatherer prometheus.Gatherer

	// Logger receives request and mount logs. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Server holds a document and serves it over HTTP.
type Server struct {
	mu        sync.Mutex
	doc       *dom.Document
	container string
	renderer  *render.Renderer
	hub       *Hub
	router    chi.Router
	logger    *slog.Logger
}

// New creates a Server.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	doc := cfg.Document
	if doc == nil {
		doc = dom.Blank()
	}
	container := cfg.Container
	if container == "" {
		container = DefaultContainer
	}
	renderer := cfg.Renderer
	if renderer == nil {
		renderer = render.NewRenderer(render.Config{Logger: logger})
	}
	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	s := &Server{
		doc:       doc,
		container: container,
		renderer:  renderer,
		hub:       NewHub(),
		logger:    logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/document", s.handleDocument)
	r.Post("/mount", s.handleMount)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Handle("/_mount/live", s.hub)

	s.router = r
	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Hub returns the live client hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Mount mounts d into the element matched by selector (or the default
// container when selector is empty) and returns the new node's markup.
func (s *Server) Mount(ctx context.Context, d *element.Descriptor, selector string) (string, error) {
	if selector == "" {
		selector = s.container
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	container, err := s.doc.QuerySelector(selector)
	if err != nil {
		return "", errors.New(errors.CodeInvalidSelector).
			WithDetailf("%q is not a valid selector", selector).
			Wrap(err)
	}
	if container == nil {
		return "", errors.New(errors.CodeNoContainer).
			WithDetailf("no element matches %q", selector)
	}

	// Notifications are queued under the lock so clients see mounts in
	// document order.
	node, err := s.renderer.Mount(ctx, d, container)
	if err != nil {
		s.hub.NotifyError(err.Error())
		return "", err
	}
	html := node.OuterHTML()
	s.hub.NotifyMounted(selector, html)
	return html, nil
}

// Snapshot writes the current document to w.
func (s *Server) Snapshot(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Render(w)
}

// String returns the current document HTML.
func (s *Server) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.String()
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, injectScript(s.String(), LiveScript))
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.Snapshot(w); err != nil {
		s.logger.Error("document render failed", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *Server) handleMount(w http.ResponseWriter, r *http.Request) {
	d, err := element.Decode(http.MaxBytesReader(w, r.Body, maxDescriptorBytes))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	html, err := s.Mount(r.Context(), d, r.URL.Query().Get("container"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"html": html})
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	s.logger.Warn("mount request failed",
		"request_id", middleware.GetReqID(r.Context()),
		"status", status,
		"error", err,
	)

	var coded *errors.Error
	if stderrors.As(err, &coded) {
		writeJSON(w, status, coded.JSON())
		return
	}
	writeJSON(w, status, map[string]string{"message": err.Error()})
}

// statusFor maps a mount error onto an HTTP status.
func statusFor(err error) int {
	switch errors.Code(err) {
	case errors.CodeBadDescriptor, errors.CodeInvalidSelector:
		return http.StatusBadRequest
	case errors.CodeInvalidTag, errors.CodeInvalidAttribute,
		errors.CodeDuplicateAttr:
		return http.StatusUnprocessableEntity
	case errors.CodeDetachedContainer:
		return http.StatusConflict
	case errors.CodeNoContainer:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// injectScript inserts script before the last </body>, or appends it.
func injectScript(doc, script string) string {
	i := strings.LastIndex(doc, "</body>")
	if i < 0 {
		return doc + script
	}
	return doc[:i] + script + doc[i:]
}
