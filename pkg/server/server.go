// Package server exposes the compile pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz      liveness and build information
//	POST /v1/compile   compile a layout document
//
// The compile endpoint reads a document in the body. Its format follows the
// Content-Type (application/json, application/yaml, application/toml) and
// defaults to JSON. Engine options come from the query string:
//
//	POST /v1/compile?tie_break=row&skip_invalid=true&format=svg
//
// The response is the compiled tree in the requested output format. The
// X-Gridglob-Cache header reports whether the compiled tree was cached, and
// X-Gridglob-Skipped counts constraints skipped under skip_invalid. Errors
// are JSON bodies carrying the error code (see pkg/httputil).
package server

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/gridglob/pkg/buildinfo"
	errs "github.com/matzehuels/gridglob/pkg/errors"
	"github.com/matzehuels/gridglob/pkg/httputil"
	pkgio "github.com/matzehuels/gridglob/pkg/io"
	"github.com/matzehuels/gridglob/pkg/pipeline"
)

// Response headers set by the compile endpoint.
const (
	HeaderCache   = "X-Gridglob-Cache"
	HeaderSkipped = "X-Gridglob-Skipped"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "127.0.0.1:8080"

const shutdownTimeout = 10 * time.Second

var contentTypes = map[string]string{
	pipeline.FormatJSON:    "application/json",
	pipeline.FormatYAML:    "application/yaml",
	pipeline.FormatTOML:    "application/toml",
	pipeline.FormatDOT:     "text/vnd.graphviz",
	pipeline.FormatSVG:     "image/svg+xml",
	pipeline.FormatPDF:     "application/pdf",
	pipeline.FormatPNG:     "image/png",
	pipeline.FormatOutline: "text/plain; charset=utf-8",
}

// Server serves compile requests through a shared pipeline runner.
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	defaults pipeline.Options
	maxBody  int64
}

// Option configures a Server.
type Option func(*Server)

// WithDefaults sets the options requests start from before query
// parameters are applied.
func WithDefaults(opts pipeline.Options) Option {
	return func(s *Server) { s.defaults = opts }
}

// WithMaxBody caps request bodies at n bytes.
func WithMaxBody(n int64) Option {
	return func(s *Server) { s.maxBody = n }
}

// New creates a Server. A nil runner compiles without caching.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{runner: runner, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/compile", s.handleCompile)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type health struct {
	Status string `json:"status"`
	buildinfo.Info
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = httputil.WriteJSON(w, http.StatusOK, health{Status: "ok", Info: buildinfo.Get()})
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	opts, format, err := s.requestOptions(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	docFormat, err := documentFormat(r.Header.Get("Content-Type"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	body := httputil.LimitBody(w, r, s.maxBody)
	defer body.Close()
	doc, err := pkgio.Read(body, docFormat)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), doc, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	cache := "miss"
	if result.CacheHit {
		cache = "hit"
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set(HeaderCache, cache)
	w.Header().Set(HeaderSkipped, strconv.Itoa(len(result.Skipped)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// requestOptions applies query parameters to the server defaults.
func (s *Server) requestOptions(r *http.Request) (pipeline.Options, string, error) {
	d := s.defaults
	opts := pipeline.Options{
		TieBreak:    d.TieBreak,
		IDStyle:     d.IDStyle,
		SkipInvalid: d.SkipInvalid,
		Detailed:    d.Detailed,
		NoCache:     d.NoCache,
		CacheTTL:    d.CacheTTL,
		Logger:      s.logger,
	}
	q := r.URL.Query()

	if v := q.Get("tie_break"); v != "" {
		opts.TieBreak = v
	}
	if v := q.Get("id_style"); v != "" {
		opts.IDStyle = v
	}
	if v := q.Get("skip_invalid"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, "", errs.New(errs.ErrCodeInvalidInput, "skip_invalid: %q is not a boolean", v)
		}
		opts.SkipInvalid = b
	}
	if v := q.Get("detailed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, "", errs.New(errs.ErrCodeInvalidInput, "detailed: %q is not a boolean", v)
		}
		opts.Detailed = b
	}

	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatJSON
	}
	opts.Formats = []string{format}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, "", err
	}
	return opts, format, nil
}

// documentFormat picks the request document format from its Content-Type.
func documentFormat(contentType string) (pkgio.Format, error) {
	if contentType == "" {
		return pkgio.FormatJSON, nil
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeInvalidInput, err, "content type %q", contentType)
	}
	switch mt {
	case "application/json", "text/json":
		return pkgio.FormatJSON, nil
	case "application/yaml", "application/x-yaml", "text/yaml":
		return pkgio.FormatYAML, nil
	case "application/toml", "text/toml":
		return pkgio.FormatTOML, nil
	}
	return "", errs.New(errs.ErrCodeUnsupported, "unsupported content type %q", mt)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := httputil.StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("compile failed", "request_id", middleware.GetReqID(r.Context()), "error", err)
	} else {
		s.logger.Debug("rejected request", "request_id", middleware.GetReqID(r.Context()), "error", err)
	}
	_ = httputil.WriteError(w, err)
}

// logRequests logs each request once it completes.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()))
		}()
		next.ServeHTTP(ww, r)
	})
}
