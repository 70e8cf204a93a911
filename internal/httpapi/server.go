// Package httpapi serves live presentation frames and playback controls.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sort"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"pkt.systems/pslog"

	"github.com/ivlev/flexdash-demo/internal/engine"
)

// Options configures a Server
type Options struct {
	AllowedOrigins []string
	Logger         pslog.Logger
	// Run drives a started host; it defaults to host.Run on the server context.
	Run func(ctx context.Context, h *engine.Host)
}

// Server exposes a set of presentation hosts over HTTP
type Server struct {
	hosts   map[string]*engine.Host
	names   []string
	origins []string
	logger  pslog.Logger
	run     func(ctx context.Context, h *engine.Host)
	ctx     context.Context
}

// New creates a server for hosts. Host names must be unique.
func New(ctx context.Context, hosts []*engine.Host, opts Options) (*Server, error) {
	s := &Server{
		hosts:   make(map[string]*engine.Host, len(hosts)),
		origins: opts.AllowedOrigins,
		logger:  opts.Logger,
		run:     opts.Run,
		ctx:     ctx,
	}
	if s.logger == nil {
		s.logger = pslog.Ctx(ctx)
	}
	if s.run == nil {
		s.run = func(ctx context.Context, h *engine.Host) {
			go func() {
				if err := h.Run(ctx); err != nil {
					s.logger.Warn("presentation loop ended", "presentation", h.Name(), "error", err)
				}
			}()
		}
	}
	if len(s.origins) == 0 {
		s.origins = []string{"*"}
	}
	for _, h := range hosts {
		if _, dup := s.hosts[h.Name()]; dup {
			return nil, errors.New("duplicate presentation " + h.Name())
		}
		s.hosts[h.Name()] = h
		s.names = append(s.names, h.Name())
	}
	sort.Strings(s.names)
	return s, nil
}

// Handler returns the routed, CORS-wrapped handler.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.loggingMiddleware)

	r.HandleFunc("/api/presentations", s.listPresentations).Methods(http.MethodGet)
	r.HandleFunc("/api/presentations/{name}", s.getPresentation).Methods(http.MethodGet)
	r.HandleFunc("/api/presentations/{name}/frame", s.getFrame).Methods(http.MethodGet)
	r.HandleFunc("/api/presentations/{name}/schedule", s.getSchedule).Methods(http.MethodGet)
	r.HandleFunc("/api/presentations/{name}/start", s.start).Methods(http.MethodPost)
	r.HandleFunc("/api/presentations/{name}/stop", s.stop).Methods(http.MethodPost)
	r.HandleFunc("/api/presentations/{name}/pause", s.pause).Methods(http.MethodPost)
	r.HandleFunc("/api/presentations/{name}/continue", s.resume).Methods(http.MethodPost)
	r.HandleFunc("/api/now", s.now).Methods(http.MethodGet)
	r.HandleFunc("/api/resource", s.listResources).Methods(http.MethodGet)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	return corsHandler.Handler(r)
}

// StartAll starts every presentation and its Run loop.
func (s *Server) StartAll() {
	for _, name := range s.names {
		h := s.hosts[name]
		h.Start()
		s.run(s.ctx, h)
	}
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("preview server listening", "addr", listener.Addr().String())

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(listener) }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		for _, h := range s.hosts {
			h.Stop()
		}
		return nil
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.statusCode,
			"duration", time.Since(start).String())
	})
}

// responseWriter captures the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
