// Package server serves a built site locally and rebuilds it when its
// sources change.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Bitlatte/folio/internal/config"
	"github.com/Bitlatte/folio/internal/site"
)

const (
	defaultDebounce = 500 * time.Millisecond
	shutdownTimeout = 5 * time.Second
)

// Server is the development server.
type Server struct {
	cfg      config.Config
	addr     string
	builder  *site.Builder
	logger   *slog.Logger
	debounce time.Duration
	registry *prometheus.Registry
	metrics  *metrics

	// buildMu serializes builds; a rebuild must never clean the output
	// directory while another build is writing it.
	buildMu sync.Mutex
}

// New creates a Server listening on port.
func New(cfg config.Config, port int, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	reg := prometheus.NewRegistry()
	return &Server{
		cfg:      cfg,
		addr:     fmt.Sprintf(":%d", port),
		builder:  site.NewBuilder(cfg, logger),
		logger:   logger,
		debounce: defaultDebounce,
		registry: reg,
		metrics:  newMetrics(reg),
	}
}

// Run performs an initial build, then watches the site sources and serves
// the output directory until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("performing initial build")
	if err := s.rebuild(ctx); err != nil {
		return fmt.Errorf("initial build failed: %w", err)
	}

	watcher, err := s.newWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()
	go s.watch(ctx, watcher)

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server shutdown failed", "error", err)
		}
	}()

	s.logger.Info("serving site", "dir", s.cfg.OutputDir, "url", "http://localhost"+s.addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// rebuild runs one build and records its outcome.
func (s *Server) rebuild(ctx context.Context) error {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	start := time.Now()
	report, err := s.builder.Build(ctx)
	s.metrics.observe(report, time.Since(start), err)
	return err
}

// Handler serves the output directory with caching disabled, plus the
// metrics endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	files := http.FileServer(http.Dir(s.cfg.OutputDir))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		// No directory listings.
		if strings.HasSuffix(r.URL.Path, "/") && r.URL.Path != "/" {
			index := filepath.Join(s.cfg.OutputDir, filepath.FromSlash(r.URL.Path), "index.html")
			if _, err := os.Stat(index); os.IsNotExist(err) {
				http.NotFound(w, r)
				return
			}
		}
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		files.ServeHTTP(w, r)
	})
	return mux
}
