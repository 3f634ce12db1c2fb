// Package web serves the pitch deck generator: an HTML form and slide
// preview driven by server-side sessions, plus a small JSON API.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/singleflight"

	pitchdeck "github.com/alnah/go-pitchdeck"
	"github.com/alnah/go-pitchdeck/internal/assets"
	"github.com/alnah/go-pitchdeck/internal/session"
)

// Generator produces a deck from pitch input. *pitchdeck.Client satisfies it.
type Generator interface {
	GenerateDeck(ctx context.Context, in pitchdeck.PitchInput) (*pitchdeck.GeneratedDeck, error)
}

// Exporter turns a deck into a PDF. *pitchdeck.ExporterPool satisfies it.
type Exporter interface {
	ExportDeck(ctx context.Context, deck *pitchdeck.GeneratedDeck) (*pitchdeck.Document, error)
}

// Page asset names.
const (
	appTemplate = "app"
	appStyle    = "app"
)

const (
	sessionCookie   = "pitchdeck_session"
	shutdownTimeout = 10 * time.Second
	maxBodyBytes    = 1 << 20
)

// Server is the HTTP front end.
type Server struct {
	engine   *gin.Engine
	gen      Generator
	exp      Exporter
	renderer *pitchdeck.Renderer
	store    *session.Store
	loader   pitchdeck.AssetLoader
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *metrics

	page     *template.Template
	appStyle template.CSS

	exports singleflight.Group

	mu      sync.Mutex
	baseCtx context.Context
	wg      sync.WaitGroup
}

// Option configures a Server.
type Option func(*Server)

// WithStore sets the session store.
func WithStore(st *session.Store) Option {
	return func(s *Server) {
		if st != nil {
			s.store = st
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithAssetLoader sets where the page template and stylesheet come from.
func WithAssetLoader(l pitchdeck.AssetLoader) Option {
	return func(s *Server) {
		if l != nil {
			s.loader = l
		}
	}
}

// WithRegistry sets the Prometheus registry served on /metrics.
func WithRegistry(r *prometheus.Registry) Option {
	return func(s *Server) {
		if r != nil {
			s.registry = r
		}
	}
}

// New creates a server. renderer draws the preview slides and must be the
// one the exporter uses, so previews and PDFs match.
func New(gen Generator, exp Exporter, renderer *pitchdeck.Renderer, opts ...Option) (*Server, error) {
	if gen == nil || exp == nil || renderer == nil {
		return nil, errors.New("web: generator, exporter and renderer are required")
	}

	s := &Server{
		gen:      gen,
		exp:      exp,
		renderer: renderer,
		store:    session.NewStore(session.DefaultTTL),
		loader:   assets.NewEmbeddedLoader(),
		logger:   slog.Default(),
		registry: prometheus.NewRegistry(),
		baseCtx:  context.Background(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.loadPage(); err != nil {
		return nil, err
	}
	s.metrics = newMetrics(s.registry)
	s.engine = s.routes()
	return s, nil
}

func (s *Server) loadPage() error {
	src, err := s.loader.LoadTemplate(appTemplate)
	if err != nil {
		return fmt.Errorf("web: loading page template: %w", err)
	}
	page, err := template.New(appTemplate).Parse(src)
	if err != nil {
		return fmt.Errorf("web: parsing page template: %w", err)
	}
	if page.Lookup(appTemplate) == nil {
		return fmt.Errorf("web: page template does not define %q", appTemplate)
	}

	css, err := s.loader.LoadStyle(appStyle)
	if err != nil {
		return fmt.Errorf("web: loading page style: %w", err)
	}

	s.page = page
	s.appStyle = template.CSS(css) // #nosec G203 -- trusted asset
	return nil
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(recovery(s.logger), requestID(), instrument(s.metrics))

	r.GET("/", s.handleIndex)
	r.POST("/generate", s.handleGenerate)
	r.POST("/slides/prev", s.handleNavigate(func(*gin.Context) (session.Event, bool) {
		return session.NavigatePrev{}, true
	}))
	r.POST("/slides/next", s.handleNavigate(func(*gin.Context) (session.Event, bool) {
		return session.NavigateNext{}, true
	}))
	r.POST("/slides/:index", s.handleNavigate(navigateTo))
	r.POST("/export", s.handleExport)
	r.POST("/reset", s.handleReset)

	api := r.Group("/api")
	api.POST("/decks", s.handleAPIGenerate)
	api.POST("/exports", s.handleAPIExport)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Store returns the session store.
func (s *Server) Store() *session.Store {
	return s.store
}

// Run serves on addr until ctx is done, then shuts down gracefully and
// waits for background generations to finish.
func (s *Server) Run(ctx context.Context, addr string) error {
	s.mu.Lock()
	s.baseCtx = ctx
	s.mu.Unlock()

	go s.store.Run(ctx, 0)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.wg.Wait()
	s.logger.Info("server stopped")
	return err
}

// background returns the context background generations derive from.
func (s *Server) background() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.baseCtx
}

// Wait blocks until background generations finish.
func (s *Server) Wait() {
	s.wg.Wait()
}
