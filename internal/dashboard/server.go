// Package dashboard serves a local web view of saved records with delete and
// export actions.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/zulandar/hubscout/internal/logging"
	"github.com/zulandar/hubscout/internal/store"
	"gorm.io/gorm"
)

// exportTTL bounds how long a rendered export is served from cache. Every
// mutation made through the dashboard flushes it immediately; the TTL covers
// records saved by another process.
const exportTTL = 30 * time.Second

// StartOpts holds configuration for the dashboard server.
type StartOpts struct {
	DB       *gorm.DB
	StoreKey string
	Port     int
	Out      io.Writer
	Logger   *slog.Logger
}

type server struct {
	store   *store.Store
	exports *cache.Cache
	log     *slog.Logger
	now     func() time.Time
}

// Start launches the dashboard HTTP server. It blocks until ctx is cancelled,
// then shuts down gracefully.
func Start(ctx context.Context, opts StartOpts) error {
	if opts.DB == nil {
		return fmt.Errorf("dashboard: db is required")
	}
	if opts.Port <= 0 {
		opts.Port = 8080
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	gin.SetMode(gin.ReleaseMode)
	router, err := newRouter(store.New(opts.DB, opts.StoreKey), opts.Logger)
	if err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}

	addr := fmt.Sprintf(":%d", opts.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown on context cancellation.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "Dashboard running at http://localhost:%d\n", opts.Port)
	}
	opts.Logger.Info("dashboard started", "port", opts.Port, "store_key", opts.StoreKey)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}

// newRouter builds the gin engine for st.
func newRouter(st *store.Store, log *slog.Logger) (*gin.Engine, error) {
	router := gin.New()
	router.Use(gin.Recovery())

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(tmpl)

	s := &server{
		store:   st,
		exports: cache.New(exportTTL, 0),
		log:     log,
		now:     time.Now,
	}
	s.registerRoutes(router)
	return router, nil
}

// parseTemplates loads the embedded HTML templates.
func parseTemplates() (*template.Template, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}
