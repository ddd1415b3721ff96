package ui

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"coinlab/app"
	"coinlab/internal"
	"coinlab/internal/config"
)

//go:embed templates/*.html templates/fragments/*.html
var embeddedFiles embed.FS

// App represents the UI application
type App struct {
	router    *chi.Mux
	service   *app.FlipService
	sim       config.SimulationConfig
	templates *template.Template
	logger    *internal.Logger
}

// NewApp creates a new UI application
func NewApp(service *app.FlipService, sim config.SimulationConfig, logger *internal.Logger) (*App, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}

	funcMap := template.FuncMap{
		"pct":       func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
		"f4":        func(v float64) string { return fmt.Sprintf("%.4f", v) },
		"add":       func(a, b int) int { return a + b },
		"percentOf": func(v float64) float64 { return v * 100 },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html", "templates/fragments/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	a := &App{
		router:    chi.NewRouter(),
		service:   service,
		sim:       sim,
		templates: templates,
		logger:    logger,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	// Main pages
	a.router.Get("/", a.handleIndex)
	a.router.Get("/methodology", a.handleMethodology)

	// Simulation actions (HTMX fragments)
	a.router.Post("/flip", a.handleFlip)
	a.router.Post("/clear", a.handleClear)

	// Chart data for the three views
	a.router.Get("/api/charts/frequency", a.handleChartFrequency)
	a.router.Get("/api/charts/cumulative", a.handleChartCumulative)

	// Downloads
	a.router.Get("/export/csv", a.handleExportCSV)
	a.router.Get("/export/xlsx", a.handleExportXLSX)
}

// Handler exposes the router for serving and tests
func (a *App) Handler() http.Handler {
	return a.router
}

// Run serves the UI until the context is cancelled
func (a *App) Run(ctx context.Context, addr string) error {
	server := &http.Server{Addr: addr, Handler: a.router}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("coin lab UI listening on %s", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		return server.Shutdown(context.Background())
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// Template helpers
func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html")
	if err := a.templates.ExecuteTemplate(w, templateName, data); err != nil {
		a.logger.Error("template %s: %v", templateName, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

// HTMX helpers
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
