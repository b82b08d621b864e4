package application

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/configa/internal/api"
	"github.com/eugenenazirov/configa/internal/config"
	"github.com/eugenenazirov/configa/internal/storage"
	"github.com/eugenenazirov/configa/pkg/configa"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	storage storage.Storage
	handler *api.Handler
	router  http.Handler
	logger  *zap.Logger
	server  *http.Server
}

// New initializes the application with all dependencies from the provided
// configuration. The inspected file must parse; later reloads may fail
// without taking the server down.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	store := storage.NewSnapshotStorage(cfg.InspectFile(), logger)
	if _, err := store.Reload(); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", cfg.InspectFile(), err)
	}

	handler := api.NewHandler(store)
	apiRouter := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging()),
		api.WithRateLimit(cfg.RateLimitRPS(), cfg.RateLimitBurst()),
		api.WithAllowedOrigins(cfg.AllowedOrigins()),
	)

	return &App{
		storage: store,
		handler: handler,
		router:  apiRouter,
		logger:  logger,
		server:  NewServer(cfg, BuildRootHandler(apiRouter)),
	}, nil
}

// BuildRootHandler mounts the API under /api/ and answers 404 elsewhere.
func BuildRootHandler(apiHandler http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)
	mux.Handle("/", http.NotFoundHandler())
	return mux
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg *config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port()
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout(),
		WriteTimeout:      cfg.WriteTimeout(),
		IdleTimeout:       cfg.IdleTimeout(),
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening",
			zap.String("addr", a.server.Addr),
			zap.String("file", a.storage.Path()),
		)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}

// ExitOnMissing terminates the process through logger.Fatal when err reports
// a required section or option that is absent. Other errors are returned
// unchanged so the caller can report them.
func ExitOnMissing(logger *zap.Logger, err error) error {
	var missing *configa.MissingError
	if errors.As(err, &missing) {
		logger.Fatal("required configuration missing",
			zap.String("section", missing.Section),
			zap.String("option", missing.Option),
			zap.Error(err),
		)
	}
	return err
}
