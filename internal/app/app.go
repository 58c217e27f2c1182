package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/RubachokBoss/driving-test-service/internal/config"
	"github.com/RubachokBoss/driving-test-service/internal/database"
	"github.com/RubachokBoss/driving-test-service/internal/delivery/httpd"
	"github.com/RubachokBoss/driving-test-service/internal/metrics"
	appmiddleware "github.com/RubachokBoss/driving-test-service/internal/middleware"
	"github.com/RubachokBoss/driving-test-service/internal/repository"
	"github.com/RubachokBoss/driving-test-service/internal/service"
	"github.com/RubachokBoss/driving-test-service/internal/service/integration"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type App struct {
	server    *http.Server
	logger    zerolog.Logger
	config    *config.Config
	repo      repository.ResultRepository
	publisher integration.EventPublisher
}

func New(cfg *config.Config, log zerolog.Logger) (*App, error) {
	repo, err := newResultRepository(cfg, log)
	if err != nil {
		return nil, err
	}

	publisher := newEventPublisher(cfg, log)

	appMetrics := metrics.New()

	resultService := service.NewResultService(repo, publisher, log, service.WithMetrics(appMetrics))
	handler := httpd.NewHandler(resultService, log)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      NewRouter(cfg, handler, appMetrics, log),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		server:    server,
		logger:    log,
		config:    cfg,
		repo:      repo,
		publisher: publisher,
	}, nil
}

// NewRouter wires middleware before routes; chi rejects Use after the
// first route is registered.
func NewRouter(cfg *config.Config, handler *httpd.Handler, m *metrics.Metrics, log zerolog.Logger) chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(appmiddleware.NewCORS(cfg.CORS))
	router.Use(appmiddleware.RequestLogger(log))
	router.Use(appmiddleware.Metrics(m))
	router.Use(appmiddleware.Recovery(log))
	if cfg.Server.RequestTimeout > 0 {
		router.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	}

	handler.RegisterRoutes(router)
	router.Method(http.MethodGet, "/metrics", m.Handler())

	return router
}

func newResultRepository(cfg *config.Config, log zerolog.Logger) (repository.ResultRepository, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverFile:
		log.Info().Str("path", cfg.Storage.FilePath).Msg("Using file storage")
		return repository.NewFileRepository(cfg.Storage.FilePath, log)

	case config.StorageDriverPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}

		log.Info().Msg("Database connection established")
		return repository.NewResultPostgresRepository(db, log), nil

	case config.StorageDriverMinIO:
		return repository.NewMinIORepository(cfg.MinIO, log)

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// newEventPublisher falls back to a no-op publisher when the broker is
// disabled or unreachable; events are not required to serve requests.
func newEventPublisher(cfg *config.Config, log zerolog.Logger) integration.EventPublisher {
	if !cfg.RabbitMQ.Enabled {
		return integration.NewNoopPublisher()
	}

	publisher, err := integration.NewRabbitMQClient(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, log)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create RabbitMQ client, result events disabled")
		return integration.NewNoopPublisher()
	}

	return publisher
}

func (a *App) Run() error {
	a.logger.Info().Msgf("Server running on port %d", a.config.Server.Port)
	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down driving test service...")

	err := a.server.Shutdown(ctx)

	if err := a.publisher.Close(); err != nil {
		a.logger.Error().Err(err).Msg("Failed to close event publisher")
	}

	if err := a.repo.Close(); err != nil {
		a.logger.Error().Err(err).Msg("Failed to close result storage")
	}

	return err
}
