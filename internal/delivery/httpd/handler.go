package httpd

import (
	"context"
	"net/http"
	"time"

	"github.com/RubachokBoss/driving-test-service/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const welcomeMessage = "Welcome to the Driving License Test System API"

type Handler struct {
	resultService service.ResultService
	logger        zerolog.Logger
}

func NewHandler(resultService service.ResultService, logger zerolog.Logger) *Handler {
	return &Handler{
		resultService: resultService,
		logger:        logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", h.Welcome)
	router.Get("/health", h.HealthCheck)

	router.Route("/api", func(api chi.Router) {
		api.Route("/results", func(r chi.Router) {
			r.Post("/", h.CreateResult)
			r.Get("/", h.GetAllResults)
			r.Get("/stats", h.GetStats)
			r.Get("/search", h.SearchResults)
			r.Put("/{id}", h.UpdateResult)
			r.Delete("/{id}", h.DeleteResult)
		})
	})
}

func (h *Handler) Welcome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(welcomeMessage))
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "healthy"
	code := http.StatusOK
	if err := h.resultService.Ping(ctx); err != nil {
		h.logger.Error().Err(err).Msg("Storage health check failed")
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]interface{}{
		"status":    status,
		"service":   "driving-test-service",
		"timestamp": time.Now().UTC(),
	})
}
