package httpd

import (
	"errors"
	"net/http"

	"github.com/RubachokBoss/driving-test-service/internal/models"
	"github.com/RubachokBoss/driving-test-service/internal/repository"
	"github.com/RubachokBoss/driving-test-service/internal/service"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) CreateResult(w http.ResponseWriter, r *http.Request) {
	var req models.CreateResultRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.resultService.CreateResult(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

func (h *Handler) UpdateResult(w http.ResponseWriter, r *http.Request) {
	resultID := chi.URLParam(r, "id")
	if resultID == "" {
		writeError(w, http.StatusBadRequest, "Result ID is required")
		return
	}

	var req models.UpdateResultRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.resultService.UpdateResult(r.Context(), resultID, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) DeleteResult(w http.ResponseWriter, r *http.Request) {
	resultID := chi.URLParam(r, "id")
	if resultID == "" {
		writeError(w, http.StatusBadRequest, "Result ID is required")
		return
	}

	if err := h.resultService.DeleteResult(r.Context(), resultID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.MessageResponse{
		Message: "Result deleted successfully",
	})
}

func (h *Handler) GetAllResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.resultService.GetAllResults(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.resultService.GetStats(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) SearchResults(w http.ResponseWriter, r *http.Request) {
	query := models.SearchQuery{
		FirstName: r.URL.Query().Get("firstName"),
		LastName:  r.URL.Query().Get("lastName"),
	}

	results, err := h.resultService.SearchResults(r.Context(), query)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError

	switch {
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "Test result not found")
	case errors.Is(err, repository.ErrStorage):
		h.logger.Error().Err(err).Msg("Storage error")
		writeError(w, http.StatusInternalServerError, "Failed to access stored results")
	default:
		h.logger.Error().Err(err).Msg("Service error")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
