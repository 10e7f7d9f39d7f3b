package adaptor

import (
	"encoding/json"
	"net/http"

	"tour-booking/internal/dto/request"
	"tour-booking/internal/usecase"
	"tour-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TourHandler struct {
	service usecase.TourService
	log     *zap.Logger
}

func NewTourHandler(service usecase.TourService, log *zap.Logger) *TourHandler {
	return &TourHandler{
		service: service,
		log:     log.With(zap.String("handler", "tour")),
	}
}

// GetAllTours handles GET /api/tours (public)
func (h *TourHandler) GetAllTours(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	tours, err := h.service.GetAllTours(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "get tours")
		return
	}

	utils.ResponseSuccess(w, "success", tours)
}

// GetTourByID handles GET /api/tours/{id} (public)
func (h *TourHandler) GetTourByID(w http.ResponseWriter, r *http.Request) {
	tourID := chi.URLParam(r, "id")

	tour, err := h.service.GetTourByID(r.Context(), tourID)
	if err != nil {
		handleServiceError(w, h.log, err, "get tour")
		return
	}

	utils.ResponseSuccess(w, "success", tour)
}

// CreateTour handles POST /api/tours (guide only)
func (h *TourHandler) CreateTour(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateTourRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	tour, err := h.service.CreateTour(r.Context(), userID.String(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create tour")
		return
	}

	utils.ResponseCreated(w, "success", tour)
}

// UpdateTour handles PUT /api/tours/{id} (owner guide or admin)
func (h *TourHandler) UpdateTour(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	tourID := chi.URLParam(r, "id")

	var req request.UpdateTourRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	tour, err := h.service.UpdateTour(r.Context(), userID.String(), tourID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update tour")
		return
	}

	utils.ResponseSuccess(w, "Tour updated", tour)
}

// DeactivateTour handles DELETE /api/tours/{id} (owner guide or admin)
func (h *TourHandler) DeactivateTour(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	tourID := chi.URLParam(r, "id")

	if err := h.service.DeactivateTour(r.Context(), userID.String(), tourID); err != nil {
		handleServiceError(w, h.log, err, "deactivate tour")
		return
	}

	utils.ResponseSuccess(w, "Tour deactivated", nil)
}

// GetMyTours handles GET /api/user/tours (guide only)
func (h *TourHandler) GetMyTours(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	tours, err := h.service.GetMyTours(r.Context(), userID.String(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "get my tours")
		return
	}

	utils.ResponseSuccess(w, "success", tours)
}
