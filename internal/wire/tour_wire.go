package wire

import (
	"tour-booking/internal/adaptor"
	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/pkg/middleware"
	"tour-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTour(
	r chi.Router,
	tourHandler *adaptor.TourHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Katalog tour bisa dibaca tanpa login
	r.Get("/api/tours", tourHandler.GetAllTours)
	r.Get("/api/tours/{id}", tourHandler.GetTourByID)

	// ==================== GUIDE ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.RequireRole(entity.RoleGuide, log))

		// POST /api/tours - Buat tour baru (guide only)
		r.Post("/api/tours", tourHandler.CreateTour)

		// GET /api/user/tours - Tour milik guide yang login
		r.Get("/api/user/tours", tourHandler.GetMyTours)
	})

	// Update/deactivate: ownership dicek di service (owner atau admin)
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		r.Put("/api/tours/{id}", tourHandler.UpdateTour)
		r.Delete("/api/tours/{id}", tourHandler.DeactivateTour)
	})
}
