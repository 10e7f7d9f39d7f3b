package wire

import (
	"tour-booking/internal/adaptor"
	"tour-booking/internal/data/repository"
	"tour-booking/pkg/middleware"
	"tour-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	// Semua route booking butuh login; traveler/guide/admin dicek per
	// booking di service layer.
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/bookings - Create new booking (traveler)
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/bookings - Booking history milik user yang login
		r.Get("/api/bookings", bookingHandler.GetUserBookings)

		// GET /api/bookings/{id} - Detail booking (participant only)
		r.Get("/api/bookings/{id}", bookingHandler.GetBookingByID)

		// PATCH /api/bookings/{id}/negotiate - Usulan extras / persetujuan
		r.Patch("/api/bookings/{id}/negotiate", bookingHandler.Negotiate)

		// DELETE /api/bookings/{id} - Batalkan booking
		r.Delete("/api/bookings/{id}", bookingHandler.CancelBooking)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		// Require both authentication AND admin role
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		// PUT /api/admin/bookings/{id}/paid - Catat pembayaran (admin)
		r.Put("/{id}/paid", bookingHandler.MarkPaid)
	})
}
