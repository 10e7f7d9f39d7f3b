package repository

import (
	"tour-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User    UserRepository
	Session SessionRepository
	Tour    TourRepository
	Booking BookingRepository
	Review  ReviewRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Session: NewSessionRepository(db, log),
		Tour:    NewTourRepository(db, log),
		Booking: NewBookingRepository(db, log),
		Review:  NewReviewRepository(db, log),
	}
}
