package usecase

import (
	"tour-booking/internal/data/repository"
	"tour-booking/pkg/utils"

	"go.uber.org/zap"
)

// Service mengumpulkan semua usecase service
type Service struct {
	Auth    AuthService
	User    UserService
	Tour    TourService
	Booking BookingService
	Review  ReviewService
}

func NewService(repo *repository.Repository, notifier BookingNotifier, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, log),
		User:    NewUserService(repo, log),
		Tour:    NewTourService(repo, log),
		Booking: NewBookingService(repo, notifier, log),
		Review:  NewReviewService(repo, log),
	}
}
