package adaptor

import (
	"net/http"

	"tour-booking/internal/usecase"
	"tour-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Tour    *TourHandler
	Booking *BookingHandler
	Review  *ReviewHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		User:    NewUserHandler(service.User, log),
		Tour:    NewTourHandler(service.Tour, log),
		Booking: NewBookingHandler(service.Booking, log),
		Review:  NewReviewHandler(service.Review, log),
	}
}

// handleServiceError maps domain error kinds ke HTTP status. Error
// tanpa kind dianggap unexpected dan jadi 500.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch usecase.KindOf(err) {
	case usecase.ErrKindValidation:
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case usecase.ErrKindForbidden:
		log.Warn(operation+" forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case usecase.ErrKindImmutable:
		log.Warn(operation+" rejected - booking closed", zap.Error(err))
		utils.ResponseUnprocessable(w, err.Error())

	case usecase.ErrKindConflict:
		log.Warn(operation+" lost version race", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case usecase.ErrKindNotFound:
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	default:
		log.Error(operation+" failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
