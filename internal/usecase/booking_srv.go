package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/request"
	"tour-booking/internal/dto/response"
	"tour-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// Public endpoints (butuh auth)
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	Negotiate(ctx context.Context, userID, bookingID string, req *request.NegotiateBookingRequest) (*response.BookingResponse, error)
	GetBookingByID(ctx context.Context, userID, bookingID string) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	CancelBooking(ctx context.Context, userID, bookingID string) error

	// Admin endpoints
	MarkPaid(ctx context.Context, bookingID string) error
}

type bookingService struct {
	repo     *repository.Repository
	notifier BookingNotifier
	log      *zap.Logger
}

func NewBookingService(repo *repository.Repository, notifier BookingNotifier, log *zap.Logger) BookingService {
	return &bookingService{
		repo:     repo,
		notifier: notifier,
		log:      log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, newValidationError("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// Parse IDs
	travelerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, newValidationError("invalid user ID format %s", userID)
	}

	tourID, err := uuid.Parse(req.TourID)
	if err != nil {
		return nil, newValidationError("invalid tour ID format %s", req.TourID)
	}

	// Validate tour exists and is bookable
	tour, err := s.repo.Tour.FindByID(ctx, tourID)
	if err != nil {
		return nil, fmt.Errorf("find tour: %w", err)
	}
	if tour == nil || !tour.IsActive {
		return nil, newNotFoundError("tour %s not found", req.TourID)
	}

	if tour.GuideID == travelerID {
		return nil, newValidationError("you cannot book your own tour")
	}

	if req.TravelerCount > tour.MaxTravelers {
		return nil, newValidationError("traveler count %d exceeds tour capacity %d", req.TravelerCount, tour.MaxTravelers)
	}

	// Harga awal dari harga dasar tour saja; extras menyusul lewat negosiasi.
	total, err := ComputeTotal(tour.BasePriceCents, tour.PricingMode, req.TravelerCount, nil)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingRef:       utils.GenerateBookingRef(),
		TravelerID:       travelerID,
		GuideID:          tour.GuideID,
		TourID:           tourID,
		TravelerCount:    req.TravelerCount,
		TotalPriceCents:  total,
		TravelerApproved: false,
		GuideApproved:    false,
		Status:           entity.BookingStatusPending,
		Version:          1,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("tour_id", req.TourID),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("booking_ref", booking.BookingRef),
		zap.String("traveler_id", userID),
		zap.Int("traveler_count", booking.TravelerCount),
		zap.String("total_price", utils.FormatCents(total)),
	)

	s.notifier.Notify(ctx, EventBookingCreated, booking)

	resp := response.BookingToResponse(booking)
	resp.TourTitle = tour.Title
	return &resp, nil
}

// Negotiate menjalankan satu langkah negosiasi extras/persetujuan.
//
// Engine-nya pure function; concurrency safety datang dari save
// compare-and-swap. Kalau kalah race, caller dapat error conflict dan
// harus reload lalu submit ulang.
func (s *bookingService) Negotiate(ctx context.Context, userID, bookingID string, req *request.NegotiateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Negotiate validation failed", zap.Any("errors", errs))
		return nil, newValidationError("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	callerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, newValidationError("invalid user ID format %s", userID)
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, newValidationError("invalid booking ID format %s", bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, newNotFoundError("booking %s not found", bookingID)
	}
	loadedVersion := booking.Version

	caller, err := s.repo.User.FindByID(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("find caller: %w", err)
	}
	role := ResolveBookingRole(caller, booking)

	tour, err := s.repo.Tour.FindByID(ctx, booking.TourID)
	if err != nil {
		return nil, fmt.Errorf("find tour: %w", err)
	}
	if tour == nil {
		return nil, fmt.Errorf("tour %s not found for booking %s", booking.TourID.String(), bookingID)
	}

	proposal := toProposal(req)

	if err := applyNegotiation(booking, role, tour.BasePriceCents, tour.PricingMode, proposal); err != nil {
		s.log.Warn("Negotiation rejected",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.String("role", string(role)),
		)
		return nil, err
	}

	booking.UpdatedAt = time.Now()

	if err := s.repo.Booking.Save(ctx, booking, loadedVersion); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, newConflictError("booking was changed by another request; reload and retry")
		}
		s.log.Error("Failed to save negotiated booking",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return nil, fmt.Errorf("save booking: %w", err)
	}

	s.log.Info("Booking negotiated",
		zap.String("booking_id", bookingID),
		zap.String("role", string(role)),
		zap.Int("extras", len(booking.Extras)),
		zap.Bool("traveler_approved", booking.TravelerApproved),
		zap.Bool("guide_approved", booking.GuideApproved),
		zap.String("status", string(booking.Status)),
		zap.String("total_price", utils.FormatCents(booking.TotalPriceCents)),
	)

	s.notifier.Notify(ctx, EventBookingNegotiated, booking)

	resp := response.BookingToResponse(booking)
	resp.TourTitle = tour.Title
	return &resp, nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, userID, bookingID string) (*response.BookingResponse, error) {
	callerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, newValidationError("invalid user ID format %s", userID)
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, newValidationError("invalid booking ID format %s", bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, newNotFoundError("booking %s not found", bookingID)
	}

	caller, err := s.repo.User.FindByID(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("find caller: %w", err)
	}
	if ResolveBookingRole(caller, booking) == BookingRoleNone {
		return nil, newForbiddenError("you are not a participant of this booking")
	}

	resp := response.BookingToResponse(booking)

	tour, _ := s.repo.Tour.FindByID(ctx, booking.TourID)
	if tour != nil {
		resp.TourTitle = tour.Title
	}

	return &resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	callerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, newValidationError("invalid user ID format %s", userID)
	}

	limit := req.Limit()
	offset := req.Offset()

	bookings, err := s.repo.Booking.FindByParticipantID(ctx, callerID, limit, offset)
	if err != nil {
		s.log.Error("Failed to get user bookings",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByParticipantID(ctx, callerID)
	if err != nil {
		s.log.Error("Failed to count user bookings", zap.Error(err))
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		resp := response.BookingToResponse(booking)

		tour, _ := s.repo.Tour.FindByID(ctx, booking.TourID)
		if tour != nil {
			resp.TourTitle = tour.Title
		}

		bookingResponses[i] = resp
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

func (s *bookingService) CancelBooking(ctx context.Context, userID, bookingID string) error {
	callerID, err := uuid.Parse(userID)
	if err != nil {
		return newValidationError("invalid user ID format %s", userID)
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return newValidationError("invalid booking ID format %s", bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return newNotFoundError("booking %s not found", bookingID)
	}

	caller, err := s.repo.User.FindByID(ctx, callerID)
	if err != nil {
		return fmt.Errorf("find caller: %w", err)
	}
	if ResolveBookingRole(caller, booking) == BookingRoleNone {
		return newForbiddenError("you are not a participant of this booking")
	}

	if booking.Status.Terminal() {
		return newImmutableError("booking is %s and can no longer be cancelled", booking.Status)
	}

	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusCancelled, booking.Version); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return newConflictError("booking was changed by another request; reload and retry")
		}
		return fmt.Errorf("cancel booking %s: %w", bookingID, err)
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("booking_ref", booking.BookingRef),
	)

	booking.Status = entity.BookingStatusCancelled
	booking.Version++
	s.notifier.Notify(ctx, EventBookingCancelled, booking)

	return nil
}

// ==================== ADMIN METHODS ====================

// MarkPaid mencatat pembayaran yang sudah diproses payment gateway
// eksternal. Setelah paid, booking tertutup untuk negosiasi.
func (s *bookingService) MarkPaid(ctx context.Context, bookingID string) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return newValidationError("invalid booking ID format %s", bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return newNotFoundError("booking %s not found", bookingID)
	}

	if booking.Status.Terminal() {
		return newImmutableError("booking is %s and can no longer be paid", booking.Status)
	}
	if booking.Status != entity.BookingStatusAgreed {
		return newValidationError("booking must be agreed by both sides before payment")
	}

	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusPaid, booking.Version); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return newConflictError("booking was changed by another request; reload and retry")
		}
		return fmt.Errorf("mark booking %s paid: %w", bookingID, err)
	}

	s.log.Info("Booking marked paid",
		zap.String("booking_id", bookingID),
		zap.String("booking_ref", booking.BookingRef),
		zap.String("total_price", utils.FormatCents(booking.TotalPriceCents)),
	)

	booking.Status = entity.BookingStatusPaid
	booking.Version++
	s.notifier.Notify(ctx, EventBookingPaid, booking)

	return nil
}

// ==================== HELPER METHODS ====================

func toProposal(req *request.NegotiateBookingRequest) NegotiationProposal {
	proposal := NegotiationProposal{
		Recalculate: true,
	}

	if req.Recalculate != nil {
		proposal.Recalculate = *req.Recalculate
	}

	if req.Extras != nil {
		proposal.ExtrasPresent = true
		proposal.Extras = make([]entity.BookingExtra, len(*req.Extras))
		for i, extra := range *req.Extras {
			proposal.Extras[i] = entity.BookingExtra{
				Position:    i,
				Description: extra.Description,
				PriceCents:  extra.PriceCents,
				PricingMode: entity.PricingMode(extra.PricingMode),
			}
		}
	}

	if req.Approval != nil {
		proposal.Approval = &Approval{
			Side:  ApprovalSide(req.Approval.Side),
			Value: req.Approval.Value,
		}
	}

	return proposal
}
