package usecase

import (
	"context"
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

type TourService interface {
	// Public endpoints
	GetAllTours(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TourResponse], error)
	GetTourByID(ctx context.Context, tourID string) (*response.TourResponse, error)

	// Guide endpoints
	CreateTour(ctx context.Context, guideID string, req *request.CreateTourRequest) (*response.TourResponse, error)
	UpdateTour(ctx context.Context, userID, tourID string, req *request.UpdateTourRequest) (*response.TourResponse, error)
	DeactivateTour(ctx context.Context, userID, tourID string) error
	GetMyTours(ctx context.Context, guideID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TourResponse], error)
}

type tourService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTourService(repo *repository.Repository, log *zap.Logger) TourService {
	return &tourService{
		repo: repo,
		log:  log.With(zap.String("service", "tour")),
	}
}

func (s *tourService) GetAllTours(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TourResponse], error) {
	tours, err := s.repo.Tour.FindAllActive(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get tours", zap.Error(err))
		return nil, fmt.Errorf("get tours: %w", err)
	}

	total, err := s.repo.Tour.CountAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("count tours: %w", err)
	}

	tourResponses := make([]response.TourResponse, len(tours))
	for i, tour := range tours {
		tourResponses[i] = response.TourToResponse(tour)
	}

	return response.NewPaginatedResponse(tourResponses, req.Page, req.PerPage, total), nil
}

func (s *tourService) GetTourByID(ctx context.Context, tourID string) (*response.TourResponse, error) {
	id, err := uuid.Parse(tourID)
	if err != nil {
		return nil, newValidationError("invalid tour ID format %s", tourID)
	}

	tour, err := s.repo.Tour.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find tour: %w", err)
	}
	if tour == nil || !tour.IsActive {
		return nil, newNotFoundError("tour %s not found", tourID)
	}

	resp := response.TourToResponse(tour)
	return &resp, nil
}

// ==================== GUIDE METHODS ====================

func (s *tourService) CreateTour(ctx context.Context, guideID string, req *request.CreateTourRequest) (*response.TourResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create tour validation failed", zap.Any("errors", errs))
		return nil, newValidationError("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(guideID)
	if err != nil {
		return nil, newValidationError("invalid user ID format %s", guideID)
	}

	guide, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find guide: %w", err)
	}
	if guide == nil || guide.Role != entity.RoleGuide {
		return nil, newForbiddenError("only guides can create tours")
	}

	now := time.Now()
	tour := &entity.Tour{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		GuideID:        id,
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		BasePriceCents: req.BasePriceCents,
		PricingMode:    entity.PricingMode(req.PricingMode),
		MaxTravelers:   req.MaxTravelers,
		IsActive:       true,
	}

	if err := s.repo.Tour.Create(ctx, tour); err != nil {
		s.log.Error("Failed to create tour", zap.Error(err), zap.String("guide_id", guideID))
		return nil, fmt.Errorf("create tour: %w", err)
	}

	s.log.Info("Tour created",
		zap.String("tour_id", tour.ID.String()),
		zap.String("guide_id", guideID),
		zap.String("title", tour.Title),
	)

	resp := response.TourToResponse(tour)
	return &resp, nil
}

func (s *tourService) UpdateTour(ctx context.Context, userID, tourID string, req *request.UpdateTourRequest) (*response.TourResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	tour, err := s.loadOwnedTour(ctx, userID, tourID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		tour.Title = *req.Title
	}
	if req.Description != nil {
		tour.Description = *req.Description
	}
	if req.Location != nil {
		tour.Location = *req.Location
	}
	if req.BasePriceCents != nil {
		tour.BasePriceCents = *req.BasePriceCents
	}
	if req.PricingMode != nil {
		tour.PricingMode = entity.PricingMode(*req.PricingMode)
	}
	if req.MaxTravelers != nil {
		tour.MaxTravelers = *req.MaxTravelers
	}
	if req.IsActive != nil {
		tour.IsActive = *req.IsActive
	}
	tour.UpdatedAt = time.Now()

	if err := s.repo.Tour.Update(ctx, tour); err != nil {
		s.log.Error("Failed to update tour", zap.Error(err), zap.String("tour_id", tourID))
		return nil, fmt.Errorf("update tour: %w", err)
	}

	s.log.Info("Tour updated", zap.String("tour_id", tourID))

	resp := response.TourToResponse(tour)
	return &resp, nil
}

func (s *tourService) DeactivateTour(ctx context.Context, userID, tourID string) error {
	tour, err := s.loadOwnedTour(ctx, userID, tourID)
	if err != nil {
		return err
	}

	if err := s.repo.Tour.Deactivate(ctx, tour.ID); err != nil {
		s.log.Error("Failed to deactivate tour", zap.Error(err), zap.String("tour_id", tourID))
		return fmt.Errorf("deactivate tour: %w", err)
	}

	s.log.Info("Tour deactivated", zap.String("tour_id", tourID))
	return nil
}

func (s *tourService) GetMyTours(ctx context.Context, guideID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TourResponse], error) {
	id, err := uuid.Parse(guideID)
	if err != nil {
		return nil, newValidationError("invalid user ID format %s", guideID)
	}

	tours, err := s.repo.Tour.FindByGuideID(ctx, id, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get guide tours: %w", err)
	}

	tourResponses := make([]response.TourResponse, len(tours))
	for i, tour := range tours {
		tourResponses[i] = response.TourToResponse(tour)
	}

	// Total pakai panjang halaman; guide jarang punya ratusan tour
	return response.NewPaginatedResponse(tourResponses, req.Page, req.PerPage, int64(len(tourResponses))), nil
}

// ==================== HELPER METHODS ====================

// loadOwnedTour memuat tour dan memastikan caller adalah pemiliknya
// (atau admin).
func (s *tourService) loadOwnedTour(ctx context.Context, userID, tourID string) (*entity.Tour, error) {
	callerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, newValidationError("invalid user ID format %s", userID)
	}

	id, err := uuid.Parse(tourID)
	if err != nil {
		return nil, newValidationError("invalid tour ID format %s", tourID)
	}

	tour, err := s.repo.Tour.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find tour: %w", err)
	}
	if tour == nil {
		return nil, newNotFoundError("tour %s not found", tourID)
	}

	caller, err := s.repo.User.FindByID(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("find caller: %w", err)
	}
	if caller == nil {
		return nil, newForbiddenError("you do not own this tour")
	}
	if caller.Role != entity.RoleAdmin && tour.GuideID != callerID {
		return nil, newForbiddenError("you do not own this tour")
	}

	return tour, nil
}
