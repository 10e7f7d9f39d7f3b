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

type ReviewService interface {
	CreateReview(ctx context.Context, userID, tourID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	GetTourReviews(ctx context.Context, tourID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) CreateReview(ctx context.Context, userID, tourID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError("validation failed: %s", utils.FormatValidationErrors(errs))
	}

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

	// Satu review per user per tour
	existing, err := s.repo.Review.FindByTourAndUser(ctx, id, callerID)
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if existing != nil {
		return nil, newValidationError("you have already reviewed this tour")
	}

	now := time.Now()
	review := &entity.Review{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		TourID:  id,
		UserID:  callerID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		s.log.Error("Failed to create review", zap.Error(err), zap.String("tour_id", tourID))
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("tour_id", tourID),
		zap.Int("rating", review.Rating),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) GetTourReviews(ctx context.Context, tourID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	id, err := uuid.Parse(tourID)
	if err != nil {
		return nil, newValidationError("invalid tour ID format %s", tourID)
	}

	reviews, err := s.repo.Review.FindByTourID(ctx, id, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get reviews: %w", err)
	}

	total, err := s.repo.Review.CountByTourID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	reviewResponses := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		reviewResponses[i] = response.ReviewToResponse(review)
	}

	return response.NewPaginatedResponse(reviewResponses, req.Page, req.PerPage, total), nil
}
