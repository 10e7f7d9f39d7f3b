package repository

import (
	"context"
	"fmt"

	"tour-booking/internal/data/entity"
	"tour-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByTourAndUser(ctx context.Context, tourID, userID uuid.UUID) (*entity.Review, error)
	FindByTourID(ctx context.Context, tourID uuid.UUID, limit, offset int) ([]*entity.Review, error)
	CountByTourID(ctx context.Context, tourID uuid.UUID) (int64, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, tour_id, user_id, rating, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.TourID,
		review.UserID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
		review.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("tour_id", review.TourID.String()),
			zap.String("user_id", review.UserID.String()),
		)
		return fmt.Errorf("create review: %w", err)
	}

	return nil
}

func (r *reviewRepository) FindByTourAndUser(ctx context.Context, tourID, userID uuid.UUID) (*entity.Review, error) {
	query := `
		SELECT id, tour_id, user_id, rating, comment, created_at, updated_at
		FROM reviews
		WHERE tour_id = $1 AND user_id = $2 AND deleted_at IS NULL
	`

	var review entity.Review
	err := r.db.QueryRow(ctx, query, tourID, userID).Scan(
		&review.ID,
		&review.TourID,
		&review.UserID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
		&review.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review", zap.Error(err))
		return nil, fmt.Errorf("find review: %w", err)
	}

	return &review, nil
}

func (r *reviewRepository) FindByTourID(ctx context.Context, tourID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	query := `
		SELECT id, tour_id, user_id, rating, comment, created_at, updated_at
		FROM reviews
		WHERE tour_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, tourID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reviews by tour ID",
			zap.Error(err),
			zap.String("tour_id", tourID.String()),
		)
		return nil, fmt.Errorf("find reviews by tour ID %s: %w", tourID.String(), err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		var review entity.Review
		err := rows.Scan(
			&review.ID,
			&review.TourID,
			&review.UserID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
			&review.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	return reviews, nil
}

func (r *reviewRepository) CountByTourID(ctx context.Context, tourID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM reviews WHERE tour_id = $1 AND deleted_at IS NULL`

	var count int64
	err := r.db.QueryRow(ctx, query, tourID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reviews", zap.Error(err))
		return 0, fmt.Errorf("count reviews: %w", err)
	}

	return count, nil
}
