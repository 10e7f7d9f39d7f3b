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

type TourRepository interface {
	Create(ctx context.Context, tour *entity.Tour) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Tour, error)
	FindAllActive(ctx context.Context, limit, offset int) ([]*entity.Tour, error)
	CountAllActive(ctx context.Context) (int64, error)
	FindByGuideID(ctx context.Context, guideID uuid.UUID, limit, offset int) ([]*entity.Tour, error)
	Update(ctx context.Context, tour *entity.Tour) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type tourRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTourRepository(db database.PgxIface, log *zap.Logger) TourRepository {
	return &tourRepository{
		db:  db,
		log: log.With(zap.String("repository", "tour")),
	}
}

const tourColumns = `id, guide_id, title, description, location, base_price_cents, pricing_mode, max_travelers, is_active, created_at, updated_at, deleted_at`

func (r *tourRepository) Create(ctx context.Context, tour *entity.Tour) error {
	query := `
		INSERT INTO tours (id, guide_id, title, description, location, base_price_cents,
		                   pricing_mode, max_travelers, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		tour.ID,
		tour.GuideID,
		tour.Title,
		tour.Description,
		tour.Location,
		tour.BasePriceCents,
		tour.PricingMode,
		tour.MaxTravelers,
		tour.IsActive,
		tour.CreatedAt,
		tour.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create tour",
			zap.Error(err),
			zap.String("guide_id", tour.GuideID.String()),
			zap.String("title", tour.Title),
		)
		return fmt.Errorf("create tour %s: %w", tour.Title, err)
	}

	return nil
}

func (r *tourRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tour, error) {
	query := `SELECT ` + tourColumns + ` FROM tours WHERE id = $1 AND deleted_at IS NULL`

	var tour entity.Tour
	err := r.db.QueryRow(ctx, query, id).Scan(
		&tour.ID,
		&tour.GuideID,
		&tour.Title,
		&tour.Description,
		&tour.Location,
		&tour.BasePriceCents,
		&tour.PricingMode,
		&tour.MaxTravelers,
		&tour.IsActive,
		&tour.CreatedAt,
		&tour.UpdatedAt,
		&tour.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find tour by ID",
			zap.Error(err),
			zap.String("tour_id", id.String()),
		)
		return nil, fmt.Errorf("find tour by ID %s: %w", id.String(), err)
	}

	return &tour, nil
}

func (r *tourRepository) FindAllActive(ctx context.Context, limit, offset int) ([]*entity.Tour, error) {
	query := `
		SELECT ` + tourColumns + `
		FROM tours
		WHERE is_active = true AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	return r.findMany(ctx, query, limit, offset)
}

func (r *tourRepository) CountAllActive(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM tours WHERE is_active = true AND deleted_at IS NULL`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count tours", zap.Error(err))
		return 0, fmt.Errorf("count tours: %w", err)
	}

	return count, nil
}

func (r *tourRepository) FindByGuideID(ctx context.Context, guideID uuid.UUID, limit, offset int) ([]*entity.Tour, error) {
	query := `
		SELECT ` + tourColumns + `
		FROM tours
		WHERE guide_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.findMany(ctx, query, guideID, limit, offset)
}

func (r *tourRepository) findMany(ctx context.Context, query string, args ...any) ([]*entity.Tour, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query tours", zap.Error(err))
		return nil, fmt.Errorf("query tours: %w", err)
	}
	defer rows.Close()

	var tours []*entity.Tour
	for rows.Next() {
		var tour entity.Tour
		err := rows.Scan(
			&tour.ID,
			&tour.GuideID,
			&tour.Title,
			&tour.Description,
			&tour.Location,
			&tour.BasePriceCents,
			&tour.PricingMode,
			&tour.MaxTravelers,
			&tour.IsActive,
			&tour.CreatedAt,
			&tour.UpdatedAt,
			&tour.DeletedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan tour row", zap.Error(err))
			return nil, fmt.Errorf("scan tour row: %w", err)
		}
		tours = append(tours, &tour)
	}

	return tours, nil
}

func (r *tourRepository) Update(ctx context.Context, tour *entity.Tour) error {
	query := `
		UPDATE tours
		SET title = $2, description = $3, location = $4, base_price_cents = $5,
		    pricing_mode = $6, max_travelers = $7, is_active = $8, updated_at = $9
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		tour.ID,
		tour.Title,
		tour.Description,
		tour.Location,
		tour.BasePriceCents,
		tour.PricingMode,
		tour.MaxTravelers,
		tour.IsActive,
		tour.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update tour",
			zap.Error(err),
			zap.String("tour_id", tour.ID.String()),
		)
		return fmt.Errorf("update tour %s: %w", tour.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("tour %s not found", tour.ID.String())
	}

	return nil
}

func (r *tourRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE tours SET is_active = false, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to deactivate tour",
			zap.Error(err),
			zap.String("tour_id", id.String()),
		)
		return fmt.Errorf("deactivate tour %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("tour %s not found", id.String())
	}

	return nil
}
