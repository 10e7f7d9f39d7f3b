package repository

import (
	"context"
	"errors"
	"fmt"

	"tour-booking/internal/data/entity"
	"tour-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrVersionConflict berarti record sudah diubah request lain sejak di-load.
// Caller harus reload dan retry.
var ErrVersionConflict = errors.New("booking was modified by another request")

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByParticipantID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByParticipantID(ctx context.Context, userID uuid.UUID) (int64, error)

	// Save menulis hasil negosiasi secara atomik dengan compare-and-swap
	// pada kolom version. Return ErrVersionConflict kalau versi sudah berubah.
	Save(ctx context.Context, booking *entity.Booking, expectedVersion int) error
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus, expectedVersion int) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, booking_ref, traveler_id, guide_id, tour_id, traveler_count,
	       total_price_cents, traveler_approved, guide_approved, status, version, created_at, updated_at`

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, booking_ref, traveler_id, guide_id, tour_id, traveler_count,
		                      total_price_cents, traveler_approved, guide_approved, status, version,
		                      created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.BookingRef,
		booking.TravelerID,
		booking.GuideID,
		booking.TourID,
		booking.TravelerCount,
		booking.TotalPriceCents,
		booking.TravelerApproved,
		booking.GuideApproved,
		booking.Status,
		booking.Version,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_ref", booking.BookingRef),
			zap.String("traveler_id", booking.TravelerID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.BookingRef, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.BookingRef,
		&booking.TravelerID,
		&booking.GuideID,
		&booking.TourID,
		&booking.TravelerCount,
		&booking.TotalPriceCents,
		&booking.TravelerApproved,
		&booking.GuideApproved,
		&booking.Status,
		&booking.Version,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	extras, err := r.findExtras(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	booking.Extras = extras

	return &booking, nil
}

func (r *bookingRepository) findExtras(ctx context.Context, bookingID uuid.UUID) ([]entity.BookingExtra, error) {
	query := `
		SELECT id, booking_id, position, description, price_cents, pricing_mode
		FROM booking_extras
		WHERE booking_id = $1
		ORDER BY position
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find booking extras",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find booking extras %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var extras []entity.BookingExtra
	for rows.Next() {
		var extra entity.BookingExtra
		err := rows.Scan(
			&extra.ID,
			&extra.BookingID,
			&extra.Position,
			&extra.Description,
			&extra.PriceCents,
			&extra.PricingMode,
		)
		if err != nil {
			r.log.Error("Failed to scan booking extra row", zap.Error(err))
			return nil, fmt.Errorf("scan booking extra row: %w", err)
		}
		extras = append(extras, extra)
	}

	return extras, nil
}

func (r *bookingRepository) FindByParticipantID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE traveler_id = $1 OR guide_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by participant ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings by participant ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.BookingRef,
			&booking.TravelerID,
			&booking.GuideID,
			&booking.TourID,
			&booking.TravelerCount,
			&booking.TotalPriceCents,
			&booking.TravelerApproved,
			&booking.GuideApproved,
			&booking.Status,
			&booking.Version,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	for _, booking := range bookings {
		extras, err := r.findExtras(ctx, booking.ID)
		if err != nil {
			return nil, err
		}
		booking.Extras = extras
	}

	return bookings, nil
}

func (r *bookingRepository) CountByParticipantID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE traveler_id = $1 OR guide_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by participant ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by participant ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) Save(ctx context.Context, booking *entity.Booking, expectedVersion int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin save booking tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE bookings
		SET traveler_count = $3, total_price_cents = $4, traveler_approved = $5,
		    guide_approved = $6, status = $7, updated_at = $8, version = version + 1
		WHERE id = $1 AND version = $2
	`

	result, err := tx.Exec(ctx, query,
		booking.ID,
		expectedVersion,
		booking.TravelerCount,
		booking.TotalPriceCents,
		booking.TravelerApproved,
		booking.GuideApproved,
		booking.Status,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to save booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("save booking %s: %w", booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		r.log.Warn("Optimistic lock lost on booking save",
			zap.String("booking_id", booking.ID.String()),
			zap.Int("expected_version", expectedVersion),
		)
		return ErrVersionConflict
	}

	// Tulis ulang extras di transaksi yang sama supaya item list dan total
	// tidak pernah terlihat tidak konsisten.
	if _, err := tx.Exec(ctx, `DELETE FROM booking_extras WHERE booking_id = $1`, booking.ID); err != nil {
		return fmt.Errorf("clear booking extras %s: %w", booking.ID.String(), err)
	}

	insertQuery := `
		INSERT INTO booking_extras (id, booking_id, position, description, price_cents, pricing_mode)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for i := range booking.Extras {
		extra := &booking.Extras[i]
		if extra.ID == uuid.Nil {
			extra.ID = uuid.New()
		}
		extra.BookingID = booking.ID
		extra.Position = i

		if _, err := tx.Exec(ctx, insertQuery,
			extra.ID,
			extra.BookingID,
			extra.Position,
			extra.Description,
			extra.PriceCents,
			extra.PricingMode,
		); err != nil {
			return fmt.Errorf("insert booking extra %s: %w", booking.ID.String(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit save booking %s: %w", booking.ID.String(), err)
	}

	booking.Version = expectedVersion + 1
	return nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus, expectedVersion int) error {
	query := `
		UPDATE bookings
		SET status = $3, updated_at = NOW(), version = version + 1
		WHERE id = $1 AND version = $2
	`

	result, err := r.db.Exec(ctx, query, bookingID, expectedVersion, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return ErrVersionConflict
	}

	return nil
}
