package usecase

import (
	"context"
	"encoding/json"
	"time"

	"tour-booking/internal/data/entity"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type BookingEvent string

const (
	EventBookingCreated    BookingEvent = "booking.created"
	EventBookingNegotiated BookingEvent = "booking.negotiated"
	EventBookingCancelled  BookingEvent = "booking.cancelled"
	EventBookingPaid       BookingEvent = "booking.paid"
)

// BookingEventsChannel adalah channel pub/sub untuk event booking.
// Worker notifikasi (email/push) subscribe di sini.
const BookingEventsChannel = "bookings:events"

// BookingNotifier dipanggil service setelah mutasi sukses tersimpan,
// fire-and-forget. Engine negosiasi tidak pernah memanggil ini.
type BookingNotifier interface {
	Notify(ctx context.Context, event BookingEvent, booking *entity.Booking)
}

type bookingEventPayload struct {
	Event            BookingEvent         `json:"event"`
	BookingID        string               `json:"booking_id"`
	BookingRef       string               `json:"booking_ref"`
	TravelerID       string               `json:"traveler_id"`
	GuideID          string               `json:"guide_id"`
	Status           entity.BookingStatus `json:"status"`
	TotalPriceCents  int64                `json:"total_price_cents"`
	TravelerApproved bool                 `json:"traveler_approved"`
	GuideApproved    bool                 `json:"guide_approved"`
	Version          int                  `json:"version"`
	At               time.Time            `json:"at"`
}

type redisNotifier struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedisNotifier(client *redis.Client, log *zap.Logger) BookingNotifier {
	return &redisNotifier{
		client: client,
		log:    log.With(zap.String("service", "notifier")),
	}
}

func (n *redisNotifier) Notify(ctx context.Context, event BookingEvent, booking *entity.Booking) {
	payload := bookingEventPayload{
		Event:            event,
		BookingID:        booking.ID.String(),
		BookingRef:       booking.BookingRef,
		TravelerID:       booking.TravelerID.String(),
		GuideID:          booking.GuideID.String(),
		Status:           booking.Status,
		TotalPriceCents:  booking.TotalPriceCents,
		TravelerApproved: booking.TravelerApproved,
		GuideApproved:    booking.GuideApproved,
		Version:          booking.Version,
		At:               time.Now(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		n.log.Error("Failed to marshal booking event", zap.Error(err))
		return
	}

	// Gagal publish tidak boleh menggagalkan request; cukup di-log.
	if err := n.client.Publish(ctx, BookingEventsChannel, data).Err(); err != nil {
		n.log.Error("Failed to publish booking event",
			zap.Error(err),
			zap.String("event", string(event)),
			zap.String("booking_id", booking.ID.String()),
		)
		return
	}

	n.log.Info("Booking event published",
		zap.String("event", string(event)),
		zap.String("booking_id", booking.ID.String()),
		zap.String("status", string(booking.Status)),
	)
}
