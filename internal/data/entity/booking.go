package entity

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusAgreed    BookingStatus = "agreed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusPaid      BookingStatus = "paid"
)

// Terminal berarti booking tidak boleh diubah lagi lewat negosiasi.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCancelled || s == BookingStatusPaid
}

type Booking struct {
	Base
	BookingRef       string        `db:"booking_ref"`
	TravelerID       uuid.UUID     `db:"traveler_id"`
	GuideID          uuid.UUID     `db:"guide_id"`
	TourID           uuid.UUID     `db:"tour_id"`
	TravelerCount    int           `db:"traveler_count"`
	TotalPriceCents  int64         `db:"total_price_cents"`
	TravelerApproved bool          `db:"traveler_approved"`
	GuideApproved    bool          `db:"guide_approved"`
	Status           BookingStatus `db:"status"`
	Version          int           `db:"version"`
	Extras           []BookingExtra
}

// BookingExtra adalah item tambahan (makan siang, transport, dll) yang
// dinegosiasikan antara traveler dan guide di atas harga dasar tour.
type BookingExtra struct {
	ID          uuid.UUID   `db:"id"`
	BookingID   uuid.UUID   `db:"booking_id"`
	Position    int         `db:"position"`
	Description string      `db:"description"`
	PriceCents  int64       `db:"price_cents"`
	PricingMode PricingMode `db:"pricing_mode"`
}
