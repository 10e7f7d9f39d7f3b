package response

import (
	"time"

	"tour-booking/internal/data/entity"
)

type BookingExtraResponse struct {
	Description string             `json:"description"`
	PriceCents  int64              `json:"price_cents"`
	PricingMode entity.PricingMode `json:"pricing_mode"`
}

type BookingResponse struct {
	ID               string                 `json:"id"`
	BookingRef       string                 `json:"booking_ref"`
	TravelerID       string                 `json:"traveler_id"`
	GuideID          string                 `json:"guide_id"`
	TourID           string                 `json:"tour_id"`
	TourTitle        string                 `json:"tour_title,omitempty"`
	TravelerCount    int                    `json:"traveler_count"`
	TotalPriceCents  int64                  `json:"total_price_cents"`
	Extras           []BookingExtraResponse `json:"extras"`
	TravelerApproved bool                   `json:"traveler_approved"`
	GuideApproved    bool                   `json:"guide_approved"`
	Status           entity.BookingStatus   `json:"status"`
	Version          int                    `json:"version"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	extras := make([]BookingExtraResponse, len(booking.Extras))
	for i, extra := range booking.Extras {
		extras[i] = BookingExtraResponse{
			Description: extra.Description,
			PriceCents:  extra.PriceCents,
			PricingMode: extra.PricingMode,
		}
	}

	return BookingResponse{
		ID:               booking.ID.String(),
		BookingRef:       booking.BookingRef,
		TravelerID:       booking.TravelerID.String(),
		GuideID:          booking.GuideID.String(),
		TourID:           booking.TourID.String(),
		TravelerCount:    booking.TravelerCount,
		TotalPriceCents:  booking.TotalPriceCents,
		Extras:           extras,
		TravelerApproved: booking.TravelerApproved,
		GuideApproved:    booking.GuideApproved,
		Status:           booking.Status,
		Version:          booking.Version,
		CreatedAt:        booking.CreatedAt,
		UpdatedAt:        booking.UpdatedAt,
	}
}
