package response

import (
	"time"

	"tour-booking/internal/data/entity"
)

type TourResponse struct {
	ID             string             `json:"id"`
	GuideID        string             `json:"guide_id"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	Location       string             `json:"location"`
	BasePriceCents int64              `json:"base_price_cents"`
	PricingMode    entity.PricingMode `json:"pricing_mode"`
	MaxTravelers   int                `json:"max_travelers"`
	IsActive       bool               `json:"is_active"`
	CreatedAt      time.Time          `json:"created_at"`
}

func TourToResponse(tour *entity.Tour) TourResponse {
	return TourResponse{
		ID:             tour.ID.String(),
		GuideID:        tour.GuideID.String(),
		Title:          tour.Title,
		Description:    tour.Description,
		Location:       tour.Location,
		BasePriceCents: tour.BasePriceCents,
		PricingMode:    tour.PricingMode,
		MaxTravelers:   tour.MaxTravelers,
		IsActive:       tour.IsActive,
		CreatedAt:      tour.CreatedAt,
	}
}
