package request

type CreateTourRequest struct {
	Title          string `json:"title" validate:"required,min=3,max=200"`
	Description    string `json:"description" validate:"required"`
	Location       string `json:"location" validate:"required"`
	BasePriceCents int64  `json:"base_price_cents" validate:"required,gte=0"`
	PricingMode    string `json:"pricing_mode" validate:"required,oneof=per_group per_traveler"`
	MaxTravelers   int    `json:"max_travelers" validate:"required,min=1"`
}

type UpdateTourRequest struct {
	Title          *string `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description    *string `json:"description,omitempty"`
	Location       *string `json:"location,omitempty"`
	BasePriceCents *int64  `json:"base_price_cents,omitempty" validate:"omitempty,gte=0"`
	PricingMode    *string `json:"pricing_mode,omitempty" validate:"omitempty,oneof=per_group per_traveler"`
	MaxTravelers   *int    `json:"max_travelers,omitempty" validate:"omitempty,min=1"`
	IsActive       *bool   `json:"is_active,omitempty"`
}
