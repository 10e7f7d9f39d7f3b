package entity

import (
	"github.com/google/uuid"
)

// PricingMode menentukan apakah harga dihitung sekali per grup
// atau dikalikan jumlah traveler.
type PricingMode string

const (
	PricingPerGroup    PricingMode = "per_group"
	PricingPerTraveler PricingMode = "per_traveler"
)

func (m PricingMode) Valid() bool {
	return m == PricingPerGroup || m == PricingPerTraveler
}

type Tour struct {
	Base
	GuideID        uuid.UUID   `db:"guide_id"`
	Title          string      `db:"title"`
	Description    string      `db:"description"`
	Location       string      `db:"location"`
	BasePriceCents int64       `db:"base_price_cents"`
	PricingMode    PricingMode `db:"pricing_mode"`
	MaxTravelers   int         `db:"max_travelers"`
	IsActive       bool        `db:"is_active"`
}
