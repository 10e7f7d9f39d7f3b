package usecase

import (
	"tour-booking/internal/data/entity"
)

// ComputeTotal menghitung total harga booking dalam cents.
//
// Harga dasar dan setiap extra punya pricing mode sendiri: per_traveler
// dikalikan jumlah traveler, per_group flat. Aritmatika integer cents
// supaya hasil deterministik — hitung ulang dari input yang sama selalu
// menghasilkan nilai yang sama persis.
func ComputeTotal(basePriceCents int64, baseMode entity.PricingMode, travelerCount int, extras []entity.BookingExtra) (int64, error) {
	if basePriceCents < 0 {
		return 0, newValidationError("base price must not be negative")
	}
	if travelerCount < 1 {
		return 0, newValidationError("traveler count must be at least 1")
	}
	if !baseMode.Valid() {
		return 0, newValidationError("unknown pricing mode %q", baseMode)
	}

	total := basePriceCents
	if baseMode == entity.PricingPerTraveler {
		total = basePriceCents * int64(travelerCount)
	}

	for i, extra := range extras {
		if extra.PriceCents < 0 {
			return 0, newValidationError("extra %d: price must not be negative", i)
		}
		if !extra.PricingMode.Valid() {
			return 0, newValidationError("extra %d: unknown pricing mode %q", i, extra.PricingMode)
		}

		contribution := extra.PriceCents
		if extra.PricingMode == entity.PricingPerTraveler {
			contribution = extra.PriceCents * int64(travelerCount)
		}
		total += contribution
	}

	return total, nil
}
