package usecase

import (
	"testing"

	"tour-booking/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotal(t *testing.T) {
	tests := []struct {
		name          string
		basePrice     int64
		baseMode      entity.PricingMode
		travelerCount int
		extras        []entity.BookingExtra
		want          int64
	}{
		{
			name:          "per group base without extras",
			basePrice:     100_00,
			baseMode:      entity.PricingPerGroup,
			travelerCount: 4,
			want:          100_00,
		},
		{
			name:          "per traveler base multiplies by count",
			basePrice:     25_00,
			baseMode:      entity.PricingPerTraveler,
			travelerCount: 4,
			want:          100_00,
		},
		{
			name:          "mixed modes",
			basePrice:     100_00,
			baseMode:      entity.PricingPerGroup,
			travelerCount: 4,
			extras: []entity.BookingExtra{
				{Description: "Lunch", PriceCents: 10_00, PricingMode: entity.PricingPerTraveler},
			},
			want: 140_00,
		},
		{
			name:          "per group extra is flat",
			basePrice:     50_00,
			baseMode:      entity.PricingPerGroup,
			travelerCount: 10,
			extras: []entity.BookingExtra{
				{Description: "Private van", PriceCents: 80_00, PricingMode: entity.PricingPerGroup},
				{Description: "Entry ticket", PriceCents: 5_00, PricingMode: entity.PricingPerTraveler},
			},
			want: 50_00 + 80_00 + 50_00,
		},
		{
			name:          "free extra contributes nothing",
			basePrice:     30_00,
			baseMode:      entity.PricingPerGroup,
			travelerCount: 2,
			extras: []entity.BookingExtra{
				{Description: "Hotel pickup", PriceCents: 0, PricingMode: entity.PricingPerGroup},
			},
			want: 30_00,
		},
		{
			name:          "single traveler per traveler equals flat",
			basePrice:     75_50,
			baseMode:      entity.PricingPerTraveler,
			travelerCount: 1,
			want:          75_50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeTotal(tt.basePrice, tt.baseMode, tt.travelerCount, tt.extras)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeTotal_Deterministic(t *testing.T) {
	extras := []entity.BookingExtra{
		{Description: "Lunch", PriceCents: 12_34, PricingMode: entity.PricingPerTraveler},
		{Description: "Museum", PriceCents: 7_77, PricingMode: entity.PricingPerGroup},
	}

	first, err := ComputeTotal(99_99, entity.PricingPerTraveler, 7, extras)
	require.NoError(t, err)

	// Hitung ulang dari input yang sama harus identik, tanpa drift.
	for i := 0; i < 100; i++ {
		got, err := ComputeTotal(99_99, entity.PricingPerTraveler, 7, extras)
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}
}

func TestComputeTotal_Invalid(t *testing.T) {
	tests := []struct {
		name          string
		basePrice     int64
		baseMode      entity.PricingMode
		travelerCount int
		extras        []entity.BookingExtra
	}{
		{
			name:          "negative base price",
			basePrice:     -1,
			baseMode:      entity.PricingPerGroup,
			travelerCount: 1,
		},
		{
			name:          "zero travelers",
			basePrice:     10_00,
			baseMode:      entity.PricingPerGroup,
			travelerCount: 0,
		},
		{
			name:          "unknown base mode",
			basePrice:     10_00,
			baseMode:      "per_hour",
			travelerCount: 1,
		},
		{
			name:          "negative extra price",
			basePrice:     10_00,
			baseMode:      entity.PricingPerGroup,
			travelerCount: 1,
			extras: []entity.BookingExtra{
				{Description: "Discount", PriceCents: -5_00, PricingMode: entity.PricingPerGroup},
			},
		},
		{
			name:          "unknown extra mode",
			basePrice:     10_00,
			baseMode:      entity.PricingPerGroup,
			travelerCount: 1,
			extras: []entity.BookingExtra{
				{Description: "Lunch", PriceCents: 5_00, PricingMode: "per_day"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeTotal(tt.basePrice, tt.baseMode, tt.travelerCount, tt.extras)
			require.Error(t, err)
			assert.Equal(t, ErrKindValidation, KindOf(err))
		})
	}
}
