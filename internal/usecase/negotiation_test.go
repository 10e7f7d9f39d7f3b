package usecase

import (
	"testing"

	"tour-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingBooking() *entity.Booking {
	return &entity.Booking{
		Base: entity.Base{
			ID: uuid.New(),
		},
		BookingRef:      "TRIP-20260831-120000-0001",
		TravelerID:      uuid.New(),
		GuideID:         uuid.New(),
		TourID:          uuid.New(),
		TravelerCount:   4,
		TotalPriceCents: 100_00,
		Status:          entity.BookingStatusPending,
		Version:         1,
	}
}

func extrasOf(items ...entity.BookingExtra) NegotiationProposal {
	return NegotiationProposal{
		Extras:        items,
		ExtrasPresent: true,
		Recalculate:   true,
	}
}

func approvalOf(side ApprovalSide, value bool) NegotiationProposal {
	return NegotiationProposal{
		Approval:    &Approval{Side: side, Value: value},
		Recalculate: true,
	}
}

func TestApplyNegotiation_GuideProposal(t *testing.T) {
	booking := pendingBooking()

	err := applyNegotiation(booking, BookingRoleGuide, 100_00, entity.PricingPerGroup, extrasOf(
		entity.BookingExtra{Description: "Lunch", PriceCents: 10_00, PricingMode: entity.PricingPerTraveler},
	))
	require.NoError(t, err)

	assert.Equal(t, int64(140_00), booking.TotalPriceCents)
	assert.True(t, booking.GuideApproved)
	assert.False(t, booking.TravelerApproved, "proposal resets the other side")
	assert.Equal(t, entity.BookingStatusPending, booking.Status)
}

func TestApplyNegotiation_CounterProposalResetsOtherSide(t *testing.T) {
	booking := pendingBooking()
	booking.GuideApproved = true

	// Traveler balas dengan usulan sendiri; persetujuan guide gugur.
	err := applyNegotiation(booking, BookingRoleTraveler, 100_00, entity.PricingPerGroup, extrasOf(
		entity.BookingExtra{Description: "Lunch", PriceCents: 5_00, PricingMode: entity.PricingPerTraveler},
	))
	require.NoError(t, err)

	assert.True(t, booking.TravelerApproved)
	assert.False(t, booking.GuideApproved)
	assert.Equal(t, int64(120_00), booking.TotalPriceCents)
	assert.Equal(t, entity.BookingStatusPending, booking.Status)
}

func TestApplyNegotiation_EmptyExtrasApprovesBothSides(t *testing.T) {
	booking := pendingBooking()
	booking.Extras = []entity.BookingExtra{
		{Description: "Lunch", PriceCents: 10_00, PricingMode: entity.PricingPerGroup},
	}
	booking.TotalPriceCents = 110_00

	// Guide mengosongkan extras: tidak ada lagi yang dinegosiasikan.
	err := applyNegotiation(booking, BookingRoleGuide, 100_00, entity.PricingPerGroup, extrasOf())
	require.NoError(t, err)

	assert.Empty(t, booking.Extras)
	assert.Equal(t, int64(100_00), booking.TotalPriceCents)
	assert.True(t, booking.GuideApproved)
	assert.True(t, booking.TravelerApproved)
	assert.Equal(t, entity.BookingStatusAgreed, booking.Status)
}

func TestApplyNegotiation_UnilateralApprovalCloses(t *testing.T) {
	booking := pendingBooking()
	booking.GuideApproved = true

	// Traveler setuju dengan usulan terakhir guide; deal tertutup.
	err := applyNegotiation(booking, BookingRoleTraveler, 100_00, entity.PricingPerGroup, approvalOf(SideTraveler, true))
	require.NoError(t, err)

	assert.True(t, booking.TravelerApproved)
	assert.True(t, booking.GuideApproved)
	assert.Equal(t, entity.BookingStatusAgreed, booking.Status)
}

func TestApplyNegotiation_ApprovalWithoutPriorProposalCloses(t *testing.T) {
	booking := pendingBooking()

	// Persetujuan sepihak menutup negosiasi meski lawan belum approve.
	err := applyNegotiation(booking, BookingRoleGuide, 100_00, entity.PricingPerGroup, approvalOf(SideGuide, true))
	require.NoError(t, err)

	assert.True(t, booking.GuideApproved)
	assert.True(t, booking.TravelerApproved)
	assert.Equal(t, entity.BookingStatusAgreed, booking.Status)
}

func TestApplyNegotiation_WithdrawApproval(t *testing.T) {
	booking := pendingBooking()
	booking.TravelerApproved = true

	err := applyNegotiation(booking, BookingRoleTraveler, 100_00, entity.PricingPerGroup, approvalOf(SideTraveler, false))
	require.NoError(t, err)

	assert.False(t, booking.TravelerApproved)
	assert.Equal(t, entity.BookingStatusPending, booking.Status)
}

func TestApplyNegotiation_ApprovalRecalculatesTotal(t *testing.T) {
	booking := pendingBooking()
	booking.Extras = []entity.BookingExtra{
		{Description: "Lunch", PriceCents: 10_00, PricingMode: entity.PricingPerTraveler},
	}
	// Total basi, misalnya harga tour berubah sejak proposal terakhir.
	booking.TotalPriceCents = 1

	err := applyNegotiation(booking, BookingRoleTraveler, 100_00, entity.PricingPerGroup, approvalOf(SideTraveler, true))
	require.NoError(t, err)

	assert.Equal(t, int64(140_00), booking.TotalPriceCents)
}

func TestApplyNegotiation_ApprovalWithoutRecalculateKeepsTotal(t *testing.T) {
	booking := pendingBooking()
	booking.TotalPriceCents = 123_45

	prop := NegotiationProposal{
		Approval:    &Approval{Side: SideTraveler, Value: true},
		Recalculate: false,
	}
	err := applyNegotiation(booking, BookingRoleTraveler, 100_00, entity.PricingPerGroup, prop)
	require.NoError(t, err)

	assert.Equal(t, int64(123_45), booking.TotalPriceCents)
	assert.Equal(t, entity.BookingStatusAgreed, booking.Status)
}

func TestApplyNegotiation_AdminActsForNamedSide(t *testing.T) {
	booking := pendingBooking()

	prop := extrasOf(entity.BookingExtra{Description: "Lunch", PriceCents: 10_00, PricingMode: entity.PricingPerGroup})
	prop.Approval = &Approval{Side: SideTraveler, Value: true}

	err := applyNegotiation(booking, BookingRoleAdmin, 100_00, entity.PricingPerGroup, prop)
	require.NoError(t, err)

	assert.True(t, booking.TravelerApproved)
	assert.False(t, booking.GuideApproved)
}

func TestApplyNegotiation_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*entity.Booking)
		role     BookingRole
		prop     NegotiationProposal
		wantKind ErrKind
	}{
		{
			name:     "non participant",
			role:     BookingRoleNone,
			prop:     approvalOf(SideTraveler, true),
			wantKind: ErrKindForbidden,
		},
		{
			name:     "traveler approving for guide",
			role:     BookingRoleTraveler,
			prop:     approvalOf(SideGuide, true),
			wantKind: ErrKindForbidden,
		},
		{
			name:     "guide approving for traveler",
			role:     BookingRoleGuide,
			prop:     approvalOf(SideTraveler, true),
			wantKind: ErrKindForbidden,
		},
		{
			name:     "unknown approval side",
			role:     BookingRoleAdmin,
			prop:     approvalOf("supervisor", true),
			wantKind: ErrKindValidation,
		},
		{
			name:     "cancelled booking",
			setup:    func(b *entity.Booking) { b.Status = entity.BookingStatusCancelled },
			role:     BookingRoleTraveler,
			prop:     approvalOf(SideTraveler, true),
			wantKind: ErrKindImmutable,
		},
		{
			name:     "paid booking",
			setup:    func(b *entity.Booking) { b.Status = entity.BookingStatusPaid },
			role:     BookingRoleGuide,
			prop:     extrasOf(entity.BookingExtra{Description: "Lunch", PriceCents: 1_00, PricingMode: entity.PricingPerGroup}),
			wantKind: ErrKindImmutable,
		},
		{
			name:     "nothing to apply",
			role:     BookingRoleTraveler,
			prop:     NegotiationProposal{Recalculate: true},
			wantKind: ErrKindValidation,
		},
		{
			name: "extras without recalculate",
			role: BookingRoleGuide,
			prop: NegotiationProposal{
				Extras:        []entity.BookingExtra{{Description: "Lunch", PriceCents: 1_00, PricingMode: entity.PricingPerGroup}},
				ExtrasPresent: true,
				Recalculate:   false,
			},
			wantKind: ErrKindValidation,
		},
		{
			name:     "extra without description",
			role:     BookingRoleGuide,
			prop:     extrasOf(entity.BookingExtra{PriceCents: 1_00, PricingMode: entity.PricingPerGroup}),
			wantKind: ErrKindValidation,
		},
		{
			name:     "extra with negative price",
			role:     BookingRoleGuide,
			prop:     extrasOf(entity.BookingExtra{Description: "Discount", PriceCents: -1, PricingMode: entity.PricingPerGroup}),
			wantKind: ErrKindValidation,
		},
		{
			name:     "extra with unknown mode",
			role:     BookingRoleGuide,
			prop:     extrasOf(entity.BookingExtra{Description: "Lunch", PriceCents: 1_00, PricingMode: "per_day"}),
			wantKind: ErrKindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := pendingBooking()
			if tt.setup != nil {
				tt.setup(booking)
			}
			before := *booking

			err := applyNegotiation(booking, tt.role, 100_00, entity.PricingPerGroup, tt.prop)
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, KindOf(err))

			// Booking tidak boleh berubah sedikit pun saat ditolak.
			assert.Equal(t, before.TotalPriceCents, booking.TotalPriceCents)
			assert.Equal(t, before.TravelerApproved, booking.TravelerApproved)
			assert.Equal(t, before.GuideApproved, booking.GuideApproved)
			assert.Equal(t, before.Status, booking.Status)
			assert.Len(t, booking.Extras, len(before.Extras))
		})
	}
}

func TestApplyNegotiation_IdempotentReApproval(t *testing.T) {
	booking := pendingBooking()

	require.NoError(t, applyNegotiation(booking, BookingRoleTraveler, 100_00, entity.PricingPerGroup, approvalOf(SideTraveler, true)))
	require.Equal(t, entity.BookingStatusAgreed, booking.Status)

	// Approve ulang pada booking yang sudah agreed tidak mengubah apa pun.
	err := applyNegotiation(booking, BookingRoleTraveler, 100_00, entity.PricingPerGroup, approvalOf(SideTraveler, true))
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusAgreed, booking.Status)
	assert.True(t, booking.TravelerApproved)
	assert.True(t, booking.GuideApproved)
}

func TestApplyNegotiation_ProposalReopensAgreed(t *testing.T) {
	booking := pendingBooking()
	booking.TravelerApproved = true
	booking.GuideApproved = true
	booking.Status = entity.BookingStatusAgreed

	// Agreed belum terminal; usulan baru membuka lagi negosiasi.
	err := applyNegotiation(booking, BookingRoleGuide, 100_00, entity.PricingPerGroup, extrasOf(
		entity.BookingExtra{Description: "Boat upgrade", PriceCents: 20_00, PricingMode: entity.PricingPerGroup},
	))
	require.NoError(t, err)

	assert.Equal(t, entity.BookingStatusPending, booking.Status)
	assert.False(t, booking.TravelerApproved)
	assert.True(t, booking.GuideApproved)
	assert.Equal(t, int64(120_00), booking.TotalPriceCents)
}

func TestResolveBookingRole(t *testing.T) {
	booking := pendingBooking()

	traveler := &entity.User{Base: entity.Base{ID: booking.TravelerID}, Role: entity.RoleTraveler}
	guide := &entity.User{Base: entity.Base{ID: booking.GuideID}, Role: entity.RoleGuide}
	admin := &entity.User{Base: entity.Base{ID: uuid.New()}, Role: entity.RoleAdmin}
	stranger := &entity.User{Base: entity.Base{ID: uuid.New()}, Role: entity.RoleTraveler}

	assert.Equal(t, BookingRoleTraveler, ResolveBookingRole(traveler, booking))
	assert.Equal(t, BookingRoleGuide, ResolveBookingRole(guide, booking))
	assert.Equal(t, BookingRoleAdmin, ResolveBookingRole(admin, booking))
	assert.Equal(t, BookingRoleNone, ResolveBookingRole(stranger, booking))
	assert.Equal(t, BookingRoleNone, ResolveBookingRole(nil, booking))
}
