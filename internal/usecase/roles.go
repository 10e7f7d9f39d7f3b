package usecase

import (
	"tour-booking/internal/data/entity"
)

// BookingRole adalah posisi caller terhadap satu booking tertentu,
// bukan role global user.
type BookingRole string

const (
	BookingRoleNone     BookingRole = ""
	BookingRoleTraveler BookingRole = "traveler"
	BookingRoleGuide    BookingRole = "guide"
	BookingRoleAdmin    BookingRole = "admin"
)

// ApprovalSide menentukan flag persetujuan mana yang di-set.
type ApprovalSide string

const (
	SideTraveler ApprovalSide = "traveler"
	SideGuide    ApprovalSide = "guide"
)

// ResolveBookingRole menentukan role caller untuk booking ini.
// Admin mengalahkan semua; selain itu dicocokkan ke traveler_id / guide_id.
func ResolveBookingRole(caller *entity.User, booking *entity.Booking) BookingRole {
	if caller == nil || booking == nil {
		return BookingRoleNone
	}

	if caller.Role == entity.RoleAdmin {
		return BookingRoleAdmin
	}
	if caller.ID == booking.TravelerID {
		return BookingRoleTraveler
	}
	if caller.ID == booking.GuideID {
		return BookingRoleGuide
	}

	return BookingRoleNone
}

// ownSide mengembalikan sisi persetujuan milik role, dan false untuk
// role yang tidak punya sisi sendiri (admin, none).
func ownSide(role BookingRole) (ApprovalSide, bool) {
	switch role {
	case BookingRoleTraveler:
		return SideTraveler, true
	case BookingRoleGuide:
		return SideGuide, true
	default:
		return "", false
	}
}
