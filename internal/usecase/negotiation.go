package usecase

import (
	"tour-booking/internal/data/entity"
)

// Approval set flag persetujuan satu sisi ke value tertentu.
type Approval struct {
	Side  ApprovalSide
	Value bool
}

// NegotiationProposal adalah mutasi yang diminta caller. Minimal salah
// satu: ExtrasPresent atau Approval. ExtrasPresent dengan slice kosong
// berarti "hapus semua extras", beda dengan "tidak ada perubahan item".
type NegotiationProposal struct {
	Extras        []entity.BookingExtra
	ExtrasPresent bool
	Approval      *Approval
	Recalculate   bool
}

// applyNegotiation menjalankan satu langkah negosiasi di memory.
//
// Fungsi ini pure: tidak ada I/O, tidak ada locking. Booking dimutasi
// hanya kalau return nil; semua kegagalan keluar sebagai *DomainError
// sebelum ada field yang berubah. Concurrency di-handle di layer store
// lewat compare-and-swap version, bukan di sini.
func applyNegotiation(booking *entity.Booking, role BookingRole, basePriceCents int64, baseMode entity.PricingMode, prop NegotiationProposal) error {
	// 1. Authorization
	if role == BookingRoleNone {
		return newForbiddenError("you are not a participant of this booking")
	}

	actingSide, hasOwnSide := ownSide(role)
	if prop.Approval != nil {
		if prop.Approval.Side != SideTraveler && prop.Approval.Side != SideGuide {
			return newValidationError("unknown approval side %q", prop.Approval.Side)
		}
		if hasOwnSide && prop.Approval.Side != actingSide {
			return newForbiddenError("you are not authorized to approve on behalf of the %s", prop.Approval.Side)
		}
	}

	// 2. Terminal state
	if booking.Status.Terminal() {
		return newImmutableError("booking is %s and can no longer be negotiated", booking.Status)
	}

	// 3. Request shape
	if !prop.ExtrasPresent && prop.Approval == nil {
		return newValidationError("nothing to apply: provide extras or an approval")
	}

	if prop.ExtrasPresent {
		// Usulan item baru selalu butuh hitung ulang harga.
		if !prop.Recalculate {
			return newValidationError("recalculate=false is only allowed for a pure approval without item changes")
		}
		for i, extra := range prop.Extras {
			if extra.Description == "" {
				return newValidationError("extra %d: description is required", i)
			}
			if extra.PriceCents < 0 {
				return newValidationError("extra %d: price must not be negative", i)
			}
			if !extra.PricingMode.Valid() {
				return newValidationError("extra %d: unknown pricing mode %q", i, extra.PricingMode)
			}
		}

		total, err := ComputeTotal(basePriceCents, baseMode, booking.TravelerCount, prop.Extras)
		if err != nil {
			return err
		}

		booking.Extras = prop.Extras
		booking.TotalPriceCents = total

		// Admin boleh bertindak untuk salah satu sisi; default-nya sisi
		// guide, atau sisi yang disebut di approval.
		side := actingSide
		if !hasOwnSide {
			side = SideGuide
			if prop.Approval != nil {
				side = prop.Approval.Side
			}
		}

		switch side {
		case SideGuide:
			booking.GuideApproved = true
			// Usulan tanpa extras berarti tidak ada lagi yang perlu
			// disepakati; sisi traveler ikut setuju otomatis.
			booking.TravelerApproved = len(prop.Extras) == 0
		case SideTraveler:
			booking.TravelerApproved = true
			booking.GuideApproved = false
		}

		// Approval eksplisit yang dikirim bersama item proposal tetap
		// dihormati untuk sisi yang disebut.
		if prop.Approval != nil {
			setApproval(booking, prop.Approval.Side, prop.Approval.Value)
		}
	} else {
		// 4. Pure approval
		if prop.Recalculate {
			total, err := ComputeTotal(basePriceCents, baseMode, booking.TravelerCount, booking.Extras)
			if err != nil {
				return err
			}
			booking.TotalPriceCents = total
		}

		approval := prop.Approval
		setApproval(booking, approval.Side, approval.Value)

		// Persetujuan sepihak langsung menutup negosiasi: sisi lawan
		// ikut di-set true, tidak menunggu acknowledgment terpisah.
		if approval.Value {
			setApproval(booking, otherSide(approval.Side), true)
		}
	}

	// 5. Status mengikuti kedua flag, tidak pernah out of sync.
	if booking.TravelerApproved && booking.GuideApproved {
		booking.Status = entity.BookingStatusAgreed
	} else {
		booking.Status = entity.BookingStatusPending
	}

	return nil
}

func setApproval(booking *entity.Booking, side ApprovalSide, value bool) {
	switch side {
	case SideTraveler:
		booking.TravelerApproved = value
	case SideGuide:
		booking.GuideApproved = value
	}
}

func otherSide(side ApprovalSide) ApprovalSide {
	if side == SideTraveler {
		return SideGuide
	}
	return SideTraveler
}
