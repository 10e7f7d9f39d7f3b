package request

type CreateBookingRequest struct {
	TourID        string `json:"tour_id" validate:"required,uuid4"`
	TravelerCount int    `json:"traveler_count" validate:"required,min=1"`
}

// ExtraRequest adalah satu item tambahan dalam proposal negosiasi.
type ExtraRequest struct {
	Description string `json:"description" validate:"required,max=500"`
	PriceCents  int64  `json:"price_cents" validate:"gte=0"`
	PricingMode string `json:"pricing_mode" validate:"required,oneof=per_group per_traveler"`
}

// ApprovalRequest set flag persetujuan untuk satu sisi. Traveler/guide
// hanya boleh menyebut sisinya sendiri; admin boleh menyebut keduanya.
type ApprovalRequest struct {
	Side  string `json:"side" validate:"required,oneof=traveler guide"`
	Value bool   `json:"value"`
}

// NegotiateBookingRequest: minimal salah satu dari Extras / Approval harus ada.
// Extras nil berarti "tidak ada perubahan item"; slice kosong berarti
// "hapus semua extras".
type NegotiateBookingRequest struct {
	Extras      *[]ExtraRequest  `json:"extras,omitempty" validate:"omitempty,dive"`
	Approval    *ApprovalRequest `json:"approval,omitempty"`
	Recalculate *bool            `json:"recalculate,omitempty"`
}
