package entity

import (
	"github.com/google/uuid"
)

type Review struct {
	Base
	TourID  uuid.UUID `db:"tour_id"`
	UserID  uuid.UUID `db:"user_id"`
	Rating  int       `db:"rating"`
	Comment *string   `db:"comment"`
}
