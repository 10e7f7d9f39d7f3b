package entity

type UserRole string

const (
	RoleTraveler UserRole = "traveler"
	RoleGuide    UserRole = "guide"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	Base
	Username     string   `db:"username"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Phone        *string  `db:"phone"`
	Role         UserRole `db:"role"`
	Bio          *string  `db:"bio"`
	IsActive     bool     `db:"is_active"`
}
