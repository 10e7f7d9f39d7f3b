package request

type RegisterRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=30"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Phone    *string `json:"phone,omitempty"`
	Role     string  `json:"role" validate:"required,oneof=traveler guide"`
}

type LoginRequest struct {
	// Username menerima username atau email
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
