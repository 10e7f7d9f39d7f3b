package request

type UpdateProfileRequest struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=30"`
	Phone    *string `json:"phone,omitempty"`
	Bio      *string `json:"bio,omitempty" validate:"omitempty,max=1000"`
}
