package dto

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"required,min=2,max=255"`
	Role     string `json:"role" validate:"required,oneof=admin editor"`
	IsActive *bool  `json:"is_active"`
}

// UpdateUserRequest changes only the fields that are present.
type UpdateUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Password *string `json:"password" validate:"omitempty,min=8,max=72"`
	FullName *string `json:"full_name" validate:"omitempty,min=2,max=255"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin editor"`
	IsActive *bool   `json:"is_active"`
}
