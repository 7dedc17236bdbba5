package dto

import "juaconnect_backend/internal/models"

type SignupRequest struct {
	Username string          `json:"username" validate:"required,min=3,max=80"`
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=6"`
	Role     models.UserRole `json:"user_type" validate:"omitempty,oneof=client artisan"`
	Phone    string          `json:"phone"`
	Location string          `json:"location"`

	// Accepted only when signing up as an artisan
	ServiceCategory string `json:"service_category"`
	ExperienceYears int    `json:"experience_years"`
	Bio             string `json:"bio"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}
