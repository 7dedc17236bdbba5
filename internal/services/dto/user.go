package dto

// UpdateProfileRequest is a merge-patch: only non-nil fields overwrite the
// stored profile. Artisan-only fields are ignored for clients.
type UpdateProfileRequest struct {
	Phone    *string `json:"phone"`
	Location *string `json:"location"`
	Bio      *string `json:"bio"`

	// Artisan-only
	ServiceCategory *string   `json:"service_category"`
	ExperienceYears *int      `json:"experience_years" validate:"omitempty,gte=0"`
	ProfilePhoto    *string   `json:"profile_photo"`
	Skills          *[]string `json:"skills"`
	HourlyRate      *float64  `json:"hourly_rate" validate:"omitempty,gte=0"`
	Availability    *string   `json:"availability"`
	Languages       *string   `json:"languages"`
	ServiceArea     *string   `json:"service_area"`
}

type ArtisanSearchQuery struct {
	ServiceCategory string `form:"service_category"`
	Location        string `form:"location"`
}
