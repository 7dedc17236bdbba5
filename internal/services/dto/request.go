package dto

type CreateRequestRequest struct {
	ServiceCategory string   `json:"service_category" validate:"required"`
	Description     string   `json:"description" validate:"required"`
	Location        string   `json:"location" validate:"required"`
	Budget          *float64 `json:"budget" validate:"omitempty,gte=0"`
}

// BookArtisanRequest creates a pending request addressed to one artisan.
type BookArtisanRequest struct {
	ArtisanID       string   `json:"artisan_id" validate:"required"`
	ServiceCategory string   `json:"service_category" validate:"required"`
	Description     string   `json:"description" validate:"required"`
	Location        string   `json:"location" validate:"required"`
	Budget          *float64 `json:"budget" validate:"omitempty,gte=0"`
}

// StartWorkRequest carries the agreed amount for the booking opened when
// work starts.
type StartWorkRequest struct {
	TotalAmount *float64 `json:"total_amount" validate:"omitempty,gte=0"`
}
