package models

// ServiceRequest is a client's ask for work. ArtisanID stays nil while the
// request is pending on the open board; direct bookings address a specific
// artisan from the start. Status transitions are owned by the request
// service, nothing else writes Status.
type ServiceRequest struct {
	BaseModel
	ClientID        string        `gorm:"not null;index" json:"client_id"`
	ArtisanID       *string       `gorm:"index" json:"artisan_id"`
	ServiceCategory string        `gorm:"not null" json:"service_category"`
	Description     string        `gorm:"not null" json:"description"`
	Location        string        `gorm:"not null" json:"location"`
	Budget          *float64      `json:"budget"`
	Status          RequestStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`

	// Relations
	Client   *User     `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Artisan  *User     `gorm:"foreignKey:ArtisanID" json:"artisan,omitempty"`
	Bookings []Booking `gorm:"foreignKey:RequestID" json:"bookings,omitempty"`
}
