package models

// Review is left by the client after a booking completes. The model itself
// does not enforce the "after completion" rule; the review service does.
type Review struct {
	BaseModel
	BookingID  string `gorm:"not null;index" json:"booking_id"`
	ReviewerID string `gorm:"not null;index" json:"reviewer_id"`
	Rating     int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment    string `json:"comment"`

	Booking  *Booking `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
	Reviewer *User    `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}
