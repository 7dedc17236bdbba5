package models

import "time"

// Booking records the scheduling and completion facts for a request. One
// booking per request in the normal flow, created when work starts.
type Booking struct {
	BaseModel
	RequestID   string        `gorm:"not null;index" json:"request_id"`
	StartDate   time.Time     `gorm:"not null" json:"start_date"`
	EndDate     *time.Time    `json:"end_date"`
	TotalAmount *float64      `json:"total_amount"`
	Status      BookingStatus `gorm:"type:varchar(20);default:'scheduled'" json:"status"`

	Request *ServiceRequest `gorm:"foreignKey:RequestID" json:"request,omitempty"`
}
