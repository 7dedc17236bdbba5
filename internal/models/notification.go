package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification is appended by the request lifecycle as a side effect.
// RelatedID points at the request or booking that triggered it.
type Notification struct {
	BaseModel
	UserID    string           `gorm:"not null;index" json:"user_id"`
	Title     string           `gorm:"not null" json:"title"`
	Message   string           `gorm:"not null" json:"message"`
	Type      NotificationType `gorm:"type:varchar(20);default:'booking'" json:"notification_type"`
	RelatedID *string          `json:"related_id"`
	Data      datatypes.JSON   `json:"data,omitempty"` // {"request_id": "...", "category": "..."}
	IsRead    bool             `gorm:"default:false;index" json:"is_read"`
	ReadAt    *time.Time       `json:"read_at"`
}
