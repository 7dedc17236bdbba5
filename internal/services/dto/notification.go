package dto

import "juaconnect_backend/internal/models"

// NotificationListResponse is the payload of GET /v1/notifications: the
// full list unread-first plus the unread counter the dashboard badges.
type NotificationListResponse struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unread_count"`
}
