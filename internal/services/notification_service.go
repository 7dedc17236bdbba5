package services

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"juaconnect_backend/internal/logger"
	"juaconnect_backend/internal/models"
	"juaconnect_backend/internal/repositories"
	"juaconnect_backend/internal/services/dto"
	"juaconnect_backend/pkg/apperrors"
)

// NotificationService is the dispatcher plus the read/unread bookkeeping.
// Dispatch and the Notify* factories are fire-and-forget: an append failure
// is logged and swallowed so it can never roll back or block the lifecycle
// transition that triggered it.
type NotificationService interface {
	Dispatch(userID, title, message string, notificationType models.NotificationType, relatedID *string, data map[string]interface{})

	// Factory methods for lifecycle side effects
	NotifyRequestAccepted(clientID string, request *models.ServiceRequest, artisanName string)
	NotifyRequestDeclined(clientID string, request *models.ServiceRequest)
	NotifyWorkStarted(clientID string, request *models.ServiceRequest)
	NotifyWorkCancelled(clientID string, request *models.ServiceRequest)
	NotifyPaymentDue(clientID string, request *models.ServiceRequest)
	NotifyBookingRequested(artisanID string, request *models.ServiceRequest, clientName string)

	GetUserNotifications(userID string) (*dto.NotificationListResponse, error)
	GetUnreadCount(userID string) (int64, error)
	MarkAsRead(userID, notificationID string) error
	MarkAllAsRead(userID string) error
	DeleteNotification(userID, notificationID string) error
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) Dispatch(userID, title, message string, notificationType models.NotificationType, relatedID *string, data map[string]interface{}) {
	var dataJSON datatypes.JSON
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			logger.Warn("failed to marshal notification data", "error", err, "user_id", userID)
		} else {
			dataJSON = datatypes.JSON(raw)
		}
	}

	notification := &models.Notification{
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      notificationType,
		RelatedID: relatedID,
		Data:      dataJSON,
		IsRead:    false,
	}

	if err := s.notificationRepo.Create(notification); err != nil {
		logger.Error("failed to create notification",
			"error", err,
			"user_id", userID,
			"title", title,
		)
	}
}

// ---------------- Lifecycle factories ----------------

func (s *notificationService) NotifyRequestAccepted(clientID string, request *models.ServiceRequest, artisanName string) {
	s.Dispatch(
		clientID,
		"Request Accepted",
		fmt.Sprintf("%s has accepted your %s request.", artisanName, request.ServiceCategory),
		models.NotificationTypeBooking,
		&request.ID,
		map[string]interface{}{"request_id": request.ID, "category": request.ServiceCategory},
	)
}

func (s *notificationService) NotifyRequestDeclined(clientID string, request *models.ServiceRequest) {
	s.Dispatch(
		clientID,
		"Request Declined",
		fmt.Sprintf("Your %s request was declined. It has been cancelled.", request.ServiceCategory),
		models.NotificationTypeBooking,
		&request.ID,
		nil,
	)
}

func (s *notificationService) NotifyWorkStarted(clientID string, request *models.ServiceRequest) {
	s.Dispatch(
		clientID,
		"Work Started",
		fmt.Sprintf("Work on your %s request has started.", request.ServiceCategory),
		models.NotificationTypeBooking,
		&request.ID,
		nil,
	)
}

func (s *notificationService) NotifyWorkCancelled(clientID string, request *models.ServiceRequest) {
	s.Dispatch(
		clientID,
		"Work Cancelled",
		fmt.Sprintf("Work on your %s request was cancelled by the artisan.", request.ServiceCategory),
		models.NotificationTypeBooking,
		&request.ID,
		nil,
	)
}

func (s *notificationService) NotifyPaymentDue(clientID string, request *models.ServiceRequest) {
	s.Dispatch(
		clientID,
		"Payment Due",
		fmt.Sprintf("Your %s request is complete. Please settle the payment with your artisan.", request.ServiceCategory),
		models.NotificationTypePayment,
		&request.ID,
		nil,
	)
}

func (s *notificationService) NotifyBookingRequested(artisanID string, request *models.ServiceRequest, clientName string) {
	s.Dispatch(
		artisanID,
		"New Booking Request",
		fmt.Sprintf("%s has requested your services for %s.", clientName, request.ServiceCategory),
		models.NotificationTypeBooking,
		&request.ID,
		nil,
	)
}

// ---------------- Read/unread bookkeeping ----------------

func (s *notificationService) GetUserNotifications(userID string) (*dto.NotificationListResponse, error) {
	notifications, err := s.notificationRepo.FindByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	var unread int64
	for _, n := range notifications {
		if !n.IsRead {
			unread++
		}
	}

	if notifications == nil {
		notifications = []models.Notification{}
	}

	return &dto.NotificationListResponse{
		Notifications: notifications,
		UnreadCount:   unread,
	}, nil
}

func (s *notificationService) GetUnreadCount(userID string) (int64, error) {
	count, err := s.notificationRepo.CountUnread(userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

func (s *notificationService) MarkAsRead(userID, notificationID string) error {
	notification, err := s.notificationRepo.FindByID(notificationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotFound(err, "Notification")
		}
		return apperrors.InternalError(err)
	}
	if notification.UserID != userID {
		return apperrors.ErrInsufficientPermissions
	}
	if err := s.notificationRepo.MarkAsRead(notificationID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(userID string) error {
	if err := s.notificationRepo.MarkAllAsRead(userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *notificationService) DeleteNotification(userID, notificationID string) error {
	notification, err := s.notificationRepo.FindByID(notificationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotFound(err, "Notification")
		}
		return apperrors.InternalError(err)
	}
	if notification.UserID != userID {
		return apperrors.ErrInsufficientPermissions
	}
	if err := s.notificationRepo.Delete(notificationID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
