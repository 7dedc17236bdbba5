package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"juaconnect_backend/internal/models"
)

var ErrBookingNotFound = errors.New("booking not found")

type BookingRepository interface {
	Create(booking *models.Booking) error
	FindByID(id string) (*models.Booking, error)
	FindByRequest(requestID string) (*models.Booking, error)
	FindByClient(clientID string) ([]models.Booking, error)
	Complete(bookingID string, endDate time.Time) error
	Cancel(bookingID string) error
}

type BookingRepositoryImpl struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &BookingRepositoryImpl{db: db}
}

func (r *BookingRepositoryImpl) Create(booking *models.Booking) error {
	return r.db.Create(booking).Error
}

func (r *BookingRepositoryImpl) FindByID(id string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.Preload("Request").First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// FindByRequest returns the most recent booking for a request.
func (r *BookingRepositoryImpl) FindByRequest(requestID string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.Where("request_id = ?", requestID).
		Order("created_at DESC").
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// FindByClient joins through service_requests: bookings belong to a client
// via the request that spawned them. An explicit join, not lazy traversal.
func (r *BookingRepositoryImpl) FindByClient(clientID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.
		Joins("JOIN service_requests ON service_requests.id = bookings.request_id").
		Where("service_requests.client_id = ?", clientID).
		Order("bookings.created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepositoryImpl) Complete(bookingID string, endDate time.Time) error {
	result := r.db.Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Updates(map[string]interface{}{
			"status":     models.BookingStatusCompleted,
			"end_date":   endDate,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepositoryImpl) Cancel(bookingID string) error {
	result := r.db.Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Updates(map[string]interface{}{
			"status":     models.BookingStatusCancelled,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}
