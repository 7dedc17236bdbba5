package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"juaconnect_backend/internal/models"
)

var (
	ErrRequestNotFound = errors.New("service request not found")
	// ErrAcceptConflict means the conditional accept matched no row: the
	// request was taken by another artisan or left the pending status
	// between read and write.
	ErrAcceptConflict = errors.New("request no longer available for accept")
)

type RequestRepository interface {
	Create(request *models.ServiceRequest) error
	FindByID(id string) (*models.ServiceRequest, error)
	FindByClient(clientID string) ([]models.ServiceRequest, error)

	// Artisan views
	FindAvailableForArtisan(artisanID string) ([]models.ServiceRequest, error)
	FindAcceptedByArtisan(artisanID string) ([]models.ServiceRequest, error)

	// Transitions
	AcceptRequest(requestID, artisanID string) error
	UpdateStatus(requestID string, status models.RequestStatus) error
	UpdateStatusClearArtisan(requestID string, status models.RequestStatus) error
}

type RequestRepositoryImpl struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &RequestRepositoryImpl{db: db}
}

func (r *RequestRepositoryImpl) Create(request *models.ServiceRequest) error {
	return r.db.Create(request).Error
}

func (r *RequestRepositoryImpl) FindByID(id string) (*models.ServiceRequest, error) {
	var request models.ServiceRequest
	err := r.db.Preload("Client").Preload("Artisan").First(&request, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *RequestRepositoryImpl) FindByClient(clientID string) ([]models.ServiceRequest, error) {
	var requests []models.ServiceRequest
	err := r.db.Preload("Artisan").
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// FindAvailableForArtisan lists pending requests the artisan can act on:
// the open board plus direct bookings addressed to them.
func (r *RequestRepositoryImpl) FindAvailableForArtisan(artisanID string) ([]models.ServiceRequest, error) {
	var requests []models.ServiceRequest
	err := r.db.Preload("Client").
		Where("status = ? AND (artisan_id IS NULL OR artisan_id = ?)",
			models.RequestStatusPending, artisanID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *RequestRepositoryImpl) FindAcceptedByArtisan(artisanID string) ([]models.ServiceRequest, error) {
	var requests []models.ServiceRequest
	err := r.db.Preload("Client").
		Where("artisan_id = ? AND status IN ?",
			artisanID,
			[]models.RequestStatus{models.RequestStatusAccepted, models.RequestStatusInProgress}).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// AcceptRequest assigns the artisan with a single conditional update. The
// WHERE clause is the whole defence against the double-accept race: only a
// pending request that is unassigned (or already addressed to this artisan
// by a direct booking) matches. Zero rows affected means the caller lost.
func (r *RequestRepositoryImpl) AcceptRequest(requestID, artisanID string) error {
	result := r.db.Model(&models.ServiceRequest{}).
		Where("id = ? AND status = ? AND (artisan_id IS NULL OR artisan_id = ?)",
			requestID, models.RequestStatusPending, artisanID).
		Updates(map[string]interface{}{
			"artisan_id": artisanID,
			"status":     models.RequestStatusAccepted,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAcceptConflict
	}
	return nil
}

func (r *RequestRepositoryImpl) UpdateStatus(requestID string, status models.RequestStatus) error {
	result := r.db.Model(&models.ServiceRequest{}).
		Where("id = ?", requestID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRequestNotFound
	}
	return nil
}

// UpdateStatusClearArtisan also drops the assignment, used when a request
// is cancelled before work started.
func (r *RequestRepositoryImpl) UpdateStatusClearArtisan(requestID string, status models.RequestStatus) error {
	result := r.db.Model(&models.ServiceRequest{}).
		Where("id = ?", requestID).
		Updates(map[string]interface{}{
			"status":     status,
			"artisan_id": nil,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRequestNotFound
	}
	return nil
}
