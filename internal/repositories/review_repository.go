package repositories

import (
	"errors"

	"gorm.io/gorm"

	"juaconnect_backend/internal/models"
)

var ErrReviewNotFound = errors.New("review not found")

type ReviewRepository interface {
	Create(review *models.Review) error
	FindByID(id string) (*models.Review, error)
	FindByBooking(bookingID string) (*models.Review, error)
	FindByArtisan(artisanID string) ([]models.Review, error)
	AverageRatingForArtisan(artisanID string) (float64, error)
}

type ReviewRepositoryImpl struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &ReviewRepositoryImpl{db: db}
}

func (r *ReviewRepositoryImpl) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

func (r *ReviewRepositoryImpl) FindByID(id string) (*models.Review, error) {
	var review models.Review
	err := r.db.Preload("Reviewer").First(&review, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) FindByBooking(bookingID string) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("booking_id = ?", bookingID).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

// FindByArtisan collects reviews for work the artisan delivered, joining
// through bookings and their requests.
func (r *ReviewRepositoryImpl) FindByArtisan(artisanID string) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Preload("Reviewer").
		Joins("JOIN bookings ON bookings.id = reviews.booking_id").
		Joins("JOIN service_requests ON service_requests.id = bookings.request_id").
		Where("service_requests.artisan_id = ?", artisanID).
		Order("reviews.created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepositoryImpl) AverageRatingForArtisan(artisanID string) (float64, error) {
	var avg float64
	err := r.db.Model(&models.Review{}).
		Joins("JOIN bookings ON bookings.id = reviews.booking_id").
		Joins("JOIN service_requests ON service_requests.id = bookings.request_id").
		Where("service_requests.artisan_id = ?", artisanID).
		Select("COALESCE(AVG(reviews.rating), 0)").
		Scan(&avg).Error
	return avg, err
}
