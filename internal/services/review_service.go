package services

import (
	"juaconnect_backend/internal/logger"
	"juaconnect_backend/internal/models"
	"juaconnect_backend/internal/repositories"
	"juaconnect_backend/internal/services/dto"
	"juaconnect_backend/pkg/apperrors"
)

type ReviewService interface {
	CreateReview(reviewerID string, req dto.CreateReviewRequest) (*models.Review, error)
	GetArtisanReviews(artisanID string) ([]models.Review, error)
}

type reviewService struct {
	reviewRepo  repositories.ReviewRepository
	bookingRepo repositories.BookingRepository
	requestRepo repositories.RequestRepository
	userRepo    repositories.UserRepository
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	bookingRepo repositories.BookingRepository,
	requestRepo repositories.RequestRepository,
	userRepo repositories.UserRepository,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
		requestRepo: requestRepo,
		userRepo:    userRepo,
	}
}

// CreateReview records the client's rating for a completed booking and
// refreshes the artisan's aggregate rating. One review per booking; only
// the client who owns the underlying request may write it.
func (s *reviewService) CreateReview(reviewerID string, req dto.CreateReviewRequest) (*models.Review, error) {
	booking, err := s.bookingRepo.FindByID(req.BookingID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrBookingNotFound) {
			return nil, apperrors.ErrNotFound(err, "Booking")
		}
		return nil, apperrors.InternalError(err)
	}

	request, err := s.requestRepo.FindByID(booking.RequestID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRequestNotFound) {
			return nil, apperrors.ErrNotFound(err, "Request")
		}
		return nil, apperrors.InternalError(err)
	}
	if request.ClientID != reviewerID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if booking.Status != models.BookingStatusCompleted {
		return nil, apperrors.NewBadRequestError("Only completed bookings can be reviewed")
	}

	if _, err := s.reviewRepo.FindByBooking(req.BookingID); err == nil {
		return nil, apperrors.NewBadRequestError("This booking has already been reviewed")
	} else if !apperrors.Is(err, repositories.ErrReviewNotFound) {
		return nil, apperrors.InternalError(err)
	}

	review := &models.Review{
		BookingID:  req.BookingID,
		ReviewerID: reviewerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if request.ArtisanID != nil {
		s.refreshArtisanRating(*request.ArtisanID)
	}

	logger.Info("review created", "review_id", review.ID, "booking_id", req.BookingID, "rating", req.Rating)
	return review, nil
}

func (s *reviewService) GetArtisanReviews(artisanID string) ([]models.Review, error) {
	if _, err := s.userRepo.FindArtisanByID(artisanID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err, "Artisan")
		}
		return nil, apperrors.InternalError(err)
	}

	reviews, err := s.reviewRepo.FindByArtisan(artisanID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return reviews, nil
}

// refreshArtisanRating recomputes the stored average. Failures only skew
// the cached aggregate, so they are logged and dropped.
func (s *reviewService) refreshArtisanRating(artisanID string) {
	avg, err := s.reviewRepo.AverageRatingForArtisan(artisanID)
	if err != nil {
		logger.Warn("failed to compute artisan rating", "error", err, "artisan_id", artisanID)
		return
	}
	if err := s.userRepo.UpdateRating(artisanID, avg); err != nil {
		logger.Warn("failed to store artisan rating", "error", err, "artisan_id", artisanID)
	}
}
