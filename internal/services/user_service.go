package services

import (
	"encoding/json"

	"gorm.io/datatypes"

	"juaconnect_backend/internal/models"
	"juaconnect_backend/internal/repositories"
	"juaconnect_backend/internal/services/dto"
	"juaconnect_backend/pkg/apperrors"
)

// UserService covers profiles and the artisan directory.
type UserService interface {
	GetProfile(userID string) (*models.User, error)
	UpdateProfile(userID string, req dto.UpdateProfileRequest) (*models.User, error)

	ListArtisans() ([]models.User, error)
	SearchArtisans(query dto.ArtisanSearchQuery) ([]models.User, error)
	GetArtisan(artisanID string) (*models.User, error)
}

type userService struct {
	userRepo   repositories.UserRepository
	reviewRepo repositories.ReviewRepository
}

func NewUserService(userRepo repositories.UserRepository, reviewRepo repositories.ReviewRepository) UserService {
	return &userService{
		userRepo:   userRepo,
		reviewRepo: reviewRepo,
	}
}

func (s *userService) GetProfile(userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err, "User")
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

// UpdateProfile applies a merge-patch: nil fields keep their stored value.
// Artisan-only fields are silently dropped for client accounts.
func (s *userService) UpdateProfile(userID string, req dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}

	if user.IsArtisan() {
		if req.ServiceCategory != nil {
			user.ServiceCategory = *req.ServiceCategory
		}
		if req.ExperienceYears != nil {
			user.ExperienceYears = *req.ExperienceYears
		}
		if req.ProfilePhoto != nil {
			user.ProfilePhoto = *req.ProfilePhoto
		}
		if req.Skills != nil {
			user.SetSkills(*req.Skills)
		}
		if req.HourlyRate != nil {
			user.HourlyRate = *req.HourlyRate
		}
		if req.Availability != nil {
			if json.Valid([]byte(*req.Availability)) {
				user.Availability = datatypes.JSON(*req.Availability)
			} else {
				return nil, apperrors.NewBadRequestError("availability must be valid JSON")
			}
		}
		if req.Languages != nil {
			user.Languages = *req.Languages
		}
		if req.ServiceArea != nil {
			user.ServiceArea = *req.ServiceArea
		}
	}

	if err := s.userRepo.Update(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err, "User")
		}
		return nil, apperrors.InternalError(err)
	}

	return s.GetProfile(userID)
}

// ---------------- Artisan directory ----------------

func (s *userService) ListArtisans() ([]models.User, error) {
	artisans, err := s.userRepo.FindVerifiedArtisans()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return artisans, nil
}

func (s *userService) SearchArtisans(query dto.ArtisanSearchQuery) ([]models.User, error) {
	artisans, err := s.userRepo.SearchArtisans(repositories.ArtisanSearchCriteria{
		ServiceCategory: query.ServiceCategory,
		Location:        query.Location,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return artisans, nil
}

func (s *userService) GetArtisan(artisanID string) (*models.User, error) {
	artisan, err := s.userRepo.FindArtisanByID(artisanID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err, "Artisan")
		}
		return nil, apperrors.InternalError(err)
	}
	return artisan, nil
}
