package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"juaconnect_backend/internal/models"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
)

// ArtisanSearchCriteria filters the artisan directory. Both filters are
// case-insensitive substring matches; Location checks the location and
// service_area columns.
type ArtisanSearchCriteria struct {
	ServiceCategory string
	Location        string
}

type UserRepository interface {
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindByUsername(username string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	UpdateRating(userID string, rating float64) error

	// Artisan directory
	FindVerifiedArtisans() ([]models.User, error)
	SearchArtisans(criteria ArtisanSearchCriteria) ([]models.User, error)
	FindArtisanByID(id string) (*models.User, error)
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Create inserts the user, mapping uniqueness violations to sentinel
// errors so the service layer can answer 400 instead of 500.
func (r *UserRepositoryImpl) Create(user *models.User) error {
	var existing models.User
	if err := r.db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrEmailTaken
	}
	if err := r.db.Where("username = ?", user.Username).First(&existing).Error; err == nil {
		return ErrUsernameTaken
	}
	return r.db.Create(user).Error
}

func (r *UserRepositoryImpl) Update(user *models.User) error {
	result := r.db.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"phone":            user.Phone,
		"location":         user.Location,
		"service_category": user.ServiceCategory,
		"experience_years": user.ExperienceYears,
		"bio":              user.Bio,
		"profile_photo":    user.ProfilePhoto,
		"skills":           user.Skills,
		"hourly_rate":      user.HourlyRate,
		"availability":     user.Availability,
		"languages":        user.Languages,
		"service_area":     user.ServiceArea,
		"updated_at":       time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateRating(userID string, rating float64) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Update("rating", rating)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Artisan directory

func (r *UserRepositoryImpl) FindVerifiedArtisans() ([]models.User, error) {
	var artisans []models.User
	err := r.db.
		Where("role = ? AND is_verified = ?", models.UserRoleArtisan, true).
		Order("rating DESC").
		Find(&artisans).Error
	return artisans, err
}

// SearchArtisans returns verified artisans matching the criteria.
// LOWER/LIKE instead of ILIKE keeps the query portable across postgres and
// the sqlite test databases.
func (r *UserRepositoryImpl) SearchArtisans(criteria ArtisanSearchCriteria) ([]models.User, error) {
	query := r.db.Where("role = ? AND is_verified = ?", models.UserRoleArtisan, true)

	if criteria.ServiceCategory != "" {
		pattern := "%" + criteria.ServiceCategory + "%"
		query = query.Where("LOWER(service_category) LIKE LOWER(?)", pattern)
	}

	if criteria.Location != "" {
		pattern := "%" + criteria.Location + "%"
		query = query.Where(
			"LOWER(location) LIKE LOWER(?) OR LOWER(service_area) LIKE LOWER(?)",
			pattern, pattern,
		)
	}

	var artisans []models.User
	err := query.Order("rating DESC").Find(&artisans).Error
	return artisans, err
}

func (r *UserRepositoryImpl) FindArtisanByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ? AND role = ?", id, models.UserRoleArtisan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
