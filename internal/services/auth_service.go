package services

import (
	"juaconnect_backend/internal/auth"
	"juaconnect_backend/internal/email"
	"juaconnect_backend/internal/logger"
	"juaconnect_backend/internal/models"
	"juaconnect_backend/internal/repositories"
	"juaconnect_backend/internal/services/dto"
	"juaconnect_backend/pkg/apperrors"
)

type AuthService interface {
	Signup(req dto.SignupRequest) (*dto.AuthResponse, error)
	Signin(req dto.SigninRequest) (*dto.AuthResponse, error)
}

type authService struct {
	userRepo      repositories.UserRepository
	emailProvider email.Provider
}

func NewAuthService(userRepo repositories.UserRepository, emailProvider email.Provider) AuthService {
	return &authService{
		userRepo:      userRepo,
		emailProvider: emailProvider,
	}
}

// Signup registers a user and signs them in. Artisans are marked verified
// immediately; there is no separate vetting step. The welcome email is best
// effort and never fails the registration.
func (s *authService) Signup(req dto.SignupRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	role := req.Role
	if role == "" {
		role = models.UserRoleClient
	}
	if role != models.UserRoleClient && role != models.UserRoleArtisan {
		return nil, apperrors.ErrInvalidUserRole
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		Phone:        req.Phone,
		Location:     req.Location,
	}
	if role == models.UserRoleArtisan {
		user.ServiceCategory = req.ServiceCategory
		user.ExperienceYears = req.ExperienceYears
		user.Bio = req.Bio
		user.IsVerified = true
	}

	if err := s.userRepo.Create(user); err != nil {
		switch {
		case apperrors.Is(err, repositories.ErrEmailTaken):
			return nil, apperrors.ErrEmailAlreadyExists
		case apperrors.Is(err, repositories.ErrUsernameTaken):
			return nil, apperrors.ErrUsernameAlreadyExists
		default:
			return nil, apperrors.InternalError(err)
		}
	}

	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if sendErr := s.emailProvider.Send(user.Email, "Welcome to JuaConnect", email.WelcomeBody(user.Username, string(user.Role))); sendErr != nil {
		logger.Warn("failed to send welcome email", "error", sendErr, "user_id", user.ID)
	}

	logger.Info("user registered", "user_id", user.ID, "role", string(user.Role))
	return &dto.AuthResponse{Token: token, User: user}, nil
}

// Signin exchanges credentials for a bearer token. A missing account and a
// wrong password produce the same error.
func (s *authService) Signin(req dto.SigninRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("user signed in", "user_id", user.ID)
	return &dto.AuthResponse{Token: token, User: user}, nil
}
