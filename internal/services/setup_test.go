package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"juaconnect_backend/internal/config"
	"juaconnect_backend/internal/database"
	"juaconnect_backend/internal/email"
	"juaconnect_backend/internal/logger"
	"juaconnect_backend/internal/models"
	"juaconnect_backend/internal/repositories"
	"juaconnect_backend/internal/services/dto"
)

// testEnv wires the full service stack over an in-memory sqlite database.
type testEnv struct {
	db *gorm.DB

	userRepo         repositories.UserRepository
	requestRepo      repositories.RequestRepository
	bookingRepo      repositories.BookingRepository
	reviewRepo       repositories.ReviewRepository
	notificationRepo repositories.NotificationRepository

	auth          AuthService
	users         UserService
	requests      RequestService
	reviews       ReviewService
	notifications NotificationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTLDays = 30
	config.AppConfig = cfg
	logger.Init("test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// One connection so every query sees the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	env := &testEnv{
		db:               db,
		userRepo:         repositories.NewUserRepository(db),
		requestRepo:      repositories.NewRequestRepository(db),
		bookingRepo:      repositories.NewBookingRepository(db),
		reviewRepo:       repositories.NewReviewRepository(db),
		notificationRepo: repositories.NewNotificationRepository(db),
	}

	env.notifications = NewNotificationService(env.notificationRepo)
	env.auth = NewAuthService(env.userRepo, email.NewNoopProvider())
	env.users = NewUserService(env.userRepo, env.reviewRepo)
	env.requests = NewRequestService(env.requestRepo, env.bookingRepo, env.userRepo, env.notifications)
	env.reviews = NewReviewService(env.reviewRepo, env.bookingRepo, env.requestRepo, env.userRepo)

	return env
}

func (e *testEnv) signupClient(t *testing.T, username string) *models.User {
	t.Helper()
	resp, err := e.auth.Signup(dto.SignupRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret123",
		Role:     models.UserRoleClient,
		Location: "Nairobi",
	})
	require.NoError(t, err)
	return resp.User
}

func (e *testEnv) signupArtisan(t *testing.T, username, category string) *models.User {
	t.Helper()
	resp, err := e.auth.Signup(dto.SignupRequest{
		Username:        username,
		Email:           username + "@example.com",
		Password:        "secret123",
		Role:            models.UserRoleArtisan,
		Location:        "Nairobi",
		ServiceCategory: category,
		ExperienceYears: 5,
	})
	require.NoError(t, err)
	return resp.User
}

func (e *testEnv) createRequest(t *testing.T, clientID, category string) *models.ServiceRequest {
	t.Helper()
	request, err := e.requests.CreateRequest(clientID, dto.CreateRequestRequest{
		ServiceCategory: category,
		Description:     "Fix the kitchen sink",
		Location:        "Westlands",
	})
	require.NoError(t, err)
	return request
}

// notificationsFor returns the caller's notifications newest-unread first.
func (e *testEnv) notificationsFor(t *testing.T, userID string) []models.Notification {
	t.Helper()
	resp, err := e.notifications.GetUserNotifications(userID)
	require.NoError(t, err)
	return resp.Notifications
}
