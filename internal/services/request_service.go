package services

import (
	"time"

	"juaconnect_backend/internal/logger"
	"juaconnect_backend/internal/models"
	"juaconnect_backend/internal/repositories"
	"juaconnect_backend/internal/services/dto"
	"juaconnect_backend/pkg/apperrors"
)

// RequestService owns the service request lifecycle:
//
//	pending -> accepted -> in_progress -> completed
//	    \         \            \
//	     +---------+------------+--> cancelled
//
// Transitions are guarded by role and assignment checks first, then by the
// source status. Accept is a conditional update so two artisans racing for
// the same request cannot both win.
type RequestService interface {
	// Client side
	CreateRequest(clientID string, req dto.CreateRequestRequest) (*models.ServiceRequest, error)
	BookArtisan(clientID string, req dto.BookArtisanRequest) (*models.ServiceRequest, error)
	GetClientRequests(clientID string) ([]models.ServiceRequest, error)
	CancelRequest(clientID, requestID string) (*models.ServiceRequest, error)
	GetClientBookings(clientID string) ([]models.Booking, error)

	// Artisan side
	GetAvailableRequests(artisanID string) ([]models.ServiceRequest, error)
	GetAcceptedRequests(artisanID string) ([]models.ServiceRequest, error)
	AcceptRequest(artisanID, requestID string) (*models.ServiceRequest, error)
	RejectRequest(artisanID, requestID string) (*models.ServiceRequest, error)
	StartWork(artisanID, requestID string, req dto.StartWorkRequest) (*models.ServiceRequest, error)
	CompleteWork(artisanID, requestID string) (*models.ServiceRequest, error)

	// Shared
	GetRequest(userID, requestID string) (*models.ServiceRequest, error)
}

type requestService struct {
	requestRepo     repositories.RequestRepository
	bookingRepo     repositories.BookingRepository
	userRepo        repositories.UserRepository
	notificationSvc NotificationService
}

func NewRequestService(
	requestRepo repositories.RequestRepository,
	bookingRepo repositories.BookingRepository,
	userRepo repositories.UserRepository,
	notificationSvc NotificationService,
) RequestService {
	return &requestService{
		requestRepo:     requestRepo,
		bookingRepo:     bookingRepo,
		userRepo:        userRepo,
		notificationSvc: notificationSvc,
	}
}

// ---------------- Client side ----------------

func (s *requestService) CreateRequest(clientID string, req dto.CreateRequestRequest) (*models.ServiceRequest, error) {
	request := &models.ServiceRequest{
		ClientID:        clientID,
		ServiceCategory: req.ServiceCategory,
		Description:     req.Description,
		Location:        req.Location,
		Budget:          req.Budget,
		Status:          models.RequestStatusPending,
	}
	if err := s.requestRepo.Create(request); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("service request created", "request_id", request.ID, "client_id", clientID, "category", req.ServiceCategory)
	return request, nil
}

// BookArtisan opens a pending request addressed to a specific artisan. Only
// that artisan sees it in the available feed and may accept or decline it.
func (s *requestService) BookArtisan(clientID string, req dto.BookArtisanRequest) (*models.ServiceRequest, error) {
	artisan, err := s.userRepo.FindArtisanByID(req.ArtisanID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err, "Artisan")
		}
		return nil, apperrors.InternalError(err)
	}

	request := &models.ServiceRequest{
		ClientID:        clientID,
		ArtisanID:       &artisan.ID,
		ServiceCategory: req.ServiceCategory,
		Description:     req.Description,
		Location:        req.Location,
		Budget:          req.Budget,
		Status:          models.RequestStatusPending,
	}
	if err := s.requestRepo.Create(request); err != nil {
		return nil, apperrors.InternalError(err)
	}

	client, err := s.userRepo.FindByID(clientID)
	clientName := "A client"
	if err == nil {
		clientName = client.Username
	}
	s.notificationSvc.NotifyBookingRequested(artisan.ID, request, clientName)

	logger.Info("artisan booked", "request_id", request.ID, "client_id", clientID, "artisan_id", artisan.ID)
	return request, nil
}

func (s *requestService) GetClientRequests(clientID string) ([]models.ServiceRequest, error) {
	requests, err := s.requestRepo.FindByClient(clientID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return requests, nil
}

// CancelRequest lets the owning client cancel while the request is still
// pending or accepted. The artisan slot is cleared either way.
func (s *requestService) CancelRequest(clientID, requestID string) (*models.ServiceRequest, error) {
	request, err := s.findRequest(requestID)
	if err != nil {
		return nil, err
	}
	if request.ClientID != clientID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if request.Status != models.RequestStatusPending && request.Status != models.RequestStatusAccepted {
		return nil, apperrors.ErrInvalidRequestStatus(string(request.Status))
	}

	if err := s.requestRepo.UpdateStatusClearArtisan(requestID, models.RequestStatusCancelled); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("request cancelled by client", "request_id", requestID, "client_id", clientID)
	return s.findRequest(requestID)
}

func (s *requestService) GetClientBookings(clientID string) ([]models.Booking, error) {
	bookings, err := s.bookingRepo.FindByClient(clientID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return bookings, nil
}

// ---------------- Artisan side ----------------

func (s *requestService) GetAvailableRequests(artisanID string) ([]models.ServiceRequest, error) {
	requests, err := s.requestRepo.FindAvailableForArtisan(artisanID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return requests, nil
}

func (s *requestService) GetAcceptedRequests(artisanID string) ([]models.ServiceRequest, error) {
	requests, err := s.requestRepo.FindAcceptedByArtisan(artisanID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return requests, nil
}

// AcceptRequest claims a pending request for the calling artisan. The claim
// is a single conditional update; when it matches no row the request is
// re-read to tell a stale id, a wrong status and a lost race apart.
func (s *requestService) AcceptRequest(artisanID, requestID string) (*models.ServiceRequest, error) {
	err := s.requestRepo.AcceptRequest(requestID, artisanID)
	if err != nil {
		if !apperrors.Is(err, repositories.ErrAcceptConflict) {
			return nil, apperrors.InternalError(err)
		}
		request, findErr := s.requestRepo.FindByID(requestID)
		if findErr != nil {
			if apperrors.Is(findErr, repositories.ErrRequestNotFound) {
				return nil, apperrors.ErrNotFound(findErr, "Request")
			}
			return nil, apperrors.InternalError(findErr)
		}
		if request.Status != models.RequestStatusPending {
			return nil, apperrors.ErrInvalidRequestStatus(string(request.Status))
		}
		return nil, apperrors.ErrRequestAlreadyAssigned
	}

	request, err := s.findRequest(requestID)
	if err != nil {
		return nil, err
	}

	artisanName := "An artisan"
	if artisan, artErr := s.userRepo.FindByID(artisanID); artErr == nil {
		artisanName = artisan.Username
	}
	s.notificationSvc.NotifyRequestAccepted(request.ClientID, request, artisanName)

	logger.Info("request accepted", "request_id", requestID, "artisan_id", artisanID)
	return request, nil
}

// RejectRequest declines a request. The outcome depends on where the
// request is in its lifecycle:
//
//   - pending, unassigned: no state change, the artisan simply passes
//   - pending addressed to the caller, or accepted by the caller: the
//     request is cancelled and the artisan slot cleared
//   - in_progress by the caller: work is abandoned, the request is
//     cancelled but the artisan stays on record
func (s *requestService) RejectRequest(artisanID, requestID string) (*models.ServiceRequest, error) {
	request, err := s.findRequest(requestID)
	if err != nil {
		return nil, err
	}

	switch request.Status {
	case models.RequestStatusPending:
		if request.ArtisanID == nil {
			return request, nil
		}
		if *request.ArtisanID != artisanID {
			return nil, apperrors.ErrNotAssignedArtisan
		}
		if err := s.requestRepo.UpdateStatusClearArtisan(requestID, models.RequestStatusCancelled); err != nil {
			return nil, apperrors.InternalError(err)
		}
		s.notificationSvc.NotifyRequestDeclined(request.ClientID, request)

	case models.RequestStatusAccepted:
		if request.ArtisanID == nil || *request.ArtisanID != artisanID {
			return nil, apperrors.ErrNotAssignedArtisan
		}
		if err := s.requestRepo.UpdateStatusClearArtisan(requestID, models.RequestStatusCancelled); err != nil {
			return nil, apperrors.InternalError(err)
		}
		s.notificationSvc.NotifyRequestDeclined(request.ClientID, request)

	case models.RequestStatusInProgress:
		if request.ArtisanID == nil || *request.ArtisanID != artisanID {
			return nil, apperrors.ErrNotAssignedArtisan
		}
		if err := s.requestRepo.UpdateStatus(requestID, models.RequestStatusCancelled); err != nil {
			return nil, apperrors.InternalError(err)
		}
		if booking, bErr := s.bookingRepo.FindByRequest(requestID); bErr == nil {
			if cErr := s.bookingRepo.Cancel(booking.ID); cErr != nil {
				logger.Warn("failed to cancel booking for abandoned request", "error", cErr, "request_id", requestID)
			}
		}
		s.notificationSvc.NotifyWorkCancelled(request.ClientID, request)

	default:
		return nil, apperrors.ErrInvalidRequestStatus(string(request.Status))
	}

	logger.Info("request rejected", "request_id", requestID, "artisan_id", artisanID, "from_status", string(request.Status))
	return s.findRequest(requestID)
}

// StartWork moves an accepted request to in_progress and opens the booking
// that will carry the engagement dates and amount.
func (s *requestService) StartWork(artisanID, requestID string, req dto.StartWorkRequest) (*models.ServiceRequest, error) {
	request, err := s.findRequest(requestID)
	if err != nil {
		return nil, err
	}
	if request.ArtisanID == nil || *request.ArtisanID != artisanID {
		return nil, apperrors.ErrNotAssignedArtisan
	}
	if request.Status != models.RequestStatusAccepted {
		return nil, apperrors.ErrInvalidRequestStatus(string(request.Status))
	}

	if err := s.requestRepo.UpdateStatus(requestID, models.RequestStatusInProgress); err != nil {
		return nil, apperrors.InternalError(err)
	}

	booking := &models.Booking{
		RequestID:   requestID,
		StartDate:   time.Now().UTC(),
		TotalAmount: req.TotalAmount,
		Status:      models.BookingStatusScheduled,
	}
	if booking.TotalAmount == nil {
		booking.TotalAmount = request.Budget
	}
	if err := s.bookingRepo.Create(booking); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notificationSvc.NotifyWorkStarted(request.ClientID, request)

	logger.Info("work started", "request_id", requestID, "artisan_id", artisanID, "booking_id", booking.ID)
	return s.findRequest(requestID)
}

// CompleteWork closes out an in_progress request and its booking, and tells
// the client payment is due.
func (s *requestService) CompleteWork(artisanID, requestID string) (*models.ServiceRequest, error) {
	request, err := s.findRequest(requestID)
	if err != nil {
		return nil, err
	}
	if request.ArtisanID == nil || *request.ArtisanID != artisanID {
		return nil, apperrors.ErrNotAssignedArtisan
	}
	if request.Status != models.RequestStatusInProgress {
		return nil, apperrors.ErrInvalidRequestStatus(string(request.Status))
	}

	if err := s.requestRepo.UpdateStatus(requestID, models.RequestStatusCompleted); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if booking, bErr := s.bookingRepo.FindByRequest(requestID); bErr == nil {
		if cErr := s.bookingRepo.Complete(booking.ID, time.Now().UTC()); cErr != nil {
			logger.Warn("failed to complete booking", "error", cErr, "request_id", requestID, "booking_id", booking.ID)
		}
	}

	s.notificationSvc.NotifyPaymentDue(request.ClientID, request)

	logger.Info("work completed", "request_id", requestID, "artisan_id", artisanID)
	return s.findRequest(requestID)
}

// ---------------- Shared ----------------

// GetRequest returns the request to its client or its assigned artisan.
func (s *requestService) GetRequest(userID, requestID string) (*models.ServiceRequest, error) {
	request, err := s.findRequest(requestID)
	if err != nil {
		return nil, err
	}
	if request.ClientID != userID && (request.ArtisanID == nil || *request.ArtisanID != userID) {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return request, nil
}

func (s *requestService) findRequest(requestID string) (*models.ServiceRequest, error) {
	request, err := s.requestRepo.FindByID(requestID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRequestNotFound) {
			return nil, apperrors.ErrNotFound(err, "Request")
		}
		return nil, apperrors.InternalError(err)
	}
	return request, nil
}
