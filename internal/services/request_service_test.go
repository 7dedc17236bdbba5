package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"juaconnect_backend/internal/models"
	"juaconnect_backend/internal/services/dto"
	"juaconnect_backend/pkg/apperrors"
)

func TestRequestLifecycle_GoldenPath(t *testing.T) {
	env := newTestEnv(t)
	client := env.signupClient(t, "wanjiku")
	artisan := env.signupArtisan(t, "otieno", "plumbing")

	request := env.createRequest(t, client.ID, "plumbing")
	assert.Equal(t, models.RequestStatusPending, request.Status)
	assert.Nil(t, request.ArtisanID)

	accepted, err := env.requests.AcceptRequest(artisan.ID, request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusAccepted, accepted.Status)
	require.NotNil(t, accepted.ArtisanID)
	assert.Equal(t, artisan.ID, *accepted.ArtisanID)

	clientNotifs := env.notificationsFor(t, client.ID)
	require.Len(t, clientNotifs, 1)
	assert.Equal(t, "Request Accepted", clientNotifs[0].Title)
	assert.Equal(t, models.NotificationTypeBooking, clientNotifs[0].Type)

	amount := 2500.0
	inProgress, err := env.requests.StartWork(artisan.ID, request.ID, dto.StartWorkRequest{TotalAmount: &amount})
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusInProgress, inProgress.Status)

	booking, err := env.bookingRepo.FindByRequest(request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusScheduled, booking.Status)
	require.NotNil(t, booking.TotalAmount)
	assert.Equal(t, amount, *booking.TotalAmount)

	completed, err := env.requests.CompleteWork(artisan.ID, request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusCompleted, completed.Status)

	booking, err = env.bookingRepo.FindByRequest(request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCompleted, booking.Status)
	assert.NotNil(t, booking.EndDate)

	var payments int
	for _, n := range env.notificationsFor(t, client.ID) {
		if n.Type == models.NotificationTypePayment {
			payments++
			assert.Equal(t, "Payment Due", n.Title)
		}
	}
	assert.Equal(t, 1, payments)
}

func TestAcceptRequest_SecondArtisanLosesRace(t *testing.T) {
	env := newTestEnv(t)
	client := env.signupClient(t, "wanjiku")
	first := env.signupArtisan(t, "otieno", "plumbing")
	second := env.signupArtisan(t, "mutiso", "plumbing")

	request := env.createRequest(t, client.ID, "plumbing")

	_, err := env.requests.AcceptRequest(first.ID, request.ID)
	require.NoError(t, err)

	_, err = env.requests.AcceptRequest(second.ID, request.ID)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)

	got, err := env.requests.GetRequest(client.ID, request.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ArtisanID)
	assert.Equal(t, first.ID, *got.ArtisanID)
}

func TestStartWork_RequiresAcceptedStatus(t *testing.T) {
	env := newTestEnv(t)
	client := env.signupClient(t, "wanjiku")
	artisan := env.signupArtisan(t, "otieno", "plumbing")

	request := env.createRequest(t, client.ID, "plumbing")

	// Claim it so the artisan passes the assignment check, then complete
	// the wrong-status attempt from pending via a fresh request.
	_, err := env.requests.StartWork(artisan.ID, request.ID, dto.StartWorkRequest{})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)

	_, err = env.requests.AcceptRequest(artisan.ID, request.ID)
	require.NoError(t, err)
	_, err = env.requests.StartWork(artisan.ID, request.ID, dto.StartWorkRequest{})
	require.NoError(t, err)

	// Starting twice must fail and echo the current status.
	_, err = env.requests.StartWork(artisan.ID, request.ID, dto.StartWorkRequest{})
	require.Error(t, err)
	appErr, ok = apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
	details, ok := appErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, string(models.RequestStatusInProgress), details["current_status"])
}

func TestLifecycle_OnlyAssignedArtisan(t *testing.T) {
	env := newTestEnv(t)
	client := env.signupClient(t, "wanjiku")
	assigned := env.signupArtisan(t, "otieno", "plumbing")
	outsider := env.signupArtisan(t, "mutiso", "plumbing")

	request := env.createRequest(t, client.ID, "plumbing")
	_, err := env.requests.AcceptRequest(assigned.ID, request.ID)
	require.NoError(t, err)

	_, err = env.requests.StartWork(outsider.ID, request.ID, dto.StartWorkRequest{})
	assertForbidden(t, err)

	_, err = env.requests.RejectRequest(outsider.ID, request.ID)
	assertForbidden(t, err)

	_, err = env.requests.StartWork(assigned.ID, request.ID, dto.StartWorkRequest{})
	require.NoError(t, err)

	_, err = env.requests.CompleteWork(outsider.ID, request.ID)
	assertForbidden(t, err)
}

func assertForbidden(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}

func TestBookArtisan_AddressedRequest(t *testing.T) {
	env := newTestEnv(t)
	client := env.signupClient(t, "wanjiku")
	booked := env.signupArtisan(t, "otieno", "plumbing")
	other := env.signupArtisan(t, "mutiso", "plumbing")

	request, err := env.requests.BookArtisan(client.ID, dto.BookArtisanRequest{
		ArtisanID:       booked.ID,
		ServiceCategory: "plumbing",
		Description:     "Replace bathroom taps",
		Location:        "Kilimani",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, request.Status)
	require.NotNil(t, request.ArtisanID)
	assert.Equal(t, booked.ID, *request.ArtisanID)

	notifs := env.notificationsFor(t, booked.ID)
	require.Len(t, notifs, 1)
	assert.Equal(t, "New Booking Request", notifs[0].Title)

	// The addressed request is invisible and unclaimable for anyone else.
	available, err := env.requests.GetAvailableRequests(other.ID)
	require.NoError(t, err)
	assert.Empty(t, available)

	_, err = env.requests.AcceptRequest(other.ID, request.ID)
	require.Error(t, err)

	accepted, err := env.requests.AcceptRequest(booked.ID, request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusAccepted, accepted.Status)
}

func TestRejectRequest_Policies(t *testing.T) {
	env := newTestEnv(t)
	client := env.signupClient(t, "wanjiku")
	artisan := env.signupArtisan(t, "otieno", "plumbing")

	// Rejecting an unassigned pending request changes nothing.
	open := env.createRequest(t, client.ID, "plumbing")
	got, err := env.requests.RejectRequest(artisan.ID, open.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, got.Status)
	assert.Nil(t, got.ArtisanID)

	// Rejecting after accept cancels and clears the assignment.
	_, err = env.requests.AcceptRequest(artisan.ID, open.ID)
	require.NoError(t, err)
	got, err = env.requests.RejectRequest(artisan.ID, open.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusCancelled, got.Status)
	assert.Nil(t, got.ArtisanID)

	var declined int
	for _, n := range env.notificationsFor(t, client.ID) {
		if n.Title == "Request Declined" {
			declined++
		}
	}
	assert.Equal(t, 1, declined)

	// Rejecting mid-work cancels but keeps the artisan on record.
	working := env.createRequest(t, client.ID, "plumbing")
	_, err = env.requests.AcceptRequest(artisan.ID, working.ID)
	require.NoError(t, err)
	_, err = env.requests.StartWork(artisan.ID, working.ID, dto.StartWorkRequest{})
	require.NoError(t, err)

	got, err = env.requests.RejectRequest(artisan.ID, working.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusCancelled, got.Status)
	require.NotNil(t, got.ArtisanID)
	assert.Equal(t, artisan.ID, *got.ArtisanID)

	booking, err := env.bookingRepo.FindByRequest(working.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, booking.Status)

	var cancelled int
	for _, n := range env.notificationsFor(t, client.ID) {
		if n.Title == "Work Cancelled" {
			cancelled++
		}
	}
	assert.Equal(t, 1, cancelled)
}

func TestCancelRequest_ClientPolicy(t *testing.T) {
	env := newTestEnv(t)
	client := env.signupClient(t, "wanjiku")
	stranger := env.signupClient(t, "njeri")
	artisan := env.signupArtisan(t, "otieno", "plumbing")

	request := env.createRequest(t, client.ID, "plumbing")

	_, err := env.requests.CancelRequest(stranger.ID, request.ID)
	assertForbidden(t, err)

	_, err = env.requests.AcceptRequest(artisan.ID, request.ID)
	require.NoError(t, err)

	got, err := env.requests.CancelRequest(client.ID, request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusCancelled, got.Status)
	assert.Nil(t, got.ArtisanID)

	// Once work is underway the client can no longer cancel.
	active := env.createRequest(t, client.ID, "plumbing")
	_, err = env.requests.AcceptRequest(artisan.ID, active.ID)
	require.NoError(t, err)
	_, err = env.requests.StartWork(artisan.ID, active.ID, dto.StartWorkRequest{})
	require.NoError(t, err)

	_, err = env.requests.CancelRequest(client.ID, active.ID)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
}

func TestGetAvailableRequests_IncludesOpenAndAddressed(t *testing.T) {
	env := newTestEnv(t)
	client := env.signupClient(t, "wanjiku")
	artisan := env.signupArtisan(t, "otieno", "plumbing")

	open := env.createRequest(t, client.ID, "plumbing")
	addressed, err := env.requests.BookArtisan(client.ID, dto.BookArtisanRequest{
		ArtisanID:       artisan.ID,
		ServiceCategory: "plumbing",
		Description:     "Install water heater",
		Location:        "Westlands",
	})
	require.NoError(t, err)

	available, err := env.requests.GetAvailableRequests(artisan.ID)
	require.NoError(t, err)
	require.Len(t, available, 2)

	ids := []string{available[0].ID, available[1].ID}
	assert.Contains(t, ids, open.ID)
	assert.Contains(t, ids, addressed.ID)

	// Accepted work moves to the accepted queue.
	_, err = env.requests.AcceptRequest(artisan.ID, open.ID)
	require.NoError(t, err)

	accepted, err := env.requests.GetAcceptedRequests(artisan.ID)
	require.NoError(t, err)
	require.Len(t, accepted, 1)
	assert.Equal(t, open.ID, accepted[0].ID)
}

func TestGetClientBookings(t *testing.T) {
	env := newTestEnv(t)
	client := env.signupClient(t, "wanjiku")
	other := env.signupClient(t, "njeri")
	artisan := env.signupArtisan(t, "otieno", "plumbing")

	request := env.createRequest(t, client.ID, "plumbing")
	_, err := env.requests.AcceptRequest(artisan.ID, request.ID)
	require.NoError(t, err)
	_, err = env.requests.StartWork(artisan.ID, request.ID, dto.StartWorkRequest{})
	require.NoError(t, err)

	bookings, err := env.requests.GetClientBookings(client.ID)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, request.ID, bookings[0].RequestID)

	empty, err := env.requests.GetClientBookings(other.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
