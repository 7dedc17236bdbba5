package apperrors

import (
	"fmt"
	"net/http"
)

// Factories and predefined errors for the marketplace domain.

// ErrNotFound maps a repository miss (gorm.ErrRecordNotFound and friends)
// to a 404.
func ErrNotFound(err error, what string) *AppError {
	return Wrap(err, CodeNotFound, "resource", what+" not found", http.StatusNotFound)
}

// ErrInvalidRequestStatus reports a lifecycle transition attempted from the
// wrong source status. The current status goes into Details so the caller
// can reconcile its view.
func ErrInvalidRequestStatus(current string) *AppError {
	return New(
		CodeInvalidStatus,
		"request",
		fmt.Sprintf("Request cannot be modified in its current status: %s", current),
		http.StatusBadRequest,
	).WithDetails(map[string]string{"current_status": current})
}

// ErrRequestAlreadyAssigned is returned when an accept loses the race to
// another artisan.
var ErrRequestAlreadyAssigned = New(
	CodeAlreadyAssigned,
	"request",
	"Request has already been accepted by another artisan",
	http.StatusBadRequest,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrNotAssignedArtisan = New(
	CodeForbidden,
	"request",
	"Only the assigned artisan can perform this action",
	http.StatusForbidden,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already registered",
	http.StatusBadRequest,
)

var ErrUsernameAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Username already taken",
	http.StatusBadRequest,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"auth",
	"Password must be at least 6 characters long",
	http.StatusBadRequest,
)

var ErrInvalidUserRole = New(
	CodeValidationFailed,
	"auth",
	"Role must be either 'client' or 'artisan'",
	http.StatusBadRequest,
)
