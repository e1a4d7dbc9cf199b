package autherrors

import (
	"net/http"

	"go-lms/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid email or password",
		http.StatusUnauthorized,
	)

	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid token",
		http.StatusUnauthorized,
	)

	// Expired tokens are rejected with a distinct code so clients can prompt
	// for re-login instead of showing a generic auth failure. There is no
	// refresh flow; the 45 minute window is fixed.
	ErrTokenExpired = apperror.New(
		apperror.CodeTokenExpired,
		"Session expired, please log in again",
		http.StatusUnauthorized,
	)

	ErrRoleMismatch = apperror.New(
		apperror.CodeForbidden,
		"This account is not registered under the requested role",
		http.StatusForbidden,
	)

	ErrInvalidRegistrationRole = apperror.New(
		apperror.CodeInvalidInput,
		"Registration is only open to student and faculty roles",
		http.StatusBadRequest,
	)

	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"Could not issue session token",
		http.StatusInternalServerError,
	)
)
