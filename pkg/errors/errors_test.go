package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppErrorMessage(t *testing.T) {
	err := New("TEST", "boom", http.StatusTeapot)
	require.EqualError(t, err, "boom")

	wrapped := err.WithInternal(errors.New("cause"))
	require.EqualError(t, wrapped, "boom: cause")

	// WithInternal copies; the shared sentinel stays clean.
	require.Nil(t, err.Internal)
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("cause")
	err := Wrap(cause, "operation failed")

	require.ErrorIs(t, err, cause)
	require.Equal(t, http.StatusInternalServerError, err.StatusCode)
}

func TestFromError(t *testing.T) {
	require.Nil(t, FromError(nil))

	appErr := FromError(ErrEmailTaken)
	require.Equal(t, "EMAIL_TAKEN", appErr.Code)
	require.Equal(t, http.StatusConflict, appErr.StatusCode)

	generic := FromError(errors.New("boom"))
	require.Equal(t, ErrInternalServer.Code, generic.Code)
	require.Equal(t, "Server error. Please try again later.", generic.Message)
}

func TestCredentialErrorsShareStatus(t *testing.T) {
	require.Equal(t, http.StatusUnauthorized, ErrInvalidCredentials.StatusCode)
	require.Equal(t, http.StatusUnauthorized, ErrRefreshTokenInvalid.StatusCode)
	require.Equal(t, http.StatusForbidden, ErrEmailNotVerified.StatusCode)
	require.Equal(t, "Invalid email or password.", ErrInvalidCredentials.Message)
}

func TestConstructors(t *testing.T) {
	nf := NewNotFound("Book not found.")
	require.Equal(t, ErrNotFound.Code, nf.Code)
	require.Equal(t, http.StatusNotFound, nf.StatusCode)
	require.Equal(t, "Book not found.", nf.Message)

	br := NewBadRequest("token is required")
	require.Equal(t, ErrBadRequest.Code, br.Code)
	require.Equal(t, http.StatusBadRequest, br.StatusCode)
}
