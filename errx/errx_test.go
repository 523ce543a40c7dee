package errx_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reqcraft/reqcraft/errx"
)

var (
	testErrors = errx.NewRegistry("TEST")

	errNotFound = testErrors.Register("NOT_FOUND", errx.TypeNotFound, 404, "Thing not found")
	errBadInput = testErrors.Register("BAD_INPUT", errx.TypeValidation, 400, "Bad input")
)

func TestRegistry_New(t *testing.T) {
	err := testErrors.New(errNotFound)

	assert.Equal(t, "TEST_NOT_FOUND", err.Code)
	assert.Equal(t, errx.TypeNotFound, err.Type)
	assert.Equal(t, 404, err.HTTPStatus)
	assert.Equal(t, "Thing not found", err.Message)
	assert.EqualError(t, err, "TEST_NOT_FOUND: Thing not found")
}

func TestRegistry_NewWithCause(t *testing.T) {
	cause := errors.New("socket closed")
	err := testErrors.NewWithCause(errNotFound, cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "socket closed")
}

func TestIsCode(t *testing.T) {
	err := testErrors.NewWithMessage(errBadInput, "name is empty")

	assert.True(t, errx.IsCode(err, errBadInput))
	assert.False(t, errx.IsCode(err, errNotFound))
	assert.False(t, errx.IsCode(errors.New("plain"), errBadInput))

	wrapped := fmt.Errorf("handler: %w", err)
	assert.True(t, errx.IsCode(wrapped, errBadInput))
}

func TestWrap(t *testing.T) {
	cause := errors.New("parse failed")
	err := errx.Wrap(cause, "invalid filter", errx.TypeValidation)

	assert.Equal(t, 400, err.HTTPStatus)
	assert.Equal(t, errx.TypeValidation, err.Type)
	assert.ErrorIs(t, err, cause)
}

func TestError_Details(t *testing.T) {
	err := testErrors.New(errBadInput).
		WithDetail("field", "name").
		WithDetails(map[string]any{"rule": "required"})

	assert.Equal(t, "name", err.Details["field"])
	assert.Equal(t, "required", err.Details["rule"])
}

func TestError_Envelope(t *testing.T) {
	buckets := map[string]any{"urlParams": []string{"id must be of type ObjectId"}}
	err := errx.HTTPErrors.NewWithMessage(errx.ErrBadRequest, "Request validation failed").
		WithDetail("errors", buckets)

	env := err.Envelope()
	assert.Equal(t, 400, env.StatusCode)
	assert.Equal(t, "Request validation failed", env.Error.Message)
	assert.Equal(t, "HTTP_BAD_REQUEST", env.Error.Code)
	assert.Equal(t, buckets, env.Error.Errors)
}

func TestError_Envelope_NoDetails(t *testing.T) {
	env := errx.HTTPErrors.New(errx.ErrNotFound).Envelope()

	assert.Equal(t, 404, env.StatusCode)
	assert.Equal(t, "The resource you are looking for does not exist.", env.Error.Message)
	assert.Nil(t, env.Error.Errors)
}

func TestError_ToHTTP(t *testing.T) {
	rec := httptest.NewRecorder()
	errx.HTTPErrors.New(errx.ErrLocked).ToHTTP(rec)

	assert.Equal(t, 423, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var env errx.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, 423, env.StatusCode)
	assert.Equal(t, "This resource is currently locked! Please try again later.", env.Error.Message)
}

func TestHTTPErrors_DefaultMessages(t *testing.T) {
	tests := []struct {
		code    errx.Code
		status  int
		message string
	}{
		{errx.ErrBadRequest, 400, "The request is invalid. Please try again."},
		{errx.ErrUnauthorized, 401, "Sent request is unauthorized. Please log in first."},
		{errx.ErrForbidden, 403, "You don't have necessary permissions to access this resource."},
		{errx.ErrNotFound, 404, "The resource you are looking for does not exist."},
		{errx.ErrMethodNotAllowed, 405, "This method is not allowed for the sent request."},
		{errx.ErrConflict, 409, "The request seems to be conflicting."},
		{errx.ErrNotImplemented, 501, "This action for sent request is yet to be implemented."},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			err := errx.HTTPErrors.New(tt.code)
			assert.Equal(t, tt.status, err.HTTPStatus)
			assert.Equal(t, tt.message, err.Message)
		})
	}
}
