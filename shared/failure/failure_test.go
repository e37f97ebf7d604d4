package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"stayledger/shared/failure"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		reason  string
		message string
	}{
		{
			name:    "bad request from error",
			err:     failure.BadRequest(errors.New("quantity must be positive")),
			code:    http.StatusBadRequest,
			reason:  failure.ReasonValidation,
			message: "quantity must be positive",
		},
		{
			name:    "bad request from string",
			err:     failure.BadRequestFromString("items is required"),
			code:    http.StatusBadRequest,
			reason:  failure.ReasonValidation,
			message: "items is required",
		},
		{
			name:    "unauthorized",
			err:     failure.Unauthorized("token expired"),
			code:    http.StatusUnauthorized,
			reason:  failure.ReasonUnauthorized,
			message: "token expired",
		},
		{
			name:    "forbidden",
			err:     failure.Forbidden("admin only"),
			code:    http.StatusForbidden,
			reason:  failure.ReasonForbidden,
			message: "admin only",
		},
		{
			name:    "shared forbidden",
			err:     failure.ForbiddenError,
			code:    http.StatusForbidden,
			reason:  failure.ReasonForbidden,
			message: "You don't have the required permissions",
		},
		{
			name:    "not found",
			err:     failure.NotFound("product not found"),
			code:    http.StatusNotFound,
			reason:  failure.ReasonNotFound,
			message: "product not found",
		},
		{
			name:    "conflict",
			err:     failure.Conflict("withdrawal already decided"),
			code:    http.StatusConflict,
			reason:  failure.ReasonConflict,
			message: "withdrawal already decided",
		},
		{
			name:    "precondition",
			err:     failure.PreconditionFailed("bank details are required"),
			code:    http.StatusPreconditionFailed,
			reason:  failure.ReasonPrecondition,
			message: "bank details are required",
		},
		{
			name:    "insufficient balance",
			err:     failure.InsufficientBalance("amount exceeds pending balance"),
			code:    http.StatusUnprocessableEntity,
			reason:  failure.ReasonInsufficientBalance,
			message: "amount exceeds pending balance",
		},
		{
			name:    "infrastructure",
			err:     failure.Infrastructure(errors.New("connection reset")),
			code:    http.StatusServiceUnavailable,
			reason:  failure.ReasonInfrastructure,
			message: "connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.Equal(t, tt.reason, failure.GetReason(tt.err))
			assert.EqualError(t, tt.err, tt.message)
		})
	}
}

func TestNilPassthrough(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.Infrastructure(nil))
}

func TestGetCode(t *testing.T) {
	wrapped := fmt.Errorf("reserve: %w", failure.InsufficientBalance("too much"))

	assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(wrapped))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("plain")))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(nil))
}

func TestGetReason(t *testing.T) {
	assert.Equal(t, failure.ReasonInternal, failure.GetReason(errors.New("plain")))
	assert.Equal(t, failure.ReasonInternal, failure.GetReason(&failure.Failure{Code: http.StatusTeapot}))
}

func TestIsRetryable(t *testing.T) {
	wrapped := fmt.Errorf("create booking: %w", failure.Infrastructure(errors.New("deadlock detected")))

	assert.True(t, failure.IsRetryable(wrapped))
	assert.False(t, failure.IsRetryable(failure.Conflict("already decided")))
	assert.False(t, failure.IsRetryable(errors.New("plain")))
}
