package failure

import (
	"errors"
	"net/http"
)

const (
	ReasonValidation          = "validation"
	ReasonNotFound            = "not_found"
	ReasonPrecondition        = "precondition"
	ReasonInsufficientBalance = "insufficient_balance"
	ReasonConflict            = "conflict"
	ReasonInfrastructure      = "infrastructure"
	ReasonUnauthorized        = "unauthorized"
	ReasonForbidden           = "forbidden"
	ReasonInternal            = "internal"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
// Reason is a stable machine readable category callers can branch on.
type Failure struct {
	Code    int    `json:"code"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Reason: ReasonForbidden, Message: "You don't have the required permissions"}

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Reason:  ReasonValidation,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Reason:  ReasonValidation,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Reason:  ReasonUnauthorized,
		Message: msg,
	}
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Reason:  ReasonNotFound,
		Message: entityName,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Reason:  ReasonConflict,
		Message: message,
	}
}

func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Reason:  ReasonForbidden,
		Message: msg,
	}
}

// PreconditionFailed is returned when the target entity is not in a state that allows the operation,
// for example an affiliate without bank details requesting a payout.
func PreconditionFailed(msg string) error {
	return &Failure{
		Code:    http.StatusPreconditionFailed,
		Reason:  ReasonPrecondition,
		Message: msg,
	}
}

// InsufficientBalance returns a new Failure for amounts exceeding the available balance.
func InsufficientBalance(msg string) error {
	return &Failure{
		Code:    http.StatusUnprocessableEntity,
		Reason:  ReasonInsufficientBalance,
		Message: msg,
	}
}

// Infrastructure wraps a durable store failure. Nothing was applied and the request can be retried as is.
func Infrastructure(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusServiceUnavailable,
			Reason:  ReasonInfrastructure,
			Message: err.Error(),
		}
	}

	return nil
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetReason returns the reason of an error interface.
func GetReason(err error) string {
	var fail *Failure
	if errors.As(err, &fail) && fail.Reason != "" {
		return fail.Reason
	}

	return ReasonInternal
}

// IsRetryable reports whether the same request may succeed when sent again unchanged.
func IsRetryable(err error) bool {
	return GetReason(err) == ReasonInfrastructure
}
