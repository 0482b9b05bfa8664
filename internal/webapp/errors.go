package webapp

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

const (
	CodeValidation    = "validation"
	CodeNotFound      = "not_found"
	CodeQuotaExceeded = "quota_exceeded"
	CodeRateLimited   = "rate_limited"
	CodeUnavailable   = "unavailable"
	CodeInternal      = "internal"
)

type Error struct {
	Code       string
	Message    string
	RetryAfter int
	Status     int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func statusForCode(code string) int {
	switch code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeQuotaExceeded:
		return http.StatusPaymentRequired
	case CodeRateLimited:
		return http.StatusTooManyRequests
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func newError(code, message string, retryAfter time.Duration) *Error {
	retryAfterSec := 0
	if retryAfter > 0 {
		retryAfterSec = int(retryAfter.Seconds())
		if retryAfterSec <= 0 {
			retryAfterSec = 1
		}
	}
	return &Error{
		Code:       code,
		Message:    message,
		RetryAfter: retryAfterSec,
		Status:     statusForCode(code),
	}
}

func errValidation(message string) error { return newError(CodeValidation, message, 0) }
func errNotFound(message string) error   { return newError(CodeNotFound, message, 0) }
func errUnavailable(message string) error {
	return newError(CodeUnavailable, message, 0)
}

func errQuotaExceeded(limit int) error {
	return newError(CodeQuotaExceeded, fmt.Sprintf("free plan limit of %d ideas reached; upgrade to premium for unlimited validations", limit), 0)
}

func errRateLimited(retryAfter time.Duration) error {
	return newError(CodeRateLimited, "too many submissions, slow down", retryAfter)
}

func errInternal(message string) error { return newError(CodeInternal, message, 0) }

func writeError(w http.ResponseWriter, err error) {
	var we *Error
	if !errors.As(err, &we) {
		we = newError(CodeInternal, err.Error(), 0)
	}
	body := map[string]any{
		"code":    we.Code,
		"message": we.Message,
	}
	if we.RetryAfter > 0 {
		body["retry_after"] = we.RetryAfter
		w.Header().Set("Retry-After", strconv.Itoa(we.RetryAfter))
	}
	writeJSON(w, we.Status, map[string]any{"ok": false, "error": body})
}
