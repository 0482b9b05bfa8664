package webapp

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestWriteErrorShapes(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{errValidation("bad"), http.StatusBadRequest, CodeValidation},
		{errNotFound("gone"), http.StatusNotFound, CodeNotFound},
		{errQuotaExceeded(2), http.StatusPaymentRequired, CodeQuotaExceeded},
		{errRateLimited(1500 * time.Millisecond), http.StatusTooManyRequests, CodeRateLimited},
		{errUnavailable("later"), http.StatusServiceUnavailable, CodeUnavailable},
		{errors.New("boom"), http.StatusInternalServerError, CodeInternal},
	}
	for _, tc := range cases {
		rr := httptest.NewRecorder()
		writeError(rr, tc.err)
		if rr.Code != tc.status {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.status, rr.Code)
		}
		var resp struct {
			OK    bool `json:"ok"`
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.OK || resp.Error.Code != tc.code || resp.Error.Message == "" {
			t.Fatalf("unexpected body for %v: %s", tc.err, rr.Body.String())
		}
	}
}

func TestRateLimitedRoundsRetryAfterUp(t *testing.T) {
	rr := httptest.NewRecorder()
	writeError(rr, errRateLimited(200*time.Millisecond))
	if got := rr.Header().Get("Retry-After"); got != "1" {
		t.Fatalf("expected Retry-After 1, got %q", got)
	}
}
