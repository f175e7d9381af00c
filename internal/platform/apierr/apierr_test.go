package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	domainErrs "github.com/yungbote/automate-backend/internal/pkg/errors"
)

func TestFromMapsSentinels(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("car 3: %w", domainErrs.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("email: %w", domainErrs.ErrConflict), http.StatusConflict},
		{domainErrs.ErrInvalidArgument, http.StatusBadRequest},
		{domainErrs.ErrUnauthorized, http.StatusUnauthorized},
		{domainErrs.ErrForbidden, http.StatusForbidden},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		got := From(tc.err, "internal")
		if got.Status != tc.status {
			t.Fatalf("From(%v).Status = %d, want %d", tc.err, got.Status, tc.status)
		}
		if !errors.Is(got, tc.err) {
			t.Fatalf("From(%v) lost the wrapped error", tc.err)
		}
	}
}

func TestFromKeepsExplicitError(t *testing.T) {
	inner := New(http.StatusTeapot, "teapot", errors.New("short and stout"))
	got := From(fmt.Errorf("wrapped: %w", inner), "internal")
	if got != inner {
		t.Fatalf("expected the wrapped *Error to be returned")
	}
	if From(nil, "x") != nil {
		t.Fatalf("From(nil) should be nil")
	}
}
