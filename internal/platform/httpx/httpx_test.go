package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"
)

type statusErr int

func (s statusErr) Error() string       { return fmt.Sprintf("status %d", int(s)) }
func (s statusErr) HTTPStatusCode() int { return int(s) }

func TestIsRetryableError(t *testing.T) {
	cases := map[string]struct {
		err  error
		want bool
	}{
		"nil":       {nil, false},
		"canceled":  {context.Canceled, false},
		"deadline":  {context.DeadlineExceeded, true},
		"503":       {fmt.Errorf("send: %w", statusErr(503)), true},
		"429":       {statusErr(429), true},
		"400":       {statusErr(400), false},
		"plain err": {errors.New("nope"), false},
	}
	for name, tc := range cases {
		if got := IsRetryableError(tc.err); got != tc.want {
			t.Fatalf("%s: IsRetryableError = %v, want %v", name, got, tc.want)
		}
	}
}

func TestRetryAfter(t *testing.T) {
	h := http.Header{}
	if got := RetryAfter(h, time.Second, 0); got != time.Second {
		t.Fatalf("fallback not used: %v", got)
	}
	h.Set("Retry-After", "30")
	if got := RetryAfter(h, time.Second, 10*time.Second); got != 10*time.Second {
		t.Fatalf("cap not applied: %v", got)
	}
}
