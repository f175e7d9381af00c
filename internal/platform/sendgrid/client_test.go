package sendgrid

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/automate-backend/internal/observability"
	"github.com/yungbote/automate-backend/internal/platform/logger"
)

func testRequest() SendEmailRequest {
	return SendEmailRequest{
		To:      []EmailAddress{{Email: "driver@example.com", Name: "Driver"}},
		Subject: "Booking approved",
		Text:    "Your Oil Change on 2030-01-02 was approved.",
	}
}

func TestSendRetriesTransientFailures(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/mail/send", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		var wire mailSendRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&wire))
		assert.Equal(t, "noreply@automate.test", wire.From.Email)
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("X-Message-Id", "msg-1")
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c, err := New(logger.Nop(), Config{
		APIKey:           "key",
		BaseURL:          srv.URL,
		DefaultFromEmail: "noreply@automate.test",
		MaxRetries:       2,
		Timeout:          2 * time.Second,
	}, observability.NewMetrics())
	require.NoError(t, err)

	res, err := c.Send(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, res.StatusCode)
	assert.Equal(t, "msg-1", res.MessageID)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestSendDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors":[{"message":"bad from"}]}`))
	}))
	defer srv.Close()

	c, err := New(logger.Nop(), Config{APIKey: "key", BaseURL: srv.URL, DefaultFromEmail: "a@b.c", MaxRetries: 3}, nil)
	require.NoError(t, err)

	_, err = c.Send(context.Background(), testRequest())
	var he *HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusBadRequest, he.HTTPStatusCode())
	assert.Contains(t, he.Error(), "bad from")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c, err := New(logger.Nop(), Config{
		APIKey: "key", BaseURL: srv.URL, DefaultFromEmail: "a@b.c",
		BreakerFailures: 2, BreakerCooldown: time.Hour,
	}, nil)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, _ = c.Send(context.Background(), testRequest())
	}
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestNoopClientWithoutKey(t *testing.T) {
	c, err := New(logger.Nop(), Config{}, nil)
	require.NoError(t, err)
	_, err = c.Send(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestSendValidatesRequest(t *testing.T) {
	c, err := New(logger.Nop(), Config{APIKey: "key", BaseURL: "http://127.0.0.1:1"}, nil)
	require.NoError(t, err)
	_, err = c.Send(context.Background(), testRequest())
	assert.ErrorContains(t, err, "From.Email required")
}
