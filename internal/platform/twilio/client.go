package twilio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/goccy/go-json"

	"github.com/yungbote/automate-backend/internal/observability"
	"github.com/yungbote/automate-backend/internal/platform/ctxutil"
	"github.com/yungbote/automate-backend/internal/platform/httpx"
	"github.com/yungbote/automate-backend/internal/platform/logger"
)

// Client sends SMS through the Twilio Messages API.
type Client interface {
	SendSMS(ctx context.Context, to, body string) (*Message, error)
}

type Config struct {
	AccountSID string
	AuthToken  string
	// APIKey and APIKeySecret replace AuthToken when both are set.
	APIKey              string
	APIKeySecret        string
	BaseURL             string
	FromNumber          string
	MessagingServiceSID string
	Timeout             time.Duration
	MaxRetries          int
}

var ErrDisabled = errors.New("twilio: sms delivery disabled")

// New returns a noop client when no account SID is configured.
func New(log *logger.Logger, cfg Config, metrics *observability.Metrics) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	cfg.AccountSID = strings.TrimSpace(cfg.AccountSID)
	if cfg.AccountSID == "" {
		log.Info("Twilio account not set; SMS delivery disabled")
		return noopClient{log: log.With("client", "NoopSMS")}, nil
	}
	cfg.AuthToken = strings.TrimSpace(cfg.AuthToken)
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.APIKeySecret = strings.TrimSpace(cfg.APIKeySecret)
	if cfg.APIKey != "" && cfg.APIKeySecret == "" {
		return nil, fmt.Errorf("missing TWILIO_API_KEY_SECRET (required when TWILIO_API_KEY is set)")
	}
	if cfg.APIKey == "" && cfg.AuthToken == "" {
		return nil, fmt.Errorf("missing TWILIO_AUTH_TOKEN (or TWILIO_API_KEY + TWILIO_API_KEY_SECRET)")
	}
	cfg.FromNumber = strings.TrimSpace(cfg.FromNumber)
	cfg.MessagingServiceSID = strings.TrimSpace(cfg.MessagingServiceSID)
	if cfg.FromNumber == "" && cfg.MessagingServiceSID == "" {
		return nil, fmt.Errorf("twilio: sender required (TWILIO_FROM_NUMBER or TWILIO_MESSAGING_SERVICE_SID)")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = "https://api.twilio.com/2010-04-01"
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &client{
		log:        log.With("client", "TwilioClient"),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		metrics:    metrics,
	}, nil
}

type client struct {
	log        *logger.Logger
	cfg        Config
	httpClient *http.Client
	metrics    *observability.Metrics
}

type Message struct {
	SID          string  `json:"sid,omitempty"`
	To           string  `json:"to,omitempty"`
	From         string  `json:"from,omitempty"`
	Body         string  `json:"body,omitempty"`
	Status       string  `json:"status,omitempty"`
	NumSegments  string  `json:"num_segments,omitempty"`
	ErrorCode    *int    `json:"error_code,omitempty"`
	ErrorMessage *string `json:"error_message,omitempty"`
}

func (c *client) SendSMS(ctx context.Context, to, body string) (*Message, error) {
	to = strings.TrimSpace(to)
	body = strings.TrimSpace(body)
	if to == "" {
		return nil, fmt.Errorf("twilio: To required")
	}
	if body == "" {
		return nil, fmt.Errorf("twilio: Body required")
	}

	form := url.Values{}
	form.Set("To", to)
	form.Set("Body", body)
	if c.cfg.MessagingServiceSID != "" {
		form.Set("MessagingServiceSid", c.cfg.MessagingServiceSID)
	} else {
		form.Set("From", c.cfg.FromNumber)
	}
	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", c.cfg.BaseURL, c.cfg.AccountSID)

	var out *Message
	err := retry.Do(
		func() error {
			m, err := c.postForm(ctx, endpoint, form)
			if err != nil {
				return err
			}
			out = m
			return nil
		},
		retry.Context(ctxutil.Default(ctx)),
		retry.Attempts(uint(c.cfg.MaxRetries)+1),
		retry.Delay(500*time.Millisecond),
		retry.MaxDelay(10*time.Second),
		retry.DelayType(retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)),
		retry.LastErrorOnly(true),
		retry.RetryIf(httpx.IsRetryableError),
		retry.OnRetry(func(n uint, err error) {
			c.log.Warn("Twilio request retrying", "attempt", n+1, "max_retries", c.cfg.MaxRetries, "error", err.Error())
		}),
	)
	if err != nil {
		c.metrics.IncSMSSend("failure")
		return nil, err
	}
	c.metrics.IncSMSSend("success")
	return out, nil
}

type apiError struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	MoreInfo string `json:"more_info"`
	Status   int    `json:"status"`
}

type HTTPError struct {
	StatusCode int
	Body       string
	APIError   *apiError
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "twilio: <nil error>"
	}
	if e.APIError != nil && strings.TrimSpace(e.APIError.Message) != "" {
		if e.APIError.Code != 0 {
			return fmt.Sprintf("twilio http %d: %s (code=%d)", e.StatusCode, e.APIError.Message, e.APIError.Code)
		}
		return fmt.Sprintf("twilio http %d: %s", e.StatusCode, e.APIError.Message)
	}
	msg := strings.TrimSpace(e.Body)
	if msg == "" {
		msg = "<empty body>"
	}
	if len(msg) > 4000 {
		msg = msg[:4000] + "..."
	}
	return fmt.Sprintf("twilio http %d: %s", e.StatusCode, msg)
}

func (e *HTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

func (c *client) basicAuth() (user, pass string) {
	if c.cfg.APIKey != "" {
		return c.cfg.APIKey, c.cfg.APIKeySecret
	}
	return c.cfg.AccountSID, c.cfg.AuthToken
}

func (c *client) postForm(ctx context.Context, endpoint string, form url.Values) (*Message, error) {
	req, err := http.NewRequestWithContext(ctxutil.Default(ctx), http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.basicAuth())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		he := &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
		var ae apiError
		if json.Unmarshal(raw, &ae) == nil && strings.TrimSpace(ae.Message) != "" {
			he.APIError = &ae
		}
		return nil, he
	}
	var out Message
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("twilio decode error: %w", err)
		}
	}
	return &out, nil
}

type noopClient struct {
	log *logger.Logger
}

func (n noopClient) SendSMS(ctx context.Context, to, body string) (*Message, error) {
	n.log.Debug("sms dropped", "chars", len(body))
	return nil, ErrDisabled
}
