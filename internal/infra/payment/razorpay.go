package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storefront-api/internal/pkg/config"
	"storefront-api/internal/pkg/errs"
	"storefront-api/internal/usecase/shared"

	"github.com/cenkalti/backoff/v4"
)

const (
	ordersPath           = "/v1/orders"
	maxErrorBodyLen      = 4 << 10
	idempotencyKeyHeader = "Idempotency-Key"
)

// RazorpayClient talks to the Orders API; a Razorpay order is our payment intent.
type RazorpayClient struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
	maxRetries uint64
	retryBase  time.Duration
	logger     *slog.Logger
}

func NewRazorpayClient(cfg config.PaymentConfig, logger *slog.Logger) *RazorpayClient {
	return &RazorpayClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		keyID:      cfg.KeyID,
		keySecret:  cfg.KeySecret,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		maxRetries: cfg.MaxRetries,
		retryBase:  cfg.RetryBaseDelay,
		logger:     logger.With("component", "razorpay"),
	}
}

type createOrderBody struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type orderEntity struct {
	ID         string `json:"id"`
	Amount     int64  `json:"amount"`
	AmountPaid int64  `json:"amount_paid"`
	Currency   string `json:"currency"`
	Receipt    string `json:"receipt"`
	Status     string `json:"status"`
}

type errorEnvelope struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateIntent is safe to retry: the receipt ties every retry to the same logical checkout.
func (c *RazorpayClient) CreateIntent(ctx context.Context, req shared.IntentRequest) (*shared.PaymentIntent, error) {
	if req.AmountMinor <= 0 {
		return nil, errs.Mark(errs.Newf("amount must be positive, got %d", req.AmountMinor), shared.ErrGatewayRejected)
	}

	body, err := json.Marshal(createOrderBody{
		Amount:   req.AmountMinor,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Notes:    req.Notes,
	})
	if err != nil {
		return nil, errs.Wrap(err, "failed to encode razorpay order")
	}

	var entity orderEntity
	if err := c.do(ctx, http.MethodPost, ordersPath, body, req.Receipt, &entity); err != nil {
		return nil, err
	}
	return entity.toIntent(), nil
}

func (c *RazorpayClient) FetchIntent(ctx context.Context, reference string) (*shared.PaymentIntent, error) {
	if reference == "" {
		return nil, errs.Mark(errs.New("payment reference is required"), shared.ErrGatewayRejected)
	}

	var entity orderEntity
	if err := c.do(ctx, http.MethodGet, ordersPath+"/"+url.PathEscape(reference), nil, "", &entity); err != nil {
		return nil, err
	}
	return entity.toIntent(), nil
}

// do retries transient failures; every retry carries the same idempotency key.
func (c *RazorpayClient) do(ctx context.Context, method, path string, body []byte, idempotencyKey string, out any) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryBase
	policy.RandomizationFactor = 0.2

	attempt := 0
	op := func() error {
		attempt++
		err := c.doOnce(ctx, method, path, body, idempotencyKey, out)
		if err != nil && !errs.Is(err, shared.ErrGatewayUnavailable) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		c.logger.WarnContext(ctx, "retrying payment gateway call",
			"method", method,
			"path", path,
			"attempt", attempt,
			"wait_ms", wait.Milliseconds(),
			"error", err.Error())
	}

	return backoff.RetryNotify(op, backoff.WithContext(backoff.WithMaxRetries(policy, c.maxRetries), ctx), notify)
}

func (c *RazorpayClient) doOnce(ctx context.Context, method, path string, body []byte, idempotencyKey string, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errs.Wrap(err, "failed to build gateway request")
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if idempotencyKey != "" {
		req.Header.Set(idempotencyKeyHeader, idempotencyKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.Mark(errs.Wrap(err, "payment gateway request failed"), shared.ErrGatewayUnavailable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errs.Mark(errs.Wrap(err, "failed to decode gateway response"), shared.ErrGatewayUnavailable)
		}
		return nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return errs.Mark(gatewayError(resp), shared.ErrGatewayUnavailable)
	default:
		return errs.Mark(gatewayError(resp), shared.ErrGatewayRejected)
	}
}

func gatewayError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))

	var env errorEnvelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Error.Description != "" {
		return errs.Newf("gateway status %d: %s: %s", resp.StatusCode, env.Error.Code, env.Error.Description)
	}
	return errs.Newf("gateway status %d", resp.StatusCode)
}

func (e orderEntity) toIntent() *shared.PaymentIntent {
	return &shared.PaymentIntent{
		Reference:       e.ID,
		AmountMinor:     e.Amount,
		AmountPaidMinor: e.AmountPaid,
		Currency:        e.Currency,
		Receipt:         e.Receipt,
		Status:          shared.IntentStatus(e.Status),
	}
}
