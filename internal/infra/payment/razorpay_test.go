//go:build unit

package payment

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"storefront-api/internal/pkg/config"
	"storefront-api/internal/pkg/errs"
	"storefront-api/internal/usecase/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *RazorpayClient {
	return NewRazorpayClient(config.PaymentConfig{
		BaseURL:        baseURL,
		KeyID:          "rzp_test_key",
		KeySecret:      "secret",
		Timeout:        time.Second,
		MaxRetries:     2,
		RetryBaseDelay: time.Millisecond,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreateIntent(t *testing.T) {
	var gotBody createOrderBody
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "secret", pass)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"order_ABC","entity":"order","amount":900,"amount_paid":0,"currency":"INR","receipt":"rcpt_1","status":"created"}`))
	}))
	defer srv.Close()

	intent, err := newTestClient(srv.URL).CreateIntent(context.Background(), shared.IntentRequest{
		AmountMinor: 900,
		Currency:    "INR",
		Receipt:     "rcpt_1",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(900), gotBody.Amount)
	assert.Equal(t, "rcpt_1", gotBody.Receipt)
	assert.Equal(t, "order_ABC", intent.Reference)
	assert.Equal(t, shared.IntentCreated, intent.Status)
	assert.False(t, intent.IsCaptured())
}

func TestCreateIntentRetriesUnavailable(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"id":"order_R","amount":500,"amount_paid":500,"currency":"INR","status":"paid"}`))
	}))
	defer srv.Close()

	intent, err := newTestClient(srv.URL).CreateIntent(context.Background(), shared.IntentRequest{AmountMinor: 500, Currency: "INR"})

	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.True(t, intent.IsCaptured())
}

func TestCreateIntentRetriesKeepIdempotencyKey(t *testing.T) {
	var (
		calls atomic.Int32
		keys  = make(chan string, 3)
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys <- r.Header.Get("Idempotency-Key")
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"id":"order_K","amount":500,"amount_paid":0,"currency":"INR","receipt":"rcpt_k","status":"created"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).CreateIntent(context.Background(), shared.IntentRequest{
		AmountMinor: 500,
		Currency:    "INR",
		Receipt:     "rcpt_k",
	})

	require.NoError(t, err)
	require.Equal(t, int32(3), calls.Load())
	close(keys)
	for key := range keys {
		assert.Equal(t, "rcpt_k", key)
	}
}

func TestFetchIntentSendsNoIdempotencyKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Idempotency-Key"))
		_, _ = w.Write([]byte(`{"id":"order_G","amount":900,"amount_paid":0,"currency":"INR","status":"created"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchIntent(context.Background(), "order_G")

	require.NoError(t, err)
}

func TestCreateIntentGivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).CreateIntent(context.Background(), shared.IntentRequest{AmountMinor: 500, Currency: "INR"})

	require.Error(t, err)
	assert.True(t, errs.Is(err, shared.ErrGatewayUnavailable))
	assert.Equal(t, int32(3), calls.Load())
}

func TestCreateIntentRejectedIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"The amount must be atleast INR 1.00"}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).CreateIntent(context.Background(), shared.IntentRequest{AmountMinor: 50, Currency: "INR"})

	require.Error(t, err)
	assert.True(t, errs.Is(err, shared.ErrGatewayRejected))
	assert.Contains(t, err.Error(), "BAD_REQUEST_ERROR")
	assert.Equal(t, int32(1), calls.Load())
}

func TestCreateIntentRejectsNonPositiveAmountLocally(t *testing.T) {
	_, err := newTestClient("http://127.0.0.1:0").CreateIntent(context.Background(), shared.IntentRequest{AmountMinor: 0})

	assert.True(t, errs.Is(err, shared.ErrGatewayRejected))
}

func TestFetchIntent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/orders/order_XYZ", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"order_XYZ","amount":900,"amount_paid":900,"currency":"INR","receipt":"rcpt_1","status":"paid"}`))
	}))
	defer srv.Close()

	intent, err := newTestClient(srv.URL).FetchIntent(context.Background(), "order_XYZ")

	require.NoError(t, err)
	assert.True(t, intent.IsCaptured())
	assert.Equal(t, int64(900), intent.AmountPaidMinor)
	assert.Equal(t, "rcpt_1", intent.Receipt)
}

func TestTransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url).FetchIntent(context.Background(), "order_1")

	assert.True(t, errs.Is(err, shared.ErrGatewayUnavailable))
}
