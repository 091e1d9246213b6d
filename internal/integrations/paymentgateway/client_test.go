package paymentgateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "sk_test", time.Second, nopLogger{})
}

func TestClient_CreateCharge(t *testing.T) {
	key := uuid.New()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/charges", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
		assert.Equal(t, key.String(), r.Header.Get("Idempotency-Key"))

		var req ChargeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(7500), req.Amount)
		assert.Equal(t, "usd", req.Currency)
		assert.Equal(t, "EMG-ZZ99AA", req.Reference)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Charge{ID: "ch_1", Status: StatusSucceeded, Amount: 7500, Currency: "usd", Created: 1700000000})
	})

	charge, err := client.CreateCharge(context.Background(), ChargeRequest{
		Amount:    7500,
		Currency:  "usd",
		Reference: "EMG-ZZ99AA",
	}, key)
	require.NoError(t, err)
	assert.Equal(t, "ch_1", charge.ID)
	assert.True(t, charge.Succeeded())
}

func TestClient_GetCharge_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/charges/ch_missing", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetCharge(context.Background(), "ch_missing")
	assert.ErrorIs(t, err, ErrChargeNotFound)
}

func TestClient_CreateCharge_Declined(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_ = json.NewEncoder(w).Encode(ErrorResponse{Code: "card_declined", Message: "insufficient funds"})
	})

	_, err := client.CreateCharge(context.Background(), ChargeRequest{Amount: 100, Currency: "usd"}, uuid.New())
	require.ErrorIs(t, err, ErrPaymentDeclined)
	assert.Contains(t, err.Error(), "insufficient funds")
}

func TestClient_Refund(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/charges/ch_1/refunds", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))

		var req refundRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.Amount)
		assert.Equal(t, int64(1000), *req.Amount)

		_ = json.NewEncoder(w).Encode(Refund{ID: "re_1", ChargeID: "ch_1", Status: StatusSucceeded, Amount: 1000})
	})

	amount := int64(1000)
	refund, err := client.Refund(context.Background(), "ch_1", &amount)
	require.NoError(t, err)
	assert.Equal(t, "re_1", refund.ID)
}

func TestClient_UnexpectedStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	_, err := client.GetCharge(context.Background(), "ch_1")
	require.ErrorIs(t, err, ErrInvalidResponse)
	assert.Contains(t, err.Error(), "502")
}

func TestClient_BadJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	})

	_, err := client.GetCharge(context.Background(), "ch_1")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
