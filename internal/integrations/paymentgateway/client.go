package paymentgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

const idempotencyHeader = "Idempotency-Key"

// Client клиент платежного провайдера
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента платежного провайдера
func NewClient(baseURL, apiKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CreateCharge создает платеж. Повтор с тем же idempotencyKey не списывает деньги второй раз.
func (c *Client) CreateCharge(ctx context.Context, req ChargeRequest, idempotencyKey uuid.UUID) (*Charge, error) {
	c.log.Info("Creating charge reference=%s amount=%d currency=%s", req.Reference, req.Amount, req.Currency)

	var charge Charge
	if err := c.do(ctx, http.MethodPost, "/v1/charges", req, idempotencyKey.String(), &charge); err != nil {
		return nil, err
	}

	c.log.Info("Charge created id=%s status=%s", charge.ID, charge.Status)
	return &charge, nil
}

// GetCharge получает платеж по идентификатору провайдера
func (c *Client) GetCharge(ctx context.Context, chargeID string) (*Charge, error) {
	var charge Charge
	if err := c.do(ctx, http.MethodGet, "/v1/charges/"+url.PathEscape(chargeID), nil, "", &charge); err != nil {
		return nil, err
	}
	return &charge, nil
}

// Refund возвращает платеж. amount nil означает полный возврат.
func (c *Client) Refund(ctx context.Context, chargeID string, amount *int64) (*Refund, error) {
	c.log.Info("Refunding charge id=%s", chargeID)

	var refund Refund
	path := "/v1/charges/" + url.PathEscape(chargeID) + "/refunds"
	if err := c.do(ctx, http.MethodPost, path, refundRequest{Amount: amount}, uuid.NewString(), &refund); err != nil {
		return nil, err
	}

	c.log.Info("Charge refunded id=%s refund_id=%s amount=%d", chargeID, refund.ID, refund.Amount)
	return &refund, nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, idempotencyKey string, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if idempotencyKey != "" {
		req.Header.Set(idempotencyHeader, idempotencyKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	case http.StatusNotFound:
		return ErrChargeNotFound
	case http.StatusPaymentRequired:
		return fmt.Errorf("%w: %s", ErrPaymentDeclined, readError(resp.Body))
	default:
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, readError(resp.Body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

func readError(body io.Reader) string {
	data, _ := io.ReadAll(body)

	var errResp ErrorResponse
	if err := json.Unmarshal(data, &errResp); err == nil && errResp.Message != "" {
		return errResp.Message
	}
	return string(data)
}
