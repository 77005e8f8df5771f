package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/b3dotfun/sdk-go/internal/models"
)

// Client talks to the external checkout/order orchestrator. The backend owns
// every order's lifecycle; this client only creates sessions and reads state.
// No retry is applied here, callers poll.
type Client struct {
	baseURL   string
	authToken string
	client    *http.Client
}

// NewClient creates a checkout backend client. authToken, when set, is sent
// as a bearer token on every request.
func NewClient(baseURL, authToken string) *Client {
	return &Client{
		baseURL:   baseURL,
		authToken: authToken,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// CreateSession opens a checkout session with the backend.
func (c *Client) CreateSession(ctx context.Context, req models.CreateCheckoutSessionRequest) (*models.CheckoutSession, error) {
	var session models.CheckoutSession
	if err := c.do(ctx, http.MethodPost, "/checkout-sessions", "", req, &session); err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}
	return &session, nil
}

// GetSession fetches the current state of a checkout session.
func (c *Client) GetSession(ctx context.Context, sessionID string) (*models.CheckoutSession, error) {
	var session models.CheckoutSession
	path := fmt.Sprintf("/checkout-sessions/%s", sessionID)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &session); err != nil {
		return nil, fmt.Errorf("failed to get checkout session: %w", err)
	}
	return &session, nil
}

// GetOrder fetches an order by id.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	path := fmt.Sprintf("/orders/%s", orderID)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &order); err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

// TransactionHistoryRequest scopes a history query to one wallet.
type TransactionHistoryRequest struct {
	Address string `json:"address"`
	Limit   int    `json:"limit,omitempty"`
	Cursor  string `json:"cursor,omitempty"`
}

// TransactionHistoryResponse is a page of past orders.
type TransactionHistoryResponse struct {
	Orders     []models.Order `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// GetTransactionHistory fetches past orders for an address. The backend
// multiplexes service methods on one endpoint via the X-service-method header.
func (c *Client) GetTransactionHistory(ctx context.Context, req TransactionHistoryRequest) (*TransactionHistoryResponse, error) {
	var history TransactionHistoryResponse
	if err := c.do(ctx, http.MethodPost, "/rpc", "getTransactionHistory", req, &history); err != nil {
		return nil, fmt.Errorf("failed to get transaction history: %w", err)
	}
	return &history, nil
}

func (c *Client) do(ctx context.Context, method, path, serviceMethod string, body, out any) error {
	var payload *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		payload = bytes.NewBuffer(data)
	} else {
		payload = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if serviceMethod != "" {
		req.Header.Set("X-service-method", serviceMethod)
	}
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("backend returned HTTP %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
