// Package payment wraps the Pi platform payment endpoints the storefront
// depends on. Settlement itself happens on the network; this client only
// approves, completes, and inspects payments by identifier.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultTimeout    = 8 * time.Second
	idempotencyHeader = "Idempotency-Key"
)

// ErrMissingPaymentID is returned when no payment identifier is provided.
var ErrMissingPaymentID = errors.New("payment: missing payment id")

// Info mirrors the platform's payment resource, reduced to the fields the
// storefront reads.
type Info struct {
	Identifier string  `json:"identifier"`
	UserUID    string  `json:"user_uid"`
	Amount     float64 `json:"amount"`
	Memo       string  `json:"memo"`
	TxID       string  `json:"transaction,omitempty"`
	Status     Status  `json:"status"`
}

// Status carries the platform's per-payment flags.
type Status struct {
	DeveloperApproved   bool `json:"developer_approved"`
	TransactionVerified bool `json:"transaction_verified"`
	DeveloperCompleted  bool `json:"developer_completed"`
	Cancelled           bool `json:"cancelled"`
	UserCancelled       bool `json:"user_cancelled"`
}

// Client issues payment approval and completion calls against the platform API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// Approve tells the network the server is ready for the payment to proceed.
func (c *Client) Approve(ctx context.Context, paymentID string) (*Info, error) {
	return c.post(ctx, paymentID, "approve", nil)
}

// Complete reports the settled transaction back to the network.
func (c *Client) Complete(ctx context.Context, paymentID, txid string) (*Info, error) {
	return c.post(ctx, paymentID, "complete", map[string]string{"txid": txid})
}

// Get fetches the current payment state.
func (c *Client) Get(ctx context.Context, paymentID string) (*Info, error) {
	if strings.TrimSpace(paymentID) == "" {
		return nil, ErrMissingPaymentID
	}
	endpoint, err := url.JoinPath(c.baseURL, "v2", "payments", paymentID)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) post(ctx context.Context, paymentID, action string, body map[string]string) (*Info, error) {
	if strings.TrimSpace(paymentID) == "" {
		return nil, ErrMissingPaymentID
	}
	endpoint, err := url.JoinPath(c.baseURL, "v2", "payments", paymentID, action)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(idempotencyHeader, uuid.NewString())
	return c.do(req)
}

func (c *Client) do(req *http.Request) (*Info, error) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Key "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("payment: status %d: %s", resp.StatusCode, drainError(resp.Body))
	}

	var info Info
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}

func drainError(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 512))
	if err != nil {
		return "unreadable error body"
	}
	msg := strings.TrimSpace(string(raw))
	if msg == "" {
		return "empty error body"
	}
	return msg
}
