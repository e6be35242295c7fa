// Package client is the JSON HTTP client for the Cashly backend. Every call
// carries the bearer token loaded from the token file or environment.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/config"
	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/types"
)

const (
	defaultTimeout = 10 * time.Second
	// Conversation queries run the backend's full advisor pipeline and
	// routinely outlive the default timeout.
	queryTimeout = 60 * time.Second

	tokenEnvVar = "CASHLY_TOKEN"
)

type Client struct {
	baseURL   string
	tokenPath string
	token     string
	http      *http.Client
}

func New(baseURL string) (*Client, error) {
	tokenPath, err := config.TokenPath()
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		tokenPath: tokenPath,
		http: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	_ = c.loadToken()
	return c, nil
}

func NewWithToken(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// QueryConversation posts one user turn plus the running transcript and
// returns the backend's message and action batch.
func (c *Client) QueryConversation(ctx context.Context, query string, history []*types.Message) (*QueryResponse, error) {
	req := QueryRequest{
		UserID:              "me",
		Query:               query,
		ConversationHistory: historyEntries(history),
	}
	var resp QueryResponse
	if err := c.doJSONWithTimeout(ctx, http.MethodPost, "/fin/conversations/query", req, &resp, queryTimeout); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListConversations(ctx context.Context) ([]*types.Conversation, error) {
	var resp ConversationsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/fin/conversations", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Conversations, nil
}

func (c *Client) GetConversation(ctx context.Context, id string) (*types.Conversation, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("conversation id is required")
	}
	var conv types.Conversation
	if err := c.doJSON(ctx, http.MethodGet, "/fin/conversations/"+id, nil, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

func (c *Client) ClearConversations(ctx context.Context) error {
	var resp Envelope
	if err := c.doJSON(ctx, http.MethodDelete, "/fin/conversations", nil, &resp); err != nil {
		return err
	}
	return resp.err()
}

func (c *Client) DisconnectAccount(ctx context.Context, accountID string) error {
	if strings.TrimSpace(accountID) == "" {
		return errors.New("account id is required")
	}
	var resp Envelope
	if err := c.doJSON(ctx, http.MethodPost, "/fin/accounts/"+accountID+"/disconnect", nil, &resp); err != nil {
		return err
	}
	return resp.err()
}

func (c *Client) CreateTransaction(ctx context.Context, req TransactionRequest) error {
	var resp Envelope
	if err := c.doJSON(ctx, http.MethodPost, "/fin/transactions", req, &resp); err != nil {
		return err
	}
	return resp.err()
}

func (c *Client) UpdateTransaction(ctx context.Context, id string, req TransactionRequest) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("transaction id is required")
	}
	var resp Envelope
	if err := c.doJSON(ctx, http.MethodPut, "/fin/transactions/"+id, req, &resp); err != nil {
		return err
	}
	return resp.err()
}

func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("transaction id is required")
	}
	var resp Envelope
	if err := c.doJSON(ctx, http.MethodDelete, "/fin/transactions/"+id, nil, &resp); err != nil {
		return err
	}
	return resp.err()
}

func (c *Client) ListInvoices(ctx context.Context) ([]*types.Invoice, error) {
	var resp InvoicesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/fin/invoices", nil, &resp); err != nil {
		return nil, err
	}
	if err := resp.err(); err != nil {
		return nil, err
	}
	return resp.Invoices, nil
}

func (c *Client) SendInvoice(ctx context.Context, id string) (*InvoiceSendResponse, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("invoice id is required")
	}
	var resp InvoiceSendResponse
	if err := c.doJSON(ctx, http.MethodPost, "/fin/invoices/"+id+"/send", nil, &resp); err != nil {
		return nil, err
	}
	if err := resp.err(); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) StripeConnectDashboardLink(ctx context.Context) (string, error) {
	var resp StripeConnectLinkResponse
	if err := c.doJSON(ctx, http.MethodGet, "/fin/stripe_connect/dashboard_link", nil, &resp); err != nil {
		return "", err
	}
	if err := resp.err(); err != nil {
		return "", err
	}
	return resp.URL, nil
}

func (c *Client) StripeConnectOnboardingLink(ctx context.Context) (string, error) {
	var resp StripeConnectLinkResponse
	if err := c.doJSON(ctx, http.MethodGet, "/fin/stripe_connect/onboarding_link", nil, &resp); err != nil {
		return "", err
	}
	if err := resp.err(); err != nil {
		return "", err
	}
	return resp.URL, nil
}

func (c *Client) SetupStripeConnect(ctx context.Context) (*types.StripeConnectStatus, error) {
	var resp StripeConnectSetupResponse
	if err := c.doJSON(ctx, http.MethodPost, "/fin/stripe_connect/setup", nil, &resp); err != nil {
		return nil, err
	}
	if err := resp.err(); err != nil {
		return nil, err
	}
	return resp.Status, nil
}

func (e Envelope) err() error {
	if e.Success {
		return nil
	}
	if e.Error != "" {
		return errors.New(e.Error)
	}
	return errors.New("request failed")
}

func historyEntries(history []*types.Message) []HistoryEntry {
	entries := make([]HistoryEntry, 0, len(history))
	for _, msg := range history {
		if msg == nil {
			continue
		}
		entries = append(entries, HistoryEntry{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}
	return entries
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	return c.doJSONWithClient(ctx, method, path, body, out, c.http)
}

func (c *Client) doJSONWithTimeout(ctx context.Context, method, path string, body any, out any, timeout time.Duration) error {
	httpClient := c.http
	if timeout > 0 {
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: c.http.Transport,
		}
	}
	return c.doJSONWithClient(ctx, method, path, body, out, httpClient)
}

func (c *Client) doJSONWithClient(ctx context.Context, method, path string, body, out any, httpClient *http.Client) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if err := c.ensureToken(); err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) ensureToken() error {
	if strings.TrimSpace(c.token) == "" {
		if err := c.loadToken(); err != nil {
			return err
		}
	}
	if strings.TrimSpace(c.token) == "" {
		return errors.New("no API token; set " + tokenEnvVar + " or write the token file")
	}
	return nil
}

func (c *Client) loadToken() error {
	if token := strings.TrimSpace(os.Getenv(tokenEnvVar)); token != "" {
		c.token = token
		return nil
	}
	if c.tokenPath == "" {
		return nil
	}
	data, err := os.ReadFile(c.tokenPath)
	if err != nil {
		if os.IsNotExist(err) {
			c.token = ""
			return nil
		}
		return err
	}
	c.token = strings.TrimSpace(string(data))
	return nil
}

func decodeAPIError(resp *http.Response) error {
	type errorPayload struct {
		Error string `json:"error"`
	}
	var payload errorPayload
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	if payload.Error != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Error}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
}

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}
