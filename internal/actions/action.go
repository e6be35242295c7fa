package actions

import (
	"encoding/json"

	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/types"
)

// Action is one typed instruction from the backend, delivered alongside a
// chat reply. Data stays raw until a handler decodes it against the payload
// shape for its kind.
type Action struct {
	Type    Kind            `json:"type"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type AccountsPayload struct {
	Accounts []*types.Account `json:"accounts"`
}

type TransactionsPayload struct {
	Transactions []*types.Transaction     `json:"transactions"`
	Summary      types.TransactionSummary `json:"summary"`
}

type TransactionResultPayload struct {
	TransactionID string `json:"transaction_id,omitempty"`
	Message       string `json:"message,omitempty"`
}

type InvoicePayload struct {
	Invoice          *types.Invoice `json:"invoice"`
	HostedInvoiceURL string         `json:"hosted_invoice_url,omitempty"`
	Message          string         `json:"message,omitempty"`
}

type InvoicesPayload struct {
	Invoices []*types.Invoice `json:"invoices"`
}

type StripeConnectPayload struct {
	Status       *types.StripeConnectStatus `json:"status"`
	DashboardURL string                     `json:"dashboard_url,omitempty"`
	Message      string                     `json:"message,omitempty"`
}

type ErrorPayload struct {
	Message string `json:"message,omitempty"`
}

type ForecastPayload struct {
	Forecast *types.Forecast `json:"forecast"`
}

// DecodePayload unmarshals an action payload, treating an absent payload as
// a zero value rather than an error.
func DecodePayload(raw json.RawMessage, out any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}

// ErrorText resolves the user-facing text for an error-kind action:
// payload message first, then the action-level error, then a fallback.
func (a Action) ErrorText(fallback string) string {
	var payload ErrorPayload
	if err := DecodePayload(a.Data, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	if a.Error != "" {
		return a.Error
	}
	if a.Message != "" {
		return a.Message
	}
	return fallback
}

// identity extracts the best-effort payload identity for fingerprinting:
// id, else invoice_id, else transaction_id, else a sentinel.
func (a Action) identity() string {
	var probe struct {
		ID            string `json:"id"`
		InvoiceID     string `json:"invoice_id"`
		TransactionID string `json:"transaction_id"`
		Invoice       *struct {
			ID string `json:"id"`
		} `json:"invoice"`
	}
	if err := DecodePayload(a.Data, &probe); err == nil {
		switch {
		case probe.ID != "":
			return probe.ID
		case probe.InvoiceID != "":
			return probe.InvoiceID
		case probe.Invoice != nil && probe.Invoice.ID != "":
			return probe.Invoice.ID
		case probe.TransactionID != "":
			return probe.TransactionID
		}
	}
	return "no-id"
}
