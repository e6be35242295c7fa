package client

import (
	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/actions"
	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/types"
)

type QueryRequest struct {
	UserID              string         `json:"user_id"`
	Query               string         `json:"query"`
	ConversationHistory []HistoryEntry `json:"conversation_history"`
}

type HistoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// QueryResponse is the reply contract the core depends on: a natural
// language message plus zero or more typed actions.
type QueryResponse struct {
	Message string           `json:"message"`
	Actions []actions.Action `json:"actions,omitempty"`
}

// Envelope is the minimal shape every auxiliary endpoint returns.
type Envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type ConversationsResponse struct {
	Conversations []*types.Conversation `json:"conversations"`
}

type TransactionRequest struct {
	AccountID   string  `json:"account_id,omitempty"`
	Date        string  `json:"date,omitempty"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	Amount      float64 `json:"amount,omitempty"`
}

type InvoicesResponse struct {
	Envelope
	Invoices []*types.Invoice `json:"invoices"`
}

type InvoiceSendResponse struct {
	Envelope
	Invoice          *types.Invoice `json:"invoice"`
	HostedInvoiceURL string         `json:"hosted_invoice_url,omitempty"`
}

type StripeConnectLinkResponse struct {
	Envelope
	URL string `json:"url"`
}

type StripeConnectSetupResponse struct {
	Envelope
	Status *types.StripeConnectStatus `json:"status"`
}
