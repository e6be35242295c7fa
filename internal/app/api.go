package app

import (
	"context"

	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/client"
	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/types"
)

type ConversationAPI interface {
	QueryConversation(ctx context.Context, query string, history []*types.Message) (*client.QueryResponse, error)
	ListConversations(ctx context.Context) ([]*types.Conversation, error)
	GetConversation(ctx context.Context, id string) (*types.Conversation, error)
	ClearConversations(ctx context.Context) error
}

type FinanceAPI interface {
	DisconnectAccount(ctx context.Context, accountID string) error
	CreateTransaction(ctx context.Context, req client.TransactionRequest) error
	UpdateTransaction(ctx context.Context, id string, req client.TransactionRequest) error
	DeleteTransaction(ctx context.Context, id string) error
	SendInvoice(ctx context.Context, id string) (*client.InvoiceSendResponse, error)
	StripeConnectDashboardLink(ctx context.Context) (string, error)
	StripeConnectOnboardingLink(ctx context.Context) (string, error)
	SetupStripeConnect(ctx context.Context) (*types.StripeConnectStatus, error)
}

// RecentsStore is the slice of the local cache the model needs.
type RecentsStore interface {
	List(ctx context.Context) ([]*types.Conversation, error)
	Upsert(ctx context.Context, conv *types.Conversation) error
}

// ClientAPI adapts the HTTP client to the narrower interfaces the model
// depends on, keeping tests free of real transport.
type ClientAPI struct {
	client *client.Client
}

func NewClientAPI(c *client.Client) *ClientAPI {
	return &ClientAPI{client: c}
}

func (a *ClientAPI) QueryConversation(ctx context.Context, query string, history []*types.Message) (*client.QueryResponse, error) {
	return a.client.QueryConversation(ctx, query, history)
}

func (a *ClientAPI) ListConversations(ctx context.Context) ([]*types.Conversation, error) {
	return a.client.ListConversations(ctx)
}

func (a *ClientAPI) GetConversation(ctx context.Context, id string) (*types.Conversation, error) {
	return a.client.GetConversation(ctx, id)
}

func (a *ClientAPI) ClearConversations(ctx context.Context) error {
	return a.client.ClearConversations(ctx)
}

func (a *ClientAPI) DisconnectAccount(ctx context.Context, accountID string) error {
	return a.client.DisconnectAccount(ctx, accountID)
}

func (a *ClientAPI) CreateTransaction(ctx context.Context, req client.TransactionRequest) error {
	return a.client.CreateTransaction(ctx, req)
}

func (a *ClientAPI) UpdateTransaction(ctx context.Context, id string, req client.TransactionRequest) error {
	return a.client.UpdateTransaction(ctx, id, req)
}

func (a *ClientAPI) DeleteTransaction(ctx context.Context, id string) error {
	return a.client.DeleteTransaction(ctx, id)
}

func (a *ClientAPI) SendInvoice(ctx context.Context, id string) (*client.InvoiceSendResponse, error) {
	return a.client.SendInvoice(ctx, id)
}

func (a *ClientAPI) StripeConnectDashboardLink(ctx context.Context) (string, error) {
	return a.client.StripeConnectDashboardLink(ctx)
}

func (a *ClientAPI) StripeConnectOnboardingLink(ctx context.Context) (string, error) {
	return a.client.StripeConnectOnboardingLink(ctx)
}

func (a *ClientAPI) SetupStripeConnect(ctx context.Context) (*types.StripeConnectStatus, error) {
	return a.client.SetupStripeConnect(ctx)
}
