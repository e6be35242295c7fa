package app

import (
	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/conversation"
	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/types"
)

type queryReplyMsg struct {
	generation int
	reply      conversation.Reply
	err        error
}

type conversationsMsg struct {
	conversations []*types.Conversation
	err           error
}

type conversationLoadedMsg struct {
	conversation *types.Conversation
	err          error
}

type conversationsClearedMsg struct {
	err error
}

type accountDisconnectedMsg struct {
	accountID string
	err       error
}

type transactionMutatedMsg struct {
	op  string
	id  string
	err error
}

type invoiceSentMsg struct {
	invoiceID string
	invoice   *types.Invoice
	hostedURL string
	err       error
}

type stripeLinkMsg struct {
	kind string
	url  string
	err  error
}

type stripeSetupMsg struct {
	status *types.StripeConnectStatus
	err    error
}

type forecastExportedMsg struct {
	path string
	err  error
}

type recentsSavedMsg struct {
	err error
}
