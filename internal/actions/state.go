package actions

import "github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/types"

// State is the canonical per-conversation UI aggregate. The orchestrator
// owns the single instance; reducers mutate exactly one slice per applied
// action. Only Messages accumulates across turns, everything else is a
// per-turn display surface.
type State struct {
	Messages []*types.Message
	Loading  bool
	Error    string

	ShowPlaidLink bool
	Accounts      []*types.Account
	Transactions  *types.TransactionSet
	Invoices      []*types.Invoice

	// InvoicePreview is at most one draft awaiting explicit send/cancel.
	// It is cleared the moment a send succeeds, which is also the only
	// moment PaymentLink may be set.
	InvoicePreview *types.Invoice
	PaymentLink    *types.PaymentLink

	ShowStripeConnectSetup bool
	StripeConnectStatus    *types.StripeConnectStatus

	Forecast *types.Forecast
}

func NewState() *State {
	return &State{}
}

// ResetTurnSurfaces clears every per-turn display slice before a new reply
// is processed. The running message transcript is deliberately untouched.
func (s *State) ResetTurnSurfaces() {
	if s == nil {
		return
	}
	s.ShowPlaidLink = false
	s.Accounts = nil
	s.Transactions = nil
	s.Invoices = nil
	s.InvoicePreview = nil
	s.PaymentLink = nil
	s.ShowStripeConnectSetup = false
	s.StripeConnectStatus = nil
	s.Forecast = nil
}

func (s *State) AppendMessage(msg *types.Message) {
	if s == nil || msg == nil {
		return
	}
	s.Messages = append(s.Messages, msg)
}
