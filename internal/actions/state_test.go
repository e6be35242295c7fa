package actions

import (
	"testing"

	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/types"
)

func TestResetTurnSurfacesKeepsTranscript(t *testing.T) {
	state := NewState()
	state.AppendMessage(&types.Message{ID: "m1", Role: types.MessageRoleUser, Content: "hi"})
	state.ShowPlaidLink = true
	state.Accounts = []*types.Account{{ID: "a1"}}
	state.Transactions = &types.TransactionSet{}
	state.Invoices = []*types.Invoice{{ID: "inv1"}}
	state.InvoicePreview = &types.Invoice{ID: "inv1"}
	state.PaymentLink = &types.PaymentLink{URL: "https://pay.example"}
	state.ShowStripeConnectSetup = true
	state.StripeConnectStatus = &types.StripeConnectStatus{Connected: true}
	state.Forecast = &types.Forecast{}

	state.ResetTurnSurfaces()

	if len(state.Messages) != 1 {
		t.Fatalf("messages must survive the per-turn reset")
	}
	if state.ShowPlaidLink || state.Accounts != nil || state.Transactions != nil ||
		state.Invoices != nil || state.InvoicePreview != nil || state.PaymentLink != nil ||
		state.ShowStripeConnectSetup || state.StripeConnectStatus != nil || state.Forecast != nil {
		t.Fatalf("all per-turn surfaces should be empty after reset: %+v", state)
	}
}

func TestSummarizeRecomputesAggregates(t *testing.T) {
	set := &types.TransactionSet{Transactions: []*types.Transaction{
		{ID: "t1", Amount: 1500},
		{ID: "t2", Amount: -300.50},
		{ID: "t3", Amount: -99.50},
	}}
	set.Summarize()

	want := types.TransactionSummary{Count: 3, TotalIncome: 1500, TotalExpense: 400, NetAmount: 1100}
	if set.Summary != want {
		t.Fatalf("summary = %+v, want %+v", set.Summary, want)
	}
}
