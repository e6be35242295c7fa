package actions

import (
	"encoding/json"
	"testing"

	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/logging"
	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/types"
)

func newTestDispatcher() *Dispatcher {
	d := NewDispatcher(NewLedger(), logging.Nop())
	d.ledger.now = fixedClock(1700000000)
	return d
}

func raw(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return data
}

func TestDispatchRejectsUnknownKind(t *testing.T) {
	d := newTestDispatcher()
	state := NewState()

	applied := d.Dispatch(Action{Type: "not_a_real_action"}, state, nil)
	if applied {
		t.Fatalf("unknown action type should not apply")
	}
	if state.Accounts != nil || state.ShowPlaidLink {
		t.Fatalf("unknown action must not mutate state")
	}
	if d.Ledger().Len() != 0 {
		t.Fatalf("unknown action must not be recorded in the ledger")
	}
}

func TestDispatchDuplicateWithinSameSecondIsDropped(t *testing.T) {
	d := newTestDispatcher()
	state := NewState()
	action := Action{
		Type: KindShowAccounts,
		Data: raw(t, AccountsPayload{Accounts: []*types.Account{{ID: "a1", Name: "Checking", Balance: 1200}}}),
	}

	if !d.Dispatch(action, state, nil) {
		t.Fatalf("first dispatch should apply")
	}
	if d.Dispatch(action, state, nil) {
		t.Fatalf("second dispatch within the same second should be dropped")
	}
	if len(state.Accounts) != 1 {
		t.Fatalf("expected exactly one account, got %d", len(state.Accounts))
	}
}

func TestShowAccountsReplacesWholesale(t *testing.T) {
	d := newTestDispatcher()
	state := NewState()
	state.Accounts = []*types.Account{{ID: "old"}}

	applied := d.Dispatch(Action{
		Type: KindShowAccounts,
		Data: raw(t, AccountsPayload{Accounts: []*types.Account{{ID: "new", Name: "Savings"}}}),
	}, state, nil)
	if !applied {
		t.Fatalf("expected show_accounts to apply")
	}
	if len(state.Accounts) != 1 || state.Accounts[0].ID != "new" {
		t.Fatalf("accounts should be replaced, not merged: %#v", state.Accounts)
	}
}

func TestShowTransactionsComputesSummaryWhenAbsent(t *testing.T) {
	d := newTestDispatcher()
	state := NewState()

	applied := d.Dispatch(Action{
		Type: KindShowTransactions,
		Data: raw(t, map[string]any{"transactions": []*types.Transaction{
			{ID: "t1", Amount: 100},
			{ID: "t2", Amount: -40},
		}}),
	}, state, nil)
	if !applied {
		t.Fatalf("expected show_transactions to apply")
	}
	summary := state.Transactions.Summary
	if summary.Count != 2 || summary.TotalIncome != 100 || summary.TotalExpense != 40 || summary.NetAmount != 60 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestInvoiceCreateBuildsPreviewOnly(t *testing.T) {
	d := newTestDispatcher()
	state := NewState()
	state.Invoices = []*types.Invoice{{ID: "other", Status: types.InvoiceStatusPaid}}

	applied := d.Dispatch(Action{
		Type: KindInvoiceCreateSuccess,
		Data: raw(t, InvoicePayload{Invoice: &types.Invoice{ID: "inv1", ClientName: "Acme", Amount: 250}}),
	}, state, nil)
	if !applied {
		t.Fatalf("expected invoice_create_success to apply")
	}
	if state.InvoicePreview == nil || state.InvoicePreview.ID != "inv1" {
		t.Fatalf("expected preview for inv1, got %#v", state.InvoicePreview)
	}
	if state.InvoicePreview.Status != types.InvoiceStatusDraft {
		t.Fatalf("preview should default to draft, got %q", state.InvoicePreview.Status)
	}
	if len(state.Invoices) != 1 || state.Invoices[0].ID != "other" {
		t.Fatalf("invoice list must not change on create")
	}
}

func TestInvoiceSendClearsPreviewPatchesListAndSetsBanner(t *testing.T) {
	d := newTestDispatcher()
	state := NewState()
	state.InvoicePreview = &types.Invoice{ID: "inv1", Status: types.InvoiceStatusDraft}
	state.Invoices = []*types.Invoice{
		{ID: "inv1", Status: types.InvoiceStatusDraft},
		{ID: "inv2", Status: types.InvoiceStatusPaid},
	}

	applied := d.Dispatch(Action{
		Type: KindInvoiceSendSuccess,
		Data: raw(t, InvoicePayload{
			Invoice:          &types.Invoice{ID: "inv1", ClientName: "Acme", Amount: 99},
			HostedInvoiceURL: "https://pay.example/inv1",
		}),
	}, state, nil)
	if !applied {
		t.Fatalf("expected invoice_send_success to apply")
	}
	if state.InvoicePreview != nil {
		t.Fatalf("preview must be cleared after send")
	}
	if state.Invoices[0].Status != types.InvoiceStatusPending {
		t.Fatalf("sent invoice should be pending, got %q", state.Invoices[0].Status)
	}
	if state.Invoices[1].Status != types.InvoiceStatusPaid {
		t.Fatalf("sibling invoice must be untouched, got %q", state.Invoices[1].Status)
	}
	link := state.PaymentLink
	if link == nil || link.InvoiceID != "inv1" || link.URL != "https://pay.example/inv1" || link.ClientName != "Acme" {
		t.Fatalf("unexpected payment link: %#v", link)
	}
}

func TestInvoiceSendWithoutURLClearsBanner(t *testing.T) {
	d := newTestDispatcher()
	state := NewState()
	state.PaymentLink = &types.PaymentLink{URL: "stale"}

	applied := d.Dispatch(Action{
		Type: KindInvoiceSendSuccess,
		Data: raw(t, InvoicePayload{Invoice: &types.Invoice{ID: "inv1"}}),
	}, state, nil)
	if !applied {
		t.Fatalf("expected invoice_send_success to apply")
	}
	if state.PaymentLink != nil {
		t.Fatalf("banner should be cleared when no URL is present")
	}
}

func TestShowInvoicesReplacesListAndEndsLoading(t *testing.T) {
	d := newTestDispatcher()
	state := NewState()
	state.Loading = true
	state.Invoices = []*types.Invoice{{ID: "old"}}

	applied := d.Dispatch(Action{
		Type: KindShowInvoices,
		Data: raw(t, InvoicesPayload{Invoices: []*types.Invoice{{ID: "inv1"}, {ID: "inv2"}}}),
	}, state, nil)
	if !applied {
		t.Fatalf("expected show_invoices to apply")
	}
	if len(state.Invoices) != 2 {
		t.Fatalf("expected wholesale replace, got %d entries", len(state.Invoices))
	}
	if state.Loading {
		t.Fatalf("show_invoices should clear the loading flag")
	}
}

func TestStripeConnectHandlers(t *testing.T) {
	d := newTestDispatcher()
	state := NewState()
	status := &types.StripeConnectStatus{Connected: true, ChargesEnabled: true}

	if !d.Dispatch(Action{
		Type: KindShowStripeConnectStatus,
		Data: raw(t, StripeConnectPayload{Status: status}),
	}, state, nil) {
		t.Fatalf("expected status action to apply")
	}
	if state.ShowStripeConnectSetup {
		t.Fatalf("status-only action must not open the setup panel")
	}

	d.ledger.now = fixedClock(1700000001)
	if !d.Dispatch(Action{
		Type: KindStripeConnectInitiated,
		Data: raw(t, StripeConnectPayload{Status: status}),
	}, state, nil) {
		t.Fatalf("expected setup action to apply")
	}
	if !state.ShowStripeConnectSetup {
		t.Fatalf("setup action should open the setup panel")
	}
}

func TestOpenStripeDashboardUsesOpener(t *testing.T) {
	d := newTestDispatcher()
	var opened string
	d.SetURLOpener(func(url string) error {
		opened = url
		return nil
	})
	state := NewState()

	applied := d.Dispatch(Action{
		Type: KindOpenStripeDashboard,
		Data: raw(t, StripeConnectPayload{DashboardURL: "https://dashboard.stripe.com/acct"}),
	}, state, nil)
	if !applied {
		t.Fatalf("expected dashboard action to apply")
	}
	if opened != "https://dashboard.stripe.com/acct" {
		t.Fatalf("unexpected opened url %q", opened)
	}
}

func TestErrorKindsAppendSingleMessage(t *testing.T) {
	tests := []struct {
		name   string
		action Action
		want   string
	}{
		{
			"payload message preferred",
			Action{Type: KindGeneralError, Data: json.RawMessage(`{"message":"insufficient funds"}`)},
			"insufficient funds",
		},
		{
			"action error next",
			Action{Type: KindInvoiceSendError, Error: "stripe declined"},
			"stripe declined",
		},
		{
			"fallback text",
			Action{Type: KindInvoiceCreateError},
			fallbackInvoiceCreateError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDispatcher()
			state := NewState()
			var messages []string
			applied := d.Dispatch(tt.action, state, func(content string) {
				messages = append(messages, content)
			})
			if !applied {
				t.Fatalf("error actions should report applied")
			}
			if len(messages) != 1 || messages[0] != tt.want {
				t.Fatalf("messages = %#v, want one entry %q", messages, tt.want)
			}
			if state.Accounts != nil || state.PaymentLink != nil || state.ShowPlaidLink {
				t.Fatalf("error action must not mutate state")
			}
		})
	}
}

func TestMalformedPayloadDoesNotAbortSiblings(t *testing.T) {
	d := newTestDispatcher()
	state := NewState()

	bad := Action{Type: KindShowAccounts, Data: json.RawMessage(`{"accounts":"nope"}`)}
	if d.Dispatch(bad, state, nil) {
		t.Fatalf("malformed payload should report not-applied")
	}

	good := Action{Type: KindInitiateBankConnection}
	if !d.Dispatch(good, state, nil) {
		t.Fatalf("sibling action should still apply")
	}
	if !state.ShowPlaidLink {
		t.Fatalf("sibling reducer should have run")
	}
}

func TestTransactionResultSynthesizesMessageOnly(t *testing.T) {
	d := newTestDispatcher()
	state := NewState()
	state.Transactions = &types.TransactionSet{Transactions: []*types.Transaction{{ID: "t1"}}}

	var messages []string
	applied := d.Dispatch(Action{
		Type: KindTransactionDeleteSuccess,
		Data: json.RawMessage(`{"transaction_id":"t1","message":"Deleted the coffee purchase."}`),
	}, state, func(content string) {
		messages = append(messages, content)
	})
	if !applied {
		t.Fatalf("expected delete success to apply")
	}
	if len(messages) != 1 || messages[0] != "Deleted the coffee purchase." {
		t.Fatalf("unexpected messages %#v", messages)
	}
	if len(state.Transactions.Transactions) != 1 {
		t.Fatalf("backend result action must not edit the list; refresh comes separately")
	}
}
