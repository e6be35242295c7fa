package conversation

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/actions"
	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/types"
)

func newTestOrchestrator() *Orchestrator {
	o := New(nil)
	seq := 0
	o.newID = func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	return o
}

func raw(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return data
}

func TestBeginTurnResetsSurfacesNotLedger(t *testing.T) {
	o := newTestOrchestrator()
	o.state.Accounts = []*types.Account{{ID: "a1"}}
	o.state.PaymentLink = &types.PaymentLink{URL: "https://pay.example"}
	o.state.Error = "Failed to send message"
	o.ledger.Record("show_accounts-no-id-1700000000")

	msg, generation := o.BeginTurn("what did I spend on coffee?")

	if msg.Role != types.MessageRoleUser || msg.Content != "what did I spend on coffee?" {
		t.Fatalf("unexpected user message: %+v", msg)
	}
	if msg.ID == "" {
		t.Fatalf("user message must get a local id")
	}
	if !o.state.Loading {
		t.Fatalf("turn must be marked in flight")
	}
	if o.state.Error != "" {
		t.Fatalf("stale error must clear at turn start")
	}
	if o.state.Accounts != nil || o.state.PaymentLink != nil {
		t.Fatalf("per-turn surfaces must reset at turn start")
	}
	if o.ledger.Len() != 1 {
		t.Fatalf("dedup ledger must survive turn boundaries, len = %d", o.ledger.Len())
	}
	if generation != 1 {
		t.Fatalf("generation = %d, want 1", generation)
	}
}

func TestApplyReplyRoutesForecastBeforeDispatcher(t *testing.T) {
	o := newTestOrchestrator()
	_, generation := o.BeginTurn("forecast my cash flow")

	reply := Reply{
		Message: "Here is your 30-day outlook.",
		Actions: []actions.Action{
			{
				Type: actions.KindShowForecast,
				Data: raw(t, actions.ForecastPayload{Forecast: &types.Forecast{
					PeriodDays: 30,
					Points:     []*types.ForecastPoint{{Date: "2026-09-01", Projected: 1200}},
				}}),
			},
			{
				Type: actions.KindShowAccounts,
				Data: raw(t, actions.AccountsPayload{Accounts: []*types.Account{{ID: "a1"}}}),
			},
		},
	}

	if applied := o.ApplyReply(generation, reply); applied != 2 {
		t.Fatalf("applied = %d, want 2", applied)
	}
	if o.state.Loading {
		t.Fatalf("loading must end when the reply lands")
	}
	if o.state.Forecast == nil || o.state.Forecast.PeriodDays != 30 {
		t.Fatalf("forecast surface not populated: %+v", o.state.Forecast)
	}
	if len(o.state.Accounts) != 1 {
		t.Fatalf("sibling action must still dispatch, accounts = %+v", o.state.Accounts)
	}
	// Forecast actions belong to the sub-handler; only show_accounts should
	// have touched the generic ledger.
	if o.ledger.Len() != 1 {
		t.Fatalf("ledger len = %d, want 1", o.ledger.Len())
	}
	last := o.state.Messages[len(o.state.Messages)-1]
	if last.Role != types.MessageRoleAssistant || last.Content != "Here is your 30-day outlook." {
		t.Fatalf("assistant message not appended: %+v", last)
	}
}

func TestApplyReplyDropsStaleGeneration(t *testing.T) {
	o := newTestOrchestrator()
	_, stale := o.BeginTurn("first question")
	o.BeginTurn("second question")

	reply := Reply{
		Message: "answer to the first question",
		Actions: []actions.Action{{Type: actions.KindShowAccounts}},
	}
	if applied := o.ApplyReply(stale, reply); applied != 0 {
		t.Fatalf("stale reply must be dropped whole, applied = %d", applied)
	}
	if !o.state.Loading {
		t.Fatalf("newer in-flight turn must stay loading")
	}
	for _, msg := range o.state.Messages {
		if msg.Content == "answer to the first question" {
			t.Fatalf("stale assistant message leaked into transcript")
		}
	}
}

func TestFailTurnAppendsApology(t *testing.T) {
	o := newTestOrchestrator()
	_, generation := o.BeginTurn("hello")

	o.FailTurn(generation, errors.New("connection refused"))

	if o.state.Loading {
		t.Fatalf("loading must end on failure")
	}
	if o.state.Error != sendErrorText {
		t.Fatalf("error flag = %q, want %q", o.state.Error, sendErrorText)
	}
	last := o.state.Messages[len(o.state.Messages)-1]
	if last.Role != types.MessageRoleAssistant || last.Content != apologyMessage {
		t.Fatalf("apology not appended: %+v", last)
	}
	if len(o.state.Messages) != 2 {
		t.Fatalf("user message must not roll back, transcript = %d messages", len(o.state.Messages))
	}
}

func TestFailTurnIgnoresStaleGeneration(t *testing.T) {
	o := newTestOrchestrator()
	_, stale := o.BeginTurn("first")
	o.BeginTurn("second")

	o.FailTurn(stale, errors.New("timeout"))

	if !o.state.Loading {
		t.Fatalf("stale failure must not end the newer turn")
	}
	if o.state.Error != "" {
		t.Fatalf("stale failure must not set the error flag")
	}
}

func TestClearResetsLedgerAndKeepsMessages(t *testing.T) {
	o := newTestOrchestrator()
	_, generation := o.BeginTurn("show my invoices")
	o.ApplyReply(generation, Reply{
		Message: "Here they are.",
		Actions: []actions.Action{{
			Type: actions.KindShowInvoices,
			Data: raw(t, actions.InvoicesPayload{Invoices: []*types.Invoice{{ID: "inv1"}}}),
		}},
	})
	if o.ledger.Len() == 0 {
		t.Fatalf("precondition: ledger should have entries")
	}

	o.Clear()

	if o.ledger.Len() != 0 {
		t.Fatalf("clear must reset the dedup ledger")
	}
	if o.state.Invoices != nil || o.state.Forecast != nil {
		t.Fatalf("clear must wipe per-turn surfaces")
	}
	if len(o.state.Messages) != 2 {
		t.Fatalf("clear keeps the visible transcript, got %d messages", len(o.state.Messages))
	}
}

func TestLoadTranscriptSynthesizesMissingIDs(t *testing.T) {
	o := newTestOrchestrator()
	o.state.Accounts = []*types.Account{{ID: "stale"}}
	o.ledger.Record("some-fingerprint")

	o.LoadTranscript([]*types.Message{
		{ID: "srv-1", Role: types.MessageRoleUser, Content: "hi"},
		{Role: types.MessageRoleAssistant, Content: "hello"},
		nil,
		{Role: types.MessageRoleUser, Content: "show accounts"},
	})

	if len(o.state.Messages) != 3 {
		t.Fatalf("loaded %d messages, want 3", len(o.state.Messages))
	}
	if o.state.Messages[0].ID != "srv-1" {
		t.Fatalf("stored id must be preserved, got %q", o.state.Messages[0].ID)
	}
	seen := map[string]bool{}
	for i, msg := range o.state.Messages {
		if msg.ID == "" {
			t.Fatalf("message %d has no id", i)
		}
		if seen[msg.ID] {
			t.Fatalf("duplicate synthesized id %q", msg.ID)
		}
		seen[msg.ID] = true
	}
	if o.state.Accounts != nil {
		t.Fatalf("loading a transcript must clear prior surfaces")
	}
	if o.ledger.Len() != 0 {
		t.Fatalf("loading a transcript must reset the ledger")
	}
}
