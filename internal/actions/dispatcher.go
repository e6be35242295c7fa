package actions

import (
	"errors"
	"fmt"

	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/logging"
	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/types"
)

const (
	fallbackInvoiceCreateError = "I couldn't create that invoice. Please try again."
	fallbackInvoiceSendError   = "I couldn't send that invoice. Please try again."
	fallbackStripeConnectError = "Something went wrong setting up payments. Please try again."
	fallbackGeneralError       = "Something went wrong. Please try again."
)

var errNilState = errors.New("nil state")

// MessageAppender receives the content of a synthesized assistant message.
type MessageAppender func(content string)

// Dispatcher validates, de-duplicates and routes backend actions to their
// reducers. One malformed action never aborts its siblings: failures are
// logged here and reported as not-applied.
type Dispatcher struct {
	ledger  *Ledger
	log     logging.Logger
	openURL func(url string) error
}

func NewDispatcher(ledger *Ledger, log logging.Logger) *Dispatcher {
	if ledger == nil {
		ledger = NewLedger()
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Dispatcher{ledger: ledger, log: log, openURL: OpenBrowser}
}

// SetURLOpener overrides how open_stripe_dashboard launches a browser.
func (d *Dispatcher) SetURLOpener(open func(url string) error) {
	if open != nil {
		d.openURL = open
	}
}

func (d *Dispatcher) Ledger() *Ledger {
	return d.ledger
}

// Dispatch applies one action to the state, or synthesizes one assistant
// message, and reports whether the action was applied. Unknown kinds and
// same-second duplicates are dropped.
func (d *Dispatcher) Dispatch(action Action, state *State, appendMessage MessageAppender) bool {
	if !IsValidKind(action.Type) {
		d.log.Warn("dropping unrecognized action", logging.F("type", string(action.Type)))
		return false
	}
	fingerprint := d.ledger.Fingerprint(action)
	if d.ledger.Seen(fingerprint) {
		d.log.Debug("dropping duplicate action", logging.F("fingerprint", fingerprint))
		return false
	}
	d.ledger.Record(fingerprint)

	if appendMessage == nil {
		appendMessage = func(string) {}
	}
	if err := d.apply(action, state, appendMessage); err != nil {
		d.log.Error("action handler failed",
			logging.F("type", string(action.Type)),
			logging.F("error", err.Error()))
		return false
	}
	return true
}

func (d *Dispatcher) apply(action Action, state *State, appendMessage MessageAppender) error {
	if IsErrorKind(action.Type) {
		appendMessage(errorMessageFor(action))
		return nil
	}
	if state == nil {
		return errNilState
	}

	switch action.Type {
	case KindInitiateBankConnection:
		state.ShowPlaidLink = true

	case KindShowAccounts:
		var payload AccountsPayload
		if err := DecodePayload(action.Data, &payload); err != nil {
			return fmt.Errorf("decode accounts: %w", err)
		}
		if payload.Accounts != nil {
			state.Accounts = payload.Accounts
		}

	case KindAccountDisconnectSuccess:
		appendMessage(resultMessage(action, "Your bank account has been disconnected."))

	case KindShowTransactions:
		var payload TransactionsPayload
		if err := DecodePayload(action.Data, &payload); err != nil {
			return fmt.Errorf("decode transactions: %w", err)
		}
		if payload.Transactions != nil {
			set := &types.TransactionSet{
				Transactions: payload.Transactions,
				Summary:      payload.Summary,
			}
			if set.Summary.Count == 0 {
				set.Summarize()
			}
			state.Transactions = set
		}

	case KindTransactionCreateSuccess:
		appendMessage(resultMessage(action, "Transaction created."))
	case KindTransactionUpdateSuccess:
		appendMessage(resultMessage(action, "Transaction updated."))
	case KindTransactionDeleteSuccess:
		appendMessage(resultMessage(action, "Transaction deleted."))

	case KindInvoiceCreateSuccess:
		var payload InvoicePayload
		if err := DecodePayload(action.Data, &payload); err != nil {
			return fmt.Errorf("decode invoice: %w", err)
		}
		if payload.Invoice == nil {
			return errors.New("invoice_create_success without invoice")
		}
		draft := *payload.Invoice
		if draft.Status == "" {
			draft.Status = types.InvoiceStatusDraft
		}
		state.InvoicePreview = &draft

	case KindInvoiceSendSuccess:
		var payload InvoicePayload
		if err := DecodePayload(action.Data, &payload); err != nil {
			return fmt.Errorf("decode invoice: %w", err)
		}
		if payload.Invoice == nil {
			return errors.New("invoice_send_success without invoice")
		}
		applyInvoiceSent(state, payload)

	case KindShowInvoices:
		var payload InvoicesPayload
		if err := DecodePayload(action.Data, &payload); err != nil {
			return fmt.Errorf("decode invoices: %w", err)
		}
		state.Invoices = payload.Invoices
		// Invoice listing is usually the terminal response of a
		// multi-step invoice flow, so it also ends the turn spinner.
		state.Loading = false

	case KindStripeConnectInitiated:
		var payload StripeConnectPayload
		if err := DecodePayload(action.Data, &payload); err != nil {
			return fmt.Errorf("decode stripe status: %w", err)
		}
		state.StripeConnectStatus = payload.Status
		state.ShowStripeConnectSetup = true

	case KindShowStripeConnectStatus:
		var payload StripeConnectPayload
		if err := DecodePayload(action.Data, &payload); err != nil {
			return fmt.Errorf("decode stripe status: %w", err)
		}
		state.StripeConnectStatus = payload.Status

	case KindOpenStripeDashboard:
		var payload StripeConnectPayload
		if err := DecodePayload(action.Data, &payload); err != nil {
			return fmt.Errorf("decode stripe dashboard: %w", err)
		}
		if payload.DashboardURL == "" {
			return errors.New("open_stripe_dashboard without url")
		}
		return d.openURL(payload.DashboardURL)

	default:
		// Forecast kinds are owned by the forecast sub-handler and are
		// never routed here by the orchestrator.
		return fmt.Errorf("no handler for action %q", action.Type)
	}
	return nil
}

// applyInvoiceSent reconciles the three invoice surfaces: the preview is
// cleared, the matching list entry (if present) moves to pending without
// touching its siblings, and the payment banner follows the payload URL.
func applyInvoiceSent(state *State, payload InvoicePayload) {
	sent := payload.Invoice
	state.InvoicePreview = nil

	if len(state.Invoices) > 0 {
		patched := make([]*types.Invoice, len(state.Invoices))
		for i, inv := range state.Invoices {
			if inv != nil && inv.ID == sent.ID {
				updated := *inv
				updated.Status = types.InvoiceStatusPending
				patched[i] = &updated
				continue
			}
			patched[i] = inv
		}
		state.Invoices = patched
	}

	url := payload.HostedInvoiceURL
	if url == "" {
		url = sent.InvoiceURL
	}
	if url == "" {
		state.PaymentLink = nil
		return
	}
	state.PaymentLink = &types.PaymentLink{
		URL:        url,
		InvoiceID:  sent.ID,
		ClientName: sent.ClientName,
		Amount:     sent.Amount,
	}
}

func resultMessage(action Action, fallback string) string {
	var payload TransactionResultPayload
	if err := DecodePayload(action.Data, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	if action.Message != "" {
		return action.Message
	}
	return fallback
}

func errorMessageFor(action Action) string {
	switch action.Type {
	case KindInvoiceCreateError:
		return action.ErrorText(fallbackInvoiceCreateError)
	case KindInvoiceSendError:
		return action.ErrorText(fallbackInvoiceSendError)
	case KindStripeConnectError:
		return action.ErrorText(fallbackStripeConnectError)
	default:
		return action.ErrorText(fallbackGeneralError)
	}
}
