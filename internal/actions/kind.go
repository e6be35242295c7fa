package actions

// Kind identifies one backend-declared action. The set is closed: the
// dispatcher drops anything it does not recognize before any handler runs.
type Kind string

const (
	KindInitiateBankConnection   Kind = "initiate_bank_connection"
	KindShowAccounts             Kind = "show_accounts"
	KindAccountDisconnectSuccess Kind = "account_disconnect_success"
	KindShowTransactions         Kind = "show_transactions"
	KindTransactionCreateSuccess Kind = "transaction_create_success"
	KindTransactionUpdateSuccess Kind = "transaction_update_success"
	KindTransactionDeleteSuccess Kind = "transaction_delete_success"
	KindInvoiceCreateSuccess     Kind = "invoice_create_success"
	KindInvoiceSendSuccess       Kind = "invoice_send_success"
	KindShowInvoices             Kind = "show_invoices"
	KindStripeConnectInitiated   Kind = "stripe_connect_setup_initiated"
	KindShowStripeConnectStatus  Kind = "show_stripe_connect_status"
	KindOpenStripeDashboard      Kind = "open_stripe_dashboard"
	KindInvoiceCreateError       Kind = "invoice_create_error"
	KindInvoiceSendError         Kind = "invoice_send_error"
	KindStripeConnectError       Kind = "stripe_connect_error"
	KindGeneralError             Kind = "general_error"
	KindShowForecast             Kind = "show_forecast"
	KindShowScenarioForecast     Kind = "show_scenario_forecast"
)

var knownKinds = map[Kind]struct{}{
	KindInitiateBankConnection:   {},
	KindShowAccounts:             {},
	KindAccountDisconnectSuccess: {},
	KindShowTransactions:         {},
	KindTransactionCreateSuccess: {},
	KindTransactionUpdateSuccess: {},
	KindTransactionDeleteSuccess: {},
	KindInvoiceCreateSuccess:     {},
	KindInvoiceSendSuccess:       {},
	KindShowInvoices:             {},
	KindStripeConnectInitiated:   {},
	KindShowStripeConnectStatus:  {},
	KindOpenStripeDashboard:      {},
	KindInvoiceCreateError:       {},
	KindInvoiceSendError:         {},
	KindStripeConnectError:       {},
	KindGeneralError:             {},
	KindShowForecast:             {},
	KindShowScenarioForecast:     {},
}

func IsValidKind(kind Kind) bool {
	_, ok := knownKinds[kind]
	return ok
}

// IsForecastKind reports whether the forecast sub-handler owns this kind.
func IsForecastKind(kind Kind) bool {
	return kind == KindShowForecast || kind == KindShowScenarioForecast
}

// IsErrorKind reports whether the kind only synthesizes an assistant message.
func IsErrorKind(kind Kind) bool {
	switch kind {
	case KindInvoiceCreateError, KindInvoiceSendError, KindStripeConnectError, KindGeneralError:
		return true
	}
	return false
}
