package types

type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

type Invoice struct {
	ID          string        `json:"id"`
	ClientName  string        `json:"client_name"`
	ClientEmail string        `json:"client_email,omitempty"`
	Amount      float64       `json:"amount"`
	Currency    string        `json:"currency,omitempty"`
	Status      InvoiceStatus `json:"status"`
	Description string        `json:"description,omitempty"`
	DueDate     string        `json:"due_date,omitempty"`
	InvoiceURL  string        `json:"invoice_url,omitempty"`
}

// PaymentLink is the transient banner shown after an invoice send succeeds.
type PaymentLink struct {
	URL        string  `json:"url"`
	InvoiceID  string  `json:"invoice_id"`
	ClientName string  `json:"client_name,omitempty"`
	Amount     float64 `json:"amount,omitempty"`
}

type StripeConnectStatus struct {
	Connected       bool    `json:"connected"`
	AccountID       string  `json:"account_id,omitempty"`
	ChargesEnabled  bool    `json:"charges_enabled,omitempty"`
	PayoutsEnabled  bool    `json:"payouts_enabled,omitempty"`
	OnboardingState string  `json:"onboarding_state,omitempty"`
	PlatformFee     float64 `json:"platform_fee_percentage,omitempty"`
}
