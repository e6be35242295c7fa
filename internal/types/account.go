package types

type Account struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"account_type,omitempty"`
	Balance     float64 `json:"balance"`
	Institution string  `json:"institution,omitempty"`
	LastSynced  string  `json:"last_synced_at,omitempty"`
}

type Transaction struct {
	ID          string  `json:"id"`
	AccountID   string  `json:"account_id,omitempty"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Category    string  `json:"category,omitempty"`
	Amount      float64 `json:"amount"`
	Recurring   bool    `json:"recurring,omitempty"`
}

// TransactionSummary carries the aggregates shown above a transaction list.
// It is recomputed client-side after local edits.
type TransactionSummary struct {
	Count        int     `json:"count"`
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
	NetAmount    float64 `json:"net_amount"`
}

type TransactionSet struct {
	Transactions []*Transaction     `json:"transactions"`
	Summary      TransactionSummary `json:"summary"`
}

// Summarize recomputes the aggregate fields from the transaction list.
func (s *TransactionSet) Summarize() {
	if s == nil {
		return
	}
	summary := TransactionSummary{Count: len(s.Transactions)}
	for _, txn := range s.Transactions {
		if txn == nil {
			continue
		}
		if txn.Amount >= 0 {
			summary.TotalIncome += txn.Amount
		} else {
			summary.TotalExpense += -txn.Amount
		}
		summary.NetAmount += txn.Amount
	}
	s.Summary = summary
}
