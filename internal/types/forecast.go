package types

// ForecastPoint is one projected day in a cash-flow forecast. Optimistic and
// pessimistic carry the scenario branches around the base projection.
type ForecastPoint struct {
	Date        string  `json:"date"`
	Projected   float64 `json:"projected"`
	Optimistic  float64 `json:"optimistic,omitempty"`
	Pessimistic float64 `json:"pessimistic,omitempty"`
}

type ForecastSummary struct {
	StartingBalance float64 `json:"starting_balance"`
	EndingBalance   float64 `json:"ending_balance"`
	NetChange       float64 `json:"net_change"`
	LowestBalance   float64 `json:"lowest_balance,omitempty"`
	LowestDate      string  `json:"lowest_date,omitempty"`
}

type Forecast struct {
	Title      string           `json:"title,omitempty"`
	PeriodDays int              `json:"period_days,omitempty"`
	Scenario   string           `json:"scenario,omitempty"`
	Points     []*ForecastPoint `json:"data_points"`
	Summary    ForecastSummary  `json:"summary"`
}
