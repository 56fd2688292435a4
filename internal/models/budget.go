package models

// DefaultAlertThreshold is the percentage of a budget at which the softer
// alert fires when no explicit threshold is set.
const DefaultAlertThreshold = 80

// Budget caps monthly spending for one category. Limits are currency-less
// and interpreted in whatever currency the transactions use (nominally USD).
// Spent/remaining figures are always derived from the current month's
// transactions at read time, never stored.
type Budget struct {
	Category       string  `json:"category"`
	Limit          float64 `json:"limit"`
	AlertThreshold float64 `json:"alert_threshold"`
}

// FindBudget returns the budget for the category (case-insensitive), or nil.
func (d *FinanceDocument) FindBudget(category string) *Budget {
	for i := range d.Budgets {
		if equalFold(d.Budgets[i].Category, category) {
			return &d.Budgets[i]
		}
	}
	return nil
}
