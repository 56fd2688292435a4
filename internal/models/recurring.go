package models

import "time"

// RecurringTransaction is a schedule template. NextDue is the only mutable
// scheduling cursor: it always points at the next unprocessed occurrence.
// Paused entries (Active=false) are skipped by processing but keep NextDue.
type RecurringTransaction struct {
	ID            string          `json:"id"`
	Amount        float64         `json:"amount"`
	Type          TransactionType `json:"type"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Frequency     Frequency       `json:"frequency"`
	StartDate     string          `json:"start_date"`
	NextDue       string          `json:"next_due"`
	LastProcessed string          `json:"last_processed,omitempty"`
	Active        bool            `json:"active"`
	Currency      string          `json:"currency,omitempty"`
}

// ParsedNextDue returns NextDue as a time.Time, zero if unparseable.
func (r *RecurringTransaction) ParsedNextDue() time.Time {
	d, err := time.Parse(DateFormat, r.NextDue)
	if err != nil {
		return time.Time{}
	}
	return d
}

// FindRecurring returns the recurring transaction with the given id, or nil.
func (d *FinanceDocument) FindRecurring(id string) *RecurringTransaction {
	for i := range d.RecurringTransactions {
		if d.RecurringTransactions[i].ID == id {
			return &d.RecurringTransactions[i]
		}
	}
	return nil
}
