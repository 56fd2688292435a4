package models

import (
	"strings"
	"time"
)

// TransactionType indicates whether a transaction is income or an expense
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Frequency is a recurring schedule unit
type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

// ValidFrequency reports whether f is one of the four supported units.
func ValidFrequency(f Frequency) bool {
	switch f {
	case Daily, Weekly, Monthly, Yearly:
		return true
	}
	return false
}

// Transaction is a single ledger entry. Amount is a non-negative magnitude;
// the sign is carried by Type. Entries are never mutated after creation,
// only deleted.
type Transaction struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Amount      float64         `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Type        TransactionType `json:"type"`
	Tags        []string        `json:"tags,omitempty"`
	Currency    string          `json:"currency,omitempty"`
	Recurring   bool            `json:"recurring,omitempty"`
	Frequency   Frequency       `json:"frequency,omitempty"`
}

// ParsedDate returns the transaction date as a time.Time, zero if unparseable.
func (t *Transaction) ParsedDate() time.Time {
	d, err := time.Parse(DateFormat, t.Date)
	if err != nil {
		return time.Time{}
	}
	return d
}

// SignedAmount returns the amount with the sign implied by the type.
func (t *Transaction) SignedAmount() float64 {
	if t.Type == Expense {
		return -t.Amount
	}
	return t.Amount
}

// FilterMonth returns the transactions dated within the given calendar month,
// preserving input order.
func FilterMonth(txs []Transaction, year int, month time.Month) []Transaction {
	var out []Transaction
	for _, t := range txs {
		d := t.ParsedDate()
		if d.Year() == year && d.Month() == month {
			out = append(out, t)
		}
	}
	return out
}

// CurrentMonth returns the transactions dated within now's calendar month.
func CurrentMonth(txs []Transaction, now time.Time) []Transaction {
	return FilterMonth(txs, now.Year(), now.Month())
}

// FilterCategory returns transactions whose category matches exactly,
// ignoring case.
func FilterCategory(txs []Transaction, category string) []Transaction {
	var out []Transaction
	for _, t := range txs {
		if equalFold(t.Category, category) {
			out = append(out, t)
		}
	}
	return out
}

// Balance sums the signed amounts: income adds, expense subtracts.
func Balance(txs []Transaction) float64 {
	var sum float64
	for _, t := range txs {
		sum += t.SignedAmount()
	}
	return sum
}

// ExpensesByCategory aggregates expense magnitudes by category.
func ExpensesByCategory(txs []Transaction) map[string]float64 {
	out := make(map[string]float64)
	for _, t := range txs {
		if t.Type == Expense {
			out[t.Category] += t.Amount
		}
	}
	return out
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
