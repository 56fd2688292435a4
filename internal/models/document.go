package models

import (
	"time"

	"github.com/google/uuid"
)

// DateFormat is the calendar-date layout used everywhere in the document.
const DateFormat = "2006-01-02"

// FinanceDocument is the single root aggregate: one document per deployment,
// owning all transactions, budgets, goals and recurring schedules.
type FinanceDocument struct {
	Transactions          []Transaction          `json:"transactions"`
	Budgets               []Budget               `json:"budgets"`
	RecurringTransactions []RecurringTransaction `json:"recurring_transactions"`
	SavingsGoals          []SavingsGoal          `json:"savings_goals"`
	Accounts              []Account              `json:"accounts"`
	Categories            []string               `json:"categories"`
	DefaultCurrency       string                 `json:"default_currency"`
	ExchangeRates         *ExchangeRateCache     `json:"exchange_rates,omitempty"`
	LastUpdated           time.Time              `json:"last_updated"`
}

// Account is a named container for context only; balances are derived from
// the transaction ledger, not tracked per account.
type Account struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// ExchangeRateCache holds the last fetched USD-pivoted rate table.
type ExchangeRateCache struct {
	Rates       map[string]float64 `json:"rates"`
	LastUpdated time.Time          `json:"last_updated"`
}

// DefaultCategories seeds a fresh document. Custom categories are appended as
// transactions introduce them.
var DefaultCategories = []string{
	"Food & Dining",
	"Groceries",
	"Transportation",
	"Shopping",
	"Entertainment",
	"Bills & Utilities",
	"Healthcare",
	"Travel",
	"Education",
	"Personal Care",
	"Salary",
	"Other",
}

// NewDocument builds the seeded empty document used when no stored document
// exists or the stored one is unreadable.
func NewDocument() *FinanceDocument {
	categories := make([]string, len(DefaultCategories))
	copy(categories, DefaultCategories)

	return &FinanceDocument{
		Transactions:          []Transaction{},
		Budgets:               []Budget{},
		RecurringTransactions: []RecurringTransaction{},
		SavingsGoals:          []SavingsGoal{},
		Accounts: []Account{
			{ID: uuid.NewString(), Name: "Main Account", Type: "checking"},
		},
		Categories:      categories,
		DefaultCurrency: "USD",
	}
}

// HasCategory reports whether the document already knows the category
// (case-insensitive).
func (d *FinanceDocument) HasCategory(category string) bool {
	for _, c := range d.Categories {
		if equalFold(c, category) {
			return true
		}
	}
	return false
}

// AddCategory appends a custom category if it is not already present.
func (d *FinanceDocument) AddCategory(category string) {
	if category == "" || d.HasCategory(category) {
		return
	}
	d.Categories = append(d.Categories, category)
}
