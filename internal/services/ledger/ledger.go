// Package ledger manages transaction entries: creation with optional
// auto-categorization, filtered listing, and deletion.
package ledger

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/models"
	"fintrack/internal/services/classifier"
)

// AddInput carries the fields for a new transaction.
type AddInput struct {
	Amount      float64
	Category    string
	Description string
	Date        string
	Type        models.TransactionType
	Tags        []string
	Currency    string
}

// Add appends a transaction to the ledger. The date defaults to today and
// the category is suggested from the description when left blank. The
// transaction currency defaults to the document currency.
func Add(doc *models.FinanceDocument, in AddInput) (*models.Transaction, error) {
	return addAt(doc, in, time.Now())
}

func addAt(doc *models.FinanceDocument, in AddInput, now time.Time) (*models.Transaction, error) {
	if in.Amount <= 0 {
		return nil, models.ErrInvalidInput
	}
	if in.Type != models.Income && in.Type != models.Expense {
		return nil, models.ErrInvalidInput
	}

	date := in.Date
	if date == "" {
		date = now.Format(models.DateFormat)
	} else if _, err := time.Parse(models.DateFormat, date); err != nil {
		return nil, models.ErrInvalidInput
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = classifier.SuggestCategory(in.Description)
	}

	currency := in.Currency
	if currency == "" {
		currency = doc.DefaultCurrency
	}

	doc.Transactions = append(doc.Transactions, models.Transaction{
		ID:          uuid.NewString(),
		Date:        date,
		Amount:      in.Amount,
		Category:    category,
		Description: in.Description,
		Type:        in.Type,
		Tags:        in.Tags,
		Currency:    currency,
	})
	doc.AddCategory(category)
	return &doc.Transactions[len(doc.Transactions)-1], nil
}

// Delete removes the transaction with the given id.
func Delete(doc *models.FinanceDocument, id string) error {
	for i, t := range doc.Transactions {
		if t.ID == id {
			doc.Transactions = append(doc.Transactions[:i], doc.Transactions[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

// Filter selects transactions for listing.
type Filter struct {
	Category string
	Type     models.TransactionType
	Month    string // "2006-01", empty for all
	Limit    int    // 0 for unlimited
}

// List returns matching transactions, newest date first.
func List(doc *models.FinanceDocument, f Filter) []models.Transaction {
	out := make([]models.Transaction, 0, len(doc.Transactions))
	for _, t := range doc.Transactions {
		if f.Category != "" && !strings.EqualFold(strings.TrimSpace(t.Category), strings.TrimSpace(f.Category)) {
			continue
		}
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		if f.Month != "" && !strings.HasPrefix(t.Date, f.Month) {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}
