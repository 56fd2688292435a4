// Package recurring advances recurring-transaction schedules and
// materializes due occurrences into the transaction ledger.
package recurring

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/models"
)

// CreateInput carries the fields for a new recurring transaction.
type CreateInput struct {
	Amount      float64
	Type        models.TransactionType
	Category    string
	Description string
	Frequency   models.Frequency
	StartDate   string
	Currency    string
}

// Create appends a new active recurring transaction. The amount is stored as
// its absolute value; StartDate defaults to today and seeds NextDue.
func Create(doc *models.FinanceDocument, in CreateInput) (*models.RecurringTransaction, error) {
	return createAt(doc, in, time.Now())
}

func createAt(doc *models.FinanceDocument, in CreateInput, now time.Time) (*models.RecurringTransaction, error) {
	if in.Amount == 0 || strings.TrimSpace(in.Category) == "" {
		return nil, models.ErrInvalidInput
	}
	if in.Type != models.Income && in.Type != models.Expense {
		return nil, models.ErrInvalidInput
	}
	if !models.ValidFrequency(in.Frequency) {
		return nil, models.ErrInvalidInput
	}

	start := in.StartDate
	if start == "" {
		start = now.Format(models.DateFormat)
	} else if _, err := time.Parse(models.DateFormat, start); err != nil {
		return nil, models.ErrInvalidInput
	}

	amount := in.Amount
	if amount < 0 {
		amount = -amount
	}

	doc.RecurringTransactions = append(doc.RecurringTransactions, models.RecurringTransaction{
		ID:          uuid.NewString(),
		Amount:      amount,
		Type:        in.Type,
		Category:    in.Category,
		Description: in.Description,
		Frequency:   in.Frequency,
		StartDate:   start,
		NextDue:     start,
		Active:      true,
		Currency:    in.Currency,
	})
	doc.AddCategory(in.Category)
	return &doc.RecurringTransactions[len(doc.RecurringTransactions)-1], nil
}

// NextDueDate advances a date by one frequency unit using calendar
// arithmetic. Monthly and yearly steps clamp to the last day of the target
// month instead of letting overflow spill into the following month.
func NextDueDate(date time.Time, frequency models.Frequency) time.Time {
	switch frequency {
	case models.Daily:
		return date.AddDate(0, 0, 1)
	case models.Weekly:
		return date.AddDate(0, 0, 7)
	case models.Monthly:
		return addMonthsClamped(date, 1)
	case models.Yearly:
		return addYearsClamped(date, 1)
	}
	return date.AddDate(0, 0, 1)
}

// addMonthsClamped preserves the day of month where the target month has it,
// clamping Jan 31 + 1 month to Feb 28/29 rather than Mar 2/3.
func addMonthsClamped(date time.Time, months int) time.Time {
	year, month, day := date.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, date.Location()).AddDate(0, months, 0)
	if last := lastDayOfMonth(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, date.Location())
}

func addYearsClamped(date time.Time, years int) time.Time {
	return addMonthsClamped(date, years*12)
}

func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ProcessResult reports one processing pass.
type ProcessResult struct {
	Count   int                  `json:"count"`
	Created []models.Transaction `json:"created"`
}

// Process materializes every due occurrence of every active recurring entry.
// An entry overdue by several periods is caught up in full: each iteration
// appends one transaction dated NextDue, stamps LastProcessed, and advances
// NextDue, repeating while NextDue is still on or before today. The caller
// persists only when Count > 0.
func Process(doc *models.FinanceDocument) ProcessResult {
	return processAt(doc, time.Now())
}

func processAt(doc *models.FinanceDocument, now time.Time) ProcessResult {
	today := dateOnly(now)

	var result ProcessResult
	for i := range doc.RecurringTransactions {
		r := &doc.RecurringTransactions[i]
		if !r.Active {
			continue
		}

		due := r.ParsedNextDue()
		if due.IsZero() {
			continue
		}

		for !due.After(today) {
			tx := models.Transaction{
				ID:          uuid.NewString(),
				Date:        due.Format(models.DateFormat),
				Amount:      r.Amount,
				Category:    r.Category,
				Description: r.Description + " (recurring)",
				Type:        r.Type,
				Currency:    r.Currency,
				Recurring:   true,
				Frequency:   r.Frequency,
			}
			doc.Transactions = append(doc.Transactions, tx)
			result.Created = append(result.Created, tx)
			result.Count++

			r.LastProcessed = due.Format(models.DateFormat)
			due = NextDueDate(due, r.Frequency)
			r.NextDue = due.Format(models.DateFormat)
		}
	}
	return result
}

// Upcoming is one active recurring entry due within the lookahead horizon.
// DaysUntilDue is negative when the entry is overdue but unprocessed.
type Upcoming struct {
	models.RecurringTransaction
	DaysUntilDue int `json:"days_until_due"`
}

// UpcomingWithin lists active entries due within horizonDays of today,
// soonest first.
func UpcomingWithin(doc *models.FinanceDocument, horizonDays int) []Upcoming {
	return upcomingAt(doc, horizonDays, time.Now())
}

func upcomingAt(doc *models.FinanceDocument, horizonDays int, now time.Time) []Upcoming {
	today := dateOnly(now)

	var out []Upcoming
	for _, r := range doc.RecurringTransactions {
		if !r.Active {
			continue
		}
		due := r.ParsedNextDue()
		if due.IsZero() {
			continue
		}
		days := int(dateOnly(due).Sub(today).Hours() / 24)
		if days <= horizonDays {
			out = append(out, Upcoming{RecurringTransaction: r, DaysUntilDue: days})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DaysUntilDue < out[j].DaysUntilDue
	})
	return out
}

// Toggle flips the active flag and returns the new state. NextDue is left
// untouched so a resumed entry catches up from where it paused.
func Toggle(doc *models.FinanceDocument, id string) (bool, error) {
	r := doc.FindRecurring(id)
	if r == nil {
		return false, models.ErrNotFound
	}
	r.Active = !r.Active
	return r.Active, nil
}

// Delete removes a recurring transaction. Transactions it already
// materialized stay in the ledger.
func Delete(doc *models.FinanceDocument, id string) error {
	for i, r := range doc.RecurringTransactions {
		if r.ID == id {
			doc.RecurringTransactions = append(doc.RecurringTransactions[:i], doc.RecurringTransactions[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
