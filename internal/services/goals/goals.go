// Package goals manages savings goal lifecycle, the contribution ledger, and
// on-track projections.
package goals

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/models"
)

// CreateInput carries the fields for a new savings goal.
type CreateInput struct {
	Name         string
	TargetAmount float64
	Deadline     string
	Currency     string
}

// Create appends a new goal with a zero balance and an empty ledger.
func Create(doc *models.FinanceDocument, in CreateInput) (*models.SavingsGoal, error) {
	return createAt(doc, in, time.Now())
}

func createAt(doc *models.FinanceDocument, in CreateInput, now time.Time) (*models.SavingsGoal, error) {
	if strings.TrimSpace(in.Name) == "" || in.TargetAmount <= 0 {
		return nil, models.ErrInvalidInput
	}
	if in.Deadline != "" {
		if _, err := time.Parse(models.DateFormat, in.Deadline); err != nil {
			return nil, models.ErrInvalidInput
		}
	}

	currency := in.Currency
	if currency == "" {
		currency = doc.DefaultCurrency
	}

	doc.SavingsGoals = append(doc.SavingsGoals, models.SavingsGoal{
		ID:            uuid.NewString(),
		Name:          in.Name,
		TargetAmount:  in.TargetAmount,
		Deadline:      in.Deadline,
		CreatedAt:     now,
		Currency:      currency,
		Contributions: []models.GoalContribution{},
	})
	return &doc.SavingsGoals[len(doc.SavingsGoals)-1], nil
}

// Contribute appends a positive ledger entry dated today and raises the
// running total by the same amount in the same mutation.
func Contribute(doc *models.FinanceDocument, goalID string, amount float64, note string) (*models.SavingsGoal, error) {
	return contributeAt(doc, goalID, amount, note, time.Now())
}

func contributeAt(doc *models.FinanceDocument, goalID string, amount float64, note string, now time.Time) (*models.SavingsGoal, error) {
	if amount <= 0 {
		return nil, models.ErrInvalidInput
	}
	g := doc.FindGoal(goalID)
	if g == nil {
		return nil, models.ErrNotFound
	}

	g.Contributions = append(g.Contributions, models.GoalContribution{
		ID:     uuid.NewString(),
		Amount: amount,
		Date:   now.Format(models.DateFormat),
		Note:   note,
	})
	g.CurrentAmount += amount
	return g, nil
}

// Withdraw appends a negative ledger entry and lowers the running total.
// Fails without touching the goal when the balance cannot cover the amount.
func Withdraw(doc *models.FinanceDocument, goalID string, amount float64, note string) (*models.SavingsGoal, error) {
	return withdrawAt(doc, goalID, amount, note, time.Now())
}

func withdrawAt(doc *models.FinanceDocument, goalID string, amount float64, note string, now time.Time) (*models.SavingsGoal, error) {
	if amount <= 0 {
		return nil, models.ErrInvalidInput
	}
	g := doc.FindGoal(goalID)
	if g == nil {
		return nil, models.ErrNotFound
	}
	if amount > g.CurrentAmount {
		return nil, models.ErrInsufficientFunds
	}

	if note == "" {
		note = "Withdrawal"
	}
	g.Contributions = append(g.Contributions, models.GoalContribution{
		ID:     uuid.NewString(),
		Amount: -amount,
		Date:   now.Format(models.DateFormat),
		Note:   note,
	})
	g.CurrentAmount -= amount
	return g, nil
}

// Delete removes a goal and its ledger.
func Delete(doc *models.FinanceDocument, goalID string) error {
	for i, g := range doc.SavingsGoals {
		if g.ID == goalID {
			doc.SavingsGoals = append(doc.SavingsGoals[:i], doc.SavingsGoals[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

// Progress is a goal with its derived projection figures. PercentComplete is
// not clamped at 100; presentation layers may clamp for display.
type Progress struct {
	models.SavingsGoal
	PercentComplete     float64 `json:"percent_complete"`
	Remaining           float64 `json:"remaining"`
	MonthsRemaining     int     `json:"months_remaining,omitempty"`
	MonthlyNeeded       float64 `json:"monthly_needed,omitempty"`
	AvgMonthlyContrib   float64 `json:"avg_monthly_contribution"`
	ProjectedCompletion string  `json:"projected_completion,omitempty"`
	OnTrack             bool    `json:"on_track"`
}

// WithProgress derives projection figures for every goal. Goals without a
// deadline are always on track and carry no projection.
func WithProgress(doc *models.FinanceDocument) []Progress {
	return progressAt(doc, time.Now())
}

func progressAt(doc *models.FinanceDocument, now time.Time) []Progress {
	out := make([]Progress, 0, len(doc.SavingsGoals))
	for _, g := range doc.SavingsGoals {
		p := Progress{
			SavingsGoal: g,
			Remaining:   g.TargetAmount - g.CurrentAmount,
		}
		if g.TargetAmount > 0 {
			p.PercentComplete = g.CurrentAmount / g.TargetAmount * 100
		}

		monthsSince := monthsBetween(g.CreatedAt, now)
		p.AvgMonthlyContrib = g.CurrentAmount / float64(monthsSince)

		deadline := g.ParsedDeadline()
		if deadline.IsZero() {
			p.OnTrack = true
			out = append(out, p)
			continue
		}

		p.MonthsRemaining = monthsBetween(now, deadline)
		p.MonthlyNeeded = p.Remaining / float64(p.MonthsRemaining)

		if p.AvgMonthlyContrib > 0 && p.Remaining > 0 {
			monthsToComplete := int(math.Ceil(p.Remaining / p.AvgMonthlyContrib))
			projected := now.AddDate(0, monthsToComplete, 0)
			p.ProjectedCompletion = projected.Format(models.DateFormat)
			p.OnTrack = !projected.After(deadline)
		} else if p.Remaining <= 0 {
			p.OnTrack = true
		}

		out = append(out, p)
	}
	return out
}

// monthsBetween is the coarse year*12+month difference with a floor of 1.
func monthsBetween(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if months < 1 {
		return 1
	}
	return months
}

// Summary aggregates across all goals.
type Summary struct {
	TotalGoals      int     `json:"total_goals"`
	TotalTarget     float64 `json:"total_target"`
	TotalSaved      float64 `json:"total_saved"`
	OverallProgress float64 `json:"overall_progress"`
	CompletedGoals  int     `json:"completed_goals"`
}

// Summarize totals targets and balances across every goal.
func Summarize(doc *models.FinanceDocument) Summary {
	var s Summary
	for _, g := range doc.SavingsGoals {
		s.TotalGoals++
		s.TotalTarget += g.TargetAmount
		s.TotalSaved += g.CurrentAmount
		if g.CurrentAmount >= g.TargetAmount {
			s.CompletedGoals++
		}
	}
	if s.TotalTarget > 0 {
		s.OverallProgress = s.TotalSaved / s.TotalTarget * 100
	}
	return s
}
