// Package analytics aggregates monthly spending, evaluates budget
// thresholds, and generates insights from the transaction ledger.
package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"fintrack/internal/models"
)

// CategoryAmount pairs a category with its expense total for ranking.
type CategoryAmount struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// SpendingAnalysis summarizes the current calendar month.
type SpendingAnalysis struct {
	Month         string             `json:"month"`
	TotalIncome   float64            `json:"total_income"`
	TotalExpenses float64            `json:"total_expenses"`
	NetSavings    float64            `json:"net_savings"`
	TopCategories []CategoryAmount   `json:"top_categories"`
	ByCategory    map[string]float64 `json:"by_category"`
}

// AnalyzeSpending restricts to the current month, totals income and expenses
// separately, and ranks expense categories. Ties keep the order categories
// first appeared in the ledger.
func AnalyzeSpending(doc *models.FinanceDocument) SpendingAnalysis {
	return analyzeMonth(doc, time.Now())
}

func analyzeMonth(doc *models.FinanceDocument, now time.Time) SpendingAnalysis {
	monthly := models.FilterMonth(doc.Transactions, now.Year(), now.Month())

	analysis := SpendingAnalysis{
		Month:      now.Format("2006-01"),
		ByCategory: make(map[string]float64),
	}

	var order []string
	for _, t := range monthly {
		switch t.Type {
		case models.Income:
			analysis.TotalIncome += t.Amount
		case models.Expense:
			analysis.TotalExpenses += t.Amount
			if _, seen := analysis.ByCategory[t.Category]; !seen {
				order = append(order, t.Category)
			}
			analysis.ByCategory[t.Category] += t.Amount
		}
	}
	analysis.NetSavings = analysis.TotalIncome - analysis.TotalExpenses

	ranked := make([]CategoryAmount, 0, len(order))
	for _, cat := range order {
		ranked = append(ranked, CategoryAmount{Category: cat, Amount: analysis.ByCategory[cat]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount > ranked[j].Amount
	})
	if len(ranked) > 5 {
		ranked = ranked[:5]
	}
	analysis.TopCategories = ranked

	return analysis
}

// SetBudget creates or replaces the budget for a category. Re-setting an
// existing category is last-write-wins. A threshold of 0 takes the default.
func SetBudget(doc *models.FinanceDocument, category string, limit, alertThreshold float64) (*models.Budget, error) {
	if strings.TrimSpace(category) == "" || limit <= 0 {
		return nil, models.ErrInvalidInput
	}
	if alertThreshold <= 0 {
		alertThreshold = models.DefaultAlertThreshold
	}

	if b := doc.FindBudget(category); b != nil {
		b.Limit = limit
		b.AlertThreshold = alertThreshold
		return b, nil
	}

	doc.Budgets = append(doc.Budgets, models.Budget{
		Category:       category,
		Limit:          limit,
		AlertThreshold: alertThreshold,
	})
	doc.AddCategory(category)
	return &doc.Budgets[len(doc.Budgets)-1], nil
}

// DeleteBudget removes the budget for a category.
func DeleteBudget(doc *models.FinanceDocument, category string) error {
	for i, b := range doc.Budgets {
		if strings.EqualFold(strings.TrimSpace(b.Category), strings.TrimSpace(category)) {
			doc.Budgets = append(doc.Budgets[:i], doc.Budgets[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

// BudgetStatus is one budget with its derived current-month figures. Spent,
// remaining and percent used are never stored, always computed at read time.
type BudgetStatus struct {
	Category       string  `json:"category"`
	Limit          float64 `json:"limit"`
	Spent          float64 `json:"spent"`
	Remaining      float64 `json:"remaining"`
	PercentUsed    float64 `json:"percent_used"`
	AlertThreshold float64 `json:"alert_threshold"`
}

// BudgetStatuses derives current-month status for every budget.
func BudgetStatuses(doc *models.FinanceDocument) []BudgetStatus {
	return budgetStatusesAt(doc, time.Now())
}

func budgetStatusesAt(doc *models.FinanceDocument, now time.Time) []BudgetStatus {
	monthly := models.FilterMonth(doc.Transactions, now.Year(), now.Month())
	byCategory := models.ExpensesByCategory(monthly)

	statuses := make([]BudgetStatus, 0, len(doc.Budgets))
	for _, b := range doc.Budgets {
		spent := spendFor(byCategory, b.Category)
		status := BudgetStatus{
			Category:       b.Category,
			Limit:          b.Limit,
			Spent:          spent,
			Remaining:      b.Limit - spent,
			AlertThreshold: b.AlertThreshold,
		}
		if b.Limit > 0 {
			status.PercentUsed = spent / b.Limit * 100
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// spendFor sums category spend with a case-insensitive category match.
func spendFor(byCategory map[string]float64, category string) float64 {
	var total float64
	for cat, amount := range byCategory {
		if strings.EqualFold(strings.TrimSpace(cat), strings.TrimSpace(category)) {
			total += amount
		}
	}
	return total
}

// CheckBudgetAlerts evaluates every budget against current-month spend.
// Each budget is judged independently, so several alerts can fire at once.
func CheckBudgetAlerts(doc *models.FinanceDocument) []models.Insight {
	return budgetAlertsAt(doc, time.Now())
}

func budgetAlertsAt(doc *models.FinanceDocument, now time.Time) []models.Insight {
	var alerts []models.Insight
	for _, status := range budgetStatusesAt(doc, now) {
		if status.Limit <= 0 {
			continue
		}
		switch {
		case status.PercentUsed >= 100:
			alerts = append(alerts, models.Insight{
				Type:     models.InsightWarning,
				Category: status.Category,
				Message:  fmt.Sprintf("You're over your %s budget: spent {0} against a limit of {1}", status.Category),
				Amounts:  []float64{status.Spent, status.Limit},
				Amount:   status.Spent - status.Limit,
			})
		case status.PercentUsed >= status.AlertThreshold:
			alerts = append(alerts, models.Insight{
				Type:     models.InsightWarning,
				Category: status.Category,
				Message:  fmt.Sprintf("You've used %.0f%% of your %s budget: {0} spent of {1}", status.PercentUsed, status.Category),
				Amounts:  []float64{status.Spent, status.Limit},
				Amount:   status.Remaining,
			})
		}
	}
	return alerts
}

// GenerateInsights produces the full insight list in a fixed order: budget
// alerts, then savings rate, then biggest category, then the weekday vs
// weekend comparison. Messages carry {n} placeholders resolved against the
// Amounts slice by the presentation layer.
func GenerateInsights(doc *models.FinanceDocument) []models.Insight {
	return insightsAt(doc, time.Now())
}

func insightsAt(doc *models.FinanceDocument, now time.Time) []models.Insight {
	insights := budgetAlertsAt(doc, now)
	analysis := analyzeMonth(doc, now)

	if analysis.TotalIncome > 0 {
		rate := analysis.NetSavings / analysis.TotalIncome * 100
		switch {
		case analysis.NetSavings < 0:
			insights = append(insights, models.Insight{
				Type:    models.InsightWarning,
				Message: "You spent {0} more than you earned this month",
				Amounts: []float64{-analysis.NetSavings},
				Amount:  -analysis.NetSavings,
			})
		case rate < 10:
			insights = append(insights, models.Insight{
				Type:    models.InsightTip,
				Message: fmt.Sprintf("Your savings rate is %.1f%% this month. Try to aim for 20%%", rate),
				Amounts: []float64{analysis.NetSavings},
				Amount:  analysis.NetSavings,
			})
		case rate >= 20:
			insights = append(insights, models.Insight{
				Type:    models.InsightInfo,
				Message: fmt.Sprintf("Great job! You saved %.1f%% of your income this month", rate),
				Amounts: []float64{analysis.NetSavings},
				Amount:  analysis.NetSavings,
			})
		}
		// 10-20% band stays silent
	}

	if len(analysis.TopCategories) > 0 && analysis.TotalExpenses > 0 {
		top := analysis.TopCategories[0]
		share := top.Amount / analysis.TotalExpenses * 100
		insights = append(insights, models.Insight{
			Type:     models.InsightInfo,
			Category: top.Category,
			Message:  fmt.Sprintf("Your biggest spending category is %s at {0} (%.0f%% of expenses)", top.Category, share),
			Amounts:  []float64{top.Amount},
			Amount:   top.Amount,
		})
	}

	if insight, ok := weekendImbalance(doc, now); ok {
		insights = append(insights, insight)
	}

	return insights
}

// weekendImbalance compares average expense per transaction on weekends
// against weekdays for the current month. Fires only past a 20% relative
// difference; the max(...) floor of 1 guards the all-zero month.
func weekendImbalance(doc *models.FinanceDocument, now time.Time) (models.Insight, bool) {
	monthly := models.FilterMonth(doc.Transactions, now.Year(), now.Month())

	var weekdaySum, weekendSum float64
	var weekdayCount, weekendCount int
	for _, t := range monthly {
		if t.Type != models.Expense {
			continue
		}
		date := t.ParsedDate()
		if date.IsZero() {
			continue
		}
		if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
			weekendSum += t.Amount
			weekendCount++
		} else {
			weekdaySum += t.Amount
			weekdayCount++
		}
	}
	if weekdayCount == 0 || weekendCount == 0 {
		return models.Insight{}, false
	}

	weekdayAvg := weekdaySum / float64(weekdayCount)
	weekendAvg := weekendSum / float64(weekendCount)

	denom := weekdayAvg
	if weekendAvg > denom {
		denom = weekendAvg
	}
	if denom < 1 {
		denom = 1
	}
	diff := weekendAvg - weekdayAvg
	if diff < 0 {
		diff = -diff
	}
	if diff/denom*100 <= 20 {
		return models.Insight{}, false
	}

	message := "Your weekend spending averages {0} per transaction, compared to {1} on weekdays"
	if weekdayAvg > weekendAvg {
		message = "Your weekday spending averages {1} per transaction, compared to {0} on weekends"
	}
	return models.Insight{
		Type:    models.InsightTip,
		Message: message,
		Amounts: []float64{weekendAvg, weekdayAvg},
		Amount:  diff,
	}, true
}
