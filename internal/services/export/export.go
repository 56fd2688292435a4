// Package export renders ledger views as CSV text.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"time"

	"fintrack/internal/models"
)

// Transactions renders the full ledger sorted by date ascending. The amount
// column is signed: expenses come out negative.
func Transactions(doc *models.FinanceDocument) (string, error) {
	txs := make([]models.Transaction, len(doc.Transactions))
	copy(txs, doc.Transactions)
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date < txs[j].Date
	})

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"Date", "Type", "Category", "Description", "Amount", "Currency"})
	for _, t := range txs {
		currency := t.Currency
		if currency == "" {
			currency = doc.DefaultCurrency
		}
		w.Write([]string{
			t.Date,
			string(t.Type),
			t.Category,
			t.Description,
			fmt.Sprintf("%.2f", t.SignedAmount()),
			currency,
		})
	}
	w.Flush()
	return buf.String(), w.Error()
}

// MonthlySummary renders income, expenses and net for every month of the
// given year. All 12 months appear even with no activity, followed by a
// TOTAL row.
func MonthlySummary(doc *models.FinanceDocument, year int) (string, error) {
	type totals struct{ income, expenses float64 }
	months := make([]totals, 12)

	for _, t := range doc.Transactions {
		d := t.ParsedDate()
		if d.Year() != year {
			continue
		}
		m := int(d.Month()) - 1
		switch t.Type {
		case models.Income:
			months[m].income += t.Amount
		case models.Expense:
			months[m].expenses += t.Amount
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"Month", "Income", "Expenses", "Net"})

	var yearIncome, yearExpenses float64
	for i, m := range months {
		name := time.Month(i + 1).String()
		w.Write([]string{
			name,
			fmt.Sprintf("%.2f", m.income),
			fmt.Sprintf("%.2f", m.expenses),
			fmt.Sprintf("%.2f", m.income-m.expenses),
		})
		yearIncome += m.income
		yearExpenses += m.expenses
	}
	w.Write([]string{
		"TOTAL",
		fmt.Sprintf("%.2f", yearIncome),
		fmt.Sprintf("%.2f", yearExpenses),
		fmt.Sprintf("%.2f", yearIncome-yearExpenses),
	})
	w.Flush()
	return buf.String(), w.Error()
}

// CategoryBreakdown renders per-category income and expense totals, sorted
// descending by combined magnitude.
func CategoryBreakdown(doc *models.FinanceDocument) (string, error) {
	type totals struct{ income, expenses float64 }
	byCategory := make(map[string]*totals)
	var order []string

	for _, t := range doc.Transactions {
		c, ok := byCategory[t.Category]
		if !ok {
			c = &totals{}
			byCategory[t.Category] = c
			order = append(order, t.Category)
		}
		switch t.Type {
		case models.Income:
			c.income += t.Amount
		case models.Expense:
			c.expenses += t.Amount
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := byCategory[order[i]], byCategory[order[j]]
		return a.income+a.expenses > b.income+b.expenses
	})

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"Category", "Income", "Expenses", "Net"})
	for _, cat := range order {
		c := byCategory[cat]
		w.Write([]string{
			cat,
			fmt.Sprintf("%.2f", c.income),
			fmt.Sprintf("%.2f", c.expenses),
			fmt.Sprintf("%.2f", c.income-c.expenses),
		})
	}
	w.Flush()
	return buf.String(), w.Error()
}

// TaxSummary renders the year's income and expense categories as separate
// labeled sections, each sorted descending by amount with a subtotal, and a
// closing net line.
func TaxSummary(doc *models.FinanceDocument, year int) (string, error) {
	income := make(map[string]float64)
	expenses := make(map[string]float64)
	var incomeOrder, expenseOrder []string

	for _, t := range doc.Transactions {
		if t.ParsedDate().Year() != year {
			continue
		}
		switch t.Type {
		case models.Income:
			if _, seen := income[t.Category]; !seen {
				incomeOrder = append(incomeOrder, t.Category)
			}
			income[t.Category] += t.Amount
		case models.Expense:
			if _, seen := expenses[t.Category]; !seen {
				expenseOrder = append(expenseOrder, t.Category)
			}
			expenses[t.Category] += t.Amount
		}
	}
	sort.SliceStable(incomeOrder, func(i, j int) bool {
		return income[incomeOrder[i]] > income[incomeOrder[j]]
	})
	sort.SliceStable(expenseOrder, func(i, j int) bool {
		return expenses[expenseOrder[i]] > expenses[expenseOrder[j]]
	})

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{fmt.Sprintf("Tax Summary %d", year), ""})

	w.Write([]string{"INCOME", ""})
	var totalIncome float64
	for _, cat := range incomeOrder {
		w.Write([]string{cat, fmt.Sprintf("%.2f", income[cat])})
		totalIncome += income[cat]
	}
	w.Write([]string{"Income Subtotal", fmt.Sprintf("%.2f", totalIncome)})

	w.Write([]string{"EXPENSES", ""})
	var totalExpenses float64
	for _, cat := range expenseOrder {
		w.Write([]string{cat, fmt.Sprintf("%.2f", expenses[cat])})
		totalExpenses += expenses[cat]
	}
	w.Write([]string{"Expense Subtotal", fmt.Sprintf("%.2f", totalExpenses)})

	w.Write([]string{"Net", fmt.Sprintf("%.2f", totalIncome-totalExpenses)})
	w.Flush()
	return buf.String(), w.Error()
}
