package models

import (
	"testing"
	"time"
)

func TestSignedAmount(t *testing.T) {
	tests := []struct {
		name string
		tx   Transaction
		want float64
	}{
		{"income is positive", Transaction{Amount: 100, Type: Income}, 100},
		{"expense is negative", Transaction{Amount: 42.50, Type: Expense}, -42.50},
		{"zero stays zero", Transaction{Amount: 0, Type: Expense}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tx.SignedAmount(); got != tt.want {
				t.Errorf("SignedAmount() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParsedDate(t *testing.T) {
	tx := Transaction{Date: "2026-03-15"}
	d := tx.ParsedDate()
	if d.Year() != 2026 || d.Month() != time.March || d.Day() != 15 {
		t.Errorf("ParsedDate() = %v, want 2026-03-15", d)
	}

	bad := Transaction{Date: "not-a-date"}
	if !bad.ParsedDate().IsZero() {
		t.Errorf("ParsedDate() on garbage should be zero, got %v", bad.ParsedDate())
	}
}

func TestBalance(t *testing.T) {
	txs := []Transaction{
		{Amount: 1000, Type: Income},
		{Amount: 300, Type: Expense},
		{Amount: 50.25, Type: Expense},
	}
	if got := Balance(txs); got != 649.75 {
		t.Errorf("Balance() = %v, want 649.75", got)
	}

	if got := Balance(nil); got != 0 {
		t.Errorf("Balance(nil) = %v, want 0", got)
	}
}

func TestFilterMonth(t *testing.T) {
	txs := []Transaction{
		{ID: "a", Date: "2026-05-01"},
		{ID: "b", Date: "2026-06-15"},
		{ID: "c", Date: "2026-06-30"},
		{ID: "d", Date: "2025-06-10"},
		{ID: "e", Date: "garbage"},
	}

	got := FilterMonth(txs, 2026, time.June)
	if len(got) != 2 {
		t.Fatalf("FilterMonth() returned %d transactions, want 2", len(got))
	}
	if got[0].ID != "b" || got[1].ID != "c" {
		t.Errorf("FilterMonth() order = %s,%s, want b,c", got[0].ID, got[1].ID)
	}
}

func TestFilterCategory(t *testing.T) {
	txs := []Transaction{
		{ID: "a", Category: "Groceries"},
		{ID: "b", Category: "groceries"},
		{ID: "c", Category: "Food & Dining"},
	}

	got := FilterCategory(txs, "GROCERIES")
	if len(got) != 2 {
		t.Errorf("FilterCategory() matched %d transactions, want 2 (case-insensitive)", len(got))
	}
}

func TestExpensesByCategory(t *testing.T) {
	txs := []Transaction{
		{Amount: 50, Category: "Groceries", Type: Expense},
		{Amount: 30, Category: "Groceries", Type: Expense},
		{Amount: 20, Category: "Entertainment", Type: Expense},
		{Amount: 1000, Category: "Salary", Type: Income},
	}

	byCat := ExpensesByCategory(txs)
	if byCat["Groceries"] != 80 {
		t.Errorf("Groceries total = %v, want 80", byCat["Groceries"])
	}
	if byCat["Entertainment"] != 20 {
		t.Errorf("Entertainment total = %v, want 20", byCat["Entertainment"])
	}
	if _, ok := byCat["Salary"]; ok {
		t.Error("income categories should not appear in expense totals")
	}
}

func TestValidFrequency(t *testing.T) {
	for _, f := range []Frequency{Daily, Weekly, Monthly, Yearly} {
		if !ValidFrequency(f) {
			t.Errorf("ValidFrequency(%q) = false, want true", f)
		}
	}
	if ValidFrequency("fortnightly") {
		t.Error(`ValidFrequency("fortnightly") = true, want false`)
	}
}
