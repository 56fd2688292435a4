package ledger

import (
	"testing"
	"time"

	"fintrack/internal/models"
)

var fixedNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func TestAddDefaults(t *testing.T) {
	doc := models.NewDocument()

	tx, err := addAt(doc, AddInput{
		Amount:      4.75,
		Description: "Starbucks coffee run",
		Type:        models.Expense,
	}, fixedNow)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if tx.Date != "2026-06-15" {
		t.Errorf("date = %q, want today", tx.Date)
	}
	if tx.Category != "Food & Dining" {
		t.Errorf("category = %q, want suggestion Food & Dining", tx.Category)
	}
	if tx.Currency != "USD" {
		t.Errorf("currency = %q, want document default USD", tx.Currency)
	}
	if tx.ID == "" {
		t.Error("missing generated id")
	}
}

func TestAddExplicitCategoryWins(t *testing.T) {
	doc := models.NewDocument()

	tx, err := addAt(doc, AddInput{
		Amount: 20, Category: "Gifts", Description: "Starbucks gift card",
		Type: models.Expense, Date: "2026-06-10",
	}, fixedNow)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if tx.Category != "Gifts" {
		t.Errorf("category = %q, want explicit Gifts", tx.Category)
	}
	if !doc.HasCategory("Gifts") {
		t.Error("custom category not added to the document set")
	}
}

func TestAddValidation(t *testing.T) {
	doc := models.NewDocument()

	tests := []struct {
		name string
		in   AddInput
	}{
		{"zero amount", AddInput{Type: models.Expense}},
		{"negative amount", AddInput{Amount: -5, Type: models.Expense}},
		{"bad type", AddInput{Amount: 5, Type: "transfer"}},
		{"bad date", AddInput{Amount: 5, Type: models.Expense, Date: "June 15"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := addAt(doc, tt.in, fixedNow); err != models.ErrInvalidInput {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	doc := models.NewDocument()
	tx, _ := addAt(doc, AddInput{Amount: 5, Type: models.Expense, Description: "coffee"}, fixedNow)

	if err := Delete(doc, tx.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(doc.Transactions) != 0 {
		t.Error("transaction not removed")
	}
	if err := Delete(doc, tx.ID); err != models.ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListFilters(t *testing.T) {
	doc := models.NewDocument()
	addAt(doc, AddInput{Amount: 10, Category: "Groceries", Type: models.Expense, Date: "2026-06-01"}, fixedNow)
	addAt(doc, AddInput{Amount: 20, Category: "groceries", Type: models.Expense, Date: "2026-05-20"}, fixedNow)
	addAt(doc, AddInput{Amount: 3000, Category: "Salary", Type: models.Income, Date: "2026-06-05"}, fixedNow)

	if got := List(doc, Filter{Category: "GROCERIES"}); len(got) != 2 {
		t.Errorf("category filter matched %d, want 2 (case-insensitive)", len(got))
	}
	if got := List(doc, Filter{Type: models.Income}); len(got) != 1 {
		t.Errorf("type filter matched %d, want 1", len(got))
	}
	if got := List(doc, Filter{Month: "2026-06"}); len(got) != 2 {
		t.Errorf("month filter matched %d, want 2", len(got))
	}

	all := List(doc, Filter{})
	if all[0].Date != "2026-06-05" || all[2].Date != "2026-05-20" {
		t.Errorf("not sorted newest first: %v, %v", all[0].Date, all[2].Date)
	}
	if got := List(doc, Filter{Limit: 1}); len(got) != 1 || got[0].Date != "2026-06-05" {
		t.Errorf("limit filter = %v", got)
	}
}
