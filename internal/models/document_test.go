package models

import "testing"

func TestNewDocumentSeed(t *testing.T) {
	doc := NewDocument()

	if doc.DefaultCurrency != "USD" {
		t.Errorf("DefaultCurrency = %q, want USD", doc.DefaultCurrency)
	}
	if len(doc.Categories) != len(DefaultCategories) {
		t.Errorf("seeded %d categories, want %d", len(doc.Categories), len(DefaultCategories))
	}
	if len(doc.Accounts) != 1 || doc.Accounts[0].Name != "Main Account" {
		t.Errorf("expected a single seeded Main Account, got %+v", doc.Accounts)
	}
	if doc.Transactions == nil || doc.Budgets == nil || doc.SavingsGoals == nil || doc.RecurringTransactions == nil {
		t.Error("collections should be initialized to empty slices, not nil")
	}
}

func TestNewDocumentCategoriesAreCopies(t *testing.T) {
	doc := NewDocument()
	doc.Categories[0] = "changed"

	if DefaultCategories[0] == "changed" {
		t.Error("mutating a document's categories must not alias DefaultCategories")
	}
	DefaultCategories[0] = "Food & Dining"
}

func TestAddCategory(t *testing.T) {
	doc := NewDocument()
	before := len(doc.Categories)

	doc.AddCategory("Pets")
	if !doc.HasCategory("Pets") {
		t.Error("AddCategory should make the category visible")
	}
	if len(doc.Categories) != before+1 {
		t.Errorf("categories grew by %d, want 1", len(doc.Categories)-before)
	}

	// duplicates, including by case, are ignored
	doc.AddCategory("pets")
	doc.AddCategory("Pets")
	if len(doc.Categories) != before+1 {
		t.Errorf("duplicate AddCategory changed length to %d, want %d", len(doc.Categories), before+1)
	}

	doc.AddCategory("")
	if len(doc.Categories) != before+1 {
		t.Error("empty category should be ignored")
	}
}

func TestHasCategoryCaseInsensitive(t *testing.T) {
	doc := NewDocument()
	if !doc.HasCategory("groceries") {
		t.Error(`HasCategory("groceries") = false, want true`)
	}
	if doc.HasCategory("Nonexistent") {
		t.Error(`HasCategory("Nonexistent") = true, want false`)
	}
}
