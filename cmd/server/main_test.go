package main

import (
	"net/http"
	"testing"

	"fintrack/internal/services/currency"
	"fintrack/internal/services/storage"
	"fintrack/internal/services/store"
	"fintrack/internal/testutil"
)

func newServer(t *testing.T) *testutil.TestServer {
	t.Helper()

	files, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("storage.New: %v", err)
	}
	gateway := store.New(files)
	rates := currency.New(nil) // default rate table only

	return testutil.NewTestServer(t, setupRouter(gateway, files, rates))
}

func TestHealthEndpoint(t *testing.T) {
	ts := newServer(t)

	testutil.AssertResponse(t, ts.GET("/api/health")).
		StatusOK().
		ContentTypeJSON().
		Contains(`"status":"ok"`)
}

func TestTransactionLifecycle(t *testing.T) {
	ts := newServer(t)

	resp := ts.PostJSON("/api/transactions", map[string]interface{}{
		"amount":      12.50,
		"description": "Starbucks coffee run",
		"type":        "expense",
	})
	var created struct {
		ID       string `json:"id"`
		Category string `json:"category"`
	}
	testutil.AssertResponse(t, resp).
		Status(http.StatusCreated).
		ContentTypeJSON().
		DecodeJSON(&created)

	if created.Category != "Food & Dining" {
		t.Errorf("category = %q, want auto-suggested Food & Dining", created.Category)
	}

	testutil.AssertResponse(t, ts.GET("/api/transactions")).
		StatusOK().
		ContainsAll(created.ID, `"count":1`)

	testutil.AssertResponse(t, ts.DELETE("/api/transactions/"+created.ID)).
		StatusOK()

	testutil.AssertResponse(t, ts.DELETE("/api/transactions/"+created.ID)).
		Status(http.StatusNotFound)
}

func TestBudgetAlertsOverHTTP(t *testing.T) {
	ts := newServer(t)

	testutil.AssertResponse(t, ts.PutJSON("/api/budgets", map[string]interface{}{
		"category": "Groceries",
		"limit":    100,
	})).StatusOK().Contains(`"alert_threshold":80`)

	ts.PostJSON("/api/transactions", map[string]interface{}{
		"amount": 150, "category": "Groceries", "description": "big shop", "type": "expense",
	})

	testutil.AssertResponse(t, ts.GET("/api/budgets/alerts")).
		StatusOK().
		ContainsAll(`"warning"`, "Groceries")
}

func TestBudgetValidationMapsTo422(t *testing.T) {
	ts := newServer(t)

	testutil.AssertResponse(t, ts.PutJSON("/api/budgets", map[string]interface{}{
		"category": "", "limit": 100,
	})).Status(http.StatusUnprocessableEntity)
}

func TestGoalWithdrawalRejection(t *testing.T) {
	ts := newServer(t)

	var goal struct {
		ID string `json:"id"`
	}
	testutil.AssertResponse(t, ts.PostJSON("/api/goals", map[string]interface{}{
		"name": "Vacation", "target_amount": 1000,
	})).Status(http.StatusCreated).DecodeJSON(&goal)

	testutil.AssertResponse(t, ts.PostJSON("/api/goals/"+goal.ID+"/contribute", map[string]interface{}{
		"amount": 200,
	})).StatusOK().Contains(`"current_amount":200`)

	testutil.AssertResponse(t, ts.PostJSON("/api/goals/"+goal.ID+"/withdraw", map[string]interface{}{
		"amount": 500,
	})).Status(http.StatusUnprocessableEntity)

	// balance unchanged after the failed withdrawal
	testutil.AssertResponse(t, ts.GET("/api/goals")).
		StatusOK().
		Contains(`"current_amount":200`)
}

func TestRecurringProcessOverHTTP(t *testing.T) {
	ts := newServer(t)

	testutil.AssertResponse(t, ts.PostJSON("/api/recurring", map[string]interface{}{
		"amount":      15,
		"type":        "expense",
		"category":    "Entertainment",
		"description": "Streaming",
		"frequency":   "monthly",
		"start_date":  "2026-01-15",
	})).Status(http.StatusCreated)

	var result struct {
		Count int `json:"count"`
	}
	testutil.AssertResponse(t, ts.PostJSON("/api/recurring/process", nil)).
		StatusOK().
		DecodeJSON(&result)
	if result.Count < 1 {
		t.Errorf("process count = %d, want at least one materialized transaction", result.Count)
	}

	// second pass has nothing left to do
	testutil.AssertResponse(t, ts.PostJSON("/api/recurring/process", nil)).
		StatusOK().
		Contains(`"count":0`)
}

func TestCSVExportOverHTTP(t *testing.T) {
	ts := newServer(t)

	ts.PostJSON("/api/transactions", map[string]interface{}{
		"amount": 10, "category": "Groceries", "description": "milk", "type": "expense",
	})

	testutil.AssertResponse(t, ts.GET("/api/export/transactions")).
		StatusOK().
		ContentTypeCSV().
		ContainsAll("Date,Type,Category,Description,Amount,Currency", "-10.00")
}

func TestCurrencySettings(t *testing.T) {
	ts := newServer(t)

	testutil.AssertResponse(t, ts.GET("/api/settings/currency")).
		StatusOK().
		Contains(`"currency":"USD"`)

	testutil.AssertResponse(t, ts.PutJSON("/api/settings/currency", map[string]string{
		"currency": "XYZ",
	})).Status(http.StatusUnprocessableEntity)

	testutil.AssertResponse(t, ts.PutJSON("/api/settings/currency", map[string]string{
		"currency": "EUR",
	})).StatusOK().Contains(`"currency":"EUR"`)
}

func TestConvertEndpoint(t *testing.T) {
	ts := newServer(t)

	testutil.AssertResponse(t, ts.GET("/api/settings/convert?amount=100&from=USD&to=EUR")).
		StatusOK().
		ContainsAll(`"amount":92`, "€92.00")

	testutil.AssertResponse(t, ts.GET("/api/settings/convert?amount=abc&from=USD&to=EUR")).
		Status(http.StatusBadRequest)
}

func TestBalanceEndpoint(t *testing.T) {
	ts := newServer(t)

	ts.PostJSON("/api/transactions", map[string]interface{}{
		"amount": 100, "category": "Salary", "description": "pay", "type": "income",
	})

	testutil.AssertResponse(t, ts.GET("/api/balance")).
		StatusOK().
		ContainsAll(`"currency":"USD"`, `"total":100`)
}
