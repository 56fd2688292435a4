package ledger

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"fintrack/internal/httputil"
	"fintrack/internal/models"
	"fintrack/internal/services/classifier"
	"fintrack/internal/services/export"
	ledgersvc "fintrack/internal/services/ledger"
	"fintrack/internal/services/store"
)

var gateway *store.Gateway

// Initialize sets up the ledger package with required dependencies
func Initialize(g *store.Gateway) {
	gateway = g
}

// RegisterRoutes registers all transaction and export routes
func RegisterRoutes(r chi.Router) {
	r.Get("/transactions", handleListTransactions)
	r.Post("/transactions", handleAddTransaction)
	r.Delete("/transactions/{id}", handleDeleteTransaction)

	r.Get("/categories", handleListCategories)
	r.Get("/categories/suggest", handleSuggestCategory)

	r.Get("/export/transactions", handleExportTransactions)
	r.Get("/export/monthly", handleExportMonthly)
	r.Get("/export/categories", handleExportCategories)
	r.Get("/export/tax", handleExportTax)
}

func handleListTransactions(w http.ResponseWriter, r *http.Request) {
	doc := gateway.Load()

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	txs := ledgersvc.List(doc, ledgersvc.Filter{
		Category: r.URL.Query().Get("category"),
		Type:     models.TransactionType(r.URL.Query().Get("type")),
		Month:    r.URL.Query().Get("month"),
		Limit:    limit,
	})

	httputil.JSON(w, http.StatusOK, map[string]interface{}{
		"transactions": txs,
		"count":        len(txs),
		"balance":      models.Balance(txs),
	})
}

func handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount      float64  `json:"amount"`
		Category    string   `json:"category"`
		Description string   `json:"description"`
		Date        string   `json:"date"`
		Type        string   `json:"type"`
		Tags        []string `json:"tags"`
		Currency    string   `json:"currency"`
	}
	if err := httputil.Decode(r, &req); err != nil {
		httputil.BadRequest(w, "invalid JSON body")
		return
	}

	doc := gateway.Load()
	tx, err := ledgersvc.Add(doc, ledgersvc.AddInput{
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        req.Date,
		Type:        models.TransactionType(req.Type),
		Tags:        req.Tags,
		Currency:    req.Currency,
	})
	if err != nil {
		httputil.Error(w, err)
		return
	}
	if err := gateway.Save(doc); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusCreated, tx)
}

func handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	doc := gateway.Load()
	if err := ledgersvc.Delete(doc, chi.URLParam(r, "id")); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := gateway.Save(doc); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func handleListCategories(w http.ResponseWriter, r *http.Request) {
	doc := gateway.Load()
	httputil.JSON(w, http.StatusOK, map[string]interface{}{"categories": doc.Categories})
}

func handleSuggestCategory(w http.ResponseWriter, r *http.Request) {
	description := r.URL.Query().Get("description")
	httputil.JSON(w, http.StatusOK, map[string]string{
		"category": classifier.SuggestCategory(description),
	})
}

func handleExportTransactions(w http.ResponseWriter, r *http.Request) {
	doc := gateway.Load()
	csvText, err := export.Transactions(doc)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	writeCSV(w, "transactions.csv", csvText)
}

func handleExportMonthly(w http.ResponseWriter, r *http.Request) {
	doc := gateway.Load()
	csvText, err := export.MonthlySummary(doc, yearParam(r))
	if err != nil {
		httputil.Error(w, err)
		return
	}
	writeCSV(w, "monthly-summary.csv", csvText)
}

func handleExportCategories(w http.ResponseWriter, r *http.Request) {
	doc := gateway.Load()
	csvText, err := export.CategoryBreakdown(doc)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	writeCSV(w, "category-breakdown.csv", csvText)
}

func handleExportTax(w http.ResponseWriter, r *http.Request) {
	doc := gateway.Load()
	csvText, err := export.TaxSummary(doc, yearParam(r))
	if err != nil {
		httputil.Error(w, err)
		return
	}
	writeCSV(w, "tax-summary.csv", csvText)
}

func yearParam(r *http.Request) int {
	if year, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil && year > 0 {
		return year
	}
	return time.Now().Year()
}

func writeCSV(w http.ResponseWriter, filename, body string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.Write([]byte(body))
}
