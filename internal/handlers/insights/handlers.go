package insights

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"fintrack/internal/httputil"
	"fintrack/internal/services/analytics"
	"fintrack/internal/services/currency"
	"fintrack/internal/services/store"
)

var (
	gateway *store.Gateway
	rates   *currency.Engine
)

// Initialize sets up the insights package with required dependencies
func Initialize(g *store.Gateway, e *currency.Engine) {
	gateway = g
	rates = e
}

// RegisterRoutes registers all analytics routes
func RegisterRoutes(r chi.Router) {
	r.Get("/insights", handleInsights)
	r.Get("/spending/summary", handleSpendingSummary)
	r.Get("/balance", handleBalance)
}

func handleInsights(w http.ResponseWriter, r *http.Request) {
	doc := gateway.Load()
	httputil.JSON(w, http.StatusOK, map[string]interface{}{
		"insights": analytics.GenerateInsights(doc),
	})
}

func handleSpendingSummary(w http.ResponseWriter, r *http.Request) {
	doc := gateway.Load()
	httputil.JSON(w, http.StatusOK, analytics.AnalyzeSpending(doc))
}

func handleBalance(w http.ResponseWriter, r *http.Request) {
	doc := gateway.Load()

	target := r.URL.Query().Get("currency")
	if target == "" {
		target = doc.DefaultCurrency
	}

	table, refreshed := rates.RatesIfStale(doc)
	if refreshed {
		if err := gateway.Save(doc); err != nil {
			httputil.Error(w, err)
			return
		}
	}

	total, breakdown := currency.BalanceBreakdown(doc, target, table)
	httputil.JSON(w, http.StatusOK, map[string]interface{}{
		"currency":  target,
		"total":     total,
		"formatted": currency.Format(total, target),
		"breakdown": breakdown,
	})
}
