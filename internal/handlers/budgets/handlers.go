package budgets

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"fintrack/internal/httputil"
	"fintrack/internal/services/analytics"
	"fintrack/internal/services/store"
)

var gateway *store.Gateway

// Initialize sets up the budgets package with required dependencies
func Initialize(g *store.Gateway) {
	gateway = g
}

// RegisterRoutes registers all budget routes
func RegisterRoutes(r chi.Router) {
	r.Get("/budgets", handleListBudgets)
	r.Put("/budgets", handleSetBudget)
	r.Delete("/budgets/{category}", handleDeleteBudget)
	r.Get("/budgets/alerts", handleBudgetAlerts)
}

func handleListBudgets(w http.ResponseWriter, r *http.Request) {
	doc := gateway.Load()
	httputil.JSON(w, http.StatusOK, map[string]interface{}{
		"budgets": analytics.BudgetStatuses(doc),
	})
}

func handleSetBudget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category       string  `json:"category"`
		Limit          float64 `json:"limit"`
		AlertThreshold float64 `json:"alert_threshold"`
	}
	if err := httputil.Decode(r, &req); err != nil {
		httputil.BadRequest(w, "invalid JSON body")
		return
	}

	doc := gateway.Load()
	budget, err := analytics.SetBudget(doc, req.Category, req.Limit, req.AlertThreshold)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	if err := gateway.Save(doc); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, budget)
}

func handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	doc := gateway.Load()
	if err := analytics.DeleteBudget(doc, chi.URLParam(r, "category")); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := gateway.Save(doc); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func handleBudgetAlerts(w http.ResponseWriter, r *http.Request) {
	doc := gateway.Load()
	httputil.JSON(w, http.StatusOK, map[string]interface{}{
		"alerts": analytics.CheckBudgetAlerts(doc),
	})
}
