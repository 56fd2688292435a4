package goals

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"fintrack/internal/httputil"
	"fintrack/internal/models"
	goalsvc "fintrack/internal/services/goals"
	"fintrack/internal/services/store"
)

var gateway *store.Gateway

// Initialize sets up the goals package with required dependencies
func Initialize(g *store.Gateway) {
	gateway = g
}

// RegisterRoutes registers all savings goal routes
func RegisterRoutes(r chi.Router) {
	r.Get("/goals", handleListGoals)
	r.Post("/goals", handleCreateGoal)
	r.Get("/goals/summary", handleGoalsSummary)
	r.Post("/goals/{id}/contribute", handleContribute)
	r.Post("/goals/{id}/withdraw", handleWithdraw)
	r.Delete("/goals/{id}", handleDeleteGoal)
}

func handleListGoals(w http.ResponseWriter, r *http.Request) {
	doc := gateway.Load()
	httputil.JSON(w, http.StatusOK, map[string]interface{}{
		"goals": goalsvc.WithProgress(doc),
	})
}

func handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string  `json:"name"`
		TargetAmount float64 `json:"target_amount"`
		Deadline     string  `json:"deadline"`
		Currency     string  `json:"currency"`
	}
	if err := httputil.Decode(r, &req); err != nil {
		httputil.BadRequest(w, "invalid JSON body")
		return
	}

	doc := gateway.Load()
	goal, err := goalsvc.Create(doc, goalsvc.CreateInput{
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		Deadline:     req.Deadline,
		Currency:     req.Currency,
	})
	if err != nil {
		httputil.Error(w, err)
		return
	}
	if err := gateway.Save(doc); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusCreated, goal)
}

func handleGoalsSummary(w http.ResponseWriter, r *http.Request) {
	doc := gateway.Load()
	httputil.JSON(w, http.StatusOK, goalsvc.Summarize(doc))
}

func handleContribute(w http.ResponseWriter, r *http.Request) {
	mutateGoal(w, r, goalsvc.Contribute)
}

func handleWithdraw(w http.ResponseWriter, r *http.Request) {
	mutateGoal(w, r, goalsvc.Withdraw)
}

func mutateGoal(w http.ResponseWriter, r *http.Request, op func(*models.FinanceDocument, string, float64, string) (*models.SavingsGoal, error)) {
	var req struct {
		Amount float64 `json:"amount"`
		Note   string  `json:"note"`
	}
	if err := httputil.Decode(r, &req); err != nil {
		httputil.BadRequest(w, "invalid JSON body")
		return
	}

	doc := gateway.Load()
	goal, err := op(doc, chi.URLParam(r, "id"), req.Amount, req.Note)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	if err := gateway.Save(doc); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, goal)
}

func handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	doc := gateway.Load()
	if err := goalsvc.Delete(doc, chi.URLParam(r, "id")); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := gateway.Save(doc); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
