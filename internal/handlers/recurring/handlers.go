package recurring

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"fintrack/internal/httputil"
	"fintrack/internal/models"
	recurringsvc "fintrack/internal/services/recurring"
	"fintrack/internal/services/store"
)

var gateway *store.Gateway

// Initialize sets up the recurring package with required dependencies
func Initialize(g *store.Gateway) {
	gateway = g
}

// RegisterRoutes registers all recurring transaction routes
func RegisterRoutes(r chi.Router) {
	r.Get("/recurring", handleListRecurring)
	r.Post("/recurring", handleCreateRecurring)
	r.Post("/recurring/process", handleProcess)
	r.Get("/recurring/upcoming", handleUpcoming)
	r.Post("/recurring/{id}/toggle", handleToggle)
	r.Delete("/recurring/{id}", handleDeleteRecurring)
}

func handleListRecurring(w http.ResponseWriter, r *http.Request) {
	doc := gateway.Load()
	httputil.JSON(w, http.StatusOK, map[string]interface{}{
		"recurring": doc.RecurringTransactions,
	})
}

func handleCreateRecurring(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount      float64 `json:"amount"`
		Type        string  `json:"type"`
		Category    string  `json:"category"`
		Description string  `json:"description"`
		Frequency   string  `json:"frequency"`
		StartDate   string  `json:"start_date"`
		Currency    string  `json:"currency"`
	}
	if err := httputil.Decode(r, &req); err != nil {
		httputil.BadRequest(w, "invalid JSON body")
		return
	}

	doc := gateway.Load()
	entry, err := recurringsvc.Create(doc, recurringsvc.CreateInput{
		Amount:      req.Amount,
		Type:        models.TransactionType(req.Type),
		Category:    req.Category,
		Description: req.Description,
		Frequency:   models.Frequency(req.Frequency),
		StartDate:   req.StartDate,
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

	httputil.JSON(w, http.StatusCreated, entry)
}

func handleProcess(w http.ResponseWriter, r *http.Request) {
	doc := gateway.Load()
	result := recurringsvc.Process(doc)

	// nothing materialized, nothing to persist
	if result.Count > 0 {
		if err := gateway.Save(doc); err != nil {
			httputil.Error(w, err)
			return
		}
	}

	httputil.JSON(w, http.StatusOK, result)
}

func handleUpcoming(w http.ResponseWriter, r *http.Request) {
	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if err != nil || days < 1 {
		days = 30
	}

	doc := gateway.Load()
	httputil.JSON(w, http.StatusOK, map[string]interface{}{
		"upcoming": recurringsvc.UpcomingWithin(doc, days),
	})
}

func handleToggle(w http.ResponseWriter, r *http.Request) {
	doc := gateway.Load()
	active, err := recurringsvc.Toggle(doc, chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, err)
		return
	}
	if err := gateway.Save(doc); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]bool{"active": active})
}

func handleDeleteRecurring(w http.ResponseWriter, r *http.Request) {
	doc := gateway.Load()
	if err := recurringsvc.Delete(doc, chi.URLParam(r, "id")); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := gateway.Save(doc); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
