package settings

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"fintrack/internal/httputil"
	"fintrack/internal/services/currency"
	"fintrack/internal/services/storage"
	"fintrack/internal/services/store"
)

var (
	gateway *store.Gateway
	files   *storage.Storage
	rates   *currency.Engine
)

// Initialize sets up the settings package with required dependencies
func Initialize(g *store.Gateway, s *storage.Storage, e *currency.Engine) {
	gateway = g
	files = s
	rates = e
}

// RegisterRoutes registers currency, rate and storage management routes
func RegisterRoutes(r chi.Router) {
	r.Get("/settings/currency", handleGetCurrency)
	r.Put("/settings/currency", handleSetCurrency)
	r.Get("/settings/currencies", handleListCurrencies)
	r.Get("/settings/rates", handleRates)
	r.Get("/settings/convert", handleConvert)

	r.Get("/settings/encryption", handleEncryptionStatus)
	r.Post("/settings/encryption/enable", handleEnableEncryption)
	r.Post("/settings/encryption/disable", handleDisableEncryption)
	r.Post("/settings/encryption/unlock", handleUnlock)
	r.Post("/settings/encryption/lock", handleLock)

	r.Get("/settings/document", handleDownloadDocument)
}

func handleGetCurrency(w http.ResponseWriter, r *http.Request) {
	doc := gateway.Load()
	httputil.JSON(w, http.StatusOK, map[string]string{
		"currency": doc.DefaultCurrency,
		"symbol":   currency.Symbol(doc.DefaultCurrency),
		"name":     currency.Name(doc.DefaultCurrency),
	})
}

func handleSetCurrency(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Currency string `json:"currency"`
	}
	if err := httputil.Decode(r, &req); err != nil {
		httputil.BadRequest(w, "invalid JSON body")
		return
	}

	doc := gateway.Load()
	if err := currency.SetDefaultCurrency(doc, req.Currency); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := gateway.Save(doc); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]string{"currency": doc.DefaultCurrency})
}

func handleListCurrencies(w http.ResponseWriter, r *http.Request) {
	list := make([]map[string]string, 0, len(currency.SupportedCurrencies))
	for _, code := range currency.SupportedCurrencies {
		list = append(list, map[string]string{
			"code":   code,
			"symbol": currency.Symbol(code),
			"name":   currency.Name(code),
		})
	}
	httputil.JSON(w, http.StatusOK, map[string]interface{}{"currencies": list})
}

func handleRates(w http.ResponseWriter, r *http.Request) {
	doc := gateway.Load()

	table, refreshed := rates.RatesIfStale(doc)
	if refreshed {
		if err := gateway.Save(doc); err != nil {
			httputil.Error(w, err)
			return
		}
	}

	resp := map[string]interface{}{"base": "USD", "rates": table}
	if doc.ExchangeRates != nil {
		resp["last_updated"] = doc.ExchangeRates.LastUpdated
	}
	httputil.JSON(w, http.StatusOK, resp)
}

func handleConvert(w http.ResponseWriter, r *http.Request) {
	amount, err := strconv.ParseFloat(r.URL.Query().Get("amount"), 64)
	if err != nil {
		httputil.BadRequest(w, "invalid amount")
		return
	}
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		httputil.BadRequest(w, "from and to currencies are required")
		return
	}

	doc := gateway.Load()
	table, refreshed := rates.RatesIfStale(doc)
	if refreshed {
		if err := gateway.Save(doc); err != nil {
			httputil.Error(w, err)
			return
		}
	}

	conv := currency.Convert(amount, from, to, table)
	httputil.JSON(w, http.StatusOK, map[string]interface{}{
		"conversion": conv,
		"formatted":  currency.Format(conv.Amount, to),
	})
}

func handleEncryptionStatus(w http.ResponseWriter, r *http.Request) {
	httputil.JSON(w, http.StatusOK, map[string]bool{
		"encrypted": files.IsEncrypted(),
		"unlocked":  files.IsUnlocked(),
	})
}

func handleEnableEncryption(w http.ResponseWriter, r *http.Request) {
	password, ok := passwordFromBody(w, r)
	if !ok {
		return
	}
	if err := files.EnableEncryption(password); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]string{"status": "encrypted"})
}

func handleDisableEncryption(w http.ResponseWriter, r *http.Request) {
	password, ok := passwordFromBody(w, r)
	if !ok {
		return
	}
	if err := files.DisableEncryption(password); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]string{"status": "decrypted"})
}

func handleUnlock(w http.ResponseWriter, r *http.Request) {
	password, ok := passwordFromBody(w, r)
	if !ok {
		return
	}
	if err := files.Unlock(password); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]string{"status": "unlocked"})
}

func handleLock(w http.ResponseWriter, r *http.Request) {
	files.Lock()
	httputil.JSON(w, http.StatusOK, map[string]string{"status": "locked"})
}

// handleDownloadDocument serves the full document as a JSON backup.
func handleDownloadDocument(w http.ResponseWriter, r *http.Request) {
	doc := gateway.Load()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=finance-backup.json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(doc)
}

func passwordFromBody(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req struct {
		Password string `json:"password"`
	}
	if err := httputil.Decode(r, &req); err != nil || req.Password == "" {
		httputil.BadRequest(w, "password is required")
		return "", false
	}
	return req.Password, true
}
