package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/term"

	"fintrack/internal/config"
	"fintrack/internal/handlers/budgets"
	"fintrack/internal/handlers/goals"
	"fintrack/internal/handlers/insights"
	"fintrack/internal/handlers/ledger"
	"fintrack/internal/handlers/recurring"
	"fintrack/internal/handlers/settings"
	"fintrack/internal/services/currency"
	"fintrack/internal/services/storage"
	"fintrack/internal/services/store"
	"fintrack/internal/version"
)

func main() {
	cfg := config.Load()
	log.Printf("Starting finance tracker on %s", cfg.ListenAddr)
	log.Printf("Data directory: %s", cfg.DataDirectory)
	log.Printf("%s", version.Get())

	files, err := storage.New(cfg.DataDirectory)
	if err != nil {
		log.Fatalf("Could not initialize storage: %v", err)
	}

	if files.IsEncrypted() {
		if err := unlockInteractive(files); err != nil {
			log.Fatalf("Could not unlock encrypted storage: %v", err)
		}
		log.Printf("Storage unlocked")
	}

	gateway := store.New(files)
	rates := currency.New(currency.NewHTTPProvider(cfg.RatesURL, cfg.RatesTimeout))

	router := setupRouter(gateway, files, rates)

	log.Printf("Server starting on %s", cfg.ListenAddr)
	log.Fatal(http.ListenAndServe(cfg.ListenAddr, router))
}

// setupRouter wires the handler packages and middleware onto a chi router.
func setupRouter(gateway *store.Gateway, files *storage.Storage, rates *currency.Engine) chi.Router {
	ledger.Initialize(gateway)
	budgets.Initialize(gateway)
	goals.Initialize(gateway)
	recurring.Initialize(gateway)
	insights.Initialize(gateway, rates)
	settings.Initialize(gateway, files, rates)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", handleHealth)
		api.Get("/version", handleVersion)

		ledger.RegisterRoutes(api)
		budgets.RegisterRoutes(api)
		goals.RegisterRoutes(api)
		recurring.RegisterRoutes(api)
		insights.RegisterRoutes(api)
		settings.RegisterRoutes(api)
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(version.Get())
}

// unlockInteractive prompts for the storage password without echoing it.
func unlockInteractive(files *storage.Storage) error {
	for attempts := 0; attempts < 3; attempts++ {
		fmt.Fprint(os.Stderr, "Storage password: ")
		password, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return err
		}

		if err := files.Unlock(string(password)); err != nil {
			log.Printf("Unlock failed: %v", err)
			continue
		}
		return nil
	}
	return fmt.Errorf("too many failed attempts")
}
