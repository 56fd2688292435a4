// Package store is the data store gateway: it loads and persists the single
// finance document. All domain logic lives in the engines; the gateway only
// owns document I/O and recovery.
package store

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/services/storage"
)

// DocumentFile is the name of the finance document inside the data directory.
const DocumentFile = "finance.json"

// Gateway loads and saves the finance document through the storage layer.
type Gateway struct {
	store *storage.Storage
	path  string

	// Now is the clock used for LastUpdated stamps; overridable in tests.
	Now func() time.Time
}

// New creates a gateway rooted at the storage layer's data directory.
func New(store *storage.Storage) *Gateway {
	return &Gateway{
		store: store,
		path:  filepath.Join(store.BaseDir(), DocumentFile),
		Now:   time.Now,
	}
}

// Path returns the document's on-disk path.
func (g *Gateway) Path() string {
	return g.path
}

// Load returns the current finance document. A missing or unreadable document
// is replaced by a freshly seeded one, which is persisted immediately;
// corruption is logged and swallowed, never surfaced to callers.
func (g *Gateway) Load() *models.FinanceDocument {
	data, err := g.store.ReadFile(g.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: could not read finance document: %v", err)
		}
		return g.reset()
	}

	var doc models.FinanceDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Printf("Warning: finance document is corrupt, starting fresh: %v", err)
		return g.reset()
	}

	normalize(&doc)
	return &doc
}

// Save stamps LastUpdated and persists the full document. I/O failures
// propagate to the caller.
func (g *Gateway) Save(doc *models.FinanceDocument) error {
	doc.LastUpdated = g.Now()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	return g.store.WriteFile(g.path, data, 0644)
}

// reset builds and persists the seeded default document.
func (g *Gateway) reset() *models.FinanceDocument {
	doc := models.NewDocument()
	if err := g.Save(doc); err != nil {
		log.Printf("Warning: could not persist seed document: %v", err)
	}
	return doc
}

// normalize backfills fields a hand-edited or older document may be missing.
func normalize(doc *models.FinanceDocument) {
	if doc.DefaultCurrency == "" {
		doc.DefaultCurrency = "USD"
	}
	if len(doc.Categories) == 0 {
		doc.Categories = append(doc.Categories, models.DefaultCategories...)
	}
	if doc.Transactions == nil {
		doc.Transactions = []models.Transaction{}
	}
	if doc.Budgets == nil {
		doc.Budgets = []models.Budget{}
	}
	if doc.RecurringTransactions == nil {
		doc.RecurringTransactions = []models.RecurringTransaction{}
	}
	if doc.SavingsGoals == nil {
		doc.SavingsGoals = []models.SavingsGoal{}
	}
}
