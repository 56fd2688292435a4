package currency

import (
	"time"

	"fintrack/internal/models"
)

// rateMaxAge is how long cached exchange rates stay fresh.
const rateMaxAge = 24 * time.Hour

// Engine resolves exchange rates against the document's cache and converts
// amounts through the USD pivot. It never fails: every degradation path ends
// at the built-in default table.
type Engine struct {
	provider RateProvider

	// Now is the clock used for staleness checks; overridable in tests.
	Now func() time.Time
}

// New creates an engine backed by the given rate provider. A nil provider is
// allowed and behaves like one whose fetches always fail.
func New(provider RateProvider) *Engine {
	return &Engine{
		provider: provider,
		Now:      time.Now,
	}
}

// RatesIfStale returns a usable rate table. Cached rates younger than 24
// hours are reused as-is; otherwise a fetch is attempted and, on success,
// written back into the document's cache (the caller persists). On fetch
// failure the stale cache is reused if present, else the default table.
// The second return reports whether the document cache was refreshed.
func (e *Engine) RatesIfStale(doc *models.FinanceDocument) (map[string]float64, bool) {
	now := e.Now()

	if doc.ExchangeRates != nil && now.Sub(doc.ExchangeRates.LastUpdated) < rateMaxAge {
		return doc.ExchangeRates.Rates, false
	}

	if e.provider != nil {
		if fetched := e.provider.FetchRates(); fetched != nil {
			doc.ExchangeRates = &models.ExchangeRateCache{
				Rates:       fetched,
				LastUpdated: now,
			}
			return fetched, true
		}
	}

	if doc.ExchangeRates != nil {
		return doc.ExchangeRates.Rates, false
	}
	return DefaultRates(), false
}

// Conversion is the result of converting an amount between currencies.
type Conversion struct {
	Amount float64 `json:"amount"`
	Rate   float64 `json:"rate"`
	From   string  `json:"from"`
	To     string  `json:"to"`
}

// Convert routes amount from one currency to another through USD. Unknown
// codes fall back to rate 1. Same-currency conversion short-circuits to the
// identity with rate exactly 1 to avoid float drift. The amount is rounded
// to 2 decimals and the effective to/from rate to 4.
func Convert(amount float64, from, to string, rates map[string]float64) Conversion {
	if from == to {
		return Conversion{Amount: round2(amount), Rate: 1, From: from, To: to}
	}

	fromRate := lookupRate(rates, from)
	toRate := lookupRate(rates, to)

	inUSD := amount / fromRate
	converted := inUSD * toRate

	return Conversion{
		Amount: round2(converted),
		Rate:   round4(toRate / fromRate),
		From:   from,
		To:     to,
	}
}

func lookupRate(rates map[string]float64, code string) float64 {
	if r, ok := rates[code]; ok && r > 0 {
		return r
	}
	return 1
}

// CurrencyBalance is one currency's slice of the multi-currency breakdown.
type CurrencyBalance struct {
	Currency  string  `json:"currency"`
	Balance   float64 `json:"balance"`
	Converted float64 `json:"converted"`
}

// BalanceBreakdown sums signed amounts per distinct transaction currency,
// converts each subtotal independently into the target currency, then totals
// the converted figures. The per-currency-then-convert order is load-bearing:
// it preserves per-currency rounding boundaries and is not equivalent to
// converting one grand total.
func BalanceBreakdown(doc *models.FinanceDocument, target string, rates map[string]float64) (float64, []CurrencyBalance) {
	subtotals := make(map[string]float64)
	var order []string
	for _, t := range doc.Transactions {
		code := t.Currency
		if code == "" {
			code = doc.DefaultCurrency
		}
		if _, seen := subtotals[code]; !seen {
			order = append(order, code)
		}
		subtotals[code] += t.SignedAmount()
	}

	var total float64
	breakdown := make([]CurrencyBalance, 0, len(order))
	for _, code := range order {
		conv := Convert(subtotals[code], code, target, rates)
		breakdown = append(breakdown, CurrencyBalance{
			Currency:  code,
			Balance:   round2(subtotals[code]),
			Converted: conv.Amount,
		})
		total += conv.Amount
	}

	return round2(total), breakdown
}

// SetDefaultCurrency assigns the document's display currency. Unsupported
// codes are rejected; state is left unchanged on failure.
func SetDefaultCurrency(doc *models.FinanceDocument, code string) error {
	if !IsSupported(code) {
		return models.ErrUnsupportedCurrency
	}
	doc.DefaultCurrency = code
	return nil
}
