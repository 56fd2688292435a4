package currency

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// DefaultRatesURL serves USD-based rates as JSON.
const DefaultRatesURL = "https://open.er-api.com/v6/latest/USD"

// RateProvider fetches a USD-pivoted rate table. Implementations return nil
// on any network or parse failure; they never return an error.
type RateProvider interface {
	FetchRates() map[string]float64
}

// HTTPProvider fetches live rates from a public exchange-rate API.
type HTTPProvider struct {
	URL    string
	Client *http.Client
}

// NewHTTPProvider creates a provider with a conservative request timeout so a
// slow rate service can never stall a request for long.
func NewHTTPProvider(url string, timeout time.Duration) *HTTPProvider {
	if url == "" {
		url = DefaultRatesURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPProvider{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
	}
}

// FetchRates returns the live rate table, or nil if the service is
// unreachable or responds with something unusable.
func (p *HTTPProvider) FetchRates() map[string]float64 {
	resp, err := p.Client.Get(p.URL)
	if err != nil {
		log.Printf("Warning: rate fetch failed: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Warning: rate service returned status %d", resp.StatusCode)
		return nil
	}

	var payload struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("Warning: could not decode rate response: %v", err)
		return nil
	}
	if len(payload.Rates) == 0 {
		return nil
	}

	return payload.Rates
}
