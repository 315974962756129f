package rates

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/Rhymond/go-money"
	"github.com/etnz/networth"
)

// DefaultBaseURL serves one document per base currency at <url>/currencies/<code>.min.json.
const DefaultBaseURL = "https://cdn.jsdelivr.net/npm/@fawazahmed0/currency-api@latest/v1"

// FiatSource fetches the fiat matrix from a currency-api compatible endpoint.
//
// A document for base "eur" looks like
//
//	{"date": "2025-06-01", "eur": {"usd": 1.13, "gbp": 0.84, "shib": 91000}}
//
// Only ISO 4217 codes known to go-money are kept. Crypto prices come from a PriceSource.
type FiatSource struct {
	baseURL string
	client  *Client
}

// NewFiatSource creates a FiatSource. An empty baseURL selects DefaultBaseURL.
func NewFiatSource(baseURL string, client *Client) *FiatSource {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = NewClient()
	}
	return &FiatSource{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// Rates returns the rates of base: 1 base = rate units of each key.
func (s *FiatSource) Rates(ctx context.Context, base string) (map[string]networth.Decimal, error) {
	code := strings.ToLower(base)
	addr := fmt.Sprintf("%s/currencies/%s.min.json", s.baseURL, code)
	doc, err := s.client.getJSON(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("fiat rates of %s: %w", base, err)
	}
	jval, err := jsonpath.Get("$."+code, doc)
	if err != nil {
		return nil, fmt.Errorf("fiat rates of %s: %w", base, err)
	}
	obj, ok := jval.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("fiat rates of %s: unexpected %T", base, jval)
	}

	rates := make(map[string]networth.Decimal, len(obj))
	for k, v := range obj {
		key := strings.ToUpper(k)
		if money.GetCurrency(key) == nil {
			continue
		}
		r, ok := number(v)
		if !ok || r.IsZero() {
			continue
		}
		rates[key] = r
	}
	rates[strings.ToUpper(base)] = networth.D(1)
	return rates, nil
}

// Matrix fetches the rates of every base. A base that fails is reported in the
// returned error but the other bases are still returned.
func (s *FiatSource) Matrix(ctx context.Context, bases []string) (networth.ExchangeRates, error) {
	matrix := make(networth.ExchangeRates, len(bases))
	var errs []error
	for _, base := range bases {
		rates, err := s.Rates(ctx, base)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		matrix[strings.ToUpper(base)] = rates
	}
	return matrix, errors.Join(errs...)
}
