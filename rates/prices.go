package rates

import (
	"context"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/networth"
)

// Price is the price of one unit of an asset (one troy ounce, one coin).
type Price struct {
	Value    networth.Decimal
	Currency string
}

// PriceSource returns the price of a symbol, quoted in currency when the source
// supports it. The returned Price carries the currency actually used.
type PriceSource interface {
	Price(ctx context.Context, symbol, currency string) (Price, error)
}

// JSONPriceSource reads prices from a JSON endpoint.
//
// URL may contain {symbol} and {currency} placeholders. PricePath and
// CurrencyPath are jsonpath expressions evaluated on the response, with the
// same placeholders. Without CurrencyPath the requested currency is assumed,
// or Currency if set.
type JSONPriceSource struct {
	URL          string
	PricePath    string
	CurrencyPath string
	Currency     string
	Client       *Client
}

func (s *JSONPriceSource) Price(ctx context.Context, symbol, currency string) (Price, error) {
	repl := strings.NewReplacer("{symbol}", symbol, "{currency}", currency,
		"{SYMBOL}", strings.ToUpper(symbol), "{CURRENCY}", strings.ToUpper(currency),
		"{lsymbol}", strings.ToLower(symbol), "{lcurrency}", strings.ToLower(currency))
	client := s.Client
	if client == nil {
		client = NewClient()
	}

	doc, err := client.getJSON(ctx, repl.Replace(s.URL))
	if err != nil {
		return Price{}, fmt.Errorf("price of %s: %w", symbol, err)
	}
	path := repl.Replace(s.PricePath)
	jval, err := first(jsonpath.Get(path, doc))
	if err != nil {
		return Price{}, fmt.Errorf("price of %s: %q: %w", symbol, path, err)
	}
	value, ok := number(jval)
	if !ok {
		return Price{}, fmt.Errorf("price of %s: %q: not a number %v", symbol, path, jval)
	}

	p := Price{Value: value, Currency: currency}
	if s.Currency != "" {
		p.Currency = s.Currency
	}
	if s.CurrencyPath != "" {
		cur, err := first(jsonpath.Get(repl.Replace(s.CurrencyPath), doc))
		if err != nil {
			return Price{}, fmt.Errorf("currency of %s: %w", symbol, err)
		}
		if c, ok := cur.(string); ok && c != "" {
			p.Currency = c
		}
	}
	p.Currency = strings.ToUpper(p.Currency)
	return p, nil
}

// first keeps the first element when jsonpath returned a list of answers.
func first(v any, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	if list, ok := v.([]any); ok {
		if len(list) == 0 {
			return nil, fmt.Errorf("no match")
		}
		return list[0], nil
	}
	return v, nil
}

// priceRate turns a price into a rate of the base table: how many units of the
// asset one unit of base buys. A price in another currency goes through
// matrix[base][price currency]. It returns false when no rate can be derived.
func priceRate(matrix networth.ExchangeRates, base string, p Price) (networth.Decimal, bool) {
	if !p.Value.IsPositive() {
		return networth.Decimal{}, false
	}
	if p.Currency == "" || strings.EqualFold(p.Currency, base) {
		return networth.D(1).Div(p.Value), true
	}
	cross, ok := matrix[base][strings.ToUpper(p.Currency)]
	if !ok || !cross.IsFinite() || cross.IsZero() {
		return networth.Decimal{}, false
	}
	return cross.Div(p.Value), true
}

// ApplyCommodityPrices stores the rate of each commodity symbol under every base of matrix.
func ApplyCommodityPrices(matrix networth.ExchangeRates, prices map[string]Price) {
	for base := range matrix {
		for symbol, p := range prices {
			if r, ok := priceRate(matrix, base, p); ok {
				matrix.Set(base, strings.ToUpper(symbol), r)
			}
		}
	}
}

// ApplyCryptoPrices stores crypto rates. Prices are keyed by base then by
// symbol or "addr:" contract address. Addresses are lower-cased and symbols upper-cased.
func ApplyCryptoPrices(matrix networth.ExchangeRates, prices map[string]map[string]Price) {
	for base, byKey := range prices {
		base = strings.ToUpper(base)
		for key, p := range byKey {
			r, ok := priceRate(matrix, base, p)
			if !ok {
				continue
			}
			matrix.Set(base, CryptoKey(key), r)
		}
	}
}

// CryptoKey normalizes a crypto key of the rate table.
func CryptoKey(key string) string {
	key = strings.TrimSpace(key)
	if rest, ok := strings.CutPrefix(strings.ToLower(key), "addr:"); ok {
		return "addr:" + rest
	}
	return strings.ToUpper(key)
}

// CryptoKeys lists the rate keys needed to value the crypto assets of positions,
// after the given base symbols. Keys are unique.
func CryptoKeys(positions *networth.EntitiesPosition, base ...string) []string {
	seen := make(map[string]bool)
	var keys []string
	add := func(k string) {
		if k == "" || k == "addr:" {
			return
		}
		k = CryptoKey(k)
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	for _, s := range base {
		add(s)
	}
	for _, id := range positions.Keys() {
		for _, w := range positions.Positions[id].Products.Crypto.Entries {
			assets := w.Assets
			if len(assets) == 0 {
				assets = []networth.CryptoAsset{w.CryptoAsset}
			}
			for _, a := range assets {
				if a.ContractAddress != "" {
					add("addr:" + a.ContractAddress)
				}
				add(a.Symbol)
			}
		}
	}
	return keys
}
