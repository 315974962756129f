package networth

import (
	"strings"
)

// ExchangeRates maps a target currency to the rates of source keys.
//
// A rate R under rates[T][S] means that 1 unit of T is worth R units of S, so an
// amount in S is converted to T by dividing it by R. Source keys are fiat codes,
// crypto symbols, "addr:" prefixed contract addresses or commodity symbols.
//
// A table is a read-only snapshot once published. Use Clone or Merge to derive
// a new one.
type ExchangeRates map[string]map[string]Decimal

// DefaultExchangeRates is the table in use before any refresh succeeded.
func DefaultExchangeRates() ExchangeRates {
	return ExchangeRates{
		"EUR": {"EUR": D(1), "USD": D(1)},
		"USD": {"USD": D(1), "EUR": D(1)},
	}
}

// Set records a rate, creating the target entry if needed.
func (r ExchangeRates) Set(target, key string, rate Decimal) {
	m, ok := r[target]
	if !ok {
		m = make(map[string]Decimal)
		r[target] = m
	}
	m[key] = rate
}

// Len returns the number of rates in the table.
func (r ExchangeRates) Len() int {
	n := 0
	for _, m := range r {
		n += len(m)
	}
	return n
}

// Clone returns a deep copy of r.
func (r ExchangeRates) Clone() ExchangeRates {
	if r == nil {
		return nil
	}
	c := make(ExchangeRates, len(r))
	for target, m := range r {
		cm := make(map[string]Decimal, len(m))
		for k, v := range m {
			cm[k] = v
		}
		c[target] = cm
	}
	return c
}

// Merge returns a new table with the rates of r overridden by the ones in o.
func (r ExchangeRates) Merge(o ExchangeRates) ExchangeRates {
	c := r.Clone()
	if c == nil {
		c = make(ExchangeRates)
	}
	for target, m := range o {
		for k, v := range m {
			c.Set(target, k, v)
		}
	}
	return c
}

// Resolve looks up the rate of key against target.
//
// Both the target and the key are tried as given, upper-cased and lower-cased.
// The first finite non-zero rate wins.
func (r ExchangeRates) Resolve(target, key string) (Decimal, bool) {
	if r == nil {
		return Decimal{}, false
	}
	for _, t := range caseVariants(target) {
		m, ok := r[t]
		if !ok {
			continue
		}
		for _, k := range caseVariants(key) {
			rate, ok := m[k]
			if ok && rate.IsFinite() && !rate.IsZero() {
				return rate, true
			}
		}
	}
	return Decimal{}, false
}

func caseVariants(s string) [3]string {
	return [3]string{s, strings.ToUpper(s), strings.ToLower(s)}
}

// Convert converts amount from currency into target.
//
// A non-finite amount converts to zero. The amount is returned unchanged when
// from is empty, when it is the target, when there are no rates or when no rate
// is known: a balance in the wrong currency is better than a vanished one.
func Convert(amount Decimal, from, target string, rates ExchangeRates) Decimal {
	if !amount.IsFinite() {
		return Zero()
	}
	if from == "" || strings.EqualFold(from, target) || rates == nil {
		return amount
	}
	rate, ok := rates.Resolve(target, from)
	if !ok {
		return amount
	}
	return amount.Div(rate)
}
