package networth

import (
	"strings"

	"github.com/Rhymond/go-money"
)

// MonetaryEntry is the uniform shape every product entry resolves to before aggregation.
type MonetaryEntry struct {
	Currency string  `json:"currency"`
	Value    Decimal `json:"value"`
}

// Money builds a MonetaryEntry.
func Money(value Decimal, currency string) MonetaryEntry {
	return MonetaryEntry{Currency: currency, Value: value}
}

// currency returns the entry's currency; never nil, unknown codes get default settings.
func (m MonetaryEntry) currency() money.Currency {
	return *money.New(0, strings.ToUpper(m.Currency)).Currency()
}

// Fraction is the number of minor unit digits of the currency.
func (m MonetaryEntry) Fraction() int { return m.currency().Fraction }

// String formats the value with the currency symbol, rounded to the currency's minor unit.
func (m MonetaryEntry) String() string {
	cur := m.currency()
	if !m.Value.IsFinite() {
		return "NaN " + cur.Code
	}
	minor := m.Value.Decimal().Shift(int32(cur.Fraction)).RoundBank(0)
	return cur.Formatter().Format(minor.IntPart())
}

// To converts the entry into target currency.
func (m MonetaryEntry) To(target string, rates ExchangeRates) Decimal {
	return Convert(m.Value, m.Currency, target, rates)
}
