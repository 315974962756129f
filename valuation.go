package networth

import (
	"strings"
)

// 1 g = 0.0321507466 ozt.
var troyOuncesPerGram = D("0.0321507466")

// CommoditySymbol returns the market symbol of a commodity, "" if unknown.
func CommoditySymbol(t CommodityType) string {
	switch CommodityType(strings.ToUpper(string(t))) {
	case Gold:
		return "XAU"
	case Silver:
		return "XAG"
	case Platinum:
		return "XPT"
	case Palladium:
		return "XPD"
	}
	return ""
}

// ConvertCommodity values amount units of a commodity in target currency.
//
// Quotes are per troy ounce, so grams are converted first. When no rate is
// known the amount is returned as is, to avoid understating the holding.
func ConvertCommodity(amount Decimal, t CommodityType, unit WeightUnit, target string, rates ExchangeRates) Decimal {
	if !amount.IsFinite() || !amount.IsPositive() {
		return Zero()
	}
	symbol := CommoditySymbol(t)
	if symbol == "" || rates == nil {
		return amount
	}
	ozt := amount
	if strings.EqualFold(string(unit), string(Gram)) {
		ozt = amount.Mul(troyOuncesPerGram)
	}
	rate, ok := rates.Resolve(target, symbol)
	if !ok {
		logger.Warn().Str("commodity", string(t)).Str("target", target).Msg("no rate for commodity, keeping raw amount")
		return amount
	}
	return ozt.Div(rate)
}

// CommodityValue values a commodity entry, falling back to its market value
// when no positive value can be derived from the rates.
func CommodityValue(e CommodityEntry, target string, rates ExchangeRates) Decimal {
	v := ConvertCommodity(e.Amount, e.Type, e.Unit, target, rates)
	if v.IsPositive() {
		return v
	}
	return Convert(e.MarketValue, currencyOr(e.Currency, target), target, rates)
}

// CryptoAssetValue values a crypto asset in target currency.
//
// The contract address is tried before the symbol since one symbol may name
// several tokens. The backend market value is the fallback.
func CryptoAssetValue(a CryptoAsset, target string, rates ExchangeRates) Decimal {
	if a.Amount.IsPositive() && rates != nil {
		var keys []string
		if addr := strings.ToLower(strings.TrimSpace(a.ContractAddress)); addr != "" {
			keys = append(keys, "addr:"+addr)
		}
		if a.Symbol != "" {
			keys = append(keys, strings.ToUpper(a.Symbol))
		}
		for _, k := range keys {
			if rate, ok := rates.Resolve(target, k); ok {
				if v := a.Amount.Div(rate); v.IsFinite() && !v.IsZero() {
					return v
				}
			}
		}
	}
	if a.MarketValue.IsPositive() {
		return Convert(a.MarketValue, currencyOr(a.Currency, target), target, rates)
	}
	return Zero()
}

// CryptoWalletValue sums the value of the wallet's assets.
func CryptoWalletValue(w CryptoWallet, target string, rates ExchangeRates) Decimal {
	if len(w.Assets) == 0 {
		return CryptoAssetValue(w.CryptoAsset, target, rates)
	}
	total := Zero()
	for _, a := range w.Assets {
		total = total.Add(CryptoAssetValue(a, target, rates))
	}
	return total
}

func currencyOr(currency, fallback string) string {
	if currency == "" {
		return fallback
	}
	return currency
}

// sumEntries converts and sums the valuation of entries.
func sumEntries[E Valued](entries []E, target string, rates ExchangeRates) Decimal {
	total := Zero()
	for _, e := range entries {
		total = total.Add(e.Valuation().To(target, rates))
	}
	return total
}
