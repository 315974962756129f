package networth

import (
	"slices"

	"github.com/etnz/networth/date"
)

// AssetType names a bucket of the asset distribution.
type AssetType string

const (
	CashBucket         AssetType = "CASH"
	FundBucket         AssetType = "FUND"
	StockETFBucket     AssetType = "STOCK_ETF"
	DepositBucket      AssetType = "DEPOSIT"
	RealEstateCFBucket AssetType = "REAL_ESTATE_CF"
	FactoringBucket    AssetType = "FACTORING"
	CryptoBucket       AssetType = "CRYPTO"
	CommodityBucket    AssetType = "COMMODITY"
	CrowdlendingBucket AssetType = "CROWDLENDING"
	BondBucket         AssetType = "BOND"
	DerivativeBucket   AssetType = "DERIVATIVE"
	PendingFlowsBucket AssetType = "PENDING_FLOWS"
	RealEstateBucket   AssetType = "REAL_ESTATE"
)

// AssetDistributionItem is one bucket of the asset distribution.
type AssetDistributionItem struct {
	Type       AssetType `json:"type"`
	Value      Decimal   `json:"value"`
	Percentage Decimal   `json:"percentage"`
}

// EntityDistributionItem is one entity's share of the assets.
type EntityDistributionItem struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Value      Decimal `json:"value"`
	Percentage Decimal `json:"percentage"`
}

// Synthetic entities for holdings that are not entity scoped.
var (
	CommodityEntity  = Entity{ID: "commodity", Name: "COMMODITY"}
	RealEstateEntity = Entity{ID: "real-estate", Name: "REAL_ESTATE"}
)

// now is the day pending flows are compared to.
var now = date.Today

// buckets accumulates values by key, remembering first insertion order.
type buckets[K comparable] struct {
	keys   []K
	values map[K]Decimal
}

func (b *buckets[K]) add(k K, v Decimal) {
	if b.values == nil {
		b.values = make(map[K]Decimal)
	}
	old, ok := b.values[k]
	if !ok {
		b.keys = append(b.keys, k)
	}
	b.values[k] = old.Add(v)
}

func (b *buckets[K]) total() Decimal {
	total := Zero()
	for _, k := range b.keys {
		total = total.Add(b.values[k])
	}
	return total
}

// percentage returns 100*value/total rounded to one decimal, 0 for a zero total.
func percentage(value, total Decimal) Decimal {
	if total.IsZero() || !total.IsFinite() {
		return Zero()
	}
	return value.Mul(D(100)).Div(total).Round(1).OrZero()
}

// addPositive adds v to bucket k only when it is strictly positive.
func (b *buckets[K]) addPositive(k K, v Decimal) {
	if v.IsPositive() {
		b.add(k, v)
	}
}

// AssetDistribution splits the assets of the snapshot by asset type, in target currency.
//
// Real estate is not read from the positions but from the realEstate list,
// as owned equity. The net of pendingFlows is added as its own bucket when it
// is positive. Empty buckets are omitted and the result is sorted by value,
// greatest first. A nil snapshot has no distribution.
func AssetDistribution(positions *EntitiesPosition, target string, rates ExchangeRates, pendingFlows []PendingFlow, realEstate []RealEstate) []AssetDistributionItem {
	if positions == nil {
		return nil
	}
	var b buckets[AssetType]
	for _, key := range positions.Keys() {
		p := positions.Positions[key].Products
		b.addPositive(CashBucket, sumEntries(p.Accounts.Entries, target, rates))
		b.addPositive(FundBucket, sumEntries(p.Funds.Entries, target, rates))
		b.addPositive(StockETFBucket, sumEntries(p.Stocks.Entries, target, rates))
		b.addPositive(DepositBucket, sumEntries(p.Deposits.Entries, target, rates))
		b.addPositive(RealEstateCFBucket, sumEntries(p.RealEstateCF.Entries, target, rates))
		b.addPositive(FactoringBucket, sumEntries(p.Factoring.Entries, target, rates))
		for _, w := range p.Crypto.Entries {
			b.addPositive(CryptoBucket, CryptoWalletValue(w, target, rates))
		}
		commodities := Zero()
		for _, c := range p.Commodities.Entries {
			commodities = commodities.Add(CommodityValue(c, target, rates))
		}
		b.addPositive(CommodityBucket, commodities)
		if c := p.Crowdlending; c != nil {
			b.addPositive(CrowdlendingBucket, Convert(c.Total, currencyOr(c.Currency, target), target, rates))
		}
		b.addPositive(BondBucket, sumEntries(p.Bonds.Entries, target, rates))
		b.addPositive(DerivativeBucket, sumEntries(p.Derivatives.Entries, target, rates))
	}
	b.addPositive(PendingFlowsBucket, PendingFlowsTotal(pendingFlows, target, rates, now()))
	b.addPositive(RealEstateBucket, RealEstateEquityTotal(realEstate, target, rates))

	total := b.total()
	items := make([]AssetDistributionItem, 0, len(b.keys))
	for _, k := range b.keys {
		v := b.values[k]
		items = append(items, AssetDistributionItem{Type: k, Value: v, Percentage: percentage(v, total)})
	}
	slices.SortStableFunc(items, func(a, b AssetDistributionItem) int { return b.Value.Cmp(a.Value) })
	return items
}

// EntityDistribution splits the assets of the snapshot by entity, in target currency.
//
// Commodities and real estate are attributed to the synthetic CommodityEntity
// and RealEstateEntity. Fund portfolios, bonds, derivatives, loans and cards
// are left out; a fund portfolio's funds are already listed as funds. A nil
// snapshot has no distribution.
func EntityDistribution(positions *EntitiesPosition, target string, rates ExchangeRates, realEstate []RealEstate) []EntityDistributionItem {
	if positions == nil {
		return nil
	}
	var b buckets[string]
	names := make(map[string]string)
	add := func(e Entity, v Decimal) {
		if !v.IsPositive() {
			return
		}
		if _, ok := names[e.ID]; !ok {
			names[e.ID] = e.Name
		}
		b.add(e.ID, v)
	}

	commodities := Zero()
	for _, key := range positions.Keys() {
		gp := positions.Positions[key]
		e := Entity{ID: gp.Entity.ID, Name: gp.Entity.Name}
		if e.ID == "" {
			e.ID = key
		}
		if e.Name == "" {
			e.Name = key
		}
		p := gp.Products
		total := Sum(
			sumEntries(p.Accounts.Entries, target, rates),
			sumEntries(p.Funds.Entries, target, rates),
			sumEntries(p.Stocks.Entries, target, rates),
			sumEntries(p.Deposits.Entries, target, rates),
			sumEntries(p.RealEstateCF.Entries, target, rates),
			sumEntries(p.Factoring.Entries, target, rates),
		)
		if c := p.Crowdlending; c != nil {
			total = total.Add(Convert(c.Total, c.Currency, target, rates))
		}
		for _, w := range p.Crypto.Entries {
			total = total.Add(CryptoWalletValue(w, target, rates))
		}
		for _, c := range p.Commodities.Entries {
			commodities = commodities.Add(CommodityValue(c, target, rates))
		}
		add(e, total)
	}
	add(CommodityEntity, commodities)
	add(RealEstateEntity, RealEstateEquityTotal(realEstate, target, rates))

	total := b.total()
	items := make([]EntityDistributionItem, 0, len(b.keys))
	for _, id := range b.keys {
		v := b.values[id]
		items = append(items, EntityDistributionItem{ID: id, Name: names[id], Value: v, Percentage: percentage(v, total)})
	}
	slices.SortStableFunc(items, func(a, b EntityDistributionItem) int { return b.Value.Cmp(a.Value) })
	return items
}
