package networth

// DashboardOptions selects what the net worth includes.
type DashboardOptions struct {
	IncludePending      bool `json:"include_pending" toml:"include_pending"`
	IncludeCardExpenses bool `json:"include_card_expenses" toml:"include_card_expenses"`
	IncludeRealEstate   bool `json:"include_real_estate" toml:"include_real_estate"`
	IncludeResidences   bool `json:"include_residences" toml:"include_residences"`
}

// DefaultDashboardOptions includes pending flows and non-residence real estate.
func DefaultDashboardOptions() DashboardOptions {
	return DashboardOptions{
		IncludePending:      true,
		IncludeCardExpenses: false,
		IncludeRealEstate:   true,
		IncludeResidences:   false,
	}
}

// TotalAssets sums the asset distribution of the positions and the pending flows, real estate aside.
func TotalAssets(positions *EntitiesPosition, target string, rates ExchangeRates, pendingFlows []PendingFlow) Decimal {
	if positions == nil {
		return Zero()
	}
	total := Zero()
	for _, item := range AssetDistribution(positions, target, rates, pendingFlows, nil) {
		total = total.Add(item.Value)
	}
	return total
}

// TotalCardUsed sums the used balance of every card in target currency.
func TotalCardUsed(positions *EntitiesPosition, target string, rates ExchangeRates) Decimal {
	total := Zero()
	if positions == nil {
		return total
	}
	for _, key := range positions.Keys() {
		total = total.Add(sumEntries(positions.Positions[key].Products.Cards.Entries, target, rates))
	}
	return total
}

// TotalLiabilities sums loans principal outstanding and card used balances in target currency.
func TotalLiabilities(positions *EntitiesPosition, target string, rates ExchangeRates) Decimal {
	total := Zero()
	if positions == nil {
		return total
	}
	for _, key := range positions.Keys() {
		p := positions.Positions[key].Products
		total = total.Add(sumEntries(p.Loans.Entries, target, rates))
		total = total.Add(sumEntries(p.Cards.Entries, target, rates))
	}
	return total
}

// TotalNetWorth is the total assets, plus the owned real estate equity, minus
// the cards used balance, as selected by opts.
//
// Loans are not subtracted: real estate loans are already netted in the equity.
func TotalNetWorth(positions *EntitiesPosition, target string, rates ExchangeRates, pendingFlows []PendingFlow, realEstate []RealEstate, opts DashboardOptions) Decimal {
	var flows []PendingFlow
	if opts.IncludePending {
		flows = pendingFlows
	}
	total := TotalAssets(positions, target, rates, flows)
	if opts.IncludeRealEstate {
		total = total.Add(RealEstateEquityTotal(FilterRealEstateByOptions(realEstate, opts), target, rates))
	}
	if opts.IncludeCardExpenses {
		total = total.Sub(TotalCardUsed(positions, target, rates))
	}
	return total
}
