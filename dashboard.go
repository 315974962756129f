package networth

import "github.com/etnz/networth/date"

// Dashboard gathers the aggregates of a snapshot in one currency.
type Dashboard struct {
	Currency string           `json:"currency"`
	On       date.Date        `json:"on"`
	Options  DashboardOptions `json:"options"`

	NetWorth                    Decimal `json:"net_worth"`
	Assets                      Decimal `json:"assets"`
	Liabilities                 Decimal `json:"liabilities"`
	CardsUsed                   Decimal `json:"cards_used"`
	PendingFlows                Decimal `json:"pending_flows"`
	RealEstateEquity            Decimal `json:"real_estate_equity"`
	RealEstateInitialInvestment Decimal `json:"real_estate_initial_investment"`

	AssetDistribution  []AssetDistributionItem  `json:"asset_distribution"`
	EntityDistribution []EntityDistributionItem `json:"entity_distribution"`
	Projects           []OngoingProject         `json:"projects"`
}

// NewDashboard computes the dashboard of the snapshot s.
func NewDashboard(s *Snapshot, target string, rates ExchangeRates, opts DashboardOptions) *Dashboard {
	today := now()
	realEstate := FilterRealEstateByOptions(s.RealEstate, opts)
	var flows []PendingFlow
	if opts.IncludePending {
		flows = s.PendingFlows
	}
	return &Dashboard{
		Currency: target,
		On:       today,
		Options:  opts,

		NetWorth:                    TotalNetWorth(&s.Positions, target, rates, s.PendingFlows, s.RealEstate, opts),
		Assets:                      TotalAssets(&s.Positions, target, rates, flows),
		Liabilities:                 TotalLiabilities(&s.Positions, target, rates),
		CardsUsed:                   TotalCardUsed(&s.Positions, target, rates),
		PendingFlows:                PendingFlowsTotal(s.PendingFlows, target, rates, today),
		RealEstateEquity:            RealEstateEquityTotal(realEstate, target, rates),
		RealEstateInitialInvestment: RealEstateInitialInvestmentTotal(realEstate, target, rates),

		AssetDistribution:  AssetDistribution(&s.Positions, target, rates, flows, realEstate),
		EntityDistribution: EntityDistribution(&s.Positions, target, rates, realEstate),
		Projects:           OngoingProjects(&s.Positions, target, rates, today),
	}
}

// Money returns v as a MonetaryEntry in the dashboard currency.
func (d *Dashboard) Money(v Decimal) MonetaryEntry { return Money(v, d.Currency) }
