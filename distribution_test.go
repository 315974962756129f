package networth

import (
	"testing"

	"github.com/etnz/networth/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = date.New(2025, 6, 1)

func TestAssetDistribution_DepositScenario(t *testing.T) {
	positions := snapshotOf(
		deposits("A", DepositEntry{ID: "d1", Amount: D(1000), Currency: "EUR"}),
		deposits("B", DepositEntry{ID: "d2", Amount: D(500), Currency: "USD"}),
	)
	rates := ExchangeRates{"EUR": {"USD": D("1.1")}}

	got := AssetDistribution(positions, "EUR", rates, nil, nil)

	require.Len(t, got, 1)
	assert.Equal(t, DepositBucket, got[0].Type)
	assertDecimal(t, "1454.5", got[0].Value, 1)
	assert.Equal(t, "100", got[0].Percentage.String())
}

func TestAssetDistribution_Buckets(t *testing.T) {
	fixToday(t, today)
	positions := snapshotOf(GlobalPosition{
		Entity: Entity{ID: "bank", Name: "Bank"},
		Products: Products{
			Accounts:     Entries[AccountEntry]{Entries: []AccountEntry{{ID: "a1", Total: D(300), Currency: "EUR"}}},
			Funds:        Entries[FundEntry]{Entries: []FundEntry{{ID: "f1", MarketValue: D(200), Currency: "EUR"}}},
			Stocks:       Entries[StockEntry]{Entries: []StockEntry{{ID: "s1", MarketValue: D(100), Currency: "EUR"}}},
			RealEstateCF: Entries[RealEstateCFEntry]{Entries: []RealEstateCFEntry{{ID: "r1", Amount: D(999), PendingAmount: D(50), Currency: "EUR"}}},
			Crowdlending: &CrowdlendingTotal{Total: D(40)},
			Bonds:        Entries[BondEntry]{Entries: []BondEntry{{ID: "b1", NominalValue: D(30), Currency: "EUR"}}},
			Commodities:  Entries[CommodityEntry]{Entries: []CommodityEntry{{ID: "c1", Type: Gold, Amount: D(1), Unit: TroyOunce, Currency: "EUR"}}},
			Cards:        Entries[CardEntry]{Entries: []CardEntry{{ID: "k1", Used: D(1000), Currency: "EUR"}}},
		},
	})
	rates := ExchangeRates{"EUR": {"XAU": D("0.05")}} // 20 EUR the ounce
	flows := []PendingFlow{{FlowType: Earning, Amount: D(10), Currency: "EUR", Enabled: true}}

	got := AssetDistribution(positions, "EUR", rates, flows, nil)

	var types []AssetType
	values := map[AssetType]string{}
	for _, item := range got {
		types = append(types, item.Type)
		values[item.Type] = item.Value.String()
	}
	assert.Equal(t, []AssetType{CashBucket, FundBucket, StockETFBucket, RealEstateCFBucket, CrowdlendingBucket, BondBucket, CommodityBucket, PendingFlowsBucket}, types)
	assert.Equal(t, "50", values[RealEstateCFBucket], "real estate crowdfunding uses the pending amount")
	assert.Equal(t, "30", values[BondBucket], "bond falls back on the nominal value")
	assert.Equal(t, "20", values[CommodityBucket])
}

func TestAssetDistribution_PercentageSum(t *testing.T) {
	positions := snapshotOf(
		accounts("A", AccountEntry{ID: "a", Total: D(1), Currency: "EUR"}),
		accounts("B", AccountEntry{ID: "b", Total: D(1), Currency: "USD"}),
		deposits("C", DepositEntry{ID: "c", Amount: D(1), Currency: "EUR"}),
		GlobalPosition{Entity: Entity{ID: "D"}, Products: Products{Stocks: Entries[StockEntry]{Entries: []StockEntry{{ID: "s", MarketValue: D(1), Currency: "EUR"}}}}},
	)
	got := AssetDistribution(positions, "EUR", ExchangeRates{"EUR": {"USD": D(3)}}, nil, []RealEstate{property("flat", 1, false)})

	sum := Zero()
	for _, item := range got {
		sum = sum.Add(item.Percentage)
	}
	assert.True(t, sum.Sub(D(100)).Abs().LessThanOrEqual(D("0.1")), "percentages sum to %v", sum)
}

func TestAssetDistribution_PendingFlows(t *testing.T) {
	fixToday(t, today)
	future := ptr(date.New(2025, 7, 1))
	past := ptr(date.New(2025, 5, 1))

	tests := []struct {
		name  string
		flows []PendingFlow
		want  string // "" when no bucket is expected
	}{
		{
			name: "earning minus expense",
			flows: []PendingFlow{
				{FlowType: Earning, Amount: D(100), Currency: "EUR", Enabled: true, Date: future},
				{FlowType: Expense, Amount: D(40), Currency: "EUR", Enabled: true, Date: future},
			},
			want: "60",
		},
		{
			name:  "disabled",
			flows: []PendingFlow{{FlowType: Earning, Amount: D(100), Currency: "EUR", Enabled: false}},
		},
		{
			name: "net negative",
			flows: []PendingFlow{
				{FlowType: Earning, Amount: D(10), Currency: "EUR", Enabled: true},
				{FlowType: Expense, Amount: D(40), Currency: "EUR", Enabled: true},
			},
		},
		{
			name: "past flows are ignored, today counts",
			flows: []PendingFlow{
				{FlowType: Earning, Amount: D(100), Currency: "EUR", Enabled: true, Date: past},
				{FlowType: Earning, Amount: D(5), Currency: "EUR", Enabled: true, Date: ptr(today)},
			},
			want: "5",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AssetDistribution(&EntitiesPosition{}, "EUR", nil, tt.flows, nil)
			if tt.want == "" {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, PendingFlowsBucket, got[0].Type)
			assert.Equal(t, tt.want, got[0].Value.String())
		})
	}
}

func TestAssetDistribution_EquityFloor(t *testing.T) {
	underwater := property("house", 100000, false, 150000)

	got := AssetDistribution(&EntitiesPosition{}, "EUR", nil, nil, []RealEstate{underwater})
	assert.Empty(t, got)

	nw := TotalNetWorth(&EntitiesPosition{}, "EUR", nil, nil, []RealEstate{underwater}, DefaultDashboardOptions())
	assert.True(t, nw.IsZero(), "net worth = %v", nw)

	got = AssetDistribution(&EntitiesPosition{}, "EUR", nil, nil, []RealEstate{property("flat", 200000, false, 150000)})
	require.Len(t, got, 1)
	assert.Equal(t, RealEstateBucket, got[0].Type)
	assert.Equal(t, "50000", got[0].Value.String())
}

func TestAssetDistribution_Empty(t *testing.T) {
	assert.Empty(t, AssetDistribution(nil, "EUR", nil, nil, nil))
	got := AssetDistribution(snapshotOf(accounts("A", AccountEntry{ID: "a", Total: D(-5), Currency: "EUR"})), "EUR", nil, nil, nil)
	assert.Empty(t, got, "negative totals make no bucket")
}

func TestDistribution_NilSnapshot(t *testing.T) {
	flows := []PendingFlow{{FlowType: Earning, Amount: D(100), Currency: "EUR", Enabled: true}}
	realEstate := []RealEstate{property("flat", 200000, false, 150000)}

	assert.Nil(t, AssetDistribution(nil, "EUR", nil, flows, realEstate))
	assert.Nil(t, EntityDistribution(nil, "EUR", nil, realEstate))
	assert.True(t, TotalAssets(nil, "EUR", nil, flows).IsZero())

	assert.NotEmpty(t, AssetDistribution(&EntitiesPosition{}, "EUR", nil, flows, realEstate), "an empty snapshot still shows flows and real estate")
}

func TestAssetDistribution_SortedByValue(t *testing.T) {
	positions := snapshotOf(
		accounts("A", AccountEntry{ID: "a", Total: D(10), Currency: "EUR"}),
		deposits("B", DepositEntry{ID: "d", Amount: D(30), Currency: "EUR"}),
	)
	got := AssetDistribution(positions, "EUR", nil, nil, []RealEstate{property("flat", 20, false)})
	require.Len(t, got, 3)
	assert.Equal(t, DepositBucket, got[0].Type)
	assert.Equal(t, RealEstateBucket, got[1].Type)
	assert.Equal(t, CashBucket, got[2].Type)
	assert.Equal(t, "50", got[0].Percentage.String())
	assert.Equal(t, "33.3", got[1].Percentage.String())
	assert.Equal(t, "16.7", got[2].Percentage.String())
}

func TestEntityDistribution(t *testing.T) {
	positions := &EntitiesPosition{Positions: map[string]GlobalPosition{
		"bank": {
			Entity: Entity{ID: "bank-id", Name: "Bank"},
			Products: Products{
				Accounts:    Entries[AccountEntry]{Entries: []AccountEntry{{ID: "a", Total: D(100), Currency: "EUR"}}},
				Bonds:       Entries[BondEntry]{Entries: []BondEntry{{ID: "b", MarketValue: D(1000), Currency: "EUR"}}},
				Cards:       Entries[CardEntry]{Entries: []CardEntry{{ID: "k", Used: D(1000), Currency: "EUR"}}},
				Commodities: Entries[CommodityEntry]{Entries: []CommodityEntry{{ID: "g", Type: Gold, Unit: TroyOunce, MarketValue: D(25), Currency: "EUR"}}},
			},
		},
		"broker": {
			Products: Products{
				Stocks:       Entries[StockEntry]{Entries: []StockEntry{{ID: "s", MarketValue: D(110), Currency: "USD"}}},
				Crowdlending: &CrowdlendingTotal{Total: D(50), Currency: "EUR"},
				Crypto: Entries[CryptoWallet]{Entries: []CryptoWallet{{ID: "w", Assets: []CryptoAsset{
					{Symbol: "BTC", Amount: D(1), MarketValue: D(20), Currency: "EUR"},
				}}}},
			},
		},
		"empty": {Entity: Entity{ID: "empty", Name: "Empty"}},
	}}
	rates := ExchangeRates{"EUR": {"USD": D("1.1")}}
	realEstate := []RealEstate{property("flat", 500, false, 200)}

	got := EntityDistribution(positions, "EUR", rates, realEstate)

	want := []EntityDistributionItem{
		{ID: "real-estate", Name: "REAL_ESTATE"},
		{ID: "broker", Name: "broker"},
		{ID: "bank-id", Name: "Bank"},
		{ID: "commodity", Name: "COMMODITY"},
	}
	require.Len(t, got, len(want))
	for i, w := range want {
		assert.Equal(t, w.ID, got[i].ID)
		assert.Equal(t, w.Name, got[i].Name)
	}
	assert.Equal(t, "300", got[0].Value.String())
	assert.Equal(t, "170", got[1].Value.String(), "stocks, crowdlending and crypto")
	assert.Equal(t, "100", got[2].Value.String(), "bonds and cards are not attributed")
	assert.Equal(t, "25", got[3].Value.String())
}

func TestEntityDistribution_DuplicateEntityAccumulates(t *testing.T) {
	positions := &EntitiesPosition{Positions: map[string]GlobalPosition{
		"p1": accounts("same", AccountEntry{ID: "a", Total: D(10), Currency: "EUR"}),
		"p2": accounts("same", AccountEntry{ID: "b", Total: D(15), Currency: "EUR"}),
	}}
	got := EntityDistribution(positions, "EUR", nil, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "25", got[0].Value.String())
	assert.Equal(t, "100", got[0].Percentage.String())
}
