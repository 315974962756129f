package agent

import (
	"context"
	"testing"

	"github.com/etnz/networth"
	"github.com/etnz/networth/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func dashboard() *networth.Dashboard {
	soon := date.New(2025, 6, 11)
	late := date.New(2025, 5, 1)
	far := date.New(2026, 6, 1)
	return &networth.Dashboard{
		Currency: "EUR",
		On:       date.New(2025, 6, 1),
		Options:  networth.DefaultDashboardOptions(),
		NetWorth: networth.D(1000),
		Assets:   networth.D(1000),
		AssetDistribution: []networth.AssetDistributionItem{
			{Type: networth.CashBucket, Value: networth.D(1000), Percentage: networth.D(100)},
		},
		Projects: []networth.OngoingProject{
			{Name: "late one", Maturity: &late},
			{Name: "soon one", Maturity: &soon},
			{Name: "far one", Maturity: &far},
		},
	}
}

func call(t *testing.T, lib Library, name string, args map[string]any) map[string]any {
	t.Helper()
	resp := lib(context.Background(), &genai.FunctionCall{ID: "1", Name: name, Args: args})
	require.NotNil(t, resp)
	assert.Equal(t, "1", resp.ID)
	assert.Equal(t, name, resp.Name)
	return resp.Response
}

func TestTools(t *testing.T) {
	rates := networth.ExchangeRates{"EUR": {"USD": networth.D(2), "XAU": networth.D("0.0005")}}
	lib := NewLibrary(Tools(dashboard(), rates))

	t.Run("net_worth", func(t *testing.T) {
		out := call(t, lib, "net_worth", nil)
		assert.Contains(t, out["output"], "Net worth on 2025-06-01")
	})

	t.Run("asset_distribution", func(t *testing.T) {
		out := call(t, lib, "asset_distribution", nil)
		assert.Contains(t, out["output"], "Cash")
		assert.Contains(t, out["output"], "100.0%")
	})

	t.Run("projects within", func(t *testing.T) {
		out := call(t, lib, "projects", map[string]any{"within_days": float64(30)})
		assert.Contains(t, out["output"], "late one")
		assert.Contains(t, out["output"], "soon one")
		assert.NotContains(t, out["output"], "far one")
	})

	t.Run("projects bad argument", func(t *testing.T) {
		out := call(t, lib, "projects", map[string]any{"within_days": "soon"})
		assert.Contains(t, out["error"], "not a number")
	})

	t.Run("convert", func(t *testing.T) {
		out := call(t, lib, "convert", map[string]any{"amount": "100", "from": "usd", "to": "eur"})
		assert.Equal(t, networth.Money(networth.D(50), "EUR").String(), out["output"])

		out = call(t, lib, "convert", map[string]any{"amount": float64(1), "from": "XAU", "to": "EUR"})
		assert.Equal(t, networth.Money(networth.D(2000), "EUR").String(), out["output"])

		out = call(t, lib, "convert", map[string]any{"amount": "1", "from": "GBP", "to": "EUR"})
		assert.Equal(t, "no rate from GBP to EUR", out["error"])
	})

	t.Run("unknown", func(t *testing.T) {
		out := call(t, lib, "balance", nil)
		assert.Equal(t, "unknown function balance", out["error"])
	})
}

func TestNewDeclaration(t *testing.T) {
	decls := NewDeclaration(Tools(dashboard(), nil))
	var names []string
	for _, d := range decls {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"net_worth", "asset_distribution", "entity_distribution", "projects", "convert"}, names)
}

func TestExpert_CallErrors(t *testing.T) {
	e := NewMarketWatcher(DefaultModel)

	resp := e.Call(context.Background(), "7", map[string]any{"question": 42})
	assert.Equal(t, "MarketWatcher", resp.Name)
	assert.Contains(t, resp.Response["error"], "invalid question type int")

	resp = e.Call(context.Background(), "8", map[string]any{"question": "gold price?"})
	assert.Contains(t, resp.Response["error"], "not started")
}

func TestNewFacilitator(t *testing.T) {
	analyst := NewAnalyst(DefaultModel, dashboard(), nil)
	a := New(nil, nil, "", analyst, NewMarketWatcher(DefaultModel))

	assert.Equal(t, DefaultModel, a.Facilitator.ModelName)
	decls := a.Facilitator.Config.Tools[0].FunctionDeclarations
	require.Len(t, decls, 2)
	assert.Equal(t, "Analyst", decls[0].Name)

	resp := a.Facilitator.Library(context.Background(), &genai.FunctionCall{Name: "Nobody"})
	assert.Equal(t, "unknown function Nobody", resp.Response["error"])
}
