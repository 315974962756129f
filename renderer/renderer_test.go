package renderer

import (
	"testing"

	"github.com/etnz/networth"
	"github.com/etnz/networth/date"
	"github.com/stretchr/testify/assert"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// outline parses markdown and returns its headings and the number of table body rows.
func outline(t *testing.T, src string) (headings []string, rows int) {
	t.Helper()
	parser := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser()
	root := parser.Parse(text.NewReader([]byte(src)))
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			headings = append(headings, string(n.Text([]byte(src))))
		case *extast.TableRow:
			rows++
		}
		return ast.WalkContinue, nil
	})
	return headings, rows
}

func dashboard() *networth.Dashboard {
	maturity := date.New(2025, 7, 1)
	return &networth.Dashboard{
		Currency:         "EUR",
		On:               date.New(2025, 6, 1),
		Options:          networth.DefaultDashboardOptions(),
		NetWorth:         networth.D("12345.678"),
		Assets:           networth.D("12345.678"),
		Liabilities:      networth.D(500),
		PendingFlows:     networth.D(60),
		RealEstateEquity: networth.D(0),
		AssetDistribution: []networth.AssetDistributionItem{
			{Type: networth.CashBucket, Value: networth.D(10000), Percentage: networth.D("81")},
			{Type: networth.CryptoBucket, Value: networth.D("2345.678"), Percentage: networth.D("19")},
		},
		EntityDistribution: []networth.EntityDistributionItem{
			{ID: "bank", Name: "My Bank", Value: networth.D(10000), Percentage: networth.D("81")},
			{ID: "wallet", Value: networth.D("2345.678"), Percentage: networth.D("19")},
		},
		Projects: []networth.OngoingProject{{
			Name: "12 months", Type: networth.Deposit, Entity: "My Bank",
			Amount: networth.Money(networth.D(1000), "USD"), Value: networth.D(900),
			ROI: networth.D("0.025"), Maturity: &maturity,
		}},
	}
}

func TestDashboardMarkdown(t *testing.T) {
	out := DashboardMarkdown(dashboard())

	headings, rows := outline(t, out)
	assert.Equal(t, []string{"Net worth on 2025-06-01", "Asset distribution", "Entity distribution", "Ongoing projects"}, headings)
	// 6 totals, 2 assets, 2 entities and 1 project
	assert.Equal(t, 6+2+2+1, rows)

	assert.Contains(t, out, networth.Money(networth.D("12345.678"), "EUR").String())
	assert.Contains(t, out, "Pending flows")
	assert.NotContains(t, out, "Cards used")
	assert.Contains(t, out, "Crypto")
	assert.Contains(t, out, "My Bank")
	assert.Contains(t, out, "wallet", "entities without a name show their id")
	assert.Contains(t, out, "2.50%")
	assert.Contains(t, out, "30d")
}

func TestDashboardMarkdown_SkipsEmptySections(t *testing.T) {
	d := dashboard()
	d.EntityDistribution = nil
	d.Projects = nil

	headings, _ := outline(t, DashboardMarkdown(d))
	assert.Equal(t, []string{"Net worth on 2025-06-01", "Asset distribution"}, headings)
}

func TestNetWorthMarkdown(t *testing.T) {
	d := dashboard()
	d.Options = networth.DashboardOptions{IncludeCardExpenses: true}
	out := NetWorthMarkdown(d)

	_, rows := outline(t, out)
	assert.Equal(t, 4, rows, "net worth, assets, liabilities, cards used")
	assert.Contains(t, out, "Cards used")
	assert.NotContains(t, out, "Real estate")
}

type account struct {
	ID    string
	Total networth.Decimal
}

func (a account) EntryID() string { return a.ID }
func (a account) Valuation() networth.MonetaryEntry {
	return networth.Money(a.Total, "EUR")
}

func TestDraftsMarkdown(t *testing.T) {
	items := []networth.DisplayItem[account, networth.ManualDraft[account]]{
		{Key: "a1", Position: account{ID: "a1", Total: networth.D(10)}, OriginalID: "a1"},
		{Key: "a2", Position: account{ID: "a2", Total: networth.D(20)}, OriginalID: "a2", IsManual: true, IsDirty: true,
			Draft: &networth.ManualDraft[account]{OriginalID: "a2", EntityName: "Bank"}},
		{Key: "local-1", Position: account{Total: networth.D(5)}, IsManual: true, IsNew: true,
			Draft: &networth.ManualDraft[account]{LocalID: "local-1", EntityID: "new"}},
	}
	out := DraftsMarkdown("Accounts", items, []string{"a3"})

	headings, rows := outline(t, out)
	assert.Equal(t, []string{"Accounts"}, headings)
	assert.Equal(t, 3, rows)
	assert.Contains(t, out, "synced")
	assert.Contains(t, out, "manual, edited")
	assert.Contains(t, out, "manual, new")
	assert.Contains(t, out, "Deleted: a3")
}

func TestFormatDays(t *testing.T) {
	assert.Equal(t, "3d late", formatDays(networth.DaysStatus{Days: 3, IsDelayed: true, StatusText: "3d"}))
	assert.Equal(t, "10d (extended)", formatDays(networth.DaysStatus{Days: 10, UsedExtendedMaturity: true, StatusText: "10d"}))
	assert.Equal(t, "-", formatRate(networth.D(0)))
}
