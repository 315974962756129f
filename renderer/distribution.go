package renderer

import (
	"bytes"
	"strings"

	"github.com/etnz/networth"
	md "github.com/nao1215/markdown"
)

var assetTypeLabels = map[networth.AssetType]string{
	networth.CashBucket:         "Cash",
	networth.FundBucket:         "Funds",
	networth.StockETFBucket:     "Stocks & ETFs",
	networth.DepositBucket:      "Deposits",
	networth.RealEstateCFBucket: "Real estate crowdfunding",
	networth.FactoringBucket:    "Factoring",
	networth.CryptoBucket:       "Crypto",
	networth.CommodityBucket:    "Commodities",
	networth.CrowdlendingBucket: "Crowdlending",
	networth.BondBucket:         "Bonds",
	networth.DerivativeBucket:   "Derivatives",
	networth.PendingFlowsBucket: "Pending flows",
	networth.RealEstateBucket:   "Real estate",
}

// AssetTypeLabel returns a human label for an asset bucket.
func AssetTypeLabel(t networth.AssetType) string {
	if l, ok := assetTypeLabels[t]; ok {
		return l
	}
	return strings.ReplaceAll(string(t), "_", " ")
}

// AssetDistributionMarkdown renders the asset buckets, largest first.
func AssetDistributionMarkdown(items []networth.AssetDistributionItem, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H2("Asset distribution")

	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{AssetTypeLabel(it.Type), formatMoney(it.Value, currency), formatPercent(it.Percentage)})
	}
	doc.Table(md.TableSet{Header: []string{"Type", "Value", "Share"}, Rows: rows})
	return doc.String()
}

// EntityDistributionMarkdown renders the value held per entity, largest first.
func EntityDistributionMarkdown(items []networth.EntityDistributionItem, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H2("Entity distribution")

	rows := make([][]string, 0, len(items))
	for _, it := range items {
		name := it.Name
		if name == "" {
			name = it.ID
		}
		rows = append(rows, []string{name, formatMoney(it.Value, currency), formatPercent(it.Percentage)})
	}
	doc.Table(md.TableSet{Header: []string{"Entity", "Value", "Share"}, Rows: rows})
	return doc.String()
}
