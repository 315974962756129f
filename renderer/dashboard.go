// Package renderer turns networth read models into markdown.
package renderer

import (
	"bytes"
	"fmt"
	"io"

	"github.com/etnz/networth"
	md "github.com/nao1215/markdown"
)

// DashboardMarkdown renders the full dashboard: totals, both distributions and
// the ongoing projects. Empty sections are skipped.
func DashboardMarkdown(d *networth.Dashboard) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Net worth on %s", d.On))
	doc.PlainText(fmt.Sprintf("**%s**", formatMoney(d.NetWorth, d.Currency)))
	doc.Table(totalsTable(d))
	doc.Build()

	ConditionalBlock(&buf, func(w io.Writer) bool {
		io.WriteString(w, "\n"+AssetDistributionMarkdown(d.AssetDistribution, d.Currency))
		return len(d.AssetDistribution) > 0
	})
	ConditionalBlock(&buf, func(w io.Writer) bool {
		io.WriteString(w, "\n"+EntityDistributionMarkdown(d.EntityDistribution, d.Currency))
		return len(d.EntityDistribution) > 0
	})
	ConditionalBlock(&buf, func(w io.Writer) bool {
		io.WriteString(w, "\n"+ProjectsMarkdown(d.Projects, d.On, d.Currency))
		return len(d.Projects) > 0
	})
	return buf.String()
}

// NetWorthMarkdown renders only the totals of the dashboard.
func NetWorthMarkdown(d *networth.Dashboard) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Net worth on %s", d.On))
	doc.Table(totalsTable(d))
	return doc.String()
}

func totalsTable(d *networth.Dashboard) md.TableSet {
	rows := [][]string{
		{"Net worth", formatMoney(d.NetWorth, d.Currency)},
		{"Assets", formatMoney(d.Assets, d.Currency)},
		{"Liabilities", formatMoney(d.Liabilities, d.Currency)},
	}
	if d.Options.IncludeCardExpenses {
		rows = append(rows, []string{"Cards used", formatMoney(d.CardsUsed, d.Currency)})
	}
	if d.Options.IncludePending {
		rows = append(rows, []string{"Pending flows", formatMoney(d.PendingFlows, d.Currency)})
	}
	if d.Options.IncludeRealEstate {
		rows = append(rows,
			[]string{"Real estate equity", formatMoney(d.RealEstateEquity, d.Currency)},
			[]string{"Real estate initial investment", formatMoney(d.RealEstateInitialInvestment, d.Currency)},
		)
	}
	return md.TableSet{Header: []string{"Total", "Value"}, Rows: rows}
}
