package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/networth"
	"github.com/google/subcommands"
	md "github.com/nao1215/markdown"
)

type ratesCmd struct {
	refresh bool
	keys    string
}

func (*ratesCmd) Name() string     { return "rates" }
func (*ratesCmd) Synopsis() string { return "display the exchange rates" }
func (*ratesCmd) Usage() string {
	return `nw rates [-refresh] [-keys USD,BTC,...]

  Displays the rates of the target currency, refreshing them when they are
  older than the cache TTL, or always with -refresh.
`
}

func (c *ratesCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.refresh, "refresh", false, "Refresh every rate, ignoring the cache")
	f.StringVar(&c.keys, "keys", "", "Comma separated keys to display, all by default")
}

func (c *ratesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := loadApp()
	if err != nil {
		return fail("Error loading configuration: %v", err)
	}
	s, err := a.snapshot()
	if err != nil {
		return fail("Error loading snapshot: %v", err)
	}
	table := a.rates(ctx, s, c.refresh)

	var keys []string
	if c.keys != "" {
		for _, k := range strings.Split(c.keys, ",") {
			keys = append(keys, strings.TrimSpace(k))
		}
	}
	printMarkdown(RatesMarkdown(table, a.config.Currency, keys))
	return subcommands.ExitSuccess
}

// RatesMarkdown renders the rates of target. Empty keys lists them all.
func RatesMarkdown(table networth.ExchangeRates, target string, keys []string) string {
	if len(keys) == 0 {
		for k := range table[target] {
			keys = append(keys, k)
		}
		slices.Sort(keys)
	}

	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Exchange rates of %s", target))

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rate, ok := table.Resolve(target, k)
		if !ok {
			rows = append(rows, []string{k, "-", "-"})
			continue
		}
		unit := networth.D(1).Div(rate)
		rows = append(rows, []string{k, rate.String(), networth.Money(unit, target).String()})
	}
	doc.Table(md.TableSet{Header: []string{"Key", fmt.Sprintf("Per 1 %s", target), fmt.Sprintf("1 unit in %s", target)}, Rows: rows})
	return doc.String()
}
