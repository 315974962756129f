package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/etnz/networth"
	"github.com/etnz/networth/renderer"
	"github.com/google/subcommands"
)

// dashboardFlags are the dashboard options a command can override.
type dashboardFlags struct {
	opts networth.DashboardOptions
}

func (d *dashboardFlags) SetFlags(f *flag.FlagSet) {
	def := networth.DefaultDashboardOptions()
	f.BoolVar(&d.opts.IncludePending, "pending", def.IncludePending, "Count the pending flows")
	f.BoolVar(&d.opts.IncludeCardExpenses, "cards", def.IncludeCardExpenses, "Subtract the used amount of cards")
	f.BoolVar(&d.opts.IncludeRealEstate, "real-estate", def.IncludeRealEstate, "Count the real estate equity")
	f.BoolVar(&d.opts.IncludeResidences, "residences", def.IncludeResidences, "Count residences in the real estate equity")
}

// options returns base with the flags explicitly set on f.
func (d *dashboardFlags) options(f *flag.FlagSet, base networth.DashboardOptions) networth.DashboardOptions {
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "pending":
			base.IncludePending = d.opts.IncludePending
		case "cards":
			base.IncludeCardExpenses = d.opts.IncludeCardExpenses
		case "real-estate":
			base.IncludeRealEstate = d.opts.IncludeRealEstate
		case "residences":
			base.IncludeResidences = d.opts.IncludeResidences
		}
	})
	return base
}

// dashboard loads everything and computes the dashboard.
func (d *dashboardFlags) dashboard(ctx context.Context, f *flag.FlagSet) (*networth.Dashboard, networth.ExchangeRates, error) {
	a, err := loadApp()
	if err != nil {
		return nil, nil, err
	}
	s, err := a.snapshot()
	if err != nil {
		return nil, nil, err
	}
	table := a.rates(ctx, s, false)
	opts := d.options(f, a.config.Dashboard)
	return networth.NewDashboard(s, a.config.Currency, table, opts), table, nil
}

type networthCmd struct {
	dashboardFlags
	full    bool
	jsonOut bool
}

func (*networthCmd) Name() string     { return "networth" }
func (*networthCmd) Synopsis() string { return "display the net worth" }
func (*networthCmd) Usage() string {
	return `nw networth [-full] [-json] [-pending] [-cards] [-real-estate] [-residences]

  Displays the net worth and its totals in the target currency.
`
}

func (c *networthCmd) SetFlags(f *flag.FlagSet) {
	c.dashboardFlags.SetFlags(f)
	f.BoolVar(&c.full, "full", false, "Also display the distributions and the ongoing projects")
	f.BoolVar(&c.jsonOut, "json", false, "Print the dashboard as JSON")
}

func (c *networthCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	d, _, err := c.dashboard(ctx, f)
	if err != nil {
		return fail("Error computing the net worth: %v", err)
	}
	switch {
	case c.jsonOut:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return fail("Error encoding the dashboard: %v", err)
		}
	case c.full:
		printMarkdown(renderer.DashboardMarkdown(d))
	default:
		printMarkdown(renderer.NetWorthMarkdown(d))
	}
	return subcommands.ExitSuccess
}

type distributionCmd struct{ dashboardFlags }

func (*distributionCmd) Name() string     { return "distribution" }
func (*distributionCmd) Synopsis() string { return "display the assets per type" }
func (*distributionCmd) Usage() string {
	return `nw distribution [-pending] [-real-estate] [-residences]

  Displays the value and share of each asset type, largest first.
`
}

func (c *distributionCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	d, _, err := c.dashboard(ctx, f)
	if err != nil {
		return fail("Error computing the distribution: %v", err)
	}
	printMarkdown(renderer.AssetDistributionMarkdown(d.AssetDistribution, d.Currency))
	return subcommands.ExitSuccess
}

type entitiesCmd struct{ dashboardFlags }

func (*entitiesCmd) Name() string     { return "entities" }
func (*entitiesCmd) Synopsis() string { return "display the assets per institution" }
func (*entitiesCmd) Usage() string {
	return `nw entities [-real-estate] [-residences]

  Displays the value and share held at each institution, largest first.
  Commodities and real estate are shown as their own entities.
`
}

func (c *entitiesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	d, _, err := c.dashboard(ctx, f)
	if err != nil {
		return fail("Error computing the entity distribution: %v", err)
	}
	printMarkdown(renderer.EntityDistributionMarkdown(d.EntityDistribution, d.Currency))
	return subcommands.ExitSuccess
}

type projectsCmd struct {
	dashboardFlags
	within int
}

func (*projectsCmd) Name() string     { return "projects" }
func (*projectsCmd) Synopsis() string { return "display the ongoing projects by maturity" }
func (*projectsCmd) Usage() string {
	return `nw projects [-within <days>]

  Displays deposits, real estate crowdfunding and factoring projects,
  the closest maturity first. Late projects are flagged.
`
}

func (c *projectsCmd) SetFlags(f *flag.FlagSet) {
	c.dashboardFlags.SetFlags(f)
	f.IntVar(&c.within, "within", 0, "Only list projects maturing within that many days (0 lists all)")
}

func (c *projectsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	d, _, err := c.dashboard(ctx, f)
	if err != nil {
		return fail("Error computing the projects: %v", err)
	}
	printMarkdown(renderer.ProjectsMarkdown(networth.DueWithin(d.Projects, d.On, c.within), d.On, d.Currency))
	return subcommands.ExitSuccess
}
