// Package cmd implements the nw command line application.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/networth"
	"github.com/etnz/networth/internal/common"
	"github.com/etnz/networth/rates"
	"github.com/google/subcommands"
)

// Commands lists the nw subcommands.
var Commands = []subcommands.Command{
	&networthCmd{},
	&distributionCmd{},
	&entitiesCmd{},
	&projectsCmd{},
	&draftsCmd{},
	&accountCmd{},
	&depositCmd{},
	&deleteCmd{},
	&ratesCmd{},
	&topicCmd{},
	&assistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile   = flag.String("config", "nw.toml", "Path to the TOML configuration file")
	snapshotFile = flag.String("snapshot", "snapshot.json", "Path to the positions snapshot (JSON)")
	draftsFile   = flag.String("drafts", "drafts.json", "Path to the manual drafts file (JSON)")
	currencyFlag = flag.String("currency", "", "Target currency, overrides the configuration")
	offline      = flag.Bool("offline", false, "Do not fetch exchange rates, use the stored and snapshot ones")
	plain        = flag.Bool("plain", false, "Print raw markdown instead of rendering it")
)

// app holds the configuration shared by the commands.
type app struct {
	config *common.Config
	logger *common.Logger
}

func loadApp() (*app, error) {
	cfg, err := common.LoadConfig(*configFile)
	if err != nil {
		return nil, err
	}
	if *currencyFlag != "" {
		cfg.Currency = strings.ToUpper(*currencyFlag)
	}
	logger := common.NewLogger(cfg.Logging.Level)
	networth.SetLogger(logger.Logger)
	return &app{config: cfg, logger: logger}, nil
}

// snapshot decodes the snapshot with the drafts applied.
func (a *app) snapshot() (*networth.Snapshot, error) {
	s, err := networth.DecodeSnapshotFile(*snapshotFile)
	if err != nil {
		return nil, err
	}
	d, err := networth.DecodeDraftsFile(*draftsFile)
	if err != nil {
		return nil, err
	}
	s.Positions = *d.Apply(&s.Positions)
	return s, nil
}

// storage is where the last good rate table is kept.
func (a *app) storage() *rates.FileStorage {
	return &rates.FileStorage{Path: a.config.Rates.StoragePath}
}

// initialRates is the table available without any network access: the
// default table, the stored one and the snapshot's, in increasing priority.
func (a *app) initialRates(s *networth.Snapshot) networth.ExchangeRates {
	stored, _, err := a.storage().Load()
	if err != nil {
		a.logger.Warn().Err(err).Msg("ignoring stored rates")
	}
	return networth.DefaultExchangeRates().Merge(stored).Merge(s.Rates)
}

// provider builds the rates provider from the configuration.
func (a *app) provider(s *networth.Snapshot) *rates.Provider {
	cfg := a.config.Rates
	client := rates.NewClient(
		rates.WithLogger(a.logger),
		rates.WithRateLimit(cfg.RequestsPerSecond),
		rates.WithTimeout(cfg.GetTimeout()),
	)

	currencies := make([]string, 0, len(cfg.Currencies)+1)
	for _, c := range append(cfg.Currencies, a.config.Currency) {
		c = strings.ToUpper(c)
		if c != "" && !slices.Contains(currencies, c) {
			currencies = append(currencies, c)
		}
	}

	loader := &rates.Loader{
		Fiat:       rates.NewFiatSource(cfg.BaseURL, client),
		Currencies: currencies,
		CryptoKeys: rates.CryptoKeys(&s.Positions, cfg.CryptoSymbols...),
		Timeout:    cfg.GetTimeout(),
		CacheTTL:   cfg.GetCacheTTL(),
		Storage:    a.storage(),
		Logger:     a.logger,
	}
	if cfg.CommodityURL != "" {
		loader.Commodities = &rates.JSONPriceSource{URL: cfg.CommodityURL, PricePath: cfg.CommodityPath, Client: client}
	}
	if cfg.CryptoURL != "" {
		loader.Crypto = &rates.JSONPriceSource{URL: cfg.CryptoURL, PricePath: cfg.CryptoPath, Client: client}
	}
	return rates.NewProvider(loader,
		rates.WithInitialRates(a.initialRates(s)),
		rates.WithProviderLogger(a.logger),
	)
}

// rates returns the table to value s with. Fetch failures are logged and the
// previous table is used instead.
func (a *app) rates(ctx context.Context, s *networth.Snapshot, full bool) networth.ExchangeRates {
	if *offline {
		return a.initialRates(s)
	}
	table, err := a.provider(s).Refresh(ctx, full)
	if err != nil {
		a.logger.Warn().Err(err).Msg("exchange rates not refreshed, using previous ones")
	}
	return s.Rates.Merge(table)
}

// printMarkdown renders md for the terminal, unless -plain is set.
func printMarkdown(md string) {
	if *plain {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		if out, err := r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Print(md)
}

func fail(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	return subcommands.ExitFailure
}
