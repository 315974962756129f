// Package rates keeps an exchange rate table fresh.
//
// A Provider serves the current table and refreshes it through a Fetcher, at
// most one fetch at a time. The Loader is the production Fetcher: it combines
// a fiat matrix (FiatSource) with commodity and crypto prices (PriceSource)
// and persists the last good table (FileStorage).
package rates

import (
	"context"
	"errors"
	"sync"

	"github.com/etnz/networth"
	"github.com/etnz/networth/internal/common"
)

// ErrEmptyTable is returned when a fetch produced no rate at all.
var ErrEmptyTable = errors.New("empty exchange rate table")

// Fetcher builds a complete rate table. full asks to bypass any cache.
type Fetcher interface {
	Fetch(ctx context.Context, full bool) (networth.ExchangeRates, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, full bool) (networth.ExchangeRates, error)

func (f FetcherFunc) Fetch(ctx context.Context, full bool) (networth.ExchangeRates, error) {
	return f(ctx, full)
}

// State is the refresh state of a Provider.
type State int

const (
	Idle State = iota
	Refreshing
	Ready
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Refreshing:
		return "refreshing"
	case Ready:
		return "ready"
	}
	return "unknown"
}

// Provider serves a rate table with stale-while-revalidate semantics.
//
// The table is never replaced by a failed or empty fetch. Readers always get a
// private copy.
type Provider struct {
	fetcher Fetcher
	logger  *common.Logger

	mu       sync.Mutex
	state    State
	rates    networth.ExchangeRates
	err      error
	inflight *refresh
}

type refresh struct {
	done chan struct{}
	err  error
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithProviderLogger sets the logger.
func WithProviderLogger(logger *common.Logger) ProviderOption {
	return func(p *Provider) {
		p.logger = logger
	}
}

// WithInitialRates replaces the default table served before the first success.
func WithInitialRates(rates networth.ExchangeRates) ProviderOption {
	return func(p *Provider) {
		if rates.Len() > 0 {
			p.rates = rates.Clone()
		}
	}
}

// NewProvider returns an idle Provider serving networth.DefaultExchangeRates.
func NewProvider(f Fetcher, opts ...ProviderOption) *Provider {
	p := &Provider{
		fetcher: f,
		logger:  common.NewSilentLogger(),
		rates:   networth.DefaultExchangeRates(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Rates returns a copy of the current table.
func (p *Provider) Rates() networth.ExchangeRates {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rates.Clone()
}

// Err returns the error of the last completed refresh, nil after a success.
func (p *Provider) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// State returns the refresh state.
func (p *Provider) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Loading reports whether a refresh is in flight.
func (p *Provider) Loading() bool { return p.State() == Refreshing }

// Refresh fetches a new table, or joins the refresh already in flight, and
// returns the resulting table with the refresh error.
//
// The fetch is detached from ctx: cancelling ctx only stops waiting, and then
// the current table is returned with ctx.Err().
func (p *Provider) Refresh(ctx context.Context, full bool) (networth.ExchangeRates, error) {
	p.mu.Lock()
	r := p.inflight
	if r == nil {
		r = &refresh{done: make(chan struct{})}
		p.inflight = r
		p.state = Refreshing
		go p.run(context.WithoutCancel(ctx), full, r)
	}
	p.mu.Unlock()

	select {
	case <-r.done:
		return p.Rates(), r.err
	case <-ctx.Done():
		return p.Rates(), ctx.Err()
	}
}

func (p *Provider) run(ctx context.Context, full bool, r *refresh) {
	table, err := p.fetcher.Fetch(ctx, full)
	if err == nil && table.Len() == 0 {
		err = ErrEmptyTable
	}

	p.mu.Lock()
	if err != nil {
		p.logger.Warn().Err(err).Msg("rates refresh failed, keeping previous table")
	} else {
		p.rates = table.Clone()
		p.logger.Debug().Int("rates", table.Len()).Msg("rates refreshed")
	}
	p.err = err
	p.state = Ready
	p.inflight = nil
	r.err = err
	p.mu.Unlock()
	close(r.done)
}
