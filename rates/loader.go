package rates

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/etnz/networth"
	"github.com/etnz/networth/internal/common"
	"golang.org/x/sync/errgroup"
)

const DefaultCacheTTL = 5 * time.Minute

// SupportedCurrencies are the bases of the fiat matrix.
var SupportedCurrencies = []string{"EUR", "USD"}

// BaseCryptoSymbols are always priced, whatever the positions hold.
var BaseCryptoSymbols = []string{"BTC", "ETH", "LTC", "TRX", "BNB", "USDT", "USDC"}

var commodities = []networth.CommodityType{networth.Gold, networth.Silver, networth.Platinum, networth.Palladium}

// MatrixSource fetches the fiat rates of several bases.
type MatrixSource interface {
	Matrix(ctx context.Context, bases []string) (networth.ExchangeRates, error)
}

// Loader builds complete rate tables. It implements Fetcher.
//
// The fiat matrix is fetched again when asked for a full refresh, when none is
// known or when it is older than CacheTTL. Commodity and crypto prices are
// fetched on every call and applied on top of it. Every table built is saved
// to Storage.
type Loader struct {
	Fiat        MatrixSource
	Commodities PriceSource // optional
	Crypto      PriceSource // optional
	Currencies  []string
	CryptoKeys  []string
	Timeout     time.Duration
	CacheTTL    time.Duration
	Storage     Storage // optional
	Logger      *common.Logger

	mu        sync.Mutex
	loaded    bool
	matrix    networth.ExchangeRates
	fetchedAt time.Time
	clock     func() time.Time
}

func (l *Loader) now() time.Time {
	if l.clock != nil {
		return l.clock()
	}
	return time.Now()
}

func (l *Loader) logger() *common.Logger {
	if l.Logger == nil {
		return common.NewSilentLogger()
	}
	return l.Logger
}

// Fetch returns a new table. It fails only when no fiat matrix is available.
func (l *Loader) Fetch(ctx context.Context, full bool) (networth.ExchangeRates, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	log := l.logger()

	timeout := l.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	l.restore()

	bases := l.Currencies
	if len(bases) == 0 {
		bases = SupportedCurrencies
	}
	ttl := l.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	matrix := l.matrix.Clone()
	if full || l.matrix == nil || l.now().Sub(l.fetchedAt) >= ttl {
		fresh, err := l.Fiat.Matrix(ctx, bases)
		switch {
		case fresh.Len() > 0:
			matrix = matrix.Merge(fresh)
			l.fetchedAt = l.now()
			if err != nil {
				log.Warn().Err(err).Msg("fiat rates partially refreshed")
			}
		case l.matrix == nil:
			if err == nil {
				err = ErrEmptyTable
			}
			return nil, err
		default:
			log.Warn().Err(err).Msg("fiat rates refresh failed, keeping previous matrix")
		}
	}

	commodityPrices, cryptoPrices, err := l.prices(ctx, bases)
	if err != nil {
		log.Warn().Err(err).Msg("prices partially fetched")
	}
	ApplyCommodityPrices(matrix, commodityPrices)
	ApplyCryptoPrices(matrix, cryptoPrices)

	l.matrix = matrix
	if l.Storage != nil {
		if err := l.Storage.Save(matrix, l.now()); err != nil {
			log.Warn().Err(err).Msg("cannot save rates")
		}
	}
	log.Debug().Int("rates", matrix.Len()).Msg("rates loaded")
	return matrix.Clone(), nil
}

// restore reads the stored table once. A stored table counts as a fiat matrix
// fetched at its save time.
func (l *Loader) restore() {
	if l.loaded {
		return
	}
	l.loaded = true
	if l.Storage == nil {
		return
	}
	stored, at, err := l.Storage.Load()
	if err != nil {
		l.logger().Warn().Err(err).Msg("cannot load stored rates")
		return
	}
	if stored.Len() > 0 {
		l.matrix, l.fetchedAt = stored, at
	}
}

// prices fetches commodity and crypto prices concurrently. Failed prices are
// logged and skipped. It stops early when ctx ends, returning the prices
// fetched so far with the context error.
func (l *Loader) prices(ctx context.Context, bases []string) (map[string]Price, map[string]map[string]Price, error) {
	log := l.logger()
	commodityPrices := make(map[string]Price)
	cryptoPrices := make(map[string]map[string]Price)

	g, gctx := errgroup.WithContext(ctx)
	if l.Commodities != nil {
		g.Go(func() error {
			for _, c := range commodities {
				if err := gctx.Err(); err != nil {
					return err
				}
				symbol := networth.CommoditySymbol(c)
				p, err := l.Commodities.Price(gctx, symbol, bases[0])
				if err != nil {
					log.Warn().Err(err).Str("symbol", symbol).Msg("commodity price unavailable")
					continue
				}
				commodityPrices[symbol] = p
			}
			return nil
		})
	}
	if l.Crypto != nil {
		keys := l.CryptoKeys
		if len(keys) == 0 {
			keys = BaseCryptoSymbols
		}
		g.Go(func() error {
			for _, base := range bases {
				if err := gctx.Err(); err != nil {
					return err
				}
				byKey := make(map[string]Price)
				for _, key := range keys {
					p, err := l.Crypto.Price(gctx, strings.TrimPrefix(key, "addr:"), base)
					if err != nil {
						log.Debug().Err(err).Str("key", key).Str("base", base).Msg("crypto price unavailable")
						continue
					}
					byKey[key] = p
				}
				cryptoPrices[base] = byKey
			}
			return nil
		})
	}
	err := g.Wait()
	return commodityPrices, cryptoPrices, err
}
