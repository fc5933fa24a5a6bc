package valuation

import (
	"context"
	"errors"
	"lending/core"
	"lending/pkg/loan"
	"time"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// ErrUnknownSymbol no price symbol configured for the collateral type
var ErrUnknownSymbol = errors.New("no price symbol for collateral type")

// OracleConfig price feed valuation config
type OracleConfig struct {
	// collateral type name => feed symbol
	Symbols map[string]string `json:"symbols"`
	TTL     time.Duration     `json:"ttl"`
}

type oracle struct {
	prices  core.PriceOracleService
	symbols map[core.CollateralType]string
	cache   gcache.Cache
	sf      *singleflight.Group
}

// Oracle values collateral with the price feed, prices are cached for cfg.TTL
func Oracle(prices core.PriceOracleService, cfg OracleConfig) (core.ValuationProvider, error) {
	symbols := make(map[core.CollateralType]string, len(cfg.Symbols))
	for name, symbol := range cfg.Symbols {
		typ, err := core.ParseCollateralType(name)
		if err != nil {
			return nil, err
		}

		symbols[typ] = symbol
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Minute
	}

	return &oracle{
		prices:  prices,
		symbols: symbols,
		cache:   gcache.New(64).LRU().Expiration(ttl).Build(),
		sf:      &singleflight.Group{},
	}, nil
}

func (o *oracle) Valuation(ctx context.Context, position *core.Position) (uint64, error) {
	symbol, ok := o.symbols[position.CollateralType]
	if !ok {
		return 0, ErrUnknownSymbol
	}

	price, err := o.price(ctx, symbol)
	if err != nil {
		return 0, err
	}

	return loan.Uint64(price.Mul(loan.Decimal(position.CollateralAmount)))
}

func (o *oracle) price(ctx context.Context, symbol string) (decimal.Decimal, error) {
	if v, err := o.cache.Get(symbol); err == nil {
		return v.(decimal.Decimal), nil
	}

	v, err, _ := o.sf.Do(symbol, func() (interface{}, error) {
		ticker, err := o.prices.PullPriceTicker(ctx, symbol)
		if err != nil {
			logger.FromContext(ctx).WithError(err).Errorln("PullPriceTicker", symbol)
			return nil, err
		}

		_ = o.cache.Set(symbol, ticker.Price)
		return ticker.Price, nil
	})
	if err != nil {
		return decimal.Zero, err
	}

	return v.(decimal.Decimal), nil
}
