package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PriceTicker price ticker
type PriceTicker struct {
	Provider  string          `json:"provider,omitempty"`
	Symbol    string          `json:"symbol,omitempty"`
	Price     decimal.Decimal `json:"price,omitempty"`
	UpdatedAt time.Time       `json:"updated_at,omitempty"`
}

// ValuationProvider collateral valuation, in the same unit as Position.CollateralAmount
type ValuationProvider interface {
	Valuation(ctx context.Context, position *Position) (uint64, error)
}

// PriceOracleService pulls collateral prices from a price feed
type PriceOracleService interface {
	PullPriceTicker(ctx context.Context, symbol string) (*PriceTicker, error)
}

// Clock trusted time source, unix seconds
type Clock interface {
	Now(ctx context.Context) (int64, error)
}
