package oracle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lending/core"
	"lending/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
)

// ErrInvalidPrice the feed returned a non positive price
var ErrInvalidPrice = errors.New("invalid price")

// Config price feed config
type Config struct {
	Endpoint string `json:"endpoint"`
}

type priceService struct {
	endpoint string
}

// New new price feed service
func New(cfg Config) core.PriceOracleService {
	return &priceService{
		endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
	}
}

// PullPriceTicker pull the latest ticker of symbol
func (s *priceService) PullPriceTicker(ctx context.Context, symbol string) (*core.PriceTicker, error) {
	url := fmt.Sprintf("%s/api/v2/tickers/%s", s.endpoint, symbol)

	var ticker core.PriceTicker
	if err := resthttp.Get(ctx, url, &ticker); err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("pull price ticker", symbol)
		return nil, err
	}

	if !ticker.Price.IsPositive() {
		return nil, ErrInvalidPrice
	}

	if ticker.Symbol == "" {
		ticker.Symbol = symbol
	}

	return &ticker, nil
}
