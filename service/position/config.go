package position

import (
	"lending/pkg/loan"
)

const (
	// RemainderToOwner liquidation remainder goes back to the borrower
	RemainderToOwner = "owner"
	// RemainderToTreasury liquidation remainder goes to the protocol treasury
	RemainderToTreasury = "treasury"
	// RemainderToLiquidator the liquidator receives the whole collateral
	RemainderToLiquidator = "liquidator"
)

// Config engine config
type Config struct {
	CollateralAsset string
	LoanAsset       string
	// custody account of collateral and repayments
	Custodian     string
	MintAuthority string
	Treasury      string

	LTV loan.LTVTable
	// protocol fee on issued loans, 100 = 1%
	ProtocolFeeBps uint64
	// liquidate when valuation * 100 < debt * threshold
	LiquidationThreshold     uint64
	LiquidationRewardPercent uint64
	RemainderRecipient       string
	AllowSelfLiquidation     bool
	// grace period applied by the api when a request leaves it out
	DefaultGracePeriod int64
}

// DefaultConfig default engine config
func DefaultConfig() Config {
	return Config{
		LTV:                      loan.DefaultLTV(),
		ProtocolFeeBps:           100,
		LiquidationThreshold:     120,
		LiquidationRewardPercent: 5,
		RemainderRecipient:       RemainderToOwner,
		DefaultGracePeriod:       24 * 60 * 60,
	}
}

func (c Config) remainderRecipient(owner, liquidator string) string {
	switch c.RemainderRecipient {
	case RemainderToTreasury:
		return c.Treasury
	case RemainderToLiquidator:
		return liquidator
	default:
		return owner
	}
}
