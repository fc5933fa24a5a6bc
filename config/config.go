package config

import (
	"lending/pkg/loan"
	"lending/service/oracle"
	"lending/service/position"
	"lending/service/valuation"
	"lending/worker/cashier"
	"lending/worker/notifier"

	"github.com/fox-one/mixin-sdk-go"
	configUtil "github.com/fox-one/pkg/config"
	"github.com/fox-one/pkg/store/db"
	"github.com/spf13/cast"
)

// Config lending config
type Config struct {
	DB        db.Config       `json:"db"`
	Redis     Redis           `json:"redis"`
	Mixin     Mixin           `json:"mixin"`
	Engine    Engine          `json:"engine"`
	Valuation Valuation       `json:"valuation"`
	Notifier  notifier.Config `json:"notifier"`
	Cashier   cashier.Config  `json:"cashier"`
}

// Redis redis config
type Redis struct {
	Addr string `json:"addr"`
	DB   int    `json:"db"`
}

// Mixin custody wallet on Mixin Network
type Mixin struct {
	mixin.Keystore
	Pin string `json:"pin"`
}

// Engine position engine config
type Engine struct {
	CollateralAsset string `json:"collateral_asset"`
	LoanAsset       string `json:"loan_asset"`
	// defaults to the mixin client id
	Custodian     string `json:"custodian"`
	MintAuthority string `json:"mint_authority"`
	Treasury      string `json:"treasury"`
	// collateral type name => ltv percent
	LTV                      map[string]uint64 `json:"ltv"`
	ProtocolFeeBps           *uint64           `json:"protocol_fee_bps"`
	LiquidationThreshold     uint64            `json:"liquidation_threshold"`
	LiquidationRewardPercent *uint64           `json:"liquidation_reward_percent"`
	RemainderRecipient       string            `json:"remainder_recipient"`
	AllowSelfLiquidation     bool              `json:"allow_self_liquidation"`
	DefaultGracePeriod       *int64            `json:"default_grace_period"`
}

// Valuation collateral valuation, the oracle is used when an endpoint is set
type Valuation struct {
	Fixed  uint64 `json:"fixed"`
	Oracle struct {
		Endpoint string            `json:"endpoint"`
		Symbols  map[string]string `json:"symbols"`
		TTL      string            `json:"ttl"`
	} `json:"oracle"`
}

// Load load config file
func Load(cfgFile string, cfg *Config) error {
	configUtil.AutomaticLoadEnv("LENDING")
	if cfgFile != "" {
		if err := configUtil.LoadYaml(cfgFile, cfg); err != nil {
			return err
		}
	}

	defaults(cfg)
	return nil
}

func defaults(cfg *Config) {
	if cfg.DB.Dialect == "" {
		cfg.DB.Dialect = "sqlite3"
		cfg.DB.Host = "lending.db"
	}

	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "127.0.0.1:6379"
	}

	if cfg.Engine.Custodian == "" {
		cfg.Engine.Custodian = cfg.Mixin.ClientID
	}

	if cfg.Engine.MintAuthority == "" {
		cfg.Engine.MintAuthority = cfg.Engine.Custodian
	}

	if cfg.Engine.Treasury == "" {
		cfg.Engine.Treasury = cfg.Engine.Custodian
	}

	if cfg.Cashier.Batch <= 0 {
		cfg.Cashier.Batch = 100
	}

	if cfg.Cashier.Capacity <= 0 {
		cfg.Cashier.Capacity = 1
	}
}

// Position engine config with defaults applied
func (c *Config) Position() (position.Config, error) {
	e := c.Engine
	cfg := position.DefaultConfig()
	cfg.CollateralAsset = e.CollateralAsset
	cfg.LoanAsset = e.LoanAsset
	cfg.Custodian = e.Custodian
	cfg.MintAuthority = e.MintAuthority
	cfg.Treasury = e.Treasury
	cfg.AllowSelfLiquidation = e.AllowSelfLiquidation

	if len(e.LTV) > 0 {
		table, err := loan.ParseLTVTable(e.LTV)
		if err != nil {
			return cfg, err
		}

		cfg.LTV = table
	}

	if e.ProtocolFeeBps != nil {
		cfg.ProtocolFeeBps = *e.ProtocolFeeBps
	}

	if e.LiquidationThreshold > 0 {
		cfg.LiquidationThreshold = e.LiquidationThreshold
	}

	if e.LiquidationRewardPercent != nil {
		cfg.LiquidationRewardPercent = *e.LiquidationRewardPercent
	}

	if e.RemainderRecipient != "" {
		cfg.RemainderRecipient = e.RemainderRecipient
	}

	if e.DefaultGracePeriod != nil {
		cfg.DefaultGracePeriod = *e.DefaultGracePeriod
	}

	return cfg, nil
}

// UseOracle check if collateral is valued by the price feed
func (c *Config) UseOracle() bool {
	return c.Valuation.Oracle.Endpoint != ""
}

// OracleConfig price feed config
func (c *Config) OracleConfig() (oracle.Config, valuation.OracleConfig) {
	o := c.Valuation.Oracle
	return oracle.Config{Endpoint: o.Endpoint}, valuation.OracleConfig{
		Symbols: o.Symbols,
		TTL:     cast.ToDuration(o.TTL),
	}
}
