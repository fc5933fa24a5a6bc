package cmd

import (
	"lending/core"
	"lending/service/clock"
	"lending/service/ledger"
	"lending/service/oracle"
	"lending/service/position"
	"lending/service/valuation"
	"lending/service/wallet"
	eventstore "lending/store/event"
	positionstore "lending/store/position"
	transferstore "lending/store/transfer"

	"github.com/fox-one/mixin-sdk-go"
	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
	"github.com/go-redis/redis"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
}

func provideWallet() *core.Wallet {
	c, err := mixin.NewFromKeystore(&cfg.Mixin.Keystore)
	if err != nil {
		panic(err)
	}

	return &core.Wallet{
		Client: c,
		Pin:    cfg.Mixin.Pin,
	}
}

func providePositionConfig() position.Config {
	c, err := cfg.Position()
	if err != nil {
		panic(err)
	}

	return c
}

// ---------------store-----------------------------------------

func providePositionStore(db *db.DB) core.PositionStore {
	return positionstore.New(db)
}

func provideEventStore(db *db.DB) core.EventStore {
	return eventstore.New(db)
}

func provideTransferStore(db *db.DB) core.TransferStore {
	return transferstore.New(db)
}

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

// ------------------service------------------------------------

func provideWalletService(w *core.Wallet) core.WalletService {
	return wallet.New(w)
}

func provideLedger(transfers core.TransferStore, wallets core.WalletService) core.AssetLedger {
	return ledger.New(transfers, wallets)
}

func provideValuation() core.ValuationProvider {
	if !cfg.UseOracle() {
		return valuation.Fixed(cfg.Valuation.Fixed)
	}

	feed, c := cfg.OracleConfig()
	v, err := valuation.Oracle(oracle.New(feed), c)
	if err != nil {
		panic(err)
	}

	return v
}

func providePositionService(
	c position.Config,
	positions core.PositionStore,
	ledger core.AssetLedger,
	valuation core.ValuationProvider,
	clock core.Clock,
	events core.EventSink,
) core.PositionService {
	return position.New(c, positions, ledger, valuation, clock, events)
}

func provideClock() core.Clock {
	return clock.New()
}
