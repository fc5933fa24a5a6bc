package core

import (
	"context"

	"github.com/fox-one/mixin-sdk-go"
	"github.com/shopspring/decimal"
)

// Wallet wallet
type Wallet struct {
	Client *mixin.Client `json:"client"`
	Pin    string        `json:"pin"`
}

// WalletService custody wallet service
type WalletService interface {
	// HandleTransfer send an outgoing transfer, returns the snapshot id
	HandleTransfer(ctx context.Context, transfer *Transfer) (string, error)
	// VerifyPayment check that the incoming transfer was paid
	VerifyPayment(ctx context.Context, transfer *Transfer) (bool, error)
	PaySchemaURL(amount decimal.Decimal, asset, recipient, trace, memo string) (string, error)
}
