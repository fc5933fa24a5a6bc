package wallet

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"lending/core"
	"lending/pkg/number"

	"github.com/fox-one/mixin-sdk-go"
	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

// New new wallet service
func New(wallet *core.Wallet) core.WalletService {
	return &walletService{
		wallet: wallet,
	}
}

type walletService struct {
	wallet *core.Wallet
}

func (s *walletService) HandleTransfer(ctx context.Context, transfer *core.Transfer) (string, error) {
	input := &mixin.TransferInput{
		AssetID:    transfer.AssetID,
		OpponentID: transfer.To,
		Amount:     number.FromUnits(transfer.Amount),
		TraceID:    transfer.TraceID,
		Memo:       transfer.Memo,
	}

	snapshot, err := s.wallet.Client.Transfer(ctx, input, s.wallet.Pin)
	if err != nil {
		return "", err
	}

	return snapshot.SnapshotID, nil
}

func (s *walletService) VerifyPayment(ctx context.Context, transfer *core.Transfer) (bool, error) {
	log := logger.FromContext(ctx).WithField("trace", transfer.TraceID)

	payment, err := s.wallet.Client.VerifyPayment(ctx, mixin.TransferInput{
		AssetID:    transfer.AssetID,
		OpponentID: transfer.To,
		Amount:     number.FromUnits(transfer.Amount),
		TraceID:    transfer.TraceID,
		Memo:       transfer.Memo,
	})
	if err != nil {
		log.WithError(err).Errorln("VerifyPayment")
		return false, err
	}

	return payment.Status == "paid", nil
}

// PaySchemaURL build pay schema url
func (s *walletService) PaySchemaURL(amount decimal.Decimal, asset, recipient, trace, memo string) (string, error) {
	if amount.LessThanOrEqual(decimal.Zero) || asset == "" || recipient == "" || trace == "" {
		return "", errors.New("invalid paramaters")
	}

	return fmt.Sprintf("mixin://pay?amount=%s&asset=%s&recipient=%s&trace=%s&memo=%s",
		amount.String(), asset, recipient, trace, url.QueryEscape(memo)), nil
}
