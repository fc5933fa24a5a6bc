package ledger

import (
	"context"
	"errors"
	"lending/core"

	"github.com/fox-one/pkg/logger"
)

type mixinLedger struct {
	transfers core.TransferStore
	wallets   core.WalletService
}

// New custodial ledger on Mixin Network
//
// Incoming movements must have been paid to the custody wallet with the
// movement's trace id, each payment can back one movement only. Outgoing
// movements and mints are reserved first and only queued for the cashier
// worker on Commit.
func New(transfers core.TransferStore, wallets core.WalletService) core.AssetLedger {
	return &mixinLedger{
		transfers: transfers,
		wallets:   wallets,
	}
}

func (l *mixinLedger) Transfer(ctx context.Context, transfer *core.Transfer) error {
	if transfer.Kind != core.TransferKindIn {
		transfer.Kind = core.TransferKindOut
		return l.enqueue(ctx, transfer)
	}

	log := logger.FromContext(ctx).WithField("trace", transfer.TraceID)

	paid, err := l.wallets.VerifyPayment(ctx, transfer)
	if err != nil {
		return err
	}

	if !paid {
		log.Infoln("payment not found")
		return core.ErrTransferNotPaid
	}

	transfer.Status = core.TransferStatusSettled
	if err := l.transfers.Create(ctx, transfer); err != nil {
		log.WithError(err).Errorln("transfers.Create")
		return err
	}

	return nil
}

func (l *mixinLedger) Mint(ctx context.Context, transfer *core.Transfer) error {
	transfer.Kind = core.TransferKindMint
	return l.enqueue(ctx, transfer)
}

func (l *mixinLedger) enqueue(ctx context.Context, transfer *core.Transfer) error {
	transfer.Status = core.TransferStatusReserved
	if err := l.transfers.Create(ctx, transfer); err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("transfers.Create")
		return err
	}

	return nil
}

// Commit hands a reserved transfer to the cashier
func (l *mixinLedger) Commit(ctx context.Context, transfer *core.Transfer) error {
	if transfer.Kind == core.TransferKindIn {
		return nil
	}

	err := l.transfers.Transition(ctx, transfer.TraceID, core.TransferStatusReserved, core.TransferStatusPending)
	if !errors.Is(err, core.ErrTransferStatusChanged) {
		return err
	}

	// committed before
	stored, findErr := l.transfers.FindByTrace(ctx, transfer.TraceID)
	if findErr != nil {
		return findErr
	}

	if stored != nil && stored.Status != core.TransferStatusReserved {
		return nil
	}

	return err
}

// Revert releases the claim of an incoming payment or drops a reserved transfer.
// Committed transfers cannot be reverted.
func (l *mixinLedger) Revert(ctx context.Context, transfer *core.Transfer) error {
	stored, err := l.transfers.FindByTrace(ctx, transfer.TraceID)
	if err != nil {
		return err
	}

	if stored == nil {
		return nil
	}

	status := core.TransferStatusReserved
	if stored.Kind == core.TransferKindIn {
		status = core.TransferStatusSettled
	}

	if err := l.transfers.Delete(ctx, transfer.TraceID, status); err != nil {
		if errors.Is(err, core.ErrTransferStatusChanged) {
			return core.ErrTransferSettled
		}

		return err
	}

	return nil
}
