package cashier

import (
	"context"
	"errors"

	"lending/core"
	"lending/worker"

	"github.com/fox-one/pkg/logger"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Cashier sends the queued outgoing transfers and mints from the custody wallet
type Cashier struct {
	worker.TickWorker
	transfers core.TransferStore
	wallets   core.WalletService
	cfg       Config
}

// Config cashier config
type Config struct {
	Batch    int   `json:"batch" valid:"required"`
	Capacity int64 `json:"capacity" valid:"required"`
}

// New new cashier
func New(
	transfers core.TransferStore,
	wallets core.WalletService,
	cfg Config,
) *Cashier {
	if cfg.Batch <= 0 {
		cfg.Batch = 100
	}

	return &Cashier{
		transfers: transfers,
		wallets:   wallets,
		cfg:       cfg,
	}
}

// Run run worker
func (w *Cashier) Run(ctx context.Context) error {
	f := w.sync
	if w.cfg.Capacity > 1 {
		f = w.parallel(w.cfg.Capacity)
	}

	return w.StartTick(ctx, func(ctx context.Context) error {
		return w.onWork(ctx, f)
	})
}

func (w *Cashier) onWork(ctx context.Context, f func(context.Context, []*core.Transfer) error) error {
	log := logger.FromContext(ctx).WithField("worker", "cashier")

	transfers, err := w.transfers.ListPending(ctx, w.cfg.Batch)
	if err != nil {
		log.WithError(err).Errorln("list transfers")
		return err
	}

	if len(transfers) == 0 {
		return errors.New("EOF")
	}

	return f(logger.WithContext(ctx, log), transfers)
}

func (w *Cashier) sync(ctx context.Context, transfers []*core.Transfer) error {
	for _, transfer := range transfers {
		if err := w.handleTransfer(ctx, transfer); err != nil {
			return err
		}
	}

	return nil
}

func (w *Cashier) parallel(capacity int64) func(ctx context.Context, transfers []*core.Transfer) error {
	sem := semaphore.NewWeighted(capacity)

	return func(ctx context.Context, transfers []*core.Transfer) error {
		g := errgroup.Group{}

		for idx := range transfers {
			transfer := transfers[idx]

			if err := sem.Acquire(ctx, 1); err != nil {
				return g.Wait()
			}

			g.Go(func() error {
				defer sem.Release(1)
				return w.handleTransfer(ctx, transfer)
			})
		}

		return g.Wait()
	}
}

func (w *Cashier) handleTransfer(ctx context.Context, transfer *core.Transfer) error {
	log := logger.FromContext(ctx).WithField("trace", transfer.TraceID)

	// the trace id makes the wallet transfer idempotent, a resend returns the same snapshot
	snapshotID, err := w.wallets.HandleTransfer(ctx, transfer)
	if err != nil {
		log.WithError(err).Errorln("wallets.HandleTransfer")
		return err
	}

	if err := w.transfers.MarkSettled(ctx, transfer.TraceID, snapshotID); err != nil {
		log.WithError(err).Errorln("transfers.MarkSettled")
		return err
	}

	return nil
}
