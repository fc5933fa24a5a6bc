package position

import (
	"context"
	"lending/core"

	"github.com/fox-one/pkg/logger"
)

type move struct {
	transfer *core.Transfer
	mint     bool
}

// ledgerTx tracks the movements applied by one operation
type ledgerTx struct {
	ledger  core.AssetLedger
	applied []*core.Transfer
}

func (tx *ledgerTx) apply(ctx context.Context, m *move) error {
	var err error
	if m.mint {
		err = tx.ledger.Mint(ctx, m.transfer)
	} else {
		err = tx.ledger.Transfer(ctx, m.transfer)
	}

	if err != nil {
		return err
	}

	tx.applied = append(tx.applied, m.transfer)
	return nil
}

// commit releases the applied movements once the position is stored. The stored
// position is authoritative, a failed release leaves the movement reserved.
func (tx *ledgerTx) commit(ctx context.Context) {
	log := logger.FromContext(ctx)

	for _, t := range tx.applied {
		if err := tx.ledger.Commit(ctx, t); err != nil {
			log.WithError(err).WithField("trace", t.TraceID).Errorln("ledger.Commit")
		}
	}

	tx.applied = nil
}

// rollback reverts applied movements, newest first
func (tx *ledgerTx) rollback(ctx context.Context) {
	log := logger.FromContext(ctx)

	for i := len(tx.applied) - 1; i >= 0; i-- {
		t := tx.applied[i]
		if err := tx.ledger.Revert(ctx, t); err != nil {
			log.WithError(err).WithField("trace", t.TraceID).Errorln("ledger.Revert")
		}
	}

	tx.applied = nil
}
