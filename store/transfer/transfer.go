package transfer

import (
	"context"
	"lending/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type transferStore struct {
	db *db.DB
}

// New new transfer store
func New(db *db.DB) core.TransferStore {
	return &transferStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Transfer{})
		if err := tx.AutoMigrate(core.Transfer{}).Error; err != nil {
			return err
		}

		return nil
	})
}

// Create fails with core.ErrTransferClaimed when the trace is taken
func (s *transferStore) Create(ctx context.Context, transfer *core.Transfer) error {
	return s.db.Tx(func(tx *db.DB) error {
		var count int
		if err := tx.Update().Model(core.Transfer{}).Where("trace_id = ?", transfer.TraceID).Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return core.ErrTransferClaimed
		}

		return tx.Update().Create(transfer).Error
	})
}

// FindByTrace returns nil if not found
func (s *transferStore) FindByTrace(ctx context.Context, traceID string) (*core.Transfer, error) {
	var transfer core.Transfer
	if err := s.db.View().Where("trace_id = ?", traceID).First(&transfer).Error; err != nil {
		if store.IsErrNotFound(err) {
			return nil, nil
		}

		return nil, err
	}

	return &transfer, nil
}

func (s *transferStore) Transition(ctx context.Context, traceID string, from, to core.TransferStatus) error {
	tx := s.db.Update().Model(core.Transfer{}).
		Where("trace_id = ? AND status = ?", traceID, from).
		Update("status", to)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return core.ErrTransferStatusChanged
	}

	return nil
}

func (s *transferStore) Delete(ctx context.Context, traceID string, status core.TransferStatus) error {
	tx := s.db.Update().Where("trace_id = ? AND status = ?", traceID, status).Delete(core.Transfer{})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return core.ErrTransferStatusChanged
	}

	return nil
}

func (s *transferStore) ListPending(ctx context.Context, limit int) ([]*core.Transfer, error) {
	var transfers []*core.Transfer
	if err := s.db.View().
		Where("status = ?", core.TransferStatusPending).
		Order("id").
		Limit(limit).
		Find(&transfers).Error; err != nil {
		return nil, err
	}

	return transfers, nil
}

func (s *transferStore) MarkSettled(ctx context.Context, traceID, snapshotID string) error {
	return s.db.Update().Model(core.Transfer{}).
		Where("trace_id = ? AND status = ?", traceID, core.TransferStatusPending).
		Updates(map[string]interface{}{
			"status":      core.TransferStatusSettled,
			"snapshot_id": snapshotID,
		}).Error
}
