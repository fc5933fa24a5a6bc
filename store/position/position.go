package position

import (
	"context"
	"lending/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type positionStore struct {
	db *db.DB
}

// New new position store
func New(db *db.DB) core.PositionStore {
	return &positionStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Position{})
		if err := tx.AutoMigrate(core.Position{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *positionStore) Find(ctx context.Context, owner string) (*core.Position, error) {
	var position core.Position
	if err := s.db.View().Where("owner = ?", owner).First(&position).Error; err != nil {
		if store.IsErrNotFound(err) {
			return &core.Position{}, nil
		}

		return nil, err
	}

	return &position, nil
}

func (s *positionStore) Create(ctx context.Context, position *core.Position) error {
	return s.db.Update().Create(position).Error
}

func (s *positionStore) Update(ctx context.Context, position *core.Position, version int64) error {
	updates := map[string]interface{}{
		"collateral_amount":  position.CollateralAmount,
		"collateral_type":    position.CollateralType,
		"loan_amount":        position.LoanAmount,
		"loan_issued_at":     position.LoanIssuedAt,
		"loan_duration":      position.LoanDuration,
		"loan_interest_rate": position.LoanInterestRate,
		"interest_type":      position.InterestType,
		"grace_period":       position.GracePeriod,
		"version":            position.Version,
	}

	tx := s.db.Update().Model(position).Where("version = ?", version).Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}

func (s *positionStore) List(ctx context.Context, fromID uint64, limit int) ([]*core.Position, error) {
	var positions []*core.Position
	if err := s.db.View().Where("id > ?", fromID).Order("id").Limit(limit).Find(&positions).Error; err != nil {
		return nil, err
	}

	return positions, nil
}

func (s *positionStore) ListActive(ctx context.Context, fromID uint64, limit int) ([]*core.Position, error) {
	var positions []*core.Position
	if err := s.db.View().
		Where("id > ? AND loan_issued_at > 0 AND collateral_amount > 0", fromID).
		Order("id").
		Limit(limit).
		Find(&positions).Error; err != nil {
		return nil, err
	}

	return positions, nil
}
