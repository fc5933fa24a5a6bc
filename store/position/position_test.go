package position

import (
	"context"
	"path/filepath"
	"testing"

	"lending/core"

	"github.com/fox-one/pkg/store/db"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) core.PositionStore {
	database := db.MustOpen(db.Config{
		Dialect: "sqlite3",
		Host:    filepath.Join(t.TempDir(), "positions.db"),
	})
	t.Cleanup(func() { database.Close() })

	require.Nil(t, db.Migrate(database))
	return New(database)
}

func TestFindAbsent(t *testing.T) {
	s := openStore(t)

	p, err := s.Find(context.Background(), "nobody")
	require.Nil(t, err)
	assert.Equal(t, uint64(0), p.ID)
	assert.Equal(t, uint64(0), p.CollateralAmount)
}

func TestUpdateVersion(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	p := &core.Position{
		Owner:            "alice",
		CollateralType:   core.CollateralTypeGold,
		CollateralAmount: 1000,
		Version:          1,
	}
	require.Nil(t, s.Create(ctx, p))
	require.NotZero(t, p.ID)

	next := p.Clone()
	next.CollateralAmount = 1500
	next.Version = 2
	require.Nil(t, s.Update(ctx, next, 1))

	// a writer holding the old version loses
	stale := p.Clone()
	stale.CollateralAmount = 10
	stale.Version = 2
	assert.Equal(t, db.ErrOptimisticLock, s.Update(ctx, stale, 1))

	stored, err := s.Find(ctx, "alice")
	require.Nil(t, err)
	assert.Equal(t, uint64(1500), stored.CollateralAmount)
	assert.Equal(t, int64(2), stored.Version)
}

func TestListActive(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	for _, p := range []*core.Position{
		{Owner: "idle", CollateralAmount: 100, Version: 1},
		{Owner: "borrower", CollateralAmount: 100, LoanAmount: 50, LoanIssuedAt: 1600000000, LoanDuration: 100, Version: 1},
		{Owner: "closed", Version: 1},
	} {
		require.Nil(t, s.Create(ctx, p))
	}

	active, err := s.ListActive(ctx, 0, 10)
	require.Nil(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "borrower", active[0].Owner)

	all, err := s.List(ctx, 0, 10)
	require.Nil(t, err)
	assert.Len(t, all, 3)

	rest, err := s.List(ctx, all[0].ID, 10)
	require.Nil(t, err)
	assert.Len(t, rest, 2)
}
