package sysversion

import (
	"context"
	"errors"
	"fmt"

	"github.com/fox-one/pkg/property"
)

const (
	SysVersionKey = "sysversion"

	// Current schema version written by migrate
	Current int64 = 1
)

var ErrOutdated = errors.New("database schema outdated, run migrate first")

func ReadSysVersion(ctx context.Context, property property.Store) (int64, error) {
	v, err := property.Get(ctx, SysVersionKey)
	if err != nil {
		return 0, err
	}
	return v.Int64(), nil
}

func SaveSysVersion(ctx context.Context, property property.Store) error {
	return property.Save(ctx, SysVersionKey, Current)
}

// Check the database was migrated by this build or a newer one
func Check(ctx context.Context, property property.Store) error {
	v, err := ReadSysVersion(ctx, property)
	if err != nil {
		return err
	}

	if v < Current {
		return fmt.Errorf("%w: have %d, want %d", ErrOutdated, v, Current)
	}

	return nil
}
