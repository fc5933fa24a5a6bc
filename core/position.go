package core

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
)

// CollateralType collateral category, selects the LTV table entry
type CollateralType int

const (
	// CollateralTypeGold gold backed collateral
	CollateralTypeGold CollateralType = iota
	// CollateralTypeCrypto crypto currency collateral
	CollateralTypeCrypto
)

var collateralTypeNames = map[CollateralType]string{
	CollateralTypeGold:   "gold",
	CollateralTypeCrypto: "crypto",
}

func (t CollateralType) String() string {
	if name, ok := collateralTypeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("CollateralType(%d)", int(t))
}

// IsValid check if the type is a known collateral category
func (t CollateralType) IsValid() bool {
	_, ok := collateralTypeNames[t]
	return ok
}

func (t CollateralType) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, ErrInvalidCollateralType
	}

	return []byte(t.String()), nil
}

func (t *CollateralType) UnmarshalText(b []byte) error {
	v, err := ParseCollateralType(string(b))
	if err != nil {
		return err
	}

	*t = v
	return nil
}

// ParseCollateralType parse collateral type from name or ordinal
func ParseCollateralType(s string) (CollateralType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, name := range collateralTypeNames {
		if s == name || s == fmt.Sprint(int(t)) {
			return t, nil
		}
	}

	return 0, ErrInvalidCollateralType
}

// InterestType interest type, recorded only
type InterestType int

const (
	// InterestTypeFixed fixed rate
	InterestTypeFixed InterestType = iota
	// InterestTypeVariable variable rate
	InterestTypeVariable
)

var interestTypeNames = map[InterestType]string{
	InterestTypeFixed:    "fixed",
	InterestTypeVariable: "variable",
}

func (t InterestType) String() string {
	if name, ok := interestTypeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("InterestType(%d)", int(t))
}

// IsValid check if the type is a known interest type
func (t InterestType) IsValid() bool {
	_, ok := interestTypeNames[t]
	return ok
}

func (t InterestType) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, ErrInvalidInterestType
	}

	return []byte(t.String()), nil
}

func (t *InterestType) UnmarshalText(b []byte) error {
	v, err := ParseInterestType(string(b))
	if err != nil {
		return err
	}

	*t = v
	return nil
}

// ParseInterestType parse interest type from name or ordinal
func ParseInterestType(s string) (InterestType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, name := range interestTypeNames {
		if s == name || s == fmt.Sprint(int(t)) {
			return t, nil
		}
	}

	return 0, ErrInvalidInterestType
}

// Position collateral and loan of one owner
type Position struct {
	ID               uint64         `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Owner            string         `sql:"size:36;unique_index:position_owner_idx" json:"owner"`
	CollateralAmount uint64         `sql:"default:0" json:"collateral_amount"`
	CollateralType   CollateralType `sql:"default:0" json:"collateral_type"`
	// principal of the active loan
	LoanAmount uint64 `sql:"default:0" json:"loan_amount"`
	// unix seconds, 0 means no active loan
	LoanIssuedAt     int64        `sql:"default:0;index:position_issued_idx" json:"loan_issued_at"`
	LoanDuration     int64        `sql:"default:0" json:"loan_duration"`
	LoanInterestRate uint64       `sql:"default:0" json:"loan_interest_rate"`
	InterestType     InterestType `sql:"default:0" json:"interest_type"`
	GracePeriod      int64        `sql:"default:0" json:"grace_period"`
	Version          int64        `sql:"default:0" json:"version"`
	CreatedAt        time.Time    `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time    `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// HasActiveLoan check if a loan is recorded on the position
func (p *Position) HasActiveLoan() bool {
	return p.LoanIssuedAt != 0
}

// MaturesAt loan_issued_at + loan_duration + grace_period
func (p *Position) MaturesAt() (int64, error) {
	t, ok := addInt64(p.LoanIssuedAt, p.LoanDuration)
	if !ok {
		return 0, ErrArithmeticOverflow
	}

	if t, ok = addInt64(t, p.GracePeriod); !ok {
		return 0, ErrArithmeticOverflow
	}

	return t, nil
}

// ClearLoan reset the loan fields
func (p *Position) ClearLoan() {
	p.LoanAmount = 0
	p.LoanIssuedAt = 0
	p.LoanDuration = 0
	p.LoanInterestRate = 0
	p.InterestType = InterestTypeFixed
	p.GracePeriod = 0
}

// Clone copy the position
func (p *Position) Clone() *Position {
	c := *p
	return &c
}

func addInt64(a, b int64) (int64, bool) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, false
	}

	return a + b, true
}

// PositionStore position store interface
type PositionStore interface {
	// Find returns a zero ID position if the owner has none
	Find(ctx context.Context, owner string) (*Position, error)
	Create(ctx context.Context, position *Position) error
	// Update compare and swap on version
	Update(ctx context.Context, position *Position, version int64) error
	List(ctx context.Context, fromID uint64, limit int) ([]*Position, error)
	ListActive(ctx context.Context, fromID uint64, limit int) ([]*Position, error)
}
