package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// IssueInput loan terms requested by the borrower
type IssueInput struct {
	Amount       uint64       `json:"amount"`
	Duration     int64        `json:"duration"`
	InterestRate uint64       `json:"interest_rate"`
	InterestType InterestType `json:"interest_type"`
	GracePeriod  int64        `json:"grace_period"`
	TraceID      string       `json:"trace_id"`
}

// RefinanceInput nil fields keep the current value
type RefinanceInput struct {
	Duration     *int64  `json:"duration,omitempty"`
	InterestRate *uint64 `json:"interest_rate,omitempty"`
	TraceID      string  `json:"trace_id"`
}

// Quote derived figures of a position at a point in time
type Quote struct {
	Now          int64           `json:"now"`
	Valuation    uint64          `json:"valuation"`
	LTV          uint64          `json:"ltv"`
	MaxLoan      uint64          `json:"max_loan"`
	InterestDue  uint64          `json:"interest_due"`
	RepayAmount  uint64          `json:"repay_amount"`
	Debt         uint64          `json:"debt"`
	HealthFactor decimal.Decimal `json:"health_factor"`
	MaturesAt    int64           `json:"matures_at,omitempty"`
	Liquidatable bool            `json:"liquidatable"`
	Reason       string          `json:"reason,omitempty"`
}

// PositionService position lifecycle engine
type PositionService interface {
	Deposit(ctx context.Context, owner string, amount uint64, collateralType CollateralType, traceID string) (*Position, error)
	Issue(ctx context.Context, owner string, input IssueInput) (*Position, error)
	Repay(ctx context.Context, owner string, amount uint64, traceID string) (*Position, error)
	Liquidate(ctx context.Context, owner, liquidator, traceID string) (*Position, error)
	Withdraw(ctx context.Context, owner string, amount uint64, traceID string) (*Position, error)
	Refinance(ctx context.Context, owner string, input RefinanceInput) (*Position, error)

	Quote(ctx context.Context, owner string) (*Position, *Quote, error)
	Liquidatable(ctx context.Context, position *Position) (bool, string, error)
}
