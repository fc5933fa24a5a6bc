package core

import (
	"context"
	"time"
)

// EventType event type
type EventType string

const (
	// EventCollateralDeposited collateral deposited
	EventCollateralDeposited EventType = "CollateralDeposited"
	// EventLoanIssued loan issued
	EventLoanIssued EventType = "LoanIssued"
	// EventLoanRepaid loan repaid, collateral released
	EventLoanRepaid EventType = "LoanRepaid"
	// EventCollateralLiquidated collateral seized by a liquidator
	EventCollateralLiquidated EventType = "CollateralLiquidated"
	// EventCollateralWithdrawn partial collateral withdrawn
	EventCollateralWithdrawn EventType = "CollateralWithdrawn"
	// EventLoanRefinanced loan terms changed
	EventLoanRefinanced EventType = "LoanRefinanced"
)

// Event position event
type Event struct {
	ID              uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TraceID         string    `sql:"size:36;unique_index:event_trace_idx" json:"trace_id"`
	Type            EventType `sql:"size:32" json:"type"`
	Owner           string    `sql:"size:36;index:event_owner_idx" json:"owner"`
	Liquidator      string    `sql:"size:36" json:"liquidator,omitempty"`
	Amount          uint64    `json:"amount,omitempty"`
	NewDuration     int64     `json:"new_duration,omitempty"`
	NewInterestRate uint64    `json:"new_interest_rate,omitempty"`
	CreatedAt       time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// EventSink publish events to off path observers
type EventSink interface {
	Publish(ctx context.Context, event *Event) error
}

// EventStore event store interface
type EventStore interface {
	EventSink
	List(ctx context.Context, fromID uint64, limit int) ([]*Event, error)
	ListByOwner(ctx context.Context, owner string, limit int) ([]*Event, error)
}
