package core

import (
	"context"
	"errors"
	"time"
)

// TransferKind movement kind
type TransferKind string

const (
	// TransferKindIn asset moved into custody by the user
	TransferKindIn TransferKind = "in"
	// TransferKindOut asset moved out of custody
	TransferKindOut TransferKind = "out"
	// TransferKindMint loan asset issued by the mint authority
	TransferKindMint TransferKind = "mint"
)

// TransferStatus transfer status
type TransferStatus string

const (
	// TransferStatusReserved written by an operation that has not committed yet, never sent
	TransferStatusReserved TransferStatus = "reserved"
	// TransferStatusPending queued, not sent yet
	TransferStatusPending TransferStatus = "pending"
	// TransferStatusSettled sent or verified
	TransferStatusSettled TransferStatus = "settled"
)

var (
	// ErrTransferSettled the transfer already left custody and cannot be reverted
	ErrTransferSettled = errors.New("transfer already settled")
	// ErrTransferNotPaid the incoming payment was not found
	ErrTransferNotPaid = errors.New("transfer not paid")
	// ErrTransferClaimed the incoming payment was used by another operation
	ErrTransferClaimed = errors.New("transfer already claimed")
	// ErrTransferStatusChanged the transfer is no longer in the expected status
	ErrTransferStatusChanged = errors.New("transfer status changed")
)

// Transfer asset movement
type Transfer struct {
	ID         uint64         `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	CreatedAt  time.Time      `json:"created_at,omitempty"`
	UpdatedAt  time.Time      `json:"updated_at,omitempty"`
	TraceID    string         `sql:"size:36;unique_index:transfer_trace_idx" json:"trace_id,omitempty"`
	Kind       TransferKind   `sql:"size:8" json:"kind,omitempty"`
	Status     TransferStatus `sql:"size:12;index:transfer_status_idx" json:"status,omitempty"`
	AssetID    string         `sql:"size:36" json:"asset_id,omitempty"`
	From       string         `sql:"size:36" json:"from,omitempty"`
	To         string         `sql:"size:36" json:"to,omitempty"`
	Amount     uint64         `json:"amount,omitempty"`
	Memo       string         `sql:"size:140" json:"memo,omitempty"`
	SnapshotID string         `sql:"size:36" json:"snapshot_id,omitempty"`
}

// AssetLedger custodial asset ledger
//
// Transfer and Mint reserve exactly one movement or none. Commit releases a reserved
// movement once the operation is stored, Revert aborts one that was not committed.
type AssetLedger interface {
	Transfer(ctx context.Context, transfer *Transfer) error
	Mint(ctx context.Context, transfer *Transfer) error
	Commit(ctx context.Context, transfer *Transfer) error
	Revert(ctx context.Context, transfer *Transfer) error
}

// TransferStore transfer store interface
type TransferStore interface {
	Create(ctx context.Context, transfer *Transfer) error
	FindByTrace(ctx context.Context, traceID string) (*Transfer, error)
	// Transition fails with ErrTransferStatusChanged unless the transfer is in status from
	Transition(ctx context.Context, traceID string, from, to TransferStatus) error
	// Delete fails with ErrTransferStatusChanged unless the transfer is in status
	Delete(ctx context.Context, traceID string, status TransferStatus) error
	ListPending(ctx context.Context, limit int) ([]*Transfer, error)
	MarkSettled(ctx context.Context, traceID, snapshotID string) error
}
