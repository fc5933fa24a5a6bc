package views

import (
	"lending/core"
)

// Position position with derived figures
type Position struct {
	*core.Position
	Quote *core.Quote `json:"quote,omitempty"`
}

// Liquidatable liquidatable position
type Liquidatable struct {
	*core.Position
	Reason string `json:"reason"`
}

// Page page of liquidatable positions
type Page struct {
	Positions []*Liquidatable `json:"positions"`
	// next from cursor, zero when exhausted
	NextFrom uint64 `json:"next_from,omitempty"`
}

// PayRequest payment expected by an operation
type PayRequest struct {
	URL     string `json:"url"`
	TraceID string `json:"trace_id"`
	AssetID string `json:"asset_id"`
	Amount  string `json:"amount"`
}
