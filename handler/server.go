package handler

import (
	"net/http"

	"lending/core"
	"lending/handler/rest"
	"lending/service/position"
)

// Server server
type Server struct {
	cfg           position.Config
	positions     core.PositionService
	positionStore core.PositionStore
	events        core.EventStore
	wallets       core.WalletService
}

// New new server function
func New(
	cfg position.Config,
	positions core.PositionService,
	positionStore core.PositionStore,
	events core.EventStore,
	wallets core.WalletService,
) Server {
	return Server{
		cfg:           cfg,
		positions:     positions,
		positionStore: positionStore,
		events:        events,
		wallets:       wallets,
	}
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	return rest.Handle(s.cfg, s.positions, s.positionStore, s.events, s.wallets)
}
