package rest

import (
	"net/http"

	"lending/core"
	"lending/handler/render"
	"lending/handler/request"
	"lending/service/position"

	"github.com/go-chi/chi"
	"github.com/twitchtv/twirp"
)

// Handle handle rest api request
func Handle(
	cfg position.Config,
	positions core.PositionService,
	positionStore core.PositionStore,
	events core.EventStore,
	wallets core.WalletService,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Error(w, twirp.NotFoundError("not found"))
	})

	router.Get("/positions/liquidatable", liquidatableHandler(positions, positionStore))
	router.Get("/positions/{owner}", positionHandler(positions))
	router.Get("/positions/{owner}/events", eventsHandler(events))

	router.Group(func(r chi.Router) {
		r.Use(request.Caller)

		r.Post("/positions/deposit", depositHandler(positions))
		r.Post("/positions/issue", issueHandler(cfg, positions))
		r.Post("/positions/repay", repayHandler(positions))
		r.Post("/positions/withdraw", withdrawHandler(positions))
		r.Post("/positions/refinance", refinanceHandler(positions))
		r.Post("/positions/{owner}/liquidate", liquidateHandler(positions))
		r.Post("/pay-requests", payRequestsHandler(cfg, wallets))
	})

	return router
}

func caller(r *http.Request) string {
	c, _ := request.NewContext(r.Context()).GetCaller()
	return c
}
