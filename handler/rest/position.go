package rest

import (
	"net/http"

	"lending/core"
	"lending/handler/param"
	"lending/handler/render"
	"lending/handler/views"
	"lending/service/position"

	"github.com/go-chi/chi"
	"github.com/spf13/cast"
)

const maxLimit = 500

func positionHandler(positions core.PositionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, quote, err := positions.Quote(r.Context(), chi.URLParam(r, "owner"))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.Position{Position: p, Quote: quote})
	}
}

func liquidatableHandler(positions core.PositionService, store core.PositionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		from := cast.ToUint64(r.URL.Query().Get("from"))
		limit := cast.ToInt(r.URL.Query().Get("limit"))
		if limit <= 0 || limit > maxLimit {
			limit = 100
		}

		active, err := store.ListActive(ctx, from, limit)
		if err != nil {
			render.Error(w, err)
			return
		}

		page := views.Page{Positions: []*views.Liquidatable{}}
		for _, p := range active {
			ok, reason, err := positions.Liquidatable(ctx, p)
			if err != nil {
				render.Error(w, err)
				return
			}

			if ok {
				page.Positions = append(page.Positions, &views.Liquidatable{Position: p, Reason: reason})
			}
		}

		if len(active) == limit {
			page.NextFrom = active[len(active)-1].ID
		}

		render.JSON(w, page)
	}
}

func eventsHandler(events core.EventStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := cast.ToInt(r.URL.Query().Get("limit"))
		if limit <= 0 || limit > maxLimit {
			limit = 50
		}

		list, err := events.ListByOwner(r.Context(), chi.URLParam(r, "owner"), limit)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{"events": list})
	}
}

func depositHandler(positions core.PositionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Amount         uint64 `json:"amount" valid:"required"`
			CollateralType string `json:"collateral_type" valid:"required"`
			TraceID        string `json:"trace_id" valid:"required"`
		}

		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		typ, err := core.ParseCollateralType(body.CollateralType)
		if err != nil {
			render.Error(w, err)
			return
		}

		p, err := positions.Deposit(r.Context(), caller(r), body.Amount, typ, body.TraceID)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.Position{Position: p})
	}
}

func issueHandler(cfg position.Config, positions core.PositionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Amount       uint64 `json:"amount"`
			Duration     int64  `json:"duration"`
			InterestRate uint64 `json:"interest_rate"`
			InterestType string `json:"interest_type"`
			GracePeriod  *int64 `json:"grace_period"`
			TraceID      string `json:"trace_id"`
		}

		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		input := core.IssueInput{
			Amount:       body.Amount,
			Duration:     body.Duration,
			InterestRate: body.InterestRate,
			GracePeriod:  cfg.DefaultGracePeriod,
			TraceID:      body.TraceID,
		}

		if body.GracePeriod != nil {
			input.GracePeriod = *body.GracePeriod
		}

		if body.InterestType != "" {
			typ, err := core.ParseInterestType(body.InterestType)
			if err != nil {
				render.Error(w, err)
				return
			}

			input.InterestType = typ
		}

		p, err := positions.Issue(r.Context(), caller(r), input)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.Position{Position: p})
	}
}

type amountBody struct {
	Amount  uint64 `json:"amount" valid:"required"`
	TraceID string `json:"trace_id" valid:"required"`
}

func repayHandler(positions core.PositionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body amountBody
		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		p, err := positions.Repay(r.Context(), caller(r), body.Amount, body.TraceID)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.Position{Position: p})
	}
}

func withdrawHandler(positions core.PositionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body amountBody
		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		p, err := positions.Withdraw(r.Context(), caller(r), body.Amount, body.TraceID)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.Position{Position: p})
	}
}

func refinanceHandler(positions core.PositionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body core.RefinanceInput
		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		p, err := positions.Refinance(r.Context(), caller(r), body)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.Position{Position: p})
	}
}

func liquidateHandler(positions core.PositionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			TraceID string `json:"trace_id" valid:"required"`
		}

		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		p, err := positions.Liquidate(r.Context(), chi.URLParam(r, "owner"), caller(r), body.TraceID)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.Position{Position: p})
	}
}
