package rest

import (
	"net/http"

	"lending/core"
	"lending/handler/param"
	"lending/handler/render"
	"lending/handler/views"
	"lending/pkg/number"
	"lending/service/position"

	"github.com/twitchtv/twirp"
)

func payRequestsHandler(cfg position.Config, wallets core.WalletService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Action  string `json:"action" valid:"in(deposit|repay),required"`
			Amount  uint64 `json:"amount" valid:"required"`
			TraceID string `json:"trace_id" valid:"required"`
		}

		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		asset := cfg.CollateralAsset
		if body.Action == "repay" {
			asset = cfg.LoanAsset
		}

		trace := position.PaymentTrace(body.TraceID, body.Action)
		amount := number.FromUnits(body.Amount)

		url, err := wallets.PaySchemaURL(amount, asset, cfg.Custodian, trace, body.Action)
		if err != nil {
			render.Error(w, twirp.InvalidArgumentError("body", err.Error()))
			return
		}

		render.JSON(w, views.PayRequest{
			URL:     url,
			TraceID: trace,
			AssetID: asset,
			Amount:  amount.String(),
		})
	}
}
