package render

import (
	"encoding/json"
	"net/http"
	"strconv"

	"lending/handler/codes"

	"github.com/sirupsen/logrus"
	"github.com/twitchtv/twirp"
)

// H shortcut of map
type H map[string]interface{}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Errorln("render json")
	}
}

// Error write error as {"code": n, "msg": "..."}
func Error(w http.ResponseWriter, err error) {
	twerr := codes.Translate(err)

	code := codes.Get(twerr.Code())
	if c, err := strconv.Atoi(twerr.Meta(codes.CustomCodeKey)); err == nil {
		code = c
	}

	status := twirp.ServerHTTPStatusFromErrorCode(twerr.Code())
	if status >= http.StatusInternalServerError {
		logrus.WithError(err).Errorln("internal error")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(H{"code": code, "msg": twerr.Msg()}); err != nil {
		logrus.WithError(err).Errorln("render error")
	}
}

// BadRequest bad request error
func BadRequest(w http.ResponseWriter, err error) {
	Error(w, twirp.InvalidArgumentError("request", err.Error()))
}
