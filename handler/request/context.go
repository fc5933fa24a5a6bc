package request

import (
	"context"
	"net/http"

	"lending/handler/render"

	"github.com/asaskevich/govalidator"
	"github.com/fox-one/pkg/logger"
	"github.com/twitchtv/twirp"
)

// HeaderCaller header set by the gateway after authenticating the caller
const HeaderCaller = "X-User-Id"

type key int

const (
	callerKey key = iota
)

// ContextX context extension
type ContextX struct {
	context.Context
}

// NewContext context extension
func NewContext(ctx context.Context) ContextX {
	return ContextX{
		Context: ctx,
	}
}

// WithCaller context with the verified caller id
func (c ContextX) WithCaller(caller string) context.Context {
	return context.WithValue(c, callerKey, caller)
}

// GetCaller get caller id from context
func (c ContextX) GetCaller() (string, bool) {
	caller, ok := c.Value(callerKey).(string)
	return caller, ok && caller != ""
}

// Caller require the caller header on every request
func Caller(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		caller := r.Header.Get(HeaderCaller)
		if !govalidator.IsUUID(caller) {
			render.Error(w, twirp.NewError(twirp.Unauthenticated, "missing or invalid "+HeaderCaller))
			return
		}

		ctx := NewContext(r.Context()).WithCaller(caller)
		log := logger.FromContext(ctx).WithField("caller", caller)
		ctx = logger.WithContext(ctx, log)
		next.ServeHTTP(w, r.WithContext(ctx))
	}

	return http.HandlerFunc(fn)
}
