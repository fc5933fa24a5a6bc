package resthttp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/fox-one/pkg/logger"
	"github.com/go-resty/resty/v2"
)

const (
	headerKeyRequestID = "X-Request-Id"
)

var runOnce sync.Once
var restyClient *resty.Client

// Client resty client
func Client() *resty.Client {
	runOnce.Do(func() {
		restyClient = resty.New().
			SetHeader("Content-Type", "application/json").
			SetHeader("Charset", "utf-8").
			SetTimeout(10 * time.Second)
	})

	return restyClient
}

// Request new resty request, the request id of ctx is forwarded if any
func Request(ctx context.Context) *resty.Request {
	r := Client().R().SetContext(ctx)
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		r.SetHeader(headerKeyRequestID, id)
	}

	return r
}

type requestIDKey struct{}

// WithRequestID attach the request id forwarded by Request
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// Get do a GET request and decode the json body into resp
func Get(ctx context.Context, url string, resp interface{}) error {
	logger.FromContext(ctx).Debugf("GET %s", url)

	r, err := Request(ctx).Get(url)
	if err != nil {
		return err
	}

	return ParseResponse(r, resp)
}

// ParseResponse parse response
func ParseResponse(r *resty.Response, obj interface{}) error {
	if !r.IsSuccess() {
		return fmt.Errorf("%s: %s", r.Status(), string(r.Body()))
	}

	if obj != nil {
		return json.Unmarshal(r.Body(), obj)
	}

	return nil
}
