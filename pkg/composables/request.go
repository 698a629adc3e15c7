package composables

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/go-playground/form"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/refconsole/pkg/constants"
)

var (
	ErrNoLogger = errors.New("logger not found")
)

// Decoder decodes url.Values into tagged structs. Tags use the `form` key.
var Decoder = func() *form.Decoder {
	d := form.NewDecoder()
	d.SetTagName("form")
	return d
}()

type Params struct {
	IP        string
	UserAgent string
	Request   *http.Request
	Writer    http.ResponseWriter
}

// UseParams returns the request parameters from the context.
// If the parameters are not found, the second return value will be false.
func UseParams(ctx context.Context) (*Params, bool) {
	params, ok := ctx.Value(constants.ParamsKey).(*Params)
	return params, ok
}

func WithParams(ctx context.Context, params *Params) context.Context {
	return context.WithValue(ctx, constants.ParamsKey, params)
}

// UseLogger returns the request-scoped logger. It panics when the logging
// middleware did not run.
func UseLogger(ctx context.Context) *logrus.Entry {
	logger := ctx.Value(constants.LoggerKey)
	if logger == nil {
		panic("logger not found")
	}
	return logger.(*logrus.Entry)
}

// TryUseLogger returns the request-scoped logger or ErrNoLogger.
func TryUseLogger(ctx context.Context) (*logrus.Entry, error) {
	logger, ok := ctx.Value(constants.LoggerKey).(*logrus.Entry)
	if !ok {
		return nil, ErrNoLogger
	}
	return logger, nil
}

func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, constants.LoggerKey, logger)
}

func UseIP(ctx context.Context) (string, bool) {
	params, ok := UseParams(ctx)
	if !ok {
		return "", false
	}
	return params.IP, true
}

func UseUserAgent(ctx context.Context) (string, bool) {
	params, ok := UseParams(ctx)
	if !ok {
		return "", false
	}
	return params.UserAgent, true
}

func UseQuery[T any](v T, r *http.Request) (T, error) {
	return v, Decoder.Decode(v, r.URL.Query())
}

func UseForm[T any](v T, r *http.Request) (T, error) {
	if err := r.ParseForm(); err != nil {
		return v, err
	}
	return v, Decoder.Decode(v, r.Form)
}

// GetLastQueryParam returns the last occurrence of a query parameter.
// HTMX hx-include appends form values to the URL, so the last value is the
// current one.
func GetLastQueryParam(r *http.Request, key string) string {
	values := r.URL.Query()[key]
	if len(values) > 0 {
		return values[len(values)-1]
	}
	return ""
}

// QueryInt parses an integer query parameter, returning def when it is
// missing or malformed.
func QueryInt(r *http.Request, key string, def int) int {
	raw := GetLastQueryParam(r, key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
