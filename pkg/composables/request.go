package composables

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/plexdi/studio/pkg/constants"
)

var (
	ErrNoLogger = errors.New("logger not found in context")
)

// Params holds per-request values attached by the request middleware.
type Params struct {
	IP           string
	UserAgent    string
	Writer       http.ResponseWriter
	Request      *http.Request
	RequestStart time.Time
}

// UseParams returns the request params from the context.
func UseParams(ctx context.Context) (*Params, bool) {
	params, ok := ctx.Value(constants.ParamsKey).(*Params)
	return params, ok
}

func WithParams(ctx context.Context, params *Params) context.Context {
	return context.WithValue(ctx, constants.ParamsKey, params)
}

// UseLogger returns the request-scoped logger entry from the context,
// falling back to the standard logger so handlers can always log.
func UseLogger(ctx context.Context) *logrus.Entry {
	logger, ok := ctx.Value(constants.LoggerKey).(*logrus.Entry)
	if !ok {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return logger
}

func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, constants.LoggerKey, logger)
}

// MustUseLogger is UseLogger for call sites where a missing logger is a
// programming error.
func MustUseLogger(ctx context.Context) *logrus.Entry {
	logger, ok := ctx.Value(constants.LoggerKey).(*logrus.Entry)
	if !ok {
		panic(ErrNoLogger)
	}
	return logger
}
