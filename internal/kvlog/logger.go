// Package kvlog provides context-carried structured logging, grounded on
// internal/dcontext/logger.go: a logger lives on the context, driver and
// stream code pulls it out with GetLogger rather than taking a Logger
// parameter everywhere, and WithLogger/WithFields let a caller (the CLI,
// a driver's Put/Get) attach request-scoped fields as the context is
// threaded downward.
package kvlog

import (
	"context"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	defaultLogger   = logrus.StandardLogger().WithField("go.version", runtime.Version())
	defaultLoggerMu sync.RWMutex
)

type loggerKey struct{}

// WithLogger returns a context carrying logger, overriding any logger
// already present.
func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// WithFields returns a context whose logger has the given fields merged
// in, building on any logger already attached to ctx (or the process
// default, if none is).
func WithFields(ctx context.Context, fields logrus.Fields) context.Context {
	return WithLogger(ctx, GetLogger(ctx).WithFields(fields))
}

// GetLogger returns the logger attached to ctx, or the package default if
// none has been attached.
func GetLogger(ctx context.Context) *logrus.Entry {
	if l, ok := ctx.Value(loggerKey{}).(*logrus.Entry); ok {
		return l
	}

	defaultLoggerMu.RLock()
	defer defaultLoggerMu.RUnlock()
	return defaultLogger
}

// SetDefaultLogger replaces the logger used when no context logger has
// been attached, e.g. so cmd/kvfs can apply configured log level/format
// once at startup.
func SetDefaultLogger(logger *logrus.Entry) {
	defaultLoggerMu.Lock()
	defer defaultLoggerMu.Unlock()
	defaultLogger = logger
}
