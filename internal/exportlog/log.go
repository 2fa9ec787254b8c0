// Package exportlog carries a leveled logger on a context.Context, the way
// github.com/distribution/distribution/v3/context does for the registry.
// The export driver and reinjector pull their logger from the context given
// to them rather than taking a *logrus.Logger parameter directly, so callers
// that already thread a context for cancellation get logging "for free".
package exportlog

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

type loggerKey struct{}

// WithLogger returns a copy of ctx carrying logger, retrievable with
// GetLogger.
func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger returns the logger stashed on ctx, or the standard logrus
// logger if none was attached.
func GetLogger(ctx context.Context) *logrus.Entry {
	if l, ok := ctx.Value(loggerKey{}).(*logrus.Entry); ok && l != nil {
		return l
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

// WithFields returns a logger derived from the one on ctx with the given
// fields attached, without modifying ctx itself.
func WithFields(ctx context.Context, fields logrus.Fields) *logrus.Entry {
	return GetLogger(ctx).WithFields(fields)
}

// WithField is a convenience wrapper around WithFields for a single field.
func WithField(ctx context.Context, key string, value interface{}) *logrus.Entry {
	return GetLogger(ctx).WithField(key, fmt.Sprint(value))
}
