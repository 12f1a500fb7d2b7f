// Package swlog provides swarmweld's thin wrapper over zap, following the
// same "wrap one logger, pass it explicitly" pattern go.viam.com/rdk/logging
// uses around zap.
package swlog

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// Logger is swarmweld's logging handle. It is always a *zap.SugaredLogger so
// call sites use the structured key/value calling convention (Infow, Debugw,
// Warnw) rather than printf-style formatting.
type Logger = *zap.SugaredLogger

// NewDevelopment returns a human-readable logger suitable for the demo binary.
func NewDevelopment() Logger {
	l, err := zap.NewDevelopment()
	if err != nil {
		// zap.NewDevelopment only fails on a broken encoder config; the
		// default config cannot fail, so treat this as unreachable.
		panic(err)
	}
	return l.Sugar()
}

// NewNop returns a logger that discards everything, for library defaults.
func NewNop() Logger {
	return zap.NewNop().Sugar()
}

// NewTest returns a logger that writes through tb.Log, mirroring
// logging.NewTestLogger(t) from the rdk test helpers.
func NewTest(tb testing.TB) Logger {
	return zaptest.NewLogger(tb).Sugar()
}
