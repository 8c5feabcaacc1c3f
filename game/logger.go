package game

import (
	"log/slog"
	"sync/atomic"
)

var (
	quiet  = slog.New(slog.DiscardHandler)
	logger atomic.Pointer[slog.Logger]
)

// SetLogger routes session logs to l; nil discards them again, which is also the state
// before the first call.
//
// Records written:
//   - [slog.LevelInfo]: a game starts, stops or pauses, or sets a new high score
//   - [slog.LevelDebug]: settings changes, achievements, rows starting to clear
//   - [slog.LevelWarn]: the high score or a setting could not be read or saved
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

// Logger is what sessions and the inspector log through.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return quiet
}
