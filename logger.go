// Package glplay is a small real-time graphics core: matrix algebra (m3, m4),
// a Wavefront OBJ/MTL parser (wavefront), a GL program and resource manager (gpu)
// and concurrent asset loading (assets).
//
// This package only holds the logger shared by all sub-packages.
package glplay

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards all records. Enabled reports false so callers
// skip formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger used by glplay and its sub-packages.
// By default nothing is logged. Passing nil restores the silent default.
//
// Levels used:
//   - [slog.LevelDebug]: GPU resource lifecycle (create/delete of programs, textures, buffers).
//   - [slog.LevelWarn]: skipped scene statements (unknown keywords, malformed arguments).
//   - [slog.LevelError]: shader compiler and linker diagnostics.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. It is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
