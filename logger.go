package shaderlab

import (
	"log/slog"

	"github.com/gogpu/shaderlab/internal/logging"
)

// SetLogger configures the logger for shaderlab and all its sub-packages.
// By default, shaderlab produces no log output. Call SetLogger to enable
// logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by shaderlab:
//   - [slog.LevelDebug]: per-uniform detail (values preserved across reload,
//     resolved binding slots, include expansion)
//   - [slog.LevelInfo]: lifecycle events (shader loaded, reload triggered)
//   - [slog.LevelWarn]: recoverable input problems (malformed annotation,
//     unknown directive, declared-type mismatch)
//   - [slog.LevelError]: failed loads (missing file, include cycle,
//     compiler diagnostic)
//
// Example:
//
//	// Enable info-level logging to stderr:
//	shaderlab.SetLogger(slog.Default())
//
//	// Enable debug-level logging for full diagnostics:
//	shaderlab.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger used by shaderlab.
// Sub-packages (annot, uniform, preprocess, backend/...) share the same
// logger configuration.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Get()
}
