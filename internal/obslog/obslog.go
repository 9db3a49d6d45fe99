// Package obslog holds the process-wide zap logger. Commands that own the
// terminal (the TUI) log to a file so log lines do not fight the screen;
// everything else defaults to stderr.
package obslog

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var globalLogger = zap.NewNop()

// L returns the process logger. Before Init it is a nop logger.
func L() *zap.Logger { return globalLogger }

// Init builds the process logger. An empty filePath logs to stderr; a
// non-empty one appends to that file instead.
func Init(level, filePath string) error {
	parsedLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		parsedLevel = zapcore.InfoLevel
	}

	encoder := zapcore.NewConsoleEncoder(zap.NewProductionEncoderConfig())

	var sink zapcore.WriteSyncer = zapcore.AddSync(os.Stderr)
	if filePath != "" {
		if err := os.MkdirAll(filepath.Dir(filePath), 0o700); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		file, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		sink = zapcore.AddSync(file)
	}

	globalLogger = zap.New(zapcore.NewCore(encoder, sink, parsedLevel))
	return nil
}

// InitQuiet guarantees nothing is logged to the terminal: with an empty
// filePath it picks a file under the user cache directory, and if no file
// can be opened at all it silences the logger entirely. Commands that draw
// the screen call this before taking over the terminal.
func InitQuiet(level, filePath string) {
	if filePath == "" {
		if dir, err := os.UserCacheDir(); err == nil {
			filePath = filepath.Join(dir, "roomwatch", "rw.log")
		}
	}

	if filePath == "" || Init(level, filePath) != nil {
		globalLogger = zap.NewNop()
	}
}

// Sync flushes buffered log entries. Safe to call on the nop logger.
func Sync() {
	_ = globalLogger.Sync()
}
