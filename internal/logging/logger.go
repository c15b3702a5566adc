// Package logging provides structured logging for patch runs.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger writes structured JSON records of a patch run to a file.
type Logger struct {
	zap *zap.Logger
}

// NewLogger creates a Logger that appends to the file at logPath. An empty
// path disables logging.
func NewLogger(logPath string) (*Logger, error) {
	if logPath == "" {
		return &Logger{zap: zap.NewNop()}, nil
	}

	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(logFile),
		zapcore.InfoLevel,
	)

	return &Logger{zap: zap.New(core)}, nil
}

// Close syncs the logger (should be called on shutdown).
func (l *Logger) Close() error {
	return l.zap.Sync()
}

// FileResolved logs where a patch-recorded path was found on disk.
func (l *Logger) FileResolved(patchPath, target string) {
	l.zap.Info("file resolved",
		zap.String("patch_path", patchPath),
		zap.String("target", target),
	)
}

// FileMissing logs a patch path that matched no file under the base dir.
func (l *Logger) FileMissing(patchPath string) {
	l.zap.Warn("file not found", zap.String("patch_path", patchPath))
}

// HunkApplied logs a successful hunk reversal.
func (l *Logger) HunkApplied(file string, line, hint int, moved bool) {
	l.zap.Info("hunk applied",
		zap.String("file", file),
		zap.Int("line", line),
		zap.Int("hint", hint),
		zap.Bool("moved", moved),
	)
}

// HunkSkipped logs a hunk that could not be located.
func (l *Logger) HunkSkipped(file string, hint int) {
	l.zap.Warn("hunk skipped",
		zap.String("file", file),
		zap.Int("hint", hint),
	)
}

// FilePatched logs the per-file outcome after all hunks were attempted.
func (l *Logger) FilePatched(file string, applied, skipped int, modified bool) {
	l.zap.Info("file processed",
		zap.String("file", file),
		zap.Int("applied", applied),
		zap.Int("skipped", skipped),
		zap.Bool("modified", modified),
	)
}

// Error logs an error.
func (l *Logger) Error(msg string, err error) {
	l.zap.Error(msg, zap.Error(err))
}
