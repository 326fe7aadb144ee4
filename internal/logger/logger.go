// Package logger provides structured logging for erpfixture using zap.
//
// Command output goes to stdout, so log lines default to stderr. A log file,
// when configured, receives a copy of every line.
package logger

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dbsmedya/erpfixture/internal/config"
)

// Name is attached to every entry as the logger name.
const Name = "erpfixture"

// Logger wraps zap.SugaredLogger with fixture context helpers.
type Logger struct {
	*zap.SugaredLogger
	base *zap.Logger
	file *os.File // nil unless logging to a file
}

// New creates a Logger from configuration. It fails when the configured log
// file cannot be opened.
func New(cfg *config.LoggingConfig) (*Logger, error) {
	sink, file, err := openSink(cfg.Output)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(buildEncoder(cfg.Format), sink, parseLevel(cfg.Level))
	base := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)).Named(Name)

	return &Logger{SugaredLogger: base.Sugar(), base: base, file: file}, nil
}

// NewDefault creates an info-level text Logger on stderr.
func NewDefault() *Logger {
	log, _ := New(&config.LoggingConfig{Level: "info", Format: "text", Output: "stderr"})
	return log
}

// NewNop returns a Logger that discards everything.
func NewNop() *Logger {
	base := zap.NewNop()
	return &Logger{SugaredLogger: base.Sugar(), base: base}
}

// parseLevel falls back to info for empty or unknown levels.
func parseLevel(level string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil || level == "" {
		return zapcore.InfoLevel
	}
	return lvl
}

// buildEncoder returns a JSON encoder for "json" and a colored console
// encoder for anything else. Both use ISO-8601 times under "time".
func buildEncoder(format string) zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "time"
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.EncodeDuration = zapcore.StringDurationEncoder

	if format == "json" {
		return zapcore.NewJSONEncoder(ec)
	}
	ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(ec)
}

// openSink maps an output setting to a write syncer. A file path yields the
// opened file as well, tee'd with stderr.
func openSink(output string) (zapcore.WriteSyncer, *os.File, error) {
	switch output {
	case "stdout":
		return zapcore.Lock(os.Stdout), nil, nil
	case "stderr", "":
		return zapcore.Lock(os.Stderr), nil, nil
	}

	file, err := os.OpenFile(output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return zapcore.NewMultiWriteSyncer(zapcore.AddSync(file), zapcore.Lock(os.Stderr)), file, nil
}

func (l *Logger) with(args ...interface{}) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(args...), base: l.base, file: l.file}
}

// WithEntity tags entries with the entity model they concern.
func (l *Logger) WithEntity(model string) *Logger {
	return l.with("model", model)
}

// WithStep tags entries with the generation step.
func (l *Logger) WithStep(step string) *Logger {
	return l.with("step", step)
}

// WithFields tags entries with every field, keys in sorted order so that
// repeated runs produce identical lines.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	args := make([]interface{}, 0, len(fields)*2)
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		args = append(args, k, fields[k])
	}
	return l.with(args...)
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	return l.base.Sync()
}

// Close flushes the logger and closes its log file, if any. Loggers derived
// with the With* helpers share the file, so close only the root logger.
func (l *Logger) Close() error {
	_ = l.base.Sync()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
