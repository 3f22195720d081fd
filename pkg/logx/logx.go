// Package logx is the process-wide logger. It wraps a zap SugaredLogger so call
// sites keep a printf-style API while output stays structured.
package logx

import (
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level is the minimum severity that gets written
type Level = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

// Options configures the global logger
type Options struct {
	Level      string
	Format     string // json | console
	File       string // optional, rotated with lumberjack
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

var (
	mu     sync.RWMutex
	level  = zap.NewAtomicLevelAt(LevelInfo)
	sugar  = newLogger(Options{Format: "console"}, os.Stdout).Sugar()
	closer io.Closer
)

// Configure rebuilds the global logger from opts
func Configure(opts Options) error {
	if opts.Level != "" {
		var lvl zapcore.Level
		if err := lvl.UnmarshalText([]byte(strings.ToLower(opts.Level))); err != nil {
			return err
		}
		level.SetLevel(lvl)
	}

	var out io.Writer = os.Stdout
	var rotator *lumberjack.Logger
	if opts.File != "" {
		rotator = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, 10),
			MaxBackups: orDefault(opts.MaxBackups, 5),
			MaxAge:     orDefault(opts.MaxAgeDays, 30),
			Compress:   true,
		}
		out = io.MultiWriter(os.Stdout, rotator)
	}

	mu.Lock()
	defer mu.Unlock()
	if closer != nil {
		_ = closer.Close()
		closer = nil
	}
	if rotator != nil {
		closer = rotator
	}
	sugar = newLogger(opts, out).Sugar()
	return nil
}

// SetOutput redirects the logger to w, keeping the current level. Used by tests.
func SetOutput(w io.Writer, format string) {
	mu.Lock()
	defer mu.Unlock()
	sugar = newLogger(Options{Format: format}, w).Sugar()
}

func newLogger(opts Options, w io.Writer) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.MessageKey = "message"

	var enc zapcore.Encoder
	if opts.Format == "json" {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), level)
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

// SetLevel changes the minimum level at runtime
func SetLevel(l Level) { level.SetLevel(l) }

// GetLevel returns the current minimum level
func GetLevel() Level { return level.Level() }

func Debug(args ...any)                 { current().Debug(args...) }
func Debugf(format string, args ...any) { current().Debugf(format, args...) }
func Info(args ...any)                  { current().Info(args...) }
func Infof(format string, args ...any)  { current().Infof(format, args...) }
func Warn(args ...any)                  { current().Warn(args...) }
func Warnf(format string, args ...any)  { current().Warnf(format, args...) }
func Error(args ...any)                 { current().Error(args...) }
func Errorf(format string, args ...any) { current().Errorf(format, args...) }
func Fatalf(format string, args ...any) { current().Fatalf(format, args...) }

// With returns a child logger carrying key/value pairs
func With(keysAndValues ...any) *zap.SugaredLogger {
	return current().With(keysAndValues...)
}

// Sync flushes buffered entries
func Sync() error {
	return current().Sync()
}

// Truncate shortens s to limit runes, appending an ellipsis when cut
func Truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
