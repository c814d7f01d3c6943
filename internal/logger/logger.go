// Package logger configures the process-wide zap logger. Output goes to a
// rotated file only: the terminal belongs to the TUI.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// L is the global sugared logger. It discards everything until Init.
	L = zap.NewNop().Sugar()
	// Z is the underlying zap logger.
	Z = zap.NewNop()

	closer io.Closer
)

// Config describes the log file and its rotation.
type Config struct {
	Level      string // debug, info, warn, error
	File       string // empty disables logging
	MaxSize    int    // megabytes per file
	MaxBackups int
	MaxAge     int // days
}

// ParseLevel maps a level name to a zap level.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unsupported log level %q", level)
	}
}

// Init replaces the global logger according to cfg. An unknown level falls
// back to info and is reported in the log. On error the logger discards.
func Init(cfg Config) error {
	level, levelErr := ParseLevel(cfg.Level)
	if strings.TrimSpace(cfg.File) == "" {
		Z = zap.NewNop()
		L = Z.Sugar()
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0750); err != nil {
		Z = zap.NewNop()
		L = Z.Sugar()
		return fmt.Errorf("create log directory: %w", err)
	}

	fileWriter := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    orDefault(cfg.MaxSize, 16),
		MaxBackups: orDefault(cfg.MaxBackups, 3),
		MaxAge:     orDefault(cfg.MaxAge, 14),
		Compress:   true,
	}
	Z = New(zapcore.AddSync(fileWriter), level)
	L = Z.Sugar()
	closer = fileWriter
	if levelErr != nil {
		L.Warnw("using info level", "error", levelErr)
	}
	return nil
}

// New builds a console-encoded logger writing to w.
func New(w zapcore.WriteSyncer, level zapcore.Level) *zap.Logger {
	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "T",
		LevelKey:       "L",
		NameKey:        "N",
		CallerKey:      "C",
		MessageKey:     "M",
		StacktraceKey:  "S",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), w, level)
	return zap.New(core, zap.AddCaller())
}

// Named returns a child of the global logger.
func Named(name string) *zap.SugaredLogger {
	return L.Named(name)
}

// Sync flushes buffered entries and closes the log file.
func Sync() {
	_ = Z.Sync()
	if closer != nil {
		_ = closer.Close()
		closer = nil
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
