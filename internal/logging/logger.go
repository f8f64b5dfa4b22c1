// Package logging builds the application's zap logger.
package logging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls log level, console format, and optional file output.
type Config struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console or json
	File   string `yaml:"file"`   // rotating JSON log file; empty disables

	MaxSizeMB  int  `yaml:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups"`
	MaxAgeDays int  `yaml:"max_age_days"`
	Compress   bool `yaml:"compress"`
}

// DefaultConfig logs info and above to the console.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Format:     "console",
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Compress:   true,
	}
}

// New returns a logger that writes to stderr and, when cfg.File is set,
// to a rotating JSON file as well.
func New(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}

	consoleCore, err := newConsoleCore(cfg.Format, level)
	if err != nil {
		return nil, err
	}
	cores := []zapcore.Core{consoleCore}

	if cfg.File != "" {
		fileCore, err := newFileCore(cfg, level)
		if err != nil {
			return nil, err
		}
		cores = append(cores, fileCore)
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

func newConsoleCore(format string, level zapcore.Level) (zapcore.Core, error) {
	var enc zapcore.Encoder
	switch strings.ToLower(format) {
	case "", "console":
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	case "json":
		enc = zapcore.NewJSONEncoder(jsonEncoderConfig())
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return zapcore.NewCore(enc, zapcore.Lock(consoleSyncer{os.Stderr}), level), nil
}

// consoleSyncer drops the errors fsync returns for pipes and terminals,
// which cannot be synced.
type consoleSyncer struct {
	zapcore.WriteSyncer
}

func (s consoleSyncer) Sync() error {
	err := s.WriteSyncer.Sync()
	if errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) {
		return nil
	}
	return err
}

// newFileCore creates a core that writes JSON lines to a rotating file.
func newFileCore(cfg Config, level zapcore.Level) (zapcore.Core, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	})

	return zapcore.NewCore(zapcore.NewJSONEncoder(jsonEncoderConfig()), writer, level), nil
}

func jsonEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey:     "message",
		LevelKey:       "level",
		TimeKey:        "time",
		NameKey:        "logger",
		CallerKey:      "caller",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}
