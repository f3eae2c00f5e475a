// Package logger provides a context-aware logging facade backed by zap.
package logger

import (
	"context"
	"os"

	"github.com/DrWallflower/minibank/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the logging interface the rest of the application depends on.
type Logger interface {
	// With returns a logger carrying the given key-value pairs plus the
	// request id found in ctx, if any.
	With(ctx context.Context, args ...interface{}) Logger

	Debug(args ...interface{})
	Info(args ...interface{})
	Error(args ...interface{})

	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})

	Sync() error
}

type logger struct {
	*zap.SugaredLogger
}

// New builds a Logger from the application configuration: console output
// always, plus a rotating file sink when a log path is configured.
func New(cfg *config.Config) Logger {
	level := zap.InfoLevel
	if cfg.Logger.Level != "" {
		_ = level.Set(cfg.Logger.Level)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(os.Stderr),
			level,
		),
	}

	if cfg.Logger.Path != "" {
		rotated := &lumberjack.Logger{
			Filename:   cfg.Logger.Path,
			MaxSize:    cfg.Logger.MaxSizeMB,
			MaxBackups: cfg.Logger.MaxBackups,
			MaxAge:     cfg.Logger.MaxAgeDays,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(rotated),
			level,
		))
	}

	return &logger{zap.New(zapcore.NewTee(cores...)).Sugar()}
}

// NewWithZap wraps an existing zap logger. Handy for tests.
func NewWithZap(l *zap.Logger) Logger {
	return &logger{l.Sugar()}
}

func (l *logger) With(ctx context.Context, args ...interface{}) Logger {
	if ctx != nil {
		if id, ok := ctx.Value(requestIDKey).(string); ok {
			args = append(args, "request_id", id)
		}
	}
	if len(args) > 0 {
		return &logger{l.SugaredLogger.With(args...)}
	}
	return l
}

func (l *logger) Sync() error {
	return l.SugaredLogger.Sync()
}

type contextKey int

const requestIDKey contextKey = iota

// WithRequestID attaches a request id to ctx for later extraction by With.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}
