// Package logging builds the zap logger used by the scoreboard and bridges
// go-redis' internal logger into it.
package logging

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger writing to w. level is a zap level name ("debug",
// "info", ...) and format is "console" or "json".
func New(level, format string, w zapcore.WriteSyncer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	var enc zapcore.Encoder
	switch format {
	case "", "console":
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(cfg)
	case "json":
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	default:
		return nil, fmt.Errorf("logging: unknown format %q", format)
	}

	return zap.New(zapcore.NewCore(enc, w, lvl)), nil
}

// RedisLogger adapts a zap logger to the Printf logger go-redis expects in
// redis.SetLogger. go-redis only logs when something went wrong, so messages
// are written at warn level.
type RedisLogger struct {
	log    *zap.Logger
	denied []string
}

// NewRedisLogger returns a RedisLogger that drops every message containing one
// of the denied substrings.
func NewRedisLogger(l *zap.Logger, denied ...string) *RedisLogger {
	return &RedisLogger{
		log:    l.WithOptions(zap.AddCallerSkip(1)).Named("redis"),
		denied: denied,
	}
}

func (l *RedisLogger) Printf(_ context.Context, format string, v ...interface{}) {
	if !l.log.Core().Enabled(zap.WarnLevel) {
		return
	}
	msg := fmt.Sprintf(format, v...)
	for _, substr := range l.denied {
		if strings.Contains(msg, substr) {
			return
		}
	}
	l.log.Warn(strings.TrimPrefix(msg, "redis: "))
}
