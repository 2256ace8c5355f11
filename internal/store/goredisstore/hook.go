package goredisstore

import (
	"context"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// loggingHook writes every dial and command to the logger at debug level.
type loggingHook struct {
	log *zap.Logger
}

var _ redis.Hook = (*loggingHook)(nil)

func newLoggingHook(log *zap.Logger) *loggingHook {
	return &loggingHook{log: log}
}

func (h *loggingHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		start := time.Now()
		conn, err := next(ctx, network, addr)
		if err != nil {
			h.log.Debug("dial failed",
				zap.String("network", network),
				zap.String("addr", addr),
				zap.Error(err))
			return nil, err
		}
		h.log.Debug("dialed",
			zap.String("network", network),
			zap.String("addr", addr),
			zap.Duration("took", time.Since(start)))
		return conn, nil
	}
}

func (h *loggingHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		if !h.log.Core().Enabled(zap.DebugLevel) {
			return next(ctx, cmd)
		}
		start := time.Now()
		err := next(ctx, cmd)
		h.log.Debug("command",
			zap.String("cmd", cmdString(cmd)),
			zap.Duration("took", time.Since(start)))
		return err
	}
}

func (h *loggingHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		if !h.log.Core().Enabled(zap.DebugLevel) {
			return next(ctx, cmds)
		}
		start := time.Now()
		err := next(ctx, cmds)
		for _, cmd := range cmds {
			h.log.Debug("pipelined command", zap.String("cmd", cmdString(cmd)))
		}
		h.log.Debug("pipeline",
			zap.Int("cmds", len(cmds)),
			zap.Duration("took", time.Since(start)))
		return err
	}
}
