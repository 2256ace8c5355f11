// Command scoreboard upserts a few ranked scores into a Redis sorted set and
// prints the top entries as "<name>: <score>" lines.
//
// Exit codes: 0 on success, 1 when the store can not be reached, 2 when the
// store rejects a command, 3 on invalid usage and 4 on any other failure,
// such as an unwritable stdout.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	redigo "github.com/gomodule/redigo/redis"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/redis/go-redis/example/scoreboard"
	"github.com/redis/go-redis/example/scoreboard/internal/config"
	"github.com/redis/go-redis/example/scoreboard/internal/logging"
	"github.com/redis/go-redis/example/scoreboard/internal/metrics"
	"github.com/redis/go-redis/example/scoreboard/internal/store/goredisstore"
	"github.com/redis/go-redis/example/scoreboard/internal/store/redigostore"
	"github.com/redis/go-redis/example/scoreboard/internal/telemetry"
)

const (
	exitOK = iota
	exitConnection
	exitCommand
	exitUsage
	exitFailure
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load(args)
	if errors.Is(err, pflag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format, zapcore.AddSync(stderr))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	defer func() { _ = log.Sync() }()
	redis.SetLogger(logging.NewRedisLogger(log))

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	clientOpts := []scoreboard.Option{
		scoreboard.WithKey(cfg.Key),
		scoreboard.WithLogger(log),
	}

	var tracing []goredisstore.Option
	if cfg.Trace {
		tp, shutdown, err := telemetry.Setup(stderr)
		if err != nil {
			log.Error("tracing setup failed", zap.Error(err))
			return exitUsage
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Warn("tracing shutdown failed", zap.Error(err))
			}
		}()
		clientOpts = append(clientOpts, scoreboard.WithTracerProvider(tp))
		tracing = append(tracing, goredisstore.WithTracerProvider(tp))
	}

	var reg *metrics.Registry
	if cfg.Metrics {
		reg = metrics.New()
		clientOpts = append(clientOpts, scoreboard.WithObserver(reg))
		defer func() {
			if err := reg.Dump(stderr); err != nil {
				log.Warn("metrics dump failed", zap.Error(err))
			}
		}()
	}

	store, err := newStore(cfg, log, reg, tracing)
	if err != nil {
		log.Error("invalid store configuration", zap.Error(err))
		return exitUsage
	}

	client := scoreboard.New(store, clientOpts...)
	err = scoreboard.Run(ctx, client, stdout, cfg.Request())
	return exitCode(log, err)
}

func newStore(
	cfg *config.Config, log *zap.Logger, reg *metrics.Registry, tracing []goredisstore.Option,
) (scoreboard.Store, error) {
	opt, err := cfg.RedisOptions()
	if err != nil {
		return nil, err
	}

	switch cfg.Driver {
	case config.DriverRedigo:
		network := opt.Network
		if network == "" {
			network = "tcp"
		}
		dialOpts := []redigo.DialOption{
			redigo.DialDatabase(opt.DB),
			redigo.DialUsername(opt.Username),
			redigo.DialPassword(opt.Password),
			redigo.DialConnectTimeout(opt.DialTimeout),
		}
		if opt.TLSConfig != nil {
			dialOpts = append(dialOpts, redigo.DialUseTLS(true), redigo.DialTLSConfig(opt.TLSConfig))
		}
		return redigostore.New(network, opt.Addr,
			redigostore.WithLogger(log),
			redigostore.WithDialOptions(dialOpts...),
		), nil
	default:
		store := goredisstore.New(opt, append(tracing, goredisstore.WithLogger(log))...)
		if reg != nil {
			if err := reg.RegisterPool(store); err != nil {
				return nil, err
			}
		}
		return store, nil
	}
}

func exitCode(log *zap.Logger, err error) int {
	switch {
	case err == nil:
		return exitOK
	case scoreboard.IsConnectionError(err):
		log.Error("connection error", zap.Error(err))
		return exitConnection
	case scoreboard.IsCommandError(err):
		log.Error("command error", zap.Error(err))
		return exitCommand
	default:
		log.Error("run failed", zap.Error(err))
		return exitFailure
	}
}
