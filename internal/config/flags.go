package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/redis/go-redis/example/scoreboard"
)

// flagValues receives parsed flags. Only flags the user set are copied into
// the Config, so that a config file is not overridden by flag defaults.
type flagValues struct {
	config      string
	url         string
	host        string
	port        int
	db          int
	username    string
	password    string
	key         string
	top         int64
	ascending   bool
	entries     []string
	driver      string
	dialTimeout time.Duration
	timeout     time.Duration
	logLevel    string
	logFormat   string
	metrics     bool
	trace       bool
}

func newFlagValues(fs *pflag.FlagSet, def *Config) *flagValues {
	fv := new(flagValues)

	defEntries := make([]string, len(def.Entries))
	for i, e := range def.Entries {
		defEntries[i] = e.Name + "=" + scoreboard.FormatScore(e.Score)
	}

	fs.StringVar(&fv.config, "config", "", "TOML config file")
	fs.StringVar(&fv.url, "url", "", "redis:// URL, overrides host, port, db and credentials")
	fs.StringVar(&fv.host, "host", def.Store.Host, "store host")
	fs.IntVar(&fv.port, "port", def.Store.Port, "store port")
	fs.IntVar(&fv.db, "db", def.Store.DB, "database index")
	fs.StringVar(&fv.username, "username", def.Store.Username, "ACL username")
	fs.StringVar(&fv.password, "password", def.Store.Password, "password")
	fs.StringVar(&fv.key, "key", def.Key, "sorted set key")
	fs.Int64Var(&fv.top, "top", def.Top, "number of entries to fetch")
	fs.BoolVar(&fv.ascending, "ascending", def.Ascending, "fetch lowest scores first")
	fs.StringArrayVar(&fv.entries, "entry", defEntries, "name=score entry to upsert (repeatable)")
	fs.StringVar(&fv.driver, "driver", def.Driver, "store client: go-redis or redigo")
	fs.DurationVar(&fv.dialTimeout, "dial-timeout", def.Store.DialTimeout, "connect timeout")
	fs.DurationVar(&fv.timeout, "timeout", def.Timeout, "deadline for the whole run, 0 for none")
	fs.StringVar(&fv.logLevel, "log-level", def.Log.Level, "log level: debug, info, warn, error")
	fs.StringVar(&fv.logFormat, "log-format", def.Log.Format, "log format: console or json")
	fs.BoolVar(&fv.metrics, "metrics", def.Metrics, "dump Prometheus metrics to stderr on exit")
	fs.BoolVar(&fv.trace, "trace", def.Trace, "write OpenTelemetry spans to stderr")
	return fv
}

func (fv *flagValues) apply(cfg *Config, name string) error {
	switch name {
	case "config":
	case "url":
		cfg.URL = fv.url
	case "host":
		cfg.Store.Host = fv.host
	case "port":
		cfg.Store.Port = fv.port
	case "db":
		cfg.Store.DB = fv.db
	case "username":
		cfg.Store.Username = fv.username
	case "password":
		cfg.Store.Password = fv.password
	case "key":
		cfg.Key = fv.key
	case "top":
		cfg.Top = fv.top
	case "ascending":
		cfg.Ascending = fv.ascending
	case "entry":
		cfg.Entries = cfg.Entries[:0]
		for _, s := range fv.entries {
			e, err := scoreboard.ParseEntry(s)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			cfg.Entries = append(cfg.Entries, EntryConfig{Name: e.Name, Score: e.Score})
		}
	case "driver":
		cfg.Driver = fv.driver
	case "dial-timeout":
		cfg.Store.DialTimeout = fv.dialTimeout
	case "timeout":
		cfg.Timeout = fv.timeout
	case "log-level":
		cfg.Log.Level = fv.logLevel
	case "log-format":
		cfg.Log.Format = fv.logFormat
	case "metrics":
		cfg.Metrics = fv.metrics
	case "trace":
		cfg.Trace = fv.trace
	default:
		return fmt.Errorf("config: unhandled flag %q", name)
	}
	return nil
}
