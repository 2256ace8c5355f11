// Package config resolves the scoreboard configuration from defaults, an
// optional TOML file, command line flags and a redis:// URL, in that order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"math"
	"net"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"

	"github.com/redis/go-redis/example/scoreboard"
)

// Store drivers.
const (
	DriverGoRedis = "go-redis"
	DriverRedigo  = "redigo"
)

// Config is the resolved scoreboard configuration.
type Config struct {
	Key       string        `toml:"key"`
	Top       int64         `toml:"top"`
	Ascending bool          `toml:"ascending"`
	Driver    string        `toml:"driver"`
	URL       string        `toml:"url"`
	Timeout   time.Duration `toml:"timeout"`
	Metrics   bool          `toml:"metrics"`
	Trace     bool          `toml:"trace"`

	Store   StoreConfig   `toml:"store"`
	Log     LogConfig     `toml:"log"`
	Entries []EntryConfig `toml:"entries"`
}

type StoreConfig struct {
	Host        string        `toml:"host"`
	Port        int           `toml:"port"`
	DB          int           `toml:"db"`
	Username    string        `toml:"username"`
	Password    string        `toml:"password"`
	DialTimeout time.Duration `toml:"dial_timeout"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type EntryConfig struct {
	Name  string  `toml:"name"`
	Score float64 `toml:"score"`
}

// Default returns the configuration of the plain, flagless run.
func Default() *Config {
	cfg := &Config{
		Key:    scoreboard.DefaultKey,
		Top:    3,
		Driver: DriverGoRedis,
		Store: StoreConfig{
			Host:        "127.0.0.1",
			Port:        6379,
			DialTimeout: 5 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
	for _, e := range scoreboard.DefaultEntries() {
		cfg.Entries = append(cfg.Entries, EntryConfig{Name: e.Name, Score: e.Score})
	}
	return cfg
}

// LoadFile decodes the TOML file at path over cfg. Keys absent from the file
// keep their current values; entries in the file replace all entries.
func LoadFile(cfg *Config, path string) error {
	entries := cfg.Entries
	cfg.Entries = nil
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if !md.IsDefined("entries") {
		cfg.Entries = entries
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config: %s: unknown key %q", path, undecoded[0].String())
	}
	return nil
}

// Validate reports the first invalid setting.
func (cfg *Config) Validate() error {
	switch {
	case cfg.Key == "":
		return errors.New("config: key is empty")
	case cfg.Top < 0:
		return fmt.Errorf("config: top must not be negative, got %d", cfg.Top)
	case cfg.Driver != DriverGoRedis && cfg.Driver != DriverRedigo:
		return fmt.Errorf("config: unknown driver %q", cfg.Driver)
	case cfg.Timeout < 0:
		return fmt.Errorf("config: timeout must not be negative, got %s", cfg.Timeout)
	}
	if cfg.URL == "" {
		if cfg.Store.Host == "" {
			return errors.New("config: store host is empty")
		}
		if cfg.Store.Port <= 0 || cfg.Store.Port > 65535 {
			return fmt.Errorf("config: store port %d out of range", cfg.Store.Port)
		}
		if cfg.Store.DB < 0 {
			return fmt.Errorf("config: store db must not be negative, got %d", cfg.Store.DB)
		}
	}
	for i, e := range cfg.Entries {
		if e.Name == "" {
			return fmt.Errorf("config: entry %d has no name", i)
		}
		if math.IsNaN(e.Score) {
			return fmt.Errorf("config: entry %q has NaN score", e.Name)
		}
	}
	return nil
}

// Addr returns the store address as host:port.
func (cfg *Config) Addr() string {
	return net.JoinHostPort(cfg.Store.Host, strconv.Itoa(cfg.Store.Port))
}

// RedisOptions returns go-redis options for the store. A URL, when set,
// replaces host, port, db and credentials.
func (cfg *Config) RedisOptions() (*redis.Options, error) {
	if cfg.URL != "" {
		opt, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if cfg.Store.DialTimeout > 0 {
			opt.DialTimeout = cfg.Store.DialTimeout
		}
		return opt, nil
	}
	return &redis.Options{
		Addr:        cfg.Addr(),
		DB:          cfg.Store.DB,
		Username:    cfg.Store.Username,
		Password:    cfg.Store.Password,
		DialTimeout: cfg.Store.DialTimeout,
	}, nil
}

// ScoreEntries returns the configured seed entries.
func (cfg *Config) ScoreEntries() []scoreboard.Entry {
	entries := make([]scoreboard.Entry, len(cfg.Entries))
	for i, e := range cfg.Entries {
		entries[i] = scoreboard.Entry{Name: e.Name, Score: e.Score}
	}
	return entries
}

// Request returns the run described by cfg.
func (cfg *Config) Request() scoreboard.Request {
	return scoreboard.Request{
		Entries:   cfg.ScoreEntries(),
		Top:       cfg.Top,
		Ascending: cfg.Ascending,
	}
}

// Load resolves the configuration from args (without the program name).
// It returns pflag.ErrHelp when help was requested.
func Load(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("scoreboard", pflag.ContinueOnError)
	fv := newFlagValues(fs, Default())
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("config: unexpected argument %q", fs.Arg(0))
	}

	cfg := Default()
	if fv.config != "" {
		if err := LoadFile(cfg, fv.config); err != nil {
			return nil, err
		}
	}

	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err == nil {
			err = fv.apply(cfg, f.Name)
		}
	})
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
