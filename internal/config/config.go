// Package config loads a transportation problem and the solver settings for
// the transport command.
//
// Sources, highest precedence first: command-line flags, LVT_* environment
// variables (LVT_SOLVER_EPSILON, LVT_LOG_LEVEL, ...), the problem file
// (YAML, JSON or TOML, picked by extension), built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/lvtransport/internal/logging"
	"github.com/katalvlaran/lvtransport/transport"
)

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "LVT"

// ErrNoProblemFile is returned when Load gets an empty path.
var ErrNoProblemFile = errors.New("config: no problem file given")

// Config is the decoded problem file.
type Config struct {
	Costs  [][]float64 `mapstructure:"costs"  validate:"required,min=1,dive,min=1,dive,gte=0"`
	Supply []float64   `mapstructure:"supply" validate:"required,min=1,dive,gte=0"`
	Demand []float64   `mapstructure:"demand" validate:"required,min=1,dive,gte=0"`
	Format string      `mapstructure:"format" validate:"oneof=text json"`
	Solver Solver      `mapstructure:"solver"`
	Log    Log         `mapstructure:"log"`
}

// Solver holds engine settings.
type Solver struct {
	Sentinel      float64 `mapstructure:"sentinel"       validate:"gt=0"`
	Epsilon       float64 `mapstructure:"epsilon"        validate:"gte=0,ltfield=Sentinel"`
	MaxIterations int     `mapstructure:"max_iterations" validate:"gte=0"`
	Balance       bool    `mapstructure:"balance"`
}

// Log mirrors logging.Config.
type Log struct {
	Level      string `mapstructure:"level"       validate:"oneof=debug info warn error"`
	Format     string `mapstructure:"format"      validate:"oneof=text json"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"    validate:"gte=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
	MaxAge     int    `mapstructure:"max_age"     validate:"gte=0"`
	Compress   bool   `mapstructure:"compress"`
}

// flagKeys binds command-line flag names to config keys.
var flagKeys = map[string]string{
	"balance":        "solver.balance",
	"max-iterations": "solver.max_iterations",
	"format":         "format",
	"log-level":      "log.level",
	"log-format":     "log.format",
	"log-file":       "log.file",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("format", "text")
	v.SetDefault("solver.sentinel", transport.DefaultSentinel)
	v.SetDefault("solver.epsilon", transport.DefaultEpsilon)
	v.SetDefault("solver.max_iterations", 0)
	v.SetDefault("solver.balance", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
	v.SetDefault("log.compress", false)
}

// RegisterFlags adds the overridable settings to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Bool("balance", false, "add a dummy source or destination when totals differ")
	fs.Int("max-iterations", 0, "MODI pivot bound (0 = derived from the instance size)")
	fs.String("format", "text", "report format: text or json")
	fs.String("log-level", "info", "log level: debug, info, warn, error")
	fs.String("log-format", "text", "log format: text or json")
	fs.String("log-file", "", "rotate logs into this file instead of stderr")
}

// Load reads path, applies environment and flag overrides and validates the
// result. fs may be nil.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	if path == "" {
		return nil, ErrNoProblemFile
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if fs != nil {
		for name, key := range flagKeys {
			f := fs.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("config: bind flag %s: %w", name, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return &cfg, nil
}

// Instance returns the problem as a transport.Instance.
func (c *Config) Instance() transport.Instance {
	return transport.Instance{Costs: c.Costs, Supply: c.Supply, Demand: c.Demand}
}

// Options translates solver settings. Call only on a validated Config.
func (c *Config) Options() []transport.Option {
	opts := []transport.Option{
		transport.WithSentinel(c.Solver.Sentinel),
		transport.WithEpsilon(c.Solver.Epsilon),
		transport.WithMaxIterations(c.Solver.MaxIterations),
	}
	if c.Solver.Balance {
		opts = append(opts, transport.WithBalancing())
	}

	return opts
}

// Logging returns the logger settings.
func (c *Config) Logging() logging.Config {
	return logging.Config{
		Level:      c.Log.Level,
		Format:     c.Log.Format,
		File:       c.Log.File,
		MaxSize:    c.Log.MaxSize,
		MaxBackups: c.Log.MaxBackups,
		MaxAge:     c.Log.MaxAge,
		Compress:   c.Log.Compress,
	}
}
