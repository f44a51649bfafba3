// Package config loads bondcalc settings from defaults, an optional YAML
// file, a .env file and BONDCALC_* environment variables, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/meenmo/germanbond/export"
	"github.com/meenmo/germanbond/rates"
)

// EnvPrefix prefixes every environment override, e.g. BONDCALC_SOLVER_TOLERANCE.
const EnvPrefix = "BONDCALC"

// Config is the complete bondcalc configuration.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Solver SolverConfig `mapstructure:"solver"`
	Batch  BatchConfig  `mapstructure:"batch"`
	Export ExportConfig `mapstructure:"export"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"` // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"`
}

// SolverConfig mirrors rates.SolverConfig.
type SolverConfig struct {
	Tolerance      float64 `mapstructure:"tolerance"`
	RateTolerance  float64 `mapstructure:"rate_tolerance"`
	MaxIterations  int     `mapstructure:"max_iterations"`
	UpperBound     float64 `mapstructure:"upper_bound"`
	PriceTolerance float64 `mapstructure:"price_tolerance"` // 0 disables the supplied-price check
}

type BatchConfig struct {
	Workers int `mapstructure:"workers"` // 0 means one goroutine per bond
}

type ExportConfig struct {
	Decimals int32 `mapstructure:"decimals"`
	Extended bool  `mapstructure:"extended"`
}

// Load reads the configuration. With an empty path it searches
// ./bondcalc.yaml then ~/.bondcalc/bondcalc.yaml and a missing file is not an
// error; an explicit path must exist.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("bondcalc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".bondcalc"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := rates.DefaultSolverConfig

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	v.SetDefault("solver.tolerance", d.Tolerance)
	v.SetDefault("solver.rate_tolerance", d.RateTolerance)
	v.SetDefault("solver.max_iterations", d.MaxIterations)
	v.SetDefault("solver.upper_bound", d.UpperBound)
	v.SetDefault("solver.price_tolerance", 0.0)

	v.SetDefault("batch.workers", 0)

	v.SetDefault("export.decimals", export.DefaultDecimals)
	v.SetDefault("export.extended", false)
}

// Validate rejects settings the engines cannot work with.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level %q", c.Log.Level)
	}
	s := c.Solver
	if s.Tolerance <= 0 || s.RateTolerance <= 0 {
		return fmt.Errorf("solver tolerances must be positive (tolerance=%v, rate_tolerance=%v)", s.Tolerance, s.RateTolerance)
	}
	if s.MaxIterations <= 0 {
		return fmt.Errorf("solver.max_iterations must be positive, got %d", s.MaxIterations)
	}
	if s.UpperBound <= 0 {
		return fmt.Errorf("solver.upper_bound must be positive, got %v", s.UpperBound)
	}
	if s.PriceTolerance < 0 {
		return fmt.Errorf("solver.price_tolerance must not be negative, got %v", s.PriceTolerance)
	}
	if c.Batch.Workers < 0 {
		return fmt.Errorf("batch.workers must not be negative, got %d", c.Batch.Workers)
	}
	if c.Export.Decimals < 1 || c.Export.Decimals > 12 {
		return fmt.Errorf("export.decimals must be within [1, 12], got %d", c.Export.Decimals)
	}
	return nil
}

// SolverSettings converts the solver section for the engines.
func (c *Config) SolverSettings() rates.SolverConfig {
	return rates.SolverConfig{
		Tolerance:      c.Solver.Tolerance,
		RateTolerance:  c.Solver.RateTolerance,
		MaxIterations:  c.Solver.MaxIterations,
		UpperBound:     c.Solver.UpperBound,
		PriceTolerance: c.Solver.PriceTolerance,
	}.WithDefaults()
}

func (c *Config) ExportOptions() export.Options {
	return export.Options{Decimals: c.Export.Decimals, Extended: c.Export.Extended}
}
