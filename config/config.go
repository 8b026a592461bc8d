// Package config loads the settings of the cgt command: the fiscal calendar,
// the engine tolerances, and the log level.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/fifotax"
	"github.com/etnz/fifotax/date"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DefaultPath is the configuration file read when none is given.
const DefaultPath = "cgt.toml"

// Config is the content of the configuration file.
type Config struct {
	Fiscal  FiscalConfig  `toml:"fiscal"`
	Engine  EngineConfig  `toml:"engine"`
	Logging LoggingConfig `toml:"logging"`
}

// FiscalConfig defines the start of the fiscal year.
type FiscalConfig struct {
	StartMonth int `toml:"start_month"`
	StartDay   int `toml:"start_day"`
}

// EngineConfig holds the settings of the matching engine.
type EngineConfig struct {
	Currency string `toml:"currency"`
	// Epsilon is a decimal string, e.g. "1e-8", to avoid float rounding.
	Epsilon string `toml:"epsilon"`
}

// LoggingConfig holds the logging settings.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Fiscal: FiscalConfig{
			StartMonth: int(date.DefaultFiscalCalendar.StartMonth),
			StartDay:   date.DefaultFiscalCalendar.StartDay,
		},
		Engine: EngineConfig{
			Currency: fifotax.DefaultCurrency,
			Epsilon:  fifotax.DefaultEpsilon.String(),
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Load reads the TOML file at path on top of the defaults, then applies the
// CGT_* environment variables, also read from a .env file if present.
// A missing file is not an error. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnvOverrides overwrites the fields whose CGT_* variable is set.
func applyEnvOverrides(cfg *Config) {
	setInt(&cfg.Fiscal.StartMonth, "CGT_FISCAL_START_MONTH")
	setInt(&cfg.Fiscal.StartDay, "CGT_FISCAL_START_DAY")
	setStr(&cfg.Engine.Currency, "CGT_CURRENCY")
	setStr(&cfg.Engine.Epsilon, "CGT_EPSILON")
	setStr(&cfg.Logging.Level, "CGT_LOG_LEVEL")
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// Validate checks every field and returns a combined error describing every
// problem found.
func (c *Config) Validate() error {
	var errs []error

	if _, err := c.Calendar(); err != nil {
		errs = append(errs, fmt.Errorf("fiscal: %w", err))
	}
	if len(c.Engine.Currency) != 3 || strings.ToUpper(c.Engine.Currency) != c.Engine.Currency {
		errs = append(errs, fmt.Errorf("engine: currency must be an upper case ISO 4217 code, got %q", c.Engine.Currency))
	}
	if eps, err := c.epsilon(); err != nil {
		errs = append(errs, fmt.Errorf("engine: invalid epsilon %q: %w", c.Engine.Epsilon, err))
	} else if !eps.IsPositive() {
		errs = append(errs, fmt.Errorf("engine: epsilon must be positive, got %s", eps))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}
	return errors.Join(errs...)
}

// Calendar returns the fiscal calendar.
func (c *Config) Calendar() (date.FiscalCalendar, error) {
	return date.NewFiscalCalendar(time.Month(c.Fiscal.StartMonth), c.Fiscal.StartDay)
}

func (c *Config) epsilon() (decimal.Decimal, error) { return decimal.NewFromString(c.Engine.Epsilon) }

// Level returns the configured log level.
func (c *Config) Level() (zerolog.Level, error) {
	return zerolog.ParseLevel(strings.ToLower(c.Logging.Level))
}

// Options returns the engine options, logging to logger. c must be valid.
func (c *Config) Options(logger *zerolog.Logger) fifotax.Options {
	cal, _ := c.Calendar()
	eps, _ := c.epsilon()
	return fifotax.Options{
		Calendar: cal,
		Epsilon:  fifotax.Q(eps),
		Currency: c.Engine.Currency,
		Logger:   logger,
	}
}
