// Package config provides configuration management.
// Values come from defaults, then an optional JSON file, then GROCERY_*
// environment variables (a .env file in the working directory is honored).
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"grocery-cost/core/types"
	"grocery-cost/internal/errors"
	"grocery-cost/internal/logging"
)

// EnvPrefix prefixes every environment override, e.g. GROCERY_SERVER_ADDRESS
const EnvPrefix = "GROCERY"

// BufferPercent is the fixed contingency added to every weekly total
const BufferPercent = 10

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" mapstructure:"version"`

	// Pricing contains pricing configuration
	Pricing PricingConfig `json:"pricing" mapstructure:"pricing"`

	// Defaults fill in request fields the caller leaves out
	Defaults DefaultsConfig `json:"defaults" mapstructure:"defaults"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server" mapstructure:"server"`

	// Output contains output configuration
	Output OutputConfig `json:"output" mapstructure:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging" mapstructure:"logging"`
}

// PricingConfig contains pricing-related settings
type PricingConfig struct {
	// Currency is the expected pricebook currency
	Currency types.Currency `json:"currency" mapstructure:"currency"`

	// PricebookPath is an HCL pricebook; empty uses the embedded one
	PricebookPath string `json:"pricebook_path" mapstructure:"pricebook_path"`

	// BufferPercent is informational; the buffer is always 10%
	BufferPercent int `json:"buffer_percent" mapstructure:"buffer_percent"`
}

// DefaultsConfig contains request defaults
type DefaultsConfig struct {
	Location  string         `json:"location" mapstructure:"location"`
	Headcount int            `json:"headcount" mapstructure:"headcount"`
	MealType  types.MealType `json:"meal_type" mapstructure:"meal_type"`
	Mode      string         `json:"mode" mapstructure:"mode"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Address is the listen address, e.g. ":8080"
	Address string `json:"address" mapstructure:"address"`

	ReadTimeout  time.Duration `json:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" mapstructure:"write_timeout"`

	// MaxBodyBytes caps plan request bodies
	MaxBodyBytes int64 `json:"max_body_bytes" mapstructure:"max_body_bytes"`

	// Debug runs gin in debug mode
	Debug bool `json:"debug" mapstructure:"debug"`

	// AllowOrigins lists CORS origins; empty allows all
	AllowOrigins []string `json:"allow_origins,omitempty" mapstructure:"allow_origins"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format" mapstructure:"default_format"`

	// NoColor disables ANSI colors in cli output
	NoColor bool `json:"no_color" mapstructure:"no_color"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Pricing: PricingConfig{
			Currency:      types.CurrencyCOP,
			BufferPercent: BufferPercent,
		},
		Defaults: DefaultsConfig{
			Location:  "Bogotá, CO",
			Headcount: 2,
			MealType:  types.MealLunch,
			Mode:      "30min",
		},
		Server: ServerConfig{
			Address:      ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			MaxBodyBytes: 1 << 20,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns ~/.grocery-cost/config.json
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".grocery-cost", "config.json")
}

// Load reads configuration from path. A missing file yields the defaults,
// still subject to environment overrides.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("logging.level", EnvPrefix+"_LOGGING_LEVEL", "LOG_LEVEL")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("json")
			if err := v.ReadInConfig(); err != nil {
				return nil, errors.Config("reading config file", err).WithContext("path", path)
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Config("reading config file", err).WithContext("path", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Config("decoding config", err).WithContext("path", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key so environment overrides reach Unmarshal
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("version", d.Version)

	v.SetDefault("pricing.currency", string(d.Pricing.Currency))
	v.SetDefault("pricing.pricebook_path", d.Pricing.PricebookPath)
	v.SetDefault("pricing.buffer_percent", d.Pricing.BufferPercent)

	v.SetDefault("defaults.location", d.Defaults.Location)
	v.SetDefault("defaults.headcount", d.Defaults.Headcount)
	v.SetDefault("defaults.meal_type", string(d.Defaults.MealType))
	v.SetDefault("defaults.mode", d.Defaults.Mode)

	v.SetDefault("server.address", d.Server.Address)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.max_body_bytes", d.Server.MaxBodyBytes)
	v.SetDefault("server.debug", d.Server.Debug)
	v.SetDefault("server.allow_origins", d.Server.AllowOrigins)

	v.SetDefault("output.default_format", d.Output.DefaultFormat)
	v.SetDefault("output.no_color", d.Output.NoColor)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output", d.Logging.Output)
	v.SetDefault("logging.development", d.Logging.Development)
}

// Validate checks values that would otherwise fail later at request time
func (c *Config) Validate() error {
	switch {
	case c.Pricing.BufferPercent != BufferPercent:
		return errors.Newf(errors.TypeConfig, "pricing.buffer_percent is fixed at %d, got %d", BufferPercent, c.Pricing.BufferPercent)
	case c.Pricing.Currency == "":
		return errors.New(errors.TypeConfig, "pricing.currency is required")
	case c.Defaults.Headcount <= 0:
		return errors.Newf(errors.TypeConfig, "defaults.headcount must be positive, got %d", c.Defaults.Headcount)
	case strings.TrimSpace(c.Defaults.Location) == "":
		return errors.New(errors.TypeConfig, "defaults.location is required")
	case c.Server.MaxBodyBytes <= 0:
		return errors.Newf(errors.TypeConfig, "server.max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes)
	}
	c.Defaults.MealType = types.ParseMealType(string(c.Defaults.MealType))
	return nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Config("creating config directory", err).WithContext("path", dir)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Internal("encoding config", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Config("writing config file", err).WithContext("path", path)
	}
	return nil
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
