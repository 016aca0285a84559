package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	xutil "BrentLens/pkg/util"
)

const DefaultPath = "config/config.yaml"

// TableConfig describes where one dataset table lives and which columns it uses.
// Path applies to the csv source, Table and OrderBy to clickhouse.
type TableConfig struct {
	Path    string            `yaml:"path"`
	Table   string            `yaml:"table"`
	OrderBy string            `yaml:"order_by"`
	Columns map[string]string `yaml:"columns"`
}

// Column returns the configured name for a logical column, or def.
func (t TableConfig) Column(logical, def string) string {
	if v, ok := t.Columns[logical]; ok && v != "" {
		return v
	}
	return def
}

type Config struct {
	Environment string `yaml:"environment" default:"development" validate:"required"`
	Server      struct {
		Port            int           `yaml:"port" default:"5000" validate:"gte=1,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		CORS            bool          `yaml:"cors" default:"true"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
		Format string `yaml:"format" default:"console" validate:"oneof=console json"`
		Output string `yaml:"output" default:"stdout" validate:"required"`
	} `yaml:"log"`
	Metrics struct {
		Enabled       bool          `yaml:"enabled" default:"true"`
		SlowThreshold time.Duration `yaml:"slow_threshold" default:"500ms"`
	} `yaml:"metrics"`
	Dataset struct {
		Source       string        `yaml:"source" default:"csv" validate:"oneof=csv clickhouse"`
		DataDir      string        `yaml:"data_dir"`
		WindowDays   int           `yaml:"window_days" default:"180" validate:"gte=0"`
		LoadTimeout  time.Duration `yaml:"load_timeout" default:"30s"`
		Prices       TableConfig   `yaml:"prices"`
		Events       TableConfig   `yaml:"events"`
		ChangePoints TableConfig   `yaml:"change_points"`
	} `yaml:"dataset"`
	ClickHouse struct {
		Host             string        `yaml:"host" default:"localhost"`
		Port             int           `yaml:"port" default:"9000"`
		Database         string        `yaml:"database" default:"brentlens"`
		User             string        `yaml:"user" default:"default"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		DialTimeout      time.Duration `yaml:"dial_timeout" default:"5s"`
		ReadTimeout      time.Duration `yaml:"read_timeout" default:"30s"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time" default:"30s"`
	} `yaml:"clickhouse"`
}

// Default returns a configuration with every default applied.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("set defaults: %w", err)
	}
	c.applyTableDefaults()
	return &c, nil
}

// Load reads a YAML file over the defaults and validates the result.
// A missing file at DefaultPath is not an error.
func Load(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist) && path == DefaultPath:
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	c.applyTableDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables,
// reading a .env file first when one exists.
func LoadWithEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("BRENTLENS_PORT"); v != "" {
		c.Server.Port = xutil.ParseIntDefault(v, c.Server.Port)
	}
	if v := os.Getenv("BRENTLENS_SOURCE"); v != "" {
		c.Dataset.Source = v
	}
	if v := os.Getenv("BRENTLENS_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("BRENTLENS_DATA_DIR"); v != "" {
		c.Dataset.DataDir = v
	}
	if v := os.Getenv("CLICKHOUSE_PASSWORD"); v != "" {
		c.ClickHouse.Password = v
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Validate checks struct tags plus the per-source requirements.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	tables := map[string]TableConfig{
		"prices":        c.Dataset.Prices,
		"events":        c.Dataset.Events,
		"change_points": c.Dataset.ChangePoints,
	}
	for name, t := range tables {
		switch c.Dataset.Source {
		case "csv":
			if t.Path == "" {
				return fmt.Errorf("dataset.%s.path is required for csv source", name)
			}
		case "clickhouse":
			if t.Table == "" {
				return fmt.Errorf("dataset.%s.table is required for clickhouse source", name)
			}
		}
	}
	if c.Dataset.Source == "clickhouse" && c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host is required for clickhouse source")
	}
	return nil
}

// ResolvePath joins relative table paths onto the data dir.
func (c *Config) ResolvePath(p string) string {
	if c.Dataset.DataDir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dataset.DataDir, p)
}

func (c *Config) applyTableDefaults() {
	if c.Dataset.Prices.Path == "" {
		c.Dataset.Prices.Path = "Data/BrentOilPrices.csv"
	}
	if c.Dataset.Prices.Table == "" {
		c.Dataset.Prices.Table = "brent_prices"
	}
	if c.Dataset.Events.Path == "" {
		c.Dataset.Events.Path = "brent_oil_price_events.csv"
	}
	if c.Dataset.Events.Table == "" {
		c.Dataset.Events.Table = "brent_events"
	}
	if c.Dataset.ChangePoints.Path == "" {
		c.Dataset.ChangePoints.Path = "cp_dates.csv"
	}
	if c.Dataset.ChangePoints.Table == "" {
		c.Dataset.ChangePoints.Table = "change_points"
	}
}
