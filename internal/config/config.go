package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"prusa_thermal/internal/logger"
	"prusa_thermal/internal/models"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment variables override file values, e.g. PRUSA_PRINTER_API_KEY.
const envPrefix = "PRUSA"

// Defaults applied before the config file is read.
const (
	defaultPort         = "8080"
	defaultDBPath       = "app.db"
	defaultMaxDelta     = 5.0
	defaultTimeout      = 10 * time.Second
	defaultPollInterval = 30 * time.Second
)

type Config struct {
	Port     string        `mapstructure:"port"`
	LogLevel string        `mapstructure:"log_level"`
	Printer  PrinterConfig `mapstructure:"printer"`
	Poll     PollConfig    `mapstructure:"poll"`
	DB       DBConfig      `mapstructure:"db"`
	Auth     AuthConfig    `mapstructure:"auth"`
}

type PrinterConfig struct {
	Address  string        `mapstructure:"address"`
	APIKey   string        `mapstructure:"api_key"`
	MaxDelta float64       `mapstructure:"max_delta"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type PollConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	SigningKey string `mapstructure:"signing_key"`
}

// Load reads an optional .env file, then configs/config.yml (or the file named
// by path), then environment overrides, and validates the result.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs") // configs/config.yml
		v.SetConfigName("config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", defaultPort)
	v.SetDefault("log_level", logger.InfoLevel)
	v.SetDefault("printer.address", "")
	v.SetDefault("printer.api_key", "")
	v.SetDefault("printer.max_delta", defaultMaxDelta)
	v.SetDefault("printer.timeout", defaultTimeout)
	v.SetDefault("poll.interval", defaultPollInterval)
	v.SetDefault("db.path", defaultDBPath)
	v.SetDefault("auth.signing_key", "")
}

// Validate rejects configurations the bridge cannot run with.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Printer.Address) == "" {
		errs = append(errs, errors.New("printer.address is required"))
	}
	if c.Printer.MaxDelta <= 0 {
		errs = append(errs, fmt.Errorf("printer.max_delta must be > 0, got %v", c.Printer.MaxDelta))
	}
	if c.Printer.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("printer.timeout must be > 0, got %v", c.Printer.Timeout))
	}
	if c.Poll.Interval <= 0 {
		errs = append(errs, fmt.Errorf("poll.interval must be > 0, got %v", c.Poll.Interval))
	}
	if !logger.ValidLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("log_level %q is not one of debug, info, warn, error", c.LogLevel))
	}
	if c.Auth.SigningKey == "" {
		errs = append(errs, errors.New("auth.signing_key is required"))
	}
	return errors.Join(errs...)
}

// Device returns the immutable printer settings handed to the client and evaluator.
func (c Config) Device() models.DeviceConfig {
	return models.DeviceConfig{
		Address:  strings.TrimSpace(c.Printer.Address),
		APIKey:   c.Printer.APIKey,
		MaxDelta: c.Printer.MaxDelta,
		Timeout:  c.Printer.Timeout,
	}
}
