package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override (e.g., ATCDEL_AEROAPI_TOKEN)
const EnvPrefix = "ATCDEL"

// Config holds all configuration for a session
type Config struct {
	AeroAPIToken string `mapstructure:"aeroapi_token"`
	AVWXToken    string `mapstructure:"avwx_token"`
	DBPath       string `mapstructure:"db_path"`
	RulesPath    string `mapstructure:"rules_path"`
	RunwayConfig string `mapstructure:"runway_config"`
	Verbose      bool   `mapstructure:"verbose"`
	MetricsAddr  string `mapstructure:"metrics_addr" validate:"omitempty,hostname_port"`
	HTTP         HTTPConfig
	Log          LogConfig
}

// HTTPConfig holds settings shared by the AeroAPI and AVWX clients
type HTTPConfig struct {
	Timeout    time.Duration `validate:"gt=0"`
	MaxRetries int           `validate:"gte=0,lte=10"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `validate:"oneof=debug info warn error"`
	Format string `validate:"oneof=text json"`
	File   string
}

var validate = validator.New()

// Load loads configuration from the config file, environment variables and
// any flags in flags that were set on the command line. flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("db_path", "atcdel.db")
	v.SetDefault("rules_path", "rules.yaml")
	v.SetDefault("verbose", false)
	v.SetDefault("http.timeout", 30*time.Second)
	v.SetDefault("http.max_retries", 2)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/atcdel")
	v.AddConfigPath(".")

	if configPath := os.Getenv(EnvPrefix + "_CONFIG_PATH"); configPath != "" {
		v.SetConfigFile(configPath)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		AeroAPIToken: v.GetString("aeroapi_token"),
		AVWXToken:    v.GetString("avwx_token"),
		DBPath:       v.GetString("db_path"),
		RulesPath:    v.GetString("rules_path"),
		RunwayConfig: v.GetString("runway_config"),
		Verbose:      v.GetBool("verbose"),
		MetricsAddr:  v.GetString("metrics_addr"),
		HTTP: HTTPConfig{
			Timeout:    v.GetDuration("http.timeout"),
			MaxRetries: v.GetInt("http.max_retries"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("log.level")),
			Format: strings.ToLower(v.GetString("log.format")),
			File:   v.GetString("log.file"),
		},
	}
	if cfg.Verbose {
		cfg.Log.Level = "debug"
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// flagKeys maps command line flag names to config keys
var flagKeys = map[string]string{
	"aeroapi-token": "aeroapi_token",
	"avwx-token":    "avwx_token",
	"db":            "db_path",
	"rules":         "rules_path",
	"runway-config": "runway_config",
	"verbose":       "verbose",
	"metrics-addr":  "metrics_addr",
	"log-level":     "log.level",
	"log-format":    "log.format",
	"log-file":      "log.file",
}

// bindFlags makes explicitly set flags override file and environment values
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}
