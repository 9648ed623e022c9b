package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "GRIDCALC"

const ConfigFileName = ".gridcalc"

var InvalidConfigError = errors.New("invalid config")

type Config struct {
	ListenAddress    string        `mapstructure:"listen-address"`
	MaxDepth         int           `mapstructure:"max-depth"`
	HistoryLimit     int           `mapstructure:"history-limit"`
	WebhookWorkers   int           `mapstructure:"webhook-workers"`
	WebhookQueueSize int           `mapstructure:"webhook-queue-size"`
	WebhookTimeout   time.Duration `mapstructure:"webhook-timeout"`
	LogLevel         string        `mapstructure:"log-level"`
}

var DefaultConfig = Config{
	ListenAddress:    ":8080",
	MaxDepth:         4096,
	HistoryLimit:     100,
	WebhookWorkers:   5,
	WebhookQueueSize: 20,
	WebhookTimeout:   5 * time.Second,
	LogLevel:         "info",
}

// NewConfigViper returns a viper instance with defaults, GRIDCALC_* env vars
// and the optional .gridcalc.yaml of the working directory.
func NewConfigViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("listen-address", DefaultConfig.ListenAddress)
	v.SetDefault("max-depth", DefaultConfig.MaxDepth)
	v.SetDefault("history-limit", DefaultConfig.HistoryLimit)
	v.SetDefault("webhook-workers", DefaultConfig.WebhookWorkers)
	v.SetDefault("webhook-queue-size", DefaultConfig.WebhookQueueSize)
	v.SetDefault("webhook-timeout", DefaultConfig.WebhookTimeout)
	v.SetDefault("log-level", DefaultConfig.LogLevel)

	// GRIDCALC_LISTEN_ADDRESS, GRIDCALC_MAX_DEPTH, ...
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName(ConfigFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	return v
}

func LoadConfig(v *viper.Viper) (config Config, err error) {
	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("read config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("decode config: %w", err)
	}

	return config, config.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.ListenAddress == "":
		return fmt.Errorf("listen-address is empty: %w", InvalidConfigError)
	case c.MaxDepth <= 0:
		return fmt.Errorf("max-depth %d: %w", c.MaxDepth, InvalidConfigError)
	case c.HistoryLimit < 0:
		return fmt.Errorf("history-limit %d: %w", c.HistoryLimit, InvalidConfigError)
	case c.WebhookWorkers <= 0:
		return fmt.Errorf("webhook-workers %d: %w", c.WebhookWorkers, InvalidConfigError)
	case c.WebhookQueueSize < 0:
		return fmt.Errorf("webhook-queue-size %d: %w", c.WebhookQueueSize, InvalidConfigError)
	case c.WebhookTimeout <= 0:
		return fmt.Errorf("webhook-timeout %s: %w", c.WebhookTimeout, InvalidConfigError)
	}

	return nil
}
