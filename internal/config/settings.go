package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding settings,
// e.g. SSBENEFIT_LOG_LEVEL=debug.
const EnvPrefix = "SSBENEFIT"

// Settings are the application settings, separate from scenario files.
type Settings struct {
	Log         LogSettings         `mapstructure:"log"`
	Server      ServerSettings      `mapstructure:"server"`
	WageIndex   WageIndexSettings   `mapstructure:"wage_index"`
	Calculation CalculationSettings `mapstructure:"calculation"`
	Sweep       SweepSettings       `mapstructure:"sweep"`
}

// LogSettings holds logging settings.
type LogSettings struct {
	Level  string `mapstructure:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format"` // "text" or "json"
}

// ServerSettings holds HTTP API settings.
type ServerSettings struct {
	Addr               string `mapstructure:"addr"`
	ReadTimeoutSeconds int    `mapstructure:"read_timeout_seconds"`
	MaxRequestBodySize int    `mapstructure:"max_request_body_size"`
}

// WageIndexSettings points at an alternate wage index dataset.
type WageIndexSettings struct {
	File string `mapstructure:"file"` // empty uses the embedded dataset
}

// CalculationSettings holds engine options.
type CalculationSettings struct {
	CapEarnings bool `mapstructure:"cap_earnings"` // cap at the contribution base before indexing
}

// SweepSettings controls the claim-date sweep.
type SweepSettings struct {
	Concurrency int `mapstructure:"concurrency"`
}

// LoadSettings reads settings from path, or from ssbenefit.yaml in the
// working directory or $HOME/.ssbenefit when path is empty. A missing default
// file is not an error. Environment variables override file values.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading settings file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("ssbenefit")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.ssbenefit")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading settings file: %w", err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("error unmarshaling settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks settings values.
func (s *Settings) Validate() error {
	switch strings.ToLower(s.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", s.Log.Format)
	}
	if s.Sweep.Concurrency < 1 {
		return fmt.Errorf("sweep.concurrency must be at least 1, got %d", s.Sweep.Concurrency)
	}
	if s.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout_seconds", 10)
	v.SetDefault("server.max_request_body_size", 1<<20)

	v.SetDefault("wage_index.file", "")
	v.SetDefault("calculation.cap_earnings", false)
	v.SetDefault("sweep.concurrency", 4)
}
