package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment key, e.g. CLAIMGUARD_ADDR.
const EnvPrefix = "CLAIMGUARD"

// Config captures everything the console needs to reach its two remote
// services and serve its own surface.
type Config struct {
	Addr                   string        `mapstructure:"ADDR"`
	BackendURL             string        `mapstructure:"BACKEND_URL"`
	ScoringURL             string        `mapstructure:"SCORING_URL"`
	Token                  string        `mapstructure:"TOKEN"`
	StepTimeout            time.Duration `mapstructure:"STEP_TIMEOUT"`
	LogLevel               string        `mapstructure:"LOG_LEVEL"`
	ScorerFailureThreshold int           `mapstructure:"SCORER_FAILURE_THRESHOLD"`
	OTelEnabled            bool          `mapstructure:"OTEL_ENABLED"`
}

var keys = []string{
	"ADDR",
	"BACKEND_URL",
	"SCORING_URL",
	"TOKEN",
	"STEP_TIMEOUT",
	"LOG_LEVEL",
	"SCORER_FAILURE_THRESHOLD",
	"OTEL_ENABLED",
}

// Load reads configuration from the environment and, when path is not empty,
// from a dotenv-style file. Environment values win over the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("ADDR", ":8090")
	v.SetDefault("BACKEND_URL", "http://localhost:7000")
	v.SetDefault("SCORING_URL", "http://localhost:5000")
	v.SetDefault("TOKEN", "")
	v.SetDefault("STEP_TIMEOUT", "10s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SCORER_FAILURE_THRESHOLD", 5)
	v.SetDefault("OTEL_ENABLED", false)

	// Bind explicitly so Unmarshal sees env-only keys.
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.BackendURL = strings.TrimRight(cfg.BackendURL, "/")
	cfg.ScoringURL = strings.TrimRight(cfg.ScoringURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings that cannot work.
func (c *Config) Validate() error {
	if err := absoluteURL("BACKEND_URL", c.BackendURL); err != nil {
		return err
	}
	if err := absoluteURL("SCORING_URL", c.ScoringURL); err != nil {
		return err
	}
	if c.StepTimeout <= 0 {
		return fmt.Errorf("STEP_TIMEOUT must be positive, got %s", c.StepTimeout)
	}
	if c.ScorerFailureThreshold <= 0 {
		return fmt.Errorf("SCORER_FAILURE_THRESHOLD must be positive, got %d", c.ScorerFailureThreshold)
	}
	return nil
}

// RequireToken is checked by commands that call the backend.
func (c *Config) RequireToken() error {
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("%s_TOKEN is required", EnvPrefix)
	}
	return nil
}

func absoluteURL(key, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%s must be an absolute URL, got %q", key, raw)
	}
	return nil
}
