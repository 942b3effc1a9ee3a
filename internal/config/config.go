// Package config holds the settings for driving a StrataHub deployment
// under test.
//
// Settings are resolved in three layers: compiled defaults, then an
// optional YAML file named by STRATAHUB_E2E_CONFIG, then individual
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/goccy/go-yaml"
)

const (
	urlEnvVar      = "STRATAHUB_E2E_URL"
	adminEnvVar    = "STRATAHUB_E2E_ADMIN_EMAIL"
	headlessEnvVar = "STRATAHUB_E2E_HEADLESS"
	fileEnvVar     = "STRATAHUB_E2E_CONFIG"
)

// Config is the resolved harness configuration.
type Config struct {
	// BaseURL is the root of the StrataHub deployment under test.
	BaseURL string
	// AdminEmail is the pre-provisioned system administrator login.
	AdminEmail string
	// Headless determines whether the browser window is displayed (false)
	// or not (true).
	Headless bool
	// SettleTimeout bounds the wait for in-flight partial updates.
	SettleTimeout time.Duration
	// NavTimeout bounds waits for full page navigations.
	NavTimeout time.Duration
	// LoginTimeout bounds the post-login dashboard redirect.
	LoginTimeout time.Duration
	// ListAttempts is the number of passes over a paginated list before an
	// item is reported missing.
	ListAttempts int
}

// fileConfig is the YAML shape of a config file. Durations are strings in
// time.ParseDuration format, e.g. "5s".
type fileConfig struct {
	BaseURL       string `yaml:"base_url"`
	AdminEmail    string `yaml:"admin_email"`
	Headless      *bool  `yaml:"headless"`
	SettleTimeout string `yaml:"settle_timeout"`
	NavTimeout    string `yaml:"nav_timeout"`
	LoginTimeout  string `yaml:"login_timeout"`
	ListAttempts  int    `yaml:"list_attempts"`
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		BaseURL:       "http://localhost:8080",
		AdminEmail:    "sysadmin@adroit.games",
		Headless:      true,
		SettleTimeout: 5 * time.Second,
		NavTimeout:    5 * time.Second,
		LoginTimeout:  10 * time.Second,
		ListAttempts:  5,
	}
}

// Load resolves the configuration from defaults, file, and environment.
func Load() (Config, error) {
	cfg := Default()

	if path, ok := os.LookupEnv(fileEnvVar); ok {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}

	if v, ok := os.LookupEnv(urlEnvVar); ok {
		cfg.BaseURL = v
	}
	if v, ok := os.LookupEnv(adminEnvVar); ok {
		cfg.AdminEmail = v
	}
	if v, ok := os.LookupEnv(headlessEnvVar); ok {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", headlessEnvVar, err)
		}
		cfg.Headless = headless
	}
	return cfg, nil
}

func (cfg *Config) mergeFile(path string) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(buf, &fc); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}
	if fc.AdminEmail != "" {
		cfg.AdminEmail = fc.AdminEmail
	}
	if fc.Headless != nil {
		cfg.Headless = *fc.Headless
	}
	if fc.ListAttempts > 0 {
		cfg.ListAttempts = fc.ListAttempts
	}
	for _, d := range []struct {
		value string
		field *time.Duration
	}{
		{fc.SettleTimeout, &cfg.SettleTimeout},
		{fc.NavTimeout, &cfg.NavTimeout},
		{fc.LoginTimeout, &cfg.LoginTimeout},
	} {
		if d.value == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.value)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		*d.field = parsed
	}
	return nil
}
