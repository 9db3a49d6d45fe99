package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = "roomwatch"

	keyAPIBaseURL  = "api.base_url"
	keyProxyPrefix = "api.proxy_prefix"
	keyHTTPTimeout = "api.timeout_seconds"
	keyDebounceMS  = "input.debounce_ms"
	keyTokenGate   = "input.min_token_length"
	keyLogLevel    = "log.level"
	keyLogFile     = "log.file"

	envPrefix = "ROOMWATCH"
)

type Config struct {
	APIBaseURL     string
	ProxyPrefix    string
	HTTPTimeout    time.Duration
	DebounceWindow time.Duration
	MinTokenLength int
	LogLevel       string
	LogFile        string
}

// Load reads config.toml from the user config directory, then applies
// ROOMWATCH_* environment overrides. A missing config file is fine; every
// key has a default.
func Load(cfg *viper.Viper) (*Config, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	if dir, err := os.UserConfigDir(); err == nil {
		cfg.AddConfigPath(filepath.Join(dir, configDir))
	}
	cfg.AddConfigPath(".")

	cfg.SetDefault(keyAPIBaseURL, "https://osu.ppy.sh/api/v2")
	cfg.SetDefault(keyProxyPrefix, "")
	cfg.SetDefault(keyHTTPTimeout, 30)
	cfg.SetDefault(keyDebounceMS, 500)
	cfg.SetDefault(keyTokenGate, 20)
	cfg.SetDefault(keyLogLevel, "info")
	cfg.SetDefault(keyLogFile, "")

	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	if err := cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	loaded := &Config{
		APIBaseURL:     strings.TrimSpace(cfg.GetString(keyAPIBaseURL)),
		ProxyPrefix:    strings.TrimSpace(cfg.GetString(keyProxyPrefix)),
		HTTPTimeout:    time.Duration(cfg.GetInt(keyHTTPTimeout)) * time.Second,
		DebounceWindow: time.Duration(cfg.GetInt(keyDebounceMS)) * time.Millisecond,
		MinTokenLength: cfg.GetInt(keyTokenGate),
		LogLevel:       strings.TrimSpace(cfg.GetString(keyLogLevel)),
		LogFile:        strings.TrimSpace(cfg.GetString(keyLogFile)),
	}

	if loaded.APIBaseURL == "" {
		return nil, errors.New("api base url is empty")
	}
	if loaded.DebounceWindow <= 0 {
		return nil, fmt.Errorf("debounce window must be positive, got %s", loaded.DebounceWindow)
	}

	return loaded, nil
}
