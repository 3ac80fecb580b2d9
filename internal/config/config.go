package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	// Version is the current version of Lenslate
	Version = "0.1.0"
	// AppName is the application name
	AppName = "Lenslate Server"
)

// DefaultTimeout bounds a single translation job when the caller does not
// provide one.
const DefaultTimeout = 90 * time.Second

// Config holds all configuration options for the Lenslate server
type Config struct {
	// Server
	Host string
	Port int

	// Browser
	Headless       bool
	BrowserPool    int
	ChromeRevision int

	// Proxy (Tor SOCKS)
	TorEnabled    bool
	TorSocksProxy string

	// Jobs
	WorkDir         string
	NaturalDelayMin time.Duration
	NaturalDelayMax time.Duration

	// API
	APIKey      string
	DebugErrors bool
}

// Load reads configuration from the environment (and an optional .env file)
// and applies defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 8000)
	v.SetDefault("headless", true)
	v.SetDefault("browser_pool_size", 2)
	v.SetDefault("chrome_revision", 0)
	v.SetDefault("tor_enabled", false)
	v.SetDefault("tor_socks_proxy", "")
	v.SetDefault("work_dir", "works")
	v.SetDefault("natural_delay_min_s", 1.0)
	v.SetDefault("natural_delay_max_s", 3.0)
	v.SetDefault("api_key", "")
	v.SetDefault("debug_errors", false)

	// The .env file is optional.
	_ = v.ReadInConfig()

	cfg := &Config{
		Host:            v.GetString("host"),
		Port:            v.GetInt("port"),
		Headless:        v.GetBool("headless"),
		BrowserPool:     v.GetInt("browser_pool_size"),
		ChromeRevision:  v.GetInt("chrome_revision"),
		TorEnabled:      v.GetBool("tor_enabled"),
		TorSocksProxy:   v.GetString("tor_socks_proxy"),
		WorkDir:         v.GetString("work_dir"),
		NaturalDelayMin: secondsToDuration(v.GetFloat64("natural_delay_min_s")),
		NaturalDelayMax: secondsToDuration(v.GetFloat64("natural_delay_max_s")),
		APIKey:          v.GetString("api_key"),
		DebugErrors:     v.GetBool("debug_errors"),
	}

	if cfg.BrowserPool < 1 {
		cfg.BrowserPool = 1
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks settings that must fail before any browser is launched.
func (c *Config) Validate() error {
	if c.TorEnabled && c.TorSocksProxy == "" {
		return fmt.Errorf("tor is enabled but TOR_SOCKS_PROXY is empty, set TOR_SOCKS_PROXY")
	}
	return nil
}

// ProxyServer returns the proxy address to attach to launched browsers, or
// an empty string when no proxy is configured.
func (c *Config) ProxyServer() string {
	if !c.TorEnabled {
		return ""
	}
	return c.TorSocksProxy
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
