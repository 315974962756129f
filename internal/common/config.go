package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/etnz/networth"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the nw configuration.
type Config struct {
	Currency  string                    `toml:"currency"` // target currency of every total
	Dashboard networth.DashboardOptions `toml:"dashboard"`
	Rates     RatesConfig               `toml:"rates"`
	Logging   LoggingConfig             `toml:"logging"`
	Assistant AssistantConfig           `toml:"assistant"`
}

// RatesConfig configures the exchange rate sources.
type RatesConfig struct {
	BaseURL           string   `toml:"base_url"`
	Currencies        []string `toml:"currencies"`
	Timeout           string   `toml:"timeout"`
	CacheTTL          string   `toml:"cache_ttl"`
	RequestsPerSecond float64  `toml:"requests_per_second"`
	StoragePath       string   `toml:"storage_path"`

	// Optional price endpoints. {symbol} and {currency} are replaced in the URL.
	CommodityURL  string   `toml:"commodity_url"`
	CommodityPath string   `toml:"commodity_path"`
	CryptoURL     string   `toml:"crypto_url"`
	CryptoPath    string   `toml:"crypto_path"`
	CryptoSymbols []string `toml:"crypto_symbols"`
}

// GetTimeout returns the global refresh timeout.
func (c *RatesConfig) GetTimeout() time.Duration {
	return parseDuration(c.Timeout, 4*time.Second)
}

// GetCacheTTL returns how long a fiat matrix stays fresh.
func (c *RatesConfig) GetCacheTTL() time.Duration {
	return parseDuration(c.CacheTTL, 5*time.Minute)
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// AssistantConfig holds the Gemini assistant configuration.
type AssistantConfig struct {
	Model string `toml:"model"`
}

// DefaultRatesURL serves one JSON document per base currency.
const DefaultRatesURL = "https://cdn.jsdelivr.net/npm/@fawazahmed0/currency-api@latest/v1"

// NewDefaultConfig returns a config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Currency:  "EUR",
		Dashboard: networth.DefaultDashboardOptions(),
		Rates: RatesConfig{
			BaseURL:           DefaultRatesURL,
			Currencies:        []string{"EUR", "USD"},
			Timeout:           "4s",
			CacheTTL:          "5m",
			RequestsPerSecond: 5,
			StoragePath:       defaultStoragePath(),
			CryptoSymbols:     []string{"BTC", "ETH", "LTC", "TRX", "BNB", "USDT", "USDC"},
		},
		Logging:   LoggingConfig{Level: "warn"},
		Assistant: AssistantConfig{Model: "gemini-2.5-pro"},
	}
}

func defaultStoragePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "networth", "rates.json")
}

// LoadConfig loads the configuration from TOML files with environment overrides.
// Later files override earlier ones. Missing files are skipped.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)
	config.Currency = strings.ToUpper(strings.TrimSpace(config.Currency))
	if config.Currency == "" {
		config.Currency = "EUR"
	}
	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("NW_CURRENCY"); v != "" {
		config.Currency = v
	}
	if v := os.Getenv("NW_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("NW_RATES_URL"); v != "" {
		config.Rates.BaseURL = v
	}
	if v := os.Getenv("NW_RATES_STORAGE"); v != "" {
		config.Rates.StoragePath = v
	}
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
