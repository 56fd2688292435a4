package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server settings
	ListenAddr string `json:"listen_addr"`
	Debug      bool   `json:"debug"`

	// Directories
	DataDirectory string `json:"data_directory"`

	// Exchange rate provider
	RatesURL     string        `json:"rates_url"`
	RatesTimeout time.Duration `json:"rates_timeout"`
}

// DefaultConfig returns configuration with sensible defaults
func DefaultConfig() *Config {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}

	return &Config{
		ListenAddr:    ":8080",
		Debug:         false,
		DataDirectory: filepath.Join(wd, "data"),
		RatesURL:      "https://open.er-api.com/v6/latest/USD",
		RatesTimeout:  5 * time.Second,
	}
}

// Load loads configuration from a .env file (if present) and the environment
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	cfg := DefaultConfig()

	if addr := os.Getenv("FINTRACK_LISTEN_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}
	if debug := os.Getenv("FINTRACK_DEBUG"); debug == "true" || debug == "1" {
		cfg.Debug = true
	}
	if dataDir := os.Getenv("FINTRACK_DATA_DIR"); dataDir != "" {
		cfg.DataDirectory = dataDir
	}
	if url := os.Getenv("FINTRACK_RATES_URL"); url != "" {
		cfg.RatesURL = url
	}
	if timeout := os.Getenv("FINTRACK_RATES_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.RatesTimeout = d
		} else {
			log.Printf("Warning: invalid FINTRACK_RATES_TIMEOUT %q, using default", timeout)
		}
	}

	cfg.ensureDirectories()

	return cfg
}

// ensureDirectories creates required directories if they don't exist
func (c *Config) ensureDirectories() {
	if err := os.MkdirAll(c.DataDirectory, 0755); err != nil {
		log.Printf("Warning: could not create directory %s: %v", c.DataDirectory, err)
	}
}
