package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load reads a YAML config file. It does not validate.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

// LoadOrDefault is Load, except a missing file yields an empty Config.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}
	return Load(path)
}

// LoadDotEnv loads variables from .env files into the process environment.
// Existing variables win. A missing file is not an error.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides config values from the environment. A malformed
// numeric or duration value is an error.
func (c *Config) ApplyEnv() error {
	setString(&c.Paths.Transcript, "CASECLIP_TRANSCRIPT")
	setString(&c.Paths.Recordings, "CASECLIP_RECORDINGS")
	setString(&c.Paths.Splits, "CASECLIP_SPLITS")
	setString(&c.Paths.Catalog, "CASECLIP_CATALOG")
	setString(&c.Paths.Ledger, "CASECLIP_LEDGER")
	setString(&c.Generation.Provider, "CASECLIP_PROVIDER")
	setString(&c.Generation.APIURL, "CASECLIP_API_URL")
	setString(&c.Generation.Model, "CASECLIP_MODEL")
	setString(&c.Generation.APIKey, "DEEPSEEK_API_KEY")
	setString(&c.Generation.APIKey, "CASECLIP_API_KEY")
	setString(&c.Logging.Level, "LOG_LEVEL")
	setString(&c.Worker, "CASECLIP_WORKER")

	if v := os.Getenv("GEMINI_API_KEYS"); v != "" {
		var keys []string
		for _, k := range strings.Split(v, ",") {
			if k = strings.TrimSpace(k); k != "" {
				keys = append(keys, k)
			}
		}
		c.Generation.GeminiKeys = keys
	}
	if v := os.Getenv("CASECLIP_KAFKA_BROKERS"); v != "" {
		c.Events.Brokers = strings.Split(v, ",")
	}

	if v := os.Getenv("CASECLIP_MAX_RETRIES"); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("parse CASECLIP_MAX_RETRIES: %w", err)
		}
		c.Generation.MaxRetries = &n
	}
	if v := os.Getenv("CASECLIP_RETRY_DELAY"); v != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("parse CASECLIP_RETRY_DELAY: %w", err)
		}
		c.Generation.RetryDelay = d
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
