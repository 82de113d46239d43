package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	ProviderChat   = "chat"
	ProviderGemini = "gemini"
)

type Config struct {
	Paths      PathsConfig      `yaml:"paths"`
	Media      MediaConfig      `yaml:"media"`
	Segmenter  SegmenterConfig  `yaml:"segmenter"`
	Generation GenerationConfig `yaml:"generation"`
	Catalog    CatalogConfig    `yaml:"catalog"`
	Brief      BriefConfig      `yaml:"brief"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Events     EventsConfig     `yaml:"events"`
	Worker     string           `yaml:"worker"`
}

type PathsConfig struct {
	Transcript string `yaml:"transcript"`
	Recordings string `yaml:"recordings"`
	Splits     string `yaml:"splits"`
	Catalog    string `yaml:"catalog"`
	Ledger     string `yaml:"ledger"`
}

type MediaConfig struct {
	FFmpegPath string `yaml:"ffmpeg_path"`
	Extension  string `yaml:"extension"`
}

type SegmenterConfig struct {
	CaseMarker    string `yaml:"case_marker"`
	SpeakerMarker string `yaml:"speaker_marker"`
}

type GenerationConfig struct {
	Provider    string        `yaml:"provider"`
	APIURL      string        `yaml:"api_url"`
	APIKey      string        `yaml:"api_key"`
	Model       string        `yaml:"model"`
	Temperature *float64      `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxRetries  *int          `yaml:"max_retries"`
	RetryDelay  time.Duration `yaml:"retry_delay"`
	GeminiModel string        `yaml:"gemini_model"`
	GeminiKeys  []string      `yaml:"gemini_keys"`
	TagMin      int           `yaml:"tag_min"`
	TagMax      int           `yaml:"tag_max"`
}

type CatalogConfig struct {
	OpenEndLabel string `yaml:"open_end_label"`
}

type BriefConfig struct {
	Enabled bool `yaml:"enabled"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

type EventsConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

func (c *Config) Validate() error {
	if c.Paths.Transcript == "" {
		return fmt.Errorf("paths.transcript is required")
	}
	if c.Paths.Recordings == "" {
		return fmt.Errorf("paths.recordings is required")
	}

	if c.Generation.Provider == "" {
		c.Generation.Provider = ProviderChat
	}
	switch c.Generation.Provider {
	case ProviderChat:
		if c.Generation.APIKey == "" {
			return fmt.Errorf("generation.api_key is required for provider %q", ProviderChat)
		}
	case ProviderGemini:
		if len(c.Generation.GeminiKeys) == 0 {
			return fmt.Errorf("generation.gemini_keys is required for provider %q", ProviderGemini)
		}
	default:
		return fmt.Errorf("generation.provider %q is not supported", c.Generation.Provider)
	}
	if c.Generation.MaxRetries != nil && *c.Generation.MaxRetries < 0 {
		return fmt.Errorf("generation.max_retries must not be negative")
	}

	if c.Paths.Splits == "" {
		c.Paths.Splits = filepath.Join(c.Paths.Recordings, "Splits")
	}
	if c.Paths.Catalog == "" {
		c.Paths.Catalog = filepath.Join(c.Paths.Recordings, "cases.csv")
	}
	if c.Paths.Ledger == "" {
		c.Paths.Ledger = filepath.Join(c.Paths.Recordings, "progress.json")
	}
	if c.Media.FFmpegPath == "" {
		c.Media.FFmpegPath = "ffmpeg"
	}
	if c.Media.Extension == "" {
		c.Media.Extension = "mp4"
	}
	if c.Segmenter.CaseMarker == "" {
		c.Segmenter.CaseMarker = "案例"
	}
	if c.Segmenter.SpeakerMarker == "" {
		c.Segmenter.SpeakerMarker = "说话人"
	}
	if c.Generation.APIURL == "" {
		c.Generation.APIURL = "https://api.deepseek.com/v1/chat/completions"
	}
	if c.Generation.Model == "" {
		c.Generation.Model = "deepseek-chat"
	}
	if c.Generation.Temperature == nil {
		t := 0.3
		c.Generation.Temperature = &t
	}
	if c.Generation.Timeout == 0 {
		c.Generation.Timeout = 60 * time.Second
	}
	if c.Generation.MaxRetries == nil {
		n := 3
		c.Generation.MaxRetries = &n
	}
	if c.Generation.RetryDelay == 0 {
		c.Generation.RetryDelay = 3 * time.Second
	}
	if c.Generation.GeminiModel == "" {
		c.Generation.GeminiModel = "gemini-2.5-flash"
	}
	if c.Generation.TagMin == 0 {
		c.Generation.TagMin = 5
	}
	if c.Generation.TagMax == 0 {
		c.Generation.TagMax = 8
	}
	if c.Generation.TagMin > c.Generation.TagMax {
		return fmt.Errorf("generation.tag_min (%d) exceeds generation.tag_max (%d)", c.Generation.TagMin, c.Generation.TagMax)
	}
	if c.Catalog.OpenEndLabel == "" {
		c.Catalog.OpenEndLabel = "视频结尾"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Events.Topic == "" {
		c.Events.Topic = "caseclip.cases"
	}
	if c.Worker == "" {
		host, err := os.Hostname()
		if err != nil || host == "" {
			host = "local"
		}
		c.Worker = host
	}

	return nil
}
