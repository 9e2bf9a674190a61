package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines configuration for the decoder CLI.
type Config struct {
	BaseURL         string        `yaml:"base_url"`
	MaxConcurrent   int           `yaml:"max_concurrent"`
	Timeout         time.Duration `yaml:"timeout"`
	SampleSize      int           `yaml:"sample_size"`
	SampleRange     int           `yaml:"sample_range"`
	GapRange        int           `yaml:"gap_range"`
	GiveUpThreshold int           `yaml:"give_up_threshold"`
	Bucket          string        `yaml:"bucket"`
	Object          string        `yaml:"object"`
	Progress        bool          `yaml:"progress"`
	Events          bool          `yaml:"events"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		MaxConcurrent:   30,
		Timeout:         5 * time.Second,
		SampleSize:      50,
		SampleRange:     1000,
		GapRange:        10000,
		GiveUpThreshold: 100,
	}
}

// yamlConfig is used for YAML unmarshaling with string durations.
type yamlConfig struct {
	BaseURL         string `yaml:"base_url"`
	MaxConcurrent   int    `yaml:"max_concurrent"`
	Timeout         string `yaml:"timeout"`
	SampleSize      int    `yaml:"sample_size"`
	SampleRange     int    `yaml:"sample_range"`
	GapRange        int    `yaml:"gap_range"`
	GiveUpThreshold int    `yaml:"give_up_threshold"`
	Bucket          string `yaml:"bucket"`
	Object          string `yaml:"object"`
	Progress        bool   `yaml:"progress"`
	Events          bool   `yaml:"events"`
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	cfg := Default()

	if yc.BaseURL != "" {
		cfg.BaseURL = yc.BaseURL
	}
	if yc.MaxConcurrent != 0 {
		cfg.MaxConcurrent = yc.MaxConcurrent
	}
	if yc.Timeout != "" {
		d, err := time.ParseDuration(yc.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse timeout: %w", err)
		}
		cfg.Timeout = d
	}
	if yc.SampleSize != 0 {
		cfg.SampleSize = yc.SampleSize
	}
	if yc.SampleRange != 0 {
		cfg.SampleRange = yc.SampleRange
	}
	if yc.GapRange != 0 {
		cfg.GapRange = yc.GapRange
	}
	if yc.GiveUpThreshold != 0 {
		cfg.GiveUpThreshold = yc.GiveUpThreshold
	}
	if yc.Bucket != "" {
		cfg.Bucket = yc.Bucket
	}
	if yc.Object != "" {
		cfg.Object = yc.Object
	}
	cfg.Progress = yc.Progress
	cfg.Events = yc.Events

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables use the DECODER_ prefix.
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("DECODER_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("DECODER_MAX_CONCURRENT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse DECODER_MAX_CONCURRENT: %w", err)
		}
		c.MaxConcurrent = n
	}
	if v := os.Getenv("DECODER_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse DECODER_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	if v := os.Getenv("DECODER_SAMPLE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse DECODER_SAMPLE_SIZE: %w", err)
		}
		c.SampleSize = n
	}
	if v := os.Getenv("DECODER_SAMPLE_RANGE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse DECODER_SAMPLE_RANGE: %w", err)
		}
		c.SampleRange = n
	}
	if v := os.Getenv("DECODER_GAP_RANGE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse DECODER_GAP_RANGE: %w", err)
		}
		c.GapRange = n
	}
	if v := os.Getenv("DECODER_GIVE_UP_THRESHOLD"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse DECODER_GIVE_UP_THRESHOLD: %w", err)
		}
		c.GiveUpThreshold = n
	}
	if v := os.Getenv("DECODER_BUCKET"); v != "" {
		c.Bucket = v
	}
	if v := os.Getenv("DECODER_OBJECT"); v != "" {
		c.Object = v
	}
	if v := os.Getenv("DECODER_PROGRESS"); v != "" {
		c.Progress = v == "true" || v == "1"
	}
	if v := os.Getenv("DECODER_EVENTS"); v != "" {
		c.Events = v == "true" || v == "1"
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("config: base_url is required")
	}
	if c.MaxConcurrent <= 0 {
		return errors.New("config: max_concurrent must be positive")
	}
	if c.Timeout <= 0 {
		return errors.New("config: timeout must be positive")
	}
	if c.SampleSize <= 0 {
		return errors.New("config: sample_size must be positive")
	}
	if c.SampleRange < 2 {
		return errors.New("config: sample_range must be at least 2")
	}
	if c.GapRange <= 0 {
		return errors.New("config: gap_range must be positive")
	}
	if c.GiveUpThreshold <= 0 {
		return errors.New("config: give_up_threshold must be positive")
	}
	if c.Bucket != "" && c.Object == "" {
		return errors.New("config: object is required when bucket is set")
	}
	return nil
}

// Merge merges override values into c, returning a new Config.
// Zero values in override are ignored.
func (c Config) Merge(override Config) Config {
	if override.BaseURL != "" {
		c.BaseURL = override.BaseURL
	}
	if override.MaxConcurrent != 0 {
		c.MaxConcurrent = override.MaxConcurrent
	}
	if override.Timeout != 0 {
		c.Timeout = override.Timeout
	}
	if override.SampleSize != 0 {
		c.SampleSize = override.SampleSize
	}
	if override.SampleRange != 0 {
		c.SampleRange = override.SampleRange
	}
	if override.GapRange != 0 {
		c.GapRange = override.GapRange
	}
	if override.GiveUpThreshold != 0 {
		c.GiveUpThreshold = override.GiveUpThreshold
	}
	if override.Bucket != "" {
		c.Bucket = override.Bucket
	}
	if override.Object != "" {
		c.Object = override.Object
	}
	if override.Progress {
		c.Progress = override.Progress
	}
	if override.Events {
		c.Events = override.Events
	}
	return c
}
