// Package config loads optional crawl defaults from
// ~/.newscrawl/config.yaml. Every value has a built-in default; the file
// only exists so an operator can avoid repeating flags across runs.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the defaults the CLI applies before flag parsing.
type Config struct {
	HTTP struct {
		// Timeout is a Go duration string ("30s", "2m").
		Timeout   string `yaml:"timeout"`
		UserAgent string `yaml:"user_agent"`
	} `yaml:"http"`
	Crawl struct {
		// Delay between requests, in seconds.
		Delay         float64 `yaml:"delay"`
		MaxEmptyPages int     `yaml:"max_empty_pages"`
	} `yaml:"crawl"`
	// Keywords is the default search keyword list for the article
	// crawls when no --keyword flag is given.
	Keywords []string `yaml:"keywords"`
}

// Default returns the built-in configuration: the keyword list and
// pacing the original crawl runs used.
func Default() *Config {
	cfg := &Config{}
	cfg.Crawl.Delay = 1.0
	cfg.Crawl.MaxEmptyPages = 3
	cfg.Keywords = []string{"thuốc giả", "sữa giả", "thực phẩm chức năng giả"}
	return cfg
}

// Load reads ~/.newscrawl/config.yaml merged over the defaults. A
// missing file is not an error; a file that exists but cannot be parsed
// is.
func Load() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	return LoadFile(filepath.Join(homeDir, ".newscrawl", "config.yaml"))
}

// LoadFile reads the given config file merged over the defaults,
// returning the defaults untouched when the file does not exist.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Timeout returns the configured HTTP timeout, or zero when unset or
// unparseable so the client falls back to its default.
func (c *Config) Timeout() time.Duration {
	if c.HTTP.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.HTTP.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// DelayDuration converts the configured delay seconds to a duration.
func (c *Config) DelayDuration() time.Duration {
	return time.Duration(c.Crawl.Delay * float64(time.Second))
}
