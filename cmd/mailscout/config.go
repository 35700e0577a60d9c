package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/mailscout"
	"github.com/fwojciec/mailscout/extract"
	mshttp "github.com/fwojciec/mailscout/http"
	"gopkg.in/yaml.v3"
)

// Config holds tunables read from the optional YAML config file.
type Config struct {
	Fetch struct {
		Timeout      time.Duration `yaml:"timeout"`
		UserAgent    string        `yaml:"user_agent"`
		RequestDelay time.Duration `yaml:"request_delay"`
	} `yaml:"fetch"`

	Jobs struct {
		Delay       time.Duration `yaml:"delay"`
		BatchSize   int           `yaml:"batch_size"`
		Concurrency int           `yaml:"concurrency"`
	} `yaml:"jobs"`

	// ContactPaths and IgnoreDomains replace the built-in lists when set.
	ContactPaths  []string `yaml:"contact_paths"`
	IgnoreDomains []string `yaml:"ignore_domains"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	var cfg Config
	cfg.Fetch.Timeout = mshttp.DefaultFetchTimeout
	cfg.Fetch.UserAgent = mshttp.DefaultUserAgent
	cfg.Jobs.Delay = extract.DefaultDelay
	cfg.Jobs.Concurrency = extract.DefaultConcurrency
	return cfg
}

// LoadConfig reads path over DefaultConfig. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, mailscout.Errorf(mailscout.EINVALID, "invalid config file %s: %v", path, err)
	}
	if cfg.Fetch.Timeout <= 0 {
		return cfg, mailscout.Errorf(mailscout.EINVALID, "fetch.timeout must be positive")
	}
	if cfg.Jobs.Delay < 0 || cfg.Jobs.BatchSize < 0 || cfg.Jobs.Concurrency < 0 {
		return cfg, mailscout.Errorf(mailscout.EINVALID, "jobs settings must not be negative")
	}
	return cfg, nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	dir := filepath.Join(home, ".mailscout")
	_ = os.MkdirAll(dir, 0755)
	return dir
}

func defaultDBPath() string {
	if path := os.Getenv("MAILSCOUT_DB"); path != "" {
		return path
	}
	return filepath.Join(defaultDataDir(), "mailscout.db")
}

func defaultConfigPath() string {
	if path := os.Getenv("MAILSCOUT_CONFIG"); path != "" {
		return path
	}
	return filepath.Join(defaultDataDir(), "config.yaml")
}
