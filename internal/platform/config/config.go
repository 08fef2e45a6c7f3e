package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	apperrors "revisit/internal/platform/errors"
)

const (
	FileName          = "revisit.yaml"
	DefaultCatalogURL = "https://leetcode.com"
	DefaultFetchLimit = 50
)

// DefaultScheduleMinutes is the forgetting curve: 1, 2, 4, 7 and 15 days.
var DefaultScheduleMinutes = []int{
	1 * 24 * 60,
	2 * 24 * 60,
	4 * 24 * 60,
	7 * 24 * 60,
	15 * 24 * 60,
}

type Config struct {
	DataDir            string
	DBPath             string
	Schedule           []time.Duration
	FetchLimit         int
	CatalogURL         string
	SessionCookie      string
	CatalogTimeout     time.Duration
	CatalogConcurrency int
	LogLevel           string
	LogFormat          string
}

type fileConfig struct {
	ScheduleMinutes []int `yaml:"schedule_minutes"`
	FetchLimit      int   `yaml:"fetch_limit"`
	Catalog         struct {
		URL         string `yaml:"url"`
		Timeout     string `yaml:"timeout"`
		Concurrency int    `yaml:"concurrency"`
	} `yaml:"catalog"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// New resolves configuration for dataDir. Precedence, lowest first:
// defaults, <dataDir>/revisit.yaml, .env files, process environment.
func New(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("%w: data dir is required", apperrors.ErrInvalidInput)
	}
	cfg := Config{
		DataDir:            dataDir,
		DBPath:             filepath.Join(dataDir, "revisit.db"),
		Schedule:           minutes(DefaultScheduleMinutes),
		FetchLimit:         DefaultFetchLimit,
		CatalogURL:         DefaultCatalogURL,
		CatalogTimeout:     15 * time.Second,
		CatalogConcurrency: 4,
		LogLevel:           "info",
		LogFormat:          "text",
	}

	if err := cfg.applyFile(filepath.Join(dataDir, FileName)); err != nil {
		return Config{}, err
	}

	// Missing .env files are fine; existing environment variables win.
	_ = godotenv.Load(filepath.Join(dataDir, ".env"))
	_ = godotenv.Load()
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("%w: decode config %s: %v", apperrors.ErrInvalidInput, path, err)
	}
	if len(fc.ScheduleMinutes) > 0 {
		c.Schedule = minutes(fc.ScheduleMinutes)
	}
	if fc.FetchLimit != 0 {
		c.FetchLimit = fc.FetchLimit
	}
	if fc.Catalog.URL != "" {
		c.CatalogURL = fc.Catalog.URL
	}
	if fc.Catalog.Timeout != "" {
		d, err := time.ParseDuration(fc.Catalog.Timeout)
		if err != nil {
			return fmt.Errorf("%w: catalog.timeout=%q: %v", apperrors.ErrInvalidInput, fc.Catalog.Timeout, err)
		}
		c.CatalogTimeout = d
	}
	if fc.Catalog.Concurrency != 0 {
		c.CatalogConcurrency = fc.Catalog.Concurrency
	}
	if fc.Log.Level != "" {
		c.LogLevel = fc.Log.Level
	}
	if fc.Log.Format != "" {
		c.LogFormat = fc.Log.Format
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.SessionCookie = os.Getenv("LEETCODE_SESSION")
	if v := os.Getenv("REVISIT_CATALOG_URL"); v != "" {
		c.CatalogURL = v
	}
	if v := os.Getenv("REVISIT_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("REVISIT_FETCH_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: REVISIT_FETCH_LIMIT=%q is not a number", apperrors.ErrInvalidInput, v)
		}
		c.FetchLimit = n
	}
	return nil
}

func (c Config) Validate() error {
	if len(c.Schedule) == 0 {
		return fmt.Errorf("%w: schedule must have at least one rung", apperrors.ErrInvalidInput)
	}
	for i, d := range c.Schedule {
		if d <= 0 {
			return fmt.Errorf("%w: schedule rung %d must be positive", apperrors.ErrInvalidInput, i)
		}
	}
	if c.FetchLimit <= 0 {
		return fmt.Errorf("%w: fetch limit must be positive", apperrors.ErrInvalidInput)
	}
	if c.CatalogConcurrency <= 0 {
		return fmt.Errorf("%w: catalog concurrency must be positive", apperrors.ErrInvalidInput)
	}
	if c.CatalogTimeout <= 0 {
		return fmt.Errorf("%w: catalog timeout must be positive", apperrors.ErrInvalidInput)
	}
	return nil
}

func minutes(values []int) []time.Duration {
	out := make([]time.Duration, 0, len(values))
	for _, v := range values {
		out = append(out, time.Duration(v)*time.Minute)
	}
	return out
}
