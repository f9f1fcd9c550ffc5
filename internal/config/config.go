package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings dex reads at startup.
type Config struct {
	BaseURL  string
	PageSize int
	Timeout  time.Duration
	LogDir   string
	LogLevel string
}

const (
	defaultConfigPath = "~/.config/dex/config.toml"
	defaultBaseURL    = "https://pokeapi.co/api/v2/"
	defaultPageSize   = 100
	maxPageSize       = 1000
	defaultTimeout    = 30 * time.Second
	defaultLogDir     = "~/.local/state/dex"
	defaultLogLevel   = "info"
)

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		BaseURL:  defaultBaseURL,
		PageSize: defaultPageSize,
		Timeout:  defaultTimeout,
		LogDir:   mustExpand(defaultLogDir),
		LogLevel: defaultLogLevel,
	}
}

// Load locates and parses the dex config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BaseURL        string `toml:"base_url"`
		PageSize       int    `toml:"page_size"`
		TimeoutSeconds int    `toml:"timeout_seconds"`
		LogDir         string `toml:"log_dir"`
		LogLevel       string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()

	if v := strings.TrimSpace(raw.BaseURL); v != "" {
		cfg.BaseURL = v
	}
	if raw.PageSize > 0 {
		cfg.PageSize = min(raw.PageSize, maxPageSize)
	}
	if raw.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(raw.TimeoutSeconds) * time.Second
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.LogDir = mustExpand(v)
	}
	if v := strings.ToLower(strings.TrimSpace(raw.LogLevel)); validLevels[v] {
		cfg.LogLevel = v
	}

	return cfg, nil
}

// WithPageSize returns a copy with the page size overridden. Non-positive
// values keep the current size; larger values are capped like the file's.
func (c Config) WithPageSize(n int) Config {
	if n > 0 {
		c.PageSize = min(n, maxPageSize)
	}
	return c
}

// LogPath returns the path to the diagnostics log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/dex.log")
	}
	return filepath.Join(c.LogDir, "dex.log")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
