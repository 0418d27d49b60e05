package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
)

type Config struct {
	// Preferred generation backend: "claude", "gemini", or "api".
	// Empty means auto-detect in that order.
	Provider string `json:"provider,omitempty"`

	// API backend settings (used when Provider is "api" or auto-detect
	// falls through to the API engine)
	Model      string `json:"model,omitempty"`
	APIBaseURL string `json:"api_base_url,omitempty"`

	// Repair tuning
	MaxGeneratedPatches int `json:"max_generated_patches,omitempty"`
	ContextLines        int `json:"context_lines,omitempty"`

	// Changelog lookups
	GitHubToken string `json:"github_token,omitempty"`
}

var (
	configDir  string
	configPath string
)

func init() {
	homeDir := os.Getenv("HOME")
	if runtime.GOOS == "windows" {
		homeDir = os.Getenv("USERPROFILE")
	}
	configDir = filepath.Join(homeDir, ".config", "remedy")
	configPath = filepath.Join(configDir, "config.json")
}

// ensureConfigDir creates the config directory if it doesn't exist
func ensureConfigDir() error {
	return os.MkdirAll(configDir, 0700)
}

// Load loads the configuration from file. A missing file is not an
// error: every field has an env or built-in default.
func Load() (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return &cfg, nil
}

// Save saves the configuration to file
func Save(cfg *Config) error {
	if err := ensureConfigDir(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

// Path returns the config file path
func Path() string {
	return configPath
}

// GetProvider returns the generation backend (env REMEDY_PROVIDER wins
// over the file; empty means auto-detect)
func (c *Config) GetProvider() string {
	if p := os.Getenv("REMEDY_PROVIDER"); p != "" {
		return p
	}
	return c.Provider
}

// GetModel returns the API model name
func (c *Config) GetModel() string {
	if m := os.Getenv("REMEDY_MODEL"); m != "" {
		return m
	}
	return c.Model
}

// GetAPIBaseURL returns the API endpoint URL
func (c *Config) GetAPIBaseURL() string {
	if u := os.Getenv("REMEDY_API_BASE_URL"); u != "" {
		return u
	}
	return c.APIBaseURL
}

// GetMaxGeneratedPatches returns the per-run generation cap (defaults
// to 10)
func (c *Config) GetMaxGeneratedPatches() int {
	if v := os.Getenv("REMEDY_MAX_GENERATED_PATCHES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	if c.MaxGeneratedPatches > 0 {
		return c.MaxGeneratedPatches
	}
	return 10
}

// GetContextLines returns the code window size around a diagnostic
// (defaults to 6)
func (c *Config) GetContextLines() int {
	if v := os.Getenv("REMEDY_CONTEXT_LINES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	if c.ContextLines > 0 {
		return c.ContextLines
	}
	return 6
}

// GetGitHubToken returns the token for changelog API calls
func (c *Config) GetGitHubToken() string {
	if t := os.Getenv("GITHUB_TOKEN"); t != "" {
		return t
	}
	return c.GitHubToken
}
