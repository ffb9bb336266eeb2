package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// DefaultFileName is looked up in the working directory and then the home directory.
const DefaultFileName = ".gitlog2arrow.json"

// Config is the root configuration structure.
type Config struct {
	Export     ExportConfig     `json:"export"`
	Filters    FilterConfig     `json:"filters"`
	Repository RepositoryConfig `json:"repository"`
}

// ExportConfig holds output options.
type ExportConfig struct {
	MaxCount    int  `json:"maxCount"`    // Default: 1024
	TrimMessage bool `json:"trimMessage"` // Default: false
}

// FilterConfig holds commit filtering options.
// Author is nil when unset; an empty string only matches commits with an empty author name.
// Since and Until are RFC 3339 timestamps; unparsable values are ignored.
type FilterConfig struct {
	Author *string `json:"author,omitempty"`
	Since  string  `json:"since"`
	Until  string  `json:"until"`
}

// RepositoryConfig holds traversal options.
type RepositoryConfig struct {
	Rev     string `json:"rev"`     // Default: "HEAD"
	Order   string `json:"order"`   // Default: "bfs"
	Backend string `json:"backend"` // Default: "go-git"
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Export: ExportConfig{
			MaxCount:    1024,
			TrimMessage: false,
		},
		Filters: FilterConfig{},
		Repository: RepositoryConfig{
			Rev:     "HEAD",
			Order:   "bfs",
			Backend: "go-git",
		},
	}
}

// LoadConfig loads configuration from a file, merging with defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		// Try default locations
		candidates := []string{DefaultFileName}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			candidates = append(candidates, filepath.Join(home, DefaultFileName))
		} else if envHome := os.Getenv("HOME"); envHome != "" {
			candidates = append(candidates, filepath.Join(envHome, DefaultFileName))
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig saves configuration to a file.
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
