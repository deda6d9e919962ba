package config

//go:generate go run ../tools/schema-generator

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ServerConfig defines settings for the HTTP server.
type ServerConfig struct {
	// Host is the address the server binds to.
	Host string `yaml:"host,omitempty"`

	// Port is the listen port. The PORT environment variable takes
	// precedence when set.
	Port int `yaml:"port,omitempty"`
}

// TimelineConfig defines settings for the visual activity strip.
type TimelineConfig struct {
	// ContainerPx is the assumed pixel width of the timeline container.
	ContainerPx float64 `yaml:"container_px,omitempty"`

	// MinEventPx is the minimum rendered width of an interval event, in
	// pixels of the container. Near-zero tool calls stay visible.
	MinEventPx float64 `yaml:"min_event_px,omitempty"`
}

// SearchConfig defines settings for search query issuance.
type SearchConfig struct {
	// DebounceMs is the quiet period before a pending query fires.
	DebounceMs int `yaml:"debounce_ms,omitempty"`
}

// Config is the top-level configuration structure for subtle.
type Config struct {
	// ProjectsDir overrides the session log location
	// (default: ~/.claude/projects).
	ProjectsDir string `yaml:"projects_dir,omitempty"`

	Server   ServerConfig   `yaml:"server,omitempty"`
	Timeline TimelineConfig `yaml:"timeline,omitempty"`
	Search   SearchConfig   `yaml:"search,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8000,
		},
		Timeline: TimelineConfig{
			ContainerPx: 800,
			MinEventPx:  1,
		},
		Search: SearchConfig{
			DebounceMs: 300,
		},
	}
}

// Load reads the user config from ~/.config/subtle/config.yaml, falling back
// to defaults when the file is missing or unreadable.
func Load() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		return Default()
	}
	return LoadFile(filepath.Join(home, ".config", "subtle", "config.yaml"))
}

// LoadFile reads a config file, overlaying it on the defaults. A missing or
// malformed file yields the defaults.
func LoadFile(path string) Config {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default()
	}
	return cfg
}
