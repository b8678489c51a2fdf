package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the tool defaults. Unknown keys in the file are ignored, so
// configs written by newer versions keep loading.
type Config struct {
	UnrarPath   string `yaml:"unrar_path"`
	Destination string `yaml:"destination"`
	Overwrite   bool   `yaml:"overwrite"`
	// PasswordFile names a file whose first line is used as the default
	// archive password. Empty means no default password.
	PasswordFile string `yaml:"password_file"`
}

func DefaultConfig() *Config {
	return &Config{
		UnrarPath:   "unrar",
		Destination: "",
		Overwrite:   false,
	}
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".unrarctl", "config.yaml")
}

func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Save() error {
	return c.SaveTo(ConfigPath())
}

func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Password resolves the default password from PasswordFile. Returns the
// empty string when no file is configured or it cannot be read.
func (c *Config) Password() string {
	if c.PasswordFile == "" {
		return ""
	}
	data, err := os.ReadFile(ExpandPath(c.PasswordFile))
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(string(data), "\n")
	return strings.TrimSpace(line)
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path // Return unexpanded if home unavailable
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
