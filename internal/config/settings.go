package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultBaseURL = "https://api.cashly.app"

type Config struct {
	API     APIConfig     `toml:"api"`
	Logging LoggingConfig `toml:"logging"`
	Export  ExportConfig  `toml:"export"`
	UI      UIConfig      `toml:"ui"`
}

type APIConfig struct {
	BaseURL string `toml:"base_url"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

type ExportConfig struct {
	Dir string `toml:"dir"`
}

type UIConfig struct {
	TranscriptMaxLines int  `toml:"transcript_max_lines"`
	Mouse              bool `toml:"mouse"`
}

func Default() Config {
	return Config{
		API:     APIConfig{BaseURL: defaultBaseURL},
		Logging: LoggingConfig{Level: "info"},
		UI:      UIConfig{TranscriptMaxLines: 2000, Mouse: true},
	}
}

// Load reads the config file, falling back to defaults when it is absent.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	return loadFromPath(path)
}

// LoadFrom reads the config from an explicit path instead of the default
// location.
func LoadFrom(path string) (Config, error) {
	return loadFromPath(path)
}

func loadFromPath(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) BaseURL() string {
	url := strings.TrimSpace(c.API.BaseURL)
	if url == "" {
		return defaultBaseURL
	}
	return strings.TrimRight(url, "/")
}

func (c Config) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return "info"
	}
	return level
}

// ExportDir resolves where forecast exports land, defaulting to a directory
// under the data dir.
func (c Config) ExportDir() (string, error) {
	dir := strings.TrimSpace(c.Export.Dir)
	if dir != "" {
		return dir, nil
	}
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "exports"), nil
}

func (c Config) TranscriptMaxLines() int {
	if c.UI.TranscriptMaxLines <= 0 {
		return 2000
	}
	return c.UI.TranscriptMaxLines
}
