// Package config resolves file locations and runtime switches for lsq.
//
// Precedence, lowest first: built-in defaults (XDG directories), the YAML
// config file, LSQ_* environment variables, command-line flags. LLM
// provider settings are read separately by the llm package.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// AppName names the per-user config and data directories.
const AppName = "lsq"

// Environment variables consulted by ApplyEnv.
const (
	EnvConfig    = "LSQ_CONFIG"
	EnvDB        = "LSQ_DB"
	EnvQuestions = "LSQ_QUESTIONS"
	EnvExportDir = "LSQ_EXPORT_DIR"
	EnvLog       = "LSQ_LOG"
	EnvDebug     = "LSQ_DEBUG"
)

// Config holds resolved paths and switches.
type Config struct {
	DBPath        string `yaml:"db_path"`
	QuestionsPath string `yaml:"questions_path"`
	ExportDir     string `yaml:"export_dir"`
	LogPath       string `yaml:"log_path"`
	Debug         bool   `yaml:"debug"`
	Theme         string `yaml:"theme"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		DBPath:        filepath.Join(xdg.DataHome, AppName, AppName+".db"),
		QuestionsPath: filepath.Join(xdg.ConfigHome, AppName, "questions.json"),
		ExportDir:     ".",
		LogPath:       filepath.Join(xdg.DataHome, AppName, AppName+".log"),
		Theme:         "dark",
	}
}

// DefaultPath returns the config file location, honouring LSQ_CONFIG.
func DefaultPath() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// Load reads the YAML file at path on top of the defaults and then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// Save writes the configuration to path as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ApplyEnv overrides fields from LSQ_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvDB); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv(EnvQuestions); v != "" {
		c.QuestionsPath = v
	}
	if v := os.Getenv(EnvExportDir); v != "" {
		c.ExportDir = v
	}
	if v := os.Getenv(EnvLog); v != "" {
		c.LogPath = v
	}
	if v := os.Getenv(EnvDebug); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		}
	}
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return errors.New("db path is empty")
	}
	if c.ExportDir == "" {
		return errors.New("export dir is empty")
	}
	return nil
}
