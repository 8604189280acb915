// Package config loads the dayplan configuration from a TOML file and
// overlays DAYPLAN_* environment variables on top.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/sandeepkv93/dayplan/internal/model"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

type Config struct {
	Backend         string `toml:"backend"`
	DataPath        string `toml:"data_path"`
	LogPath         string `toml:"log_path"`
	DefaultPriority string `toml:"default_priority"`
}

func Default() Config {
	return Config{
		Backend:         BackendJSON,
		DefaultPriority: string(model.PriorityMedium),
	}
}

// DefaultPath returns the standard config file location under the user
// config dir. Empty when the user config dir cannot be resolved.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "dayplan", "config.toml")
}

// Load reads the TOML file at path. A missing file is not an error;
// defaults apply. Unknown backends and priorities fall back to the
// defaults rather than failing startup.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("load config %s: %w", path, err)
	}
	return sanitize(cfg), nil
}

// FromEnv overlays environment overrides on base.
func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvStr("DAYPLAN_BACKEND"); ok {
		cfg.Backend = v
	}
	if v, ok := getEnvStr("DAYPLAN_DATA_PATH"); ok {
		cfg.DataPath = v
	}
	if v, ok := getEnvStr("DAYPLAN_LOG_PATH"); ok {
		cfg.LogPath = v
	}
	if v, ok := getEnvStr("DAYPLAN_DEFAULT_PRIORITY"); ok {
		cfg.DefaultPriority = v
	}
	return sanitize(cfg)
}

// ResolveDataPath fills in the backend-appropriate default data file
// when none is configured.
func (c Config) ResolveDataPath() string {
	if strings.TrimSpace(c.DataPath) != "" {
		return c.DataPath
	}
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	name := "tasks.json"
	if c.Backend == BackendSQLite {
		name = "tasks.db"
	}
	return filepath.Join(base, "dayplan", name)
}

func (c Config) Priority() model.Priority {
	return model.NormalizePriority(c.DefaultPriority)
}

func sanitize(cfg Config) Config {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case BackendSQLite:
		cfg.Backend = BackendSQLite
	default:
		cfg.Backend = BackendJSON
	}
	cfg.DefaultPriority = string(model.NormalizePriority(cfg.DefaultPriority))
	return cfg
}

func getEnvStr(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}
