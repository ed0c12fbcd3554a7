/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package config loads the user configuration of comicpage: a YAML file in
// the user scope, merged over defaults, with environment variables as
// read-only overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// config_version: bump when the structure changes in a backward-incompatible way.
// Unknown fields are ignored on unmarshal.

type RenderConfig struct {
	Theme         string  `yaml:"theme"` // "light" | "dark"
	HandleSize    float64 `yaml:"handle_size"`
	MinPanelSize  float64 `yaml:"min_panel_size"`
	Seed          int64   `yaml:"seed"`           // 0 picks a time-based seed
	SnapThreshold float64 `yaml:"snap_threshold"` // 0 disables snapping
}

type HistoryConfig struct {
	MaxDepth   int `yaml:"max_depth"`
	MaxBytes   int `yaml:"max_bytes"`
	CoalesceMs int `yaml:"coalesce_ms"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Render        RenderConfig  `yaml:"render"`
	History       HistoryConfig `yaml:"history"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Render: RenderConfig{
			Theme:         "light",
			HandleSize:    8,
			MinPanelSize:  50,
			SnapThreshold: 6,
		},
		History: HistoryConfig{MaxDepth: 100, MaxBytes: 32 << 20, CoalesceMs: 500},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides.
const (
	EnvConfigPath    = "CPG_CONFIG"
	EnvTheme         = "CPG_THEME"
	EnvSeed          = "CPG_SEED"
	EnvMinPanelSize  = "CPG_MIN_PANEL_SIZE"
	EnvSnapThreshold = "CPG_SNAP_THRESHOLD"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "CPG_LOG_LEVEL"
	EnvLogFormat = "CPG_LOG_FORMAT"
	EnvLogSource = "CPG_LOG_SOURCE"
	EnvLogFile   = "CPG_LOG_FILE"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("config: invalid value")

// ConfigPath returns the per-user config file path. CPG_CONFIG wins when set.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "ComicPage")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "ComicPage")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "comicpage")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges
// environment overrides. A missing file is not an error; a malformed one is.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return Defaults(), err
	}
	return LoadFile(path)
}

// LoadFile is Load for an explicit path.
func LoadFile(path string) (AppConfig, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	case !errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	applyEnvOverrides(&cfg)
	return cfg, cfg.Validate()
}

// Save writes cfg to the user config path.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Validate rejects values renderers cannot work with.
func (c AppConfig) Validate() error {
	switch c.Render.Theme {
	case "light", "dark":
	default:
		return fmt.Errorf("%w: render.theme %q", ErrInvalid, c.Render.Theme)
	}
	if c.Render.MinPanelSize < 0 || c.Render.HandleSize < 0 || c.Render.SnapThreshold < 0 {
		return fmt.Errorf("%w: negative render size", ErrInvalid)
	}
	if c.History.MaxDepth < 0 || c.History.MaxBytes < 0 || c.History.CoalesceMs < 0 {
		return fmt.Errorf("%w: negative history limit", ErrInvalid)
	}
	return nil
}

// Coalesce is the history merge window as a duration.
func (h HistoryConfig) Coalesce() time.Duration {
	return time.Duration(h.CoalesceMs) * time.Millisecond
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if v := strings.ToLower(strings.TrimSpace(src.Render.Theme)); v != "" {
		dst.Render.Theme = v
	}
	if src.Render.HandleSize != 0 {
		dst.Render.HandleSize = src.Render.HandleSize
	}
	if src.Render.MinPanelSize != 0 {
		dst.Render.MinPanelSize = src.Render.MinPanelSize
	}
	if src.Render.SnapThreshold != 0 {
		dst.Render.SnapThreshold = src.Render.SnapThreshold
	}
	dst.Render.Seed = src.Render.Seed
	if src.History.MaxDepth != 0 {
		dst.History.MaxDepth = src.History.MaxDepth
	}
	if src.History.MaxBytes != 0 {
		dst.History.MaxBytes = src.History.MaxBytes
	}
	if src.History.CoalesceMs != 0 {
		dst.History.CoalesceMs = src.History.CoalesceMs
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func envBool(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

func envFloat(key string, dst *float64) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvTheme)); v != "" {
		cfg.Render.Theme = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvSeed)); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Render.Seed = n
		}
	}
	envFloat(EnvMinPanelSize, &cfg.Render.MinPanelSize)
	envFloat(EnvSnapThreshold, &cfg.Render.SnapThreshold)
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = envBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	env := map[string]string{
		"render.theme":          EnvTheme,
		"render.seed":           EnvSeed,
		"render.min_panel_size": EnvMinPanelSize,
		"render.snap_threshold": EnvSnapThreshold,
		"logging.level":         EnvLogLevel,
		"logging.format":        EnvLogFormat,
		"logging.source":        EnvLogSource,
		"logging.file":          EnvLogFile,
	}[key]
	if env == "" || os.Getenv(env) == "" {
		return "", false
	}
	return env, true
}
