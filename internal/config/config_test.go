/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestMissingFileYieldsDefaults(t *testing.T) {
	t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "absent.yaml"))
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg != Defaults() {
		t.Fatalf("cfg = %#v, want defaults", cfg)
	}
}

func TestFileMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("render:\n  theme: Dark\n  seed: 42\n  min_panel_size: 80\nhistory:\n  coalesce_ms: 250\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if cfg.Render.Theme != "dark" || cfg.Render.Seed != 42 || cfg.Render.MinPanelSize != 80 {
		t.Fatalf("render = %#v", cfg.Render)
	}
	if cfg.Render.SnapThreshold != 6 || cfg.Render.HandleSize != 8 {
		t.Fatalf("defaults lost for unset fields: %#v", cfg.Render)
	}
	if got := cfg.History.Coalesce(); got != 250*time.Millisecond {
		t.Fatalf("coalesce = %v", got)
	}
	if cfg.History.MaxDepth != 100 {
		t.Fatalf("max depth = %d", cfg.History.MaxDepth)
	}
}

func TestToneFallbackAreaIsNotConfigurable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("render:\n  tone_fallback_area: 1000000000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if cfg.Render != Defaults().Render {
		t.Fatalf("render = %#v, want defaults", cfg.Render)
	}
	if _, ok := EnvOverrideFor("render.tone_fallback_area"); ok {
		t.Fatalf("tone fallback area should have no env override")
	}
}

func TestMalformedFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("render: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestMergeIncludesLogging(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Logging.Level = "DEBUG"
	src.Logging.Format = "json"
	src.Logging.Source = true
	src.Logging.File = "C:/tmp/cpg.log"
	mergeInto(&dst, &src)
	if dst.Logging.Level != "debug" || dst.Logging.Format != "json" || !dst.Logging.Source || dst.Logging.File != "C:/tmp/cpg.log" {
		t.Fatalf("logging fields not merged correctly: %#v", dst.Logging)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv(EnvTheme, "DARK")
	t.Setenv(EnvSeed, "7")
	t.Setenv(EnvSnapThreshold, "0")
	t.Setenv(EnvMinPanelSize, "not-a-number")
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogSource, "1")
	t.Setenv(EnvLogFile, "X:/cpg.log")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Render.Theme != "dark" || cfg.Render.Seed != 7 || cfg.Render.SnapThreshold != 0 {
		t.Fatalf("render overrides not applied: %#v", cfg.Render)
	}
	if cfg.Render.MinPanelSize != 50 {
		t.Fatalf("unparsable override should be ignored, got %v", cfg.Render.MinPanelSize)
	}
	if cfg.Logging.Level != "error" || !cfg.Logging.Source || cfg.Logging.File != "X:/cpg.log" {
		t.Fatalf("env overrides not applied to logging: %#v", cfg.Logging)
	}
	if env, ok := EnvOverrideFor("render.seed"); !ok || env != EnvSeed {
		t.Fatalf("EnvOverrideFor(render.seed) = %q, %v", env, ok)
	}
	if _, ok := EnvOverrideFor("render.handle_size"); ok {
		t.Fatalf("handle_size has no env override")
	}
}

func TestValidateRejectsUnknownTheme(t *testing.T) {
	t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv(EnvTheme, "sepia")
	if _, err := Load(); !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	t.Setenv(EnvConfigPath, path)
	cfg := Defaults()
	cfg.Render.Seed = 99
	if err := Save(cfg); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got.Render.Seed != 99 {
		t.Fatalf("seed = %d", got.Render.Seed)
	}
}
