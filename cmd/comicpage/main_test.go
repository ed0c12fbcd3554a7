/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"comicpage/internal/config"
	"comicpage/internal/crash"
	"comicpage/internal/domain"
	"comicpage/internal/render"
	"comicpage/internal/scene"
)

func newTestApp(t *testing.T) (*app, *bytes.Buffer, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "page.json")
	doc := scene.Document{Page: domain.Page{
		Width: 800, Height: 600,
		Panels: []domain.Panel{
			{ID: 1, X: 20, Y: 20, Width: 360, Height: 260},
			{ID: 2, X: 420, Y: 20, Width: 360, Height: 260},
		},
		Characters: []domain.Character{{ID: "c1", PanelID: 1, X: 0.5, Y: 0.5, Scale: 1, ViewType: domain.ViewFace}},
	}}
	if err := scene.Save(path, doc); err != nil {
		t.Fatal(err)
	}
	cfg := config.Defaults()
	cfg.Render.Seed = 1
	var out bytes.Buffer
	a := &app{cfg: cfg, out: &out, log: slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), target: &crash.Target{}}
	return a, &out, path
}

func TestVersionAndUsage(t *testing.T) {
	a, out, _ := newTestApp(t)
	if err := a.run(context.Background(), []string{"version"}); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) == "" {
		t.Fatalf("version printed nothing")
	}
	if err := a.run(context.Background(), []string{"bogus", "x.json"}); !errors.Is(err, errUsage) {
		t.Fatalf("expected error for unknown command")
	}
	if err := a.run(context.Background(), []string{"render"}); !errors.Is(err, errUsage) {
		t.Fatalf("missing scene should be a usage error, got %v", err)
	}
}

func TestHitCommand(t *testing.T) {
	a, out, path := newTestApp(t)
	if err := a.run(context.Background(), []string{"hit", path, "200", "150"}); err != nil {
		t.Fatal(err)
	}
	var h render.Hit
	if err := json.Unmarshal(out.Bytes(), &h); err != nil {
		t.Fatalf("decode hit: %v (%s)", err, out.String())
	}
	if h.Kind != domain.KindCharacter || h.ID != "c1" || h.PanelID != 1 {
		t.Fatalf("hit = %+v", h)
	}
	if err := a.run(context.Background(), []string{"hit", path, "x", "1"}); !errors.Is(err, errUsage) {
		t.Fatalf("bad coordinate err = %v", err)
	}
}

func TestSplitCommandWritesScene(t *testing.T) {
	a, _, path := newTestApp(t)
	out := filepath.Join(filepath.Dir(path), "split.json")
	if err := a.run(context.Background(), []string{"split", path, "2", "v", out}); err != nil {
		t.Fatal(err)
	}
	doc, err := scene.Load(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Page.Panels) != 3 || doc.Page.Panels[2].ID != 1002 || doc.Page.Panels[2].X != 600 {
		t.Fatalf("panels = %+v", doc.Page.Panels)
	}
	if err := a.run(context.Background(), []string{"split", path, "2", "diagonal", out}); !errors.Is(err, errUsage) {
		t.Fatalf("bad axis err = %v", err)
	}
}

func TestRescaleCommand(t *testing.T) {
	a, out, path := newTestApp(t)
	dst := filepath.Join(filepath.Dir(path), "big.json")
	if err := a.run(context.Background(), []string{"rescale", path, "1600", "1200", dst}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Scale 2 x 2") {
		t.Fatalf("output = %q", out.String())
	}
	doc, err := scene.Load(dst)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Page.Width != 1600 || doc.Page.Panels[1].X != 840 || doc.Page.Characters[0].Scale != 2 {
		t.Fatalf("page = %+v", doc.Page)
	}
}

func TestFitCommand(t *testing.T) {
	a, out, path := newTestApp(t)
	if err := a.run(context.Background(), []string{"fit", path, "2", "tone"}); err != nil {
		t.Fatal(err)
	}
	var res fitResult
	if err := json.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Rect.W <= 0 || res.Absolute.X < 420 || res.Absolute.X+res.Absolute.W > 780+1e-9 {
		t.Fatalf("fit = %+v", res)
	}
	if err := a.run(context.Background(), []string{"fit", path, "9", "tone"}); err == nil {
		t.Fatalf("expected error for an unknown panel")
	}
}

func TestAddCommand(t *testing.T) {
	a, _, path := newTestApp(t)
	dst := filepath.Join(filepath.Dir(path), "added.json")
	if err := a.run(context.Background(), []string{"add", path, "2", "effect", dst, "focus"}); err != nil {
		t.Fatal(err)
	}
	doc, err := scene.Load(dst)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Page.Effects) != 1 || doc.Page.Effects[0].Type != domain.EffectFocus || doc.Selection.EffectID != doc.Page.Effects[0].ID {
		t.Fatalf("effects = %+v, selection = %+v", doc.Page.Effects, doc.Selection)
	}
	if err := a.run(context.Background(), []string{"add", path, "2", "sticker", dst}); !errors.Is(err, errUsage) {
		t.Fatalf("unknown kind err = %v", err)
	}
}

func TestRenderCommand(t *testing.T) {
	a, _, path := newTestApp(t)
	dir := filepath.Dir(path)
	for _, name := range []string{"page.png", "page.pdf"} {
		out := filepath.Join(dir, name)
		if err := a.run(context.Background(), []string{"render", path, out}); err != nil {
			t.Fatalf("render %s: %v", name, err)
		}
		if fi, err := os.Stat(out); err != nil || fi.Size() == 0 {
			t.Fatalf("%s not written: %v", name, err)
		}
	}
	if err := a.run(context.Background(), []string{"render", path, filepath.Join(dir, "page.gif")}); !errors.Is(err, errUsage) {
		t.Fatalf("unsupported extension err = %v", err)
	}
}

func TestRenderRejectsUnknownPreset(t *testing.T) {
	a, _, path := newTestApp(t)
	if err := a.run(context.Background(), []string{"render", path, filepath.Join(filepath.Dir(path), "p.png"), "poster"}); !errors.Is(err, errUsage) {
		t.Fatalf("unknown preset err = %v", err)
	}
}
