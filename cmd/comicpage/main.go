/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"comicpage/internal/config"
	"comicpage/internal/coords"
	"comicpage/internal/crash"
	"comicpage/internal/domain"
	"comicpage/internal/export"
	"comicpage/internal/fit"
	applog "comicpage/internal/log"
	"comicpage/internal/render"
	"comicpage/internal/scene"
	"comicpage/internal/session"
	"comicpage/internal/undo"
	"comicpage/internal/vector"
	"comicpage/internal/version"
)

// errUsage marks argument errors; main prints usage and exits with 2.
var errUsage = errors.New("usage")

func usagef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "comicpage: comic page composition and editing")
	fmt.Fprintf(w, "Version: %s\n", version.String())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  comicpage version|-v|--version                         Show version")
	fmt.Fprintln(w, "  comicpage render <scene.json> <out.png|out.pdf> [web|print]  Draw the page")
	fmt.Fprintln(w, "  comicpage hit <scene.json> <x> <y>                     Report what a click at x,y would hit")
	fmt.Fprintln(w, "  comicpage split <scene.json> <panelId> <h|v> <out.json>  Split a panel in two")
	fmt.Fprintln(w, "  comicpage rescale <scene.json> <w> <h> <out.json>      Resize the page and its content")
	fmt.Fprintln(w, "  comicpage fit <scene.json> <panelId> <kind> [effect]   Suggest a free rect for a new element")
	fmt.Fprintln(w, "  comicpage add <scene.json> <panelId> <kind> <out.json> [arg]  Add an element")
}

// app carries what every command needs.
type app struct {
	cfg    config.AppConfig
	out    io.Writer
	log    *slog.Logger
	target *crash.Target
}

func main() {
	cfg, cfgErr := config.Load()
	applog.Init(applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	})
	l := applog.WithComponent("cli")
	if cfgErr != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", cfgErr))
		cfg = config.Defaults()
	}

	a := &app{cfg: cfg, out: os.Stdout, log: l, target: &crash.Target{}}
	defer crash.Recover(a.target)

	l.Debug("start", slog.Int("args", len(os.Args)))
	if err := a.run(context.Background(), os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
			usage(os.Stderr)
			os.Exit(2)
		}
		l.Error("command failed", slog.Any("err", err))
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		usage(a.out)
		return nil
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "version", "--version", "-v":
		fmt.Fprintln(a.out, version.String())
		return nil
	case "help", "-h", "--help":
		usage(a.out)
		return nil
	case "render", "hit", "split", "rescale", "fit", "add":
	default:
		return usagef("unknown command %q", cmd)
	}
	if len(rest) == 0 {
		return usagef("%s requires <scene.json>", cmd)
	}
	path := rest[0]
	ctx = applog.WithScene(ctx, path)
	doc, err := scene.Load(path)
	if err != nil {
		return err
	}
	a.target.ScenePath = path
	a.target.Snapshot = func() (scene.Document, bool) { return doc, true }
	a.log.DebugContext(ctx, "scene loaded", slog.Int("panels", len(doc.Page.Panels)))

	switch cmd {
	case "render":
		if len(rest) < 2 {
			return usagef("render requires <scene.json> <out.png|out.pdf> [web|print]")
		}
		var preset string
		if len(rest) > 2 {
			preset = rest[2]
		}
		return a.render(ctx, doc, rest[1], preset)
	case "hit":
		if len(rest) < 3 {
			return usagef("hit requires <scene.json> <x> <y>")
		}
		x, y, err := parsePair(rest[1], rest[2])
		if err != nil {
			return err
		}
		return a.printJSON(a.renderer().HitTest(frame(doc), vector.Pt{X: x, Y: y}))
	case "split":
		if len(rest) < 4 {
			return usagef("split requires <scene.json> <panelId> <h|v> <out.json>")
		}
		return a.split(ctx, doc, rest[1], rest[2], rest[3])
	case "rescale":
		if len(rest) < 4 {
			return usagef("rescale requires <scene.json> <w> <h> <out.json>")
		}
		return a.rescale(ctx, doc, rest[1], rest[2], rest[3])
	case "fit":
		if len(rest) < 3 {
			return usagef("fit requires <scene.json> <panelId> <kind> [effect]")
		}
		var et string
		if len(rest) > 3 {
			et = rest[3]
		}
		return a.fit(doc, rest[1], rest[2], et)
	case "add":
		if len(rest) < 4 {
			return usagef("add requires <scene.json> <panelId> <kind> <out.json> [arg]")
		}
		var arg string
		if len(rest) > 4 {
			arg = rest[4]
		}
		return a.add(ctx, doc, rest[1], rest[2], rest[3], arg)
	}
	return nil
}

func frame(doc scene.Document) render.Frame {
	return render.Frame{Page: doc.Page, Selection: doc.Selection, Modes: doc.Modes}
}

func (a *app) renderer() *render.Renderer {
	rc := a.cfg.Render
	return render.New(render.Options{
		Theme:      render.ThemeByName(rc.Theme),
		Rand:       render.NewRand(rc.Seed),
		HandleSize: rc.HandleSize,
		Logger:     applog.WithComponent("render"),
	})
}

func (a *app) newSession(doc scene.Document) *session.Session {
	s := session.New(doc.Page, session.Options{
		MinPanelSize:  a.cfg.Render.MinPanelSize,
		SnapThreshold: a.cfg.Render.SnapThreshold,
		History: undo.Config{
			MaxBytes:    a.cfg.History.MaxBytes,
			MaxDepth:    a.cfg.History.MaxDepth,
			MinInterval: a.cfg.History.Coalesce(),
		},
		Logger: applog.WithComponent("session"),
	})
	s.SetSelection(doc.Selection)
	s.SetPanelEditMode(doc.Modes.PanelEditMode)
	return s
}

// save writes the session's page back as a document, keeping the host state.
func (a *app) save(ctx context.Context, s *session.Session, out string) error {
	doc := scene.Document{Page: s.Page(), Selection: s.Selection(), Modes: s.Modes()}
	a.target.Snapshot = func() (scene.Document, bool) { return doc, true }
	if err := scene.Save(out, doc); err != nil {
		return err
	}
	a.log.InfoContext(ctx, "scene written", slog.String("out", out), slog.Uint64("version", s.Version()))
	fmt.Fprintln(a.out, "Wrote", out)
	return nil
}

func (a *app) render(ctx context.Context, doc scene.Document, out, presetArg string) error {
	switch ext := strings.ToLower(filepath.Ext(out)); ext {
	case ".png", ".pdf":
	default:
		return usagef("render output must end in .png or .pdf, got %q", ext)
	}
	preset, err := export.ParsePreset(presetArg)
	if err != nil {
		return usagef("%v", err)
	}
	opt := export.Options{Preset: preset, Chrome: true}
	if err := export.File(a.renderer(), doc, out, opt); err != nil {
		return err
	}
	a.log.InfoContext(ctx, "page rendered", slog.String("out", out), slog.Int("dpi", opt.Resolution()))
	fmt.Fprintln(a.out, "Wrote", out)
	return nil
}

func (a *app) split(ctx context.Context, doc scene.Document, idArg, axisArg, out string) error {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		return usagef("panel id %q: %v", idArg, err)
	}
	var axis domain.SplitAxis
	switch strings.ToLower(axisArg) {
	case "h", "horizontal":
		axis = domain.SplitHorizontal
	case "v", "vertical":
		axis = domain.SplitVertical
	default:
		return usagef("axis must be h or v, got %q", axisArg)
	}
	s := a.newSession(doc)
	twin, err := s.SplitPanel(id, axis)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Split panel %d, new panel %d\n", id, twin.ID)
	return a.save(applog.WithGesture(ctx, "split"), s, out)
}

func (a *app) rescale(ctx context.Context, doc scene.Document, wArg, hArg, out string) error {
	w, h, err := parsePair(wArg, hArg)
	if err != nil {
		return err
	}
	s := a.newSession(doc)
	sc, err := s.Rescale(w, h)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Scale %.4g x %.4g (uniform %.4g)\n", sc.X, sc.Y, sc.Uniform())
	return a.save(applog.WithGesture(ctx, "rescale"), s, out)
}

type fitResult struct {
	Rect     vector.Rect `json:"rect"`
	Absolute vector.Rect `json:"absolute"`
	Density  fit.Density `json:"density"`
}

func (a *app) fit(doc scene.Document, idArg, kindArg, etArg string) error {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		return usagef("panel id %q: %v", idArg, err)
	}
	p, ok := doc.Page.PanelByID(id)
	if !ok {
		return fmt.Errorf("panel %d not found", id)
	}
	existing := fit.Existing(doc.Page, id)
	rel := fit.Place(p, domain.ElementKind(kindArg), domain.EffectType(etArg), existing)
	return a.printJSON(fitResult{
		Rect:     rel,
		Absolute: coords.RelativeToAbsolute(rel, p),
		Density:  fit.ClassifyDensity(p, existing),
	})
}

func (a *app) add(ctx context.Context, doc scene.Document, idArg, kindArg, out, arg string) error {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		return usagef("panel id %q: %v", idArg, err)
	}
	s := a.newSession(doc)
	var newID string
	switch domain.ElementKind(kindArg) {
	case domain.KindCharacter:
		c, err := s.AddCharacter(id, arg)
		if err != nil {
			return err
		}
		newID = c.ID
	case domain.KindEffect:
		et := domain.EffectType(arg)
		if et == "" {
			et = domain.EffectSpeed
		}
		e, err := s.AddEffect(id, et)
		if err != nil {
			return err
		}
		newID = e.ID
	case domain.KindTone:
		t, err := s.AddTone(id, domain.TonePattern(arg))
		if err != nil {
			return err
		}
		newID = t.ID
	case domain.KindBackground:
		b, err := s.AddBackground(id, arg)
		if err != nil {
			return err
		}
		newID = b.ID
	case domain.KindBalloon:
		b, err := s.AddBalloon(id, arg)
		if err != nil {
			return err
		}
		newID = b.ID
	default:
		return usagef("unknown element kind %q", kindArg)
	}
	fmt.Fprintln(a.out, "Added", newID)
	return a.save(applog.WithGesture(ctx, "add"), s, out)
}

func parsePair(xs, ys string) (float64, float64, error) {
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return 0, 0, usagef("number %q: %v", xs, err)
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return 0, 0, usagef("number %q: %v", ys, err)
	}
	return x, y, nil
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
