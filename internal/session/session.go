/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package session owns the page being edited. Each gesture produces a new
// page version through the edit package and records the previous one for
// undo.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"comicpage/internal/coords"
	"comicpage/internal/domain"
	"comicpage/internal/edit"
	"comicpage/internal/factory"
	applog "comicpage/internal/log"
	"comicpage/internal/render"
	"comicpage/internal/undo"
	"comicpage/internal/vector"
)

// ErrNothingToUndo is returned by Undo and Redo when the stack is empty.
var ErrNothingToUndo = errors.New("session: nothing to undo")

// Options configures a Session. Zero fields get defaults.
type Options struct {
	MinPanelSize  float64
	SnapThreshold float64 // 0 disables snapping of moved panels
	History       undo.Config
	Factory       *factory.Factory
	Now           func() time.Time
	Logger        *slog.Logger
}

// Session holds the current page version, selection and mode flags.
// It is not safe for concurrent use.
type Session struct {
	page    domain.Page
	version uint64
	sel     domain.Selection
	modes   domain.Modes
	guides  []vector.Guide

	minPanel float64
	snap     float64
	hist     *undo.History
	factory  *factory.Factory
	now      func() time.Time
	log      *slog.Logger
}

// New starts a session on pg at version 1.
func New(pg domain.Page, opts Options) *Session {
	s := &Session{
		page:     pg.Clone(),
		version:  1,
		minPanel: opts.MinPanelSize,
		snap:     opts.SnapThreshold,
		hist:     undo.NewHistory(opts.History),
		factory:  opts.Factory,
		now:      opts.Now,
		log:      opts.Logger,
	}
	if s.minPanel <= 0 {
		s.minPanel = edit.DefaultMinPanelSize
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.factory == nil {
		s.factory = factory.New(nil, s.now)
	}
	if s.log == nil {
		s.log = applog.WithComponent("session")
	}
	return s
}

// Page returns a copy of the current page.
func (s *Session) Page() domain.Page { return s.page.Clone() }

// Version increases by one with every applied gesture, undo and redo.
func (s *Session) Version() uint64 { return s.version }

func (s *Session) Selection() domain.Selection       { return s.sel }
func (s *Session) SetSelection(sel domain.Selection) { s.sel = sel }
func (s *Session) Modes() domain.Modes               { return s.modes }

// SetPanelEditMode toggles the host's panel edit flag.
func (s *Session) SetPanelEditMode(on bool) { s.modes.PanelEditMode = on }

// Guides returns the alignment guides of the last panel move.
func (s *Session) Guides() []vector.Guide { return s.guides }

// Frame bundles the state a render call needs.
func (s *Session) Frame() render.Frame {
	return render.Frame{Page: s.Page(), Selection: s.sel, Modes: s.modes}
}

// apply runs one gesture. On success the previous version goes to the
// history and the version counter advances; on error nothing changes.
func (s *Session) apply(label string, fn func(domain.Page) (domain.Page, error)) error {
	next, err := fn(s.page)
	if err != nil {
		return err
	}
	snap, err := undo.Capture(s.page, s.version, label, s.now())
	if err != nil {
		return err
	}
	s.hist.Push(snap)
	s.page = next
	s.version++
	applog.WithOperation(s.log, label).Debug("gesture applied", "version", s.version)
	return nil
}

func (s *Session) restore(step func(undo.Snapshot) (undo.Snapshot, bool)) error {
	cur, err := undo.Capture(s.page, s.version, "", s.now())
	if err != nil {
		return err
	}
	prev, ok := step(cur)
	if !ok {
		return ErrNothingToUndo
	}
	pg, err := prev.Page()
	if err != nil {
		return err
	}
	s.page = pg
	s.version++
	s.sel = pruneSelection(s.page, s.sel)
	return nil
}

// Undo restores the previous version.
func (s *Session) Undo() error { return s.restore(s.hist.Undo) }

// Redo re-applies the most recently undone version.
func (s *Session) Redo() error { return s.restore(s.hist.Redo) }

// CanUndo reports whether Undo would succeed.
func (s *Session) CanUndo() bool { return s.hist.CanUndo() }

// CanRedo reports whether Redo would succeed.
func (s *Session) CanRedo() bool { return s.hist.CanRedo() }

// SplitPanel splits a panel and returns the new twin.
func (s *Session) SplitPanel(id int, axis domain.SplitAxis) (domain.Panel, error) {
	var twin domain.Panel
	err := s.apply("split:"+strconv.Itoa(id), func(pg domain.Page) (domain.Page, error) {
		out, b, err := edit.SplitPanelInPage(pg, id, axis)
		twin = b
		return out, err
	})
	return twin, err
}

// ResizePanel drags a panel handle.
func (s *Session) ResizePanel(id int, h vector.Handle, dx, dy float64) error {
	return s.apply("resize-panel:"+strconv.Itoa(id), func(pg domain.Page) (domain.Page, error) {
		return edit.UpdatePanel(pg, id, func(p domain.Panel) domain.Panel {
			return edit.ResizePanel(p, h, dx, dy, s.minPanel)
		})
	})
}

// MovePanel drags a panel. With snapping on, the moved rect aligns to the
// page bounds and other panels and Guides reports the alignment lines.
func (s *Session) MovePanel(id int, dx, dy float64) error {
	s.guides = nil
	return s.apply("move-panel:"+strconv.Itoa(id), func(pg domain.Page) (domain.Page, error) {
		return edit.UpdatePanel(pg, id, func(p domain.Panel) domain.Panel {
			moved := edit.MovePanel(p, dx, dy)
			if s.snap <= 0 {
				return moved
			}
			anchors := []vector.Rect{vector.R(0, 0, pg.Width, pg.Height)}
			for _, o := range pg.Panels {
				if o.ID != id {
					anchors = append(anchors, o.Rect())
				}
			}
			r, guides := vector.Snap(moved.Rect(), anchors, s.snap, true)
			s.guides = guides
			return moved.WithRect(r)
		})
	})
}

// DeletePanel removes a panel with its children and clears stale selection.
func (s *Session) DeletePanel(id int) error {
	if err := s.apply("delete-panel:"+strconv.Itoa(id), func(pg domain.Page) (domain.Page, error) {
		return edit.DeletePanel(pg, id)
	}); err != nil {
		return err
	}
	s.sel = pruneSelection(s.page, s.sel)
	return nil
}

func elementLabel(op string, kind domain.ElementKind, id string) string {
	return op + ":" + string(kind) + ":" + id
}

// MoveElement drags an element by a page-pixel delta.
func (s *Session) MoveElement(kind domain.ElementKind, id string, dx, dy float64) error {
	return s.apply(elementLabel("move", kind, id), func(pg domain.Page) (domain.Page, error) {
		return edit.MoveElement(pg, kind, id, dx, dy)
	})
}

// ResizeElement drags an element's resize handle. Characters change scale.
func (s *Session) ResizeElement(kind domain.ElementKind, id string, h vector.Handle, dx, dy float64) error {
	return s.apply(elementLabel("resize", kind, id), func(pg domain.Page) (domain.Page, error) {
		return edit.ResizeElement(pg, kind, id, h, dx, dy)
	})
}

// RotateCharacter turns a character toward the pointer.
func (s *Session) RotateCharacter(id string, pointer vector.Pt) error {
	return s.apply(elementLabel("rotate", domain.KindCharacter, id), func(pg domain.Page) (domain.Page, error) {
		return edit.RotateCharacterInPage(pg, id, pointer)
	})
}

// Delete removes one element and clears it from the selection.
func (s *Session) Delete(kind domain.ElementKind, id string) error {
	if err := s.apply(elementLabel("delete", kind, id), func(pg domain.Page) (domain.Page, error) {
		return edit.DeleteElement(pg, kind, id)
	}); err != nil {
		return err
	}
	s.sel = pruneSelection(s.page, s.sel)
	return nil
}

// Rescale resizes the page and everything on it.
func (s *Session) Rescale(w, h float64) (coords.Scale, error) {
	var sc coords.Scale
	err := s.apply("rescale", func(pg domain.Page) (domain.Page, error) {
		out, scale, err := coords.RescalePage(pg, w, h)
		sc = scale
		return out, err
	})
	if err == nil && sc.Extreme() {
		s.log.Warn("extreme page rescale", "sx", sc.X, "sy", sc.Y)
	}
	return sc, err
}

// AddCharacter creates a character in a panel and selects it.
func (s *Session) AddCharacter(panelID int, name string) (domain.Character, error) {
	c, err := s.factory.NewCharacter(s.page, panelID, name)
	if err != nil {
		return c, err
	}
	err = s.apply(elementLabel("add", domain.KindCharacter, c.ID), func(pg domain.Page) (domain.Page, error) {
		out := pg.Clone()
		out.Characters = append(out.Characters, c)
		return out, nil
	})
	if err == nil {
		s.sel.CharacterID = c.ID
	}
	return c, err
}

// AddEffect creates an effect in a panel and selects it.
func (s *Session) AddEffect(panelID int, et domain.EffectType) (domain.Effect, error) {
	e, err := s.factory.NewEffect(s.page, panelID, et)
	if err != nil {
		return e, err
	}
	err = s.apply(elementLabel("add", domain.KindEffect, e.ID), func(pg domain.Page) (domain.Page, error) {
		out := pg.Clone()
		out.Effects = append(out.Effects, e)
		return out, nil
	})
	if err == nil {
		s.sel.EffectID = e.ID
	}
	return e, err
}

// AddTone creates a tone in a panel and selects it.
func (s *Session) AddTone(panelID int, pattern domain.TonePattern) (domain.Tone, error) {
	t, err := s.factory.NewTone(s.page, panelID, pattern)
	if err != nil {
		return t, err
	}
	err = s.apply(elementLabel("add", domain.KindTone, t.ID), func(pg domain.Page) (domain.Page, error) {
		out := pg.Clone()
		out.Tones = append(out.Tones, t)
		return out, nil
	})
	if err == nil {
		s.sel.ToneID = t.ID
	}
	return t, err
}

// AddBackground creates a background in a panel and selects it.
func (s *Session) AddBackground(panelID int, color string) (domain.Background, error) {
	b, err := s.factory.NewBackground(s.page, panelID, color)
	if err != nil {
		return b, err
	}
	err = s.apply(elementLabel("add", domain.KindBackground, b.ID), func(pg domain.Page) (domain.Page, error) {
		out := pg.Clone()
		out.Backgrounds = append(out.Backgrounds, b)
		return out, nil
	})
	if err == nil {
		s.sel.BackgroundID = b.ID
	}
	return b, err
}

// AddBalloon creates a balloon record in a panel.
func (s *Session) AddBalloon(panelID int, text string) (domain.Balloon, error) {
	b, err := s.factory.NewBalloon(s.page, panelID, text)
	if err != nil {
		return b, err
	}
	err = s.apply(elementLabel("add", domain.KindBalloon, b.ID), func(pg domain.Page) (domain.Page, error) {
		out := pg.Clone()
		out.Balloons = append(out.Balloons, b)
		return out, nil
	})
	return b, err
}

// pruneSelection drops selected ids that no longer exist.
func pruneSelection(pg domain.Page, sel domain.Selection) domain.Selection {
	if sel.PanelID != 0 {
		if _, ok := pg.PanelByID(sel.PanelID); !ok {
			sel.PanelID = 0
		}
	}
	if sel.CharacterID != "" && !hasID(pg.Characters, sel.CharacterID, func(c domain.Character) string { return c.ID }) {
		sel.CharacterID = ""
	}
	if sel.EffectID != "" && !hasID(pg.Effects, sel.EffectID, func(e domain.Effect) string { return e.ID }) {
		sel.EffectID = ""
	}
	if sel.ToneID != "" && !hasID(pg.Tones, sel.ToneID, func(t domain.Tone) string { return t.ID }) {
		sel.ToneID = ""
	}
	if sel.BackgroundID != "" && !hasID(pg.Backgrounds, sel.BackgroundID, func(b domain.Background) string { return b.ID }) {
		sel.BackgroundID = ""
	}
	return sel
}

func hasID[T any](items []T, id string, key func(T) string) bool {
	for _, it := range items {
		if key(it) == id {
			return true
		}
	}
	return false
}

// describe is used in error messages for gestures routed from hits.
func describe(h render.Hit) string {
	if h.Kind == domain.KindPanel {
		return fmt.Sprintf("panel %d", h.PanelID)
	}
	return fmt.Sprintf("%s %q", h.Kind, h.ID)
}
