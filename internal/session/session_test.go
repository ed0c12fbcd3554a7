/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package session

import (
	"errors"
	"math"
	"testing"
	"time"

	"comicpage/internal/domain"
	"comicpage/internal/edit"
	"comicpage/internal/render"
	"comicpage/internal/undo"
	"comicpage/internal/vector"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time        { return c.t }
func (c *clock) tick(d time.Duration) { c.t = c.t.Add(d) }

func testPage() domain.Page {
	return domain.Page{
		Width: 800, Height: 600,
		Panels: []domain.Panel{
			{ID: 1, X: 20, Y: 20, Width: 360, Height: 260},
			{ID: 2, X: 420, Y: 20, Width: 360, Height: 260},
		},
		Characters: []domain.Character{{ID: "c1", PanelID: 1, X: 0.5, Y: 0.5, Scale: 1, ViewType: domain.ViewFace}},
	}
}

func newSession(snap float64) (*Session, *clock) {
	c := &clock{t: time.Unix(1700000000, 0)}
	s := New(testPage(), Options{
		SnapThreshold: snap,
		History:       undo.Config{MinInterval: 100 * time.Millisecond},
		Now:           c.now,
	})
	return s, c
}

func TestSplitUndoRedo(t *testing.T) {
	s, _ := newSession(0)
	twin, err := s.SplitPanel(1, domain.SplitHorizontal)
	if err != nil {
		t.Fatal(err)
	}
	if twin.ID != 1001 || twin.Y != 150 || twin.Height != 130 {
		t.Fatalf("twin = %+v", twin)
	}
	if s.Version() != 2 || len(s.Page().Panels) != 3 {
		t.Fatalf("after split: version %d, %d panels", s.Version(), len(s.Page().Panels))
	}
	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if len(s.Page().Panels) != 2 || s.Version() != 3 {
		t.Fatalf("after undo: version %d, %d panels", s.Version(), len(s.Page().Panels))
	}
	if err := s.Redo(); err != nil {
		t.Fatal(err)
	}
	if len(s.Page().Panels) != 3 {
		t.Fatalf("after redo: %d panels", len(s.Page().Panels))
	}
	if err := s.Redo(); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("second redo err = %v", err)
	}
}

func TestFailedGestureKeepsVersion(t *testing.T) {
	s, _ := newSession(0)
	if _, err := s.SplitPanel(99, domain.SplitVertical); !errors.Is(err, edit.ErrPanelNotFound) {
		t.Fatalf("err = %v", err)
	}
	if s.Version() != 1 || s.CanUndo() {
		t.Fatalf("failed gesture changed state: version %d", s.Version())
	}
}

func TestDragStepsMergeIntoOneUndo(t *testing.T) {
	s, c := newSession(0)
	for i := 0; i < 5; i++ {
		if err := s.MoveElement(domain.KindCharacter, "c1", 3.6, 0); err != nil {
			t.Fatal(err)
		}
		c.tick(20 * time.Millisecond)
	}
	if got := s.Page().Characters[0].X; math.Abs(got-0.55) > 1e-9 {
		t.Fatalf("x after drag = %v", got)
	}
	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if got := s.Page().Characters[0].X; got != 0.5 {
		t.Fatalf("x after one undo = %v, want 0.5", got)
	}
	if s.CanUndo() {
		t.Fatalf("drag should be a single undo step")
	}
}

func TestMovePanelSnaps(t *testing.T) {
	s, _ := newSession(6)
	if err := s.MovePanel(1, -17, 0); err != nil {
		t.Fatal(err)
	}
	p, _ := s.page.PanelByID(1)
	if p.X != 0 {
		t.Fatalf("x = %v, want snapped to page edge", p.X)
	}
	if len(s.Guides()) == 0 {
		t.Fatalf("expected alignment guides")
	}

	s, _ = newSession(0)
	if err := s.MovePanel(1, -17, 0); err != nil {
		t.Fatal(err)
	}
	if p, _ := s.page.PanelByID(1); p.X != 3 {
		t.Fatalf("x = %v without snapping, want 3", p.X)
	}
}

func TestDeleteClearsSelection(t *testing.T) {
	s, _ := newSession(0)
	s.SetSelection(domain.Selection{PanelID: 1, CharacterID: "c1"})
	if err := s.DeletePanel(1); err != nil {
		t.Fatal(err)
	}
	if s.Selection() != (domain.Selection{}) {
		t.Fatalf("selection = %+v", s.Selection())
	}
	if len(s.Page().Characters) != 0 {
		t.Fatalf("children survived panel delete")
	}
}

func TestAddToneThenUndo(t *testing.T) {
	s, _ := newSession(0)
	tn, err := s.AddTone(2, domain.PatternDots)
	if err != nil {
		t.Fatal(err)
	}
	if s.Selection().ToneID != tn.ID || len(s.Page().Tones) != 1 {
		t.Fatalf("tone not added/selected")
	}
	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if len(s.Page().Tones) != 0 || s.Selection().ToneID != "" {
		t.Fatalf("undo left tone %d / selection %+v", len(s.Page().Tones), s.Selection())
	}
}

func TestRescaleThroughSession(t *testing.T) {
	s := New(domain.Page{
		Width: 800, Height: 600,
		Panels:     []domain.Panel{{ID: 1, X: 100, Y: 100, Width: 200, Height: 150}},
		Characters: []domain.Character{{ID: "c", PanelID: 1, X: 0.5, Y: 0.5, Scale: 1}},
	}, Options{})
	sc, err := s.Rescale(1600, 900)
	if err != nil {
		t.Fatal(err)
	}
	if sc.X != 2 || sc.Y != 1.5 {
		t.Fatalf("scale = %+v", sc)
	}
	pg := s.Page()
	if pg.Panels[0] != (domain.Panel{ID: 1, X: 200, Y: 150, Width: 400, Height: 225}) {
		t.Fatalf("panel = %+v", pg.Panels[0])
	}
	if pg.Characters[0].Scale != 1.5 {
		t.Fatalf("character scale = %v", pg.Characters[0].Scale)
	}
}

func TestPageIsACopy(t *testing.T) {
	s, _ := newSession(0)
	pg := s.Page()
	pg.Panels[0].X = 999
	if s.Page().Panels[0].X == 999 {
		t.Fatalf("Page leaked internal state")
	}
}

func TestClickAndDragRouting(t *testing.T) {
	s, _ := newSession(0)
	r := render.New(render.Options{})

	hit := r.HitTest(s.Frame(), vector.Pt{X: 200, Y: 150})
	if err := s.Click(hit); err != nil {
		t.Fatal(err)
	}
	if s.Selection().CharacterID != "c1" || s.Selection().PanelID != 1 {
		t.Fatalf("selection = %+v", s.Selection())
	}

	// Drag the body: a move.
	if err := s.Drag(hit, 36, 0, vector.Pt{}); err != nil {
		t.Fatal(err)
	}
	if got := s.Page().Characters[0].X; math.Abs(got-0.6) > 1e-9 {
		t.Fatalf("x = %v", got)
	}

	// The rotation handle sits 3 handle sizes above the figure.
	rect := vector.CenteredAt(vector.Pt{X: 20 + 0.6*360, Y: 150}, 60, 60)
	knob := render.CharacterRotateHandle(rect, 0, render.DefaultHandleSize)
	hit = r.HitTest(s.Frame(), knob)
	if hit.Handle != vector.HandleRotate {
		t.Fatalf("hit = %+v, want rotate handle", hit)
	}
	if err := s.Drag(hit, 0, 0, vector.Pt{X: 400, Y: 150}); err != nil {
		t.Fatal(err)
	}
	if got := s.Page().Characters[0].Rotation; math.Abs(got-90) > 1e-6 {
		t.Fatalf("rotation = %v, want 90", got)
	}

	// Panel drags need edit mode.
	v := s.Version()
	s.SetSelection(domain.Selection{PanelID: 2})
	move := render.Hit{Kind: domain.KindPanel, PanelID: 2, Handle: vector.HandleMove}
	if err := s.Drag(move, 10, 10, vector.Pt{}); err != nil || s.Version() != v {
		t.Fatalf("panel moved outside edit mode: err=%v", err)
	}
	s.SetPanelEditMode(true)
	if err := s.Drag(move, 10, 10, vector.Pt{}); err != nil || s.Version() != v+1 {
		t.Fatalf("panel move in edit mode: err=%v version=%d", err, s.Version())
	}

	if err := s.Click(render.Hit{Kind: domain.KindPanel, PanelID: 2, Handle: vector.HandleSplit}); err != nil {
		t.Fatal(err)
	}
	if len(s.Page().Panels) != 3 {
		t.Fatalf("split control click did not split")
	}
	if err := s.Click(render.Hit{}); err != nil || s.Selection() != (domain.Selection{}) {
		t.Fatalf("miss should clear selection")
	}
}
