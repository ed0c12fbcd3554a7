/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"errors"
	"reflect"
	"testing"

	"comicpage/internal/coords"
	"comicpage/internal/domain"
	"comicpage/internal/surface"
)

func sampleFrame() Frame {
	return Frame{Page: domain.Page{
		Width: 800, Height: 300,
		Panels: []domain.Panel{
			{ID: 1, X: 0, Y: 0, Width: 400, Height: 300},
			{ID: 2, X: 400, Y: 0, Width: 400, Height: 300},
		},
		Characters: []domain.Character{
			{ID: "c1", PanelID: 1, X: 0.5, Y: 0.5, Scale: 1, ViewType: domain.ViewFace, Pose: domain.PoseStanding},
			{ID: "c2", PanelID: 2, X: 0.5, Y: 0.5, Scale: 1, ViewType: domain.ViewFullBody, Pose: domain.PoseWaving, Facing: domain.FacingFrontLeft},
		},
	}}
}

func TestDrawNilSurface(t *testing.T) {
	if err := newTestRenderer().Draw(nil, sampleFrame()); !errors.Is(err, ErrNilSurface) {
		t.Fatalf("Draw(nil) = %v, want ErrNilSurface", err)
	}
	if _, err := newTestRenderer().DrawTone(nil, domain.Tone{}, coords.Resolver{}); !errors.Is(err, ErrNilSurface) {
		t.Fatalf("DrawTone(nil) = %v", err)
	}
}

func TestDrawBalancesState(t *testing.T) {
	f := sampleFrame()
	f.Selection = domain.Selection{PanelID: 1, CharacterID: "c2"}
	f.Modes.PanelEditMode = true
	rec := surface.NewRecorder(800, 300)
	if err := newTestRenderer().Draw(rec, f); err != nil {
		t.Fatal(err)
	}
	if rec.Depth() != 0 {
		t.Fatalf("unbalanced Push/Pop: depth %d", rec.Depth())
	}
}

func TestPanelsAndCharactersAreDeterministic(t *testing.T) {
	a := surface.NewRecorder(800, 300)
	b := surface.NewRecorder(800, 300)
	if err := New(Options{Rand: NewRand(1)}).Draw(a, sampleFrame()); err != nil {
		t.Fatal(err)
	}
	if err := New(Options{Rand: NewRand(2)}).Draw(b, sampleFrame()); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a.Ops, b.Ops) {
		t.Fatalf("panel/character output depends on the random source")
	}
}

func TestOrphansSkipped(t *testing.T) {
	base := sampleFrame()
	withOrphans := sampleFrame()
	withOrphans.Page.Characters = append(withOrphans.Page.Characters, domain.Character{ID: "lost", PanelID: 42, X: 0.5, Y: 0.5})
	withOrphans.Page.Tones = append(withOrphans.Page.Tones, domain.Tone{ID: "lost", PanelID: 42, Width: 1, Height: 1})

	a := surface.NewRecorder(800, 300)
	b := surface.NewRecorder(800, 300)
	if err := newTestRenderer().Draw(a, base); err != nil {
		t.Fatal(err)
	}
	if err := newTestRenderer().Draw(b, withOrphans); err != nil {
		t.Fatal(err)
	}
	if len(a.Ops) != len(b.Ops) {
		t.Fatalf("orphans changed output: %d vs %d ops", len(a.Ops), len(b.Ops))
	}
}

func TestStackOrder(t *testing.T) {
	pg := domain.Page{
		Panels:      onePanel(),
		Backgrounds: []domain.Background{{ID: "b", PanelID: 1}},
		Tones:       []domain.Tone{{ID: "t", PanelID: 1}},
		Effects:     []domain.Effect{{ID: "e", PanelID: 1, ZIndex: 5}},
		Characters: []domain.Character{
			{ID: "c", PanelID: 1},
			{ID: "c2", PanelID: 1, ZIndex: -1},
		},
	}
	stacks, orphans := stackPanels(pg)
	if orphans != 0 {
		t.Fatalf("orphans = %d", orphans)
	}
	var got []domain.ElementKind
	for _, l := range stacks[1] {
		got = append(got, l.kind)
	}
	want := []domain.ElementKind{domain.KindCharacter, domain.KindBackground, domain.KindTone, domain.KindCharacter, domain.KindEffect}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	if stacks[1][0].index != 1 || stacks[1][3].index != 0 {
		t.Fatalf("character indices = %d,%d", stacks[1][0].index, stacks[1][3].index)
	}
}

func TestPanelStateMachine(t *testing.T) {
	p := domain.Panel{ID: 3}
	cases := []struct {
		sel  domain.Selection
		edit bool
		want PanelState
	}{
		{domain.Selection{}, false, PanelView},
		{domain.Selection{}, true, PanelView},
		{domain.Selection{PanelID: 4}, true, PanelView},
		{domain.Selection{PanelID: 3}, false, PanelSelected},
		{domain.Selection{PanelID: 3}, true, PanelEdit},
	}
	for _, c := range cases {
		if got := PanelStateOf(p, c.sel, domain.Modes{PanelEditMode: c.edit}); got != c.want {
			t.Fatalf("PanelStateOf(%+v, edit=%v) = %v, want %v", c.sel, c.edit, got, c.want)
		}
	}
}

func TestPanelEditDecorations(t *testing.T) {
	r := newTestRenderer()
	p := onePanel()[0]
	view := surface.NewRecorder(400, 300)
	edit := surface.NewRecorder(400, 300)
	if err := r.DrawPanel(view, p, 1, PanelView); err != nil {
		t.Fatal(err)
	}
	if err := r.DrawPanel(edit, p, 1, PanelEdit); err != nil {
		t.Fatal(err)
	}
	if view.Count(surface.OpFillCircle) != 0 {
		t.Fatalf("view state drew a move handle")
	}
	if edit.Count(surface.OpFillCircle) != 1 {
		t.Fatalf("edit state move handles = %d, want 1", edit.Count(surface.OpFillCircle))
	}
	// panel fill + badge + 8 resize handles + split control
	if got := edit.Count(surface.OpFillRect); got != 11 {
		t.Fatalf("edit fill rects = %d, want 11", got)
	}
	var texts []string
	for _, op := range edit.Ops {
		if op.Kind == surface.OpText {
			texts = append(texts, op.Text)
		}
	}
	if !reflect.DeepEqual(texts, []string{"1", "#1"}) {
		t.Fatalf("texts = %v", texts)
	}
}

func drawCharacter(t *testing.T, c domain.Character) *surface.Recorder {
	t.Helper()
	rec := surface.NewRecorder(400, 300)
	ok, err := newTestRenderer().DrawCharacter(rec, c, coords.NewResolver(onePanel()))
	if err != nil || !ok {
		t.Fatalf("DrawCharacter = %v, %v", ok, err)
	}
	return rec
}

func TestCharacterFacingLimbs(t *testing.T) {
	c := domain.Character{ID: "c", PanelID: 1, X: 0.5, Y: 0.5, Scale: 1, ViewType: domain.ViewFullBody, Pose: domain.PoseStanding}
	front := drawCharacter(t, c)
	// 4 limbs of 2 segments, 4 torso edges, 1 mouth.
	if got := front.Count(surface.OpLine); got != 13 {
		t.Fatalf("front lines = %d, want 13", got)
	}
	if got := front.Count(surface.OpFillCircle); got != 3 {
		t.Fatalf("front head+eyes = %d, want 3", got)
	}

	c.Facing = domain.FacingLeft
	side := drawCharacter(t, c)
	if got := side.Count(surface.OpLine); got != 9 {
		t.Fatalf("side lines = %d, want 9", got)
	}

	c.Facing = domain.FacingBack
	back := drawCharacter(t, c)
	if got := back.Count(surface.OpFillCircle); got != 1 {
		t.Fatalf("back view should draw no eyes, got %d circles", got)
	}
	if got := back.Count(surface.OpLine); got != 12 {
		t.Fatalf("back lines = %d, want 12", got)
	}
}

func TestCharacterArmsHiddenFromBehind(t *testing.T) {
	c := domain.Character{ID: "c", PanelID: 1, X: 0.5, Y: 0.5, ViewType: domain.ViewFullBody, Pose: domain.PoseArmsCrossed, Facing: domain.FacingBack}
	rec := drawCharacter(t, c)
	// legs and torso only
	if got := rec.Count(surface.OpLine); got != 8 {
		t.Fatalf("lines = %d, want 8", got)
	}
}

func TestCharacterTorsoNarrowing(t *testing.T) {
	c := domain.Character{ID: "c", PanelID: 1, X: 0.5, Y: 0.5, ViewType: domain.ViewHalfBody}
	width := func(f domain.Facing) float64 {
		c.Facing = f
		fig := layoutFigure(c, coords.DefaultGeometry.Rect(c, onePanel()[0]), lookupFacing(f))
		return fig.shoulderR.X - fig.shoulderL.X
	}
	front := width(domain.FacingFront)
	if w := width(domain.FacingRight); abs(w-0.6*front) > 1e-9 {
		t.Fatalf("side torso = %v, want %v", w, 0.6*front)
	}
	if w := width(domain.FacingBackLeft); abs(w-0.8*front) > 1e-9 {
		t.Fatalf("diagonal torso = %v, want %v", w, 0.8*front)
	}
}

func TestCharacterRotationAndClip(t *testing.T) {
	c := domain.Character{ID: "c", PanelID: 1, X: 0.5, Y: 0.5, ViewType: domain.ViewFace, Rotation: 90, Expression: domain.ExpressionHappy}
	rec := drawCharacter(t, c)
	if rec.Count(surface.OpArc) != 1 {
		t.Fatalf("happy mouth should be an arc")
	}
	for _, op := range rec.Ops {
		if op.Rotation == 0 || !op.Clipped {
			t.Fatalf("op %s not rotated/clipped", op.Kind)
		}
	}
}

func TestUnknownPoseDrawsStanding(t *testing.T) {
	c := domain.Character{ID: "c", PanelID: 1, X: 0.5, Y: 0.5, ViewType: domain.ViewFullBody}
	a := drawCharacter(t, c)
	c.Pose = "breakdancing"
	b := drawCharacter(t, c)
	if !reflect.DeepEqual(a.Ops, b.Ops) {
		t.Fatalf("unknown pose differs from standing")
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
