/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"math"
	"testing"

	"comicpage/internal/coords"
	"comicpage/internal/domain"
	"comicpage/internal/surface"
	"comicpage/internal/vector"
)

func nearRect(a, b vector.Rect) bool {
	const eps = 1e-9
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.W-b.W) < eps && math.Abs(a.H-b.H) < eps
}

func globalTone(pattern domain.TonePattern, x, y, w, h float64) domain.Tone {
	return domain.Tone{ID: "t1", PanelID: 1, Pattern: pattern, Density: 1, Opacity: 1, Scale: 1,
		X: x, Y: y, Width: w, Height: h, IsGlobalPosition: true}
}

func drawTone(t *testing.T, tone domain.Tone) *surface.Recorder {
	t.Helper()
	rec := surface.NewRecorder(400, 300)
	if _, err := newTestRenderer().DrawTone(rec, tone, coords.NewResolver(onePanel())); err != nil {
		t.Fatalf("DrawTone: %v", err)
	}
	return rec
}

func TestToneFallbackForLargeArea(t *testing.T) {
	tone := domain.Tone{ID: "t1", PanelID: 1, Pattern: domain.PatternHalftone, Density: 0.5, Opacity: 1,
		X: 0.1, Y: 0.1, Width: 0.8, Height: 0.8}
	rec := drawTone(t, tone)
	if rec.Count(surface.OpFillCircle) != 0 {
		t.Fatalf("pattern drawn despite fallback")
	}
	if len(rec.Ops) != 2 || rec.Ops[0].Kind != surface.OpFillRect || rec.Ops[1].Kind != surface.OpStrokeRect {
		t.Fatalf("unexpected fallback ops: %+v", rec.Ops)
	}
	want := vector.R(40, 30, 320, 240)
	if !nearRect(rec.Ops[0].Rect, want) {
		t.Fatalf("fallback fill = %+v, want %+v", rec.Ops[0].Rect, want)
	}
	if rec.Ops[0].Color.A >= 255 {
		t.Fatalf("fallback fill should be translucent")
	}
	if !rec.Ops[1].Dashed {
		t.Fatalf("fallback outline should be dashed")
	}
}

func TestToneFallbackThresholdIsStrict(t *testing.T) {
	cases := []struct {
		name     string
		w, h     float64
		fallback bool
	}{
		{"below", 249.5, 200, false},
		{"exactly 50000", 250, 200, false},
		{"above", 250, 200.02, true},
	}
	for _, c := range cases {
		rect := vector.R(10, 10, c.w, c.h)
		if got := UsesToneFallback(rect); got != c.fallback {
			t.Fatalf("%s: UsesToneFallback(area %v) = %v, want %v", c.name, rect.Area(), got, c.fallback)
		}
		rec := drawTone(t, globalTone(domain.PatternHalftone, 10, 10, c.w, c.h))
		patterned := rec.Count(surface.OpFillCircle) > 0
		if patterned == c.fallback {
			t.Fatalf("%s: halftone dots drawn = %v with fallback %v", c.name, patterned, c.fallback)
		}
	}
}

func TestHalftoneCap(t *testing.T) {
	tone := globalTone(domain.PatternHalftone, 50, 30, 200, 240)
	tone.Scale = 0.1
	rec := drawTone(t, tone)
	n := rec.Count(surface.OpFillCircle)
	if n == 0 || n > MaxHalftoneDots {
		t.Fatalf("halftone dots = %d, want 1..%d", n, MaxHalftoneDots)
	}
}

func TestPatternCaps(t *testing.T) {
	cases := []struct {
		pattern domain.TonePattern
		kind    surface.OpKind
		max     int
	}{
		{domain.PatternDots, surface.OpFillCircle, MaxDots},
		{domain.PatternCrosshatch, surface.OpLine, MaxCrosshatchLines},
		{domain.PatternLines, surface.OpLine, MaxToneLines},
		{domain.PatternGradient, surface.OpFillRect, MaxGradientBands},
		{domain.PatternNoise, surface.OpFillCircle, MaxNoiseParticles},
	}
	for _, c := range cases {
		tone := globalTone(c.pattern, 50, 30, 200, 240)
		tone.Scale = 0.25
		rec := drawTone(t, tone)
		n := rec.Count(c.kind)
		if n == 0 || n > c.max {
			t.Fatalf("%s: %d primitives, want 1..%d", c.pattern, n, c.max)
		}
	}
}

func TestNoiseParticleCount(t *testing.T) {
	if got := NoiseParticleCount(40000, 0.5); got != 20 {
		t.Fatalf("NoiseParticleCount = %d, want 20", got)
	}
	if got := NoiseParticleCount(1e7, 1); got != MaxNoiseParticles {
		t.Fatalf("NoiseParticleCount = %d, want cap", got)
	}
	if got := NoiseParticleCount(40000, 3); got != 40 {
		t.Fatalf("density should clamp to 1, got %d", got)
	}
}

func TestToneClippedToPanel(t *testing.T) {
	rec := drawTone(t, globalTone(domain.PatternDots, 300, 200, 200, 200))
	if len(rec.Ops) == 0 {
		t.Fatalf("nothing drawn")
	}
	want := vector.R(300, 200, 100, 100)
	for _, op := range rec.Ops {
		if !op.Clipped || !nearRect(op.Clip, want) {
			t.Fatalf("op %s clip = %+v (clipped %v), want %+v", op.Kind, op.Clip, op.Clipped, want)
		}
	}
}

func TestToneOutsidePanelDrawsNothing(t *testing.T) {
	rec := surface.NewRecorder(400, 300)
	ok, err := newTestRenderer().DrawTone(rec, globalTone(domain.PatternDots, 500, 10, 50, 50), coords.NewResolver(onePanel()))
	if err != nil || ok || len(rec.Ops) != 0 {
		t.Fatalf("ok=%v err=%v ops=%d", ok, err, len(rec.Ops))
	}
}

func TestUnknownPatternDrawsDots(t *testing.T) {
	rec := drawTone(t, globalTone("moire", 10, 10, 100, 100))
	if rec.Count(surface.OpFillCircle) == 0 {
		t.Fatalf("unknown pattern should fall back to dots")
	}
}

func TestToneBlendAllowList(t *testing.T) {
	tone := globalTone(domain.PatternLines, 10, 10, 100, 100)
	tone.BlendMode = "overlay"
	for _, op := range drawTone(t, tone).Ops {
		if op.Blend != domain.BlendNormal {
			t.Fatalf("blend = %q, want normal", op.Blend)
		}
	}
	tone.BlendMode = domain.BlendMultiply
	for _, op := range drawTone(t, tone).Ops {
		if op.Blend != domain.BlendMultiply {
			t.Fatalf("blend = %q, want multiply", op.Blend)
		}
	}
}

func TestToneInvertPaintsBackdrop(t *testing.T) {
	tone := globalTone(domain.PatternDots, 10, 10, 100, 100)
	tone.Invert = true
	rec := drawTone(t, tone)
	if rec.Ops[0].Kind != surface.OpFillRect || !nearRect(rec.Ops[0].Rect, vector.R(10, 10, 100, 100)) {
		t.Fatalf("first op = %+v, want backdrop fill", rec.Ops[0])
	}
	if rec.Ops[1].Color.R != 255 {
		t.Fatalf("inverted dots should use paper colour, got %+v", rec.Ops[1].Color)
	}
}

func TestToneHandlesClipped(t *testing.T) {
	panel := onePanel()[0]
	hb := ToneHandles(vector.R(300, 200, 200, 200), panel, 8)
	if len(hb) != 1 || hb[0].Handle != vector.HandleNW {
		t.Fatalf("handles = %+v, want only nw", hb)
	}
	hb = ToneHandles(vector.R(0, 0, 100, 100), panel, 8)
	if len(hb) != 4 {
		t.Fatalf("handles = %d, want 4", len(hb))
	}
	if !nearRect(hb[0].Rect, vector.R(0, 0, 4, 4)) {
		t.Fatalf("straddling handle = %+v, want clipped to panel", hb[0].Rect)
	}
}
