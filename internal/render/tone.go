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

	"comicpage/internal/coords"
	"comicpage/internal/domain"
	"comicpage/internal/surface"
	"comicpage/internal/vector"
)

// Hard primitive caps per tone draw call.
const (
	MaxHalftoneDots    = 1000
	MaxDots            = 500
	MaxCrosshatchLines = 50
	MaxToneLines       = 100
	MaxGradientBands   = 24
	MaxNoiseParticles  = 200
)

func normalizeTone(t domain.Tone) domain.Tone {
	switch t.Pattern {
	case domain.PatternHalftone, domain.PatternDots, domain.PatternCrosshatch,
		domain.PatternLines, domain.PatternGradient, domain.PatternNoise:
	default:
		t.Pattern = domain.PatternDots
	}
	t.Density = unitOr(t.Density, 0.5)
	t.Opacity = unitOr(t.Opacity, 1)
	if t.Scale == 0 {
		t.Scale = 1
	}
	t.Scale = vector.Clamp(t.Scale, 0.25, 4)
	t.BlendMode = domain.NormalizeBlend(t.BlendMode)
	return t
}

// ToneClip is the region a tone may paint: its rect intersected with its panel.
func ToneClip(rect vector.Rect, panel domain.Panel) vector.Rect {
	return rect.Intersect(panel.Rect())
}

// UsesToneFallback reports whether a tone rect is large enough to be drawn
// as a translucent fill instead of its pattern.
func UsesToneFallback(rect vector.Rect) bool {
	return rect.Area() > ToneFallbackArea
}

// DrawTone draws one tone. Nothing is painted outside the owning panel.
func (r *Renderer) DrawTone(s surface.Surface, t domain.Tone, res coords.Resolver) (bool, error) {
	if err := checkSurface(s); err != nil {
		return false, err
	}
	rect, panel, ok := res.Tone(t)
	if !ok {
		return false, nil
	}
	clip := ToneClip(rect, panel)
	if !rect.Finite() || clip.Empty() {
		return false, nil
	}
	t = normalizeTone(t)
	ink := domain.ParseColor(t.Color, r.theme.Tone)

	s.Push()
	defer s.Pop()
	s.ClipRect(clip)
	s.SetBlend(t.BlendMode)

	if UsesToneFallback(rect) {
		r.log.Debug("tone fallback", "tone", t.ID, "area", rect.Area())
		s.SetColor(ink.WithAlpha(t.Opacity * 0.3))
		s.FillRect(clip)
		s.SetColor(ink.WithAlpha(t.Opacity))
		s.SetLineWidth(1)
		s.SetDash(6, 4)
		s.StrokeRect(rect)
		s.SetDash()
		return true, nil
	}

	fg := ink.WithAlpha(t.Opacity)
	if t.Invert {
		s.SetColor(fg)
		s.FillRect(clip)
		fg = r.theme.Paper.WithAlpha(t.Opacity)
	}
	cover := rect
	if t.Rotation != 0 {
		s.RotateAbout(vector.DegToRad(t.Rotation), rect.Center())
		d := math.Hypot(rect.W, rect.H)
		cover = vector.CenteredAt(rect.Center(), d, d)
	}
	s.SetColor(fg)

	switch t.Pattern {
	case domain.PatternHalftone:
		r.toneDots(s, t, cover, 8*t.Scale, MaxHalftoneDots, true)
	case domain.PatternCrosshatch:
		r.toneCrosshatch(s, t, cover)
	case domain.PatternLines:
		r.toneLines(s, t, cover)
	case domain.PatternGradient:
		r.toneGradient(s, t, cover, fg)
	case domain.PatternNoise:
		r.toneNoise(s, t, rect)
	default:
		r.toneDots(s, t, cover, 12*t.Scale, MaxDots, false)
	}
	return true, nil
}

// gridSpacing widens spacing until a cols×rows grid over area fits in limit.
func gridSpacing(area vector.Rect, spacing float64, limit int) float64 {
	if spacing < 1 {
		spacing = 1
	}
	for {
		cols := math.Ceil(area.W / spacing)
		rows := math.Ceil(area.H / spacing)
		if cols*rows <= float64(limit) {
			return spacing
		}
		spacing *= math.Sqrt(cols * rows / float64(limit))
		spacing += 0.01
	}
}

func (r *Renderer) toneDots(s surface.Surface, t domain.Tone, area vector.Rect, spacing float64, limit int, offsetRows bool) {
	sp := gridSpacing(area, spacing, limit)
	radius := math.Max(0.3, sp*0.5*t.Density)
	n := 0
	for row := 0; ; row++ {
		y := area.Y + sp/2 + float64(row)*sp
		if y > area.Y+area.H {
			return
		}
		shift := 0.0
		if offsetRows && row%2 == 1 {
			shift = sp / 2
		}
		for x := area.X + sp/2 + shift; x <= area.X+area.W; x += sp {
			if n >= limit {
				return
			}
			s.FillCircle(vector.Pt{X: x, Y: y}, radius)
			n++
		}
	}
}

func (r *Renderer) toneCrosshatch(s surface.Surface, t domain.Tone, area vector.Rect) {
	sp := math.Max(3, 10*t.Scale*(1.2-t.Density))
	span := area.W + area.H
	if per := float64(MaxCrosshatchLines / 2); span/sp > per {
		sp = span / per
	}
	s.SetLineWidth(0.5 + t.Density)
	n := 0
	for d := sp / 2; d < span && n < MaxCrosshatchLines; d += sp {
		// 45° down-right and 45° up-right families sharing one offset.
		s.Line(vector.Pt{X: area.X + d - area.H, Y: area.Y}, vector.Pt{X: area.X + d, Y: area.Y + area.H})
		n++
		if n >= MaxCrosshatchLines {
			break
		}
		s.Line(vector.Pt{X: area.X + d - area.H, Y: area.Y + area.H}, vector.Pt{X: area.X + d, Y: area.Y})
		n++
	}
}

func (r *Renderer) toneLines(s surface.Surface, t domain.Tone, area vector.Rect) {
	sp := math.Max(2, 6*t.Scale)
	if area.H/sp > MaxToneLines {
		sp = area.H / MaxToneLines
	}
	s.SetLineWidth(0.5 + 2*t.Density)
	n := 0
	for y := area.Y + sp/2; y <= area.Y+area.H && n < MaxToneLines; y += sp {
		s.Line(vector.Pt{X: area.X, Y: y}, vector.Pt{X: area.X + area.W, Y: y})
		n++
	}
}

// toneGradient fades the ink from full opacity at the top to clear at the
// bottom in equal bands.
func (r *Renderer) toneGradient(s surface.Surface, t domain.Tone, area vector.Rect, fg domain.Color) {
	bands := int(math.Min(MaxGradientBands, math.Max(1, math.Floor(area.H/2))))
	bh := area.H / float64(bands)
	base := float64(fg.A) / 255 * t.Density
	for i := 0; i < bands; i++ {
		s.SetColor(fg.WithAlpha(base * (1 - float64(i)/float64(bands))))
		s.FillRect(vector.R(area.X, area.Y+float64(i)*bh, area.W, bh))
	}
}

// NoiseParticleCount is min(200, area × density × 0.001).
func NoiseParticleCount(area, density float64) int {
	n := int(math.Floor(area * vector.Clamp(density, 0, 1) * 0.001))
	if n > MaxNoiseParticles {
		return MaxNoiseParticles
	}
	if n < 0 {
		return 0
	}
	return n
}

func (r *Renderer) toneNoise(s surface.Surface, t domain.Tone, area vector.Rect) {
	n := NoiseParticleCount(area.Area(), t.Density)
	for i := 0; i < n; i++ {
		p := vector.Pt{X: r.between(area.X, area.X+area.W), Y: r.between(area.Y, area.Y+area.H)}
		s.FillCircle(p, r.between(0.5, 1.5)*t.Scale)
	}
}

// HandleBox is a selection handle and the rect it is drawn in.
type HandleBox struct {
	Handle vector.Handle
	Rect   vector.Rect
}

// ToneHandles returns the corner handles of a selected tone, each clipped to
// the panel. A handle whose centre lies outside the panel is omitted.
func ToneHandles(rect vector.Rect, panel domain.Panel, handleSize float64) []HandleBox {
	pr := panel.Rect()
	var out []HandleBox
	for _, h := range vector.CornerHandles {
		if !pr.Contains(vector.HandlePoint(rect, h)) {
			continue
		}
		hr := vector.HandleRect(rect, h, handleSize).Intersect(pr)
		if hr.Empty() {
			continue
		}
		out = append(out, HandleBox{Handle: h, Rect: hr})
	}
	return out
}

func (r *Renderer) drawToneSelection(s surface.Surface, rect vector.Rect, panel domain.Panel) {
	s.Push()
	defer s.Pop()
	clip := ToneClip(rect, panel)
	if !clip.Empty() {
		s.Push()
		s.ClipRect(clip)
		s.SetColor(r.theme.Accent)
		s.SetLineWidth(1.5)
		s.SetDash(5, 3)
		s.StrokeRect(rect)
		s.SetDash()
		s.Pop()
	}
	s.SetLineWidth(1)
	for _, hb := range ToneHandles(rect, panel, r.handleSize) {
		s.SetColor(r.theme.HandleFill)
		s.FillRect(hb.Rect)
		s.SetColor(r.theme.HandleStroke)
		s.StrokeRect(hb.Rect)
	}
}
