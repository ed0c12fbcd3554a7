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

// Segment multipliers per density unit.
const (
	directionalSegmentsPerDensity = 50
	radialSegmentsPerDensity      = 60
)

// segmentCount returns floor(density × perUnit) with density clamped to [0,1].
func segmentCount(density float64, perUnit int) int {
	d := vector.Clamp(density, 0, 1)
	return int(math.Floor(d*float64(perUnit) + 1e-9))
}

// unitOr clamps v to [0,1]; zero reads as def.
func unitOr(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return vector.Clamp(v, 0, 1)
}

func normalizeEffect(e domain.Effect) domain.Effect {
	switch e.Type {
	case domain.EffectSpeed, domain.EffectFocus, domain.EffectExplosion, domain.EffectFlash:
	default:
		e.Type = domain.EffectSpeed
	}
	switch e.Direction {
	case domain.DirectionHorizontal, domain.DirectionVertical, domain.DirectionRadial, domain.DirectionCustom:
	default:
		e.Direction = domain.DirectionHorizontal
	}
	e.Intensity = vector.Clamp(e.Intensity, 0, 1)
	e.Density = vector.Clamp(e.Density, 0, 1)
	e.Length = unitOr(e.Length, 0.5)
	e.Opacity = unitOr(e.Opacity, 1)
	return e
}

// EffectCenter returns the burst centre of an effect drawn in rect: the
// explicit centerX/centerY fractions when set, the rect centre otherwise.
func EffectCenter(e domain.Effect, rect vector.Rect) vector.Pt {
	fx, fy := 0.5, 0.5
	if e.CenterX != nil {
		fx = *e.CenterX
	}
	if e.CenterY != nil {
		fy = *e.CenterY
	}
	return vector.Pt{X: rect.X + fx*rect.W, Y: rect.Y + fy*rect.H}
}

// DrawEffect draws one effect clipped to its panel. Each segment is one
// primitive, so a recorder counts segments directly.
func (r *Renderer) DrawEffect(s surface.Surface, e domain.Effect, res coords.Resolver) (bool, error) {
	if err := checkSurface(s); err != nil {
		return false, err
	}
	rect, panel, ok := res.Effect(e)
	if !ok {
		return false, nil
	}
	e = normalizeEffect(e)
	s.Push()
	defer s.Pop()
	s.ClipRect(panel.Rect())
	ink := domain.ParseColor(e.Color, r.theme.Ink)
	if e.IsRadial() {
		r.drawRadial(s, e, rect, ink)
	} else {
		r.drawDirectional(s, e, rect, ink)
	}
	return true, nil
}

func (r *Renderer) drawDirectional(s surface.Surface, e domain.Effect, rect vector.Rect, ink domain.Color) {
	n := segmentCount(e.Density, directionalSegmentsPerDensity)
	length := e.Length * math.Min(rect.W, rect.H)
	s.SetColor(ink.WithAlpha(e.Opacity))
	s.SetLineWidth(0.5 + 3*e.Intensity)

	switch e.Direction {
	case domain.DirectionVertical:
		for i := 0; i < n; i++ {
			x := r.between(rect.X, rect.X+rect.W)
			y := r.between(rect.Y, math.Max(rect.Y, rect.Y+rect.H-length))
			s.Line(vector.Pt{X: x, Y: y}, vector.Pt{X: x, Y: y + length})
		}
	case domain.DirectionCustom:
		rad := vector.DegToRad(e.Angle)
		dx, dy := math.Cos(rad)*length/2, math.Sin(rad)*length/2
		for i := 0; i < n; i++ {
			p := vector.Pt{X: r.between(rect.X, rect.X+rect.W), Y: r.between(rect.Y, rect.Y+rect.H)}
			s.Line(vector.Pt{X: p.X - dx, Y: p.Y - dy}, vector.Pt{X: p.X + dx, Y: p.Y + dy})
		}
	default:
		for i := 0; i < n; i++ {
			x := r.between(rect.X, math.Max(rect.X, rect.X+rect.W-length))
			y := r.between(rect.Y, rect.Y+rect.H)
			s.Line(vector.Pt{X: x, Y: y}, vector.Pt{X: x + length, Y: y})
		}
	}
}

func (r *Renderer) drawRadial(s surface.Surface, e domain.Effect, rect vector.Rect, ink domain.Color) {
	n := segmentCount(e.Density, radialSegmentsPerDensity)
	if n == 0 {
		return
	}
	c := EffectCenter(e, rect)
	outer := math.Hypot(rect.W, rect.H) / 2
	base := 0.5 + 3*e.Intensity
	offset := vector.DegToRad(e.Angle)

	for i := 0; i < n; i++ {
		theta := offset + 2*math.Pi*float64(i)/float64(n)
		ux, uy := math.Cos(theta), math.Sin(theta)
		span := outer * e.Length * r.between(0.7, 1)
		s.SetColor(ink.WithAlpha(e.Opacity * r.between(0.6, 1)))

		switch e.Type {
		case domain.EffectFocus:
			// Wedge: wide at the inner end, a point at the outer end.
			inner := outer - span
			a := vector.Pt{X: c.X + ux*inner, Y: c.Y + uy*inner}
			tip := vector.Pt{X: c.X + ux*outer, Y: c.Y + uy*outer}
			hw := base
			s.FillPolygon([]vector.Pt{
				{X: a.X - uy*hw, Y: a.Y + ux*hw},
				{X: a.X + uy*hw, Y: a.Y - ux*hw},
				tip,
			})
		case domain.EffectExplosion:
			r.radialLine(s, c, ux, uy, outer*0.08, span, base*2+1)
		case domain.EffectFlash:
			r.radialLine(s, c, ux, uy, outer*0.05, span, 0.5+0.5*e.Intensity)
		default:
			r.radialLine(s, c, ux, uy, outer*0.1, span, base)
		}
	}
}

func (r *Renderer) radialLine(s surface.Surface, c vector.Pt, ux, uy, from, span, width float64) {
	s.SetLineWidth(width)
	s.Line(vector.Pt{X: c.X + ux*from, Y: c.Y + uy*from}, vector.Pt{X: c.X + ux*(from+span), Y: c.Y + uy*(from+span)})
}

// drawEffectSelection draws the dashed bounds and the 8 unclipped handles;
// radial effects also get a centre marker.
func (r *Renderer) drawEffectSelection(s surface.Surface, e domain.Effect, rect vector.Rect) {
	s.Push()
	defer s.Pop()
	s.SetColor(r.theme.Accent)
	s.SetLineWidth(1.5)
	s.SetDash(5, 3)
	s.StrokeRect(rect)
	s.SetDash()
	r.drawHandles(s, rect, vector.ResizeHandles)
	if normalizeEffect(e).IsRadial() {
		c := EffectCenter(e, rect)
		hs := r.handleSize
		s.SetColor(r.theme.Accent)
		s.FillCircle(c, hs*0.6)
		s.SetColor(r.theme.HandleFill)
		s.SetLineWidth(1)
		s.Line(vector.Pt{X: c.X - hs, Y: c.Y}, vector.Pt{X: c.X + hs, Y: c.Y})
		s.Line(vector.Pt{X: c.X, Y: c.Y - hs}, vector.Pt{X: c.X, Y: c.Y + hs})
	}
}
