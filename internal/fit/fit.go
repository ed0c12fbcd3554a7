/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package fit suggests where new elements go inside a panel and estimates
// how full a panel already is.
package fit

import (
	"comicpage/internal/coords"
	"comicpage/internal/domain"
	"comicpage/internal/vector"
)

const (
	shiftStep = 0.1
	epsilon   = 1e-9
)

// shifts are tried in order: the four axis shifts, then the diagonals.
var shifts = []vector.Pt{
	{X: shiftStep}, {X: -shiftStep}, {Y: shiftStep}, {Y: -shiftStep},
	{X: shiftStep, Y: shiftStep}, {X: shiftStep, Y: -shiftStep},
	{X: -shiftStep, Y: shiftStep}, {X: -shiftStep, Y: -shiftStep},
}

// DefaultRect returns the panel-relative rect a new element of kind gets
// before any collision probing. effectType only matters for effects.
func DefaultRect(kind domain.ElementKind, effectType domain.EffectType) vector.Rect {
	switch kind {
	case domain.KindTone:
		return vector.R(0.2, 0.2, 0.6, 0.6)
	case domain.KindEffect:
		switch effectType {
		case domain.EffectFocus, domain.EffectExplosion:
			return vector.R(0.15, 0.15, 0.7, 0.7)
		case domain.EffectFlash:
			return vector.R(0.25, 0.25, 0.5, 0.5)
		default:
			return vector.R(0.1, 0.35, 0.8, 0.3)
		}
	case domain.KindBackground:
		// Overflows by 1% on every side so no panel edge shows through.
		return vector.R(-0.01, -0.01, 1.02, 1.02)
	case domain.KindCharacter:
		return vector.CenteredAt(vector.Pt{X: 0.5, Y: 0.55}, 0.3, 0.5)
	case domain.KindBalloon:
		return vector.R(0.55, 0.05, 0.4, 0.2)
	}
	return vector.R(0.25, 0.25, 0.5, 0.5)
}

func inUnit(r vector.Rect) bool {
	return r.X >= -epsilon && r.Y >= -epsilon && r.X+r.W <= 1+epsilon && r.Y+r.H <= 1+epsilon
}

func collides(abs vector.Rect, existing []vector.Rect) bool {
	for _, e := range existing {
		if abs.Overlaps(e) {
			return true
		}
	}
	return false
}

// Place returns a panel-relative rect for a new element. existing holds
// the page-absolute rects already in the panel. When neither the default
// nor any of the 8 shifted candidates is free, the default is returned.
func Place(panel domain.Panel, kind domain.ElementKind, effectType domain.EffectType, existing []vector.Rect) vector.Rect {
	def := DefaultRect(kind, effectType)
	if kind == domain.KindBackground {
		return def
	}
	if !collides(coords.RelativeToAbsolute(def, panel), existing) {
		return def
	}
	for _, p := range shifts {
		c := def.Translate(p.X, p.Y)
		if !inUnit(c) {
			continue
		}
		if !collides(coords.RelativeToAbsolute(c, panel), existing) {
			return c
		}
	}
	return def
}

// Existing collects the page-absolute rects of the elements in a panel
// that new elements should avoid. Backgrounds are left out since they
// cover the whole panel by definition.
func Existing(pg domain.Page, panelID int) []vector.Rect {
	res := coords.NewResolver(pg.Panels)
	var out []vector.Rect
	for _, c := range pg.Characters {
		if c.PanelID == panelID {
			if r, _, ok := res.Character(c); ok {
				out = append(out, r)
			}
		}
	}
	for _, e := range pg.Effects {
		if e.PanelID == panelID {
			if r, _, ok := res.Effect(e); ok {
				out = append(out, r)
			}
		}
	}
	for _, t := range pg.Tones {
		if t.PanelID == panelID {
			if r, _, ok := res.Tone(t); ok {
				out = append(out, r)
			}
		}
	}
	if p, ok := res.Panel(panelID); ok {
		for _, b := range pg.Balloons {
			if b.PanelID == panelID {
				out = append(out, coords.ResolveRect(b.X, b.Y, b.Width, b.Height, b.IsGlobalPosition, p))
			}
		}
	}
	return out
}

// Density is a coarse fill estimate for a panel.
type Density string

const (
	DensityLow     Density = "low"
	DensityMedium  Density = "medium"
	DensityHigh    Density = "high"
	DensityCrowded Density = "crowded"
)

var densityRank = map[Density]int{DensityLow: 0, DensityMedium: 1, DensityHigh: 2, DensityCrowded: 3}

// ClassifyDensity estimates how full a panel is. Coverage is approximated
// by the largest single element's area over the panel area; overlaps are
// not unioned. Many elements raise the result regardless of coverage.
func ClassifyDensity(panel domain.Panel, existing []vector.Rect) Density {
	pa := panel.Rect().Area()
	largest := 0.0
	for _, r := range existing {
		if a := r.Intersect(panel.Rect()).Area(); a > largest {
			largest = a
		}
	}
	coverage := 0.0
	if pa > 0 {
		coverage = largest / pa
	}
	var d Density
	switch {
	case coverage < 0.25:
		d = DensityLow
	case coverage < 0.5:
		d = DensityMedium
	case coverage < 0.75:
		d = DensityHigh
	default:
		d = DensityCrowded
	}
	switch n := len(existing); {
	case n > 8:
		return DensityCrowded
	case n > 5 && densityRank[d] < densityRank[DensityHigh]:
		return DensityHigh
	}
	return d
}
