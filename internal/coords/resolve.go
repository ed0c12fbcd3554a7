/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package coords resolves element rectangles from either panel-relative
// fractions or page-absolute pixels, and rescales whole pages when the page
// size changes. Every renderer, hit test and fitting helper goes through the
// Resolver so that they agree on where an element is.
package coords

import (
	"errors"

	"comicpage/internal/domain"
	"comicpage/internal/vector"
)

// ErrDegeneratePanel is returned when a panel has no positive width or height.
var ErrDegeneratePanel = errors.New("panel has non-positive dimensions")

// RelativeToAbsolute maps a rect given in fractions of panel onto page pixels.
func RelativeToAbsolute(rel vector.Rect, panel domain.Panel) vector.Rect {
	return vector.Rect{
		X: panel.X + rel.X*panel.Width,
		Y: panel.Y + rel.Y*panel.Height,
		W: rel.W * panel.Width,
		H: rel.H * panel.Height,
	}
}

// AbsoluteToRelative is the inverse of RelativeToAbsolute.
func AbsoluteToRelative(abs vector.Rect, panel domain.Panel) (vector.Rect, error) {
	if panel.Width <= 0 || panel.Height <= 0 {
		return vector.Rect{}, ErrDegeneratePanel
	}
	return vector.Rect{
		X: (abs.X - panel.X) / panel.Width,
		Y: (abs.Y - panel.Y) / panel.Height,
		W: abs.W / panel.Width,
		H: abs.H / panel.Height,
	}, nil
}

// ResolveRect returns the on-page rectangle for an element quadruple.
func ResolveRect(x, y, w, h float64, global bool, panel domain.Panel) vector.Rect {
	r := vector.R(x, y, w, h)
	if global {
		return r
	}
	return RelativeToAbsolute(r, panel)
}

// Resolver looks up owning panels and resolves element rectangles. It is
// built from the live panel slice for each draw or hit-test call and never
// outlives it.
type Resolver struct {
	panels   map[int]domain.Panel
	Geometry CharacterGeometry
}

// NewResolver indexes panels by id. On duplicate ids the first panel wins.
func NewResolver(panels []domain.Panel) Resolver {
	m := make(map[int]domain.Panel, len(panels))
	for _, p := range panels {
		if _, dup := m[p.ID]; !dup {
			m[p.ID] = p
		}
	}
	return Resolver{panels: m, Geometry: DefaultGeometry}
}

// Panel returns the owning panel for an id.
func (r Resolver) Panel(id int) (domain.Panel, bool) {
	p, ok := r.panels[id]
	return p, ok
}

// Character resolves a character's bounding rect. ok is false for orphans.
func (r Resolver) Character(c domain.Character) (vector.Rect, domain.Panel, bool) {
	p, ok := r.panels[c.PanelID]
	if !ok {
		return vector.Rect{}, domain.Panel{}, false
	}
	return r.Geometry.Rect(c, p), p, true
}

// Effect resolves an effect's rect.
func (r Resolver) Effect(e domain.Effect) (vector.Rect, domain.Panel, bool) {
	p, ok := r.panels[e.PanelID]
	if !ok {
		return vector.Rect{}, domain.Panel{}, false
	}
	return ResolveRect(e.X, e.Y, e.Width, e.Height, e.IsGlobalPosition, p), p, true
}

// Tone resolves a tone's rect.
func (r Resolver) Tone(t domain.Tone) (vector.Rect, domain.Panel, bool) {
	p, ok := r.panels[t.PanelID]
	if !ok {
		return vector.Rect{}, domain.Panel{}, false
	}
	return ResolveRect(t.X, t.Y, t.Width, t.Height, t.IsGlobalPosition, p), p, true
}

// Background resolves a background's rect.
func (r Resolver) Background(b domain.Background) (vector.Rect, domain.Panel, bool) {
	p, ok := r.panels[b.PanelID]
	if !ok {
		return vector.Rect{}, domain.Panel{}, false
	}
	return ResolveRect(b.X, b.Y, b.Width, b.Height, b.IsGlobalPosition, p), p, true
}
