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
	"comicpage/internal/vector"
)

// Hit is the result of a pointer test. A zero Hit means nothing was hit.
// Handle is set when the pointer is over a selection or edit handle.
type Hit struct {
	Kind    domain.ElementKind `json:"kind,omitempty"`
	ID      string             `json:"id,omitempty"`
	PanelID int                `json:"panelId,omitempty"`
	Handle  vector.Handle      `json:"handle,omitempty"`
}

// IsZero reports whether the hit found nothing.
func (h Hit) IsZero() bool { return h.Kind == "" }

// HitTest resolves a page point against the same geometry Draw uses. The
// order is the reverse of draw order: handles of selected elements, then
// the edit handles of the selected panel, then elements top-most first,
// then panel bodies.
func (r *Renderer) HitTest(f Frame, pt vector.Pt) Hit {
	pg := f.Page
	res := resolver(pg)

	if h, ok := r.hitSelectedHandles(pg, f.Selection, res, pt); ok {
		return h
	}

	if f.Modes.PanelEditMode && f.Selection.PanelID != 0 {
		if p, ok := res.Panel(f.Selection.PanelID); ok {
			if h := r.hitPanelHandle(p.Rect(), pt); h != vector.HandleNone {
				return Hit{Kind: domain.KindPanel, PanelID: p.ID, Handle: h}
			}
		}
	}

	stacks, _ := stackPanels(pg)
	order := drawOrder(pg, stacks)
	for i := len(order) - 1; i >= 0; i-- {
		if h, ok := hitLayer(pg, order[i], res, pt); ok {
			return h
		}
	}

	for i := len(pg.Panels) - 1; i >= 0; i-- {
		p := pg.Panels[i]
		if p.Rect().Contains(pt) {
			return Hit{Kind: domain.KindPanel, PanelID: p.ID}
		}
	}
	return Hit{}
}

func (r *Renderer) hitPanelHandle(rect vector.Rect, pt vector.Pt) vector.Handle {
	hs := r.handleSize
	if SplitControlRect(rect, hs).Contains(pt) {
		return vector.HandleSplit
	}
	c := MoveHandleCenter(rect)
	if math.Hypot(pt.X-c.X, pt.Y-c.Y) <= MoveHandleRadius(hs) {
		return vector.HandleMove
	}
	return vector.HitHandle(rect, pt, hs, vector.ResizeHandles)
}

func (r *Renderer) hitSelectedHandles(pg domain.Page, sel domain.Selection, res coords.Resolver, pt vector.Pt) (Hit, bool) {
	hs := r.handleSize
	if sel.CharacterID != "" {
		for _, c := range pg.Characters {
			if c.ID != sel.CharacterID {
				continue
			}
			rect, panel, ok := res.Character(c)
			if !ok {
				break
			}
			hit := Hit{Kind: domain.KindCharacter, ID: c.ID, PanelID: panel.ID}
			knob := CharacterRotateHandle(rect, c.Rotation, hs)
			if math.Hypot(pt.X-knob.X, pt.Y-knob.Y) <= hs {
				hit.Handle = vector.HandleRotate
				return hit, true
			}
			local := pt
			if c.Rotation != 0 {
				local = vector.RotateAbout(vector.DegToRad(c.Rotation), rect.Center()).Invert().Apply(pt)
			}
			if h := vector.HitHandle(rect, local, hs, vector.ResizeHandles); h != vector.HandleNone {
				hit.Handle = h
				return hit, true
			}
			break
		}
	}
	if sel.EffectID != "" {
		for _, e := range pg.Effects {
			if e.ID != sel.EffectID {
				continue
			}
			rect, panel, ok := res.Effect(e)
			if !ok {
				break
			}
			hit := Hit{Kind: domain.KindEffect, ID: e.ID, PanelID: panel.ID}
			if h := vector.HitHandle(rect, pt, hs, vector.ResizeHandles); h != vector.HandleNone {
				hit.Handle = h
				return hit, true
			}
			if normalizeEffect(e).IsRadial() {
				c := EffectCenter(e, rect)
				if math.Hypot(pt.X-c.X, pt.Y-c.Y) <= hs {
					hit.Handle = vector.HandleCenter
					return hit, true
				}
			}
			break
		}
	}
	if sel.ToneID != "" {
		for _, t := range pg.Tones {
			if t.ID != sel.ToneID {
				continue
			}
			rect, panel, ok := res.Tone(t)
			if !ok {
				break
			}
			for _, hb := range ToneHandles(rect, panel, hs) {
				if hb.Rect.Contains(pt) {
					return Hit{Kind: domain.KindTone, ID: t.ID, PanelID: panel.ID, Handle: hb.Handle}, true
				}
			}
			break
		}
	}
	return Hit{}, false
}

func hitLayer(pg domain.Page, l layer, res coords.Resolver, pt vector.Pt) (Hit, bool) {
	switch l.kind {
	case domain.KindCharacter:
		c := pg.Characters[l.index]
		if panel, ok := res.Panel(c.PanelID); ok && panel.Rect().Contains(pt) && res.Geometry.Contains(c, panel, pt) {
			return Hit{Kind: domain.KindCharacter, ID: c.ID, PanelID: panel.ID}, true
		}
	case domain.KindEffect:
		e := pg.Effects[l.index]
		if rect, panel, ok := res.Effect(e); ok && rect.Intersect(panel.Rect()).Contains(pt) {
			return Hit{Kind: domain.KindEffect, ID: e.ID, PanelID: panel.ID}, true
		}
	case domain.KindTone:
		t := pg.Tones[l.index]
		if rect, panel, ok := res.Tone(t); ok && ToneClip(rect, panel).Contains(pt) {
			return Hit{Kind: domain.KindTone, ID: t.ID, PanelID: panel.ID}, true
		}
	case domain.KindBackground:
		b := pg.Backgrounds[l.index]
		if rect, panel, ok := res.Background(b); ok && rect.Intersect(panel.Rect()).Contains(pt) {
			return Hit{Kind: domain.KindBackground, ID: b.ID, PanelID: panel.ID}, true
		}
	}
	return Hit{}, false
}
