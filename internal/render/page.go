/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"sort"

	"comicpage/internal/coords"
	"comicpage/internal/domain"
	"comicpage/internal/surface"
	"comicpage/internal/vector"
)

// layer addresses one panel child in the page slices.
type layer struct {
	kind  domain.ElementKind
	index int
	z     int
}

// stackPanels groups children by owning panel and orders each group by z.
// Appending backgrounds, tones, effects, then characters before a stable
// sort breaks z ties by kind and then by original order. Children whose
// panel does not exist are counted and left out.
func stackPanels(pg domain.Page) (map[int][]layer, int) {
	known := make(map[int]bool, len(pg.Panels))
	for _, p := range pg.Panels {
		known[p.ID] = true
	}
	out := make(map[int][]layer, len(pg.Panels))
	orphans := 0
	add := func(panelID int, l layer) {
		if !known[panelID] {
			orphans++
			return
		}
		out[panelID] = append(out[panelID], l)
	}
	for i, b := range pg.Backgrounds {
		add(b.PanelID, layer{domain.KindBackground, i, b.ZIndex})
	}
	for i, t := range pg.Tones {
		add(t.PanelID, layer{domain.KindTone, i, t.ZIndex})
	}
	for i, e := range pg.Effects {
		add(e.PanelID, layer{domain.KindEffect, i, e.ZIndex})
	}
	for i, c := range pg.Characters {
		add(c.PanelID, layer{domain.KindCharacter, i, c.ZIndex})
	}
	for id := range out {
		ls := out[id]
		sort.SliceStable(ls, func(a, b int) bool { return ls[a].z < ls[b].z })
	}
	return out, orphans
}

// drawOrder flattens the stacks in panel order: the last entry is top-most.
func drawOrder(pg domain.Page, stacks map[int][]layer) []layer {
	var out []layer
	for _, p := range pg.Panels {
		out = append(out, stacks[p.ID]...)
	}
	return out
}

func (r *Renderer) drawLayer(s surface.Surface, pg domain.Page, l layer, res coords.Resolver) (bool, error) {
	switch l.kind {
	case domain.KindBackground:
		return r.DrawBackground(s, pg.Backgrounds[l.index], res)
	case domain.KindTone:
		return r.DrawTone(s, pg.Tones[l.index], res)
	case domain.KindEffect:
		return r.DrawEffect(s, pg.Effects[l.index], res)
	case domain.KindCharacter:
		return r.DrawCharacter(s, pg.Characters[l.index], res)
	}
	return false, nil
}

// Draw composes the whole page: paper, panel frames with their contents in
// z-order, then panel decorations and element selection overlays on top.
func (r *Renderer) Draw(s surface.Surface, f Frame) error {
	if err := checkSurface(s); err != nil {
		return err
	}
	pg := f.Page
	res := resolver(pg)
	stacks, orphans := stackPanels(pg)
	if orphans > 0 {
		r.log.Debug("skipping orphaned elements", "count", orphans)
	}

	s.Push()
	defer s.Pop()
	s.SetColor(r.theme.Paper)
	s.FillRect(pageRect(pg, s))

	for i, p := range pg.Panels {
		if err := r.DrawPanel(s, p, i+1, PanelView); err != nil {
			return err
		}
		for _, l := range stacks[p.ID] {
			if _, err := r.drawLayer(s, pg, l, res); err != nil {
				return err
			}
		}
	}

	for _, p := range pg.Panels {
		r.drawPanelOverlay(s, p, PanelStateOf(p, f.Selection, f.Modes))
	}
	r.drawSelection(s, pg, f.Selection, res)
	return nil
}

func (r *Renderer) drawSelection(s surface.Surface, pg domain.Page, sel domain.Selection, res coords.Resolver) {
	if sel.BackgroundID != "" {
		for _, b := range pg.Backgrounds {
			if b.ID == sel.BackgroundID {
				if rect, panel, ok := res.Background(b); ok {
					r.drawBackgroundSelection(s, rect, panel)
				}
				break
			}
		}
	}
	if sel.ToneID != "" {
		for _, t := range pg.Tones {
			if t.ID == sel.ToneID {
				if rect, panel, ok := res.Tone(t); ok {
					r.drawToneSelection(s, rect, panel)
				}
				break
			}
		}
	}
	if sel.EffectID != "" {
		for _, e := range pg.Effects {
			if e.ID == sel.EffectID {
				if rect, _, ok := res.Effect(e); ok {
					r.drawEffectSelection(s, e, rect)
				}
				break
			}
		}
	}
	if sel.CharacterID != "" {
		for _, c := range pg.Characters {
			if c.ID == sel.CharacterID {
				if rect, _, ok := res.Character(c); ok {
					r.drawCharacterSelection(s, c, rect)
				}
				break
			}
		}
	}
}

// pageRect is the page area; a page without dimensions uses the surface.
func pageRect(pg domain.Page, s surface.Surface) vector.Rect {
	w, h := pg.Width, pg.Height
	if w <= 0 || h <= 0 {
		w, h = s.Width(), s.Height()
	}
	return vector.R(0, 0, w, h)
}
