/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package edit

import (
	"fmt"
	"math"

	"comicpage/internal/coords"
	"comicpage/internal/domain"
	"comicpage/internal/vector"
)

const (
	// MinElementSize bounds element resizes in page pixels.
	MinElementSize = 10.0
	// ScalePerPixel converts a handle drag into a character scale change.
	ScalePerPixel = 0.01
)

// box points into the position fields of one element of a cloned page.
// w and h are nil for characters, which are sized by scale.
type box struct {
	x, y, w, h *float64
	global     bool
	panelID    int
}

func locate(pg *domain.Page, kind domain.ElementKind, id string) (box, bool) {
	switch kind {
	case domain.KindCharacter:
		for i := range pg.Characters {
			c := &pg.Characters[i]
			if c.ID == id {
				return box{x: &c.X, y: &c.Y, global: c.IsGlobalPosition, panelID: c.PanelID}, true
			}
		}
	case domain.KindEffect:
		for i := range pg.Effects {
			e := &pg.Effects[i]
			if e.ID == id {
				return box{&e.X, &e.Y, &e.Width, &e.Height, e.IsGlobalPosition, e.PanelID}, true
			}
		}
	case domain.KindTone:
		for i := range pg.Tones {
			t := &pg.Tones[i]
			if t.ID == id {
				return box{&t.X, &t.Y, &t.Width, &t.Height, t.IsGlobalPosition, t.PanelID}, true
			}
		}
	case domain.KindBackground:
		for i := range pg.Backgrounds {
			b := &pg.Backgrounds[i]
			if b.ID == id {
				return box{&b.X, &b.Y, &b.Width, &b.Height, b.IsGlobalPosition, b.PanelID}, true
			}
		}
	case domain.KindBalloon:
		for i := range pg.Balloons {
			b := &pg.Balloons[i]
			if b.ID == id {
				return box{&b.X, &b.Y, &b.Width, &b.Height, b.IsGlobalPosition, b.PanelID}, true
			}
		}
	}
	return box{}, false
}

// prepare clones pg and locates the element together with its panel.
func prepare(pg domain.Page, kind domain.ElementKind, id string) (domain.Page, box, domain.Panel, error) {
	out := pg.Clone()
	b, ok := locate(&out, kind, id)
	if !ok {
		return pg, box{}, domain.Panel{}, fmt.Errorf("%w: %s %q", ErrElementNotFound, kind, id)
	}
	p, ok := out.PanelByID(b.panelID)
	if !ok {
		return pg, box{}, domain.Panel{}, fmt.Errorf("%w: %d", ErrPanelNotFound, b.panelID)
	}
	return out, b, p, nil
}

// MoveElement drags an element by dx,dy page pixels. Relative elements
// convert the delta into fractions of their panel.
func MoveElement(pg domain.Page, kind domain.ElementKind, id string, dx, dy float64) (domain.Page, error) {
	out, b, p, err := prepare(pg, kind, id)
	if err != nil {
		return pg, err
	}
	if b.global {
		*b.x += dx
		*b.y += dy
		return out, nil
	}
	if p.Width <= 0 || p.Height <= 0 {
		return pg, coords.ErrDegeneratePanel
	}
	*b.x += dx / p.Width
	*b.y += dy / p.Height
	return out, nil
}

// ResizeElement drags a resize handle of a rect element. The drag happens
// in page space and is stored back in the element's own coordinate mode.
func ResizeElement(pg domain.Page, kind domain.ElementKind, id string, h vector.Handle, dx, dy float64) (domain.Page, error) {
	if !h.IsResize() {
		return pg, ErrNotResizable
	}
	if kind == domain.KindCharacter {
		return ResizeCharacterInPage(pg, id, h, dx, dy)
	}
	out, b, p, err := prepare(pg, kind, id)
	if err != nil {
		return pg, err
	}
	abs := coords.ResolveRect(*b.x, *b.y, *b.w, *b.h, b.global, p)
	abs = resizeRect(abs, h, dx, dy, MinElementSize)
	if !b.global {
		rel, err := coords.AbsoluteToRelative(abs, p)
		if err != nil {
			return pg, err
		}
		abs = rel
	}
	*b.x, *b.y, *b.w, *b.h = abs.X, abs.Y, abs.W, abs.H
	return out, nil
}

// ResizeCharacter reduces a handle drag to one scalar and applies it to
// scale. Dragging any handle outward grows the figure, so the west and
// north sides invert the sign of the delta.
func ResizeCharacter(c domain.Character, h vector.Handle, dx, dy float64) domain.Character {
	ax, ay := h.Axes()
	var delta float64
	switch {
	case ax != 0 && ay != 0:
		delta = (float64(ax)*dx + float64(ay)*dy) / 2
	case ax != 0:
		delta = float64(ax) * dx
	case ay != 0:
		delta = float64(ay) * dy
	default:
		return c
	}
	c.Scale = coords.ClampScale(coords.ClampScale(c.Scale) + delta*ScalePerPixel)
	return c
}

// RotateCharacter turns a character so that its top faces the pointer,
// matching a drag of the handle above its top edge. The result is in
// degrees in [0, 360).
func RotateCharacter(c domain.Character, panel domain.Panel, pointer vector.Pt) domain.Character {
	center := coords.DefaultGeometry.Center(c, panel)
	deg := math.Atan2(pointer.Y-center.Y, pointer.X-center.X)*180/math.Pi + 90
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	deg = vector.FloatRound(deg, 6)
	if deg >= 360 {
		deg -= 360
	}
	c.Rotation = deg
	return c
}

func updateCharacter(pg domain.Page, id string, fn func(domain.Character, domain.Panel) domain.Character) (domain.Page, error) {
	out := pg.Clone()
	for i, c := range out.Characters {
		if c.ID != id {
			continue
		}
		p, ok := out.PanelByID(c.PanelID)
		if !ok {
			return pg, fmt.Errorf("%w: %d", ErrPanelNotFound, c.PanelID)
		}
		out.Characters[i] = fn(c, p)
		return out, nil
	}
	return pg, fmt.Errorf("%w: character %q", ErrElementNotFound, id)
}

// ResizeCharacterInPage applies ResizeCharacter to character id.
func ResizeCharacterInPage(pg domain.Page, id string, h vector.Handle, dx, dy float64) (domain.Page, error) {
	return updateCharacter(pg, id, func(c domain.Character, _ domain.Panel) domain.Character {
		return ResizeCharacter(c, h, dx, dy)
	})
}

// RotateCharacterInPage applies RotateCharacter to character id.
func RotateCharacterInPage(pg domain.Page, id string, pointer vector.Pt) (domain.Page, error) {
	return updateCharacter(pg, id, func(c domain.Character, p domain.Panel) domain.Character {
		return RotateCharacter(c, p, pointer)
	})
}

// DeleteElement removes one element by kind and id.
func DeleteElement(pg domain.Page, kind domain.ElementKind, id string) (domain.Page, error) {
	out := pg.Clone()
	n := 0
	switch kind {
	case domain.KindCharacter:
		n = len(out.Characters)
		out.Characters = filter(out.Characters, func(c domain.Character) bool { return c.ID != id })
		n -= len(out.Characters)
	case domain.KindEffect:
		n = len(out.Effects)
		out.Effects = filter(out.Effects, func(e domain.Effect) bool { return e.ID != id })
		n -= len(out.Effects)
	case domain.KindTone:
		n = len(out.Tones)
		out.Tones = filter(out.Tones, func(t domain.Tone) bool { return t.ID != id })
		n -= len(out.Tones)
	case domain.KindBackground:
		n = len(out.Backgrounds)
		out.Backgrounds = filter(out.Backgrounds, func(b domain.Background) bool { return b.ID != id })
		n -= len(out.Backgrounds)
	case domain.KindBalloon:
		n = len(out.Balloons)
		out.Balloons = filter(out.Balloons, func(b domain.Balloon) bool { return b.ID != id })
		n -= len(out.Balloons)
	}
	if n == 0 {
		return pg, fmt.Errorf("%w: %s %q", ErrElementNotFound, kind, id)
	}
	return out, nil
}

// MoveEffectCenter drags the burst centre of a radial effect by dx,dy page
// pixels. The centre is stored as a fraction of the effect rect.
func MoveEffectCenter(pg domain.Page, id string, dx, dy float64) (domain.Page, error) {
	out := pg.Clone()
	for i := range out.Effects {
		e := &out.Effects[i]
		if e.ID != id {
			continue
		}
		p, ok := out.PanelByID(e.PanelID)
		if !ok {
			return pg, fmt.Errorf("%w: %d", ErrPanelNotFound, e.PanelID)
		}
		r := coords.ResolveRect(e.X, e.Y, e.Width, e.Height, e.IsGlobalPosition, p)
		if r.W <= 0 || r.H <= 0 {
			return pg, coords.ErrDegeneratePanel
		}
		cx, cy := 0.5, 0.5
		if e.CenterX != nil {
			cx = *e.CenterX
		}
		if e.CenterY != nil {
			cy = *e.CenterY
		}
		cx = vector.Clamp(cx+dx/r.W, 0, 1)
		cy = vector.Clamp(cy+dy/r.H, 0, 1)
		e.CenterX, e.CenterY = &cx, &cy
		return out, nil
	}
	return pg, fmt.Errorf("%w: effect %q", ErrElementNotFound, id)
}
