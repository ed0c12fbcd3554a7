/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package edit implements gesture operations on pages. Every operation
// takes a value and returns a new one; inputs are never modified, so the
// caller can keep the previous version for undo.
package edit

import (
	"errors"
	"fmt"

	"comicpage/internal/domain"
	"comicpage/internal/vector"
)

const (
	// DefaultMinPanelSize is the smallest width or height a resize leaves.
	DefaultMinPanelSize = 50.0
	// SplitIDOffset is added to a panel id to name its split twin.
	SplitIDOffset = 1000
)

var (
	ErrPanelNotFound   = errors.New("edit: panel not found")
	ErrElementNotFound = errors.New("edit: element not found")
	ErrInvalidAxis     = errors.New("edit: invalid split axis")
	ErrNotResizable    = errors.New("edit: handle is not a resize handle")
)

// resizeRect drags the edges selected by h by dx,dy. An edge is never
// pulled past minSize from the opposite edge, which stays fixed.
func resizeRect(r vector.Rect, h vector.Handle, dx, dy, minSize float64) vector.Rect {
	ax, ay := h.Axes()
	r.X, r.W = resizeAxis(r.X, r.W, ax, dx, minSize)
	r.Y, r.H = resizeAxis(r.Y, r.H, ay, dy, minSize)
	return r
}

func resizeAxis(pos, size float64, dir int, d, minSize float64) (float64, float64) {
	switch dir {
	case -1:
		end := pos + size
		size -= d
		if size < minSize {
			size = minSize
		}
		return end - size, size
	case 1:
		size += d
		if size < minSize {
			size = minSize
		}
	}
	return pos, size
}

// ResizePanel drags a panel edge or corner. Corners change both axes,
// edges one. A non-positive minSize means DefaultMinPanelSize.
func ResizePanel(p domain.Panel, h vector.Handle, dx, dy, minSize float64) domain.Panel {
	if minSize <= 0 {
		minSize = DefaultMinPanelSize
	}
	if !h.IsResize() {
		return p
	}
	return p.WithRect(resizeRect(p.Rect(), h, dx, dy, minSize))
}

// MovePanel translates a panel.
func MovePanel(p domain.Panel, dx, dy float64) domain.Panel {
	return p.WithRect(p.Rect().Translate(dx, dy))
}

// SplitPanel cuts a panel in two. Horizontal halves the height, vertical
// halves the width; the second half gets id+SplitIDOffset.
func SplitPanel(p domain.Panel, axis domain.SplitAxis) (domain.Panel, domain.Panel, error) {
	a, b := p, p
	b.ID = p.ID + SplitIDOffset
	switch axis {
	case domain.SplitHorizontal:
		half := p.Height / 2
		a.Height = half
		b.Y = p.Y + half
		b.Height = p.Height - half
	case domain.SplitVertical:
		half := p.Width / 2
		a.Width = half
		b.X = p.X + half
		b.Width = p.Width - half
	default:
		return p, domain.Panel{}, fmt.Errorf("%w: %q", ErrInvalidAxis, axis)
	}
	return a, b, nil
}

func panelIndex(pg domain.Page, id int) int {
	for i, p := range pg.Panels {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// SplitPanelInPage splits panel id and inserts the twin right after it.
// When id+SplitIDOffset is taken the offset is applied again until free.
func SplitPanelInPage(pg domain.Page, id int, axis domain.SplitAxis) (domain.Page, domain.Panel, error) {
	i := panelIndex(pg, id)
	if i < 0 {
		return pg, domain.Panel{}, fmt.Errorf("%w: %d", ErrPanelNotFound, id)
	}
	a, b, err := SplitPanel(pg.Panels[i], axis)
	if err != nil {
		return pg, domain.Panel{}, err
	}
	for panelIndex(pg, b.ID) >= 0 {
		b.ID += SplitIDOffset
	}
	out := pg.Clone()
	panels := make([]domain.Panel, 0, len(out.Panels)+1)
	panels = append(panels, out.Panels[:i]...)
	panels = append(panels, a, b)
	panels = append(panels, out.Panels[i+1:]...)
	out.Panels = panels
	return out, b, nil
}

// UpdatePanel applies fn to panel id in a copy of pg.
func UpdatePanel(pg domain.Page, id int, fn func(domain.Panel) domain.Panel) (domain.Page, error) {
	i := panelIndex(pg, id)
	if i < 0 {
		return pg, fmt.Errorf("%w: %d", ErrPanelNotFound, id)
	}
	out := pg.Clone()
	out.Panels[i] = fn(out.Panels[i])
	return out, nil
}

// DeletePanel removes a panel and every element it owns.
func DeletePanel(pg domain.Page, id int) (domain.Page, error) {
	if panelIndex(pg, id) < 0 {
		return pg, fmt.Errorf("%w: %d", ErrPanelNotFound, id)
	}
	out := pg.Clone()
	out.Panels = filter(out.Panels, func(p domain.Panel) bool { return p.ID != id })
	out.Characters = filter(out.Characters, func(c domain.Character) bool { return c.PanelID != id })
	out.Effects = filter(out.Effects, func(e domain.Effect) bool { return e.PanelID != id })
	out.Tones = filter(out.Tones, func(t domain.Tone) bool { return t.PanelID != id })
	out.Backgrounds = filter(out.Backgrounds, func(b domain.Background) bool { return b.PanelID != id })
	out.Balloons = filter(out.Balloons, func(b domain.Balloon) bool { return b.PanelID != id })
	return out, nil
}

func filter[T any](in []T, keep func(T) bool) []T {
	out := in[:0]
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
