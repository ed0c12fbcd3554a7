/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"comicpage/internal/domain"
	"comicpage/internal/surface"
	"comicpage/internal/vector"
)

// PanelState is the position of a panel in the view → selected → edit machine.
type PanelState int

const (
	PanelView PanelState = iota
	PanelSelected
	PanelEdit
)

// PanelStateOf derives the state from selection and the host's edit flag.
// Edit mode without selection leaves a panel in view state.
func PanelStateOf(p domain.Panel, sel domain.Selection, modes domain.Modes) PanelState {
	if sel.PanelID == 0 || sel.PanelID != p.ID {
		return PanelView
	}
	if modes.PanelEditMode {
		return PanelEdit
	}
	return PanelSelected
}

const (
	numberTextSize = 11.0
	badgeTextSize  = 11.0
	badgePadding   = 4.0
)

// DrawPanel draws the frame of one panel plus numbering and, depending on
// state, the selection border, id badge and edit handles.
func (r *Renderer) DrawPanel(s surface.Surface, p domain.Panel, number int, state PanelState) error {
	if err := checkSurface(s); err != nil {
		return err
	}
	rect := p.Rect()
	s.Push()
	defer s.Pop()

	s.SetColor(r.theme.PanelFill)
	s.FillRect(rect)
	s.SetColor(r.theme.PanelStroke)
	s.SetLineWidth(r.theme.PanelStrokeWidth)
	s.StrokeRect(rect)

	if number > 0 {
		s.SetColor(r.theme.Ink.WithAlpha(0.6))
		s.Text(strconv.Itoa(number), vector.Pt{X: rect.X + 5, Y: rect.Y + 4 + numberTextSize}, numberTextSize)
	}
	r.drawPanelOverlay(s, p, state)
	return nil
}

// drawPanelOverlay draws the state-dependent decorations only. Page
// composition calls it after every panel's contents.
func (r *Renderer) drawPanelOverlay(s surface.Surface, p domain.Panel, state PanelState) {
	if state == PanelView {
		return
	}
	rect := p.Rect()
	s.Push()
	defer s.Pop()
	s.SetColor(r.theme.Accent)
	s.SetLineWidth(r.theme.PanelStrokeWidth + 2)
	s.StrokeRect(rect)
	r.drawBadge(s, rect, "#"+strconv.Itoa(p.ID))

	if state == PanelEdit {
		r.drawPanelHandles(s, rect)
	}
}

// BadgeRect returns where the id badge of a selected panel is drawn: inside
// the top-right corner, sized to its label.
func BadgeRect(panel vector.Rect, label string) vector.Rect {
	w := measure(label) + 2*badgePadding
	h := badgeTextSize + 2*badgePadding
	return vector.R(panel.X+panel.W-w-4, panel.Y+4, w, h)
}

func (r *Renderer) drawBadge(s surface.Surface, panel vector.Rect, label string) {
	b := BadgeRect(panel, label)
	s.SetColor(r.theme.BadgeFill)
	s.FillRect(b)
	s.SetColor(r.theme.BadgeText)
	s.Text(label, vector.Pt{X: b.X + badgePadding, Y: b.Y + b.H - badgePadding - 1}, badgeTextSize)
}

// measure returns the advance width of s in the fixed 7x13 face; close
// enough to the raster font for sizing badges deterministically.
func measure(s string) float64 {
	d := &font.Drawer{Face: basicfont.Face7x13}
	return float64(d.MeasureString(s) >> 6)
}

// MoveHandleCenter is the centre of a panel's move handle.
func MoveHandleCenter(panel vector.Rect) vector.Pt { return panel.Center() }

// MoveHandleRadius is the radius of the move handle for a handle size.
func MoveHandleRadius(handleSize float64) float64 { return handleSize }

// SplitControlRect is the square split control placed below the move handle.
func SplitControlRect(panel vector.Rect, handleSize float64) vector.Rect {
	c := panel.Center()
	c.Y += 3 * handleSize
	return vector.CenteredAt(c, 2*handleSize, 2*handleSize)
}

func (r *Renderer) drawPanelHandles(s surface.Surface, rect vector.Rect) {
	hs := r.handleSize
	r.drawHandles(s, rect, vector.ResizeHandles)

	c := MoveHandleCenter(rect)
	s.SetColor(r.theme.HandleFill)
	s.FillCircle(c, MoveHandleRadius(hs))
	s.SetColor(r.theme.HandleStroke)
	s.StrokeCircle(c, MoveHandleRadius(hs))
	arm := hs * 0.6
	s.Line(vector.Pt{X: c.X - arm, Y: c.Y}, vector.Pt{X: c.X + arm, Y: c.Y})
	s.Line(vector.Pt{X: c.X, Y: c.Y - arm}, vector.Pt{X: c.X, Y: c.Y + arm})

	sp := SplitControlRect(rect, hs)
	s.SetColor(r.theme.HandleFill)
	s.FillRect(sp)
	s.SetColor(r.theme.HandleStroke)
	s.StrokeRect(sp)
	s.SetDash(2, 2)
	s.Line(vector.Pt{X: sp.X + 2, Y: sp.Y + sp.H/2}, vector.Pt{X: sp.X + sp.W - 2, Y: sp.Y + sp.H/2})
	s.SetDash()
}
