/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package session

import (
	"fmt"

	"comicpage/internal/domain"
	"comicpage/internal/edit"
	"comicpage/internal/render"
	"comicpage/internal/vector"
)

// Click applies a pointer click resolved by render.HitTest: the split
// control splits its panel, anything else becomes the selection. A miss
// clears the selection.
func (s *Session) Click(h render.Hit) error {
	switch {
	case h.IsZero():
		s.sel = domain.Selection{}
	case h.Kind == domain.KindPanel && h.Handle == vector.HandleSplit:
		if _, err := s.SplitPanel(h.PanelID, domain.SplitHorizontal); err != nil {
			return fmt.Errorf("click on %s: %w", describe(h), err)
		}
	case h.Kind == domain.KindPanel:
		s.sel = domain.Selection{PanelID: h.PanelID}
	default:
		sel := domain.Selection{PanelID: h.PanelID}
		switch h.Kind {
		case domain.KindCharacter:
			sel.CharacterID = h.ID
		case domain.KindEffect:
			sel.EffectID = h.ID
		case domain.KindTone:
			sel.ToneID = h.ID
		case domain.KindBackground:
			sel.BackgroundID = h.ID
		}
		s.sel = sel
	}
	return nil
}

// Drag applies one step of a pointer drag that started on h. dx,dy is the
// movement since the previous step and pointer the current position.
func (s *Session) Drag(h render.Hit, dx, dy float64, pointer vector.Pt) error {
	var err error
	switch {
	case h.IsZero():
		return nil
	case h.Kind == domain.KindPanel:
		switch {
		case !s.modes.PanelEditMode:
			return nil
		case h.Handle == vector.HandleMove:
			err = s.MovePanel(h.PanelID, dx, dy)
		case h.Handle.IsResize():
			err = s.ResizePanel(h.PanelID, h.Handle, dx, dy)
		default:
			return nil
		}
	case h.Handle == vector.HandleRotate:
		err = s.RotateCharacter(h.ID, pointer)
	case h.Handle == vector.HandleCenter:
		err = s.apply(elementLabel("center", h.Kind, h.ID), func(pg domain.Page) (domain.Page, error) {
			return edit.MoveEffectCenter(pg, h.ID, dx, dy)
		})
	case h.Handle.IsResize():
		err = s.ResizeElement(h.Kind, h.ID, h.Handle, dx, dy)
	default:
		err = s.MoveElement(h.Kind, h.ID, dx, dy)
	}
	if err != nil {
		return fmt.Errorf("drag %s: %w", describe(h), err)
	}
	return nil
}
