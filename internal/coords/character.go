/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package coords

import (
	"comicpage/internal/domain"
	"comicpage/internal/vector"
)

// Character scale bounds; every consumer clamps into this range before use.
const (
	MinCharacterScale = 0.5
	MaxCharacterScale = 5.0
)

// extent holds the width/height multipliers of a view type.
type extent struct{ w, h float64 }

var viewExtents = map[domain.ViewType]extent{
	domain.ViewFace:     {1.0, 1.0},
	domain.ViewHalfBody: {1.2, 1.9},
	domain.ViewFullBody: {1.1, 3.0},
}

// CharacterGeometry is the single formula set for character dimensions.
// Base is the edge length in page pixels of a face-only character at scale 1.
type CharacterGeometry struct {
	Base float64
}

// DefaultGeometry is used by all renderers, hit tests and fitting helpers.
var DefaultGeometry = CharacterGeometry{Base: 60}

// ClampScale limits a character scale to [MinCharacterScale, MaxCharacterScale].
// A zero scale reads as 1 so that records without the field still draw.
func ClampScale(s float64) float64 {
	if s == 0 {
		return 1
	}
	return vector.Clamp(s, MinCharacterScale, MaxCharacterScale)
}

// Size returns the unscaled-by-panel width and height in page pixels.
func (g CharacterGeometry) Size(c domain.Character) (w, h float64) {
	ext, ok := viewExtents[c.ViewType]
	if !ok {
		ext = viewExtents[domain.ViewHalfBody]
	}
	base := g.Base
	if base <= 0 {
		base = DefaultGeometry.Base
	}
	s := ClampScale(c.Scale)
	w, h = base*ext.w*s, base*ext.h*s
	switch c.Pose {
	case domain.PoseSitting:
		if c.ViewType == domain.ViewFullBody {
			h *= 0.75
		}
	case domain.PosePointing, domain.PoseWaving:
		if c.ViewType != domain.ViewFace {
			w *= 1.25
		}
	}
	return w, h
}

// Center returns the character's centre point on the page.
func (g CharacterGeometry) Center(c domain.Character, panel domain.Panel) vector.Pt {
	if c.IsGlobalPosition {
		return vector.Pt{X: c.X, Y: c.Y}
	}
	return vector.Pt{X: panel.X + c.X*panel.Width, Y: panel.Y + c.Y*panel.Height}
}

// Rect returns the bounding rect anchored at (cx - w/2, cy - h/2).
func (g CharacterGeometry) Rect(c domain.Character, panel domain.Panel) vector.Rect {
	w, h := g.Size(c)
	return vector.CenteredAt(g.Center(c, panel), w, h)
}

// Contains reports whether a page point falls inside the character, taking
// its rotation into account by rotating the point back into the
// character's own frame.
func (g CharacterGeometry) Contains(c domain.Character, panel domain.Panel, p vector.Pt) bool {
	r := g.Rect(c, panel)
	if c.Rotation != 0 {
		p = vector.RotateAbout(vector.DegToRad(c.Rotation), r.Center()).Invert().Apply(p)
	}
	return r.Contains(p)
}
