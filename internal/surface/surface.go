/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package surface defines the 2D drawing contract the renderers emit into,
// with a raster backend (PNG capture), a vector PDF backend and an in-memory
// recorder used by tests and by hosts that want the raw draw commands.
package surface

import (
	"comicpage/internal/domain"
	"comicpage/internal/vector"
)

// Surface is an immediate-mode drawing target. Every Stroke*/Fill*/Line/Text
// call emits exactly one primitive, which lets callers bound and count the
// work of a render call.
//
// State (colour, line width, dash, blend, clip, transform) is saved by Push
// and restored by Pop. ClipRect intersects the current clip.
type Surface interface {
	Width() float64
	Height() float64

	Push()
	Pop()
	ClipRect(r vector.Rect)
	RotateAbout(rad float64, c vector.Pt)

	SetColor(c domain.Color)
	SetLineWidth(w float64)
	SetDash(lengths ...float64)
	SetBlend(m domain.BlendMode)

	Line(a, b vector.Pt)
	StrokeRect(r vector.Rect)
	FillRect(r vector.Rect)
	StrokeCircle(c vector.Pt, radius float64)
	FillCircle(c vector.Pt, radius float64)
	StrokeEllipse(c vector.Pt, rx, ry float64)
	FillEllipse(c vector.Pt, rx, ry float64)
	// Arc strokes a circular arc; angles in radians, clockwise from +x in page space.
	Arc(c vector.Pt, radius, from, to float64)
	FillPolygon(pts []vector.Pt)
	Text(s string, at vector.Pt, size float64)
}
