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
	"comicpage/internal/surface"
	"comicpage/internal/vector"
)

var defaultBackground = domain.Color{R: 236, G: 239, B: 241, A: 255}

// DrawBackground fills a background rect inside its panel, flat or as a
// top-to-bottom blend from Color to Color2.
func (r *Renderer) DrawBackground(s surface.Surface, b domain.Background, res coords.Resolver) (bool, error) {
	if err := checkSurface(s); err != nil {
		return false, err
	}
	rect, panel, ok := res.Background(b)
	if !ok {
		return false, nil
	}
	area := rect.Intersect(panel.Rect())
	if area.Empty() {
		return false, nil
	}
	opacity := unitOr(b.Opacity, 1)
	from := domain.ParseColor(b.Color, defaultBackground)

	s.Push()
	defer s.Pop()
	s.ClipRect(panel.Rect())
	if b.Kind != domain.BackgroundGradient {
		s.SetColor(from.WithAlpha(opacity))
		s.FillRect(area)
		return true, nil
	}

	to := domain.ParseColor(b.Color2, domain.White)
	bands := int(math.Min(MaxGradientBands, math.Max(1, math.Floor(rect.H/2))))
	bh := rect.H / float64(bands)
	for i := 0; i < bands; i++ {
		t := 0.0
		if bands > 1 {
			t = float64(i) / float64(bands-1)
		}
		s.SetColor(from.Lerp(to, t).WithAlpha(opacity))
		s.FillRect(vector.R(rect.X, rect.Y+float64(i)*bh, rect.W, bh))
	}
	return true, nil
}

func (r *Renderer) drawBackgroundSelection(s surface.Surface, rect vector.Rect, panel domain.Panel) {
	area := rect.Intersect(panel.Rect())
	if area.Empty() {
		return
	}
	s.Push()
	defer s.Pop()
	s.SetColor(r.theme.Accent)
	s.SetLineWidth(1.5)
	s.SetDash(5, 3)
	s.StrokeRect(area.Inset(1, 1))
	s.SetDash()
}
