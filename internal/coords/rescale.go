/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package coords

import (
	"errors"
	"fmt"
	"math"

	"comicpage/internal/domain"
)

// ErrInvalidScale is returned for non-finite or non-positive scale factors.
var ErrInvalidScale = errors.New("invalid scale factor")

// Scale holds independent per-axis factors of a page rescale.
type Scale struct {
	X, Y float64
}

// Uniform is the factor applied to sizes that must keep their aspect ratio.
func (s Scale) Uniform() float64 { return math.Min(s.X, s.Y) }

// Extreme flags factors outside [0.1, 10]. Such transforms are allowed but
// usually indicate a unit mistake on the caller's side.
func (s Scale) Extreme() bool {
	return s.X < 0.1 || s.X > 10 || s.Y < 0.1 || s.Y > 10
}

// Validate rejects non-finite or non-positive factors.
func (s Scale) Validate() error {
	for _, v := range [...]float64{s.X, s.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return fmt.Errorf("%w: %v", ErrInvalidScale, v)
		}
	}
	return nil
}

// ComputeScale derives the factors of a page resize.
func ComputeScale(oldW, oldH, newW, newH float64) (Scale, error) {
	s := Scale{X: newW / oldW, Y: newH / oldH}
	if err := s.Validate(); err != nil {
		return Scale{}, err
	}
	return s, nil
}

// RescalePage returns a copy of page resized to newW×newH.
//
// Panels scale on both axes. Characters scale a global position per axis but
// their visual scale by the uniform factor so sprites keep their aspect.
// Balloons, effects, tones and backgrounds scale global position and size per
// axis. Relative coordinates are fractions of panels that have just been
// rescaled and are therefore left as they are.
func RescalePage(page domain.Page, newW, newH float64) (domain.Page, Scale, error) {
	s, err := ComputeScale(page.Width, page.Height, newW, newH)
	if err != nil {
		return page, Scale{}, err
	}
	out := page.Clone()
	out.Width, out.Height = newW, newH
	for i := range out.Panels {
		p := &out.Panels[i]
		p.X, p.Y, p.Width, p.Height = p.X*s.X, p.Y*s.Y, p.Width*s.X, p.Height*s.Y
	}
	for i := range out.Characters {
		c := &out.Characters[i]
		if c.IsGlobalPosition {
			c.X, c.Y = c.X*s.X, c.Y*s.Y
		}
		c.Scale = ClampScale(c.Scale) * s.Uniform()
	}
	for i := range out.Balloons {
		b := &out.Balloons[i]
		if b.IsGlobalPosition {
			b.X, b.Y, b.Width, b.Height = b.X*s.X, b.Y*s.Y, b.Width*s.X, b.Height*s.Y
		}
	}
	for i := range out.Effects {
		e := &out.Effects[i]
		if e.IsGlobalPosition {
			e.X, e.Y, e.Width, e.Height = e.X*s.X, e.Y*s.Y, e.Width*s.X, e.Height*s.Y
		}
	}
	for i := range out.Tones {
		t := &out.Tones[i]
		if t.IsGlobalPosition {
			t.X, t.Y, t.Width, t.Height = t.X*s.X, t.Y*s.Y, t.Width*s.X, t.Height*s.Y
		}
	}
	for i := range out.Backgrounds {
		b := &out.Backgrounds[i]
		if b.IsGlobalPosition {
			b.X, b.Y, b.Width, b.Height = b.X*s.X, b.Y*s.Y, b.Width*s.X, b.Height*s.Y
		}
	}
	return out, s, nil
}
