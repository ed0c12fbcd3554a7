/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import (
	"math"
	"testing"
)

func TestRectContainsAndInset(t *testing.T) {
	r := R(10, 20, 100, 50)
	if !r.Contains(Pt{10, 20}) || !r.Contains(Pt{110, 70}) {
		t.Fatalf("expected edge points to be contained")
	}
	in := r.Inset(5, 5)
	if in.X != 15 || in.Y != 25 || in.W != 90 || in.H != 40 {
		t.Fatalf("unexpected inset: %+v", in)
	}
}

func TestRectIntersect(t *testing.T) {
	a := R(0, 0, 100, 100)
	b := R(50, 60, 100, 100)
	got := a.Intersect(b)
	if got != R(50, 60, 50, 40) {
		t.Fatalf("unexpected intersection: %+v", got)
	}
	if !a.Overlaps(b) {
		t.Fatalf("expected overlap")
	}
	if a.Overlaps(R(100, 0, 10, 10)) {
		t.Fatalf("touching rects must not overlap")
	}
	if !a.Intersect(R(200, 200, 5, 5)).Empty() {
		t.Fatalf("disjoint intersection should be empty")
	}
}

func TestAffineBasic(t *testing.T) {
	m := Translate(10, 5).Mul(Scale(2, 3))
	p := m.Apply(Pt{1, 1})
	if p.X != 12 || p.Y != 8 { // (1*2+10, 1*3+5)
		t.Fatalf("unexpected transform result: %+v", p)
	}
}

func TestRotateAboutRoundTrip(t *testing.T) {
	m := RotateAbout(DegToRad(90), Pt{50, 50})
	p := m.Apply(Pt{100, 50})
	if math.Abs(p.X-50) > 1e-9 || math.Abs(p.Y-100) > 1e-9 {
		t.Fatalf("unexpected rotation: %+v", p)
	}
	back := m.Invert().Apply(p)
	if math.Abs(back.X-100) > 1e-9 || math.Abs(back.Y-50) > 1e-9 {
		t.Fatalf("inverse did not round-trip: %+v", back)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-1, 0, 1) != 0 || Clamp(2, 0, 1) != 1 || Clamp(0.5, 0, 1) != 0.5 {
		t.Fatalf("clamp bounds wrong")
	}
	if Clamp(math.NaN(), 0.5, 5) != 0.5 {
		t.Fatalf("NaN should clamp to lower bound")
	}
}
