/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Snapping helpers used while dragging panels. They are UI-agnostic and
// deterministic so that frontends can render the returned guides as-is.

import "math"

// Guide describes a visual alignment line produced by a snap.
// Orientation is "vertical" or "horizontal"; Kind is "edge" or "center".
type Guide struct {
	Orientation string
	Kind        string
	Position    float64
	From        Pt
	To          Pt
}

type feature struct {
	pos  float64
	kind string
}

func xFeatures(r Rect, centers bool) []feature {
	fs := []feature{{r.X, "edge"}, {r.X + r.W, "edge"}}
	if centers {
		fs = append(fs, feature{r.X + r.W/2, "center"})
	}
	return fs
}

func yFeatures(r Rect, centers bool) []feature {
	fs := []feature{{r.Y, "edge"}, {r.Y + r.H, "edge"}}
	if centers {
		fs = append(fs, feature{r.Y + r.H/2, "center"})
	}
	return fs
}

// Snap aligns moving to the nearest edge (or centre) of any anchor within
// threshold, independently per axis. Edges snap to edges including abutting
// edges; centres only snap to centres.
func Snap(moving Rect, anchors []Rect, threshold float64, centers bool) (Rect, []Guide) {
	if threshold <= 0 {
		threshold = 6
	}
	bestX, bestY := math.Inf(1), math.Inf(1)
	var dx, dy float64
	var gx, gy Guide
	for _, a := range anchors {
		for _, mf := range xFeatures(moving, centers) {
			for _, af := range xFeatures(a, centers) {
				if mf.kind != af.kind {
					continue
				}
				d := af.pos - mf.pos
				if math.Abs(d) <= threshold && math.Abs(d) < bestX {
					bestX, dx = math.Abs(d), d
					p := FloatRound(af.pos, 3)
					gx = Guide{Orientation: "vertical", Kind: af.kind, Position: p,
						From: Pt{p, math.Min(moving.Y, a.Y)}, To: Pt{p, math.Max(moving.Y+moving.H, a.Y+a.H)}}
				}
			}
		}
		for _, mf := range yFeatures(moving, centers) {
			for _, af := range yFeatures(a, centers) {
				if mf.kind != af.kind {
					continue
				}
				d := af.pos - mf.pos
				if math.Abs(d) <= threshold && math.Abs(d) < bestY {
					bestY, dy = math.Abs(d), d
					p := FloatRound(af.pos, 3)
					gy = Guide{Orientation: "horizontal", Kind: af.kind, Position: p,
						From: Pt{math.Min(moving.X, a.X), p}, To: Pt{math.Max(moving.X+moving.W, a.X+a.W), p}}
				}
			}
		}
	}
	var guides []Guide
	out := moving
	if !math.IsInf(bestX, 1) {
		out.X = FloatRound(moving.X+dx, 3)
		guides = append(guides, gx)
	}
	if !math.IsInf(bestY, 1) {
		out.Y = FloatRound(moving.Y+dy, 3)
		guides = append(guides, gy)
	}
	return out, guides
}
