/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package surface

import (
	"comicpage/internal/domain"
	"comicpage/internal/vector"
)

// OpKind names a recorded primitive.
type OpKind string

const (
	OpLine          OpKind = "line"
	OpStrokeRect    OpKind = "stroke_rect"
	OpFillRect      OpKind = "fill_rect"
	OpStrokeCircle  OpKind = "stroke_circle"
	OpFillCircle    OpKind = "fill_circle"
	OpStrokeEllipse OpKind = "stroke_ellipse"
	OpFillEllipse   OpKind = "fill_ellipse"
	OpArc           OpKind = "arc"
	OpPolygon       OpKind = "polygon"
	OpText          OpKind = "text"
)

// Op is one recorded primitive with the state it was drawn with.
type Op struct {
	Kind      OpKind
	Points    []vector.Pt
	Rect      vector.Rect
	Radius    float64
	Text      string
	Color     domain.Color
	LineWidth float64
	Dashed    bool
	Blend     domain.BlendMode
	Clip      vector.Rect // zero when unclipped
	Clipped   bool
	Rotation  float64
}

type recState struct {
	color    domain.Color
	width    float64
	dashed   bool
	blend    domain.BlendMode
	clip     vector.Rect
	clipped  bool
	rotation float64
}

// Recorder is a Surface that keeps every primitive in memory. It draws
// nothing; tests use it to assert counts, colours and clips exactly.
type Recorder struct {
	W, H  float64
	Ops   []Op
	cur   recState
	stack []recState
}

// NewRecorder returns an empty recorder of the given page size.
func NewRecorder(w, h float64) *Recorder {
	return &Recorder{W: w, H: h, cur: recState{color: domain.Black, width: 1, blend: domain.BlendNormal}}
}

func (r *Recorder) Width() float64  { return r.W }
func (r *Recorder) Height() float64 { return r.H }

func (r *Recorder) Push() { r.stack = append(r.stack, r.cur) }
func (r *Recorder) Pop() {
	if n := len(r.stack); n > 0 {
		r.cur = r.stack[n-1]
		r.stack = r.stack[:n-1]
	}
}

// Depth returns the number of unbalanced Push calls.
func (r *Recorder) Depth() int { return len(r.stack) }

func (r *Recorder) ClipRect(c vector.Rect) {
	if r.cur.clipped {
		c = r.cur.clip.Intersect(c)
	}
	r.cur.clip, r.cur.clipped = c, true
}

func (r *Recorder) RotateAbout(rad float64, _ vector.Pt) { r.cur.rotation += rad }
func (r *Recorder) SetColor(c domain.Color)              { r.cur.color = c }
func (r *Recorder) SetLineWidth(w float64)               { r.cur.width = w }
func (r *Recorder) SetDash(lengths ...float64)           { r.cur.dashed = len(lengths) > 0 }
func (r *Recorder) SetBlend(m domain.BlendMode)          { r.cur.blend = domain.NormalizeBlend(m) }

func (r *Recorder) add(op Op) {
	op.Color = r.cur.color
	op.LineWidth = r.cur.width
	op.Dashed = r.cur.dashed
	op.Blend = r.cur.blend
	op.Clip, op.Clipped = r.cur.clip, r.cur.clipped
	op.Rotation = r.cur.rotation
	r.Ops = append(r.Ops, op)
}

func (r *Recorder) Line(a, b vector.Pt)      { r.add(Op{Kind: OpLine, Points: []vector.Pt{a, b}}) }
func (r *Recorder) StrokeRect(x vector.Rect) { r.add(Op{Kind: OpStrokeRect, Rect: x}) }
func (r *Recorder) FillRect(x vector.Rect)   { r.add(Op{Kind: OpFillRect, Rect: x}) }
func (r *Recorder) StrokeCircle(c vector.Pt, radius float64) {
	r.add(Op{Kind: OpStrokeCircle, Points: []vector.Pt{c}, Radius: radius})
}
func (r *Recorder) FillCircle(c vector.Pt, radius float64) {
	r.add(Op{Kind: OpFillCircle, Points: []vector.Pt{c}, Radius: radius})
}
func (r *Recorder) StrokeEllipse(c vector.Pt, rx, ry float64) {
	r.add(Op{Kind: OpStrokeEllipse, Points: []vector.Pt{c}, Rect: vector.CenteredAt(c, 2*rx, 2*ry)})
}
func (r *Recorder) FillEllipse(c vector.Pt, rx, ry float64) {
	r.add(Op{Kind: OpFillEllipse, Points: []vector.Pt{c}, Rect: vector.CenteredAt(c, 2*rx, 2*ry)})
}
func (r *Recorder) Arc(c vector.Pt, radius, _, _ float64) {
	r.add(Op{Kind: OpArc, Points: []vector.Pt{c}, Radius: radius})
}
func (r *Recorder) FillPolygon(pts []vector.Pt) {
	r.add(Op{Kind: OpPolygon, Points: append([]vector.Pt(nil), pts...)})
}
func (r *Recorder) Text(s string, at vector.Pt, size float64) {
	r.add(Op{Kind: OpText, Points: []vector.Pt{at}, Text: s, Radius: size})
}

// Reset drops all recorded ops and state.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
	r.stack = r.stack[:0]
	r.cur = recState{color: domain.Black, width: 1, blend: domain.BlendNormal}
}

// Count returns how many ops of the given kinds were recorded.
func (r *Recorder) Count(kinds ...OpKind) int {
	n := 0
	for _, op := range r.Ops {
		for _, k := range kinds {
			if op.Kind == k {
				n++
				break
			}
		}
	}
	return n
}
