/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package surface

import (
	"fmt"
	"io"
	"math"

	"github.com/jung-kurt/gofpdf"

	"comicpage/internal/domain"
	"comicpage/internal/vector"
)

// PDF is a vector Surface backed by gofpdf. One page-pixel maps to one point.
// Unlike Raster it honours the multiply and screen blend modes.
type PDF struct {
	pdf   *gofpdf.Fpdf
	w, h  float64
	cur   pdfState
	stack []pdfState
}

type pdfState struct {
	color domain.Color
	width float64
	dash  []float64
	blend domain.BlendMode
	// ends closes the clip/transform groups opened at this level, innermost last.
	ends []func()
}

// NewPDF starts a single-page document of w×h points.
func NewPDF(w, h float64) (*PDF, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("pdf size must be positive, got %vx%v", w, h)
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("comicpage", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 12)
	s := &PDF{pdf: pdf, w: w, h: h, cur: pdfState{color: domain.Black, width: 1, blend: domain.BlendNormal}}
	s.apply()
	return s, nil
}

func (s *PDF) Width() float64  { return s.w }
func (s *PDF) Height() float64 { return s.h }

func (s *PDF) apply() {
	c := s.cur.color
	s.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
	s.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	s.pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
	s.pdf.SetAlpha(float64(c.A)/255, blendName(s.cur.blend))
	s.pdf.SetLineWidth(s.cur.width)
	dash := s.cur.dash
	if dash == nil {
		dash = []float64{}
	}
	s.pdf.SetDashPattern(dash, 0)
}

func blendName(m domain.BlendMode) string {
	switch domain.NormalizeBlend(m) {
	case domain.BlendMultiply:
		return "Multiply"
	case domain.BlendScreen:
		return "Screen"
	default:
		return "Normal"
	}
}

func (s *PDF) Push() {
	saved := s.cur
	saved.dash = append([]float64(nil), s.cur.dash...)
	s.stack = append(s.stack, saved)
	s.cur.ends = nil
}

func (s *PDF) Pop() {
	n := len(s.stack)
	if n == 0 {
		return
	}
	for i := len(s.cur.ends) - 1; i >= 0; i-- {
		s.cur.ends[i]()
	}
	s.cur = s.stack[n-1]
	s.stack = s.stack[:n-1]
	s.apply()
}

func (s *PDF) ClipRect(r vector.Rect) {
	s.pdf.ClipRect(r.X, r.Y, math.Max(0, r.W), math.Max(0, r.H), false)
	s.cur.ends = append(s.cur.ends, s.pdf.ClipEnd)
}

func (s *PDF) RotateAbout(rad float64, c vector.Pt) {
	s.pdf.TransformBegin()
	// gofpdf rotates counter-clockwise in degrees; page space rotates clockwise.
	s.pdf.TransformRotate(-rad*180/math.Pi, c.X, c.Y)
	s.cur.ends = append(s.cur.ends, s.pdf.TransformEnd)
}

func (s *PDF) SetColor(c domain.Color) {
	s.cur.color = c
	s.apply()
}

func (s *PDF) SetLineWidth(w float64) {
	s.cur.width = w
	s.pdf.SetLineWidth(w)
}

func (s *PDF) SetDash(lengths ...float64) {
	s.cur.dash = append([]float64(nil), lengths...)
	s.apply()
}

func (s *PDF) SetBlend(m domain.BlendMode) {
	s.cur.blend = domain.NormalizeBlend(m)
	s.apply()
}

func (s *PDF) Line(a, b vector.Pt)      { s.pdf.Line(a.X, a.Y, b.X, b.Y) }
func (s *PDF) StrokeRect(r vector.Rect) { s.pdf.Rect(r.X, r.Y, r.W, r.H, "D") }
func (s *PDF) FillRect(r vector.Rect)   { s.pdf.Rect(r.X, r.Y, r.W, r.H, "F") }
func (s *PDF) StrokeCircle(c vector.Pt, radius float64) {
	s.pdf.Circle(c.X, c.Y, radius, "D")
}
func (s *PDF) FillCircle(c vector.Pt, radius float64) {
	s.pdf.Circle(c.X, c.Y, radius, "F")
}
func (s *PDF) StrokeEllipse(c vector.Pt, rx, ry float64) {
	s.pdf.Ellipse(c.X, c.Y, rx, ry, 0, "D")
}
func (s *PDF) FillEllipse(c vector.Pt, rx, ry float64) {
	s.pdf.Ellipse(c.X, c.Y, rx, ry, 0, "F")
}

func (s *PDF) Arc(c vector.Pt, radius, from, to float64) {
	// clockwise page angles become counter-clockwise PDF angles with flipped sign
	s.pdf.Arc(c.X, c.Y, radius, radius, 0, -to*180/math.Pi, -from*180/math.Pi, "D")
}

func (s *PDF) FillPolygon(pts []vector.Pt) {
	if len(pts) < 3 {
		return
	}
	ps := make([]gofpdf.PointType, len(pts))
	for i, p := range pts {
		ps[i] = gofpdf.PointType{X: p.X, Y: p.Y}
	}
	s.pdf.Polygon(ps, "F")
}

func (s *PDF) Text(str string, at vector.Pt, size float64) {
	if size <= 0 {
		size = 12
	}
	s.pdf.SetFont("Helvetica", "", size)
	s.pdf.Text(at.X, at.Y, str)
}

// Write finalises the document into w.
func (s *PDF) Write(w io.Writer) error {
	for len(s.stack) > 0 {
		s.Pop()
	}
	if err := s.pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// Save finalises the document into a file.
func (s *PDF) Save(path string) error {
	for len(s.stack) > 0 {
		s.Pop()
	}
	if err := s.pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
