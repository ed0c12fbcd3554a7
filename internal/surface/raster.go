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
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"comicpage/internal/domain"
	"comicpage/internal/vector"
)

// Raster is a Surface backed by a fogleman/gg context. Blend modes are
// accepted but composited as normal: gg has no separable blend support.
type Raster struct {
	dc    *gg.Context
	font  *truetype.Font
	faces map[float64]font.Face
	scale float64
}

// NewRaster allocates a w×h pixel surface cleared to bg.
func NewRaster(w, h int, bg domain.Color) (*Raster, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("raster size must be positive, got %dx%d", w, h)
	}
	f, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	dc := gg.NewContext(w, h)
	dc.SetColor(nrgba(bg))
	dc.Clear()
	dc.SetColor(color.Black)
	dc.SetLineWidth(1)
	return &Raster{dc: dc, font: f, faces: make(map[float64]font.Face), scale: 1}, nil
}

// NewRasterScaled allocates a surface of w×h logical units rendered at
// scale pixels per unit, e.g. 300.0/72 for print output of a point-sized page.
func NewRasterScaled(w, h, scale float64, bg domain.Color) (*Raster, error) {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return nil, fmt.Errorf("raster scale must be positive, got %v", scale)
	}
	r, err := NewRaster(int(math.Ceil(w*scale)), int(math.Ceil(h*scale)), bg)
	if err != nil {
		return nil, err
	}
	r.scale = scale
	r.dc.Scale(scale, scale)
	return r, nil
}

func nrgba(c domain.Color) color.NRGBA { return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A} }

func (r *Raster) Width() float64  { return float64(r.dc.Width()) / r.scale }
func (r *Raster) Height() float64 { return float64(r.dc.Height()) / r.scale }

func (r *Raster) Push() { r.dc.Push() }
func (r *Raster) Pop()  { r.dc.Pop() }

func (r *Raster) ClipRect(c vector.Rect) {
	r.dc.DrawRectangle(c.X, c.Y, math.Max(0, c.W), math.Max(0, c.H))
	r.dc.Clip()
}

func (r *Raster) RotateAbout(rad float64, c vector.Pt) { r.dc.RotateAbout(rad, c.X, c.Y) }
func (r *Raster) SetColor(c domain.Color)              { r.dc.SetColor(nrgba(c)) }
func (r *Raster) SetLineWidth(w float64)               { r.dc.SetLineWidth(w) }
func (r *Raster) SetDash(lengths ...float64)           { r.dc.SetDash(lengths...) }
func (r *Raster) SetBlend(domain.BlendMode)            {}

func (r *Raster) Line(a, b vector.Pt) {
	r.dc.DrawLine(a.X, a.Y, b.X, b.Y)
	r.dc.Stroke()
}

func (r *Raster) StrokeRect(x vector.Rect) {
	r.dc.DrawRectangle(x.X, x.Y, x.W, x.H)
	r.dc.Stroke()
}

func (r *Raster) FillRect(x vector.Rect) {
	r.dc.DrawRectangle(x.X, x.Y, x.W, x.H)
	r.dc.Fill()
}

func (r *Raster) StrokeCircle(c vector.Pt, radius float64) {
	r.dc.DrawCircle(c.X, c.Y, radius)
	r.dc.Stroke()
}

func (r *Raster) FillCircle(c vector.Pt, radius float64) {
	r.dc.DrawCircle(c.X, c.Y, radius)
	r.dc.Fill()
}

func (r *Raster) StrokeEllipse(c vector.Pt, rx, ry float64) {
	r.dc.DrawEllipse(c.X, c.Y, rx, ry)
	r.dc.Stroke()
}

func (r *Raster) FillEllipse(c vector.Pt, rx, ry float64) {
	r.dc.DrawEllipse(c.X, c.Y, rx, ry)
	r.dc.Fill()
}

func (r *Raster) Arc(c vector.Pt, radius, from, to float64) {
	r.dc.NewSubPath()
	r.dc.DrawArc(c.X, c.Y, radius, from, to)
	r.dc.Stroke()
}

func (r *Raster) FillPolygon(pts []vector.Pt) {
	if len(pts) < 3 {
		return
	}
	r.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		r.dc.LineTo(p.X, p.Y)
	}
	r.dc.ClosePath()
	r.dc.Fill()
}

func (r *Raster) Text(s string, at vector.Pt, size float64) {
	if size <= 0 {
		size = 12
	}
	face, ok := r.faces[size]
	if !ok {
		face = truetype.NewFace(r.font, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
		r.faces[size] = face
	}
	r.dc.SetFontFace(face)
	r.dc.DrawString(s, at.X, at.Y)
}

// Image returns the rendered pixels.
func (r *Raster) Image() image.Image { return r.dc.Image() }

// EncodePNG writes the surface as PNG.
func (r *Raster) EncodePNG(w io.Writer) error { return r.dc.EncodePNG(w) }

// SavePNG writes the surface to a PNG file.
func (r *Raster) SavePNG(path string) error {
	if err := r.dc.SavePNG(path); err != nil {
		return fmt.Errorf("save png: %w", err)
	}
	return nil
}
