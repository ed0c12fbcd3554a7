/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export writes one finished page to a PNG or PDF file.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"comicpage/internal/render"
	"comicpage/internal/scene"
	"comicpage/internal/surface"
)

// PresetName represents a named export preset.
type PresetName string

const (
	PresetWeb   PresetName = "web"
	PresetPrint PresetName = "print"
)

// Options controls page export.
//
// Pages are exported without selection overlays or edit handles unless
// Chrome is set; those belong to the editor, not the printed page.
type Options struct {
	Preset PresetName
	DPI    int  // when > 0 overrides the preset resolution
	Chrome bool // keep selection and edit decorations
}

// Resolution returns the raster DPI: the override, else 72 for web and
// 300 for print. Page units are points, so 72 DPI is one pixel per unit.
func (o Options) Resolution() int {
	if o.DPI > 0 {
		return o.DPI
	}
	if o.Preset == PresetPrint {
		return 300
	}
	return 72
}

// ParsePreset accepts "web" or "print" in any case; empty means web.
func ParsePreset(s string) (PresetName, error) {
	switch p := PresetName(strings.ToLower(strings.TrimSpace(s))); p {
	case "", PresetWeb:
		return PresetWeb, nil
	case PresetPrint:
		return PresetPrint, nil
	default:
		return "", fmt.Errorf("unknown export preset %q", s)
	}
}

func frame(doc scene.Document, chrome bool) render.Frame {
	f := render.Frame{Page: doc.Page}
	if chrome {
		f.Selection, f.Modes = doc.Selection, doc.Modes
	}
	return f
}

// Raster draws doc at the preset resolution.
func Raster(r *render.Renderer, doc scene.Document, opt Options) (*surface.Raster, error) {
	scale := float64(opt.Resolution()) / 72
	s, err := surface.NewRasterScaled(doc.Page.Width, doc.Page.Height, scale, r.Theme().Paper)
	if err != nil {
		return nil, err
	}
	if err := r.Draw(s, frame(doc, opt.Chrome)); err != nil {
		return nil, fmt.Errorf("draw page: %w", err)
	}
	return s, nil
}

// PNG writes doc as a PNG image to w.
func PNG(r *render.Renderer, doc scene.Document, w io.Writer, opt Options) error {
	s, err := Raster(r, doc, opt)
	if err != nil {
		return err
	}
	if err := s.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// PDF writes doc as a single-page vector PDF. Resolution does not apply.
func PDF(r *render.Renderer, doc scene.Document, w io.Writer, opt Options) error {
	s, err := surface.NewPDF(doc.Page.Width, doc.Page.Height)
	if err != nil {
		return err
	}
	if err := r.Draw(s, frame(doc, opt.Chrome)); err != nil {
		return fmt.Errorf("draw page: %w", err)
	}
	return s.Write(w)
}

// File exports doc to path, choosing the format from its extension.
func File(r *render.Renderer, doc scene.Document, path string, opt Options) error {
	var write func(*render.Renderer, scene.Document, io.Writer, Options) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		write = PNG
	case ".pdf":
		write = PDF
	default:
		return fmt.Errorf("unsupported export format %q", ext)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(r, doc, f, opt); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
