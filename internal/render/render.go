/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render draws a comic page onto a surface.Surface: panel frames
// first, then each panel's backgrounds, tones, effects and characters in
// ascending z-order, then selection overlays. It also answers hit tests
// against the same geometry.
//
// Renderers keep no state between calls. Everything that varies per call
// (theme, random source, selection, mode flags) is passed in explicitly.
package render

import (
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"comicpage/internal/coords"
	"comicpage/internal/domain"
	applog "comicpage/internal/log"
	"comicpage/internal/surface"
)

// ErrNilSurface is returned when a draw call receives no surface.
var ErrNilSurface = errors.New("render: nil surface")

// DefaultHandleSize is used when Options leaves HandleSize zero.
const DefaultHandleSize = 8.0

// ToneFallbackArea is the tone area in square page units above which a tone
// is drawn as a flat fill instead of its pattern. It is not configurable.
const ToneFallbackArea = 50000.0

// Rand is the random source consumed by procedural patterns. *rand.Rand
// satisfies it; tests inject a deterministic sequence.
type Rand interface {
	Float64() float64
}

// NewRand returns a seeded source. A zero seed draws from the clock.
func NewRand(seed int64) Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Frame is the host state for one draw call.
type Frame struct {
	Page      domain.Page
	Selection domain.Selection
	Modes     domain.Modes
}

// Options configures a Renderer.
type Options struct {
	Theme      Theme
	Rand       Rand
	HandleSize float64
	Logger     *slog.Logger
}

// Renderer bundles the options shared by all element renderers.
type Renderer struct {
	theme      Theme
	rnd        Rand
	handleSize float64
	log        *slog.Logger
}

// New builds a Renderer, filling unset options with defaults.
func New(opts Options) *Renderer {
	r := &Renderer{
		theme:      opts.Theme,
		rnd:        opts.Rand,
		handleSize: opts.HandleSize,
		log:        opts.Logger,
	}
	if r.theme.isZero() {
		r.theme = LightTheme()
	}
	if r.rnd == nil {
		r.rnd = NewRand(0)
	}
	if r.handleSize <= 0 {
		r.handleSize = DefaultHandleSize
	}
	if r.log == nil {
		r.log = applog.WithComponent("render")
	}
	return r
}

// Theme returns the theme the renderer draws with.
func (r *Renderer) Theme() Theme { return r.theme }

// HandleSize returns the edge length of square selection handles.
func (r *Renderer) HandleSize() float64 { return r.handleSize }

// between returns a uniform value in [lo, hi) from the renderer's source.
func (r *Renderer) between(lo, hi float64) float64 { return lo + (hi-lo)*r.rnd.Float64() }

func resolver(pg domain.Page) coords.Resolver { return coords.NewResolver(pg.Panels) }

func checkSurface(s surface.Surface) error {
	if s == nil {
		return ErrNilSurface
	}
	return nil
}
