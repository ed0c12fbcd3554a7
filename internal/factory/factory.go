/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package factory creates new page elements with defaulted fields, a
// generated id and a placement that avoids what the panel already holds.
package factory

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"comicpage/internal/domain"
	"comicpage/internal/fit"
	"comicpage/internal/vector"
)

// ErrPanelNotFound is returned when the target panel does not exist.
var ErrPanelNotFound = errors.New("factory: panel not found")

const (
	idAlphabet   = "0123456789abcdefghijklmnopqrstuvwxyz"
	idRandLength = 6
)

// Rand is the source for id suffixes.
type Rand interface {
	Float64() float64
}

// Factory builds element records. The zero value is not usable; call New.
type Factory struct {
	rnd Rand
	now func() time.Time
}

// New returns a factory. Nil arguments select the clock and a time-seeded source.
func New(rnd Rand, now func() time.Time) *Factory {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	return &Factory{rnd: rnd, now: now}
}

// ID returns "<kind>_<unix-millis>_<6 random base36 chars>".
func (f *Factory) ID(kind domain.ElementKind) string {
	var b strings.Builder
	b.WriteString(string(kind))
	b.WriteByte('_')
	b.WriteString(strconv.FormatInt(f.now().UnixMilli(), 10))
	b.WriteByte('_')
	for i := 0; i < idRandLength; i++ {
		n := int(f.rnd.Float64() * float64(len(idAlphabet)))
		if n >= len(idAlphabet) {
			n = len(idAlphabet) - 1
		}
		b.WriteByte(idAlphabet[n])
	}
	return b.String()
}

func (f *Factory) place(pg domain.Page, panelID int, kind domain.ElementKind, et domain.EffectType) (vector.Rect, error) {
	p, ok := pg.PanelByID(panelID)
	if !ok {
		return vector.Rect{}, fmt.Errorf("%w: %d", ErrPanelNotFound, panelID)
	}
	return fit.Place(p, kind, et, fit.Existing(pg, panelID)), nil
}

// next returns one above the highest z-index among the panel's children.
func next(pg domain.Page, panelID int) int {
	z := -1
	see := func(id, v int) {
		if id == panelID && v > z {
			z = v
		}
	}
	for _, c := range pg.Characters {
		see(c.PanelID, c.ZIndex)
	}
	for _, e := range pg.Effects {
		see(e.PanelID, e.ZIndex)
	}
	for _, t := range pg.Tones {
		see(t.PanelID, t.ZIndex)
	}
	return z + 1
}

// NewCharacter returns a standing, front-facing half-body character
// centred on its placement rect.
func (f *Factory) NewCharacter(pg domain.Page, panelID int, name string) (domain.Character, error) {
	r, err := f.place(pg, panelID, domain.KindCharacter, "")
	if err != nil {
		return domain.Character{}, err
	}
	c := r.Center()
	return domain.Character{
		ID:         f.ID(domain.KindCharacter),
		PanelID:    panelID,
		Name:       name,
		X:          c.X,
		Y:          c.Y,
		Scale:      1,
		ViewType:   domain.ViewHalfBody,
		Pose:       domain.PoseStanding,
		Expression: domain.ExpressionNeutral,
		Facing:     domain.FacingFront,
		ZIndex:     next(pg, panelID),
	}, nil
}

// NewEffect returns an effect of type et. Radial types get direction radial.
func (f *Factory) NewEffect(pg domain.Page, panelID int, et domain.EffectType) (domain.Effect, error) {
	switch et {
	case domain.EffectSpeed, domain.EffectFocus, domain.EffectExplosion, domain.EffectFlash:
	default:
		et = domain.EffectSpeed
	}
	r, err := f.place(pg, panelID, domain.KindEffect, et)
	if err != nil {
		return domain.Effect{}, err
	}
	e := domain.Effect{
		ID:        f.ID(domain.KindEffect),
		PanelID:   panelID,
		Type:      et,
		Direction: domain.DirectionHorizontal,
		Intensity: 0.5,
		Density:   0.5,
		Length:    0.7,
		Color:     "#000000",
		Opacity:   1,
		X:         r.X,
		Y:         r.Y,
		Width:     r.W,
		Height:    r.H,
		ZIndex:    next(pg, panelID),
	}
	if et != domain.EffectSpeed {
		e.Direction = domain.DirectionRadial
		e.Density = 0.6
	}
	return e, nil
}

// NewTone returns a tone of the given pattern at half density.
func (f *Factory) NewTone(pg domain.Page, panelID int, pattern domain.TonePattern) (domain.Tone, error) {
	if pattern == "" {
		pattern = domain.PatternHalftone
	}
	r, err := f.place(pg, panelID, domain.KindTone, "")
	if err != nil {
		return domain.Tone{}, err
	}
	return domain.Tone{
		ID:        f.ID(domain.KindTone),
		PanelID:   panelID,
		Pattern:   pattern,
		Density:   0.5,
		Opacity:   0.8,
		Scale:     1,
		BlendMode: domain.BlendMultiply,
		Color:     "#000000",
		X:         r.X,
		Y:         r.Y,
		Width:     r.W,
		Height:    r.H,
		ZIndex:    next(pg, panelID),
	}, nil
}

// NewBackground returns a solid fill covering the whole panel, stacked
// below the panel's existing backgrounds.
func (f *Factory) NewBackground(pg domain.Page, panelID int, color string) (domain.Background, error) {
	r, err := f.place(pg, panelID, domain.KindBackground, "")
	if err != nil {
		return domain.Background{}, err
	}
	z := 0
	for _, b := range pg.Backgrounds {
		if b.PanelID == panelID && b.ZIndex <= z {
			z = b.ZIndex - 1
		}
	}
	return domain.Background{
		ID:      f.ID(domain.KindBackground),
		PanelID: panelID,
		Kind:    domain.BackgroundSolid,
		Color:   color,
		Opacity: 1,
		X:       r.X,
		Y:       r.Y,
		Width:   r.W,
		Height:  r.H,
		ZIndex:  z,
	}, nil
}

// NewBalloon returns a balloon record in the panel's upper right area.
func (f *Factory) NewBalloon(pg domain.Page, panelID int, text string) (domain.Balloon, error) {
	r, err := f.place(pg, panelID, domain.KindBalloon, "")
	if err != nil {
		return domain.Balloon{}, err
	}
	return domain.Balloon{
		ID:      f.ID(domain.KindBalloon),
		PanelID: panelID,
		Text:    text,
		X:       r.X,
		Y:       r.Y,
		Width:   r.W,
		Height:  r.H,
	}, nil
}
