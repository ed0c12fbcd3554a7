/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// This file defines the page model consumed by the renderers: panels plus
// per-type element collections that reference their owning panel by id.
// Element coordinates are panel-relative fractions unless IsGlobalPosition
// is set, in which case they are page-absolute pixels.

import "comicpage/internal/vector"

// Page is one comic page: its pixel size, its panels in drawing order and
// the element collections hosted by those panels.
type Page struct {
	Width       float64      `json:"width"`
	Height      float64      `json:"height"`
	Panels      []Panel      `json:"panels"`
	Characters  []Character  `json:"characters,omitempty"`
	Effects     []Effect     `json:"effects,omitempty"`
	Tones       []Tone       `json:"tones,omitempty"`
	Backgrounds []Background `json:"backgrounds,omitempty"`
	Balloons    []Balloon    `json:"balloons,omitempty"`
}

// Panel defines a panel region in page-pixel units.
type Panel struct {
	ID     int     `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect returns the panel geometry.
func (p Panel) Rect() vector.Rect { return vector.R(p.X, p.Y, p.Width, p.Height) }

// WithRect returns a copy of p with the given geometry.
func (p Panel) WithRect(r vector.Rect) Panel {
	p.X, p.Y, p.Width, p.Height = r.X, r.Y, r.W, r.H
	return p
}

// Character is a procedurally drawn figure. X and Y locate its centre.
type Character struct {
	ID               string     `json:"id"`
	PanelID          int        `json:"panelId"`
	Name             string     `json:"name,omitempty"`
	X                float64    `json:"x"`
	Y                float64    `json:"y"`
	Scale            float64    `json:"scale"`
	ViewType         ViewType   `json:"viewType"`
	Pose             Pose       `json:"pose"`
	Expression       Expression `json:"expression,omitempty"`
	Facing           Facing     `json:"facing,omitempty"`
	Rotation         float64    `json:"rotation,omitempty"` // degrees, clockwise
	IsGlobalPosition bool       `json:"isGlobalPosition,omitempty"`
	ZIndex           int        `json:"zIndex"`
}

// Effect is a line-burst overlay.
type Effect struct {
	ID               string          `json:"id"`
	PanelID          int             `json:"panelId"`
	Type             EffectType      `json:"type"`
	Direction        EffectDirection `json:"direction"`
	Intensity        float64         `json:"intensity"`
	Density          float64         `json:"density"`
	Length           float64         `json:"length"`
	Angle            float64         `json:"angle,omitempty"` // degrees, custom direction only
	Color            string          `json:"color,omitempty"`
	Opacity          float64         `json:"opacity"`
	Blur             float64         `json:"blur,omitempty"`
	CenterX          *float64        `json:"centerX,omitempty"` // fraction of the effect rect
	CenterY          *float64        `json:"centerY,omitempty"`
	X                float64         `json:"x"`
	Y                float64         `json:"y"`
	Width            float64         `json:"width"`
	Height           float64         `json:"height"`
	IsGlobalPosition bool            `json:"isGlobalPosition,omitempty"`
	ZIndex           int             `json:"zIndex"`
}

// Tone is a screen-tone pattern fill.
type Tone struct {
	ID               string      `json:"id"`
	PanelID          int         `json:"panelId"`
	Pattern          TonePattern `json:"pattern"`
	Density          float64     `json:"density"`
	Opacity          float64     `json:"opacity"`
	Rotation         float64     `json:"rotation,omitempty"` // degrees
	Scale            float64     `json:"scale"`
	BlendMode        BlendMode   `json:"blendMode,omitempty"`
	Invert           bool        `json:"invert,omitempty"`
	Color            string      `json:"color,omitempty"`
	X                float64     `json:"x"`
	Y                float64     `json:"y"`
	Width            float64     `json:"width"`
	Height           float64     `json:"height"`
	IsGlobalPosition bool        `json:"isGlobalPosition,omitempty"`
	ZIndex           int         `json:"zIndex"`
}

// Background is a flat or two-colour gradient panel fill.
type Background struct {
	ID               string         `json:"id"`
	PanelID          int            `json:"panelId"`
	Kind             BackgroundKind `json:"kind"`
	Color            string         `json:"color,omitempty"`
	Color2           string         `json:"color2,omitempty"`
	Opacity          float64        `json:"opacity"`
	X                float64        `json:"x"`
	Y                float64        `json:"y"`
	Width            float64        `json:"width"`
	Height           float64        `json:"height"`
	IsGlobalPosition bool           `json:"isGlobalPosition,omitempty"`
	ZIndex           int            `json:"zIndex"`
}

// Balloon is a lettering element. This core only rescales balloons; their
// drawing belongs to the lettering collaborator.
type Balloon struct {
	ID               string  `json:"id"`
	PanelID          int     `json:"panelId"`
	Text             string  `json:"text,omitempty"`
	X                float64 `json:"x"`
	Y                float64 `json:"y"`
	Width            float64 `json:"width"`
	Height           float64 `json:"height"`
	IsGlobalPosition bool    `json:"isGlobalPosition,omitempty"`
}

// Selection holds at most one selected element per type. Zero values mean
// "nothing selected" (panel ids start at 1).
type Selection struct {
	PanelID      int    `json:"panelId,omitempty"`
	CharacterID  string `json:"characterId,omitempty"`
	EffectID     string `json:"effectId,omitempty"`
	ToneID       string `json:"toneId,omitempty"`
	BackgroundID string `json:"backgroundId,omitempty"`
}

// Modes carries host-controlled interaction flags.
type Modes struct {
	PanelEditMode bool `json:"panelEditMode,omitempty"`
}

// PanelByID returns the panel with the given id.
func (pg *Page) PanelByID(id int) (Panel, bool) {
	for _, p := range pg.Panels {
		if p.ID == id {
			return p, true
		}
	}
	return Panel{}, false
}

// Clone returns a deep copy so that edits yield a new page version without
// touching the previous one.
func (pg Page) Clone() Page {
	out := pg
	out.Panels = append([]Panel(nil), pg.Panels...)
	out.Characters = append([]Character(nil), pg.Characters...)
	out.Tones = append([]Tone(nil), pg.Tones...)
	out.Backgrounds = append([]Background(nil), pg.Backgrounds...)
	out.Balloons = append([]Balloon(nil), pg.Balloons...)
	out.Effects = make([]Effect, len(pg.Effects))
	for i, e := range pg.Effects {
		if e.CenterX != nil {
			v := *e.CenterX
			e.CenterX = &v
		}
		if e.CenterY != nil {
			v := *e.CenterY
			e.CenterY = &v
		}
		out.Effects[i] = e
	}
	if pg.Effects == nil {
		out.Effects = nil
	}
	return out
}
