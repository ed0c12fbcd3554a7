/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import "strings"

// ViewType is how much of a character is shown.
type ViewType string

const (
	ViewFace     ViewType = "face"
	ViewHalfBody ViewType = "half_body"
	ViewFullBody ViewType = "full_body"
)

// Pose selects the limb geometry of a character.
type Pose string

const (
	PoseStanding    Pose = "standing"
	PoseSitting     Pose = "sitting"
	PoseWalking     Pose = "walking"
	PosePointing    Pose = "pointing"
	PoseWaving      Pose = "waving"
	PoseArmsCrossed Pose = "arms_crossed"
	PoseThinking    Pose = "thinking"
)

// Expression selects the eyes/mouth drawn on the head.
type Expression string

const (
	ExpressionNeutral   Expression = "neutral"
	ExpressionHappy     Expression = "happy"
	ExpressionSad       Expression = "sad"
	ExpressionAngry     Expression = "angry"
	ExpressionSurprised Expression = "surprised"
)

// Facing is the direction a character looks towards.
type Facing string

const (
	FacingFront      Facing = "front"
	FacingBack       Facing = "back"
	FacingLeft       Facing = "left"
	FacingRight      Facing = "right"
	FacingFrontLeft  Facing = "front_left"
	FacingFrontRight Facing = "front_right"
	FacingBackLeft   Facing = "back_left"
	FacingBackRight  Facing = "back_right"
)

// EffectType is the line-burst flavour.
type EffectType string

const (
	EffectSpeed     EffectType = "speed"
	EffectFocus     EffectType = "focus"
	EffectExplosion EffectType = "explosion"
	EffectFlash     EffectType = "flash"
)

// EffectDirection picks the directional or radial family.
type EffectDirection string

const (
	DirectionHorizontal EffectDirection = "horizontal"
	DirectionVertical   EffectDirection = "vertical"
	DirectionRadial     EffectDirection = "radial"
	DirectionCustom     EffectDirection = "custom"
)

// IsRadial reports whether the effect draws from a centre point.
func (e Effect) IsRadial() bool {
	switch e.Type {
	case EffectFocus, EffectExplosion, EffectFlash:
		return true
	}
	return e.Direction == DirectionRadial
}

// TonePattern is the screen-tone kind.
type TonePattern string

const (
	PatternHalftone   TonePattern = "halftone"
	PatternDots       TonePattern = "dots"
	PatternCrosshatch TonePattern = "crosshatch"
	PatternLines      TonePattern = "lines"
	PatternGradient   TonePattern = "gradient"
	PatternNoise      TonePattern = "noise"
)

// BlendMode is the compositing mode requested by a tone.
type BlendMode string

const (
	BlendNormal   BlendMode = "normal"
	BlendMultiply BlendMode = "multiply"
	BlendScreen   BlendMode = "screen"
)

// NormalizeBlend maps a requested mode onto the allow-list; anything unknown is normal.
func NormalizeBlend(m BlendMode) BlendMode {
	switch BlendMode(strings.ToLower(strings.TrimSpace(string(m)))) {
	case BlendMultiply:
		return BlendMultiply
	case BlendScreen:
		return BlendScreen
	default:
		return BlendNormal
	}
}

// BackgroundKind selects the background fill style.
type BackgroundKind string

const (
	BackgroundSolid    BackgroundKind = "solid"
	BackgroundGradient BackgroundKind = "gradient"
)

// ElementKind names an element collection; used by fitting, factory and hit results.
type ElementKind string

const (
	KindPanel      ElementKind = "panel"
	KindCharacter  ElementKind = "character"
	KindEffect     ElementKind = "effect"
	KindTone       ElementKind = "tone"
	KindBackground ElementKind = "background"
	KindBalloon    ElementKind = "balloon"
)

// SplitAxis selects how a panel is halved.
type SplitAxis string

const (
	// SplitHorizontal cuts with a horizontal line: the height is halved.
	SplitHorizontal SplitAxis = "horizontal"
	// SplitVertical cuts with a vertical line: the width is halved.
	SplitVertical SplitAxis = "vertical"
)
