/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"math"

	"comicpage/internal/coords"
	"comicpage/internal/domain"
	"comicpage/internal/surface"
	"comicpage/internal/vector"
)

// layoutFigure places head, torso and limb joints inside the character rect.
func layoutFigure(c domain.Character, rect vector.Rect, face facingProfile) figure {
	f := figure{rect: rect, limbWidth: math.Max(1.5, rect.W*0.06)}
	cx := rect.X + rect.W/2
	switch c.ViewType {
	case domain.ViewFace:
		f.headR = math.Min(rect.W, rect.H) * 0.45
		f.head = rect.Center()
		f.torsoOnly = true
	case domain.ViewFullBody:
		f.headR = math.Min(rect.H*0.11, rect.W*0.4)
		f.head = vector.Pt{X: cx, Y: rect.Y + f.headR + 1}
		f.hasLegs = true
	default:
		f.headR = math.Min(rect.H*0.2, rect.W*0.35)
		f.head = vector.Pt{X: cx, Y: rect.Y + f.headR + 1}
	}
	f.chin = vector.Pt{X: f.head.X, Y: f.head.Y + f.headR}
	if f.torsoOnly {
		return f
	}

	half := rect.W * 0.3 * face.torsoWidth
	shoulderY := f.chin.Y + rect.H*0.03
	hipY := rect.Y + rect.H
	if f.hasLegs {
		hipY = rect.Y + rect.H*0.58
		if c.Pose == domain.PoseSitting {
			hipY = rect.Y + rect.H*0.62
		}
	}
	f.shoulderL = vector.Pt{X: cx - half, Y: shoulderY}
	f.shoulderR = vector.Pt{X: cx + half, Y: shoulderY}
	f.hipL = vector.Pt{X: cx - half*0.7, Y: hipY}
	f.hipR = vector.Pt{X: cx + half*0.7, Y: hipY}
	f.armLen = (hipY - shoulderY) * 0.95
	if !f.hasLegs {
		f.armLen = (hipY - shoulderY) * 0.8
	}
	f.legLen = rect.Y + rect.H - hipY
	return f
}

// DrawCharacter draws one character inside its panel. Characters whose
// panel is missing are skipped and reported as not drawn.
func (r *Renderer) DrawCharacter(s surface.Surface, c domain.Character, res coords.Resolver) (bool, error) {
	if err := checkSurface(s); err != nil {
		return false, err
	}
	rect, panel, ok := res.Character(c)
	if !ok {
		return false, nil
	}
	s.Push()
	defer s.Pop()
	s.ClipRect(panel.Rect())
	if c.Rotation != 0 {
		s.RotateAbout(vector.DegToRad(c.Rotation), rect.Center())
	}

	face := lookupFacing(c.Facing)
	pose := lookupPose(c.Pose)
	f := layoutFigure(c, rect, face)

	if !f.torsoOnly {
		torso := []vector.Pt{f.shoulderL, f.shoulderR, f.hipR, f.hipL}
		s.SetColor(r.theme.Cloth)
		s.FillPolygon(torso)
		s.SetColor(r.theme.Ink)
		s.SetLineWidth(1.5)
		closedPath(s, torso)

		s.SetLineWidth(f.limbWidth)
		for _, limb := range visibleLimbs(f, pose, face) {
			polyline(s, limb)
		}
	}

	s.SetColor(r.theme.Skin)
	s.FillCircle(f.head, f.headR)
	s.SetColor(r.theme.Ink)
	s.SetLineWidth(1.5)
	s.StrokeCircle(f.head, f.headR)
	if face.back {
		r.drawHair(s, f)
	} else {
		r.drawFace(s, f, face, c.Expression)
	}

	if c.Name != "" && c.ViewType != domain.ViewFace {
		size := math.Max(8, math.Min(12, rect.W*0.18))
		s.SetColor(r.theme.Ink.WithAlpha(0.7))
		s.Text(c.Name, vector.Pt{X: rect.X, Y: rect.Y + rect.H + size + 2}, size)
	}
	return true, nil
}

func (r *Renderer) drawHair(s surface.Surface, f figure) {
	s.SetColor(r.theme.Ink.WithAlpha(0.8))
	s.FillEllipse(vector.Pt{X: f.head.X, Y: f.head.Y - f.headR*0.15}, f.headR*0.95, f.headR*0.8)
}

func (r *Renderer) drawFace(s surface.Surface, f figure, face facingProfile, expr domain.Expression) {
	hr := f.headR
	shift := face.eyeShift * hr * 0.3
	eyeY := f.head.Y - hr*0.15
	eyeR := math.Max(1, hr*0.09)
	spread := hr * 0.35
	if face.eyeShift == 1 || face.eyeShift == -1 {
		spread = 0
	}

	s.SetColor(r.theme.Ink)
	eyes := []vector.Pt{{X: f.head.X + shift - spread, Y: eyeY}, {X: f.head.X + shift + spread, Y: eyeY}}
	if spread == 0 {
		eyes = eyes[:1]
	}
	for _, e := range eyes {
		if expr == domain.ExpressionSurprised {
			s.StrokeCircle(e, eyeR*1.6)
		}
		s.FillCircle(e, eyeR)
	}

	s.SetLineWidth(math.Max(1, hr*0.06))
	if expr == domain.ExpressionAngry {
		for _, e := range eyes {
			inner := 1.0
			if e.X > f.head.X+shift {
				inner = -1
			}
			s.Line(vector.Pt{X: e.X - inner*eyeR*2, Y: e.Y - eyeR*3.2}, vector.Pt{X: e.X + inner*eyeR*1.5, Y: e.Y - eyeR*1.8})
		}
	}

	mouth := vector.Pt{X: f.head.X + shift, Y: f.head.Y + hr*0.45}
	w := hr * 0.3
	switch expr {
	case domain.ExpressionHappy:
		s.Arc(vector.Pt{X: mouth.X, Y: mouth.Y - w*0.6}, w, 0.2*math.Pi, 0.8*math.Pi)
	case domain.ExpressionSad:
		s.Arc(vector.Pt{X: mouth.X, Y: mouth.Y + w*0.8}, w, 1.2*math.Pi, 1.8*math.Pi)
	case domain.ExpressionSurprised:
		s.StrokeEllipse(mouth, w*0.4, w*0.55)
	case domain.ExpressionAngry:
		s.Line(vector.Pt{X: mouth.X - w, Y: mouth.Y + w*0.15}, vector.Pt{X: mouth.X + w, Y: mouth.Y - w*0.15})
	default:
		s.Line(vector.Pt{X: mouth.X - w*0.8, Y: mouth.Y}, vector.Pt{X: mouth.X + w*0.8, Y: mouth.Y})
	}
}

// CharacterRotateHandle returns the page position of the rotation handle
// of a character drawn in rect and rotated by deg degrees.
func CharacterRotateHandle(rect vector.Rect, deg, handleSize float64) vector.Pt {
	p := vector.Pt{X: rect.X + rect.W/2, Y: rect.Y - 3*handleSize}
	if deg == 0 {
		return p
	}
	return vector.RotateAbout(vector.DegToRad(deg), rect.Center()).Apply(p)
}

// drawCharacterSelection draws the dashed bounds, resize handles and the
// rotation handle above the top edge, all in the character's rotated frame.
func (r *Renderer) drawCharacterSelection(s surface.Surface, c domain.Character, rect vector.Rect) {
	hs := r.handleSize
	s.Push()
	defer s.Pop()
	if c.Rotation != 0 {
		s.RotateAbout(vector.DegToRad(c.Rotation), rect.Center())
	}
	s.SetColor(r.theme.Accent)
	s.SetLineWidth(1.5)
	s.SetDash(5, 3)
	s.StrokeRect(rect)
	s.SetDash()

	top := vector.Pt{X: rect.X + rect.W/2, Y: rect.Y}
	knob := vector.Pt{X: top.X, Y: rect.Y - 3*hs}
	s.Line(top, knob)
	r.drawHandles(s, rect, vector.ResizeHandles)
	s.SetColor(r.theme.HandleFill)
	s.FillCircle(knob, hs*0.75)
	s.SetColor(r.theme.HandleStroke)
	s.StrokeCircle(knob, hs*0.75)
}

// drawHandles draws square handles for the given positions on rect.
func (r *Renderer) drawHandles(s surface.Surface, rect vector.Rect, handles []vector.Handle) {
	s.SetLineWidth(1)
	for _, h := range handles {
		hr := vector.HandleRect(rect, h, r.handleSize)
		s.SetColor(r.theme.HandleFill)
		s.FillRect(hr)
		s.SetColor(r.theme.HandleStroke)
		s.StrokeRect(hr)
	}
}

func polyline(s surface.Surface, pts []vector.Pt) {
	for i := 1; i < len(pts); i++ {
		s.Line(pts[i-1], pts[i])
	}
}

func closedPath(s surface.Surface, pts []vector.Pt) {
	polyline(s, pts)
	if len(pts) > 2 {
		s.Line(pts[len(pts)-1], pts[0])
	}
}
