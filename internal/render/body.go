/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"comicpage/internal/domain"
	"comicpage/internal/vector"
)

// figure is the joint layout of a character for one draw call. Limb
// routines only see joints and lengths, never the character record.
type figure struct {
	rect      vector.Rect
	head      vector.Pt
	headR     float64
	chin      vector.Pt
	shoulderL vector.Pt
	shoulderR vector.Pt
	hipL      vector.Pt
	hipR      vector.Pt
	armLen    float64
	legLen    float64
	limbWidth float64
	hasLegs   bool
	torsoOnly bool // face view: no torso or limbs
}

func off(p vector.Pt, dx, dy float64) vector.Pt { return vector.Pt{X: p.X + dx, Y: p.Y + dy} }

// limbs is a pair of polylines, screen-left first.
type limbs struct{ left, right []vector.Pt }

// poseDrawer is one entry of the pose table.
type poseDrawer struct {
	arms func(f figure) limbs
	legs func(f figure) limbs
	// armsInFront marks poses whose arms are hidden by the torso from behind.
	armsInFront bool
}

func hangingArms(f figure) limbs {
	a := f.armLen
	return limbs{
		left:  []vector.Pt{f.shoulderL, off(f.shoulderL, -0.15*a, 0.5*a), off(f.shoulderL, -0.2*a, a)},
		right: []vector.Pt{f.shoulderR, off(f.shoulderR, 0.15*a, 0.5*a), off(f.shoulderR, 0.2*a, a)},
	}
}

func straightLegs(f figure) limbs {
	l := f.legLen
	return limbs{
		left:  []vector.Pt{f.hipL, off(f.hipL, -0.03*l, 0.5*l), off(f.hipL, -0.06*l, l)},
		right: []vector.Pt{f.hipR, off(f.hipR, 0.03*l, 0.5*l), off(f.hipR, 0.06*l, l)},
	}
}

var poseTable = map[domain.Pose]poseDrawer{
	domain.PoseStanding: {arms: hangingArms, legs: straightLegs},
	domain.PoseSitting: {
		arms: func(f figure) limbs {
			a := f.armLen
			return limbs{
				left:  []vector.Pt{f.shoulderL, off(f.shoulderL, -0.1*a, 0.5*a), off(f.shoulderL, 0.15*a, 0.9*a)},
				right: []vector.Pt{f.shoulderR, off(f.shoulderR, 0.1*a, 0.5*a), off(f.shoulderR, -0.15*a, 0.9*a)},
			}
		},
		legs: func(f figure) limbs {
			l := f.legLen
			return limbs{
				left:  []vector.Pt{f.hipL, off(f.hipL, -0.25*l, 0.3*l), off(f.hipL, -0.25*l, 0.75*l)},
				right: []vector.Pt{f.hipR, off(f.hipR, 0.25*l, 0.3*l), off(f.hipR, 0.25*l, 0.75*l)},
			}
		},
	},
	domain.PoseWalking: {
		arms: func(f figure) limbs {
			a := f.armLen
			return limbs{
				left:  []vector.Pt{f.shoulderL, off(f.shoulderL, -0.35*a, 0.45*a), off(f.shoulderL, -0.5*a, 0.85*a)},
				right: []vector.Pt{f.shoulderR, off(f.shoulderR, 0.25*a, 0.5*a), off(f.shoulderR, 0.3*a, 0.9*a)},
			}
		},
		legs: func(f figure) limbs {
			l := f.legLen
			return limbs{
				left:  []vector.Pt{f.hipL, off(f.hipL, -0.3*l, 0.5*l), off(f.hipL, -0.4*l, l)},
				right: []vector.Pt{f.hipR, off(f.hipR, 0.2*l, 0.5*l), off(f.hipR, 0.35*l, 0.95*l)},
			}
		},
	},
	domain.PosePointing: {
		arms: func(f figure) limbs {
			a := f.armLen
			l := hangingArms(f).left
			return limbs{
				left:  l,
				right: []vector.Pt{f.shoulderR, off(f.shoulderR, 0.5*a, -0.05*a), off(f.shoulderR, a, -0.1*a)},
			}
		},
		legs: straightLegs,
	},
	domain.PoseWaving: {
		arms: func(f figure) limbs {
			a := f.armLen
			return limbs{
				left:  hangingArms(f).left,
				right: []vector.Pt{f.shoulderR, off(f.shoulderR, 0.35*a, -0.4*a), off(f.shoulderR, 0.3*a, -0.9*a)},
			}
		},
		legs: straightLegs,
	},
	domain.PoseArmsCrossed: {
		arms: func(f figure) limbs {
			a := f.armLen
			return limbs{
				left:  []vector.Pt{f.shoulderL, off(f.shoulderL, 0.05*a, 0.45*a), off(f.shoulderR, -0.05*a, 0.45*a)},
				right: []vector.Pt{f.shoulderR, off(f.shoulderR, -0.05*a, 0.5*a), off(f.shoulderL, 0.05*a, 0.5*a)},
			}
		},
		legs:        straightLegs,
		armsInFront: true,
	},
	domain.PoseThinking: {
		arms: func(f figure) limbs {
			a := f.armLen
			return limbs{
				left:  []vector.Pt{f.shoulderL, off(f.shoulderL, 0.05*a, 0.5*a), off(f.shoulderR, -0.1*a, 0.55*a)},
				right: []vector.Pt{f.shoulderR, off(f.shoulderR, 0.1*a, 0.5*a), off(f.chin, 0.05*a, 0)},
			}
		},
		legs:        straightLegs,
		armsInFront: true,
	},
}

// lookupPose returns the drawer for p, falling back to standing.
func lookupPose(p domain.Pose) poseDrawer {
	if d, ok := poseTable[p]; ok {
		return d
	}
	return poseTable[domain.PoseStanding]
}

// facingProfile describes how a facing alters the figure.
type facingProfile struct {
	torsoWidth float64 // fraction of the frontal torso width
	leftLimbs  bool
	rightLimbs bool
	back       bool
	eyeShift   float64 // -1 looks screen-left, +1 screen-right
}

var facingTable = map[domain.Facing]facingProfile{
	domain.FacingFront:      {torsoWidth: 1, leftLimbs: true, rightLimbs: true},
	domain.FacingBack:       {torsoWidth: 1, leftLimbs: true, rightLimbs: true, back: true},
	domain.FacingLeft:       {torsoWidth: 0.6, leftLimbs: true, eyeShift: -1},
	domain.FacingRight:      {torsoWidth: 0.6, rightLimbs: true, eyeShift: 1},
	domain.FacingFrontLeft:  {torsoWidth: 0.8, leftLimbs: true, rightLimbs: true, eyeShift: -0.5},
	domain.FacingFrontRight: {torsoWidth: 0.8, leftLimbs: true, rightLimbs: true, eyeShift: 0.5},
	domain.FacingBackLeft:   {torsoWidth: 0.8, leftLimbs: true, rightLimbs: true, back: true},
	domain.FacingBackRight:  {torsoWidth: 0.8, leftLimbs: true, rightLimbs: true, back: true},
}

func lookupFacing(f domain.Facing) facingProfile {
	if p, ok := facingTable[f]; ok {
		return p
	}
	return facingTable[domain.FacingFront]
}

// visibleLimbs returns the polylines to draw for a pose seen from a facing.
func visibleLimbs(f figure, pose poseDrawer, face facingProfile) [][]vector.Pt {
	if f.torsoOnly {
		return nil
	}
	var out [][]vector.Pt
	if !(face.back && pose.armsInFront) {
		arms := pose.arms(f)
		if face.leftLimbs {
			out = append(out, arms.left)
		}
		if face.rightLimbs {
			out = append(out, arms.right)
		}
	}
	if f.hasLegs {
		legs := pose.legs(f)
		if face.leftLimbs {
			out = append(out, legs.left)
		}
		if face.rightLimbs {
			out = append(out, legs.right)
		}
	}
	return out
}
