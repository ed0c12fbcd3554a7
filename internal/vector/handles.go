/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Handle is a direction token produced by hit-testing selection overlays.
type Handle string

const (
	HandleNone   Handle = ""
	HandleNW     Handle = "nw"
	HandleN      Handle = "n"
	HandleNE     Handle = "ne"
	HandleE      Handle = "e"
	HandleSE     Handle = "se"
	HandleS      Handle = "s"
	HandleSW     Handle = "sw"
	HandleW      Handle = "w"
	HandleMove   Handle = "move"
	HandleSplit  Handle = "split"
	HandleRotate Handle = "rotate"
	HandleCenter Handle = "center"
)

// ResizeHandles lists the 8 resize directions, corners first so that a
// pointer near a corner wins over the adjacent edge midpoints.
var ResizeHandles = []Handle{HandleNW, HandleNE, HandleSE, HandleSW, HandleN, HandleE, HandleS, HandleW}

// CornerHandles lists the 4 corner directions.
var CornerHandles = []Handle{HandleNW, HandleNE, HandleSE, HandleSW}

// Axes returns the signed influence of a resize handle on each axis:
// -1 moves the min edge, +1 moves the max edge, 0 leaves the axis alone.
func (h Handle) Axes() (ax, ay int) {
	switch h {
	case HandleNW:
		return -1, -1
	case HandleN:
		return 0, -1
	case HandleNE:
		return 1, -1
	case HandleE:
		return 1, 0
	case HandleSE:
		return 1, 1
	case HandleS:
		return 0, 1
	case HandleSW:
		return -1, 1
	case HandleW:
		return -1, 0
	}
	return 0, 0
}

// IsResize reports whether h is one of the 8 resize directions.
func (h Handle) IsResize() bool {
	ax, ay := h.Axes()
	return ax != 0 || ay != 0
}

// IsCorner reports whether h is a corner handle.
func (h Handle) IsCorner() bool {
	ax, ay := h.Axes()
	return ax != 0 && ay != 0
}

// HandlePoint returns the anchor point of a resize handle on r.
func HandlePoint(r Rect, h Handle) Pt {
	ax, ay := h.Axes()
	return Pt{
		X: r.X + r.W*float64(ax+1)/2,
		Y: r.Y + r.H*float64(ay+1)/2,
	}
}

// HandleRect returns the square hit/draw area of size×size around a handle anchor.
func HandleRect(r Rect, h Handle, size float64) Rect {
	return CenteredAt(HandlePoint(r, h), size, size)
}

// HitHandle returns the first handle in candidates whose square contains p.
func HitHandle(r Rect, p Pt, size float64, candidates []Handle) Handle {
	for _, h := range candidates {
		if HandleRect(r, h, size).Contains(p) {
			return h
		}
	}
	return HandleNone
}
