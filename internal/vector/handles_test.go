/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "testing"

func TestHandlePoints(t *testing.T) {
	r := R(0, 0, 100, 50)
	cases := map[Handle]Pt{
		HandleNW: {0, 0},
		HandleN:  {50, 0},
		HandleNE: {100, 0},
		HandleE:  {100, 25},
		HandleSE: {100, 50},
		HandleS:  {50, 50},
		HandleSW: {0, 50},
		HandleW:  {0, 25},
	}
	for h, want := range cases {
		if got := HandlePoint(r, h); got != want {
			t.Fatalf("%s: got %+v want %+v", h, got, want)
		}
	}
}

func TestHitHandlePrefersCorners(t *testing.T) {
	r := R(0, 0, 10, 10) // tiny rect: corner and edge squares overlap
	if got := HitHandle(r, Pt{1, 1}, 8, ResizeHandles); got != HandleNW {
		t.Fatalf("expected nw, got %q", got)
	}
	if got := HitHandle(R(0, 0, 100, 100), Pt{50, 50}, 8, ResizeHandles); got != HandleNone {
		t.Fatalf("centre should miss all handles, got %q", got)
	}
}

func TestHandleClassification(t *testing.T) {
	if !HandleSE.IsCorner() || HandleE.IsCorner() {
		t.Fatalf("corner classification wrong")
	}
	if HandleMove.IsResize() || !HandleS.IsResize() {
		t.Fatalf("resize classification wrong")
	}
}
