/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package undo keeps bounded undo/redo stacks of page versions.
package undo

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"comicpage/internal/domain"
)

// Snapshot is one stored page version. Blob holds the encoded page; its
// length is what the byte cap accounts for.
type Snapshot struct {
	Version uint64
	Label   string
	Blob    []byte
	TS      time.Time
}

// Capture encodes a page into a snapshot.
func Capture(pg domain.Page, version uint64, label string, ts time.Time) (Snapshot, error) {
	b, err := json.Marshal(pg)
	if err != nil {
		return Snapshot{}, fmt.Errorf("encode page: %w", err)
	}
	return Snapshot{Version: version, Label: label, Blob: b, TS: ts}, nil
}

// Page decodes the stored page.
func (s Snapshot) Page() (domain.Page, error) {
	var pg domain.Page
	if err := json.Unmarshal(s.Blob, &pg); err != nil {
		return domain.Page{}, fmt.Errorf("decode snapshot %d: %w", s.Version, err)
	}
	return pg, nil
}

// Config controls memory and depth caps and coalescing behavior.
type Config struct {
	// MaxBytes is a soft cap; the oldest undo entries go first when exceeded.
	MaxBytes int
	// MaxDepth limits the undo stack length (0 means unlimited).
	MaxDepth int
	// MinInterval merges pushes with the same label that arrive within the
	// interval, so one drag is one undo step.
	MinInterval time.Duration
}

// History is an undo/redo stack pair. It is safe for concurrent use.
type History struct {
	cfg        Config
	mu         sync.Mutex
	undo       []Snapshot
	redo       []Snapshot
	totalBytes int
}

func NewHistory(cfg Config) *History {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 16 * 1024 * 1024 // 16 MiB
	}
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = 250 * time.Millisecond
	}
	return &History{cfg: cfg}
}

// Push records the state before a change and clears redo. A push with the
// same label as the top entry inside MinInterval is merged: the older
// state is kept, only its timestamp advances.
func (h *History) Push(s Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropRedoLocked()
	if n := len(h.undo); n > 0 {
		last := &h.undo[n-1]
		if s.Label != "" && s.Label == last.Label && s.TS.Sub(last.TS) < h.cfg.MinInterval {
			last.TS = s.TS
			return
		}
	}
	h.undo = append(h.undo, s)
	h.totalBytes += len(s.Blob)
	h.enforceCapsLocked()
}

// Undo swaps the current state for the newest undo entry.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := len(h.undo)
	if n == 0 {
		return Snapshot{}, false
	}
	s := h.undo[n-1]
	h.undo = h.undo[:n-1]
	h.totalBytes -= len(s.Blob)
	h.redo = append(h.redo, current)
	h.totalBytes += len(current.Blob)
	return s, true
}

// Redo swaps the current state for the newest redo entry.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := len(h.redo)
	if n == 0 {
		return Snapshot{}, false
	}
	s := h.redo[n-1]
	h.redo = h.redo[:n-1]
	h.totalBytes -= len(s.Blob)
	h.undo = append(h.undo, current)
	h.totalBytes += len(current.Blob)
	h.enforceCapsLocked()
	return s, true
}

// CanUndo reports whether an undo step is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undo) > 0
}

// CanRedo reports whether a redo step is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redo) > 0
}

// Clear drops both stacks.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undo, h.redo, h.totalBytes = nil, nil, 0
}

// Stats returns current sizes for diagnostics.
func (h *History) Stats() (totalBytes, undoDepth, redoDepth int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.totalBytes, len(h.undo), len(h.redo)
}

func (h *History) dropRedoLocked() {
	for _, s := range h.redo {
		h.totalBytes -= len(s.Blob)
	}
	h.redo = nil
}

func (h *History) enforceCapsLocked() {
	if h.cfg.MaxDepth > 0 && len(h.undo) > h.cfg.MaxDepth {
		drop := len(h.undo) - h.cfg.MaxDepth
		for _, s := range h.undo[:drop] {
			h.totalBytes -= len(s.Blob)
		}
		h.undo = append([]Snapshot(nil), h.undo[drop:]...)
	}
	// Keep at least the newest entry so one step back always works.
	for h.totalBytes > h.cfg.MaxBytes && len(h.undo) > 1 {
		h.totalBytes -= len(h.undo[0].Blob)
		h.undo = h.undo[1:]
	}
}
