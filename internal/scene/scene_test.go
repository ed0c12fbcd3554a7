/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"comicpage/internal/domain"
)

const sample = `{
  "page": {
    "width": 800, "height": 600,
    "panels": [{"id": 1, "x": 20, "y": 20, "width": 360, "height": 260}],
    "characters": [{"id": "c1", "panelId": 1, "x": 0.5, "y": 0.5, "scale": 1, "viewType": "face", "pose": "standing", "zIndex": 0}],
    "tones": [{"id": "t1", "panelId": 1, "pattern": "dots", "density": 0.5, "opacity": 1, "scale": 1,
               "x": 0, "y": 0, "width": 1, "height": 1, "zIndex": -1}]
  },
  "selection": {"panelId": 1, "toneId": "t1"},
  "modes": {"panelEditMode": true}
}`

func TestDecodeSample(t *testing.T) {
	doc, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if len(doc.Page.Panels) != 1 || doc.Page.Panels[0].Width != 360 {
		t.Fatalf("panels = %+v", doc.Page.Panels)
	}
	if doc.Page.Characters[0].ViewType != domain.ViewFace {
		t.Fatalf("viewType = %q", doc.Page.Characters[0].ViewType)
	}
	if doc.Selection.ToneID != "t1" || !doc.Modes.PanelEditMode {
		t.Fatalf("selection/modes = %+v %+v", doc.Selection, doc.Modes)
	}
}

func TestDecodeRejectsSchemaViolations(t *testing.T) {
	cases := map[string]string{
		"missing page":    `{}`,
		"zero width":      `{"page": {"width": 0, "height": 10, "panels": []}}`,
		"panel id 0":      `{"page": {"width": 10, "height": 10, "panels": [{"id": 0, "x": 0, "y": 0, "width": 1, "height": 1}]}}`,
		"string x":        `{"page": {"width": 10, "height": 10, "panels": [{"id": 1, "x": "0", "y": 0, "width": 1, "height": 1}]}}`,
		"tone without id": `{"page": {"width": 10, "height": 10, "panels": [], "tones": [{"panelId": 1, "x": 0, "y": 0, "width": 1, "height": 1}]}}`,
	}
	for name, in := range cases {
		if _, err := Decode(strings.NewReader(in)); !errors.Is(err, ErrInvalid) {
			t.Fatalf("%s: err = %v, want ErrInvalid", name, err)
		}
	}
	if _, err := Decode(strings.NewReader("{not json")); err == nil {
		t.Fatalf("expected error for malformed JSON")
	}
}

func TestEncodeDecodeKeepsPage(t *testing.T) {
	doc, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if !bytes.HasSuffix(buf.Bytes(), []byte("}\n")) {
		t.Fatalf("encoded document should end with a newline")
	}
	again, err := Decode(&buf)
	if err != nil {
		t.Fatalf("re-decode: %v", err)
	}
	if again.Page.Tones[0] != doc.Page.Tones[0] || again.Selection != doc.Selection {
		t.Fatalf("document changed across encode/decode")
	}
}

func TestSaveCreatesBackupAndLoadFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.json")
	doc, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	if err := Save(path, doc); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if b, _ := Backups(path); len(b) != 0 {
		t.Fatalf("first save should not create a backup, got %v", b)
	}
	doc.Page.Panels[0].X = 40
	if err := Save(path, doc); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	backups, err := Backups(path)
	if err != nil || len(backups) != 1 {
		t.Fatalf("backups = %v, err = %v", backups, err)
	}

	got, err := Load(path)
	if err != nil || got.Page.Panels[0].X != 40 {
		t.Fatalf("Load = %+v, %v", got.Page.Panels, err)
	}

	// Corrupt the current file; Load must fall back to the backup.
	if err := os.WriteFile(path, []byte("{garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err = Load(path)
	if err != nil {
		t.Fatalf("Load with corrupt file: %v", err)
	}
	if got.Page.Panels[0].X != 20 {
		t.Fatalf("fallback x = %v, want the backed-up 20", got.Page.Panels[0].X)
	}
}

func TestLoadWithoutBackups(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSchemaIsACopy(t *testing.T) {
	s := Schema()
	s[0] = 'x'
	if Schema()[0] == 'x' {
		t.Fatalf("Schema exposes the embedded bytes")
	}
}
