/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package scene reads and writes scene documents: a page plus the host's
// selection and mode flags, as JSON.
package scene

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"

	"comicpage/internal/domain"
)

//go:embed scene.schema.json
var schemaJSON []byte

var schemaLoader = gojsonschema.NewBytesLoader(schemaJSON)

// ErrInvalid wraps schema violations reported by Decode.
var ErrInvalid = errors.New("scene: document does not match schema")

// Document is the persisted form of one editing state.
type Document struct {
	Page      domain.Page      `json:"page"`
	Selection domain.Selection `json:"selection"`
	Modes     domain.Modes     `json:"modes"`
}

// Schema returns the embedded JSON schema scene documents must satisfy.
func Schema() []byte { return append([]byte(nil), schemaJSON...) }

// Validate checks raw JSON against the scene schema.
func Validate(data []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("scene: validate: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

// Decode reads one document from r. The document is validated against
// the schema before it is unmarshalled.
func Decode(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("scene: read: %w", err)
	}
	return Unmarshal(data)
}

// Unmarshal validates and parses data.
func Unmarshal(data []byte) (Document, error) {
	if err := Validate(data); err != nil {
		return Document{}, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("scene: parse: %w", err)
	}
	return doc, nil
}

// Marshal renders doc in human-readable form with a trailing newline.
func Marshal(doc Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("scene: marshal: %w", err)
	}
	return append(data, '\n'), nil
}

// Encode writes doc to w.
func Encode(w io.Writer, doc Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
