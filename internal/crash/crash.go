/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash turns a panic in the CLI into a crash report plus an
// autosave of the scene being worked on.
package crash

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	applog "comicpage/internal/log"
	"comicpage/internal/scene"
	"comicpage/internal/version"
)

// exitFn is used to allow testing of Recover without terminating the test process.
var exitFn = os.Exit

// Target describes what to preserve when a panic is recovered. Both fields
// are optional.
type Target struct {
	ScenePath string
	Snapshot  func() (scene.Document, bool)
}

// Recover captures a panic, logs an error with stacktrace, writes an error
// report file and autosaves the current scene (if t provides one).
//
// Usage: defer crash.Recover(t)
func Recover(t *Target) {
	if r := recover(); r != nil {
		l := applog.WithComponent("crash")
		stack := debug.Stack()
		l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

		reportPath, err := writeReport(t, r, stack)
		if err != nil {
			l.Error("write crash report failed", slog.Any("err", err))
		}
		if path, err := autosave(t); err != nil {
			l.Error("autosave crash snapshot failed", slog.Any("err", err))
		} else if path != "" {
			l.Info("autosave crash snapshot written", slog.String("path", path))
		}

		if _, err := fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath); err != nil {
			l.Error("failed to write crash message to stderr", slog.Any("err", err))
		}
		if _, err := fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH); err != nil {
			l.Error("failed to write version info to stderr", slog.Any("err", err))
		}
		exitFn(2)
	}
}

// reportDir is the backups directory next to the scene, or the temp dir.
func reportDir(t *Target) string {
	if t == nil || t.ScenePath == "" {
		return os.TempDir()
	}
	dir := filepath.Join(filepath.Dir(t.ScenePath), scene.BackupsDirName)
	_ = os.MkdirAll(dir, 0o755)
	return dir
}

func autosave(t *Target) (string, error) {
	if t == nil || t.Snapshot == nil {
		return "", nil
	}
	doc, ok := t.Snapshot()
	if !ok {
		return "", nil
	}
	name := "scene"
	if t.ScenePath != "" {
		name = filepath.Base(t.ScenePath)
	}
	path := filepath.Join(reportDir(t), fmt.Sprintf("%s.crash-%s.json", name, time.Now().Format("20060102-150405")))
	return path, scene.Save(path, doc)
}

func writeReport(t *Target, panicVal any, stack []byte) (string, error) {
	stamp := time.Now().Format("20060102-150405")
	path := filepath.Join(reportDir(t), fmt.Sprintf("crash-%s.log", stamp))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return path, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			applog.WithComponent("crash").Error("failed to close crash report file", slog.Any("err", err), slog.String("path", path))
		}
	}()

	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "comicpage crash report\n")
	_, _ = fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	_, _ = fmt.Fprintf(&buf, "Version: %s\n", version.String())
	_, _ = fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	if t != nil && t.ScenePath != "" {
		_, _ = fmt.Fprintf(&buf, "Scene: %s\n", t.ScenePath)
	}
	_, _ = fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	_, _ = fmt.Fprintf(&buf, "Stack:\n%s\n", string(stack))

	if _, err := f.Write(buf.Bytes()); err != nil {
		return path, err
	}
	return path, f.Sync()
}
