// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// helper to write a test file and return its path
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte(content), 0644)
	if err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

// helper to read file contents
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}
	return string(data)
}

func TestUpdateCopyrights_HeaderIncrement(t *testing.T) {
	tmp := t.TempDir()
	path := writeFile(t, tmp, "file.go", `// Copyright 2025 Sonic Labs
package main
`)

	if err := updateYear(tmp, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := readFile(t, path)
	if !strings.Contains(got, "// Copyright 2026 Sonic Labs") {
		t.Errorf("expected updated year, got:\n%s", got)
	}
}

func TestUpdateCopyrights_ExplicitYear(t *testing.T) {
	tmp := t.TempDir()
	path := writeFile(t, tmp, "cli.go", `// Copyright 2023 Sonic Labs
package main

var auditApp = cli.App{
	Name:      "PRNG sampling audit",
	Copyright: "(c) 2024 Sonic Labs",
}
`)

	if err := updateYear(tmp, 2027); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := readFile(t, path)
	if !strings.Contains(got, "// Copyright 2027 Sonic Labs") {
		t.Errorf("expected updated header, got:\n%s", got)
	}
	if !strings.Contains(got, `(c) 2027 Sonic Labs`) {
		t.Errorf("expected updated cli copyright, got:\n%s", got)
	}
}

func TestUpdateCopyrights_NoChange(t *testing.T) {
	tmp := t.TempDir()
	path := writeFile(t, tmp, "other.go", `package main`)

	if err := updateYear(tmp, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := readFile(t, path); got != "package main" {
		t.Errorf("expected no change, got:\n%s", got)
	}
}

func TestUpdateCopyrights_ExcludedFiles(t *testing.T) {
	tmp := t.TempDir()

	// generated mocks are ignored
	mockPath := writeFile(t, tmp, "sink_mock.go", `// Copyright 2025 Sonic Labs`)

	// files under _examples are ignored
	examples := filepath.Join(tmp, "_examples")
	if err := os.Mkdir(examples, 0755); err != nil {
		t.Fatal(err)
	}
	examplePath := writeFile(t, examples, "c.go", `// Copyright 2025 Sonic Labs`)

	if err := updateYear(tmp, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := readFile(t, mockPath); !strings.Contains(got, "2025") {
		t.Errorf("mock file should not be updated")
	}
	if got := readFile(t, examplePath); !strings.Contains(got, "2025") {
		t.Errorf("excluded file should not be updated")
	}
}

func TestCheckHeaders_ListsAndFixesMissingHeaders(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, tmp, "ok.go", "// Copyright 2025 Sonic Labs\npackage main\n")
	bad := writeFile(t, tmp, "bad.go", "package main\n")
	writeFile(t, tmp, "notes.txt", "no header")

	missing, err := checkHeaders(tmp, false, 2025)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(missing) != 1 || missing[0] != bad {
		t.Fatalf("unexpected missing files %v", missing)
	}
	if got := readFile(t, bad); got != "package main\n" {
		t.Errorf("file changed without fix:\n%s", got)
	}

	if _, err = checkHeaders(tmp, true, 2025); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := readFile(t, bad)
	if !strings.HasPrefix(got, "// Copyright 2025 Sonic Labs\n") || !strings.HasSuffix(got, "\n\npackage main\n") {
		t.Errorf("header not prepended:\n%s", got)
	}

	missing, err = checkHeaders(tmp, false, 2025)
	if err != nil || len(missing) != 0 {
		t.Errorf("expected no missing headers, got %v, %v", missing, err)
	}
}

func TestHeaderApp_ScansGivenRoot(t *testing.T) {
	tmp := t.TempDir()
	bad := writeFile(t, tmp, "bad.go", "package main\n")
	dated := writeFile(t, tmp, "dated.go", "// Copyright 2024 Sonic Labs\npackage main\n")

	if err := headerApp.Run([]string{"header-updater", "--root", tmp, "check"}); err == nil {
		t.Fatalf("expected missing header to fail the check")
	}
	if err := headerApp.Run([]string{"header-updater", "--root", tmp, "check", "--fix", "--year", "2030"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := readFile(t, bad); !strings.HasPrefix(got, "// Copyright 2030 Sonic Labs\n") {
		t.Errorf("header not prepended:\n%s", got)
	}

	if err := headerApp.Run([]string{"header-updater", "--root", tmp, "year", "--year", "2031"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, path := range []string{bad, dated} {
		if got := readFile(t, path); !strings.HasPrefix(got, "// Copyright 2031 Sonic Labs\n") {
			t.Errorf("year not updated in %s:\n%s", path, got)
		}
	}
}

func TestHeaderApp_RejectsMissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	if err := headerApp.Run([]string{"header-updater", "--root", missing, "check"}); err == nil {
		t.Errorf("expected an error for a missing workspace")
	}
	file := writeFile(t, t.TempDir(), "file.go", "package main\n")
	if err := headerApp.Run([]string{"header-updater", "--root", file, "year"}); err == nil {
		t.Errorf("expected an error for a file as workspace")
	}
}
