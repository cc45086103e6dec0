package check

import (
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/funvibe/tycore/internal/ir"
)

// TestGoldenFixtures runs every testdata/*.txtar archive through the
// checker. Each archive bundles a "program.json" core-IR file (decoded
// via ir.DecodeProgram, spec §6's input shape) with an "expected.txt"
// listing one diagnostic code per line in the order the checker should
// report them (or the single line "ok" when none are expected) — the
// same fixture-bundling idiom internal/ext/inspector.go uses golang.org/
// x/tools for, now pointed at program+diagnostics pairs instead of Go
// source+package metadata.
func TestGoldenFixtures(t *testing.T) {
	paths, err := filepath.Glob("testdata/*.txtar")
	if err != nil {
		t.Fatalf("globbing fixtures: %v", err)
	}
	if len(paths) == 0 {
		t.Fatal("expected at least one testdata/*.txtar fixture")
	}

	for _, path := range paths {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			arc, err := txtar.ParseFile(path)
			if err != nil {
				t.Fatalf("parsing archive: %v", err)
			}
			programData := fixtureFile(t, arc, "program.json")
			expected := strings.Fields(string(fixtureFile(t, arc, "expected.txt")))

			prog, err := ir.DecodeProgram(programData)
			if err != nil {
				t.Fatalf("decoding program.json: %v", err)
			}

			c := New(1000, nil)
			c.CheckProgram(prog)

			if len(expected) == 1 && expected[0] == "ok" {
				if c.Diags.HasErrors() {
					t.Fatalf("expected no diagnostics, got %v", c.Diags.All())
				}
				return
			}

			got := c.Diags.All()
			if len(got) != len(expected) {
				t.Fatalf("expected %d diagnostics %v, got %d: %v", len(expected), expected, len(got), got)
			}
			for i, code := range expected {
				if string(got[i].Code) != code {
					t.Fatalf("diagnostic %d: expected %s, got %s (%v)", i, code, got[i].Code, got[i])
				}
			}
		})
	}
}

func fixtureFile(t *testing.T, arc *txtar.Archive, name string) []byte {
	t.Helper()
	for _, f := range arc.Files {
		if f.Name == name {
			return f.Data
		}
	}
	t.Fatalf("archive missing file %q", name)
	return nil
}
