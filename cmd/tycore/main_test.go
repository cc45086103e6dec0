package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func TestRunSucceedsOnWellTypedProgram(t *testing.T) {
	dir := t.TempDir()
	prog := writeFile(t, dir, "prog.json", `{
		"file": "prog",
		"decls": [
			{
				"kind": "const",
				"tok": {"line": 1, "column": 1},
				"name": "x",
				"init": {"kind": "literal", "tok": {"line": 1, "column": 1}, "base": "int", "raw": 1}
			}
		]
	}`)

	if code := run([]string{"-config", filepath.Join(dir, "missing.yaml"), prog}); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
}

func TestRunReportsUndefinedBinding(t *testing.T) {
	dir := t.TempDir()
	prog := writeFile(t, dir, "prog.json", `{
		"file": "prog",
		"decls": [
			{
				"kind": "exprDecl",
				"tok": {"line": 1, "column": 1},
				"expr": {"kind": "identifier", "tok": {"line": 1, "column": 1}, "name": "nope"}
			}
		]
	}`)

	if code := run([]string{"-config", filepath.Join(dir, "missing.yaml"), prog}); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}

func TestRunRejectsMissingArg(t *testing.T) {
	if code := run(nil); code != 2 {
		t.Fatalf("expected exit code 2, got %d", code)
	}
}

func TestRunResolvesImportFromManifest(t *testing.T) {
	dir := t.TempDir()
	manifest := writeFile(t, dir, "modules.json", `{"collections": {"empty": "Null"}}`)
	prog := writeFile(t, dir, "prog.json", `{
		"file": "prog",
		"decls": [
			{
				"kind": "import",
				"tok": {"line": 1, "column": 1},
				"clause": "named",
				"names": ["empty"],
				"specifier": "collections"
			}
		]
	}`)

	code := run([]string{"-config", filepath.Join(dir, "missing.yaml"), "-modules", manifest, prog})
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
}
