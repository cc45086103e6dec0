package resolver

import (
	"context"
	"testing"

	"github.com/funvibe/tycore/internal/types"
)

func TestResolveDefinedModule(t *testing.T) {
	r := New(nil)
	r.Define("collections", map[string]types.Type{
		"empty": types.Primitive{Name: types.Null},
	})

	exports, err := r.Resolve("collections")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := exports["empty"]; !ok {
		t.Fatalf("expected export %q, got %#v", "empty", exports)
	}
}

func TestResolveUnknownModule(t *testing.T) {
	r := New(nil)
	if _, err := r.Resolve("nope"); err == nil {
		t.Fatal("expected an error resolving an undefined module")
	}
}

func TestResolveRejectsInvalidVersion(t *testing.T) {
	calls := 0
	r := New(func(name string) (map[string]types.Type, error) {
		calls++
		return map[string]types.Type{"x": types.Primitive{Name: types.Int}}, nil
	})
	if _, err := r.Resolve("collections@not-a-version"); err == nil {
		t.Fatal("expected an error for an invalid semver constraint")
	}
}

func TestResolveAcceptsValidVersion(t *testing.T) {
	r := New(func(name string) (map[string]types.Type, error) {
		if name != "collections" {
			t.Fatalf("expected fetch for bare module name, got %q", name)
		}
		return map[string]types.Type{"x": types.Primitive{Name: types.Int}}, nil
	})
	exports, err := r.Resolve("collections@v1.2.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := exports["x"]; !ok {
		t.Fatalf("expected export %q, got %#v", "x", exports)
	}
}

func TestPrefetchConcurrent(t *testing.T) {
	want := map[string]map[string]types.Type{
		"a": {"x": types.Primitive{Name: types.Int}},
		"b": {"y": types.Primitive{Name: types.String}},
		"c": {"z": types.Primitive{Name: types.Boolean}},
	}
	r := New(func(name string) (map[string]types.Type, error) {
		return want[name], nil
	})
	if err := r.Prefetch(context.Background(), []string{"a", "b", "c"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for spec := range want {
		exports, err := r.Resolve(spec)
		if err != nil {
			t.Fatalf("unexpected error resolving %q: %v", spec, err)
		}
		if len(exports) != 1 {
			t.Fatalf("expected exactly one export for %q, got %#v", spec, exports)
		}
	}
}

func TestPrefetchPropagatesFetchError(t *testing.T) {
	r := New(func(name string) (map[string]types.Type, error) {
		if name == "broken" {
			return nil, errBroken
		}
		return map[string]types.Type{}, nil
	})
	err := r.Prefetch(context.Background(), []string{"ok", "broken"})
	if err == nil {
		t.Fatal("expected the broken specifier's fetch error to propagate")
	}
}

var errBroken = testError("broken module")

type testError string

func (e testError) Error() string { return string(e) }
