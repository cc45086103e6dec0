// Package resolver implements the ModuleResolver collaborator spec §6
// names: given an import specifier, return the map of exported names to
// Types the checker treats as opaque bindings.
//
// Grounded on the teacher's internal/modules package in shape only (a
// named registry of modules, each carrying its own export set) — the
// teacher's Module additionally owns parsed files and a dependency-order
// walk over them, neither of which applies here since a specifier
// resolves straight to an already-computed export map, never to source
// text.
package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/funvibe/tycore/internal/types"
	"golang.org/x/mod/semver"
	"golang.org/x/sync/errgroup"
)

// Fetcher produces the exported-Type map for one module specifier (sans
// any version suffix). Implementations typically read a compiled module
// manifest or another compilation unit's checker output.
type Fetcher func(specifier string) (map[string]types.Type, error)

// Registry is an in-process ModuleResolver: a static set of modules,
// each prefetched once and cached by specifier. The module graph's
// in-degree is fixed once desugaring hands the checker its import list
// (spec §6), so Prefetch can fan the whole set out concurrently ahead of
// a single-threaded checking pass (spec §5).
type Registry struct {
	fetch Fetcher
	cache map[string]map[string]types.Type
}

// New builds a Registry backed by fetch. A nil fetch is valid for tests
// that populate the cache directly via Define.
func New(fetch Fetcher) *Registry {
	return &Registry{fetch: fetch, cache: make(map[string]map[string]types.Type)}
}

// Define registers a module's export map directly, bypassing fetch. Used
// by tests and by Prefetch once a fetch completes.
func (r *Registry) Define(specifier string, exports map[string]types.Type) {
	r.cache[specifier] = exports
}

// Prefetch resolves every specifier in specifiers concurrently via
// errgroup, populating the cache so that later Resolve calls are plain
// map lookups. It stops at the first fetch error, per errgroup.Group's
// usual first-error-wins semantics.
func (r *Registry) Prefetch(ctx context.Context, specifiers []string) error {
	if r.fetch == nil {
		return nil
	}
	g, _ := errgroup.WithContext(ctx)
	results := make([]map[string]types.Type, len(specifiers))
	for i, spec := range specifiers {
		i, spec := i, spec
		g.Go(func() error {
			name, version, err := splitSpecifier(spec)
			if err != nil {
				return err
			}
			exports, err := r.fetch(name)
			if err != nil {
				return fmt.Errorf("resolving %q: %w", spec, err)
			}
			if version != "" && !semver.IsValid(version) {
				return fmt.Errorf("resolving %q: invalid version constraint %q", spec, version)
			}
			results[i] = exports
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for i, spec := range specifiers {
		r.cache[spec] = results[i]
	}
	return nil
}

// Resolve implements check.ModuleResolver. A specifier already present
// in the cache (via Prefetch or Define) is served straight from it;
// otherwise it falls back to a direct, synchronous fetch.
func (r *Registry) Resolve(specifier string) (map[string]types.Type, error) {
	if exports, ok := r.cache[specifier]; ok {
		return exports, nil
	}
	if r.fetch == nil {
		return nil, fmt.Errorf("unknown module %q", specifier)
	}
	name, version, err := splitSpecifier(specifier)
	if err != nil {
		return nil, err
	}
	if version != "" && !semver.IsValid(version) {
		return nil, fmt.Errorf("invalid version constraint %q in %q", version, specifier)
	}
	exports, err := r.fetch(name)
	if err != nil {
		return nil, err
	}
	r.cache[specifier] = exports
	return exports, nil
}

// splitSpecifier pulls an optional "@version" suffix off a specifier,
// e.g. "collections@v1.2.0" resolves the module "collections" pinned to
// v1.2.0. A specifier with no "@" carries no version constraint.
func splitSpecifier(specifier string) (name, version string, err error) {
	name, version, found := strings.Cut(specifier, "@")
	if !found {
		return specifier, "", nil
	}
	if name == "" {
		return "", "", fmt.Errorf("empty module name in specifier %q", specifier)
	}
	return name, version, nil
}
