// Copyright 2026 Harald Albrecht.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vanityserve

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Table is an immutable set of modules, resolving import paths to their
// modules using longest-prefix matching. A Table can be used concurrently
// without any further synchronization.
type Table struct {
	modules []Module // sorted by descending import path length.
}

// NewTable returns a new Table for the specified modules, after validating
// them. Instead of bailing out on the first invalid module, NewTable
// reports all problems found in a single (multi) error.
//
// As two different import paths of the same length can never both match
// the same request path, unique import paths guarantee that there is
// always at most one longest match.
func NewTable(modules ...Module) (*Table, error) {
	var errs *multierror.Error
	seen := make(map[string]int, len(modules))
	for idx, m := range modules {
		if err := m.Validate(); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("module #%d: %w", idx, err))
			continue
		}
		if first, ok := seen[m.ImportPath]; ok {
			errs = multierror.Append(errs, fmt.Errorf(
				"module #%d: duplicate import path %q, already registered by module #%d",
				idx, m.ImportPath, first))
			continue
		}
		seen[m.ImportPath] = idx
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	t := &Table{modules: make([]Module, len(modules))}
	copy(t.modules, modules)
	sort.SliceStable(t.modules, func(i, j int) bool {
		return len(t.modules[i].ImportPath) > len(t.modules[j].ImportPath)
	})
	return t, nil
}

// Len returns the number of modules in this table.
func (t *Table) Len() int { return len(t.modules) }

// Modules returns the modules of this table in resolution order, that is,
// longest import paths first.
func (t *Table) Modules() []Module {
	modules := make([]Module, len(t.modules))
	copy(modules, t.modules)
	return modules
}

// Lookup returns the module with the longest import path either matching
// the specified (normalized) path exactly or being a prefix of path up to a
// "/" path separator. Otherwise, Lookup returns false. The empty path never
// matches.
func (t *Table) Lookup(path string) (Module, bool) {
	if path == "" {
		return Module{}, false
	}
	for _, m := range t.modules {
		if path == m.ImportPath ||
			(strings.HasPrefix(path, m.ImportPath) && path[len(m.ImportPath)] == '/') {
			return m, true
		}
	}
	return Module{}, false
}

// Resolve is like Lookup, but first normalizes the specified raw URL path.
func (t *Table) Resolve(rawPath string) (Module, bool) {
	return t.Lookup(NormalizePath(rawPath))
}

// NormalizePath returns the specified URL path with all leading and
// trailing slashes removed. The root path "/" thus becomes "".
func NormalizePath(p string) string {
	return strings.Trim(p, "/")
}
