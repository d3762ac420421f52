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
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned when trying to load a module table from a
// file with an extension other than ".json", ".yaml", ".yml", or ".toml".
var ErrUnsupportedFormat = errors.New("unsupported module table format")

// tomlTable is the TOML document layout of a module table, as TOML documents
// cannot have a top-level array: a sequence of [[module]] tables.
type tomlTable struct {
	Modules []Module `toml:"module"`
}

// LoadTable loads the modules from the named file inside fsys and returns a
// new Table for them. See LoadModules for the supported file formats.
//
// In order to load a module table from the OS file system, use os.DirFS:
//
//	t, err := LoadTable(os.DirFS("/etc/vanityserve"), "modules.yaml")
func LoadTable(fsys fs.FS, name string) (*Table, error) {
	modules, err := LoadModules(fsys, name)
	if err != nil {
		return nil, err
	}
	t, err := NewTable(modules...)
	if err != nil {
		return nil, fmt.Errorf("invalid module table %q: %w", name, err)
	}
	return t, nil
}

// LoadModules reads the list of modules from the named file inside fsys,
// without validating the modules. The format is determined by the file name
// extension: ".json" (the modules.json format), ".yaml" or ".yml", and
// ".toml" (a sequence of [[module]] tables). Unknown fields are rejected in
// all formats.
func LoadModules(fsys fs.FS, name string) ([]Module, error) {
	ext := strings.ToLower(path.Ext(name))
	switch ext {
	case ".json", ".yaml", ".yml", ".toml":
	default:
		return nil, fmt.Errorf("cannot load module table %q: %w", name, ErrUnsupportedFormat)
	}
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("cannot load module table: %w", err)
	}
	defer func() { _ = f.Close() }()
	contents, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("cannot read module table %q: %w", name, err)
	}
	var modules []Module
	switch ext {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(contents))
		dec.DisallowUnknownFields()
		err = dec.Decode(&modules)
		if err == nil {
			if _, terr := dec.Token(); terr != io.EOF {
				err = errors.New("unexpected data after module list")
			}
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(contents))
		dec.KnownFields(true)
		err = dec.Decode(&modules)
		if errors.Is(err, io.EOF) {
			err = nil // empty document, empty table.
		}
	case ".toml":
		var doc tomlTable
		dec := toml.NewDecoder(bytes.NewReader(contents))
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
		modules = doc.Modules
	}
	if err != nil {
		return nil, fmt.Errorf("cannot decode module table %q: %w", name, err)
	}
	return modules, nil
}
