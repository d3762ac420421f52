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
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Module maps a (vanity) import path prefix to the version control
// repository hosting it. The field keys are the same as in the well-known
// modules.json format, so existing module tables can be used unchanged.
type Module struct {
	// ImportPath is the module's import path prefix, such as
	// "golang.org/x/mod", without any leading or trailing slashes.
	ImportPath string `json:"module" yaml:"module" toml:"module"`
	// VCS is an opaque version control system label, such as "git", "hg", or
	// "svn", that is passed on verbatim to the go tool.
	VCS string `json:"vcs" yaml:"vcs" toml:"vcs"`
	// Repository is the absolute URL of the remote repository.
	Repository string `json:"repo" yaml:"repo" toml:"repo"`
	// Source optionally points documentation viewers to a source browser
	// using a "go-source" meta tag.
	Source *SourceBrowser `json:"source,omitempty" yaml:"source,omitempty" toml:"source,omitempty"`
	// Homepage optionally is an absolute URL human visitors get redirected
	// to.
	Homepage string `json:"homepage,omitempty" yaml:"homepage,omitempty" toml:"homepage,omitempty"`
}

// SourceBrowser describes the URLs of a source browser for a module. The Dir
// and File templates contain the placeholders "{dir}", "{file}", and
// "{line}" which are filled in by the consumers of the go-source meta tag,
// but never by us.
type SourceBrowser struct {
	Home string `json:"home" yaml:"home" toml:"home"`
	Dir  string `json:"dir" yaml:"dir" toml:"dir"`
	File string `json:"file" yaml:"file" toml:"file"`
}

// Validate checks the module for well-formedness, returning an error
// describing the first problem found, or nil.
func (m Module) Validate() error {
	switch {
	case m.ImportPath == "":
		return errors.New("empty import path")
	case strings.HasPrefix(m.ImportPath, "/") || strings.HasSuffix(m.ImportPath, "/"):
		return fmt.Errorf("import path %q must not start or end with a slash", m.ImportPath)
	case strings.ContainsAny(m.ImportPath, whitespace):
		return fmt.Errorf("import path %q must not contain whitespace", m.ImportPath)
	}
	if m.VCS == "" || strings.ContainsAny(m.VCS, whitespace) {
		return fmt.Errorf("invalid vcs label %q", m.VCS)
	}
	if err := absoluteURL("repo", m.Repository); err != nil {
		return err
	}
	if m.Homepage != "" {
		if err := absoluteURL("homepage", m.Homepage); err != nil {
			return err
		}
	}
	if src := m.Source; src != nil {
		if src.Home == "" || src.Dir == "" || src.File == "" {
			return errors.New("source browser requires home, dir, and file")
		}
		for _, tmpl := range []string{src.Home, src.Dir, src.File} {
			if strings.ContainsAny(tmpl, whitespace) {
				return fmt.Errorf("source browser URL %q must not contain whitespace", tmpl)
			}
		}
	}
	return nil
}

// whitespace would split the space-separated content of the go-import and
// go-source meta tags into additional fields.
const whitespace = " \t\r\n"

// absoluteURL returns an error if s isn't an absolute URL without any
// whitespace; the URL's reachability isn't checked.
func absoluteURL(what, s string) error {
	if strings.ContainsAny(s, whitespace) {
		return fmt.Errorf("%s URL %q must not contain whitespace", what, s)
	}
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid %s URL %q: %w", what, s, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%s URL %q is not absolute", what, s)
	}
	return nil
}
