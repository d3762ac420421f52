// Copyright 2026 Harald Albrecht.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy
// of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations
// under the License.

package vanityserve

import (
	"github.com/hashicorp/go-multierror"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/thediveo/success"
)

var xmod = Module{
	ImportPath: "golang.org/x/mod",
	VCS:        "git",
	Repository: "https://go.googlesource.com/mod",
	Source: &SourceBrowser{
		Home: "https://cs.opensource.google/go/x/mod",
		Dir:  "https://cs.opensource.google/go/x/mod/+/refs/heads/master/{dir}",
		File: "https://cs.opensource.google/go/x/mod/+/refs/heads/master/{dir}/{file}#L{line}",
	},
	Homepage: "https://pkg.go.dev/golang.org/x/mod",
}

var xmodsumdb = Module{
	ImportPath: "golang.org/x/mod/sumdb",
	VCS:        "git",
	Repository: "https://example.org/sumdb",
}

var hgthing = Module{
	ImportPath: "example.org/hg/thing",
	VCS:        "hg",
	Repository: "https://hg.example.org/thing",
}

var _ = Describe("module table", func() {

	DescribeTable("validates modules",
		func(m Module, expectedErr string) {
			err := m.Validate()
			if expectedErr == "" {
				Expect(err).NotTo(HaveOccurred())
				return
			}
			Expect(err).To(MatchError(ContainSubstring(expectedErr)))
		},
		Entry("fully fledged module", xmod, ""),
		Entry("minimal module", hgthing, ""),
		Entry("opaque vcs label", Module{ImportPath: "a/b", VCS: "fossil", Repository: "https://a.example/b"}, ""),
		Entry("empty import path", Module{VCS: "git", Repository: "https://a.example/b"}, "empty import path"),
		Entry("leading slash", Module{ImportPath: "/a/b", VCS: "git", Repository: "https://a.example/b"}, "slash"),
		Entry("trailing slash", Module{ImportPath: "a/b/", VCS: "git", Repository: "https://a.example/b"}, "slash"),
		Entry("whitespace", Module{ImportPath: "a /b", VCS: "git", Repository: "https://a.example/b"}, "whitespace"),
		Entry("missing vcs", Module{ImportPath: "a/b", Repository: "https://a.example/b"}, "invalid vcs"),
		Entry("relative repo", Module{ImportPath: "a/b", VCS: "git", Repository: "/b"}, "repo URL"),
		Entry("relative homepage", Module{ImportPath: "a/b", VCS: "git", Repository: "https://a.example/b", Homepage: "docs/"}, "homepage URL"),
		Entry("whitespace in repo", Module{ImportPath: "a/b", VCS: "git", Repository: "https://a.example/a b"}, "whitespace"),
		Entry("whitespace in homepage", Module{ImportPath: "a/b", VCS: "git", Repository: "https://a.example/b", Homepage: "https://a.example/\tdocs"}, "whitespace"),
		Entry("whitespace in source browser", Module{ImportPath: "a/b", VCS: "git", Repository: "https://a.example/b",
			Source: &SourceBrowser{Home: "https://a.example", Dir: "https://a.example/{dir}", File: "https://a.example/{dir}/{file} #L{line}"}}, "whitespace"),
		Entry("incomplete source browser", Module{ImportPath: "a/b", VCS: "git", Repository: "https://a.example/b",
			Source: &SourceBrowser{Home: "https://a.example"}}, "source browser"),
	)

	It("sorts modules by descending import path length", func() {
		t := Successful(NewTable(hgthing, xmod, xmodsumdb))
		Expect(t.Len()).To(Equal(3))
		paths := []string{}
		for _, m := range t.Modules() {
			paths = append(paths, m.ImportPath)
		}
		Expect(paths).To(Equal([]string{
			"golang.org/x/mod/sumdb",
			"example.org/hg/thing",
			"golang.org/x/mod",
		}))
	})

	It("doesn't leak its modules", func() {
		modules := []Module{xmod}
		t := Successful(NewTable(modules...))
		modules[0].ImportPath = "foo.bar/baz"
		t.Modules()[0].ImportPath = "foo.bar/baz"
		Expect(t.Modules()[0].ImportPath).To(Equal("golang.org/x/mod"))
	})

	It("accepts an empty table", func() {
		t := Successful(NewTable())
		Expect(t.Len()).To(BeZero())
		_, ok := t.Lookup("golang.org/x/mod")
		Expect(ok).To(BeFalse())
	})

	It("reports all invalid and duplicate modules at once", func() {
		dupe := xmod
		dupe.Repository = "https://example.org/elsewhere"
		t, err := NewTable(xmod, Module{ImportPath: "/a"}, hgthing, dupe)
		Expect(t).To(BeNil())
		var merr *multierror.Error
		Expect(err).To(BeAssignableToTypeOf(merr))
		merr = err.(*multierror.Error)
		Expect(merr.Errors).To(HaveLen(2))
		Expect(merr.Errors[0]).To(MatchError(ContainSubstring("module #1")))
		Expect(merr.Errors[1]).To(MatchError(And(
			ContainSubstring("module #3"),
			ContainSubstring(`duplicate import path "golang.org/x/mod"`),
			ContainSubstring("module #0"))))
	})

	DescribeTable("normalizes paths",
		func(path, expected string) {
			Expect(NormalizePath(path)).To(Equal(expected))
		},
		Entry(nil, "/foo/bar/", "foo/bar"),
		Entry(nil, "foo/bar", "foo/bar"),
		Entry(nil, "/foo/bar", "foo/bar"),
		Entry(nil, "///foo/bar//", "foo/bar"),
		Entry(nil, "/foo//bar", "foo//bar"),
		Entry(nil, "/", ""),
		Entry(nil, "//", ""),
		Entry(nil, "", ""),
	)

	DescribeTable("resolves paths to the longest matching import path",
		func(path string, expected string) {
			t := Successful(NewTable(xmod, xmodsumdb, hgthing))
			m, ok := t.Lookup(path)
			if expected == "" {
				Expect(ok).To(BeFalse())
				Expect(m).To(BeZero())
				return
			}
			Expect(ok).To(BeTrue())
			Expect(m.ImportPath).To(Equal(expected))
		},
		Entry("exact module", "golang.org/x/mod", "golang.org/x/mod"),
		Entry("package inside module", "golang.org/x/mod/module", "golang.org/x/mod"),
		Entry("deeply nested package", "golang.org/x/mod/zip/internal/foo", "golang.org/x/mod"),
		Entry("exact nested module", "golang.org/x/mod/sumdb", "golang.org/x/mod/sumdb"),
		Entry("package inside nested module", "golang.org/x/mod/sumdb/note", "golang.org/x/mod/sumdb"),
		Entry("lookalike of nested module", "golang.org/x/mod/sumdbx", "golang.org/x/mod"),
		Entry("hg module", "example.org/hg/thing/sub", "example.org/hg/thing"),
		Entry("no segment boundary", "golang.org/x/modfile", ""),
		Entry("parent of module", "golang.org/x", ""),
		Entry("unknown", "unknown/pkg", ""),
		Entry("empty path", "", ""),
	)

	It("resolves every module by its import path and below", func() {
		modules := []Module{xmod, xmodsumdb, hgthing}
		t := Successful(NewTable(modules...))
		for _, m := range modules {
			for _, path := range []string{"", "/a", "/a/b", "/a/b/c.d"} {
				got, ok := t.Lookup(m.ImportPath + path)
				Expect(ok).To(BeTrue(), "path %q", m.ImportPath+path)
				Expect(got).To(Equal(m))
			}
		}
	})

	It("resolves raw URL paths", func() {
		t := Successful(NewTable(xmod))
		for _, path := range []string{"/golang.org/x/mod/", "golang.org/x/mod", "/golang.org/x/mod/module"} {
			m, ok := t.Resolve(path)
			Expect(ok).To(BeTrue())
			Expect(m.ImportPath).To(Equal("golang.org/x/mod"))
		}
		_, ok := t.Resolve("/")
		Expect(ok).To(BeFalse())
	})

})
