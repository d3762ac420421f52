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
	"net/http"
	"strings"
)

// ForwardedPrefixHeader, if present and trusted, specifies the prefix that
// needs to be prepended to the request's URL path in order to learn the
// original path when hitting a path rewriting proxy.
const ForwardedPrefixHeader = "X-Forwarded-Prefix"

// GoGetParam is the name of the URL query parameter the go tool sets to "1"
// when asking for the go-import (and go-source) meta tags of an import path.
const GoGetParam = "go-get"

// DefaultRedirectStatus is the HTTP status code used when redirecting human
// visitors, unless specified otherwise using WithRedirectStatus.
const DefaultRedirectStatus = http.StatusFound

// Handler implements an http.Handler that serves the go-import meta tags for
// the modules in its Table to the go tool, and redirects human visitors to
// the module homepages, if any. For modules without a homepage, Handler
// serves a landing page linking to the module repository instead.
type Handler struct {
	table          *Table
	redirectStatus int    // status code for all redirects.
	rootRedirect   string // optional redirect target for the bare root.
	trustPrefix    bool   // honor X-Forwarded-Prefix headers.
}

// HandlerOption sets optional properties at the time of creating a Handler.
type HandlerOption func(*Handler)

// NewHandler returns a new HTTP handler serving the modules of the specified
// table.
func NewHandler(table *Table, opts ...HandlerOption) *Handler {
	h := &Handler{
		table:          table,
		redirectStatus: DefaultRedirectStatus,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// WithRedirectStatus sets the HTTP status code used for redirecting human
// visitors. It panics if status isn't one of 301, 302, 303, 307, or 308.
func WithRedirectStatus(status int) HandlerOption {
	if !IsRedirectStatus(status) {
		panic(fmt.Sprintf("invalid redirect status code %d", status))
	}
	return func(h *Handler) {
		h.redirectStatus = status
	}
}

// WithRootRedirect redirects human visitors of the bare root "/" to the
// specified URL, instead of telling them that there is no module. The go
// tool still gets a 404 for the root.
func WithRootRedirect(url string) HandlerOption {
	return func(h *Handler) {
		h.rootRedirect = url
	}
}

// WithForwardedPrefix makes the Handler honor X-Forwarded-Prefix headers
// from path rewriting proxies, resolving the original request path instead of
// the rewritten one. Only use this option behind proxies that either set or
// strip this header, as otherwise clients can make up request paths.
func WithForwardedPrefix() HandlerOption {
	return func(h *Handler) {
		h.trustPrefix = true
	}
}

// IsRedirectStatus returns true if status is an HTTP redirect status code
// suitable for sending visitors to another URL.
func IsRedirectStatus(status int) bool {
	switch status {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return true
	}
	return false
}

// ServeHTTP resolves the request path to a module and then either serves
// the module's meta tags if asked for by the go tool, redirects to the
// module's homepage, or serves a landing page. Request paths not resolving
// to any module get a "404 Not Found" page.
//
// The order of checks is important: the go tool doesn't follow redirects
// when asking for meta tags, so "?go-get=1" always takes precedence over
// any homepage redirect.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	reqPath := NormalizePath(h.originalReqPath(r))
	goget := isGoGet(r)
	m, ok := h.table.Lookup(reqPath)
	switch {
	case !ok:
		if reqPath == "" && h.rootRedirect != "" && !goget {
			http.Redirect(w, r, h.rootRedirect, h.redirectStatus)
			return
		}
		serveHTML(w, http.StatusNotFound, notFoundTmpl, reqPath)
	case goget:
		serveHTML(w, http.StatusOK, metaTmpl, m)
	case m.Homepage != "":
		http.Redirect(w, r, m.Homepage, h.redirectStatus)
	default:
		serveHTML(w, http.StatusOK, landingTmpl, m)
	}
}

// originalReqPath returns the original request path when hitting the first
// proxy in a chain, if forwarding information is trusted and present.
// Otherwise, it returns the request URL path as is. The path is kept in its
// escaped form and never cleaned, so "%2F" and "//" don't resolve to modules.
func (h *Handler) originalReqPath(r *http.Request) string {
	reqPath := r.URL.EscapedPath()
	if !h.trustPrefix {
		return reqPath
	}
	if fwprefix := r.Header.Get(ForwardedPrefixHeader); fwprefix != "" {
		return "/" + strings.Trim(fwprefix, "/") + reqPath
	}
	return reqPath
}

// isGoGet returns true if the request has been sent by the go tool, asking
// for meta tags. Malformed queries count as not asking.
func isGoGet(r *http.Request) bool {
	return r.URL.Query().Get(GoGetParam) == "1"
}
