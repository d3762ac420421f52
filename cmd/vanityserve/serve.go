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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/thediveo/vanityserve"
)

// serve loads the module table and then serves it until the context gets
// cancelled.
func serve(ctx context.Context, s settings, logger *log.Logger, accessLog io.Writer) error {
	table, err := loadTable(s.Modules)
	if err != nil {
		return err
	}
	logger.Info("loaded module table", "file", s.Modules, "modules", table.Len())
	for _, m := range table.Modules() {
		logger.Debug("registered module", "module", m.ImportPath, "vcs", m.VCS, "repo", m.Repository,
			"homepage", m.Homepage)
	}
	if !s.AccessLog {
		accessLog = nil
	}
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("cannot listen on %s: %w", s.Addr, err)
	}
	return run(ctx, ln, newRouter(table, s, accessLog), s.ShutdownTimeout, logger)
}

// newRouter returns the HTTP handler serving the specified module table,
// only answering GET and HEAD requests. If accessLog isn't nil, requests get
// logged to it in Combined Log Format.
func newRouter(table *vanityserve.Table, s settings, accessLog io.Writer) http.Handler {
	opts := []vanityserve.HandlerOption{vanityserve.WithRedirectStatus(s.RedirectStatus)}
	if s.RootRedirect != "" {
		opts = append(opts, vanityserve.WithRootRedirect(s.RootRedirect))
	}
	if s.TrustPrefix {
		opts = append(opts, vanityserve.WithForwardedPrefix())
	}
	r := mux.NewRouter()
	// Path normalization is up to the vanity handler; otherwise, the router
	// would redirect unclean paths on its own.
	r.SkipClean(true)
	r.Methods(http.MethodGet, http.MethodHead).Handler(vanityserve.NewHandler(table, opts...))
	if accessLog == nil {
		return r
	}
	return handlers.CombinedLoggingHandler(accessLog, r)
}

// run serves HTTP requests on the specified listener using handler until
// the context gets cancelled, then gracefully shuts down, waiting at most
// shutdownTimeout for in-flight requests to finish.
func run(ctx context.Context, ln net.Listener, handler http.Handler, shutdownTimeout time.Duration, logger *log.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	logger.Info("serving vanity import paths", "address", ln.Addr().String())

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("stopped")
	return nil
}
