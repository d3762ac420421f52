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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/thediveo/vanityserve"
)

// envPrefix is the prefix of environment variables overriding flag defaults,
// such as VANITYSERVE_ADDR for --addr.
const envPrefix = "VANITYSERVE"

// settings are the effective settings after merging flags and environment
// variables.
type settings struct {
	Addr            string
	Modules         string
	RedirectStatus  int
	RootRedirect    string
	AccessLog       bool
	TrustPrefix     bool
	LogLevel        log.Level
	ShutdownTimeout time.Duration
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	rootCmd := &cobra.Command{
		Use:   "vanityserve",
		Short: "Serve vanity Go import paths",
		Long: `vanityserve serves vanity Go import paths from a static module table.

It tells the go tool where the repositories of the modules live, using
go-import and go-source meta tags, and redirects human visitors to the
module homepages or otherwise serves them a small landing page.

The module table is a JSON, YAML, or TOML file, for instance:

  - module: example.org/foo
    vcs: git
    repo: https://github.com/example/foo
    homepage: https://pkg.go.dev/example.org/foo

All flags can also be set using environment variables prefixed with
` + envPrefix + `_, such as ` + envPrefix + `_MODULES.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSettings(v)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), s, newLogger(cmd.ErrOrStderr(), s.LogLevel), cmd.OutOrStdout())
		},
	}

	pflags := rootCmd.PersistentFlags()
	pflags.String("log-level", "info", "log level: debug, info, warn, or error")

	flags := rootCmd.Flags()
	flags.String("addr", ":8080", "address to listen on")
	flags.StringP("modules", "m", "", "module table file (.json, .yaml, .yml, .toml)")
	flags.Int("redirect-status", vanityserve.DefaultRedirectStatus,
		"HTTP status code for redirecting visitors: 301, 302, 303, 307, or 308")
	flags.String("root-redirect", "", "URL to redirect visitors of the root to")
	flags.Bool("trust-forwarded-prefix", false, "honor X-Forwarded-Prefix headers set by a path rewriting proxy")
	flags.Bool("access-log", true, "log requests to stdout in Combined Log Format")
	flags.Duration("shutdown-timeout", 10*time.Second, "grace period for in-flight requests when shutting down")

	_ = v.BindPFlags(pflags)
	_ = v.BindPFlags(flags)
	bindEnv(v)

	rootCmd.AddCommand(newValidateCmd(v))
	return rootCmd
}

// bindEnv lets environment variables prefixed with envPrefix override the
// flag defaults; dashes in flag names become underscores.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// newSettings returns the effective settings, rejecting invalid ones.
func newSettings(v *viper.Viper) (settings, error) {
	level, err := log.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return settings{}, fmt.Errorf("invalid log level: %w", err)
	}
	s := settings{
		Addr:            v.GetString("addr"),
		Modules:         v.GetString("modules"),
		RedirectStatus:  v.GetInt("redirect-status"),
		RootRedirect:    v.GetString("root-redirect"),
		AccessLog:       v.GetBool("access-log"),
		TrustPrefix:     v.GetBool("trust-forwarded-prefix"),
		LogLevel:        level,
		ShutdownTimeout: v.GetDuration("shutdown-timeout"),
	}
	if s.Modules == "" {
		return settings{}, fmt.Errorf("missing module table, use --modules or %s_MODULES", envPrefix)
	}
	if !vanityserve.IsRedirectStatus(s.RedirectStatus) {
		return settings{}, fmt.Errorf("invalid redirect status code %d", s.RedirectStatus)
	}
	return s, nil
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          "vanityserve",
		ReportTimestamp: true,
		Level:           level,
	})
}

// loadTable loads the module table from the named file in the OS file
// system.
func loadTable(name string) (*vanityserve.Table, error) {
	return vanityserve.LoadTable(os.DirFS(filepath.Dir(name)), filepath.Base(name))
}
