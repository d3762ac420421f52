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
	"strings"

	"github.com/charmbracelet/log"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/thediveo/vanityserve"
)

func newValidateCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate a module table file",
		Long: `Validate loads and validates the specified module table file, reporting
all problems found. On success, it lists the modules in the order they are
matched against request paths, longest import paths first.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(v.GetString("log-level"))
			if err != nil {
				return fmt.Errorf("invalid log level: %w", err)
			}
			table, err := loadTable(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderTable(table))
			newLogger(cmd.ErrOrStderr(), level).Info("module table is valid",
				"file", args[0], "modules", table.Len())
			return nil
		},
	}
}

// renderTable returns the modules of table in resolution order as a text
// table.
func renderTable(table *vanityserve.Table) string {
	out := &strings.Builder{}
	tw := tablewriter.NewWriter(out)
	tw.SetHeader([]string{"Module", "VCS", "Repository", "Homepage", "Source"})
	tw.SetAutoWrapText(false)
	for _, m := range table.Modules() {
		source := ""
		if m.Source != nil {
			source = m.Source.Home
		}
		tw.Append([]string{m.ImportPath, m.VCS, m.Repository, m.Homepage, source})
	}
	tw.Render()
	return out.String()
}
