// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List installed personas",
	Long: `List installed personas across the project and global scopes.
Identical content installed in both scopes is shown once with both
scopes attached. A trailing marker flags artifacts whose content has
drifted from the recorded digest.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		inst, err := buildInstaller()
		if err != nil {
			return err
		}

		records, err := inst.List()
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("no personas installed")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tVERSION\tSCOPE\tSOURCE\tTRUST")
		for _, rec := range records {
			scopes := make([]string, 0, len(rec.Scopes))
			for _, s := range rec.Scopes {
				scopes = append(scopes, string(s))
			}
			name := rec.Record.Name
			if rec.Modified {
				name += " (modified)"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				name, rec.Record.Version, strings.Join(scopes, ","),
				rec.Record.Source, rec.Record.Trust)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
