// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/personify/personify-core/installer"
)

var uninstallCmd = &cobra.Command{
	Use:     "uninstall <name>...",
	Aliases: []string{"rm", "remove"},
	Short:   "Remove installed personas",
	Long: `Remove persona records from the resolved scope. Artifacts installed
from the registry or a source tree are deleted; locally referenced
files are never touched.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		inst, err := buildInstaller()
		if err != nil {
			return err
		}

		missing := 0
		for _, name := range args {
			removed, err := inst.Uninstall(name, installer.Options{Scope: targetScope()})
			if err != nil {
				return fmt.Errorf("uninstalling %s: %w", name, err)
			}
			if !removed {
				missing++
				fmt.Printf("%s is not installed\n", name)
				continue
			}
			fmt.Printf("removed %s\n", name)
		}
		if missing > 0 {
			return fmt.Errorf("%d of %d personas were not installed", missing, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uninstallCmd)
}
