// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/personify/personify-core/installer"
)

var installForce bool

var installCmd = &cobra.Command{
	Use:     "install <specifier>...",
	Aliases: []string{"i", "add"},
	Short:   "Install one or more personas",
	Long: `Install personas from the registry, a hosted source tree, or a
local file.

Specifier forms:
  alaric                   registry, latest version
  alaric@1.2.0             registry, pinned version
  @morphist/alaric         registry, publisher namespace
  hash:3f4a9c21b8d0e7f2    content digest prefix (16+ characters)
  github:morphist/personas@v2
  ./personas/alaric.json   local file or directory

A batch install processes every specifier; failures are reported
per specifier and never abort the rest.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inst, err := buildInstaller()
		if err != nil {
			return err
		}

		opts := installer.Options{Scope: targetScope(), Force: installForce}
		items := inst.InstallAll(cmd.Context(), args, opts)

		failed := 0
		for _, item := range items {
			switch {
			case item.Err != nil:
				failed++
				fmt.Fprintf(os.Stderr, "error: %s: %v\n", item.Specifier, item.Err)
			case item.Result.AlreadyInstalled:
				fmt.Printf("%s@%s already installed (%s)\n",
					item.Result.Record.Name, item.Result.Record.Version, item.Result.Scope)
			default:
				fmt.Printf("installed %s@%s (%s, %s)\n",
					item.Result.Record.Name, item.Result.Record.Version,
					item.Result.Scope, item.Result.Record.Trust)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d installs failed", failed, len(items))
		}
		return nil
	},
}

func init() {
	installCmd.Flags().BoolVarP(&installForce, "force", "f", false,
		"reinstall even when an up-to-date record exists")
	rootCmd.AddCommand(installCmd)
}
