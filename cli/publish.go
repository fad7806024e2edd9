// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/personify/personify-core/persona"
)

var publishCmd = &cobra.Command{
	Use:   "publish <file>",
	Short: "Publish a persona to the registry",
	Long: `Publish a persona artifact. The file is validated locally before
upload; publishing requires a login (see "pfy login").`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := persona.LoadFile(args[0])
		if err != nil {
			return err
		}
		if err := p.Validate(); err != nil {
			return err
		}

		client, err := buildClient()
		if err != nil {
			return err
		}

		resp, err := client.Publish(cmd.Context(), p.Content)
		if err != nil {
			return err
		}

		fmt.Printf("published %s@%s (digest %s)\n", resp.Name, resp.Version, resp.Digest)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(publishCmd)
}
