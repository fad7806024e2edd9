// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <name>",
	Short: "Show registry metadata for a persona",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}

		entry, err := client.Lookup(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("name:     %s\n", args[0])
		if entry.Metadata.DisplayName != "" {
			fmt.Printf("display:  %s\n", entry.Metadata.DisplayName)
		}
		if entry.Metadata.Tagline != "" {
			fmt.Printf("tagline:  %s\n", entry.Metadata.Tagline)
		}
		if entry.Metadata.Category != "" {
			fmt.Printf("category: %s\n", entry.Metadata.Category)
		}
		if len(entry.Metadata.Tags) > 0 {
			fmt.Printf("tags:     %s\n", strings.Join(entry.Metadata.Tags, ", "))
		}
		if entry.Metadata.Publisher != "" {
			fmt.Printf("publisher: %s\n", entry.Metadata.Publisher)
		}
		fmt.Printf("trust:    %s\n", entry.Metadata.Trust)
		fmt.Printf("latest:   %s\n", entry.Latest)

		versions := make([]string, 0, len(entry.Versions))
		for v := range entry.Versions {
			versions = append(versions, v)
		}
		sort.Strings(versions)
		fmt.Printf("versions: %s\n", strings.Join(versions, ", "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
