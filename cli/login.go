// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/personify/personify-core/auth"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the registry",
	Long: `Authenticate with the registry using the device authorization flow.
A one-time code is shown; approve it in a browser and the credential
is stored for future publishes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		flow := auth.NewDeviceFlow(viper.GetString("registry.base_url"))

		da, err := flow.Start(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Open %s and enter code: %s\n", da.VerificationURI, da.UserCode)
		fmt.Println("Waiting for approval...")

		creds, err := flow.Poll(cmd.Context(), da)
		if err != nil {
			return err
		}
		if err := auth.NewStore().Save(creds); err != nil {
			return err
		}

		if creds.Handle != "" {
			fmt.Printf("logged in as %s\n", creds.Handle)
		} else {
			fmt.Println("logged in")
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored registry credential",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := auth.NewStore().Clear(); err != nil {
			return err
		}
		fmt.Println("logged out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
