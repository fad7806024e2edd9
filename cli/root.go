// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli implements the pfy command tree.
package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/personify/personify-core/auth"
	"github.com/personify/personify-core/installer"
	"github.com/personify/personify-core/logger"
	"github.com/personify/personify-core/registry"
	"github.com/personify/personify-core/scope"
)

var (
	version = "dev"

	cfgFile   string
	scopeFlag string
	debugFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "pfy",
	Short: "Install and manage personality artifacts",
	Long: `pfy installs small JSON personality artifacts from the Personify
registry, from hosted source trees, or from local files, and records
them per project or globally.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.InitializeWithDebug(flagDebug{})
		return validateScopeFlag()
	},
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: $XDG_CONFIG_HOME/personify/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&scopeFlag, "scope", "s", "",
		"target scope: project or global (default: project when inside one)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"enable debug logging")
	rootCmd.PersistentFlags().String("registry", "",
		"registry API base URL")

	_ = viper.BindPFlag("registry.base_url", rootCmd.PersistentFlags().Lookup("registry"))
}

func initConfig() {
	viper.SetDefault("registry.base_url", registry.DefaultBaseURL)
	viper.SetDefault("registry.fallback_url", registry.DefaultFallbackURL)
	viper.SetDefault("registry.source_url", registry.DefaultSourceBaseURL)
	viper.SetDefault("registry.timeout", registry.DefaultTimeout)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(filepath.Join(xdg.ConfigHome, "personify"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("PERSONIFY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv("registry.base_url", "PERSONIFY_REGISTRY_URL")

	// A missing config file is not an error; defaults and env cover it.
	_ = viper.ReadInConfig()
}

// flagDebug adapts the --debug flag for logger initialization.
type flagDebug struct{}

func (flagDebug) IsDebug() bool { return debugFlag }

func validateScopeFlag() error {
	switch scope.Scope(scopeFlag) {
	case "", scope.Project, scope.Global:
		return nil
	default:
		return fmt.Errorf("invalid scope %q: must be %q or %q", scopeFlag, scope.Project, scope.Global)
	}
}

func targetScope() scope.Scope {
	return scope.Scope(scopeFlag)
}

func buildClient() (*registry.Client, error) {
	fallback := registry.NewStaticSource(
		registry.WithStaticURL(viper.GetString("registry.fallback_url")))

	return registry.NewClient(
		registry.WithBaseURL(viper.GetString("registry.base_url")),
		registry.WithTimeout(viper.GetDuration("registry.timeout")),
		registry.WithTokenSource(auth.NewStore()),
		registry.WithFallback(fallback),
	)
}

func buildInstaller() (*installer.Installer, error) {
	client, err := buildClient()
	if err != nil {
		return nil, err
	}
	src := registry.NewSourceFetcher(
		registry.WithSourceBaseURL(viper.GetString("registry.source_url")))
	return installer.New(client, src), nil
}
