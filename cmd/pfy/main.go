// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

// Command pfy is the Personify package manager CLI.
package main

import (
	"os"

	"github.com/personify/personify-core/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
