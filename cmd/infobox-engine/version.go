// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// buildDate is set at build time via ldflags, alongside version.
var buildDate = ""

// versionString describes the running binary: version, build date when
// stamped, and the Go toolchain it was built with.
func versionString() string {
	if buildDate == "" {
		return fmt.Sprintf("%s (%s)", version, runtime.Version())
	}
	return fmt.Sprintf("%s (built %s, %s)", version, buildDate, runtime.Version())
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of infobox-engine",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "infobox-engine %s\n", versionString())
	},
}

func init() {
	rootCmd.Version = versionString()
	rootCmd.AddCommand(versionCmd)
}
