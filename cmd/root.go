// Package cmd implements the ipa CLI: mounting a read-only photo-album
// filesystem over attached mobile devices, plus read-only introspection
// subcommands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version, Commit and Date are overridden at build time via -ldflags,
	// matching the teacher's own release-metadata convention.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var gvfsDir string

var rootCmd = &cobra.Command{
	Use:     "ipa <mountpoint>",
	Short:   "ipa: mount attached mobile devices' photo albums read-only",
	Args:    cobra.ExactArgs(1),
	Version: fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMount(args[0])
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&gvfsDir, "gvfs-dir", "", "Override the GVFS directory scanned for attached devices (defaults to /run/user/<uid>/gvfs)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(mcpCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ipa version %s (commit %s, built %s)\n", Version, Commit, Date)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
