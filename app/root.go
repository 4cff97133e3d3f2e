// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "spoolkeeper",
	Short: "spoolkeeper manages the spool inventory settings store",
	Long: `spoolkeeper is a maintenance tool for the spool inventory database.
It applies and reverts versioned data migrations against the settings
store, such as installing the NFC Tag ID extra field for spools.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
