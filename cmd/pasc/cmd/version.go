package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set by the release build; "dev" for local/source builds.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the pasc version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println("pasc", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
