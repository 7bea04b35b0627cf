package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	// Version is derandom's release version.
	Version = "1.0.0"
	// GitRepo is derandom's canonical repository path.
	GitRepo = "github.com/vrypan/derandom"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version number and build information for derandom.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("derandom version %s\n", Version)
		fmt.Printf("PRNG detection, state recovery, and prediction\n")
		fmt.Printf("\n")
		fmt.Printf("Repository: %s\n", GitRepo)
	},
}
