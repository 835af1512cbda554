package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the release version of questgen.
const Version = "0.3.0"

var build = "unknown"

// SetBuild sets the build string from main
func SetBuild(b string) {
	build = b
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "questgen %s (%s)\n", Version, build)
		},
	}
}
