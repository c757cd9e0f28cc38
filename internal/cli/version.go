package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the ffb CLI version.
const Version = "0.1.0"

const modulePath = "github.com/mgufindo/ffb-swt"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the ffb version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "ffb v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
