package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete the stored database blob",
		Long: "Discard the persisted database and close the current handle. The next\n" +
			"command starts from a freshly seeded database.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := manager.Reset(); err != nil {
				return fmt.Errorf("reset database: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Fleet database reset")
			return nil
		},
	}
}

func newSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Persist the database blob now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := manager.Save(); err != nil {
				return fmt.Errorf("save database: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Fleet database saved")
			return nil
		},
	}
}
