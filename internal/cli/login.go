package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Check a set of credentials",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := client.Login(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome %s (%s)\n", user.Name, user.Role)
			return nil
		},
	}
}

func newProduceCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "produce <mill-id> <weight>",
		Short: "Record a manual production entry for a mill",
		Long:  "Record a completed fresh fruit bunch collection at a mill without a trip.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			weight, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid weight %q", args[1])
			}
			id, err := client.AddMillProduction(args[0], weight, userID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded collection %s (%.1f t)\n", id, weight)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id to attribute the entry to")
	return cmd
}
