package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <drivers|vehicles|mills|trips|collections> <id>",
		Short: "Show a single fleet entity as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, id := args[0], args[1]

			var (
				entity any
				err    error
			)
			switch target {
			case "drivers":
				entity, err = client.FetchDriver(id)
			case "vehicles":
				entity, err = client.FetchVehicle(id)
			case "mills":
				entity, err = client.FetchMill(id)
			case "trips":
				entity, err = client.FetchTrip(id)
			case "collections":
				entity, err = client.FetchCollection(id)
			default:
				return fmt.Errorf("unknown target %q (valid: drivers, vehicles, mills, trips, collections)", target)
			}
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(entity, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal output: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
