package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mgufindo/ffb-swt/internal/api"
	"github.com/mgufindo/ffb-swt/pkg/types"
)

// listFlags holds the paging and filter flags shared by all list targets.
type listFlags struct {
	page     int
	pageSize int
	search   string
	owner    string
	mill     string
}

func newListCmd() *cobra.Command {
	var lf listFlags

	cmd := &cobra.Command{
		Use:   "list <drivers|vehicles|mills|trips|collections|clients>",
		Short: "List fleet entities",
		Long: `List one page of fleet entities with an optional search term.

Example:
  ffb list drivers --search John
  ffb list vehicles --page 2 --page-size 5
  ffb list trips --mill <mill-id>`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args[0], lf)
		},
	}

	cmd.Flags().IntVar(&lf.page, "page", 1, "page number (1-based)")
	cmd.Flags().IntVar(&lf.pageSize, "page-size", api.DefaultPageSize, "rows per page")
	cmd.Flags().StringVar(&lf.search, "search", "", "search term")
	cmd.Flags().StringVar(&lf.owner, "owner", "", "restrict to records owned by this user id")
	cmd.Flags().StringVar(&lf.mill, "mill", "", "restrict trips to this mill id")

	return cmd
}

func runList(cmd *cobra.Command, target string, lf listFlags) error {
	switch target {
	case "drivers":
		page, err := client.FetchDrivers(lf.page, lf.pageSize, lf.search, lf.owner)
		if err != nil {
			return err
		}
		return printPage(cmd, page.Total, page.Data, func(w *tabwriter.Writer) {
			fmt.Fprintln(w, "ID\tNAME\tLICENSE\tPHONE\tSTATUS")
			for _, d := range page.Data {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", d.ID, d.Name, d.LicenseNumber, d.PhoneNumber, d.Status)
			}
		})
	case "vehicles":
		page, err := client.FetchVehicles(lf.page, lf.pageSize, lf.search, lf.owner)
		if err != nil {
			return err
		}
		return printPage(cmd, page.Total, page.Data, func(w *tabwriter.Writer) {
			fmt.Fprintln(w, "ID\tPLATE\tTYPE\tCAPACITY\tDRIVER\tSTATUS")
			for _, v := range page.Data {
				fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%s\t%s\n", v.ID, v.PlateNumber, v.Type, v.Capacity, v.Driver.Name, v.Status)
			}
		})
	case "mills":
		page, err := client.FetchMills(lf.page, lf.pageSize, lf.search, lf.owner)
		if err != nil {
			return err
		}
		return printPage(cmd, page.Total, page.Data, func(w *tabwriter.Writer) {
			fmt.Fprintln(w, "ID\tNAME\tCONTACT\tPHONE\tLAT\tLNG")
			for _, m := range page.Data {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.4f\t%.4f\n", m.ID, m.Name, m.ContactPerson, m.PhoneNumber, m.Location.Lat, m.Location.Lng)
			}
		})
	case "trips":
		var (
			page api.Page[types.Trip]
			err  error
		)
		if lf.mill != "" {
			page, err = client.FetchTripsByMill(lf.mill, lf.page, lf.pageSize)
		} else {
			page, err = client.FetchTrips(lf.page, lf.pageSize, lf.search, lf.owner)
		}
		if err != nil {
			return err
		}
		return printPage(cmd, page.Total, page.Data, func(w *tabwriter.Writer) {
			fmt.Fprintln(w, "ID\tDATE\tVEHICLE\tDRIVER\tMILLS\tSTATUS")
			for _, t := range page.Data {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
					t.ID, t.ScheduledDate.Format("2006-01-02"), t.Vehicle.PlateNumber, t.Driver.Name, len(t.Mills), t.Status)
			}
		})
	case "collections":
		page, err := client.FetchCollections(lf.page, lf.pageSize)
		if err != nil {
			return err
		}
		return printPage(cmd, page.Total, page.Data, func(w *tabwriter.Writer) {
			fmt.Fprintln(w, "ID\tMILL\tTRIP\tWEIGHT\tSTATUS\tTIMESTAMP")
			for _, c := range page.Data {
				fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%s\t%s\n", c.ID, c.MillID, c.TripID, c.Weight, c.Status, c.Timestamp.Format("2006-01-02 15:04"))
			}
		})
	case "clients":
		users, err := client.FetchClients()
		if err != nil {
			return err
		}
		return printPage(cmd, len(users), users, func(w *tabwriter.Writer) {
			fmt.Fprintln(w, "ID\tEMAIL\tNAME")
			for _, u := range users {
				fmt.Fprintf(w, "%s\t%s\t%s\n", u.ID, u.Email, u.Name)
			}
		})
	default:
		return fmt.Errorf("unknown target %q (valid: drivers, vehicles, mills, trips, collections, clients)", target)
	}
}

// printPage writes either indented JSON or a tab-aligned table, depending on
// the global --json flag.
func printPage[T any](cmd *cobra.Command, total int, data []T, render func(*tabwriter.Writer)) error {
	if flags.jsonMode {
		out, err := json.MarshalIndent(map[string]any{"data": data, "total": total}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal output: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	render(w)
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "total: %d\n", total)
	return nil
}
