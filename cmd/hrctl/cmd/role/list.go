package role

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/SoloCapybara/HRMS-NEXT/pkg/sdk"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List roles and their permission counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		hrClient, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}

		catalog, err := hrClient.FetchRoles(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to fetch roles: %w", err)
		}
		if catalog == nil || len(catalog.Roles) == 0 {
			fmt.Println("No roles found")
			return nil
		}
		writeRoles(os.Stdout, catalog.Roles)
		return nil
	},
}

func writeRoles(out io.Writer, roles []sdk.Role) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSYSTEM\tPERMISSIONS\tDESCRIPTION")
	for _, r := range roles {
		system := ""
		if r.IsSystem {
			system = "yes"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", r.ID, r.Name, system, len(r.Permissions), r.Description)
	}
	w.Flush()
}
