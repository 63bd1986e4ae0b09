package dept

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/SoloCapybara/HRMS-NEXT/cmd/hrctl/internal/config"
	"github.com/SoloCapybara/HRMS-NEXT/pkg/sdk"
	"github.com/spf13/cobra"
)

const deptScreen = "/department-management"

var flat bool

// DeptCmd is the parent command for department operations
var DeptCmd = &cobra.Command{
	Use:   "dept",
	Short: "Browse departments",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List departments as a tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		hrClient, _, err := cfg.ClientProvider.Session(cmd.Context(), deptScreen)
		if err != nil {
			return err
		}

		depts, err := hrClient.ListDepartments(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list departments: %w", err)
		}
		if len(depts) == 0 {
			fmt.Println("No departments found")
			return nil
		}

		if flat {
			sdk.SortDepartmentsByNumber(depts)
			writeDepartments(os.Stdout, depts)
			return nil
		}
		writeDepartmentTree(os.Stdout, sdk.BuildDepartmentTree(depts))
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&flat, "flat", false, "List departments flat, ordered by department number")
	DeptCmd.AddCommand(listCmd)
}

func writeDepartments(out io.Writer, depts []sdk.Department) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNUMBER\tNAME\tPARENT")
	for _, d := range depts {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", d.DeptID, d.DeptNumber, d.DeptName, d.DeptParentID)
	}
	w.Flush()
}

func writeDepartmentTree(out io.Writer, roots []*sdk.DepartmentNode) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tID\tNUMBER")
	sdk.WalkDepartments(roots, func(n *sdk.DepartmentNode, depth int) {
		fmt.Fprintf(w, "%s%s\t%d\t%s\n", strings.Repeat("  ", depth), n.DeptName, n.DeptID, n.DeptNumber)
	})
	w.Flush()
}
