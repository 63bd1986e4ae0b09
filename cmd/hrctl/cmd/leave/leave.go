package leave

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/SoloCapybara/HRMS-NEXT/cmd/hrctl/internal/config"
	"github.com/SoloCapybara/HRMS-NEXT/pkg/sdk"
	"github.com/spf13/cobra"
)

const leaveScreen = "/leave-request"

// LeaveCmd is the parent command for leave requests
var LeaveCmd = &cobra.Command{
	Use:   "leave",
	Short: "Review your leave requests",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your leave requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		hrClient, snap, err := cfg.ClientProvider.Session(cmd.Context(), leaveScreen)
		if err != nil {
			return err
		}

		records, err := hrClient.ListLeaveRecords(cmd.Context(), sdk.LeaveRecordQuery{
			EmployeeID: snap.Identity.EmployeeID,
		})
		if err != nil {
			return fmt.Errorf("failed to list leave requests: %w", err)
		}
		if len(records) == 0 {
			fmt.Println("No leave requests found")
			return nil
		}
		writeLeaveRecords(os.Stdout, records)
		return nil
	},
}

func init() {
	LeaveCmd.AddCommand(listCmd)
}

func writeLeaveRecords(out io.Writer, records []sdk.LeaveRecord) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tSTART\tEND\tSTATUS\tACTIONS")
	for _, r := range records {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.Type, r.StartTime, r.EndTime, r.ApprovalStatus, actions(r))
	}
	w.Flush()
}

// actions lists what the employee can still do with a request.
func actions(r sdk.LeaveRecord) string {
	switch {
	case r.CanRevoke():
		return "withdraw"
	case r.CanCancelOrExtend():
		return "cancel, extend"
	default:
		return "-"
	}
}
