package approval

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/SoloCapybara/HRMS-NEXT/cmd/hrctl/internal/config"
	"github.com/SoloCapybara/HRMS-NEXT/pkg/sdk"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

const approvalScreen = "/approval/leave"

var (
	page     int
	pageSize int
	deptID   int64
	status   string
)

// ApprovalCmd is the parent command for leave approval
var ApprovalCmd = &cobra.Command{
	Use:   "approval",
	Short: "Review leave requests awaiting approval",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List leave requests for review",
	RunE: func(cmd *cobra.Command, args []string) error {
		approvalStatus, err := parseStatus(status)
		if err != nil {
			return err
		}

		cfg := config.MustFromContext(cmd.Context())
		hrClient, _, err := cfg.ClientProvider.Session(cmd.Context(), approvalScreen)
		if err != nil {
			return err
		}

		result, err := hrClient.ListLeaveApprovals(cmd.Context(), sdk.ApprovalQuery{
			Page:           page,
			PageSize:       pageSize,
			DeptID:         deptID,
			ApprovalStatus: approvalStatus,
		})
		if err != nil {
			return fmt.Errorf("failed to list leave approvals: %w", err)
		}

		pterm.DefaultSection.Printf("Leave requests (page %d, %d total)\n", page, result.Total)
		if len(result.Records) == 0 {
			fmt.Println("No leave requests found")
			return nil
		}
		writeApprovals(os.Stdout, result.Records)
		return nil
	},
}

func init() {
	listCmd.Flags().IntVar(&page, "page", 1, "Page number")
	listCmd.Flags().IntVar(&pageSize, "page-size", 10, "Page size")
	listCmd.Flags().Int64Var(&deptID, "dept", 0, "Only requests from this department id")
	listCmd.Flags().StringVar(&status, "status", "", "Filter by status: pending, reviewing, approved, rejected or 0-3")
	ApprovalCmd.AddCommand(listCmd)
}

var statusNames = map[string]sdk.ApprovalStatus{
	"pending":   sdk.ApprovalPending,
	"reviewing": sdk.ApprovalInProgress,
	"approved":  sdk.ApprovalApproved,
	"rejected":  sdk.ApprovalRejected,
}

// parseStatus maps the --status flag to an approval status; empty means any.
func parseStatus(s string) (*sdk.ApprovalStatus, error) {
	if s == "" {
		return nil, nil
	}
	if st, ok := statusNames[s]; ok {
		return &st, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < int(sdk.ApprovalPending) || n > int(sdk.ApprovalRejected) {
		return nil, fmt.Errorf("invalid status %q", s)
	}
	st := sdk.ApprovalStatus(n)
	return &st, nil
}

func writeApprovals(out io.Writer, records []sdk.LeaveRecord) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMPLOYEE\tDEPARTMENT\tTYPE\tSTART\tEND\tSTATUS\tREASON")
	for _, r := range records {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.EmployeeName, r.DeptName, r.Type, r.StartTime, r.EndTime, r.ApprovalStatus, r.Reason)
	}
	w.Flush()
}
