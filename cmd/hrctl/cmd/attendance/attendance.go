package attendance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/SoloCapybara/HRMS-NEXT/cmd/hrctl/internal/config"
	"github.com/SoloCapybara/HRMS-NEXT/pkg/sdk"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	clockScreen      = "/attendance"
	managementScreen = "/attendance-management"
)

var (
	longitude float64
	latitude  float64
	allStaff  bool
)

// AttendanceCmd is the parent command for attendance operations
var AttendanceCmd = &cobra.Command{
	Use:   "attendance",
	Short: "Clock in and out and review attendance",
}

var clockInCmd = &cobra.Command{
	Use:   "clock-in",
	Short: "Record the start of your working day",
	RunE: func(cmd *cobra.Command, args []string) error {
		return clock(cmd.Context(), sdk.ClockIn)
	},
}

var clockOutCmd = &cobra.Command{
	Use:   "clock-out",
	Short: "Record the end of your working day",
	RunE: func(cmd *cobra.Command, args []string) error {
		return clock(cmd.Context(), sdk.ClockOut)
	},
}

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Show attendance records",
	RunE: func(cmd *cobra.Command, args []string) error {
		screen := clockScreen
		if allStaff {
			screen = managementScreen
		}
		cfg := config.MustFromContext(cmd.Context())
		hrClient, snap, err := cfg.ClientProvider.Session(cmd.Context(), screen)
		if err != nil {
			return err
		}

		var records []sdk.AttendanceRecord
		if allStaff {
			records, err = hrClient.ListAttendanceRecords(cmd.Context())
		} else {
			records, err = hrClient.GetAttendanceRecords(cmd.Context(), snap.Identity.EmployeeID)
		}
		if err != nil {
			return fmt.Errorf("failed to get attendance records: %w", err)
		}
		if len(records) == 0 {
			fmt.Println("No attendance records found")
			return nil
		}
		writeRecords(os.Stdout, records)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{clockInCmd, clockOutCmd} {
		c.Flags().Float64Var(&longitude, "lng", 0, "Longitude of the clock location")
		c.Flags().Float64Var(&latitude, "lat", 0, "Latitude of the clock location")
	}
	recordsCmd.Flags().BoolVar(&allStaff, "all", false, "Show every employee's records (needs 人事管理)")

	AttendanceCmd.AddCommand(clockInCmd)
	AttendanceCmd.AddCommand(clockOutCmd)
	AttendanceCmd.AddCommand(recordsCmd)
}

func clock(ctx context.Context, kind sdk.ClockKind) error {
	cfg := config.MustFromContext(ctx)
	hrClient, snap, err := cfg.ClientProvider.Session(ctx, clockScreen)
	if err != nil {
		return err
	}

	now := time.Now()
	identity := snap.Identity
	if window, err := hrClient.GetCheckInTime(ctx, identity.Department); err != nil {
		cfg.Logger.Debug("no clock-in window configured", zap.Int64("dept_id", identity.Department), zap.Error(err))
	} else if !window.Contains(now) {
		pterm.Warning.Printf("Today is outside the clock-in window %s to %s\n", window.SetStartDate, window.SetEndDate)
	}

	records, err := hrClient.GetAttendanceRecords(ctx, identity.EmployeeID)
	if err != nil {
		return fmt.Errorf("failed to get attendance records: %w", err)
	}
	today, found := sdk.TodayRecord(records, now)
	if err := checkClock(kind, today, found); err != nil {
		return err
	}

	err = hrClient.PostAttendance(ctx, sdk.ClockEvent{
		EmployeeID: identity.EmployeeID,
		DeptID:     identity.Department,
		Kind:       kind,
		At:         now,
		Longitude:  longitude,
		Latitude:   latitude,
	})
	if err != nil {
		return fmt.Errorf("failed to record attendance: %w", err)
	}

	pterm.Success.Printf("%s recorded at %s\n", kindLabel(kind), now.Format(time.TimeOnly))
	return nil
}

// checkClock refuses a second clock-in, and a clock-out without a clock-in.
func checkClock(kind sdk.ClockKind, today sdk.AttendanceRecord, found bool) error {
	switch kind {
	case sdk.ClockIn:
		if found && today.OnWorkTime != "" {
			return fmt.Errorf("already clocked in today at %s", today.OnWorkTime)
		}
	case sdk.ClockOut:
		if !found {
			return errors.New("no clock-in recorded today")
		}
		if today.ClockedOut() {
			return fmt.Errorf("already clocked out today at %s", today.OffDutyTime)
		}
	}
	return nil
}

func kindLabel(kind sdk.ClockKind) string {
	if kind == sdk.ClockIn {
		return "Clock-in"
	}
	return "Clock-out"
}

func writeRecords(out io.Writer, records []sdk.AttendanceRecord) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tEMPLOYEE\tON WORK\tOFF DUTY")
	for _, r := range records {
		off := r.OffDutyTime
		if !r.ClockedOut() {
			off = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.CheckInDate, r.EmployeeID, r.OnWorkTime, off)
	}
	w.Flush()
}
