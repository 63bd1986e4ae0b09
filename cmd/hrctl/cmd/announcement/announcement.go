package announcement

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/SoloCapybara/HRMS-NEXT/cmd/hrctl/internal/config"
	"github.com/SoloCapybara/HRMS-NEXT/pkg/gate"
	"github.com/SoloCapybara/HRMS-NEXT/pkg/sdk"
	"github.com/spf13/cobra"
)

const managementScreen = "/announcement-management"

var (
	deptID int64
	all    bool
)

// AnnouncementCmd is the parent command for announcements
var AnnouncementCmd = &cobra.Command{
	Use:   "announcement",
	Short: "Read department announcements",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List announcements for your department, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		screen := gate.HomePath
		if all || deptID != 0 {
			screen = managementScreen
		}
		cfg := config.MustFromContext(cmd.Context())
		hrClient, snap, err := cfg.ClientProvider.Session(cmd.Context(), screen)
		if err != nil {
			return err
		}

		dept := deptID
		if dept == 0 && !all {
			dept = snap.Identity.Department
		}
		items, err := hrClient.ListAnnouncements(cmd.Context(), dept)
		if err != nil {
			return fmt.Errorf("failed to list announcements: %w", err)
		}
		if len(items) == 0 {
			fmt.Println("No announcements found")
			return nil
		}
		sortNewestFirst(items)
		writeAnnouncements(os.Stdout, items)
		return nil
	},
}

func init() {
	listCmd.Flags().Int64Var(&deptID, "dept", 0, "Department id (needs 公告管理; default: your department)")
	listCmd.Flags().BoolVar(&all, "all", false, "Every department's announcements (needs 公告管理)")
	AnnouncementCmd.AddCommand(listCmd)
}

// sortNewestFirst orders by publish time; the API's layout sorts lexically.
func sortNewestFirst(items []sdk.Announcement) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishTime > items[j].PublishTime
	})
}

func writeAnnouncements(out io.Writer, items []sdk.Announcement) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPUBLISHED\tTITLE\tCONTENT")
	for _, a := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", a.ID, a.PublishTime, a.Title, a.Content)
	}
	w.Flush()
}
