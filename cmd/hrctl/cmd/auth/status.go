package auth

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/SoloCapybara/HRMS-NEXT/cmd/hrctl/internal/client"
	"github.com/SoloCapybara/HRMS-NEXT/pkg/gate"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display authentication status",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := provider(cmd.Context())
		if !p.HasToken() {
			return client.ErrLoginRequired
		}

		g, err := p.Gate()
		if err != nil {
			return err
		}
		if err := g.CheckAuth(cmd.Context()); err != nil {
			return fmt.Errorf("%w: %w", client.ErrLoginRequired, err)
		}
		snap := g.Snapshot()

		pterm.DefaultSection.Println("Authentication Status")
		pterm.Info.Printf("Server: %s\n", p.ServerURL())
		if store, err := p.TokenStore(); err == nil {
			if tok, err := store.LoadToken(); err == nil && !tok.ExpiresAt.IsZero() {
				pterm.Info.Printf("Session expires: %s\n", tok.ExpiresAt.Local().Format(time.RFC1123))
			}
		}
		writeIdentity(os.Stdout, snap)

		pterm.DefaultSection.Println("Effective Permissions")
		fmt.Println(formatPermissions(snap))
		return nil
	},
}

func writeIdentity(out io.Writer, snap gate.Snapshot) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "EMPLOYEE ID\tUSERNAME\tROLE\tDEPARTMENT")
	if id := snap.Identity; id != nil {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", id.EmployeeID, id.Username, snap.Role, id.Department)
	}
	w.Flush()
}

// formatPermissions renders the effective permission set of a session.
func formatPermissions(snap gate.Snapshot) string {
	if snap.Role == gate.SuperAdminRole {
		return "all permissions (super administrator)"
	}
	names := snap.PermissionNames()
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}
