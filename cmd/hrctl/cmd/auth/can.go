package auth

import (
	"fmt"

	"github.com/SoloCapybara/HRMS-NEXT/cmd/hrctl/internal/client"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var canCmd = &cobra.Command{
	Use:   "can <permission>",
	Short: "Check whether the session holds a permission",
	Long: `Validates the session and checks a permission by name, e.g. 人事管理.
Exits non-zero when the permission is not granted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		permission := args[0]
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

		if !g.HasPermission(permission) {
			return fmt.Errorf("permission %q denied for role %q", permission, g.Snapshot().Role)
		}
		pterm.Success.Printf("permission %q granted\n", permission)
		return nil
	},
}
