package role

import (
	"context"

	"github.com/SoloCapybara/HRMS-NEXT/cmd/hrctl/internal/config"
	"github.com/SoloCapybara/HRMS-NEXT/pkg/sdk"
	"github.com/spf13/cobra"
)

// rolesScreen is the page role management lives under.
const rolesScreen = "/admin-info"

// RoleCmd is the parent command for role operations
var RoleCmd = &cobra.Command{
	Use:   "role",
	Short: "Inspect roles and permissions",
	Long:  `Commands for listing roles and the permissions they grant.`,
}

func init() {
	RoleCmd.AddCommand(listCmd)
	RoleCmd.AddCommand(inspectCmd)
}

func sdkClient(ctx context.Context) (*sdk.Client, error) {
	cfg := config.MustFromContext(ctx)
	c, _, err := cfg.ClientProvider.Session(ctx, rolesScreen)
	return c, err
}
