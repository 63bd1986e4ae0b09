package role

import (
	"fmt"

	"github.com/SoloCapybara/HRMS-NEXT/pkg/gate"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <role-name>",
	Short: "Show the permissions a role grants",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		roleName := args[0]

		hrClient, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}

		catalog, err := hrClient.FetchRoles(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to fetch roles: %w", err)
		}

		fmt.Printf("Role: %s\n", roleName)
		if roleName == gate.SuperAdminRole {
			fmt.Println("Permissions: all (super administrator)")
			return nil
		}
		role, ok := catalog.RoleByName(roleName)
		if !ok {
			return fmt.Errorf("role %q not found", roleName)
		}
		if role.Description != "" {
			fmt.Printf("Description: %s\n", role.Description)
		}
		fmt.Println("Permissions:")
		for _, p := range gate.ResolvePermissions(roleName, catalog) {
			fmt.Printf("  - %s\n", p.Name)
		}
		return nil
	},
}
