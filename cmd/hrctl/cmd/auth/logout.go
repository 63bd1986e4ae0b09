package auth

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := provider(cmd.Context()).Gate()
		if err != nil {
			return err
		}
		if err := g.Logout(); err != nil {
			return fmt.Errorf("failed to log out: %w", err)
		}

		fmt.Println("Logged out successfully")
		return nil
	},
}
