package auth

import (
	"context"

	"github.com/SoloCapybara/HRMS-NEXT/cmd/hrctl/internal/client"
	"github.com/SoloCapybara/HRMS-NEXT/cmd/hrctl/internal/config"
	"github.com/spf13/cobra"
)

// AuthCmd is the parent command for auth operations
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication",
	Long:  `Commands for logging in and out and inspecting the current session.`,
}

func init() {
	AuthCmd.AddCommand(loginCmd)
	AuthCmd.AddCommand(logoutCmd)
	AuthCmd.AddCommand(statusCmd)
	AuthCmd.AddCommand(canCmd)
}

func provider(ctx context.Context) *client.Provider {
	return config.MustFromContext(ctx).ClientProvider
}
