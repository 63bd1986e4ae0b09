package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/SoloCapybara/HRMS-NEXT/cmd/hrctl/cmd/announcement"
	"github.com/SoloCapybara/HRMS-NEXT/cmd/hrctl/cmd/approval"
	"github.com/SoloCapybara/HRMS-NEXT/cmd/hrctl/cmd/attendance"
	"github.com/SoloCapybara/HRMS-NEXT/cmd/hrctl/cmd/auth"
	"github.com/SoloCapybara/HRMS-NEXT/cmd/hrctl/cmd/dept"
	"github.com/SoloCapybara/HRMS-NEXT/cmd/hrctl/cmd/leave"
	"github.com/SoloCapybara/HRMS-NEXT/cmd/hrctl/cmd/menu"
	"github.com/SoloCapybara/HRMS-NEXT/cmd/hrctl/cmd/role"
	"github.com/SoloCapybara/HRMS-NEXT/cmd/hrctl/internal/client"
	"github.com/SoloCapybara/HRMS-NEXT/cmd/hrctl/internal/config"
	"github.com/SoloCapybara/HRMS-NEXT/cmd/hrctl/internal/logging"
	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "hrctl",
	Short: "HRMS CLI - human resources management client",
	Long: `hrctl is the command-line client for the HRMS API. Log in with your
employee id, then clock in, review leave requests and browse the
organisation according to the permissions of your role.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load(cmd.Flags(), configFile)
		if err != nil {
			return err
		}

		logger, err := logging.New(settings.Log.LoggingOptions())
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		provider := client.NewProvider(settings.Server,
			client.WithLogger(logger),
			client.WithTimeout(settings.Timeout),
		)
		if settings.Token != "" {
			provider.SetToken(settings.Token)
		}

		cmd.SetContext(config.InjectConfig(cmd.Context(), &config.GlobalConfig{
			Settings:       settings,
			Logger:         logger,
			ClientProvider: provider,
		}))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if cfg, ok := config.FromContext(cmd.Context()); ok {
			_ = cfg.Logger.Sync()
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("server", config.DefaultServer, "HRMS API server URL (HRCTL_SERVER)")
	flags.Bool("non-interactive", false, "Disable interactive prompts (HRCTL_NON_INTERACTIVE=1)")
	flags.Duration("timeout", config.DefaultTimeout, "Per-request timeout (HRCTL_TIMEOUT)")
	flags.String("token", "", "Use this session token instead of the stored login (HRCTL_TOKEN)")
	flags.String("log-level", "warn", "Log level: debug, info, warn, error (HRCTL_LOG_LEVEL)")
	flags.String("log-file", "", "Also write JSON logs to this rotated file (HRCTL_LOG_FILE)")
	flags.StringVar(&configFile, "config", "", "Config file (default ~/.hrctl/config.yaml)")

	rootCmd.AddCommand(auth.AuthCmd)
	rootCmd.AddCommand(menu.MenuCmd)
	rootCmd.AddCommand(role.RoleCmd)
	rootCmd.AddCommand(dept.DeptCmd)
	rootCmd.AddCommand(attendance.AttendanceCmd)
	rootCmd.AddCommand(leave.LeaveCmd)
	rootCmd.AddCommand(approval.ApprovalCmd)
	rootCmd.AddCommand(announcement.AnnouncementCmd)
}
