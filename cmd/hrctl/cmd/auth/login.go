package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SoloCapybara/HRMS-NEXT/cmd/hrctl/internal/config"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	employeeID string
	password   string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with an employee id and password",
	Long: `Exchanges an employee id and password for a session token.

The token is stored in ~/.hrctl/session.json and stays valid for seven
days, or until the server rejects it. Missing values are prompted for
unless --non-interactive is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())

		id, pw, err := resolveCredentials(employeeID, password, cfg.NonInteractive())
		if err != nil {
			return err
		}

		p := cfg.ClientProvider
		sdkClient, err := p.SDKClient()
		if err != nil {
			return err
		}
		tok, err := sdkClient.Login(cmd.Context(), id, pw)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		g, err := p.Gate()
		if err != nil {
			return err
		}
		if err := g.CheckAuth(cmd.Context()); err != nil {
			return fmt.Errorf("login succeeded but the session could not be validated: %w", err)
		}
		snap := g.Snapshot()

		pterm.Success.Println("Login successful!")
		if snap.Identity != nil {
			pterm.Info.Printf("Authenticated as: %s (%s), role %s\n", snap.Identity.Username, snap.Identity.EmployeeID, snap.Role)
		}
		pterm.Info.Printf("Session expires at: %s\n", tok.ExpiresAt.Format("2006-01-02 15:04"))
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&employeeID, "employee-id", "", "Employee id to log in as")
	loginCmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
}

// resolveCredentials fills missing credentials from interactive prompts.
func resolveCredentials(id, pw string, nonInteractive bool) (string, string, error) {
	id = strings.TrimSpace(id)
	if id != "" && pw != "" {
		return id, pw, nil
	}
	if nonInteractive {
		return "", "", errors.New("--employee-id and --password are required in non-interactive mode")
	}

	var err error
	if id == "" {
		id, err = pterm.DefaultInteractiveTextInput.Show("Employee id")
		if err != nil {
			return "", "", fmt.Errorf("failed to read employee id: %w", err)
		}
		id = strings.TrimSpace(id)
	}
	if pw == "" {
		pw, err = pterm.DefaultInteractiveTextInput.WithMask("*").Show("Password")
		if err != nil {
			return "", "", fmt.Errorf("failed to read password: %w", err)
		}
	}
	if id == "" || pw == "" {
		return "", "", errors.New("employee id and password are required")
	}
	return id, pw, nil
}
