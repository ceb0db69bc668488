// Command token mints an access token for local use against an API started with
// JWT_SECRET_KEY set.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/cmlabs-hris/wage-tracker/internal/config"
	"github.com/cmlabs-hris/wage-tracker/internal/pkg/jwt"
	"github.com/spf13/cobra"
)

type tokenOptions struct {
	Subject string
	Role    string
}

var topts tokenOptions

var rootCmd = &cobra.Command{
	Use:   "token [flags]",
	Short: "Print a signed access token for the wage tracker API.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.JWT.Secret == "" {
			return fmt.Errorf("JWT_SECRET_KEY is not set")
		}

		token, expiresAt, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration).GenerateAccessToken(topts.Subject, topts.Role)
		if err != nil {
			return fmt.Errorf("failed to generate token: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		fmt.Fprintln(cmd.ErrOrStderr(), "expires at", time.Unix(expiresAt, 0).UTC().Format(time.RFC3339))
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&topts.Subject, "sub", "local-operator", "Token subject")
	rootCmd.Flags().StringVar(&topts.Role, "role", "manager", "Role claim")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
