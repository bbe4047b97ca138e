package cmd

import (
	"fmt"
	"time"

	"groupcal/config"
	"groupcal/utils"

	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an admin token signed with JWT_SECRET",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := utils.GenerateAdminToken(config.AppConfig.JWTSecret, subject, ttl)
			if err != nil {
				return fmt.Errorf("failed to generate token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "admin", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}
