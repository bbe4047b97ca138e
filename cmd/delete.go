package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	var (
		date, name string
		all        bool
	)

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a member's events on one day, or every event with --all",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := apiClient()
			if all {
				if adminToken == "" {
					return errors.New("--all requires an admin --token")
				}
				res, err := c.DeleteAll(context.Background())
				if err != nil {
					return fmt.Errorf("failed to delete all events: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), res.Message)
				return nil
			}

			if date == "" || name == "" {
				return errors.New("--date and --name are required")
			}
			res, err := c.DeleteByDateAndName(context.Background(), date, name)
			if err != nil {
				return fmt.Errorf("failed to delete events: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day to clear, YYYY-MM-DD")
	cmd.Flags().StringVar(&name, "name", "", "member whose events are removed")
	cmd.Flags().BoolVar(&all, "all", false, "delete every event (admin)")
	return cmd
}
