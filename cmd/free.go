package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"groupcal/calendar"
	"groupcal/client"
	"groupcal/models"

	"github.com/spf13/cobra"
)

func newFreeCmd() *cobra.Command {
	var (
		year, month, duration int
		members               []string
		workStart, workEnd    string
	)

	cmd := &cobra.Command{
		Use:   "free",
		Short: "List the slots in which every given member is free",
		Long: `List the common free slots of a month. Without --member every member
with events in the month is considered.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month = defaultMonth(year, month, time.Now())
			params := client.FreeSlotParams{
				Year:            year,
				Month:           month,
				DurationMinutes: duration,
				WorkStart:       workStart,
				WorkEnd:         workEnd,
			}
			if cmd.Flags().Changed("member") {
				params.Members = members
			}
			slots, err := apiClient().FreeSlots(context.Background(), params)
			if err != nil {
				return fmt.Errorf("failed to fetch free slots: %w", err)
			}
			return renderFreeSlots(cmd.OutOrStdout(), slots)
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "year to search (default: current)")
	cmd.Flags().IntVar(&month, "month", 0, "month to search, 1-12 (default: current)")
	cmd.Flags().StringSliceVar(&members, "member", nil, "member to include (repeatable)")
	cmd.Flags().IntVar(&duration, "duration", 60, "minimum slot length in minutes")
	cmd.Flags().StringVar(&workStart, "work-start", "", "start of the searched window, HH:MM")
	cmd.Flags().StringVar(&workEnd, "work-end", "", "end of the searched window, HH:MM")
	return cmd
}

func renderFreeSlots(w io.Writer, slots models.FreeSlotsByDate) error {
	days := calendar.FormatFreeSlots(slots)
	if len(days) == 0 {
		_, err := fmt.Fprintln(w, calendar.MsgNoCommonSlots)
		return err
	}
	for _, d := range days {
		fmt.Fprintln(w, d.Label)
		for _, s := range d.Slots {
			fmt.Fprintln(w, s)
		}
	}
	return nil
}
