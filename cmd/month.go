package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"groupcal/calendar"

	"github.com/spf13/cobra"
)

func newMonthCmd() *cobra.Command {
	var year, month int

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Print a month of the shared calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month = defaultMonth(year, month, time.Now())
			events, err := apiClient().Events(context.Background(), year, month)
			if err != nil {
				return fmt.Errorf("failed to fetch events: %w", err)
			}
			return renderMonth(cmd.OutOrStdout(), calendar.BuildMonth(year, month, events))
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "year to show (default: current)")
	cmd.Flags().IntVar(&month, "month", 0, "month to show, 1-12 (default: current)")
	return cmd
}

func defaultMonth(year, month int, now time.Time) (int, int) {
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	return year, month
}

// renderMonth prints the grid one week per row, followed by that week's events.
func renderMonth(w io.Writer, m calendar.Month) error {
	if _, err := fmt.Fprintln(w, m.Title); err != nil {
		return err
	}

	var weeks [][]calendar.Cell
	for i := 0; i < len(m.Cells); i += 7 {
		end := i + 7
		if end > len(m.Cells) {
			end = len(m.Cells)
		}
		weeks = append(weeks, m.Cells[i:end])
	}

	for _, week := range weeks {
		tw := tabwriter.NewWriter(w, 4, 0, 1, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, strings.Join(m.Headers, "\t")+"\t")
		days := make([]string, 0, 7)
		for _, cell := range week {
			if cell.Empty {
				days = append(days, "")
				continue
			}
			days = append(days, fmt.Sprintf("%d", cell.Day))
		}
		fmt.Fprintln(tw, strings.Join(days, "\t")+"\t")
		if err := tw.Flush(); err != nil {
			return err
		}

		for _, cell := range week {
			for _, e := range cell.Events {
				fmt.Fprintf(w, "  %d/%d %s\n", m.Month, cell.Day, e.Label())
			}
		}
		fmt.Fprintln(w)
	}
	return nil
}
