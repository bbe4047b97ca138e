package cmd

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"groupcal/config"
	"groupcal/database"
	eventRepo "groupcal/database/repository/event"
	"groupcal/models"
	"groupcal/services/schedule"
	"groupcal/utils"

	"github.com/spf13/cobra"
)

var seedMembers = []string{"Alice", "Bob", "Carol", "Dave"}

func newSeedCmd() *cobra.Command {
	var (
		year, month int
		clearFirst  bool
		seed        int64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill a month with demo events directly in MongoDB",
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month = defaultMonth(year, month, time.Now())
			if err := database.InitDB(); err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			defer func() { _ = database.Disconnect(ctx) }()

			repo := eventRepo.NewMongoEventRepo()
			cache := schedule.NewRedisSlotCache(utils.GetCacheClient(), config.AppConfig.FreeSlotCacheTTL)
			rng := rand.New(rand.NewSource(seed))
			return seedMonth(ctx, cmd.OutOrStdout(), repo, cache, year, month, clearFirst, rng)
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "year to fill (default: current)")
	cmd.Flags().IntVar(&month, "month", 0, "month to fill (default: current)")
	cmd.Flags().BoolVar(&clearFirst, "clear", false, "delete every event first")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	return cmd
}

// slotInvalidator is the part of the free slot cache the seeder touches.
type slotInvalidator interface {
	InvalidateAll(ctx context.Context)
}

// seedMonth writes demo events for the month and drops every cached free slot
// result, since the writes bypass the schedule service.
func seedMonth(ctx context.Context, out io.Writer, repo eventRepo.EventRepository, cache slotInvalidator, year, month int, clearFirst bool, rng *rand.Rand) error {
	if clearFirst {
		n, err := repo.DeleteAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to clear events: %w", err)
		}
		cache.InvalidateAll(ctx)
		fmt.Fprintf(out, "Cleared %d event(s)\n", n)
	}

	events := demoEvents(year, month, seedMembers, rng)
	ids, err := repo.CreateMany(ctx, events)
	if err != nil {
		return fmt.Errorf("failed to insert demo events: %w", err)
	}
	cache.InvalidateAll(ctx)
	fmt.Fprintf(out, "Inserted %d demo event(s) for %d-%02d\n", len(ids), year, month)
	return nil
}

// demoEvents gives every member a weekly class on a random weekday plus a few one-off
// appointments between 07:00 and 22:00.
func demoEvents(year, month int, members []string, rng *rand.Rand) []models.Event {
	weekdays := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	dates := schedule.MonthDates(year, month)

	var events []models.Event
	for _, name := range members {
		startHour := 8 + rng.Intn(8)
		start := models.ClockTime(startHour * 60)
		end := models.ClockTime((startHour + 2) * 60)
		events = append(events, schedule.ExpandWeekday(name, weekdays[rng.Intn(len(weekdays))], start, end, year, month)...)

		for i := 0; i < 3; i++ {
			startMin := 7*60 + rng.Intn(13*60)/30*30
			length := 30 * (1 + rng.Intn(4))
			events = append(events, models.Event{
				Name:      name,
				EventDate: dates[rng.Intn(len(dates))],
				StartTime: models.ClockTime(startMin).HHMMSS(),
				EndTime:   models.ClockTime(startMin + length).HHMMSS(),
				Source:    models.SourceDated,
			})
		}
	}
	return events
}
