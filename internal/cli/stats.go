package cli

import (
	"context"
	"fmt"

	"github.com/daybook-app/daybook/internal/wellness"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	snapshot, unlocked, err := ctx.Collector.Recompute(context.Background(), ctx.User)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("Your stats"))
	fmt.Printf("Entries:          %d\n", snapshot.TotalEntries)
	fmt.Printf("Current streak:   %d day(s)\n", snapshot.CurrentStreak)
	fmt.Printf("Longest streak:   %d day(s)\n", snapshot.LongestStreak)
	fmt.Printf("Habit check-ins:  %d\n", snapshot.TotalCompletions)
	fmt.Printf("Wellness days:    %d\n", snapshot.HealthDays)
	fmt.Printf("Active days:      %d\n", snapshot.AppUsageDays)

	level := wellness.LevelFor(snapshot.WellnessScore)
	fmt.Printf("\nWellness score:   %d/100\n", snapshot.WellnessScore)
	fmt.Printf("Level:            %d (%d/%d xp to next)\n", level.Level, level.Experience, level.NextThreshold)

	for _, a := range unlocked {
		fmt.Println(unlockStyle.Render(fmt.Sprintf("%s Achievement unlocked: %s (%s)", a.Icon, a.Title, a.Description)))
	}
	return nil
}
