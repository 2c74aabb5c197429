package cli

import (
	"context"
	"fmt"

	"github.com/daybook-app/daybook/internal/models"
	"github.com/daybook-app/daybook/internal/recordstore"
)

type HealthCmd struct {
	Set  HealthSetCmd  `cmd:"" help:"Record wellness counters for a day."`
	List HealthListCmd `cmd:"" help:"List recorded wellness days."`
}

type HealthSetCmd struct {
	Date       string  `help:"Date in YYYY-MM-DD format (default: today)." default:""`
	Water      int     `help:"Glasses of water." default:"0"`
	Exercise   int     `help:"Minutes of exercise." default:"0"`
	Sleep      float64 `help:"Hours of sleep." default:"0"`
	Meditation int     `help:"Minutes of meditation." default:"0"`
}

func (c *HealthSetCmd) Run(ctx *Context) error {
	day, err := resolveDay(c.Date)
	if err != nil {
		return err
	}
	if c.Water < 0 || c.Exercise < 0 || c.Sleep < 0 || c.Meditation < 0 {
		return fmt.Errorf("wellness counters cannot be negative")
	}

	incoming := models.HealthSample{
		UserID:            ctx.User,
		Date:              day,
		WaterGlasses:      c.Water,
		ExerciseMinutes:   c.Exercise,
		SleepHours:        c.Sleep,
		MeditationMinutes: c.Meditation,
	}

	bg := context.Background()
	saved, err := ctx.Health.Upsert(bg, ctx.User, incoming, recordstore.MergeHealth)
	if err != nil {
		return err
	}

	fmt.Printf("Recorded wellness for %s: %d water, %d min exercise, %.1f h sleep, %d min meditation\n",
		saved.Date, saved.WaterGlasses, saved.ExerciseMinutes, saved.SleepHours, saved.MeditationMinutes)
	ctx.Refresh(bg)
	return nil
}

type HealthListCmd struct {
	Limit int `help:"Maximum number of days to show." default:"14"`
}

func (c *HealthListCmd) Run(ctx *Context) error {
	samples, err := ctx.Health.Load(context.Background(), ctx.User)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		fmt.Println("No wellness data yet. Record some with 'daybook health set'.")
		return nil
	}

	shown := 0
	for _, s := range samples {
		if c.Limit > 0 && shown >= c.Limit {
			break
		}
		fmt.Printf("%s  water %d  exercise %dm  sleep %.1fh  meditation %dm\n",
			s.Date, s.WaterGlasses, s.ExerciseMinutes, s.SleepHours, s.MeditationMinutes)
		shown++
	}
	return nil
}
