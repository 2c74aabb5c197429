package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/daybook-app/daybook/internal/models"
	"github.com/daybook-app/daybook/internal/recordstore"
	"github.com/daybook-app/daybook/internal/utils"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits."`
	Mark   HabitMarkCmd   `cmd:"" help:"Toggle a habit's completion for a day."`
	Today  HabitTodayCmd  `cmd:"" help:"Show today's habit status."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit."`
}

type HabitAddCmd struct {
	Title    string `arg:"" help:"Habit title."`
	Category string `help:"Habit category." default:""`
	Target   int    `help:"Daily target value." default:"1"`
	Unit     string `help:"Unit for the target (e.g. glasses, minutes)." default:""`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	bg := context.Background()

	habits, err := ctx.Habits.Load(bg, ctx.User)
	if err != nil {
		return err
	}
	for _, h := range habits {
		if h.Title == c.Title {
			return fmt.Errorf("habit with title %q already exists", c.Title)
		}
	}

	habit := models.Habit{
		ID:          uuid.New().String(),
		UserID:      ctx.User,
		Title:       c.Title,
		Category:    c.Category,
		TargetValue: c.Target,
		Unit:        c.Unit,
		Active:      true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if _, err := ctx.Habits.Upsert(bg, ctx.User, habit, recordstore.MergeHabit); err != nil {
		return err
	}

	fmt.Printf("Added habit: %s\n", c.Title)
	return nil
}

type HabitListCmd struct {
	All bool `help:"Include inactive habits."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	habits, err := ctx.Habits.Load(context.Background(), ctx.User)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits found. Add one with 'daybook habit add'.")
		return nil
	}

	for _, h := range habits {
		if !h.Active && !c.All {
			continue
		}
		status := ""
		if !h.Active {
			status = faintStyle.Render(" [inactive]")
		}
		target := ""
		if h.TargetValue > 1 || h.Unit != "" {
			target = faintStyle.Render(fmt.Sprintf("  (%d %s/day)", h.TargetValue, h.Unit))
		}
		fmt.Printf("%s%s%s\n", h.Title, target, status)
	}
	return nil
}

type HabitMarkCmd struct {
	Title string `arg:"" help:"Habit title."`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
	Value int    `help:"Achieved value for the day." default:"0"`
	Note  string `help:"Optional note." default:""`
}

func (c *HabitMarkCmd) Run(ctx *Context) error {
	day, err := resolveDay(c.Date)
	if err != nil {
		return err
	}

	bg := context.Background()
	habit, err := findHabit(bg, ctx, c.Title)
	if err != nil {
		return err
	}

	// Toggle: marking an already-completed day flips it back off.
	completed := true
	completions, err := ctx.Completions.Load(bg, ctx.User)
	if err != nil {
		return err
	}
	for _, rec := range completions {
		if rec.HabitID == habit.ID && rec.Day == day && rec.Completed {
			completed = false
			break
		}
	}

	incoming := models.HabitCompletion{
		ID:            uuid.New().String(),
		HabitID:       habit.ID,
		Day:           day,
		Completed:     completed,
		AchievedValue: c.Value,
		Note:          c.Note,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if _, err := ctx.Completions.Upsert(bg, ctx.User, incoming, recordstore.MergeCompletion); err != nil {
		return err
	}

	if completed {
		fmt.Printf("Marked habit %q for %s\n", habit.Title, day)
	} else {
		fmt.Printf("Unmarked habit %q for %s\n", habit.Title, day)
	}
	ctx.Refresh(bg)
	return nil
}

type HabitTodayCmd struct{}

func (c *HabitTodayCmd) Run(ctx *Context) error {
	bg := context.Background()

	habits, err := ctx.Habits.Load(bg, ctx.User)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	today := utils.Today()
	completions, err := ctx.Completions.Load(bg, ctx.User)
	if err != nil {
		return err
	}
	doneToday := make(map[string]bool)
	for _, rec := range completions {
		if rec.Day == today && rec.Completed {
			doneToday[rec.HabitID] = true
		}
	}

	fmt.Printf("Habits for %s:\n\n", today)
	done, active := 0, 0
	for _, h := range habits {
		if !h.Active {
			continue
		}
		active++
		status := "[ ]"
		if doneToday[h.ID] {
			status = "[x]"
			done++
		}
		fmt.Printf("%s %s\n", status, h.Title)
	}
	fmt.Printf("\nCompleted: %d/%d\n", done, active)
	return nil
}

type HabitDeleteCmd struct {
	Title string `arg:"" help:"Habit title."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	bg := context.Background()
	habit, err := findHabit(bg, ctx, c.Title)
	if err != nil {
		return err
	}
	if err := ctx.Habits.Delete(bg, ctx.User, habit); err != nil {
		return err
	}
	fmt.Printf("Deleted habit: %s\n", habit.Title)
	return nil
}

func findHabit(ctx context.Context, appCtx *Context, title string) (models.Habit, error) {
	habits, err := appCtx.Habits.Load(ctx, appCtx.User)
	if err != nil {
		return models.Habit{}, err
	}
	for _, h := range habits {
		if h.Title == title {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit %q not found", title)
}
