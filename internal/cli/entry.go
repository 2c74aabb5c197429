package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/daybook-app/daybook/internal/models"
	"github.com/daybook-app/daybook/internal/recordstore"
)

type EntryCmd struct {
	Add    EntryAddCmd    `cmd:"" help:"Write or update a journal entry for a day."`
	List   EntryListCmd   `cmd:"" help:"List journal entries."`
	Show   EntryShowCmd   `cmd:"" help:"Show one entry in full."`
	Delete EntryDeleteCmd `cmd:"" help:"Delete an entry."`
}

type EntryAddCmd struct {
	Title   string `arg:"" help:"Entry title."`
	Content string `help:"Entry body." default:""`
	Date    string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
	Mood    int    `help:"Mood rating 1-5." default:"0"`
	Tags    string `help:"Comma-separated tags." default:""`
}

func (c *EntryAddCmd) Run(ctx *Context) error {
	day, err := resolveDay(c.Date)
	if err != nil {
		return err
	}
	if c.Mood != 0 && (c.Mood < 1 || c.Mood > 5) {
		return fmt.Errorf("mood must be between 1 and 5, got %d", c.Mood)
	}

	// A fresh id and timestamps for the insert case; a same-day update keeps
	// the existing record's id through the merge.
	incoming := models.Entry{
		ID:        uuid.New().String(),
		UserID:    ctx.User,
		Date:      day,
		Title:     c.Title,
		Content:   c.Content,
		Mood:      c.Mood,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if c.Tags != "" {
		for _, tag := range strings.Split(c.Tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				incoming.Tags = append(incoming.Tags, tag)
			}
		}
	}

	bg := context.Background()
	saved, err := ctx.Entries.Upsert(bg, ctx.User, incoming, recordstore.MergeEntry)
	if err != nil {
		return err
	}

	fmt.Printf("Saved entry for %s: %s\n", saved.Date, saved.Title)
	ctx.Refresh(bg)
	return nil
}

type EntryListCmd struct {
	Limit int `help:"Maximum number of entries to show." default:"10"`
}

func (c *EntryListCmd) Run(ctx *Context) error {
	entries, err := ctx.Entries.Load(context.Background(), ctx.User)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No entries yet. Write one with 'daybook entry add'.")
		return nil
	}

	shown := 0
	for _, e := range entries {
		if c.Limit > 0 && shown >= c.Limit {
			break
		}
		mood := ""
		if e.Mood > 0 {
			mood = fmt.Sprintf("  mood %d/5", e.Mood)
		}
		fmt.Printf("%s  %s%s\n", e.Date, titleStyle.Render(e.Title), faintStyle.Render(mood))
		shown++
	}
	if rest := len(entries) - shown; rest > 0 {
		fmt.Println(faintStyle.Render(fmt.Sprintf("(%d more, use --limit)", rest)))
	}
	return nil
}

type EntryShowCmd struct {
	Date string `arg:"" help:"Entry date (YYYY-MM-DD)."`
}

func (c *EntryShowCmd) Run(ctx *Context) error {
	day, err := resolveDay(c.Date)
	if err != nil {
		return err
	}

	entries, err := ctx.Entries.Load(context.Background(), ctx.User)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.Date != day {
			continue
		}
		fmt.Println(titleStyle.Render(e.Title))
		fmt.Println(faintStyle.Render(e.Date))
		if e.Mood > 0 {
			fmt.Printf("Mood: %d/5\n", e.Mood)
		}
		if len(e.Tags) > 0 {
			fmt.Printf("Tags: %s\n", strings.Join(e.Tags, ", "))
		}
		if e.Content != "" {
			fmt.Printf("\n%s\n", e.Content)
		}
		return nil
	}
	return fmt.Errorf("no entry for %s", day)
}

type EntryDeleteCmd struct {
	Date string `arg:"" help:"Entry date (YYYY-MM-DD)."`
}

func (c *EntryDeleteCmd) Run(ctx *Context) error {
	day, err := resolveDay(c.Date)
	if err != nil {
		return err
	}

	bg := context.Background()
	entries, err := ctx.Entries.Load(bg, ctx.User)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.Date != day {
			continue
		}
		if err := ctx.Entries.Delete(bg, ctx.User, e); err != nil {
			return err
		}
		fmt.Printf("Deleted entry for %s\n", day)
		ctx.Refresh(bg)
		return nil
	}
	return fmt.Errorf("no entry for %s", day)
}
