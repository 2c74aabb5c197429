package cli

import (
	"fmt"

	"github.com/daybook-app/daybook/internal/achievements"
)

type AchievementsCmd struct {
	List     AchievementListCmd     `cmd:"" help:"List achievements." default:"1"`
	Progress AchievementProgressCmd `cmd:"" help:"Show progress toward one achievement."`
}

type AchievementListCmd struct {
	All bool `help:"Include locked achievements."`
}

func (c *AchievementListCmd) Run(ctx *Context) error {
	unlocked, err := ctx.Engine.Unlocked()
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(unlocked))
	for _, a := range unlocked {
		have[a.ID] = true
	}

	if !c.All && len(unlocked) == 0 {
		fmt.Println("No achievements unlocked yet. Use --all to see what's available.")
		return nil
	}

	for _, rule := range achievements.Rules {
		if have[rule.ID] {
			fmt.Printf("%s %s  %s\n", rule.Icon, unlockStyle.Render(rule.Title), faintStyle.Render(rule.Description))
			continue
		}
		if c.All {
			fmt.Printf("🔒 %s  %s\n", rule.Title, faintStyle.Render(rule.Description))
		}
	}
	return nil
}

type AchievementProgressCmd struct {
	ID string `arg:"" help:"Achievement id (e.g. streak_7)."`
}

func (c *AchievementProgressCmd) Run(ctx *Context) error {
	p, err := ctx.Engine.ProgressFor(c.ID)
	if err != nil {
		return err
	}
	rule, _ := achievements.RuleByID(c.ID)

	fmt.Printf("%s %s\n", rule.Icon, titleStyle.Render(rule.Title))
	fmt.Println(faintStyle.Render(rule.Description))
	if p.Unlocked {
		fmt.Println(unlockStyle.Render("Unlocked!"))
		return nil
	}
	fmt.Printf("Progress: %d/%d (%d%%)\n", p.Current, p.Required, p.Percent)
	return nil
}
