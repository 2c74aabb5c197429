package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/daybook-app/daybook/internal/achievements"
	"github.com/daybook-app/daybook/internal/cache"
	"github.com/daybook-app/daybook/internal/models"
	"github.com/daybook-app/daybook/internal/recordstore"
	"github.com/daybook-app/daybook/internal/remote"
	"github.com/daybook-app/daybook/internal/stats"
	"github.com/daybook-app/daybook/internal/utils"
)

// Context carries the wired application graph into every command.
type Context struct {
	Cache       cache.Store
	Remote      *remote.Client // nil in anonymous/offline mode
	Entries     *recordstore.Store[models.Entry]
	Health      *recordstore.Store[models.HealthSample]
	Habits      *recordstore.Store[models.Habit]
	Completions *recordstore.Store[models.HabitCompletion]
	Engine      *achievements.Engine
	Collector   *stats.Collector

	// User is the remote owner id. Empty means anonymous mode: every
	// operation stays local.
	User string

	Debug bool
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	unlockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	faintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// Refresh recomputes the stats snapshot after a qualifying action and prints
// any achievements it unlocked. Recompute failures are reported but never
// undo the write that triggered them.
func (c *Context) Refresh(ctx context.Context) {
	_, unlocked, err := c.Collector.Recompute(ctx, c.User)
	if err != nil {
		fmt.Println(faintStyle.Render(fmt.Sprintf("(stats refresh failed: %v)", err)))
		return
	}
	for _, a := range unlocked {
		fmt.Println(unlockStyle.Render(fmt.Sprintf("%s Achievement unlocked: %s (%s)", a.Icon, a.Title, a.Description)))
	}
}

// resolveDay validates an optional --date flag, defaulting to today.
func resolveDay(flag string) (string, error) {
	if flag == "" {
		return utils.Today(), nil
	}
	if !utils.ValidDay(flag) {
		return "", fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", flag)
	}
	return flag, nil
}
