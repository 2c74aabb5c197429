package cli

import (
	"fmt"
	"os"

	"github.com/daybook-app/daybook/internal/constants"
	"github.com/daybook-app/daybook/internal/errors"
	"github.com/daybook-app/daybook/internal/keyring"
	"github.com/daybook-app/daybook/internal/remote"
)

type InitCmd struct {
	Force bool `help:"Reinitialize even if storage already exists."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if c.Force {
		if err := os.Remove(ctx.Cache.Path()); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	if err := ctx.Cache.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized local storage at %s\n", ctx.Cache.Path())

	if ctx.Remote != nil {
		if err := ctx.Remote.Init(); err != nil {
			return fmt.Errorf("remote initialization failed: %w", err)
		}
		fmt.Println("Remote store initialized and migrated.")
	}
	return nil
}

type SettingsCmd struct {
	SetConnection   SettingsSetConnectionCmd   `cmd:"" name:"set-connection" help:"Store the remote connection string in the OS keyring."`
	ClearConnection SettingsClearConnectionCmd `cmd:"" name:"clear-connection" help:"Remove the remote connection string from the OS keyring."`
	Show            SettingsShowCmd            `cmd:"" help:"Show where the remote connection is configured."`
}

type SettingsSetConnectionCmd struct {
	ConnStr string `arg:"" help:"PostgreSQL connection string (no embedded password)."`
}

func (c *SettingsSetConnectionCmd) Run(ctx *Context) error {
	if _, err := remote.ValidateConnString(c.ConnStr); err != nil {
		return err
	}
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	if err := keyring.SetConnectionString(c.ConnStr); err != nil {
		return err
	}
	fmt.Println("Connection string stored in OS keyring.")
	return nil
}

type SettingsClearConnectionCmd struct{}

func (c *SettingsClearConnectionCmd) Run(ctx *Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		return err
	}
	fmt.Println("Connection string removed from OS keyring.")
	return nil
}

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *Context) error {
	if os.Getenv(constants.EnvRemoteConnection) != "" {
		fmt.Printf("Remote connection: %s environment variable\n", constants.EnvRemoteConnection)
		return nil
	}
	if _, err := keyring.GetConnectionString(); err == nil {
		fmt.Println("Remote connection: OS keyring")
		return nil
	}
	fmt.Println("Remote connection: not configured (anonymous mode)")
	return nil
}

type DebugCmd struct {
	Cache    DebugCacheCmd    `cmd:"" help:"Dump cache keys and storage location."`
	Classify DebugClassifyCmd `cmd:"" help:"Show how an error message would be classified."`
}

type DebugCacheCmd struct{}

func (c *DebugCacheCmd) Run(ctx *Context) error {
	fmt.Printf("Cache: %s\n", ctx.Cache.Path())
	keys, err := ctx.Cache.Keys()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		fmt.Println("(empty)")
		return nil
	}
	for _, k := range keys {
		fmt.Println(k)
	}
	return nil
}

type DebugClassifyCmd struct {
	Message string `arg:"" help:"Error message to classify."`
}

func (c *DebugClassifyCmd) Run(ctx *Context) error {
	kind := errors.Classify(fmt.Errorf("%s", c.Message))
	fmt.Printf("%q classifies as %s\n", c.Message, kind)
	return nil
}
