package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/phrazzld/learning-tracker/internal/app"
	"github.com/phrazzld/learning-tracker/internal/config"
	"github.com/phrazzld/learning-tracker/internal/platform/logger"
	"github.com/spf13/cobra"
)

// cli carries state shared by every subcommand.
type cli struct {
	out        io.Writer
	loadConfig func() (*config.Config, error)

	driver      string
	databaseURL string
	logLevel    string

	cfg    *config.Config
	logger *slog.Logger
}

func newCLI(out io.Writer) *cli {
	return &cli{out: out, loadConfig: config.Load}
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "trackerctl",
		Short:         "Manage learning tracker decks, reviews and schema",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
	}
	root.SetOut(c.out)

	flags := root.PersistentFlags()
	flags.StringVar(&c.driver, "driver", "", "database driver (postgres or sqlite), overrides config")
	flags.StringVar(&c.databaseURL, "database-url", "", "database URL or sqlite path, overrides config")
	flags.StringVar(&c.logLevel, "log-level", "warn", "log level written to stderr")

	root.AddCommand(migrateCmd(c))
	root.AddCommand(tokenCmd(c))
	root.AddCommand(decksCmd(c))
	root.AddCommand(queueCmd(c))
	root.AddCommand(reviewCmd(c))

	return root
}

// setup loads configuration and applies flag overrides.
func (c *cli) setup() error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if c.driver != "" {
		cfg.Database.Driver = c.driver
	}
	if c.databaseURL != "" {
		cfg.Database.URL = c.databaseURL
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	l, err := logger.Setup(logger.LoggerConfig{Level: c.logLevel, Output: os.Stderr})
	if err != nil {
		return err
	}

	c.cfg = cfg
	c.logger = l
	return nil
}

// withServices opens the backend, builds the services and runs fn, closing
// the backend afterwards.
func (c *cli) withServices(ctx context.Context, fn func(*app.Services) error) error {
	return c.withBackend(ctx, func(backend *app.Backend) error {
		services, err := app.NewServices(backend, c.cfg.Review, c.logger)
		if err != nil {
			return err
		}
		return fn(services)
	})
}

func (c *cli) withBackend(ctx context.Context, fn func(*app.Backend) error) (err error) {
	backend, err := app.OpenBackend(ctx, c.cfg.Database, c.logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if cerr := backend.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close database: %w", cerr)
		}
	}()
	return fn(backend)
}
