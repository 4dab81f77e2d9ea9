package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"wireshell/internal/domain"
	"wireshell/internal/seed"
)

type dbSeedOptions struct {
	file       string
	schemaOnly bool
	dropTables bool
}

func (a *App) dbSeedCommand() *cobra.Command {
	var opts dbSeedOptions

	cmd := &cobra.Command{
		Use:   "db:seed",
		Short: "Creates the content tables and loads seed data",
		Long: `Creates missing content tables, then loads templates, pages and users
from a YAML file (or the built-in seed) in one transaction. Entries that
already exist are left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.seed(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.file, "file", "", "Seed YAML file (default: built-in seed)")
	cmd.Flags().BoolVar(&opts.schemaOnly, "schema-only", false, "Only create the tables")
	cmd.Flags().BoolVar(&opts.dropTables, "drop-tables", false, "Drop the content tables first (fresh start)")

	return cmd
}

func (a *App) seed(ctx context.Context, opts dbSeedOptions) error {
	if opts.dropTables && a.cfg.Environment == "prod" {
		return &domain.ValidationError{Message: "Cannot drop tables in the prod environment."}
	}

	// Load before connecting so a bad file leaves the store untouched
	var (
		f   *seed.File
		err error
	)
	if !opts.schemaOnly {
		if opts.file != "" {
			f, err = seed.LoadFile(opts.file)
		} else {
			f, err = seed.Default()
		}
		if err != nil {
			return err
		}
	}

	store, err := a.openStore(ctx)
	if err != nil {
		return &BootstrapError{Err: err}
	}
	defer store.Close()

	a.out.Header(fmt.Sprintf("seeding %s store", store.Backend))
	if opts.dropTables {
		if err := store.Drop(ctx); err != nil {
			return err
		}
		a.logger.Warn("content tables dropped", "backend", store.Backend, "environment", a.cfg.Environment)
		a.out.Success("Tables dropped.")
	}
	if err := store.Migrate(ctx); err != nil {
		return err
	}
	a.out.Success("Schema ready.")
	if opts.schemaOnly {
		return nil
	}

	seeder := seed.NewSeeder(store.Templates, store.Pages, store.Users, store.Tx, a.logger)
	summary, err := seeder.Seed(ctx, f)
	if err != nil {
		return err
	}
	a.out.Success(fmt.Sprintf("Seeded %d templates, %d pages and %d users (%d already present).",
		summary.Templates, summary.Pages, summary.Users, summary.Skipped))
	return nil
}
