// Package cli implements the wireshell commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"wireshell/internal/config"
	"wireshell/internal/domain"
	"wireshell/internal/repository"
)

// StoreOpener connects to the content store.
type StoreOpener func(ctx context.Context) (*repository.Store, error)

// BootstrapError is returned when no usable content store is found.
type BootstrapError struct {
	Err error
}

func (e *BootstrapError) Error() string { return "No content store found." }

func (e *BootstrapError) Unwrap() error { return e.Err }

func (e *BootstrapError) ExitCode() int { return 1 }

// App holds what every command needs
type App struct {
	cfg       *config.Config
	logger    *slog.Logger
	openStore StoreOpener
	prompter  Prompter
	out       *Output
	errOut    *Output
}

// Option configures an App
type Option func(*App)

// WithPrompter replaces the stdin prompter.
func WithPrompter(p Prompter) Option {
	return func(a *App) { a.prompter = p }
}

// WithStoreOpener replaces the store opener derived from the config.
func WithStoreOpener(open StoreOpener) Option {
	return func(a *App) { a.openStore = open }
}

// NewApp creates the command application
func NewApp(cfg *config.Config, logger *slog.Logger, stdout, stderr io.Writer, opts ...Option) *App {
	a := &App{
		cfg:    cfg,
		logger: logger,
		out:    NewOutput(stdout, cfg.NoColor),
		errOut: NewOutput(stderr, cfg.NoColor),
	}
	a.openStore = func(ctx context.Context) (*repository.Store, error) {
		return repository.Open(ctx, cfg, logger)
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.prompter == nil {
		a.prompter = NewPrompter(os.Stdin, a.out)
	}
	return a
}

// Run executes the command named by args and returns the process exit status.
func (a *App) Run(ctx context.Context, args []string) int {
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(a.out.Writer())
	root.SetErr(a.errOut.Writer())

	err := root.ExecuteContext(ctx)
	if err != nil {
		a.errOut.Error(err.Error())
	}
	return domain.ExitCode(err)
}

func (a *App) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "wireshell",
		Short:         "Command line administration for a page-tree content store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		a.pageCreateCommand(),
		a.userListCommand(),
		a.showAdminCommand(),
		a.templateListCommand(),
		a.dbSeedCommand(),
	)
	return root
}

// store opens the content store and checks that it has been set up.
// Callers must Close the returned store.
func (a *App) store(ctx context.Context) (*repository.Store, error) {
	store, err := a.openStore(ctx)
	if err != nil {
		a.logger.Error("content store unavailable", "error", err)
		return nil, &BootstrapError{Err: err}
	}
	if err := store.Ready(ctx); err != nil {
		store.Close()
		a.logger.Error("content store not initialised", "error", err)
		return nil, &BootstrapError{Err: err}
	}
	return store, nil
}

func (a *App) printf(format string, args ...any) {
	a.out.Println(fmt.Sprintf(format, args...))
}
