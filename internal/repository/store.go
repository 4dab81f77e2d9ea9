// Package repository opens the content store named by DATABASE_URL.
package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"wireshell/internal/config"
	"wireshell/internal/domain/repositories"
	contentRepo "wireshell/internal/domain/repositories/content"
	"wireshell/internal/repository/postgres"
	postgresContent "wireshell/internal/repository/postgres/content"
	"wireshell/internal/repository/sqlite"
)

// Backend names a store implementation.
type Backend string

const (
	BackendPostgres Backend = "postgres"
	BackendSQLite   Backend = "sqlite"
)

// Store bundles the repositories of one open content store.
type Store struct {
	Backend   Backend
	Templates contentRepo.TemplateRepository
	Pages     contentRepo.PageRepository
	Users     contentRepo.UserRepository
	Tx        repositories.TransactionManager

	migrate func(ctx context.Context) error
	drop    func(ctx context.Context) error
	close   func()
}

// Migrate creates missing tables.
func (s *Store) Migrate(ctx context.Context) error {
	return s.migrate(ctx)
}

// Drop removes the content tables and everything in them.
func (s *Store) Drop(ctx context.Context) error {
	return s.drop(ctx)
}

// Ready reports an error when the content tables are missing.
func (s *Store) Ready(ctx context.Context) error {
	if _, err := s.Templates.List(ctx); err != nil {
		return fmt.Errorf("content tables unavailable: %w", err)
	}
	return nil
}

// Close releases the underlying connections.
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// DetectBackend picks the backend from the URL scheme. Anything that is not
// a postgres URL is treated as a SQLite path.
func DetectBackend(databaseURL string) Backend {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		return BackendPostgres
	}
	return BackendSQLite
}

// Open connects to the store configured in cfg.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	switch DetectBackend(cfg.DatabaseURL) {
	case BackendPostgres:
		return openPostgres(ctx, cfg, logger)
	default:
		return openSQLite(ctx, cfg, logger)
	}
}

func openPostgres(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}

	logger.Debug("content store opened", "backend", BackendPostgres, "table_prefix", cfg.TablePrefix)

	return &Store{
		Backend:   BackendPostgres,
		Templates: postgresContent.NewTemplateRepository(repoConfig),
		Pages:     postgresContent.NewPageRepository(repoConfig),
		Users:     postgresContent.NewUserRepository(repoConfig),
		Tx:        postgres.NewTransactionManager(pool, logger),
		migrate: func(ctx context.Context) error {
			return postgres.EnsureSchema(ctx, pool, tables)
		},
		drop: func(ctx context.Context) error {
			return postgres.DropSchema(ctx, pool, tables)
		},
		close: pool.Close,
	}, nil
}

func openSQLite(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	db, err := sqlite.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}

	logger.Debug("content store opened", "backend", BackendSQLite, "dsn", sqlite.DSN(cfg.DatabaseURL))

	return &Store{
		Backend:   BackendSQLite,
		Templates: sqlite.NewTemplateRepository(db, logger),
		Pages:     sqlite.NewPageRepository(db, logger),
		Users:     sqlite.NewUserRepository(db, logger),
		Tx:        sqlite.NewTransactionManager(db, logger),
		migrate: func(ctx context.Context) error {
			return sqlite.Migrate(ctx, db)
		},
		drop: func(ctx context.Context) error {
			return sqlite.Drop(ctx, db)
		},
		close: func() {
			if err := db.Close(); err != nil {
				logger.Warn("close sqlite", "error", err)
			}
		},
	}, nil
}
