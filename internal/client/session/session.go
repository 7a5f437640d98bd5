// Package session persists the CLI login (token and email) in a local
// SQLite database so it survives restarts.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/jobtracker/internal/client/migrations"
	"github.com/dmitrijs2005/jobtracker/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/jobtracker/internal/common"
	"github.com/dmitrijs2005/jobtracker/internal/filex"
)

// newRepository is a test seam.
var newRepository = func(db *sql.DB) metadata.Repository { return metadata.NewSQLiteRepository(db) }

// Store wraps the session database.
type Store struct {
	db   *sql.DB
	meta metadata.Repository
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Open opens (creating if needed) the SQLite file at path and applies
// migrations. A leading "~/" is expanded to the home directory.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn, err := filex.EnsureParentDir(path)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, meta: newRepository(db)}, nil
}

// Token returns the saved token or "" when nobody is logged in.
func (s *Store) Token(ctx context.Context) (string, error) {
	return s.value(ctx, metadata.KeyToken)
}

// Email returns the email of the saved login or "".
func (s *Store) Email(ctx context.Context) (string, error) {
	return s.value(ctx, metadata.KeyEmail)
}

func (s *Store) value(ctx context.Context, key string) (string, error) {
	v, err := s.meta.Get(ctx, key)
	if errors.Is(err, common.ErrorNotFound) {
		return "", nil
	}
	return v, err
}

// Save stores email and token together.
func (s *Store) Save(ctx context.Context, email, token string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	repo := metadata.NewSQLiteRepository(tx)
	if err := repo.Set(ctx, metadata.KeyEmail, email); err != nil {
		return err
	}
	if err := repo.Set(ctx, metadata.KeyToken, token); err != nil {
		return err
	}
	return tx.Commit()
}

// Clear forgets the saved login.
func (s *Store) Clear(ctx context.Context) error {
	return s.meta.Clear(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}
