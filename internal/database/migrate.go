package database

import (
	"context"
	"embed"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/Havertz69/rental-app/internal/logger"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

const migrationLockID = 5550142

// migrationConn is a single session: the advisory lock is held per session,
// so the lock, the migrations and the unlock must share one connection.
type migrationConn interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Migrate applies the embedded SQL migrations that are not yet recorded in
// schema_migrations, in filename order. Concurrent runs are serialised with an
// advisory lock held on one dedicated pool connection.
//
// If anything fails the connection is closed instead of returned to the
// pool, which drops any lock it may still hold.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) error {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return eris.Wrap(err, "acquire migration connection")
	}

	if err := migrate(ctx, conn, log); err != nil {
		_ = conn.Hijack().Close(context.WithoutCancel(ctx))
		return err
	}
	conn.Release()
	return nil
}

func migrate(ctx context.Context, conn migrationConn, log *logger.Logger) (err error) {
	log = log.Component("database.migrate")

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", migrationLockID); err != nil {
		return eris.Wrap(err, "acquire migration advisory lock")
	}
	defer func() {
		_, unlockErr := conn.Exec(context.WithoutCancel(ctx), "SELECT pg_advisory_unlock($1)", migrationLockID)
		if unlockErr != nil && err == nil {
			err = eris.Wrap(unlockErr, "release migration advisory lock")
		}
	}()

	if err := ensureMigrationTable(ctx, conn); err != nil {
		return err
	}

	names, err := migrationNames()
	if err != nil {
		return err
	}

	applied, err := appliedMigrations(ctx, conn)
	if err != nil {
		return err
	}

	for _, name := range names {
		if applied[name] {
			continue
		}
		if err := applyMigration(ctx, conn, name); err != nil {
			return err
		}
		log.Info("migration applied", map[string]interface{}{"file": name})
	}

	return nil
}

// applyMigration runs one file and records it in the same transaction.
func applyMigration(ctx context.Context, conn migrationConn, name string) error {
	data, err := migrationFS.ReadFile("migrations/" + name)
	if err != nil {
		return eris.Wrapf(err, "read migration %s", name)
	}

	tx, err := conn.Begin(ctx)
	if err != nil {
		return eris.Wrapf(err, "begin migration %s", name)
	}

	if _, err := tx.Exec(ctx, string(data)); err != nil {
		_ = tx.Rollback(ctx)
		return eris.Wrapf(err, "apply migration %s", name)
	}

	if _, err := tx.Exec(ctx,
		"INSERT INTO schema_migrations (filename, applied_at) VALUES ($1, now())",
		name,
	); err != nil {
		_ = tx.Rollback(ctx)
		return eris.Wrapf(err, "record migration %s", name)
	}

	if err := tx.Commit(ctx); err != nil {
		return eris.Wrapf(err, "commit migration %s", name)
	}
	return nil
}

func migrationNames() ([]string, error) {
	entries, err := fs.ReadDir(migrationFS, "migrations")
	if err != nil {
		return nil, eris.Wrap(err, "read migration dir")
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

func ensureMigrationTable(ctx context.Context, q Querier) error {
	sql := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			id         SERIAL PRIMARY KEY,
			filename   TEXT NOT NULL UNIQUE,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`
	if _, err := q.Exec(ctx, sql); err != nil {
		return eris.Wrap(err, "ensure migration table")
	}
	return nil
}

func appliedMigrations(ctx context.Context, q Querier) (map[string]bool, error) {
	rows, err := q.Query(ctx, "SELECT filename FROM schema_migrations")
	if err != nil {
		return nil, eris.Wrap(err, "query applied migrations")
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, eris.Wrap(err, "scan migration row")
		}
		applied[name] = true
	}
	return applied, rows.Err()
}
