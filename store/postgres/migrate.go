package postgres

import "context"

// Migrate applies the relcore_tuples DDL idempotently. Safe to call on
// every process start; CREATE TABLE/INDEX IF NOT EXISTS means a second
// call against an already-migrated database is a no-op.
func Migrate(ctx context.Context, db Execer) error {
	_, err := db.ExecContext(ctx, TuplesSQL)
	return err
}
