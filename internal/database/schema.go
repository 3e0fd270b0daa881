package database

import (
	"context"
	"fmt"
)

// schemaStatements define the indexes the API depends on. DEFINE statements
// are idempotent with OVERWRITE, so running them on every boot is safe.
//
// The saved_event pair index is load-bearing: it is what turns a concurrent
// double-save into a unique constraint violation instead of a second row.
var schemaStatements = []string{
	`DEFINE INDEX OVERWRITE user_email_unique ON TABLE user COLUMNS email UNIQUE`,
	`DEFINE INDEX OVERWRITE saved_event_pair_unique ON TABLE saved_event COLUMNS user, event UNIQUE`,
	`DEFINE INDEX OVERWRITE event_starts_at ON TABLE event COLUMNS starts_at`,
	`DEFINE INDEX OVERWRITE event_organizer ON TABLE event COLUMNS organizer`,
}

// EnsureSchema applies index definitions. Called once at startup, after
// Connect and before the server accepts requests.
func EnsureSchema(ctx context.Context, db Database) error {
	for _, stmt := range schemaStatements {
		if err := db.Execute(ctx, stmt, nil); err != nil {
			return fmt.Errorf("schema definition failed: %w", err)
		}
	}
	return nil
}
