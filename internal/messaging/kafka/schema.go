package kafka

import "database/sql"

// EnsureOutboxTable creates the outbox table when it does not exist. The
// rest of the schema is managed by GORM auto-migration; the outbox stays on
// raw SQL because the publisher worker reads it without GORM.
func EnsureOutboxTable(db *sql.DB) error {
	ddl := `
        CREATE TABLE IF NOT EXISTS outbox_events (
            id            UUID PRIMARY KEY,
            request_id    TEXT NOT NULL DEFAULT '',
            aggregate_type TEXT NOT NULL,
            aggregate_id  TEXT NOT NULL,
            event_type    TEXT NOT NULL,
            topic         TEXT NOT NULL,
            payload       JSONB NOT NULL,
            status        TEXT NOT NULL DEFAULT 'pending',
            retry_count   INT NOT NULL DEFAULT 0,
            last_error    TEXT,
            created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            next_retry_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            sent_at       TIMESTAMPTZ
        )
    `
	_, err := db.Exec(ddl)
	return err
}
