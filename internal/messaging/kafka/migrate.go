package kafka

import (
	"context"
	"database/sql"
)

// Migrate creates the outbox table. It lives outside the gorm
// auto-migration because the repository speaks raw SQL.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS outbox_events (
    id              UUID PRIMARY KEY,
    request_id      TEXT,
    aggregate_type  TEXT NOT NULL,
    aggregate_id    TEXT NOT NULL,
    event_type      TEXT NOT NULL,
    topic           TEXT NOT NULL,
    payload         JSONB NOT NULL,
    status          VARCHAR(10) NOT NULL DEFAULT 'pending',
    retry_count     INT NOT NULL DEFAULT 0,
    error_message   TEXT,
    next_retry_at   TIMESTAMPTZ,
    processed_at    TIMESTAMPTZ,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_outbox_status_retry
    ON outbox_events (status, next_retry_at);
`)
	return err
}
