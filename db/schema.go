// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/quickly-vote/cliparse"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sql.DB, dbType string) error {
	var ddl string
	switch dbType {
	case cliparse.DatabasePostgres:
		ddl = postgresSchema
	case cliparse.DatabaseSQLite:
		ddl = sqliteSchema
	default:
		return fmt.Errorf("unsupported database type %q", dbType)
	}

	_, err := db.ExecContext(ctx, ddl)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const postgresSchema = `
-- Votes
CREATE TABLE IF NOT EXISTS vote (
    id BIGSERIAL PRIMARY KEY,
    ip TEXT NOT NULL,
    post_id BIGINT NOT NULL CHECK (post_id > 0),
    type CHAR(1) NOT NULL CHECK (type IN ('0', '1')),
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    UNIQUE (ip, post_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_ip ON vote(ip);
CREATE INDEX IF NOT EXISTS idx_vote_post_id ON vote(post_id);
CREATE INDEX IF NOT EXISTS idx_vote_type ON vote(type);
`

const sqliteSchema = `
-- Votes
CREATE TABLE IF NOT EXISTS vote (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    ip TEXT NOT NULL,
    post_id INTEGER NOT NULL CHECK (post_id > 0),
    type TEXT NOT NULL CHECK (type IN ('0', '1')),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (ip, post_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_ip ON vote(ip);
CREATE INDEX IF NOT EXISTS idx_vote_post_id ON vote(post_id);
CREATE INDEX IF NOT EXISTS idx_vote_type ON vote(type);
`
