// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Drivers

Open picks the driver from cliparse.Config.DatabaseType:

  - postgres: github.com/lib/pq
  - sqlite: modernc.org/sqlite (pure Go, no cgo)

SQLite connections get busy_timeout and foreign_keys pragmas and are limited
to one open connection.

	conn, err := db.Open(ctx, cfg)

# Schema Creation

CreateSchema initializes the vote table for the given database type:

	if err := db.CreateSchema(ctx, conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for the table and indexes.

# Tables

  - vote: one row per (ip, post_id)

# Constraints

  - UNIQUE (ip, post_id): a voter votes once per post
  - CHECK (type IN ('0', '1'))
  - CHECK (post_id > 0)

# Indexes

  - vote.ip
  - vote.post_id
  - vote.type
*/
package db
