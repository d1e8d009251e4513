// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Database connection string or SQLite file (required)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - APIKey: Shared secret required to cast votes (required)

# CLI Flags

	-p        Server port
	-d        Database URL
	-t        Database type
	-api-key  Shared API key

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	VOTE_API_KEY  → -api-key

CLI flags take precedence over environment variables. main loads a .env file
into the environment before parsing, so the same names work there.

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing
  - VOTE_API_KEY is missing
  - DATABASE_TYPE is not sqlite or postgres
  - PORT is not a number
*/
package cliparse
