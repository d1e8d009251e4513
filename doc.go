// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Vote API server.

Quickly Vote lets readers give a post a single thumbs up or down and shows
the share of each once they have voted. Voters are identified by IP, one
vote per post, and votes cannot be changed.

# Starting the Server

	VOTE_API_KEY=... DATABASE_URL=file:votes.db go run .

Or with flags and Postgres:

	go run . -p 3318 -t postgres -d "postgres://..." -api-key "..."

A .env file in the working directory is loaded first.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string
  - VOTE_API_KEY (-api-key): Shared key sent with every vote

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres

# Architecture

  - app: Lifecycle (OnStartup, OnRenderRequest) and wiring
  - store: Vote recording and tallies
  - handlers: HTTP request handlers
  - votebox: Widget state for a voter
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, client IP
  - models: Request/response and domain types
  - auth: API key check
  - db: Connection and schema creation
  - cliparse: Configuration parsing

Logs are text on a terminal and JSON otherwise.
*/
package main
