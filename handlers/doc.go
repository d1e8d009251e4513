// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the vote API.

# Handler Types

VoteHandler depends on a VoteStore (satisfied by *store.Store) and the
Config holding the shared API key:

	voteHandler := handlers.NewVoteHandler(store.New(conn), cfg)

# Casting a Vote

	POST /api/v1/vote → CastVote

Body (JSON or form-encoded):

	{"apiKey": "...", "postId": 42, "voteType": "1"}

Checks run in order; the first failure is returned:

 1. apiKey must match the configured key      → 403 accessForbidden
 2. postId present, numeric and non-zero      → 404 postIdMissing
 3. voteType "0" or "1"                        → 404 voteTypeMissing
 4. store accepts the vote (not a duplicate)   → 400 voteFailed

Anything unclassified is 500 default. Success returns the thanks title,
both percentages with a "%" suffix, and the echoed voteType.

# Vote Box

	GET /api/v1/posts/{postId}/vote-box → GetVoteBox

Returns the widget state for the calling voter (see package votebox).

# Errors

Every error body has the same shape, and every error is logged with its
code and extra context:

	{"code": "voteFailed", "label": "Vote failed.", "status": 400, "extra": {...}}
*/
package handlers
