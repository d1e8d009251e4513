// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP routes using Go 1.22+ pattern routing.

	handler := router.NewRouter(store.New(conn), cfg)

# Routes

	GET  /health                          → "OK"
	GET  /                                → API banner
	POST /api/v1/vote                     → VoteHandler.CastVote
	GET  /api/v1/posts/{postId}/vote-box  → VoteHandler.GetVoteBox

API routes are wrapped with middleware.WithLogging, and the whole mux with
middleware.CORS so browsers can call it from the pages showing the vote box.
*/
package router
