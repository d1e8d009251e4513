// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/handlers"
	"github.com/danielhkuo/quickly-vote/middleware"
)

func NewRouter(s handlers.VoteStore, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	voteHandler := handlers.NewVoteHandler(s, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Voting (shared API key)
	mux.HandleFunc("POST /api/v1/vote", middleware.WithLogging(voteHandler.CastVote))

	// Vote box state (public, read-only)
	mux.HandleFunc("GET /api/v1/posts/{postId}/vote-box", middleware.WithLogging(voteHandler.GetVoteBox))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-vote API v1"))
	})

	return middleware.CORS(mux)
}
