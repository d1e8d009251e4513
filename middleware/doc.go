// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and response helpers.

# Logging

WithLogging logs the start and end of each request with slog. Each request
gets an id (reused from X-Request-ID or a new UUID), echoed in the response
header:

	mux.HandleFunc("POST /api/v1/vote", middleware.WithLogging(h.CastVote))

# CORS

CORS reflects the request origin so the vote box can call the API from the
pages it is embedded in. Preflight OPTIONS requests return 200 immediately.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	err := middleware.ParseJSONBody(r, &req)

# Client IP

GetClientIP identifies the voter:

 1. First entry of X-Forwarded-For
 2. X-Real-IP
 3. RemoteAddr without the port
*/
package middleware
