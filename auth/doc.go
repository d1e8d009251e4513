// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth checks the shared API key required to cast votes.

# API Key

Every vote request carries the key in its body. It must match the key the
server was started with (VOTE_API_KEY):

	if err := auth.ValidateAPIKey(req.APIKey, cfg.APIKey); err != nil {
		// 403 accessForbidden
	}

This is a shared secret, not a per-user credential. Anyone holding it can
vote for any IP the server sees. Both values are SHA-256 hashed before a
constant-time comparison, and an empty key on either side is rejected.
*/
package auth
