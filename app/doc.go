// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package app wires the store, handlers and router together and exposes the
lifecycle callbacks a host uses:

	a := app.New(cfg, conn)
	if err := a.OnStartup(ctx); err != nil { ... }   // create tables
	box, err := a.OnRenderRequest(ctx, ip, postID)   // widget state
	srv := http.Server{Handler: a.Handler()}

Everything is passed in explicitly; there is no global state.
*/
package app
