// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package app

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/db"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/router"
	"github.com/danielhkuo/quickly-vote/store"
	"github.com/danielhkuo/quickly-vote/votebox"
)

// App holds the vote service's dependencies. A host embedding the service
// calls OnStartup once, then OnRenderRequest for each page it renders.
type App struct {
	cfg   cliparse.Config
	conn  *sql.DB
	store *store.Store
}

func New(cfg cliparse.Config, conn *sql.DB) *App {
	return &App{
		cfg:   cfg,
		conn:  conn,
		store: store.New(conn),
	}
}

// OnStartup provisions the vote table. Safe to run on every start.
func (a *App) OnStartup(ctx context.Context) error {
	if err := db.CreateSchema(ctx, a.conn, a.cfg.DatabaseType); err != nil {
		return err
	}
	slog.Info("Database schema ready", "database_type", a.cfg.DatabaseType)
	return nil
}

// OnRenderRequest returns the vote box for a voter viewing a post.
func (a *App) OnRenderRequest(ctx context.Context, voterIP string, postID int64) (models.VoteBox, error) {
	return votebox.Render(ctx, a.store, voterIP, postID)
}

// Handler returns the HTTP API.
func (a *App) Handler() http.Handler {
	return router.NewRouter(a.store, a.cfg)
}
