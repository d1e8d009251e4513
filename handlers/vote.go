// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/store"
	"github.com/danielhkuo/quickly-vote/votebox"
)

// VoteStore is the part of store.Store the handlers use.
type VoteStore interface {
	HasVoted(ctx context.Context, voterIP string, postID int64) (models.VoteType, bool, error)
	RecordVote(ctx context.Context, voterIP string, postID int64, voteType models.VoteType) error
	GetTally(ctx context.Context, postID int64) (models.Tally, error)
}

type VoteHandler struct {
	store VoteStore
	cfg   cliparse.Config
}

func NewVoteHandler(s VoteStore, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{store: s, cfg: cfg}
}

// CastVote handles POST /api/v1/vote
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	req, parseErr := readCastVoteRequest(r)

	// fail keeps a body parse error visible even when the query string
	// supplied the fields
	fail := func(code string, extra map[string]any) {
		if parseErr != nil {
			extra["parse_error"] = parseErr.Error()
		}
		writeError(w, r, code, extra)
	}

	// Authentication comes before any other check
	if err := auth.ValidateAPIKey(req.APIKey, h.cfg.APIKey); err != nil {
		fail(CodeAccessForbidden, map[string]any{})
		return
	}

	postID, err := req.PostID.Int()
	if req.PostID == "" || err != nil || postID == 0 {
		fail(CodePostIDMissing, map[string]any{"postId": string(req.PostID)})
		return
	}

	voteType := models.VoteType(strings.TrimSpace(string(req.VoteType)))
	if !voteType.Valid() {
		fail(CodeVoteTypeMissing, map[string]any{"voteType": string(req.VoteType)})
		return
	}

	if parseErr != nil {
		slog.Warn("vote body ignored, using query params", "error", parseErr, "request_id", w.Header().Get(middleware.RequestIDHeader))
	}

	voterIP := middleware.GetClientIP(r)

	if err := h.store.RecordVote(r.Context(), voterIP, postID, voteType); err != nil {
		code := CodeDefault
		if errors.Is(err, store.ErrAlreadyVoted) ||
			errors.Is(err, store.ErrInvalidPostID) ||
			errors.Is(err, store.ErrInvalidVoteType) ||
			errors.Is(err, store.ErrStorage) {
			code = CodeVoteFailed
		}
		fail(code, map[string]any{"postId": postID, "reason": err.Error()})
		return
	}

	tally, err := h.store.GetTally(r.Context(), postID)
	if err != nil {
		slog.Error("failed to compute tally", "error", err, "post_id", postID)
		fail(CodeDefault, map[string]any{"postId": postID})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CastVoteResponse{
		VoteState: true,
		Text:      votebox.Thanks(tally),
		VoteType:  voteType,
	})
}

// GetVoteBox handles GET /api/v1/posts/{postId}/vote-box
// Returns the widget state for the calling voter. Read-only, no API key.
func (h *VoteHandler) GetVoteBox(w http.ResponseWriter, r *http.Request) {
	raw := models.Param(r.PathValue("postId"))
	postID, err := raw.Int()
	if raw == "" || err != nil || postID <= 0 {
		writeError(w, r, CodePostIDMissing, map[string]string{"postId": string(raw)})
		return
	}

	box, err := votebox.Render(r.Context(), h.store, middleware.GetClientIP(r), postID)
	if err != nil {
		slog.Error("failed to render vote box", "error", err, "post_id", postID)
		writeError(w, r, CodeDefault, map[string]any{"postId": postID})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, box)
}

// readCastVoteRequest accepts a JSON body or form-encoded params. Fields
// missing from a JSON body fall back to the query string. A body that
// cannot be parsed yields an empty request and the parse error.
func readCastVoteRequest(r *http.Request) (models.CastVoteRequest, error) {
	var req models.CastVoteRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(1 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return req, err
		}
		req.APIKey = r.FormValue("apiKey")
		req.PostID = models.Param(r.FormValue("postId"))
		req.VoteType = models.Param(r.FormValue("voteType"))
		return req, nil
	}

	var parseErr error
	if r.Body != nil && r.ContentLength != 0 {
		if err := middleware.ParseJSONBody(r, &req); err != nil {
			req = models.CastVoteRequest{}
			parseErr = err
		}
	}

	q := r.URL.Query()
	if req.APIKey == "" {
		req.APIKey = q.Get("apiKey")
	}
	if req.PostID == "" {
		req.PostID = models.Param(q.Get("postId"))
	}
	if req.VoteType == "" {
		req.VoteType = models.Param(q.Get("voteType"))
	}

	return req, parseErr
}
