// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
)

// Error codes returned to API callers
const (
	CodeDefault         = "default"
	CodeAccessForbidden = "accessForbidden"
	CodePostIDMissing   = "postIdMissing"
	CodeVoteTypeMissing = "voteTypeMissing"
	CodeVoteFailed      = "voteFailed"
)

type errorKind struct {
	label  string
	status int
}

// read-only after init
var errorKinds = map[string]errorKind{
	CodeDefault:         {"Unknown Error", http.StatusInternalServerError},
	CodeAccessForbidden: {"Access Forbidden", http.StatusForbidden},
	CodePostIDMissing:   {"Post ID is missing.", http.StatusNotFound},
	CodeVoteTypeMissing: {"Vote Type is missing.", http.StatusNotFound},
	CodeVoteFailed:      {"Vote failed.", http.StatusBadRequest},
}

// NewErrorResponse looks up the label and status for code.
// Unknown codes fall back to the default kind but keep their code.
func NewErrorResponse(code string, extra any) models.ErrorResponse {
	kind, ok := errorKinds[code]
	if !ok {
		kind = errorKinds[CodeDefault]
	}
	return models.ErrorResponse{
		Code:   code,
		Label:  kind.label,
		Status: kind.status,
		Extra:  extra,
	}
}

// writeError logs the failure and writes the error body.
func writeError(w http.ResponseWriter, r *http.Request, code string, extra any) {
	resp := NewErrorResponse(code, extra)

	slog.Warn("api error",
		"code", resp.Code,
		"status", resp.Status,
		"path", r.URL.Path,
		"request_id", w.Header().Get(middleware.RequestIDHeader),
		"extra", extra,
	)

	middleware.JSONResponse(w, resp.Status, resp)
}
