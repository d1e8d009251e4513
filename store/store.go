// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/danielhkuo/quickly-vote/models"
)

var (
	ErrInvalidPostID   = errors.New("post id must be a positive integer")
	ErrInvalidVoteType = errors.New("vote type must be \"0\" or \"1\"")
	ErrAlreadyVoted    = errors.New("voter already voted on this post")
	ErrStorage         = errors.New("vote storage failed")
)

// querier is satisfied by *sql.DB and *sql.Tx
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// HasVoted returns the vote type recorded for the voter and post, if any.
func (s *Store) HasVoted(ctx context.Context, voterIP string, postID int64) (models.VoteType, bool, error) {
	if postID <= 0 {
		return "", false, nil
	}
	return hasVoted(ctx, s.db, voterIP, postID)
}

func hasVoted(ctx context.Context, q querier, voterIP string, postID int64) (models.VoteType, bool, error) {
	var voteType string
	err := q.QueryRowContext(ctx, `
		SELECT type FROM vote WHERE ip = $1 AND post_id = $2 LIMIT 1
	`, voterIP, postID).Scan(&voteType)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query vote: %w", err)
	}

	return models.VoteType(voteType), true, nil
}

// RecordVote stores a new vote. A voter can vote once per post; repeat
// votes are rejected with ErrAlreadyVoted and never overwrite the first.
func (s *Store) RecordVote(ctx context.Context, voterIP string, postID int64, voteType models.VoteType) error {
	if postID <= 0 {
		return ErrInvalidPostID
	}
	if !voteType.Valid() {
		return ErrInvalidVoteType
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		return ErrStorage
	}
	defer tx.Rollback()

	_, voted, err := hasVoted(ctx, tx, voterIP, postID)
	if err != nil {
		slog.Error("failed to check existing vote", "error", err, "post_id", postID)
		return ErrStorage
	}
	if voted {
		return ErrAlreadyVoted
	}

	// The unique (ip, post_id) constraint catches a concurrent insert that
	// passed the check above.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO vote (ip, post_id, type)
		VALUES ($1, $2, $3)
	`, voterIP, postID, string(voteType))
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyVoted
		}
		slog.Error("failed to insert vote", "error", err, "post_id", postID)
		return ErrStorage
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyVoted
		}
		slog.Error("failed to commit vote", "error", err, "post_id", postID)
		return ErrStorage
	}

	return nil
}

// GetTally counts the votes for a post and derives percentages.
// A post with no votes reports zero for both directions.
func (s *Store) GetTally(ctx context.Context, postID int64) (models.Tally, error) {
	var tally models.Tally
	if postID <= 0 {
		return tally, nil
	}

	var positive, negative, total int64
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN type = '1' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = '0' THEN 1 ELSE 0 END), 0),
			COUNT(*)
		FROM vote
		WHERE post_id = $1
	`, postID).Scan(&positive, &negative, &total)
	if err != nil {
		return tally, fmt.Errorf("failed to count votes: %w", err)
	}

	return ComputeTally(int(positive), int(negative), int(total)), nil
}

// ComputeTally rounds each percentage on its own (half away from zero), so
// the two need not add up to 100.
func ComputeTally(positive, negative, total int) models.Tally {
	tally := models.Tally{
		Positive: positive,
		Negative: negative,
		Total:    total,
	}
	if total <= 0 {
		return tally
	}

	tally.PositivePercent = roundPercent(positive, total)
	tally.NegativePercent = roundPercent(negative, total)

	return tally
}

// roundPercent returns round(100*count/total) with halves rounded up,
// in integer arithmetic so exact halves such as 29/200 are not lost.
func roundPercent(count, total int) int {
	return (200*count + total) / (2 * total)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			// extended result codes off
			return strings.Contains(sqliteErr.Error(), "UNIQUE")
		}
	}

	return false
}
