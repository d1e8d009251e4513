// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store records votes and derives per-post tallies.

# Recording

	s := store.New(conn)
	err := s.RecordVote(ctx, voterIP, postID, models.VotePositive)

RecordVote validates its input before touching the database:

  - ErrInvalidPostID: postID <= 0
  - ErrInvalidVoteType: anything but "0" or "1"

It then checks for an existing vote and inserts inside one transaction.
The UNIQUE (ip, post_id) constraint rejects a concurrent duplicate that slips
past the check, so both paths report ErrAlreadyVoted. Any other database
failure is logged and returned as ErrStorage; driver errors are not exposed.

# Reading

	voteType, voted, err := s.HasVoted(ctx, voterIP, postID)
	tally, err := s.GetTally(ctx, postID)

Tallies are recomputed from the vote rows on every read. Percentages are
rounded independently:

	3 positive, 1 negative → 75 / 25
	1 positive, 2 negative → 33 / 67
*/
package store
