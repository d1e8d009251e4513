// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

  - CastVoteRequest: apiKey, postId, voteType

postId and voteType are Param values, so clients may send either JSON strings
or numbers:

	{"apiKey": "...", "postId": "42", "voteType": "1"}
	{"apiKey": "...", "postId": 42, "voteType": 1}

# Response Types

  - CastVoteResponse: voteState, text (title, voteUpText, voteDownText), voteType
  - VoteBox: widget state for one voter and one post
  - ErrorResponse: code, label, status, extra

# Domain Types

  - VoteType: "1" (VotePositive) or "0" (VoteNegative)
  - Tally: per-post counts and percentages

# Rounding

Tally percentages are rounded independently, so 1 positive and 2 negative
votes give 33% and 67%, and 1/1/1 style splits can sum to 99 or 101.
*/
package models
