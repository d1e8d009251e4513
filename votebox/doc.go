// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package votebox builds the state of the voting widget shown under a post.

A voter who has not voted sees the question and plain Yes/No buttons; no
tally is revealed. After voting, the title thanks them, both buttons show
percentages, their choice is "selected" and the other "disabled".

	box, err := votebox.Render(ctx, store, voterIP, postID)

Render only reads; it never records a vote.
*/
package votebox
