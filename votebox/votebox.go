// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package votebox

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/quickly-vote/models"
)

// Titles shown above the buttons
const (
	TitleAsk    = "Was this article helpful?"
	TitleThanks = "Thank you for your feedback."
)

// Reader is the read side of the vote store.
type Reader interface {
	HasVoted(ctx context.Context, voterIP string, postID int64) (models.VoteType, bool, error)
	GetTally(ctx context.Context, postID int64) (models.Tally, error)
}

// Render builds the vote box for one voter. Tallies are only revealed
// once the voter has voted.
func Render(ctx context.Context, r Reader, voterIP string, postID int64) (models.VoteBox, error) {
	box := models.VoteBox{
		PostID: postID,
		Text: models.VoteText{
			Title:        TitleAsk,
			VoteUpText:   "Yes",
			VoteDownText: "No",
		},
	}

	voteType, voted, err := r.HasVoted(ctx, voterIP, postID)
	if err != nil {
		return box, err
	}
	if !voted {
		return box, nil
	}

	tally, err := r.GetTally(ctx, postID)
	if err != nil {
		return box, err
	}

	box.Voted = true
	box.VoteType = voteType
	box.Text = Thanks(tally)
	box.Summary = Summary(tally)
	if voteType == models.VotePositive {
		box.VoteUpState, box.VoteDownState = models.ButtonSelected, models.ButtonDisabled
	} else {
		box.VoteUpState, box.VoteDownState = models.ButtonDisabled, models.ButtonSelected
	}

	return box, nil
}

// Thanks is the text shown after a vote: the title and both percentages.
func Thanks(tally models.Tally) models.VoteText {
	return models.VoteText{
		Title:        TitleThanks,
		VoteUpText:   Percent(tally.PositivePercent),
		VoteDownText: Percent(tally.NegativePercent),
	}
}

func Percent(p int) string {
	return strconv.Itoa(p) + "%"
}

// Summary describes how many votes the percentages are based on.
func Summary(tally models.Tally) string {
	if tally.Total == 1 {
		return "Based on 1 vote"
	}
	return fmt.Sprintf("Based on %s votes", humanize.Comma(int64(tally.Total)))
}
