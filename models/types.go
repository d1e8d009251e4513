package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// VoteType is the recorded direction of a vote. Values are the literal
// strings stored in the database.
type VoteType string

const (
	VotePositive VoteType = "1"
	VoteNegative VoteType = "0"
)

// Valid reports whether t is one of the two accepted literals.
func (t VoteType) Valid() bool {
	return t == VotePositive || t == VoteNegative
}

// Domain types

// Tally is derived from all votes of a post. Percentages are rounded
// independently and may not sum to 100.
type Tally struct {
	Positive        int `json:"positive"`
	Negative        int `json:"negative"`
	Total           int `json:"total"`
	PositivePercent int `json:"positive_percent"`
	NegativePercent int `json:"negative_percent"`
}

// Param is a request value that may arrive as a JSON string or number.
// Browsers read postId from data attributes, so it is often a string.
// Any other JSON value is kept as its raw text so the request still
// decodes and the field fails validation on its own.
type Param string

func (p *Param) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case string(data) == "null":
		*p = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Param(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		*p = Param(data)
		return nil
	}
	*p = Param(n.String())
	return nil
}

// Int parses the param as a base-10 integer.
func (p Param) Int() (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(string(p)), 10, 64)
}

// Request types

type CastVoteRequest struct {
	APIKey   string `json:"apiKey"`
	PostID   Param  `json:"postId"`
	VoteType Param  `json:"voteType"`
}

// Response types

type VoteText struct {
	Title        string `json:"title"`
	VoteUpText   string `json:"voteUpText"`
	VoteDownText string `json:"voteDownText"`
}

type CastVoteResponse struct {
	VoteState bool     `json:"voteState"`
	Text      VoteText `json:"text"`
	VoteType  VoteType `json:"voteType"`
}

// Button states in a vote box
const (
	ButtonSelected = "selected"
	ButtonDisabled = "disabled"
)

// VoteBox is the widget state shown to one voter for one post.
type VoteBox struct {
	PostID        int64    `json:"postId"`
	Voted         bool     `json:"voted"`
	VoteType      VoteType `json:"voteType,omitempty"`
	Text          VoteText `json:"text"`
	VoteUpState   string   `json:"voteUpState,omitempty"`
	VoteDownState string   `json:"voteDownState,omitempty"`
	Summary       string   `json:"summary,omitempty"`
}

// Error response

type ErrorResponse struct {
	Code   string `json:"code"`
	Label  string `json:"label"`
	Status int    `json:"status"`
	Extra  any    `json:"extra,omitempty"`
}
