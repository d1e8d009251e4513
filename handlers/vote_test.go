// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/store"
	"github.com/danielhkuo/quickly-vote/testutil"
)

func newTestHandler(t *testing.T) (*VoteHandler, *store.Store) {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	s := store.New(conn)
	return NewVoteHandler(s, testutil.GetTestConfig(t)), s
}

func castVote(h *VoteHandler, body interface{}, ip string) *httptest.ResponseRecorder {
	req := testutil.MakeRequest("POST", "/api/v1/vote", body, map[string]string{"X-Forwarded-For": ip})
	w := httptest.NewRecorder()
	h.CastVote(w, req)
	return w
}

func TestCastVote_Success(t *testing.T) {
	h, s := newTestHandler(t)

	w := castVote(h, map[string]string{
		"apiKey":   testutil.TestAPIKey,
		"postId":   "42",
		"voteType": "1",
	}, "203.0.113.10")

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.CastVoteResponse
	testutil.AssertJSON(t, w, &resp)

	if !resp.VoteState {
		t.Error("Expected voteState true")
	}
	if resp.VoteType != models.VotePositive {
		t.Errorf("Expected voteType '1', got '%s'", resp.VoteType)
	}
	if resp.Text.Title != "Thank you for your feedback." {
		t.Errorf("Unexpected title '%s'", resp.Text.Title)
	}
	if resp.Text.VoteUpText != "100%" || resp.Text.VoteDownText != "0%" {
		t.Errorf("Unexpected percentages: %+v", resp.Text)
	}

	voteType, voted, err := s.HasVoted(context.Background(), "203.0.113.10", 42)
	if err != nil {
		t.Fatalf("HasVoted: %v", err)
	}
	if !voted || voteType != models.VotePositive {
		t.Errorf("Expected stored positive vote, got %q (voted=%v)", voteType, voted)
	}
}

func TestCastVote_NumericParams(t *testing.T) {
	h, _ := newTestHandler(t)

	w := castVote(h, map[string]interface{}{
		"apiKey":   testutil.TestAPIKey,
		"postId":   7,
		"voteType": 0,
	}, "203.0.113.11")

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.CastVoteResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.VoteType != models.VoteNegative {
		t.Errorf("Expected voteType '0', got '%s'", resp.VoteType)
	}
	if resp.Text.VoteDownText != "100%" {
		t.Errorf("Expected 100%% negative, got '%s'", resp.Text.VoteDownText)
	}
}

func TestCastVote_FormEncoded(t *testing.T) {
	h, _ := newTestHandler(t)

	form := url.Values{}
	form.Set("apiKey", testutil.TestAPIKey)
	form.Set("postId", "9")
	form.Set("voteType", "1")

	req := httptest.NewRequest("POST", "/api/v1/vote", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.RemoteAddr = "198.51.100.2:5555"
	w := httptest.NewRecorder()

	h.CastVote(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
}

func TestCastVote_Tally(t *testing.T) {
	h, _ := newTestHandler(t)

	votes := []struct {
		ip       string
		voteType string
	}{
		{"10.0.0.1", "1"},
		{"10.0.0.2", "0"},
		{"10.0.0.3", "0"},
	}

	var last models.CastVoteResponse
	for _, v := range votes {
		w := castVote(h, map[string]string{
			"apiKey":   testutil.TestAPIKey,
			"postId":   "5",
			"voteType": v.voteType,
		}, v.ip)
		testutil.AssertStatus(t, w, http.StatusOK)
		testutil.AssertJSON(t, w, &last)
	}

	// 1 up, 2 down, rounded independently
	if last.Text.VoteUpText != "33%" || last.Text.VoteDownText != "67%" {
		t.Errorf("Expected 33%%/67%%, got %s/%s", last.Text.VoteUpText, last.Text.VoteDownText)
	}
}

func TestCastVote_Errors(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "missing api key",
			body:           map[string]string{"postId": "1", "voteType": "1"},
			expectedStatus: http.StatusForbidden,
			expectedCode:   CodeAccessForbidden,
		},
		{
			name:           "wrong api key",
			body:           map[string]string{"apiKey": "nope", "postId": "1", "voteType": "1"},
			expectedStatus: http.StatusForbidden,
			expectedCode:   CodeAccessForbidden,
		},
		{
			name:           "wrong api key with invalid fields",
			body:           map[string]string{"apiKey": "nope", "voteType": "7"},
			expectedStatus: http.StatusForbidden,
			expectedCode:   CodeAccessForbidden,
		},
		{
			name:           "missing post id",
			body:           map[string]string{"apiKey": testutil.TestAPIKey, "voteType": "1"},
			expectedStatus: http.StatusNotFound,
			expectedCode:   CodePostIDMissing,
		},
		{
			name:           "zero post id",
			body:           map[string]string{"apiKey": testutil.TestAPIKey, "postId": "0", "voteType": "1"},
			expectedStatus: http.StatusNotFound,
			expectedCode:   CodePostIDMissing,
		},
		{
			name:           "non-numeric post id",
			body:           map[string]string{"apiKey": testutil.TestAPIKey, "postId": "abc", "voteType": "1"},
			expectedStatus: http.StatusNotFound,
			expectedCode:   CodePostIDMissing,
		},
		{
			name:           "missing vote type",
			body:           map[string]string{"apiKey": testutil.TestAPIKey, "postId": "1"},
			expectedStatus: http.StatusNotFound,
			expectedCode:   CodeVoteTypeMissing,
		},
		{
			name:           "invalid vote type",
			body:           map[string]string{"apiKey": testutil.TestAPIKey, "postId": "1", "voteType": "2"},
			expectedStatus: http.StatusNotFound,
			expectedCode:   CodeVoteTypeMissing,
		},
		{
			name:           "bool vote type with valid key",
			body:           map[string]interface{}{"apiKey": testutil.TestAPIKey, "postId": 5, "voteType": true},
			expectedStatus: http.StatusNotFound,
			expectedCode:   CodeVoteTypeMissing,
		},
		{
			name:           "array post id with valid key",
			body:           map[string]interface{}{"apiKey": testutil.TestAPIKey, "postId": []int{5}, "voteType": "1"},
			expectedStatus: http.StatusNotFound,
			expectedCode:   CodePostIDMissing,
		},
		{
			name:           "negative post id rejected by store",
			body:           map[string]string{"apiKey": testutil.TestAPIKey, "postId": "-4", "voteType": "1"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   CodeVoteFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandler(t)

			w := castVote(h, tt.body, "10.10.10.10")

			testutil.AssertStatus(t, w, tt.expectedStatus)

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Code != tt.expectedCode {
				t.Errorf("Expected code '%s', got '%s'", tt.expectedCode, resp.Code)
			}
			if resp.Status != tt.expectedStatus {
				t.Errorf("Expected status field %d, got %d", tt.expectedStatus, resp.Status)
			}
			if resp.Label == "" {
				t.Error("Expected non-empty label")
			}
		})
	}
}

func TestCastVote_InvalidJSONIsForbidden(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest("POST", "/api/v1/vote", strings.NewReader(`{"apiKey":`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.CastVote(w, req)

	testutil.AssertStatus(t, w, http.StatusForbidden)
}

func TestCastVote_InvalidJSONWithQueryParams(t *testing.T) {
	h, _ := newTestHandler(t)

	post := func(query string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/api/v1/vote?"+query, strings.NewReader(`{"apiKey":`))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = "198.51.100.9:4000"
		w := httptest.NewRecorder()
		h.CastVote(w, req)
		return w
	}

	// Later errors still report the body parse failure
	w := post("apiKey=" + testutil.TestAPIKey + "&postId=4&voteType=9")
	testutil.AssertStatus(t, w, http.StatusNotFound)

	var resp struct {
		Code  string            `json:"code"`
		Extra map[string]string `json:"extra"`
	}
	testutil.AssertJSON(t, w, &resp)
	if resp.Code != CodeVoteTypeMissing {
		t.Errorf("Expected code '%s', got '%s'", CodeVoteTypeMissing, resp.Code)
	}
	if resp.Extra["parse_error"] == "" {
		t.Errorf("Expected parse_error in extra, got %v", resp.Extra)
	}

	// Query params alone are enough to vote
	w = post("apiKey=" + testutil.TestAPIKey + "&postId=4&voteType=1")
	testutil.AssertStatus(t, w, http.StatusOK)
}

func TestCastVote_Duplicate(t *testing.T) {
	h, s := newTestHandler(t)

	body := map[string]string{"apiKey": testutil.TestAPIKey, "postId": "3", "voteType": "1"}
	testutil.AssertStatus(t, castVote(h, body, "192.0.2.8"), http.StatusOK)

	// Opposite vote from the same IP is rejected too
	body["voteType"] = "0"
	w := castVote(h, body, "192.0.2.8")
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Code != CodeVoteFailed {
		t.Errorf("Expected code '%s', got '%s'", CodeVoteFailed, resp.Code)
	}

	tally, err := s.GetTally(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetTally: %v", err)
	}
	if tally.Total != 1 || tally.PositivePercent != 100 {
		t.Errorf("Expected the first vote only, got %+v", tally)
	}
}

func TestCastVote_ConcurrentSameVoter(t *testing.T) {
	h, s := newTestHandler(t)

	const attempts = 10
	var okCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := castVote(h, map[string]string{
				"apiKey":   testutil.TestAPIKey,
				"postId":   "77",
				"voteType": "1",
			}, "192.0.2.77")
			if w.Code == http.StatusOK {
				okCount.Add(1)
			}
		}()
	}
	wg.Wait()

	if okCount.Load() != 1 {
		t.Errorf("Expected exactly 1 successful vote, got %d", okCount.Load())
	}

	tally, err := s.GetTally(context.Background(), 77)
	if err != nil {
		t.Fatalf("GetTally: %v", err)
	}
	if tally.Total != 1 {
		t.Errorf("Expected 1 stored vote, got %d", tally.Total)
	}
}

// stubStore lets tests force failures the real store cannot produce on demand
type stubStore struct {
	recordErr error
	tallyErr  error
}

func (s *stubStore) HasVoted(ctx context.Context, voterIP string, postID int64) (models.VoteType, bool, error) {
	return "", false, nil
}

func (s *stubStore) RecordVote(ctx context.Context, voterIP string, postID int64, voteType models.VoteType) error {
	return s.recordErr
}

func (s *stubStore) GetTally(ctx context.Context, postID int64) (models.Tally, error) {
	return models.Tally{}, s.tallyErr
}

func TestCastVote_StoreFailures(t *testing.T) {
	tests := []struct {
		name           string
		store          *stubStore
		expectedStatus int
		expectedCode   string
	}{
		{"storage error", &stubStore{recordErr: store.ErrStorage}, http.StatusBadRequest, CodeVoteFailed},
		{"unclassified error", &stubStore{recordErr: errors.New("boom")}, http.StatusInternalServerError, CodeDefault},
		{"tally error", &stubStore{tallyErr: errors.New("boom")}, http.StatusInternalServerError, CodeDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewVoteHandler(tt.store, testutil.GetTestConfig(t))

			w := castVote(h, map[string]string{
				"apiKey":   testutil.TestAPIKey,
				"postId":   "1",
				"voteType": "1",
			}, "10.0.0.1")

			testutil.AssertStatus(t, w, tt.expectedStatus)

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Code != tt.expectedCode {
				t.Errorf("Expected code '%s', got '%s'", tt.expectedCode, resp.Code)
			}
		})
	}
}

func TestGetVoteBox(t *testing.T) {
	h, _ := newTestHandler(t)

	getBox := func(postID, ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", "/api/v1/posts/"+postID+"/vote-box", nil)
		req.SetPathValue("postId", postID)
		req.Header.Set("X-Forwarded-For", ip)
		w := httptest.NewRecorder()
		h.GetVoteBox(w, req)
		return w
	}

	// Before voting: question, no tally
	w := getBox("12", "203.0.113.1")
	testutil.AssertStatus(t, w, http.StatusOK)
	var box models.VoteBox
	testutil.AssertJSON(t, w, &box)
	if box.Voted || box.Text.VoteUpText != "Yes" || box.Text.VoteDownText != "No" {
		t.Errorf("Unexpected box before voting: %+v", box)
	}

	castVote(h, map[string]string{"apiKey": testutil.TestAPIKey, "postId": "12", "voteType": "0"}, "203.0.113.1")

	// After voting: thanks, percentages, selection
	w = getBox("12", "203.0.113.1")
	testutil.AssertStatus(t, w, http.StatusOK)
	box = models.VoteBox{}
	testutil.AssertJSON(t, w, &box)
	if !box.Voted || box.VoteType != models.VoteNegative {
		t.Errorf("Expected negative vote, got %+v", box)
	}
	if box.Text.VoteDownText != "100%" || box.VoteDownState != models.ButtonSelected || box.VoteUpState != models.ButtonDisabled {
		t.Errorf("Unexpected box after voting: %+v", box)
	}

	// Another voter still sees the question
	w = getBox("12", "203.0.113.2")
	box = models.VoteBox{}
	testutil.AssertJSON(t, w, &box)
	if box.Voted {
		t.Error("Other voter should not see a recorded vote")
	}

	// Invalid post id
	w = getBox("abc", "203.0.113.1")
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestNewErrorResponse_UnknownCode(t *testing.T) {
	resp := NewErrorResponse("somethingElse", nil)

	if resp.Status != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", resp.Status)
	}
	if resp.Label != "Unknown Error" {
		t.Errorf("Expected default label, got '%s'", resp.Label)
	}
	if resp.Code != "somethingElse" {
		t.Errorf("Expected code to be kept, got '%s'", resp.Code)
	}
}
