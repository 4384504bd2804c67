package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	profiledomain "github.com/coder0404/leetcode-Tracker/internal/domain/profile"
	"github.com/gin-gonic/gin"
)

type profileServiceMock struct {
	profile *profiledomain.Profile
	err     error
	entries []profiledomain.LeaderboardEntry

	gotUsername string
	gotRefresh  bool
}

func (m *profileServiceMock) GetProfile(_ context.Context, username string, refresh bool) (*profiledomain.Profile, error) {
	m.gotUsername = username
	m.gotRefresh = refresh
	if m.err != nil {
		return nil, m.err
	}
	return m.profile, nil
}

func (m *profileServiceMock) Leaderboard(_ context.Context, _ []string, refresh bool) []profiledomain.LeaderboardEntry {
	m.gotRefresh = refresh
	return m.entries
}

func newProfileRouter(svc ProfileService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewProfileHandler(svc, []string{"alice", "bob"})
	r := gin.New()
	r.POST("/leetcode", h.PostProfile)
	r.GET("/leetcode/all", h.Leaderboard)
	r.GET("/leetcode/:username", h.GetProfile)
	return r
}

func TestGetProfileOK(t *testing.T) {
	svc := &profileServiceMock{profile: &profiledomain.Profile{Username: "alice", WeeklySolves: 4}}
	r := newProfileRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/leetcode/alice?refresh=true", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if svc.gotUsername != "alice" || !svc.gotRefresh {
		t.Fatalf("service called with %q refresh=%v", svc.gotUsername, svc.gotRefresh)
	}
	var body profiledomain.Profile
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body.WeeklySolves != 4 {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestPostProfileOK(t *testing.T) {
	svc := &profileServiceMock{profile: &profiledomain.Profile{Username: "alice"}}
	r := newProfileRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/leetcode", strings.NewReader(`{"username":"alice"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if svc.gotUsername != "alice" || svc.gotRefresh {
		t.Fatalf("service called with %q refresh=%v", svc.gotUsername, svc.gotRefresh)
	}
}

func TestPostProfileMalformedBody(t *testing.T) {
	svc := &profileServiceMock{}
	r := newProfileRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/leetcode", strings.NewReader(`{"username":`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestProfileErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		kind   string
	}{
		{profiledomain.ErrMissingUsername, http.StatusBadRequest, "missing_username"},
		{profiledomain.ErrInvalidUsername, http.StatusBadRequest, "invalid_username"},
		{profiledomain.ErrUserNotFound, http.StatusNotFound, "user_not_found"},
		{profiledomain.ErrUpstreamUnavailable, http.StatusInternalServerError, "upstream_unavailable"},
		{profiledomain.ErrStoreUnavailable, http.StatusInternalServerError, "store_unavailable"},
	}
	for _, tc := range cases {
		svc := &profileServiceMock{err: tc.err}
		r := newProfileRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/leetcode/someone", nil)
		r.ServeHTTP(w, req)

		if w.Code != tc.status {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.status, w.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body["error"] != tc.kind {
			t.Fatalf("%v: unexpected error body %s", tc.err, w.Body.String())
		}
	}
}

func TestLeaderboardOK(t *testing.T) {
	svc := &profileServiceMock{entries: []profiledomain.LeaderboardEntry{
		{Profile: profiledomain.Profile{Username: "bob"}, CalendarWeeklySolves: 9},
		{Profile: profiledomain.Profile{Username: "alice"}, CalendarWeeklySolves: 4},
	}}
	r := newProfileRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/leetcode/all", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Items []profiledomain.LeaderboardEntry `json:"items"`
		Count int                              `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Count != 2 || len(body.Items) != 2 || body.Items[0].Username != "bob" {
		t.Fatalf("unexpected leaderboard body: %s", w.Body.String())
	}
}
