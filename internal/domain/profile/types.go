package profile

import (
	"context"
	"errors"
	"time"
)

// Stable error kinds surfaced at the HTTP boundary. Wrapped errors keep
// these as their root so handlers can match with errors.Is.
var (
	ErrMissingUsername     = errors.New("missing_username")
	ErrInvalidUsername     = errors.New("invalid_username")
	ErrUserNotFound        = errors.New("user_not_found")
	ErrUpstreamUnavailable = errors.New("upstream_unavailable")
	ErrStoreUnavailable    = errors.New("store_unavailable")
)

type SubmitStat struct {
	Difficulty  string `json:"difficulty"`
	Count       int    `json:"count"`
	Submissions int    `json:"submissions"`
}

type RecentSubmission struct {
	Title     string `json:"title"`
	TitleSlug string `json:"titleSlug"`
	Timestamp string `json:"timestamp"`
}

// Profile is the enriched user statistics record served to the dashboard.
// It is rebuilt wholesale on every successful upstream fetch; WeeklySolves
// is computed here and is not part of the upstream data.
type Profile struct {
	Username           string             `json:"username"`
	RealName           string             `json:"realName,omitempty"`
	Ranking            int                `json:"ranking,omitempty"`
	AvatarURL          string             `json:"avatarUrl,omitempty"`
	SubmitStats        []SubmitStat       `json:"submitStats"`
	SubmissionCalendar map[string]int     `json:"submissionCalendar"`
	WeeklySolves       int                `json:"weeklySolves"`
	RecentSubmissions  []RecentSubmission `json:"recentSubmissions,omitempty"`
}

// Store is the durable TTL key-value contract the service depends on.
// A missing key is (value "", found false, err nil), never an error.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// Fetcher retrieves a user's statistics from the upstream API. A single
// attempt per call; retry policy belongs to the caller, and none exists.
type Fetcher interface {
	FetchProfile(ctx context.Context, username string) (*Profile, error)
}

func cacheKey(username string) string {
	return "leetcode:" + username
}

func baselineKey(username string) string {
	return "monday_baseline:" + username
}
