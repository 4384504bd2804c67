package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	profiledomain "github.com/coder0404/leetcode-Tracker/internal/domain/profile"
)

const recentSubmissionLimit = 10

const profileQuery = `query userProfile($username: String!, $limit: Int!) {
  matchedUser(username: $username) {
    username
    profile {
      realName
      ranking
      userAvatar
    }
    submitStats: submitStatsGlobal {
      acSubmissionNum {
        difficulty
        count
        submissions
      }
    }
    submissionCalendar
  }
  recentSubmissions: recentAcSubmissionList(username: $username, limit: $limit) {
    title
    titleSlug
    timestamp
  }
}`

// Client issues the profile query against the LeetCode GraphQL endpoint.
// One attempt per call; transient failures are reported, never retried.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, fmt.Errorf("missing LEETCODE_GRAPHQL_URL")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint:   strings.TrimSpace(endpoint),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type profileResponse struct {
	Data struct {
		MatchedUser *struct {
			Username string `json:"username"`
			Profile  struct {
				RealName   string `json:"realName"`
				Ranking    int    `json:"ranking"`
				UserAvatar string `json:"userAvatar"`
			} `json:"profile"`
			SubmitStats struct {
				ACSubmissionNum []struct {
					Difficulty  string `json:"difficulty"`
					Count       int    `json:"count"`
					Submissions int    `json:"submissions"`
				} `json:"acSubmissionNum"`
			} `json:"submitStats"`
			SubmissionCalendar string `json:"submissionCalendar"`
		} `json:"matchedUser"`
		RecentSubmissions []struct {
			Title     string `json:"title"`
			TitleSlug string `json:"titleSlug"`
			Timestamp string `json:"timestamp"`
		} `json:"recentSubmissions"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (c *Client) FetchProfile(ctx context.Context, username string) (*profiledomain.Profile, error) {
	reqBody, _ := json.Marshal(graphQLRequest{
		Query: profileQuery,
		Variables: map[string]any{
			"username": username,
			"limit":    recentSubmissionLimit,
		},
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", profiledomain.ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Referer", "https://leetcode.com")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", profiledomain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: upstream status %d", profiledomain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var payload profileResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", profiledomain.ErrUpstreamUnavailable, err)
	}
	if len(payload.Errors) > 0 {
		return nil, fmt.Errorf("%w: %s", profiledomain.ErrInvalidUsername, payload.Errors[0].Message)
	}
	matched := payload.Data.MatchedUser
	if matched == nil {
		return nil, profiledomain.ErrUserNotFound
	}

	out := &profiledomain.Profile{
		Username:           matched.Username,
		RealName:           matched.Profile.RealName,
		Ranking:            matched.Profile.Ranking,
		AvatarURL:          matched.Profile.UserAvatar,
		SubmitStats:        make([]profiledomain.SubmitStat, 0, len(matched.SubmitStats.ACSubmissionNum)),
		SubmissionCalendar: map[string]int{},
	}
	if out.Username == "" {
		out.Username = username
	}
	for _, st := range matched.SubmitStats.ACSubmissionNum {
		out.SubmitStats = append(out.SubmitStats, profiledomain.SubmitStat{
			Difficulty:  st.Difficulty,
			Count:       st.Count,
			Submissions: st.Submissions,
		})
	}
	// The calendar arrives as a JSON string keyed by unix day timestamps.
	if cal := strings.TrimSpace(matched.SubmissionCalendar); cal != "" {
		if err := json.Unmarshal([]byte(cal), &out.SubmissionCalendar); err != nil {
			out.SubmissionCalendar = map[string]int{}
		}
	}
	for _, sub := range payload.Data.RecentSubmissions {
		out.RecentSubmissions = append(out.RecentSubmissions, profiledomain.RecentSubmission{
			Title:     sub.Title,
			TitleSlug: sub.TitleSlug,
			Timestamp: sub.Timestamp,
		})
	}
	return out, nil
}
