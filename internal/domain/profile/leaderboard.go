package profile

import (
	"context"
	"sort"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
)

const leaderboardFetchLimit = 5

// LeaderboardEntry annotates a profile with the calendar-derived weekly
// count the dashboard sorts by. That figure is a different measure from
// the Monday-anchored WeeklySolves delta: it sums the trailing seven days
// of the submission calendar.
type LeaderboardEntry struct {
	Profile
	CalendarWeeklySolves int `json:"calendarWeeklySolves"`
}

// Leaderboard fetches every tracked username through the cache-aware
// GetProfile and returns the successful ones sorted by calendar weekly
// solves, descending. Users whose fetch fails are skipped, not fatal.
func (s *Service) Leaderboard(ctx context.Context, usernames []string, refresh bool) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, len(usernames))
	filled := make([]bool, len(usernames))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(leaderboardFetchLimit)
	for i, username := range usernames {
		i, username := i, username
		g.Go(func() error {
			p, err := s.GetProfile(gctx, username, refresh)
			if err != nil {
				s.logger.Warn("leaderboard fetch skipped", "username", username, "err", err)
				return nil
			}
			entries[i] = LeaderboardEntry{
				Profile:              *p,
				CalendarWeeklySolves: WeeklySolvesFromCalendar(p.SubmissionCalendar, s.now()),
			}
			filled[i] = true
			return nil
		})
	}
	_ = g.Wait()

	out := make([]LeaderboardEntry, 0, len(usernames))
	for i := range entries {
		if filled[i] {
			out = append(out, entries[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CalendarWeeklySolves > out[j].CalendarWeeklySolves
	})
	return out
}

// WeeklySolvesFromCalendar sums calendar buckets with a timestamp within
// the trailing seven days. Keys that do not parse as unix seconds are
// ignored.
func WeeklySolvesFromCalendar(calendar map[string]int, now time.Time) int {
	cutoff := now.UTC().Add(-7 * 24 * time.Hour).Unix()
	total := 0
	for ts, count := range calendar {
		bucket, err := strconv.ParseInt(ts, 10, 64)
		if err != nil {
			continue
		}
		if bucket >= cutoff {
			total += count
		}
	}
	return total
}
