package profile

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"
)

const defaultCacheTTL = time.Hour

// Service orchestrates a profile request: cache check, upstream fetch,
// weekly enrichment, cache write-back. Cache reads fail open (treated as
// a miss) and cache writes are best-effort; only the baseline store path
// fails the request.
type Service struct {
	store    Store
	fetcher  Fetcher
	baseline *BaselineTracker
	cacheTTL time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(store Store, fetcher Fetcher, baseline *BaselineTracker, cacheTTL time.Duration, logger *slog.Logger) *Service {
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:    store,
		fetcher:  fetcher,
		baseline: baseline,
		cacheTTL: cacheTTL,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) GetProfile(ctx context.Context, username string, refresh bool) (*Profile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrMissingUsername
	}

	key := cacheKey(username)
	if !refresh {
		cached, found, err := s.store.Get(ctx, key)
		if err != nil {
			s.logger.Warn("cache read failed, treating as miss", "username", username, "err", err)
		} else if found {
			var p Profile
			if err := json.Unmarshal([]byte(cached), &p); err == nil {
				// WeeklySolves here is the value frozen at cache-write
				// time; it can lag a fresh computation by up to the TTL.
				return &p, nil
			}
			s.logger.Warn("corrupt cache entry, refetching", "username", username)
		}
	}

	fetched, err := s.fetcher.FetchProfile(ctx, username)
	if err != nil {
		return nil, err
	}

	total := totalSolved(fetched.SubmitStats)
	baseline, err := s.baseline.GetOrCreate(ctx, username, total)
	if err != nil {
		return nil, err
	}
	fetched.WeeklySolves = total - baseline
	if fetched.WeeklySolves < 0 {
		fetched.WeeklySolves = 0
	}

	if encoded, err := json.Marshal(fetched); err == nil {
		if err := s.store.Set(ctx, key, string(encoded), s.cacheTTL); err != nil {
			s.logger.Warn("cache write failed", "username", username, "err", err)
		}
	}

	return fetched, nil
}

// totalSolved extracts the All-difficulty accepted count, 0 if absent.
func totalSolved(stats []SubmitStat) int {
	for _, st := range stats {
		if st.Difficulty == "All" {
			return st.Count
		}
	}
	return 0
}
