package profile

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// BaselineTracker persists the solved-count snapshot taken at the start of
// the current weekly window. The record expires at the next Monday 00:00
// UTC, so a fresh window begins with the first request after that.
type BaselineTracker struct {
	store Store
	now   func() time.Time
}

func NewBaselineTracker(store Store) *BaselineTracker {
	return &BaselineTracker{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// GetOrCreate returns the baseline for username, establishing it from
// currentTotal if none exists yet. An established baseline is returned
// unchanged for the rest of the week, whatever currentTotal says now.
// Store failures surface as ErrStoreUnavailable; the tracker never
// substitutes a default baseline.
func (t *BaselineTracker) GetOrCreate(ctx context.Context, username string, currentTotal int) (int, error) {
	key := baselineKey(username)

	raw, found, err := t.store.Get(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("%w: baseline read: %v", ErrStoreUnavailable, err)
	}
	if found {
		baseline, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return 0, fmt.Errorf("%w: corrupt baseline %q", ErrStoreUnavailable, raw)
		}
		return baseline, nil
	}

	ttl := untilNextMonday(t.now())
	if err := t.store.Set(ctx, key, strconv.Itoa(currentTotal), ttl); err != nil {
		return 0, fmt.Errorf("%w: baseline write: %v", ErrStoreUnavailable, err)
	}
	return currentTotal, nil
}

// untilNextMonday is the duration to the next Monday 00:00:00 UTC strictly
// in the future: exactly Monday midnight maps to a full 7 days, not 0.
func untilNextMonday(now time.Time) time.Duration {
	now = now.UTC()
	days := (int(time.Monday) - int(now.Weekday()) + 7) % 7
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
	if !next.After(now) {
		next = next.AddDate(0, 0, 7)
	}
	return next.Sub(now)
}
