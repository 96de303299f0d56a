package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/maxviazov/esports-health-service/internal/model"
	"github.com/maxviazov/esports-health-service/internal/repository"
)

// WindowExtractor selects a player's readings inside [now-lookback, now].
type WindowExtractor struct {
	readings repository.ReadingRepository
}

func NewWindowExtractor(readings repository.ReadingRepository) *WindowExtractor {
	return &WindowExtractor{readings: readings}
}

// Extract returns the window ascending by timestamp, equal timestamps in store
// order. Readings stamped after now are excluded. An empty window is not an error.
func (w *WindowExtractor) Extract(ctx context.Context, playerID int64, lookback time.Duration, now time.Time) ([]model.Reading, error) {
	if lookback <= 0 {
		return nil, NewInvalidInputError([]FieldError{{Field: "lookback", Message: "must be > 0"}})
	}
	since := now.Add(-lookback)

	rs, err := w.readings.ListByPlayerSince(ctx, playerID, since)
	if err != nil {
		return nil, fmt.Errorf("list readings for player %d: %w", playerID, err)
	}

	out := make([]model.Reading, 0, len(rs))
	for _, r := range rs {
		if r.Timestamp.Before(since) || r.Timestamp.After(now) {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}
