package service_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/esports-health-service/internal/model"
	"github.com/maxviazov/esports-health-service/internal/repository"
	"github.com/maxviazov/esports-health-service/internal/repository/memory"
)

var (
	discard = zerolog.New(io.Discard)
	// now is the fixed reference instant every test computes windows against.
	now = time.Date(2026, time.March, 14, 20, 0, 0, 0, time.UTC)

	errStoreDown = errors.New("store down")
)

func fakeClock() *clockwork.FakeClock { return clockwork.NewFakeClockAt(now) }

type fixture struct {
	store *memory.Store
	clock *clockwork.FakeClock
}

func newFixture() *fixture {
	return &fixture{store: memory.NewStore(), clock: fakeClock()}
}

func (f *fixture) player(t *testing.T, name, team string) model.Player {
	t.Helper()
	p, err := f.store.Players().Create(context.Background(), model.Player{Name: name, Age: 22, Team: team, Country: "Brazil", Role: "Jungle"})
	require.NoError(t, err)
	return p
}

// reading stores a sample taken ago before the fixture clock's current time.
func (f *fixture) reading(t *testing.T, playerID int64, ago time.Duration, hr, o2 int) {
	t.Helper()
	_, err := f.store.Readings().Create(context.Background(), model.Reading{
		PlayerID:         playerID,
		HeartRate:        hr,
		OxygenSaturation: o2,
		Timestamp:        f.clock.Now().Add(-ago),
	})
	require.NoError(t, err)
}

// failingReadings fails every query, for checking store errors propagate.
type failingReadings struct{}

func (failingReadings) Create(context.Context, model.Reading) (model.Reading, error) {
	return model.Reading{}, errStoreDown
}
func (failingReadings) ListByPlayerSince(context.Context, int64, time.Time) ([]model.Reading, error) {
	return nil, errStoreDown
}
func (failingReadings) Latest(context.Context, int64) (model.Reading, error) {
	return model.Reading{}, errStoreDown
}

var _ repository.ReadingRepository = failingReadings{}

// unorderedReadings returns the window reversed and unfiltered by the upper
// bound, to check the extractor does not trust store ordering.
type unorderedReadings struct{ rs []model.Reading }

func (u unorderedReadings) Create(_ context.Context, r model.Reading) (model.Reading, error) {
	return r, nil
}
func (u unorderedReadings) ListByPlayerSince(_ context.Context, _ int64, since time.Time) ([]model.Reading, error) {
	var out []model.Reading
	for i := len(u.rs) - 1; i >= 0; i-- {
		if !u.rs[i].Timestamp.Before(since) {
			out = append(out, u.rs[i])
		}
	}
	return out, nil
}
func (u unorderedReadings) Latest(context.Context, int64) (model.Reading, error) {
	return model.Reading{}, repository.ErrNotFound
}

var _ repository.ReadingRepository = unorderedReadings{}
