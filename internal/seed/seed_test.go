package seed

import (
	"context"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/esports-health-service/internal/repository/memory"
)

var now = time.Date(2026, time.March, 14, 20, 0, 0, 0, time.UTC)

func TestBaselineFor(t *testing.T) {
	tests := []struct {
		role string
		want Baseline
	}{
		{"Mid Laner", Baseline{70, 98}},
		{"ADC", Baseline{65, 99}},
		{"Jungle", Baseline{72, 97}},
		{"Support", Baseline{68, 98}},
		{"Top Laner", Baseline{75, 96}},
		{"", Baseline{75, 96}},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, BaselineFor(tc.role), tc.role)
	}
}

func TestGenerateReadings_ShapeAndBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	rs := GenerateReadings(7, "ADC", now, rng)

	require.Len(t, rs, 32)
	assert.True(t, rs[0].Timestamp.Equal(now.Add(-8*time.Hour)))
	for i, r := range rs {
		assert.Equal(t, int64(7), r.PlayerID)
		assert.GreaterOrEqual(t, r.HeartRate, 50)
		assert.LessOrEqual(t, r.HeartRate, 140)
		assert.GreaterOrEqual(t, r.OxygenSaturation, 90)
		assert.LessOrEqual(t, r.OxygenSaturation, 100)
		if i > 0 {
			assert.Equal(t, 15*time.Minute, r.Timestamp.Sub(rs[i-1].Timestamp))
		}
	}
	assert.True(t, rs[31].Timestamp.Before(now))
}

func TestGenerateReadings_Deterministic(t *testing.T) {
	a := GenerateReadings(1, "Mid", now, rand.New(rand.NewPCG(42, 42)))
	b := GenerateReadings(1, "Mid", now, rand.New(rand.NewPCG(42, 42)))
	assert.Equal(t, a, b)
}

func TestLoadRoster(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
players:
  - name: Test One
    age: 19
    team: Alpha
    country: Chile
    role: Support
`), 0o600))

	r, err := LoadRoster(path)
	require.NoError(t, err)
	require.Len(t, r.Players, 1)
	assert.Equal(t, RosterPlayer{Name: "Test One", Age: 19, Team: "Alpha", Country: "Chile", Role: "Support"}, r.Players[0])

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("players: []\n"), 0o600))
	_, err = LoadRoster(empty)
	assert.Error(t, err)
}

func TestSeeder_SeedsOnceUnlessForced(t *testing.T) {
	store := memory.NewStore()
	s := NewSeeder(store, store.Players(), store.Readings(), zerolog.New(io.Discard))
	ctx := context.Background()

	res, err := s.Seed(ctx, DefaultRoster(), now, rand.New(rand.NewPCG(1, 1)), false)
	require.NoError(t, err)
	assert.Equal(t, Result{Players: 5, Readings: 160}, res)

	again, err := s.Seed(ctx, DefaultRoster(), now, rand.New(rand.NewPCG(1, 1)), false)
	require.NoError(t, err)
	assert.True(t, again.Skipped)

	all, err := store.Players().ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	team, err := store.Players().ListByTeam(ctx, "Thunder Gaming")
	require.NoError(t, err)
	assert.Len(t, team, 2)
}

func TestSeeder_RollsBackOnFailure(t *testing.T) {
	store := memory.NewStore()
	s := NewSeeder(store, store.Players(), store.Readings(), zerolog.New(io.Discard))
	roster := Roster{Players: []RosterPlayer{
		{Name: "Ok", Age: 20, Team: "A", Role: "ADC"},
		{Name: "Bad", Age: 0, Team: "A", Role: "ADC"},
	}}

	_, err := s.Seed(context.Background(), roster, now, rand.New(rand.NewPCG(1, 1)), false)
	require.Error(t, err)

	all, err := store.Players().ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}
