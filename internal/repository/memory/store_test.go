package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/esports-health-service/internal/model"
	"github.com/maxviazov/esports-health-service/internal/repository"
)

func TestReadings_EqualTimestampsKeepInsertionOrder(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	p, err := s.Players().Create(ctx, model.Player{Name: "Storm", Age: 21, Team: "Thunder Gaming"})
	require.NoError(t, err)

	ts := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	for _, hr := range []int{70, 71, 72} {
		_, err := s.Readings().Create(ctx, model.Reading{PlayerID: p.ID, HeartRate: hr, OxygenSaturation: 98, Timestamp: ts})
		require.NoError(t, err)
	}

	got, err := s.Readings().ListByPlayerSince(ctx, p.ID, ts)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int{70, 71, 72}, []int{got[0].HeartRate, got[1].HeartRate, got[2].HeartRate})

	latest, err := s.Readings().Latest(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 72, latest.HeartRate)
}

func TestReadings_ReturnedSliceIsACopy(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	p, _ := s.Players().Create(ctx, model.Player{Name: "Blade", Age: 23, Team: "Eclipse Squad"})
	ts := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	_, _ = s.Readings().Create(ctx, model.Reading{PlayerID: p.ID, HeartRate: 80, OxygenSaturation: 97, Timestamp: ts})

	got, _ := s.Readings().ListByPlayerSince(ctx, p.ID, ts)
	got[0].HeartRate = 199

	again, _ := s.Readings().ListByPlayerSince(ctx, p.ID, ts)
	assert.Equal(t, 80, again[0].HeartRate)
}

func TestStore_ConcurrentWritersAndReaders(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	p, _ := s.Players().Create(ctx, model.Player{Name: "Phantom", Age: 22, Team: "Thunder Gaming"})
	ts := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				_, err := s.Readings().Create(ctx, model.Reading{PlayerID: p.ID, HeartRate: 60 + j, OxygenSaturation: 97, Timestamp: ts.Add(time.Duration(i*25+j) * time.Second)})
				assert.NoError(t, err)
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				_, err := s.Readings().ListByPlayerSince(ctx, p.ID, ts)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	all, err := s.Readings().ListByPlayerSince(ctx, p.ID, ts)
	require.NoError(t, err)
	assert.Len(t, all, 200)
}

func TestPlayers_RejectNonPositiveAge(t *testing.T) {
	_, err := NewStore().Players().Create(context.Background(), model.Player{Name: "x", Age: 0, Team: "T"})
	assert.True(t, errors.Is(err, repository.ErrOutOfRange))
}
