package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/esports-health-service/internal/repository"
	"github.com/maxviazov/esports-health-service/internal/service"
)

func TestReadingService_RecordReading_DomainValidation(t *testing.T) {
	f := newFixture()
	p := f.player(t, "Viper", "Eclipse Squad")
	svc := service.NewReadingService(f.store.Players(), f.store.Readings(), discard)

	cases := []struct {
		name      string
		hr, o2    int
		wantField string
	}{
		{"lower bounds ok", 40, 80, ""},
		{"upper bounds ok", 200, 100, ""},
		{"hr too low", 39, 98, "heart_rate"},
		{"hr too high", 201, 98, "heart_rate"},
		{"o2 too low", 90, 79, "oxygen_saturation"},
		{"o2 too high", 90, 101, "oxygen_saturation"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := service.RecordReadingInput{PlayerID: p.ID, HeartRate: tc.hr, OxygenSaturation: tc.o2}
			_, err := svc.RecordReading(context.Background(), in, f.clock.Now())
			if tc.wantField == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, service.ErrInvalidInput)
			fields := service.FieldErrors(err)
			require.NotEmpty(t, fields)
			found := false
			for _, fe := range fields {
				found = found || fe.Field == tc.wantField
			}
			assert.True(t, found, "expected field %s in %+v", tc.wantField, fields)
		})
	}
}

func TestReadingService_RecordReading_DefaultsTimestampToNow(t *testing.T) {
	f := newFixture()
	p := f.player(t, "Viper", "Eclipse Squad")
	svc := service.NewReadingService(f.store.Players(), f.store.Readings(), discard)

	r, err := svc.RecordReading(context.Background(), service.RecordReadingInput{PlayerID: p.ID, HeartRate: 72, OxygenSaturation: 98}, f.clock.Now())
	require.NoError(t, err)
	assert.True(t, r.Timestamp.Equal(now))

	at := now.Add(-time.Hour)
	r, err = svc.RecordReading(context.Background(), service.RecordReadingInput{PlayerID: p.ID, HeartRate: 75, OxygenSaturation: 97, Timestamp: &at}, f.clock.Now())
	require.NoError(t, err)
	assert.True(t, r.Timestamp.Equal(at))
}

func TestReadingService_RecordReading_UnknownPlayer(t *testing.T) {
	f := newFixture()
	svc := service.NewReadingService(f.store.Players(), f.store.Readings(), discard)

	_, err := svc.RecordReading(context.Background(), service.RecordReadingInput{PlayerID: 99, HeartRate: 72, OxygenSaturation: 98}, now)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestReadingService_ListReadings_NewestFirstWithinWindow(t *testing.T) {
	f := newFixture()
	p := f.player(t, "Shadow", "Phoenix Rising")
	f.reading(t, p.ID, 30*time.Hour, 70, 98) // outside 24h
	f.reading(t, p.ID, 3*time.Hour, 71, 98)
	f.reading(t, p.ID, 1*time.Hour, 72, 98)
	f.reading(t, p.ID, 2*time.Hour, 73, 98)
	svc := service.NewReadingService(f.store.Players(), f.store.Readings(), discard)

	rs, err := svc.ListReadings(context.Background(), p.ID, 24, f.clock.Now())
	require.NoError(t, err)
	require.Len(t, rs, 3)
	assert.Equal(t, []int{72, 73, 71}, []int{rs[0].HeartRate, rs[1].HeartRate, rs[2].HeartRate})

	_, err = svc.ListReadings(context.Background(), p.ID, 0, now)
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = svc.ListReadings(context.Background(), 777, 24, now)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestReadingService_LatestReading(t *testing.T) {
	f := newFixture()
	p := f.player(t, "Storm", "Thunder Gaming")
	svc := service.NewReadingService(f.store.Players(), f.store.Readings(), discard)
	ctx := context.Background()

	_, err := svc.LatestReading(ctx, p.ID)
	assert.ErrorIs(t, err, service.ErrNoData)

	f.reading(t, p.ID, 10*time.Minute, 88, 97)
	f.reading(t, p.ID, 50*time.Minute, 77, 99)
	r, err := svc.LatestReading(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 88, r.HeartRate)

	_, err = svc.LatestReading(ctx, 4242)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestReadingService_ListReadings_ReportsIDAndHoursTogether(t *testing.T) {
	f := newFixture()
	svc := service.NewReadingService(f.store.Players(), f.store.Readings(), discard)

	_, err := svc.ListReadings(context.Background(), -1, -5, now)
	require.ErrorIs(t, err, service.ErrInvalidInput)
	assert.Equal(t, []service.FieldError{
		{Field: "id", Message: "must be > 0"},
		{Field: "hours", Message: "must be > 0"},
	}, service.FieldErrors(err))
}
