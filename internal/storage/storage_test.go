package storage

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/esports-health-service/internal/config"
	"github.com/maxviazov/esports-health-service/internal/model"
)

func TestOpen_Memory(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: DriverMemory}}
	ctx := context.Background()

	st, err := Open(ctx, cfg, zerolog.New(io.Discard))
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.Pinger.Ping(ctx))
	err = st.Tx.WithinTx(ctx, func(ctx context.Context) error {
		_, err := st.Players.Create(ctx, model.Player{Name: "Kai", Age: 19, Team: "Nova"})
		return err
	})
	require.NoError(t, err)

	all, err := st.Players.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestOpen_UnknownDriver(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: "sqlite"}}
	_, err := Open(context.Background(), cfg, zerolog.New(io.Discard))
	assert.ErrorContains(t, err, "sqlite")
}
