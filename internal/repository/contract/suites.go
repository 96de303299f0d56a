// Package contract holds behavioral suites every store implementation must pass.
// Each implementation wires its own factories and runs the suites from a _test.go file.
package contract

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/maxviazov/esports-health-service/internal/model"
	"github.com/maxviazov/esports-health-service/internal/repository"
)

type PlayerFactory func(t *testing.T) (repository.PlayerRepository, func())

type ReadingFactory func(t *testing.T) (readings repository.ReadingRepository, players repository.PlayerRepository, cleanup func())

type TxFactory func(t *testing.T) (tx repository.TxManager, players repository.PlayerRepository, cleanup func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

// base is microsecond-aligned so timestamps survive a round trip through timestamptz.
var base = time.Date(2026, time.March, 14, 18, 0, 0, 0, time.UTC)

func samplePlayer(name, team string) model.Player {
	return model.Player{Name: name, Age: 21, Team: team, Country: "Spain", Role: "ADC"}
}

func RunPlayerRepositoryContract(t *testing.T, makeRepo PlayerFactory) {
	t.Helper()

	t.Run("create_and_get", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := repo.Create(ctx, samplePlayer("Maria 'Viper' Rodriguez", "Eclipse Squad"))
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if created.ID == 0 {
			t.Fatalf("expected generated id, got %+v", created)
		}
		got, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got != created {
			t.Fatalf("mismatch: got %+v want %+v", got, created)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.GetByID(context.Background(), 424242)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list_pagination_total", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		for i := 0; i < 7; i++ {
			if _, err := repo.Create(ctx, samplePlayer("P-"+string(rune('A'+i)), "Team")); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
		res, err := repo.List(ctx, repository.Page{Limit: 3, Offset: 0})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 3 || res.Total != 7 {
			t.Fatalf("unexpected page: len=%d total=%d", len(res.Items), res.Total)
		}
		res2, err := repo.List(ctx, repository.Page{Limit: 3, Offset: 6})
		if err != nil {
			t.Fatalf("list2: %v", err)
		}
		if len(res2.Items) != 1 || res2.Total != 7 {
			t.Fatalf("unexpected page2: len=%d total=%d", len(res2.Items), res2.Total)
		}
		res3, err := repo.List(ctx, repository.Page{Limit: 3, Offset: 30})
		if err != nil {
			t.Fatalf("list3: %v", err)
		}
		if len(res3.Items) != 0 || res3.Total != 7 {
			t.Fatalf("unexpected page3: len=%d total=%d", len(res3.Items), res3.Total)
		}
	})

	t.Run("list_by_team_exact_match_ordered", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		a, _ := repo.Create(ctx, samplePlayer("Phantom", "Thunder Gaming"))
		_, _ = repo.Create(ctx, samplePlayer("Viper", "Eclipse Squad"))
		c, _ := repo.Create(ctx, samplePlayer("Storm", "Thunder Gaming"))
		_, _ = repo.Create(ctx, samplePlayer("Echo", "thunder gaming"))

		got, err := repo.ListByTeam(ctx, "Thunder Gaming")
		if err != nil {
			t.Fatalf("list by team: %v", err)
		}
		if len(got) != 2 || got[0].ID != a.ID || got[1].ID != c.ID {
			t.Fatalf("unexpected team members: %+v", got)
		}

		none, err := repo.ListByTeam(ctx, "Nobody")
		if err != nil {
			t.Fatalf("unknown team must not fail: %v", err)
		}
		if len(none) != 0 {
			t.Fatalf("expected empty, got %+v", none)
		}
	})

	t.Run("list_all", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		empty, err := repo.ListAll(ctx)
		if err != nil || len(empty) != 0 {
			t.Fatalf("expected empty roster, got %v %v", empty, err)
		}
		for _, n := range []string{"A", "B", "C"} {
			if _, err := repo.Create(ctx, samplePlayer(n, "T")); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
		all, err := repo.ListAll(ctx)
		if err != nil {
			t.Fatalf("list all: %v", err)
		}
		if len(all) != 3 || all[0].ID >= all[1].ID || all[1].ID >= all[2].ID {
			t.Fatalf("expected 3 players ordered by id, got %+v", all)
		}
	})

	t.Run("delete", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		p, err := repo.Create(ctx, samplePlayer("Blade", "Eclipse Squad"))
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		if err := repo.Delete(ctx, p.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := repo.GetByID(ctx, p.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after delete, got %v", err)
		}
		if err := repo.Delete(ctx, p.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func RunReadingRepositoryContract(t *testing.T, makeRepo ReadingFactory) {
	t.Helper()

	seedPlayer := func(t *testing.T, players repository.PlayerRepository) int64 {
		t.Helper()
		p, err := players.Create(context.Background(), samplePlayer("Shadow", "Phoenix Rising"))
		if err != nil {
			t.Fatalf("seed player: %v", err)
		}
		return p.ID
	}

	t.Run("list_since_ascending_out_of_order_insert", func(t *testing.T) {
		readings, players, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		pid := seedPlayer(t, players)

		offsets := []time.Duration{30 * time.Minute, -2 * time.Hour, 0, 15 * time.Minute, -10 * time.Hour}
		for i, off := range offsets {
			r := model.Reading{PlayerID: pid, HeartRate: 70 + i, OxygenSaturation: 98, Timestamp: base.Add(off)}
			if _, err := readings.Create(ctx, r); err != nil {
				t.Fatalf("create reading %d: %v", i, err)
			}
		}

		got, err := readings.ListByPlayerSince(ctx, pid, base.Add(-4*time.Hour))
		if err != nil {
			t.Fatalf("list since: %v", err)
		}
		if len(got) != 4 {
			t.Fatalf("expected 4 readings in window, got %d", len(got))
		}
		for i := 1; i < len(got); i++ {
			if got[i].Timestamp.Before(got[i-1].Timestamp) {
				t.Fatalf("not ascending at %d: %v", i, got)
			}
		}
		if !got[0].Timestamp.Equal(base.Add(-2 * time.Hour)) {
			t.Fatalf("unexpected first reading: %+v", got[0])
		}
	})

	t.Run("list_since_is_inclusive", func(t *testing.T) {
		readings, players, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		pid := seedPlayer(t, players)
		if _, err := readings.Create(ctx, model.Reading{PlayerID: pid, HeartRate: 80, OxygenSaturation: 97, Timestamp: base}); err != nil {
			t.Fatalf("create: %v", err)
		}
		got, err := readings.ListByPlayerSince(ctx, pid, base)
		if err != nil || len(got) != 1 {
			t.Fatalf("expected boundary reading included, got %v %v", got, err)
		}
	})

	t.Run("list_since_other_player_isolated", func(t *testing.T) {
		readings, players, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		a := seedPlayer(t, players)
		b := seedPlayer(t, players)
		if _, err := readings.Create(ctx, model.Reading{PlayerID: a, HeartRate: 80, OxygenSaturation: 97, Timestamp: base}); err != nil {
			t.Fatalf("create: %v", err)
		}
		got, err := readings.ListByPlayerSince(ctx, b, base.Add(-time.Hour))
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("expected no readings for other player, got %+v", got)
		}
	})

	t.Run("latest", func(t *testing.T) {
		readings, players, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		pid := seedPlayer(t, players)

		if _, err := readings.Latest(ctx, pid); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound without readings, got %v", err)
		}
		_, _ = readings.Create(ctx, model.Reading{PlayerID: pid, HeartRate: 90, OxygenSaturation: 97, Timestamp: base.Add(time.Hour)})
		_, _ = readings.Create(ctx, model.Reading{PlayerID: pid, HeartRate: 70, OxygenSaturation: 99, Timestamp: base})
		got, err := readings.Latest(ctx, pid)
		if err != nil {
			t.Fatalf("latest: %v", err)
		}
		if got.HeartRate != 90 || !got.Timestamp.Equal(base.Add(time.Hour)) {
			t.Fatalf("unexpected latest: %+v", got)
		}
	})

	t.Run("create_unknown_player_conflict", func(t *testing.T) {
		readings, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := readings.Create(context.Background(), model.Reading{PlayerID: 9999999, HeartRate: 80, OxygenSaturation: 97, Timestamp: base})
		if !errors.Is(err, repository.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("create_out_of_range", func(t *testing.T) {
		readings, players, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		pid := seedPlayer(t, players)
		bad := []model.Reading{
			{PlayerID: pid, HeartRate: 39, OxygenSaturation: 97, Timestamp: base},
			{PlayerID: pid, HeartRate: 201, OxygenSaturation: 97, Timestamp: base},
			{PlayerID: pid, HeartRate: 80, OxygenSaturation: 79, Timestamp: base},
			{PlayerID: pid, HeartRate: 80, OxygenSaturation: 101, Timestamp: base},
		}
		for _, r := range bad {
			if _, err := readings.Create(context.Background(), r); !errors.Is(err, repository.ErrOutOfRange) {
				t.Fatalf("expected ErrOutOfRange for %+v, got %v", r, err)
			}
		}
	})

	t.Run("delete_player_cascades", func(t *testing.T) {
		readings, players, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		pid := seedPlayer(t, players)
		_, _ = readings.Create(ctx, model.Reading{PlayerID: pid, HeartRate: 80, OxygenSaturation: 97, Timestamp: base})
		if err := players.Delete(ctx, pid); err != nil {
			t.Fatalf("delete: %v", err)
		}
		got, err := readings.ListByPlayerSince(ctx, pid, base.Add(-time.Hour))
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("expected readings removed with player, got %+v", got)
		}
	})
}

func RunTxManagerContract(t *testing.T, makeTx TxFactory) {
	t.Helper()

	t.Run("commit_on_nil_error", func(t *testing.T) {
		tx, players, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var createdID int64
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			out, err := players.Create(ctx, samplePlayer("TxCommit", "T"))
			if err != nil {
				return err
			}
			createdID = out.ID
			return nil
		})
		if err != nil {
			t.Fatalf("WithinTx: %v", err)
		}
		if _, err := players.GetByID(ctx, createdID); err != nil {
			t.Fatalf("expected committed row visible, got err=%v", err)
		}
	})

	t.Run("rollback_on_error", func(t *testing.T) {
		tx, players, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var createdID int64
		errMarker := errors.New("boom")
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			out, err := players.Create(ctx, samplePlayer("TxRollback", "T"))
			if err != nil {
				return err
			}
			createdID = out.ID
			return errMarker
		})
		if !errors.Is(err, errMarker) {
			t.Fatalf("expected marker error, got %v", err)
		}
		if _, err := players.GetByID(ctx, createdID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after rollback, got %v", err)
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	t.Run("ping_ok", func(t *testing.T) {
		p, cleanup := makePinger(t)
		t.Cleanup(cleanup)
		if err := p.Ping(context.Background()); err != nil {
			t.Fatalf("expected ping ok, got %v", err)
		}
	})
}
