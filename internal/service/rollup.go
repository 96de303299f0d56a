package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/maxviazov/esports-health-service/internal/analytics"
	"github.com/maxviazov/esports-health-service/internal/model"
	"github.com/maxviazov/esports-health-service/internal/repository"
	"github.com/maxviazov/esports-health-service/internal/telemetry"
)

// playerWindow is one player's reduced window; hasData is false when the window was empty.
type playerWindow struct {
	player  model.Player
	snap    analytics.Snapshot
	hasData bool
}

// snapshots reads every player's window concurrently, bounded by MaxConcurrency,
// and returns the results in roster order. The first store error cancels the rest.
func (s *analyticsService) snapshots(ctx context.Context, players []model.Player, now time.Time) ([]playerWindow, error) {
	if len(players) == 0 {
		return nil, nil
	}

	type indexed struct {
		i int
		w playerWindow
	}
	p := pool.NewWithResults[indexed]().
		WithContext(ctx).
		WithMaxGoroutines(s.opts.MaxConcurrency).
		WithFirstError().
		WithCancelOnError()

	for i, pl := range players {
		p.Go(func(ctx context.Context) (indexed, error) {
			rs, err := s.window.Extract(ctx, pl.ID, s.opts.TeamWindow, now)
			if err != nil {
				return indexed{}, err
			}
			snap, ok := analytics.Snap(rs)
			return indexed{i: i, w: playerWindow{player: pl, snap: snap, hasData: ok}}, nil
		})
	}

	res, err := p.Wait()
	if err != nil {
		return nil, err
	}
	// Completion order is arbitrary; restore roster order.
	sort.Slice(res, func(a, b int) bool { return res[a].i < res[b].i })
	out := make([]playerWindow, len(res))
	for k, r := range res {
		out[k] = r.w
	}
	return out, nil
}

// TeamStats averages per-player means, so every player with data weighs the
// same regardless of how many readings it reported.
func (s *analyticsService) TeamStats(ctx context.Context, team string, now time.Time) (rep model.TeamStatsReport, err error) {
	start := time.Now()
	defer func() { telemetry.ObserveAnalytics("team", outcomeOf(err), time.Since(start)) }()

	// Names match exactly; only an all-blank name is rejected up front.
	if strings.TrimSpace(team) == "" {
		return model.TeamStatsReport{}, NewInvalidInputError([]FieldError{{Field: "team", Message: "must not be empty"}})
	}

	players, err := s.players.ListByTeam(ctx, team)
	if err != nil {
		return model.TeamStatsReport{}, fmt.Errorf("list team %q: %w", team, err)
	}
	if len(players) == 0 {
		return model.TeamStatsReport{}, fmt.Errorf("team %q: %w", team, repository.ErrNotFound)
	}

	windows, err := s.snapshots(ctx, players, now)
	if err != nil {
		s.log.Error().Err(err).Str("team", team).Msg("team rollup failed")
		return model.TeamStatsReport{}, err
	}

	rep = model.TeamStatsReport{
		Team:          team,
		TotalPlayers:  len(players),
		PlayersStatus: make(map[string]string, len(windows)),
	}
	var sumHR, sumO2 float64
	withData := 0
	for _, w := range windows {
		if !w.hasData {
			continue
		}
		withData++
		sumHR += w.snap.AvgHeartRate
		sumO2 += w.snap.AvgOxygen
		rep.PlayersStatus[w.player.Name] = w.snap.Status.String()
	}
	if withData > 0 {
		rep.AvgTeamHeartRate = analytics.Round1(sumHR / float64(withData))
		rep.AvgTeamOxygen = analytics.Round1(sumO2 / float64(withData))
	}

	s.log.Debug().Str("team", team).Int("players", len(players)).Int("with_data", withData).Dur("took", time.Since(start)).Msg("team stats computed")
	return rep, nil
}

// DashboardOverview pools every reading of every player in the window for the
// global averages. It never fails on an empty roster.
func (s *analyticsService) DashboardOverview(ctx context.Context, now time.Time) (ov model.DashboardOverview, err error) {
	start := time.Now()
	defer func() { telemetry.ObserveAnalytics("dashboard", outcomeOf(err), time.Since(start)) }()

	players, err := s.players.ListAll(ctx)
	if err != nil {
		return model.DashboardOverview{}, fmt.Errorf("list roster: %w", err)
	}

	windows, err := s.snapshots(ctx, players, now)
	if err != nil {
		s.log.Error().Err(err).Msg("dashboard rollup failed")
		return model.DashboardOverview{}, err
	}

	teams := make(map[string]struct{})
	for _, p := range players {
		teams[p.Team] = struct{}{}
	}

	ov = model.DashboardOverview{
		TotalPlayers: len(players),
		TotalTeams:   len(teams),
		GeneratedAt:  now,
	}
	var sumHR, sumO2, samples int
	for _, w := range windows {
		if !w.hasData {
			continue
		}
		samples += w.snap.Samples
		sumHR += w.snap.SumHeartRate
		sumO2 += w.snap.SumOxygen
		if analytics.IsRisk(w.snap.MaxHeartRate, w.snap.MinOxygen) {
			ov.PlayersAtRisk++
		}
	}
	if samples > 0 {
		ov.GlobalAvgHeartRate = analytics.Round1(float64(sumHR) / float64(samples))
		ov.GlobalAvgOxygen = analytics.Round1(float64(sumO2) / float64(samples))
	}
	telemetry.PlayersAtRisk.Set(float64(ov.PlayersAtRisk))
	return ov, nil
}
