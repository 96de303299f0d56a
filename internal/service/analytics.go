package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/maxviazov/esports-health-service/internal/analytics"
	"github.com/maxviazov/esports-health-service/internal/model"
	"github.com/maxviazov/esports-health-service/internal/repository"
	"github.com/maxviazov/esports-health-service/internal/telemetry"
)

// AnalyticsOptions configures the fixed windows of rollups and summaries and
// the number of concurrent per-player reads.
type AnalyticsOptions struct {
	TeamWindow     time.Duration
	SummaryWindow  time.Duration
	MaxConcurrency int
}

func DefaultAnalyticsOptions() AnalyticsOptions {
	return AnalyticsOptions{
		TeamWindow:     4 * time.Hour,
		SummaryWindow:  8 * time.Hour,
		MaxConcurrency: 8,
	}
}

type analyticsService struct {
	players repository.PlayerRepository
	window  *WindowExtractor
	opts    AnalyticsOptions
	log     zerolog.Logger
}

func NewAnalyticsService(players repository.PlayerRepository, readings repository.ReadingRepository, opts AnalyticsOptions, logger zerolog.Logger) AnalyticsService {
	def := DefaultAnalyticsOptions()
	if opts.TeamWindow <= 0 {
		opts.TeamWindow = def.TeamWindow
	}
	if opts.SummaryWindow <= 0 {
		opts.SummaryWindow = def.SummaryWindow
	}
	if opts.MaxConcurrency <= 0 {
		opts.MaxConcurrency = def.MaxConcurrency
	}
	l := logger.With().Str("module", "service").Str("component", "analytics").Logger()
	return &analyticsService{
		players: players,
		window:  NewWindowExtractor(readings),
		opts:    opts,
		log:     l,
	}
}

func (s *analyticsService) AnalyzePlayer(ctx context.Context, playerID int64, hours int, now time.Time) (rep model.PlayerAnalyticsReport, err error) {
	start := time.Now()
	defer func() { telemetry.ObserveAnalytics("player", outcomeOf(err), time.Since(start)) }()

	if err := validateWindow(playerID, hours); err != nil {
		return model.PlayerAnalyticsReport{}, err
	}

	if _, err := s.players.GetByID(ctx, playerID); err != nil {
		return model.PlayerAnalyticsReport{}, fmt.Errorf("player %d: %w", playerID, err)
	}

	rs, err := s.window.Extract(ctx, playerID, time.Duration(hours)*time.Hour, now)
	if err != nil {
		s.log.Error().Err(err).Int64("player_id", playerID).Msg("extract window failed")
		return model.PlayerAnalyticsReport{}, err
	}

	a, ok := analytics.Assess(rs)
	if !ok {
		return model.PlayerAnalyticsReport{}, fmt.Errorf("player %d, last %dh: %w", playerID, hours, ErrNoData)
	}
	telemetry.PlayerStatusTotal.WithLabelValues(a.Status.String()).Inc()

	s.log.Debug().
		Int64("player_id", playerID).
		Int("samples", a.Samples).
		Str("status", a.Status.String()).
		Int("anomalies", len(a.Anomalies)).
		Dur("took", time.Since(start)).
		Msg("player analyzed")

	return a.Report(playerID, fmt.Sprintf("%dh", hours)), nil
}

// PlayerSummary still answers when the window is empty: zero averages and no last reading.
func (s *analyticsService) PlayerSummary(ctx context.Context, playerID int64, now time.Time) (model.PlayerSummary, error) {
	if err := validateID("id", playerID); err != nil {
		return model.PlayerSummary{}, err
	}
	p, err := s.players.GetByID(ctx, playerID)
	if err != nil {
		return model.PlayerSummary{}, fmt.Errorf("player %d: %w", playerID, err)
	}

	rs, err := s.window.Extract(ctx, playerID, s.opts.SummaryWindow, now)
	if err != nil {
		return model.PlayerSummary{}, err
	}

	out := model.PlayerSummary{Player: p, Readings: rs}
	if snap, ok := analytics.Snap(rs); ok {
		out.AvgHeartRate = analytics.Round1(snap.AvgHeartRate)
		out.AvgOxygen = analytics.Round1(snap.AvgOxygen)
		last := rs[len(rs)-1]
		out.LastReading = &last
	}
	return out, nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return telemetry.OutcomeOK
	case errors.Is(err, ErrNoData):
		return telemetry.OutcomeNoData
	case errors.Is(err, repository.ErrNotFound):
		return telemetry.OutcomeNotFound
	case errors.Is(err, ErrInvalidInput):
		return telemetry.OutcomeInvalid
	default:
		return telemetry.OutcomeError
	}
}
