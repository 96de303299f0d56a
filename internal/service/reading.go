package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/maxviazov/esports-health-service/internal/model"
	"github.com/maxviazov/esports-health-service/internal/repository"
	"github.com/maxviazov/esports-health-service/internal/telemetry"
)

type readingService struct {
	players  repository.PlayerRepository
	readings repository.ReadingRepository
	window   *WindowExtractor
	log      zerolog.Logger
}

func NewReadingService(players repository.PlayerRepository, readings repository.ReadingRepository, logger zerolog.Logger) ReadingService {
	l := logger.With().Str("module", "service").Str("component", "reading").Logger()
	return &readingService{
		players:  players,
		readings: readings,
		window:   NewWindowExtractor(readings),
		log:      l,
	}
}

func (s *readingService) RecordReading(ctx context.Context, in RecordReadingInput, now time.Time) (model.Reading, error) {
	if err := validateStruct(in); err != nil {
		telemetry.ReadingsIngestedTotal.WithLabelValues(telemetry.OutcomeInvalid).Inc()
		s.log.Debug().Interface("field_errors", FieldErrors(err)).Int64("player_id", in.PlayerID).Msg("reading validation failed")
		return model.Reading{}, err
	}

	// Existence check gives a 404 instead of a foreign-key conflict.
	if _, err := s.players.GetByID(ctx, in.PlayerID); err != nil {
		telemetry.ReadingsIngestedTotal.WithLabelValues(outcomeOf(err)).Inc()
		return model.Reading{}, fmt.Errorf("player %d: %w", in.PlayerID, err)
	}

	ts := now
	if in.Timestamp != nil && !in.Timestamp.IsZero() {
		ts = *in.Timestamp
	}
	out, err := s.readings.Create(ctx, model.Reading{
		PlayerID:         in.PlayerID,
		HeartRate:        in.HeartRate,
		OxygenSaturation: in.OxygenSaturation,
		Timestamp:        ts.UTC(),
	})
	if err != nil {
		telemetry.ReadingsIngestedTotal.WithLabelValues(telemetry.OutcomeError).Inc()
		s.log.Error().Err(err).Int64("player_id", in.PlayerID).Msg("store reading failed")
		return model.Reading{}, err
	}
	telemetry.ReadingsIngestedTotal.WithLabelValues(telemetry.OutcomeOK).Inc()
	s.log.Debug().Int64("player_id", out.PlayerID).Int64("reading_id", out.ID).Int("hr", out.HeartRate).Int("spo2", out.OxygenSaturation).Msg("reading recorded")
	return out, nil
}

func (s *readingService) ListReadings(ctx context.Context, playerID int64, hours int, now time.Time) ([]model.Reading, error) {
	if err := validateWindow(playerID, hours); err != nil {
		return nil, err
	}
	if _, err := s.players.GetByID(ctx, playerID); err != nil {
		return nil, fmt.Errorf("player %d: %w", playerID, err)
	}

	rs, err := s.window.Extract(ctx, playerID, time.Duration(hours)*time.Hour, now)
	if err != nil {
		return nil, err
	}
	slices.Reverse(rs)
	return rs, nil
}

// LatestReading returns ErrNotFound for an unknown player and ErrNoData when
// the player has never reported.
func (s *readingService) LatestReading(ctx context.Context, playerID int64) (model.Reading, error) {
	if err := validateID("id", playerID); err != nil {
		return model.Reading{}, err
	}
	if _, err := s.players.GetByID(ctx, playerID); err != nil {
		return model.Reading{}, fmt.Errorf("player %d: %w", playerID, err)
	}
	r, err := s.readings.Latest(ctx, playerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Reading{}, fmt.Errorf("player %d has no readings: %w", playerID, ErrNoData)
		}
		return model.Reading{}, err
	}
	return r, nil
}
