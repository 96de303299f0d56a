package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/maxviazov/esports-health-service/internal/model"
	"github.com/maxviazov/esports-health-service/internal/repository"
)

type playerService struct {
	players repository.PlayerRepository
	log     zerolog.Logger
}

func NewPlayerService(players repository.PlayerRepository, logger zerolog.Logger) PlayerService {
	l := logger.With().Str("module", "service").Str("component", "player").Logger()
	return &playerService{players: players, log: l}
}

func (s *playerService) CreatePlayer(ctx context.Context, in CreatePlayerInput) (model.Player, error) {
	start := time.Now()

	// Normalize early so validation and persistence see canonical values.
	in.Name = strings.TrimSpace(in.Name)
	in.Team = strings.TrimSpace(in.Team)
	in.Country = strings.TrimSpace(in.Country)
	in.Role = strings.TrimSpace(in.Role)

	if err := validateStruct(in); err != nil {
		s.log.Debug().Interface("field_errors", FieldErrors(err)).Msg("player validation failed")
		return model.Player{}, err
	}

	out, err := s.players.Create(ctx, model.Player{
		Name:    in.Name,
		Age:     in.Age,
		Team:    in.Team,
		Country: in.Country,
		Role:    in.Role,
	})
	if err != nil {
		s.log.Error().Err(err).Str("name", in.Name).Str("team", in.Team).Msg("create player failed")
		return model.Player{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("player_id", out.ID).Str("team", out.Team).Msg("player created")
	return out, nil
}

func (s *playerService) GetPlayer(ctx context.Context, id int64) (model.Player, error) {
	if err := validateID("id", id); err != nil {
		return model.Player{}, err
	}
	p, err := s.players.GetByID(ctx, id)
	if err != nil {
		return model.Player{}, fmt.Errorf("player %d: %w", id, err)
	}
	return p, nil
}

func (s *playerService) ListPlayers(ctx context.Context, page repository.Page) (repository.PageResult[model.Player], error) {
	return s.players.List(ctx, page.Normalized())
}

func (s *playerService) DeletePlayer(ctx context.Context, id int64) error {
	if err := validateID("id", id); err != nil {
		return err
	}
	if err := s.players.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete player %d: %w", id, err)
	}
	s.log.Info().Int64("player_id", id).Msg("player deleted with readings")
	return nil
}
