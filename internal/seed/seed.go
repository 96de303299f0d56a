// Package seed fills an empty store with a sample roster and eight hours of
// synthetic readings, so the dashboard has something to show locally.
package seed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/maxviazov/esports-health-service/internal/model"
	"github.com/maxviazov/esports-health-service/internal/repository"
)

const (
	readingsPerPlayer = 32
	readingInterval   = 15 * time.Minute
	spikeEvery        = 6
)

type RosterPlayer struct {
	Name    string `yaml:"name"`
	Age     int    `yaml:"age"`
	Team    string `yaml:"team"`
	Country string `yaml:"country"`
	Role    string `yaml:"role"`
}

type Roster struct {
	Players []RosterPlayer `yaml:"players"`
}

// DefaultRoster is used when no roster file is given.
func DefaultRoster() Roster {
	return Roster{Players: []RosterPlayer{
		{Name: "Alex 'Phantom' Chen", Age: 22, Team: "Thunder Gaming", Country: "South Korea", Role: "Mid Laner"},
		{Name: "Maria 'Viper' Rodriguez", Age: 20, Team: "Eclipse Squad", Country: "Spain", Role: "ADC"},
		{Name: "Lucas 'Shadow' Silva", Age: 24, Team: "Phoenix Rising", Country: "Brazil", Role: "Jungle"},
		{Name: "Sarah 'Storm' Johnson", Age: 21, Team: "Thunder Gaming", Country: "USA", Role: "Support"},
		{Name: "Kenji 'Blade' Tanaka", Age: 23, Team: "Eclipse Squad", Country: "Japan", Role: "Top Laner"},
	}}
}

// LoadRoster reads a YAML roster file.
func LoadRoster(path string) (Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Roster{}, fmt.Errorf("read roster: %w", err)
	}
	var r Roster
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Roster{}, fmt.Errorf("parse roster %s: %w", path, err)
	}
	if len(r.Players) == 0 {
		return Roster{}, fmt.Errorf("roster %s has no players", path)
	}
	return r, nil
}

// Baseline is the resting heart rate and oxygenation a role is simulated around.
type Baseline struct {
	HeartRate int
	Oxygen    int
}

// BaselineFor matches on a substring of the role, so "Mid Laner" and "Mid" agree.
func BaselineFor(role string) Baseline {
	switch {
	case strings.Contains(role, "Mid"):
		return Baseline{HeartRate: 70, Oxygen: 98}
	case strings.Contains(role, "ADC"):
		return Baseline{HeartRate: 65, Oxygen: 99}
	case strings.Contains(role, "Jungle"):
		return Baseline{HeartRate: 72, Oxygen: 97}
	case strings.Contains(role, "Support"):
		return Baseline{HeartRate: 68, Oxygen: 98}
	default:
		return Baseline{HeartRate: 75, Oxygen: 96}
	}
}

// randInt returns a uniform value in [lo, hi].
func randInt(rng *rand.Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo+1)
}

// GenerateReadings produces one reading every 15 minutes starting eight hours
// before now. Every sixth reading simulates an in-match spike.
func GenerateReadings(playerID int64, role string, now time.Time, rng *rand.Rand) []model.Reading {
	base := BaselineFor(role)
	start := now.Add(-readingsPerPlayer * readingInterval)

	out := make([]model.Reading, 0, readingsPerPlayer)
	for i := 0; i < readingsPerPlayer; i++ {
		hrVar := randInt(rng, -15, 25)
		o2Var := randInt(rng, -3, 1)
		if i%spikeEvery == 0 {
			hrVar += randInt(rng, 10, 30)
			o2Var -= randInt(rng, 1, 3)
		}
		out = append(out, model.Reading{
			PlayerID:         playerID,
			HeartRate:        min(140, max(50, base.HeartRate+hrVar)),
			OxygenSaturation: min(100, max(90, base.Oxygen+o2Var)),
			Timestamp:        start.Add(time.Duration(i) * readingInterval).UTC(),
		})
	}
	return out
}

type Result struct {
	Players  int
	Readings int
	Skipped  bool
}

// Seeder writes a roster and its readings in one transaction.
type Seeder struct {
	tx       repository.TxManager
	players  repository.PlayerRepository
	readings repository.ReadingRepository
	log      zerolog.Logger
}

func NewSeeder(tx repository.TxManager, players repository.PlayerRepository, readings repository.ReadingRepository, logger zerolog.Logger) *Seeder {
	return &Seeder{
		tx:       tx,
		players:  players,
		readings: readings,
		log:      logger.With().Str("component", "seed").Logger(),
	}
}

// Seed does nothing when the store already has players, unless force is set.
func (s *Seeder) Seed(ctx context.Context, roster Roster, now time.Time, rng *rand.Rand, force bool) (Result, error) {
	if !force {
		existing, err := s.players.List(ctx, repository.Page{Limit: 1})
		if err != nil {
			return Result{}, fmt.Errorf("check existing players: %w", err)
		}
		if existing.Total > 0 {
			s.log.Info().Int("players", existing.Total).Msg("store already populated, skipping seed")
			return Result{Skipped: true}, nil
		}
	}

	var res Result
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		for _, rp := range roster.Players {
			p, err := s.players.Create(ctx, model.Player{Name: rp.Name, Age: rp.Age, Team: rp.Team, Country: rp.Country, Role: rp.Role})
			if err != nil {
				return fmt.Errorf("create player %q: %w", rp.Name, err)
			}
			res.Players++
			for _, r := range GenerateReadings(p.ID, p.Role, now, rng) {
				if _, err := s.readings.Create(ctx, r); err != nil {
					return fmt.Errorf("create reading for %q: %w", rp.Name, err)
				}
				res.Readings++
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	s.log.Info().Int("players", res.Players).Int("readings", res.Readings).Msg("sample data inserted")
	return res, nil
}
