// Package service implements the player, reading and analytics use cases on
// top of the reading store. Every time-windowed call takes now explicitly.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/maxviazov/esports-health-service/internal/model"
	"github.com/maxviazov/esports-health-service/internal/repository"
)

// ErrInvalidInput marks rejected requests; FieldErrors lists the offending fields.
var ErrInvalidInput = errors.New("invalid input")

// ErrNoData reports an existing player whose lookback window holds no readings.
var ErrNoData = errors.New("no data in window")

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string {
	parts := make([]string, len(e.fields))
	for i, f := range e.fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return ErrInvalidInput.Error() + ": " + strings.Join(parts, "; ")
}

func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// NewInvalidInputError builds an aggregated validation error, or nil when fe is empty.
// Handlers use it for path and query parsing failures.
func NewInvalidInputError(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors digs the field list out of err, through any wrapping.
func FieldErrors(err error) []FieldError {
	var v interface{ Fields() []FieldError }
	if errors.As(err, &v) && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// CreatePlayerInput is the payload for registering a competitor.
type CreatePlayerInput struct {
	Name    string `json:"name" validate:"required,max=100"`
	Age     int    `json:"age" validate:"gt=0,lte=120"`
	Team    string `json:"team" validate:"required,max=100"`
	Country string `json:"country" validate:"max=100"`
	Role    string `json:"role" validate:"max=50"`
}

// RecordReadingInput is one biometric sample as submitted by a wearable or operator.
// Timestamp defaults to the current time when omitted.
type RecordReadingInput struct {
	PlayerID         int64      `json:"player_id" validate:"gt=0"`
	HeartRate        int        `json:"heart_rate" validate:"gte=40,lte=200"`
	OxygenSaturation int        `json:"oxygen_saturation" validate:"gte=80,lte=100"`
	Timestamp        *time.Time `json:"timestamp,omitempty"`
}

// PlayerService defines player-oriented use cases.
type PlayerService interface {
	CreatePlayer(ctx context.Context, in CreatePlayerInput) (model.Player, error)
	GetPlayer(ctx context.Context, id int64) (model.Player, error)
	ListPlayers(ctx context.Context, page repository.Page) (repository.PageResult[model.Player], error)
	// DeletePlayer removes the player and every reading it owns.
	DeletePlayer(ctx context.Context, id int64) error
}

// ReadingService defines ingestion and raw retrieval of readings.
type ReadingService interface {
	RecordReading(ctx context.Context, in RecordReadingInput, now time.Time) (model.Reading, error)
	// ListReadings returns the readings of the last hours, newest first.
	ListReadings(ctx context.Context, playerID int64, hours int, now time.Time) ([]model.Reading, error)
	LatestReading(ctx context.Context, playerID int64) (model.Reading, error)
}

// AnalyticsService derives assessments from recent readings. Every operation
// takes now explicitly so results are reproducible.
type AnalyticsService interface {
	AnalyzePlayer(ctx context.Context, playerID int64, hours int, now time.Time) (model.PlayerAnalyticsReport, error)
	PlayerSummary(ctx context.Context, playerID int64, now time.Time) (model.PlayerSummary, error)
	TeamStats(ctx context.Context, team string, now time.Time) (model.TeamStatsReport, error)
	DashboardOverview(ctx context.Context, now time.Time) (model.DashboardOverview, error)
}
