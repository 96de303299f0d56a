// Package memory provides an in-process implementation of the reading store.
// It backs local runs with storage.driver=memory and the service tests.
package memory

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/maxviazov/esports-health-service/internal/model"
	"github.com/maxviazov/esports-health-service/internal/repository"
)

// Domain bounds mirrored from the readings table CHECK constraints.
const (
	minHeartRate = 40
	maxHeartRate = 200
	minOxygen    = 80
	maxOxygen    = 100
)

// Store holds players and their readings behind a single RWMutex so a player
// delete and its reading cascade are atomic.
type Store struct {
	mu sync.RWMutex

	players  map[int64]model.Player
	readings map[int64][]model.Reading // by player, ascending by (timestamp, id)

	nextPlayerID  int64
	nextReadingID int64

	txMu sync.Mutex
}

func NewStore() *Store {
	return &Store{
		players:  make(map[int64]model.Player),
		readings: make(map[int64][]model.Reading),
	}
}

// Players returns the PlayerRepository view of the store.
func (s *Store) Players() repository.PlayerRepository { return &playerRepository{s: s} }

// Readings returns the ReadingRepository view of the store.
func (s *Store) Readings() repository.ReadingRepository { return &readingRepository{s: s} }

// Ping always succeeds; the store lives in the process.
func (s *Store) Ping(context.Context) error { return nil }

type snapshot struct {
	players       map[int64]model.Player
	readings      map[int64][]model.Reading
	nextPlayerID  int64
	nextReadingID int64
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	readings := make(map[int64][]model.Reading, len(s.readings))
	for id, rs := range s.readings {
		readings[id] = slices.Clone(rs)
	}
	return snapshot{
		players:       maps.Clone(s.players),
		readings:      readings,
		nextPlayerID:  s.nextPlayerID,
		nextReadingID: s.nextReadingID,
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.players = snap.players
	s.readings = snap.readings
	s.nextPlayerID = snap.nextPlayerID
	s.nextReadingID = snap.nextReadingID
}

// WithinTx serializes transactions and restores the pre-transaction state when
// fn fails. Writes made outside a transaction while one is open are rolled back
// with it, which is acceptable for a single-process development store.
func (s *Store) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(ctx); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

var (
	_ repository.TxManager = (*Store)(nil)
	_ repository.Pinger    = (*Store)(nil)
)

type playerRepository struct{ s *Store }

func (r *playerRepository) Create(_ context.Context, p model.Player) (model.Player, error) {
	if p.Age <= 0 {
		return model.Player{}, repository.ErrOutOfRange
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextPlayerID++
	p.ID = r.s.nextPlayerID
	r.s.players[p.ID] = p
	return p, nil
}

func (r *playerRepository) GetByID(_ context.Context, id int64) (model.Player, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.players[id]
	if !ok {
		return model.Player{}, repository.ErrNotFound
	}
	return p, nil
}

func (r *playerRepository) List(_ context.Context, page repository.Page) (repository.PageResult[model.Player], error) {
	all := r.sorted(func(model.Player) bool { return true })

	page = page.Normalized()
	limit, offset := page.Limit, page.Offset
	res := repository.PageResult[model.Player]{Items: []model.Player{}, Total: len(all)}
	if offset >= len(all) {
		return res, nil
	}
	end := min(offset+limit, len(all))
	res.Items = append(res.Items, all[offset:end]...)
	return res, nil
}

func (r *playerRepository) ListByTeam(_ context.Context, team string) ([]model.Player, error) {
	return r.sorted(func(p model.Player) bool { return p.Team == team }), nil
}

func (r *playerRepository) ListAll(_ context.Context) ([]model.Player, error) {
	return r.sorted(func(model.Player) bool { return true }), nil
}

func (r *playerRepository) sorted(keep func(model.Player) bool) []model.Player {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]model.Player, 0, len(r.s.players))
	for _, p := range r.s.players {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *playerRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.players[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.players, id)
	delete(r.s.readings, id)
	return nil
}

type readingRepository struct{ s *Store }

func (r *readingRepository) Create(_ context.Context, in model.Reading) (model.Reading, error) {
	if in.HeartRate < minHeartRate || in.HeartRate > maxHeartRate ||
		in.OxygenSaturation < minOxygen || in.OxygenSaturation > maxOxygen {
		return model.Reading{}, repository.ErrOutOfRange
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.players[in.PlayerID]; !ok {
		return model.Reading{}, repository.ErrConflict
	}
	r.s.nextReadingID++
	in.ID = r.s.nextReadingID
	in.Timestamp = in.Timestamp.UTC()

	rs := r.s.readings[in.PlayerID]
	// Insert after every reading with timestamp <= in.Timestamp so ties keep arrival order.
	idx := sort.Search(len(rs), func(i int) bool { return rs[i].Timestamp.After(in.Timestamp) })
	r.s.readings[in.PlayerID] = slices.Insert(rs, idx, in)
	return in, nil
}

func (r *readingRepository) ListByPlayerSince(_ context.Context, playerID int64, since time.Time) ([]model.Reading, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rs := r.s.readings[playerID]
	idx := sort.Search(len(rs), func(i int) bool { return !rs[i].Timestamp.Before(since) })
	out := make([]model.Reading, 0, len(rs)-idx)
	return append(out, rs[idx:]...), nil
}

func (r *readingRepository) Latest(_ context.Context, playerID int64) (model.Reading, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rs := r.s.readings[playerID]
	if len(rs) == 0 {
		return model.Reading{}, repository.ErrNotFound
	}
	return rs[len(rs)-1], nil
}

var (
	_ repository.PlayerRepository  = (*playerRepository)(nil)
	_ repository.ReadingRepository = (*readingRepository)(nil)
)
