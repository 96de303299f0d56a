package memory

import (
	"testing"

	"github.com/maxviazov/esports-health-service/internal/repository"
	"github.com/maxviazov/esports-health-service/internal/repository/contract"
)

func noop() {}

func TestPlayerRepository_MemoryContract(t *testing.T) {
	contract.RunPlayerRepositoryContract(t, func(t *testing.T) (repository.PlayerRepository, func()) {
		return NewStore().Players(), noop
	})
}

func TestReadingRepository_MemoryContract(t *testing.T) {
	contract.RunReadingRepositoryContract(t, func(t *testing.T) (repository.ReadingRepository, repository.PlayerRepository, func()) {
		s := NewStore()
		return s.Readings(), s.Players(), noop
	})
}

func TestTxManager_MemoryContract(t *testing.T) {
	contract.RunTxManagerContract(t, func(t *testing.T) (repository.TxManager, repository.PlayerRepository, func()) {
		s := NewStore()
		return s, s.Players(), noop
	})
}

func TestPinger_MemoryContract(t *testing.T) {
	contract.RunPingerContract(t, func(t *testing.T) (repository.Pinger, func()) {
		return NewStore(), noop
	})
}
