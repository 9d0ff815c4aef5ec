package storage

import (
	"context"
	"sync"
	"time"

	"github.com/bobmcallan/advisor/internal/interfaces"
	"github.com/bobmcallan/advisor/internal/models"
)

// MemoryStore is an in-memory PortfolioStore used by tests and ephemeral
// deployments.
type MemoryStore struct {
	mu        sync.RWMutex
	portfolio *models.Portfolio
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(_ context.Context, portfolio *models.Portfolio) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	portfolio.UpdatedAt = time.Now()
	if portfolio.CreatedAt.IsZero() {
		portfolio.CreatedAt = time.Now()
	}

	copied := *portfolio
	copied.Assets = append([]models.Asset(nil), portfolio.Assets...)
	s.portfolio = &copied
	return nil
}

func (s *MemoryStore) Load(_ context.Context) (*models.Portfolio, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.portfolio == nil {
		return nil, ErrNoPortfolio
	}
	copied := *s.portfolio
	copied.Assets = append([]models.Asset(nil), s.portfolio.Assets...)
	return &copied, nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.portfolio = nil
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// Ensure MemoryStore implements PortfolioStore
var _ interfaces.PortfolioStore = (*MemoryStore)(nil)
