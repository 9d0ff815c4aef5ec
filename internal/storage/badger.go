// Package storage provides portfolio persistence backed by BadgerHold, plus
// an in-memory store for tests.
package storage

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/advisor/internal/common"
	"github.com/bobmcallan/advisor/internal/interfaces"
	"github.com/bobmcallan/advisor/internal/models"
)

// ErrNoPortfolio is returned by Load when nothing has been saved.
var ErrNoPortfolio = fmt.Errorf("no portfolio stored")

// currentPortfolioKey is the single record slot. The store holds the most
// recently uploaded portfolio, not a history.
const currentPortfolioKey = "current"

// BadgerStore implements PortfolioStore on a BadgerHold database.
type BadgerStore struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// NewBadgerStore opens a BadgerHold store at the given directory path,
// creating it if needed.
func NewBadgerStore(path string, logger *common.Logger) (*BadgerStore, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", path, err)
	}

	options := badgerhold.DefaultOptions
	options.Dir = path
	options.ValueDir = path
	options.Logger = nil // Disable default badger logger

	db, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}

	logger.Debug().Str("path", path).Msg("Portfolio store opened")

	return &BadgerStore{db: db, logger: logger}, nil
}

func (s *BadgerStore) Save(_ context.Context, portfolio *models.Portfolio) error {
	portfolio.UpdatedAt = time.Now()
	if portfolio.CreatedAt.IsZero() {
		portfolio.CreatedAt = time.Now()
	}
	if portfolio.ID == "" {
		portfolio.ID = currentPortfolioKey
	}

	if err := s.db.Upsert(currentPortfolioKey, portfolio); err != nil {
		return fmt.Errorf("failed to save portfolio: %w", err)
	}
	s.logger.Debug().Int("assets", len(portfolio.Assets)).Msg("Portfolio saved")
	return nil
}

func (s *BadgerStore) Load(_ context.Context) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	err := s.db.Get(currentPortfolioKey, &portfolio)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, ErrNoPortfolio
		}
		return nil, fmt.Errorf("failed to load portfolio: %w", err)
	}
	return &portfolio, nil
}

func (s *BadgerStore) Clear(_ context.Context) error {
	err := s.db.Delete(currentPortfolioKey, models.Portfolio{})
	if err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to clear portfolio: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ensure BadgerStore implements PortfolioStore
var _ interfaces.PortfolioStore = (*BadgerStore)(nil)
