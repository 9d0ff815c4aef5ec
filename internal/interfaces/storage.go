// Package interfaces defines service contracts for Advisor
package interfaces

import (
	"context"

	"github.com/bobmcallan/advisor/internal/models"
)

// PortfolioStore persists the most recently uploaded portfolio. It replaces
// a process-wide singleton with an injectable, explicitly scoped store.
type PortfolioStore interface {
	// Save stores the portfolio as the current one
	Save(ctx context.Context, portfolio *models.Portfolio) error

	// Load returns the current portfolio, or an error when none is stored
	Load(ctx context.Context) (*models.Portfolio, error)

	// Clear removes the stored portfolio
	Clear(ctx context.Context) error

	Close() error
}
