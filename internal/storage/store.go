// Package storage provides abstractions for archiving batch run results.
package storage

import (
	"context"

	"github.com/mmynk/predictionsbetting/internal/models"
)

// Store defines the interface for run archive operations.
// Scoring never reads from the store; it only receives finished runs.
type Store interface {
	// SaveRun persists a finished run.
	// The run.ID and run.CreatedAt fields will be populated by the store if empty.
	SaveRun(ctx context.Context, run *models.Run) error

	// GetRun retrieves a run by its ID.
	// Returns nil and an error if the run is not found.
	GetRun(ctx context.Context, runID string) (*models.Run, error)

	// ListRuns returns all archived runs, newest first, without totals or scores.
	ListRuns(ctx context.Context) ([]*models.Run, error)

	// Close releases any resources held by the store.
	Close() error
}
