package storage

import (
	"context"

	"locustbot/internal/models"
)

// Storage defines the interface for report persistence
type Storage interface {
	// SaveReport inserts one report row and returns the assigned identifier
	SaveReport(ctx context.Context, report *models.Report) (int64, error)

	// ListReports returns all reports ordered by identifier
	ListReports(ctx context.Context) ([]models.Report, error)

	// Lifecycle
	Initialize(ctx context.Context) error
	Close() error
}
