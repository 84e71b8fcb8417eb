package pg

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"locustbot/internal/models"
)

type PostgresDB struct {
	pool *pgxpool.Pool
}

// NewPostgresDB creates a new Postgres connection pool
func NewPostgresDB(ctx context.Context, dsn string) (*PostgresDB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping Postgres: %w", err)
	}

	return &PostgresDB{pool: pool}, nil
}

// Initialize is a no-op - tables are managed via migrations
func (db *PostgresDB) Initialize(ctx context.Context) error {
	// Tables are managed via migrations (see migrations/ directory)
	return nil
}

// SaveReport inserts one report row and returns the assigned identifier
func (db *PostgresDB) SaveReport(ctx context.Context, report *models.Report) (int64, error) {
	var id int64
	err := db.pool.QueryRow(ctx,
		`INSERT INTO reports (created_at, user_id, latitude, longitude, comment, photo_url)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		report.CreatedAt, report.UserID, report.Latitude, report.Longitude,
		report.Comment, report.PhotoURL,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to save report: %w", err)
	}
	return id, nil
}

// ListReports returns all reports ordered by identifier
func (db *PostgresDB) ListReports(ctx context.Context) ([]models.Report, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, created_at, user_id, latitude, longitude, comment, photo_url
		 FROM reports ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var reports []models.Report
	for rows.Next() {
		var r models.Report
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.UserID, &r.Latitude,
			&r.Longitude, &r.Comment, &r.PhotoURL); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reports: %w", err)
	}
	return reports, nil
}

// Close closes the connection pool
func (db *PostgresDB) Close() error {
	if db.pool != nil {
		db.pool.Close()
	}
	return nil
}
