package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Rumi1013/filewizard/models"
)

// ChangeStore records organization-change log entries.
type ChangeStore struct {
	db *sql.DB
}

func NewChangeStore(db *sql.DB) *ChangeStore {
	return &ChangeStore{db: db}
}

// Record appends one organization-change entry.
func (s *ChangeStore) Record(ctx context.Context, filePath, action string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO organization_changes (id, file_path, action)
		VALUES (?, ?, ?)
	`, uuid.NewString(), filePath, action)
	if err != nil {
		return fmt.Errorf("failed to record organization change: %w", err)
	}
	return nil
}

// ListByDay returns change entries recorded on the given calendar day,
// ordered by path.
func (s *ChangeStore) ListByDay(ctx context.Context, day time.Time) ([]models.OrganizationChange, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	rows, err := s.db.QueryContext(ctx, `
		SELECT file_path, action
		FROM organization_changes
		WHERE created_at >= ? AND created_at < ?
		ORDER BY file_path, created_at
	`, start.Unix(), end.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to query organization changes: %w", err)
	}
	defer rows.Close()

	var changes []models.OrganizationChange
	for rows.Next() {
		var c models.OrganizationChange
		if err := rows.Scan(&c.Path, &c.Action); err != nil {
			return nil, fmt.Errorf("failed to scan organization change: %w", err)
		}
		changes = append(changes, c)
	}
	return changes, rows.Err()
}
