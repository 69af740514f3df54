package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Rumi1013/filewizard/models"
)

// ReportStore persists one daily report per calendar date. Regeneration
// overwrites the stored payload, keeping reports idempotently regenerable.
type ReportStore struct {
	db *sql.DB
}

func NewReportStore(db *sql.DB) *ReportStore {
	return &ReportStore{db: db}
}

// Save upserts the report for its date.
func (s *ReportStore) Save(ctx context.Context, report *models.DailyReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO daily_reports (report_date, payload, generated_at)
		VALUES (?, ?, strftime('%s', 'now'))
		ON CONFLICT(report_date) DO UPDATE SET
			payload = excluded.payload,
			generated_at = excluded.generated_at
	`, report.Date, string(payload))
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// Get returns the stored report for a date (YYYY-MM-DD).
func (s *ReportStore) Get(ctx context.Context, date string) (*models.DailyReport, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT payload FROM daily_reports WHERE report_date = ?
	`, date).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	var report models.DailyReport
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return nil, fmt.Errorf("failed to decode report for %s: %w", date, err)
	}
	return &report, nil
}
