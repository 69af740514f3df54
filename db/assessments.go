package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Rumi1013/filewizard/models"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned on uniqueness violations the caller may treat as
// benign (e.g. a duplicate tag mapping).
var ErrConflict = errors.New("conflict")

// AssessmentStore persists FileAssessment records keyed by UUID.
type AssessmentStore struct {
	db *sql.DB
}

func NewAssessmentStore(db *sql.DB) *AssessmentStore {
	return &AssessmentStore{db: db}
}

// Insert stores a new assessment record. The caller-supplied ID is kept if
// present; otherwise a UUID is generated.
func (s *AssessmentStore) Insert(ctx context.Context, a *models.FileAssessment) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	metricsJSON, err := json.Marshal(a.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode metrics: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO assessments (
			id, file_path, file_type, quality_score,
			monetization_eligible, needs_deletion, metrics_json,
			last_modified, size_bytes, assessment_date
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		a.ID,
		a.FilePath,
		a.FileType,
		string(a.QualityScore),
		a.MonetizationEligible,
		a.NeedsDeletion,
		string(metricsJSON),
		a.LastModified.Unix(),
		a.SizeBytes,
		a.AssessmentDate.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert assessment: %w", err)
	}
	return nil
}

// Get returns one assessment by ID.
func (s *AssessmentStore) Get(ctx context.Context, id string) (*models.FileAssessment, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, file_path, file_type, quality_score,
			monetization_eligible, needs_deletion, metrics_json,
			last_modified, size_bytes, assessment_date
		FROM assessments
		WHERE id = ?
	`, id)
	return scanAssessment(row)
}

// ListByDay returns all assessments whose assessment_date falls on the
// given calendar day, ordered by file path for deterministic reports.
func (s *AssessmentStore) ListByDay(ctx context.Context, day time.Time) ([]*models.FileAssessment, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, file_path, file_type, quality_score,
			monetization_eligible, needs_deletion, metrics_json,
			last_modified, size_bytes, assessment_date
		FROM assessments
		WHERE assessment_date >= ? AND assessment_date < ?
		ORDER BY file_path, id
	`, start.Unix(), end.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to query assessments: %w", err)
	}
	defer rows.Close()

	var assessments []*models.FileAssessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		assessments = append(assessments, a)
	}
	return assessments, rows.Err()
}

// List returns a page of assessments, newest first, plus the total count.
func (s *AssessmentStore) List(ctx context.Context, limit, offset int) ([]*models.FileAssessment, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM assessments`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count assessments: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, file_path, file_type, quality_score,
			monetization_eligible, needs_deletion, metrics_json,
			last_modified, size_bytes, assessment_date
		FROM assessments
		ORDER BY assessment_date DESC, id
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query assessments: %w", err)
	}
	defer rows.Close()

	var assessments []*models.FileAssessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, 0, err
		}
		assessments = append(assessments, a)
	}
	return assessments, total, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAssessment(row rowScanner) (*models.FileAssessment, error) {
	var a models.FileAssessment
	var metricsJSON string
	var lastModified, assessmentDate int64

	err := row.Scan(
		&a.ID,
		&a.FilePath,
		&a.FileType,
		&a.QualityScore,
		&a.MonetizationEligible,
		&a.NeedsDeletion,
		&metricsJSON,
		&lastModified,
		&a.SizeBytes,
		&assessmentDate,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan assessment: %w", err)
	}

	if err := json.Unmarshal([]byte(metricsJSON), &a.Metadata); err != nil {
		return nil, fmt.Errorf("failed to decode metrics for %s: %w", a.ID, err)
	}
	a.LastModified = time.Unix(lastModified, 0).UTC()
	a.AssessmentDate = time.Unix(assessmentDate, 0).UTC()
	return &a, nil
}
