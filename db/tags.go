package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Rumi1013/filewizard/models"
)

// TagStore persists tags and file-tag mappings. The (file_id, tag_id)
// uniqueness constraint lives in the schema, so concurrent appliers cannot
// duplicate a mapping.
type TagStore struct {
	db *sql.DB
}

func NewTagStore(db *sql.DB) *TagStore {
	return &TagStore{db: db}
}

// GetOrCreate returns the tag with the given name, creating it first when
// absent. Creation races resolve to the existing row.
func (s *TagStore) GetOrCreate(ctx context.Context, rec models.TagRecommendation) (*models.Tag, error) {
	if strings.TrimSpace(rec.Name) == "" {
		return nil, fmt.Errorf("tag name is required: %w", ErrConflict)
	}

	tag, err := s.GetByName(ctx, rec.Name)
	if err == nil {
		return tag, nil
	}
	if err != ErrNotFound {
		return nil, err
	}

	created := &models.Tag{
		ID:          uuid.NewString(),
		Name:        rec.Name,
		Emoji:       rec.Emoji,
		Color:       rec.Color,
		Description: rec.Description,
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tags (id, name, emoji, color, description)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO NOTHING
	`, created.ID, created.Name, created.Emoji, created.Color, created.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to create tag %q: %w", rec.Name, err)
	}

	// Re-read to cover the conflict path where another writer won.
	return s.GetByName(ctx, rec.Name)
}

// GetByName returns the tag with the given name.
func (s *TagStore) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	var description sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, emoji, color, description
		FROM tags WHERE name = ?
	`, name).Scan(&tag.ID, &tag.Name, &tag.Emoji, &tag.Color, &description)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tag %q: %w", name, err)
	}
	tag.Description = description.String
	return &tag, nil
}

// EnsureMapping creates the (fileID, tagID) mapping if it does not already
// exist. Applying the same mapping twice is a no-op.
func (s *TagStore) EnsureMapping(ctx context.Context, fileID, tagID string) error {
	if fileID == "" || tagID == "" {
		return fmt.Errorf("file id and tag id are required: %w", ErrConflict)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO tag_mappings (file_id, tag_id)
		VALUES (?, ?)
	`, fileID, tagID)
	if err != nil {
		return fmt.Errorf("failed to create tag mapping: %w", err)
	}
	return nil
}

// ListForFile returns all tags mapped to the given file.
func (s *TagStore) ListForFile(ctx context.Context, fileID string) ([]*models.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.emoji, t.color, t.description
		FROM tags t
		JOIN tag_mappings m ON m.tag_id = t.id
		WHERE m.file_id = ?
		ORDER BY t.name
	`, fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags for file: %w", err)
	}
	defer rows.Close()
	return collectTags(rows)
}

// List returns a page of tags ordered by name, plus the total count.
func (s *TagStore) List(ctx context.Context, limit, offset int) ([]*models.Tag, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tags`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tags: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, emoji, color, description
		FROM tags
		ORDER BY name
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	tags, err := collectTags(rows)
	return tags, total, err
}

// CountMappings returns the number of mappings for a (fileID, tagID) pair;
// at most one by schema constraint.
func (s *TagStore) CountMappings(ctx context.Context, fileID, tagID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM tag_mappings WHERE file_id = ? AND tag_id = ?
	`, fileID, tagID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count mappings: %w", err)
	}
	return count, nil
}

// DeleteMapping removes a single file-tag link.
func (s *TagStore) DeleteMapping(ctx context.Context, fileID, tagID string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM tag_mappings WHERE file_id = ? AND tag_id = ?
	`, fileID, tagID)
	if err != nil {
		return fmt.Errorf("failed to delete tag mapping: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func collectTags(rows *sql.Rows) ([]*models.Tag, error) {
	var tags []*models.Tag
	for rows.Next() {
		var tag models.Tag
		var description sql.NullString
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Emoji, &tag.Color, &description); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tag.Description = description.String
		tags = append(tags, &tag)
	}
	return tags, rows.Err()
}
