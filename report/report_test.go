package report

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rumi1013/filewizard/models"
)

type staticSource struct {
	assessments []*models.FileAssessment
	err         error
}

func (s *staticSource) ListByDay(ctx context.Context, day time.Time) ([]*models.FileAssessment, error) {
	return s.assessments, s.err
}

func day(t *testing.T) time.Time {
	t.Helper()
	return time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
}

func assessment(path string, tier models.QualityTier, needsDeletion bool) *models.FileAssessment {
	return &models.FileAssessment{
		FilePath:      path,
		FileType:      ".md",
		QualityScore:  tier,
		NeedsDeletion: needsDeletion,
	}
}

func TestGeneratePartitions(t *testing.T) {
	source := &staticSource{assessments: []*models.FileAssessment{
		assessment("/w/excellent.md", models.TierExcellent, false),
		assessment("/w/old.md", models.TierGood, true),
		assessment("/w/poor.md", models.TierPoor, false),
		assessment("/w/poor-old.md", models.TierPoor, true),
	}}

	report, err := NewAggregator(source).Generate(context.Background(), day(t))
	require.NoError(t, err)

	assert.Equal(t, "2026-08-30", report.Date)
	assert.Len(t, report.FilesProcessed, 4)

	require.Len(t, report.Deletions, 2)
	assert.Equal(t, "/w/old.md", report.Deletions[0].Path)
	assert.Equal(t, DeletionReason, report.Deletions[0].Reason)

	require.Len(t, report.OrganizationChanges, 4)
	actions := map[string]string{}
	for _, change := range report.OrganizationChanges {
		actions[change.Path] = change.Action
	}
	assert.Equal(t, ActionAssessed, actions["/w/excellent.md"])
	assert.Equal(t, ActionMarkedDeletion, actions["/w/old.md"])

	// Poor and not deleted gets a recommendation; poor-but-deleted does not.
	require.Len(t, report.Recommendations, 1)
	assert.Equal(t, "/w/poor.md", report.Recommendations[0].Path)
	assert.Equal(t, ImprovementSuggestion, report.Recommendations[0].Suggestion)
}

func TestGenerateEmptyDay(t *testing.T) {
	report, err := NewAggregator(&staticSource{}).Generate(context.Background(), day(t))
	require.NoError(t, err)

	assert.NotNil(t, report.FilesProcessed)
	assert.Empty(t, report.FilesProcessed)
	assert.Empty(t, report.Deletions)
	assert.Empty(t, report.OrganizationChanges)
	assert.Empty(t, report.Recommendations)
}

func TestGenerateIdempotent(t *testing.T) {
	source := &staticSource{assessments: []*models.FileAssessment{
		assessment("/w/a.md", models.TierGood, false),
		assessment("/w/b.md", models.TierPoor, true),
		assessment("/w/c.md", models.TierPoor, false),
	}}
	aggregator := NewAggregator(source)

	first, err := aggregator.Generate(context.Background(), day(t))
	require.NoError(t, err)
	second, err := aggregator.Generate(context.Background(), day(t))
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)
}

func TestGenerateSourceError(t *testing.T) {
	source := &staticSource{err: errors.New("store offline")}

	_, err := NewAggregator(source).Generate(context.Background(), day(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store offline")
}
