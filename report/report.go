// Package report aggregates a day's assessments into a single daily
// report. Regenerating a report for the same date over an unchanged
// assessment set produces identical output.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/Rumi1013/filewizard/models"
)

// Fixed strings used in report entries. Changing these changes persisted
// report payloads.
const (
	DeletionReason        = "exceeded age threshold"
	ActionMarkedDeletion  = "marked_for_deletion"
	ActionAssessed        = "assessed"
	ImprovementSuggestion = "review and improve content quality or archive"
)

// AssessmentSource supplies the day's assessments, ordered deterministically.
type AssessmentSource interface {
	ListByDay(ctx context.Context, day time.Time) ([]*models.FileAssessment, error)
}

// Aggregator builds daily reports from an assessment source.
type Aggregator struct {
	source AssessmentSource
}

func NewAggregator(source AssessmentSource) *Aggregator {
	return &Aggregator{source: source}
}

// Generate builds the report for the given calendar date. Every assessment
// dated that day is summarized; deletion-flagged files gain a deletion
// record, everything gains an organization-change entry, and Poor files not
// marked for deletion gain an improvement recommendation.
func (a *Aggregator) Generate(ctx context.Context, date time.Time) (*models.DailyReport, error) {
	assessments, err := a.source.ListByDay(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load assessments: %w", err)
	}

	report := &models.DailyReport{
		Date:                date.Format("2006-01-02"),
		FilesProcessed:      []models.ProcessedFile{},
		Deletions:           []models.DeletionRecord{},
		OrganizationChanges: []models.OrganizationChange{},
		Recommendations:     []models.Recommendation{},
	}

	for _, assessment := range assessments {
		report.FilesProcessed = append(report.FilesProcessed, models.ProcessedFile{
			Path:    assessment.FilePath,
			Type:    assessment.FileType,
			Quality: assessment.QualityScore,
		})

		action := ActionAssessed
		if assessment.NeedsDeletion {
			action = ActionMarkedDeletion
			report.Deletions = append(report.Deletions, models.DeletionRecord{
				Path:   assessment.FilePath,
				Reason: DeletionReason,
			})
		}
		report.OrganizationChanges = append(report.OrganizationChanges, models.OrganizationChange{
			Path:   assessment.FilePath,
			Action: action,
		})

		if !assessment.NeedsDeletion && assessment.QualityScore == models.TierPoor {
			report.Recommendations = append(report.Recommendations, models.Recommendation{
				Path:       assessment.FilePath,
				Suggestion: ImprovementSuggestion,
			})
		}
	}

	return report, nil
}
