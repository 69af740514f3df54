// Package tags applies tag recommendations to the tag store and defines
// the external recommender contract.
package tags

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/Rumi1013/filewizard/models"
)

// Store is the tag persistence surface the applier writes through. The
// store, not the applier, guarantees (fileID, tagID) uniqueness.
type Store interface {
	GetOrCreate(ctx context.Context, rec models.TagRecommendation) (*models.Tag, error)
	EnsureMapping(ctx context.Context, fileID, tagID string) error
}

// BatchItem pairs one file with its tag recommendations.
type BatchItem struct {
	FilePath        string                     `json:"file_path"`
	FileID          string                     `json:"file_id"`
	Recommendations []models.TagRecommendation `json:"recommendations"`
}

// FileTagResult lists the tags applied to one file.
type FileTagResult struct {
	FilePath string        `json:"file_path"`
	Tags     []*models.Tag `json:"tags"`
}

// Applier applies recommendation batches to a tag store.
type Applier struct {
	store Store
}

func NewApplier(store Store) *Applier {
	return &Applier{store: store}
}

// ApplyBatch processes files sequentially to bound load on the shared
// store. A failure applying one recommendation is dropped from that file's
// result and collected in the returned error; it never aborts remaining
// recommendations or files. Re-applying an existing mapping is a no-op.
func (a *Applier) ApplyBatch(ctx context.Context, items []BatchItem) ([]FileTagResult, error) {
	results := make([]FileTagResult, 0, len(items))
	var errs *multierror.Error

	for _, item := range items {
		result := FileTagResult{FilePath: item.FilePath, Tags: []*models.Tag{}}
		fileID := item.FileID
		if fileID == "" {
			fileID = item.FilePath
		}

		for _, rec := range item.Recommendations {
			tag, err := a.store.GetOrCreate(ctx, rec)
			if err != nil {
				errs = multierror.Append(errs, fmt.Errorf("create tag %q for %s: %w", rec.Name, item.FilePath, err))
				continue
			}
			if err := a.store.EnsureMapping(ctx, fileID, tag.ID); err != nil {
				errs = multierror.Append(errs, fmt.Errorf("map tag %q to %s: %w", rec.Name, item.FilePath, err))
				continue
			}
			result.Tags = append(result.Tags, tag)
		}

		results = append(results, result)
	}

	return results, errs.ErrorOrNil()
}
