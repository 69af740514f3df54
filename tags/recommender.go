package tags

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/Rumi1013/filewizard/assess"
	"github.com/Rumi1013/filewizard/models"
)

// Recommender is the contract of the external tag recommender. Its
// internal prompting or model choice is opaque to this engine.
type Recommender interface {
	RecommendTags(ctx context.Context, filePath string, existing []*models.Tag) ([]models.TagRecommendation, error)
}

// ExtensionRecommender is a rule-table recommender keyed by file category.
// It stands in wherever no AI backend is wired.
type ExtensionRecommender struct{}

var categoryRecommendations = map[models.FileCategory][]models.TagRecommendation{
	models.CategoryCode: {
		{Name: "source-code", Emoji: "\U0001F4BB", Color: "#4B8BBE", Description: "Program source file", Confidence: 0.9},
	},
	models.CategoryDocument: {
		{Name: "document", Emoji: "\U0001F4C4", Color: "#F5A623", Description: "Text document", Confidence: 0.9},
	},
	models.CategoryImage: {
		{Name: "image", Emoji: "\U0001F5BC", Color: "#7ED321", Description: "Image file", Confidence: 0.9},
	},
	models.CategoryVideo: {
		{Name: "video", Emoji: "\U0001F3AC", Color: "#D0021B", Description: "Video file", Confidence: 0.9},
	},
}

func (ExtensionRecommender) RecommendTags(ctx context.Context, filePath string, existing []*models.Tag) ([]models.TagRecommendation, error) {
	recs := categoryRecommendations[assess.CategoryFor(filePath)]

	// Skip names the file's existing tag set already covers.
	have := make(map[string]struct{}, len(existing))
	for _, tag := range existing {
		have[tag.Name] = struct{}{}
	}
	out := make([]models.TagRecommendation, 0, len(recs))
	for _, rec := range recs {
		if _, ok := have[rec.Name]; !ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

// FileRecommendations pairs a file with the recommendations generated for it.
type FileRecommendations struct {
	FilePath        string                     `json:"file_path"`
	Recommendations []models.TagRecommendation `json:"recommendations"`
	Error           string                     `json:"error,omitempty"`
}

// DefaultRecommendWorkers bounds concurrent recommender calls, replacing
// fixed small-batch loops as rate-limit protection.
const DefaultRecommendWorkers = 3

// BatchRecommend generates recommendations for many files through a
// bounded worker pool. Per-file failures are reported inline; the batch
// always returns a result per input, in input order.
func BatchRecommend(ctx context.Context, rec Recommender, filePaths []string, workers int) []FileRecommendations {
	if workers <= 0 {
		workers = DefaultRecommendWorkers
	}

	results := make([]FileRecommendations, len(filePaths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range filePaths {
		i, path := i, path
		g.Go(func() error {
			recs, err := rec.RecommendTags(gctx, path, nil)
			if err != nil {
				log.Printf("Warning: recommendation failed for %s: %v", path, err)
				results[i] = FileRecommendations{FilePath: path, Recommendations: []models.TagRecommendation{}, Error: err.Error()}
				return nil
			}
			results[i] = FileRecommendations{FilePath: path, Recommendations: recs}
			return nil
		})
	}
	g.Wait()

	return results
}
