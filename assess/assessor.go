package assess

import (
	"os"

	"github.com/Rumi1013/filewizard/models"
)

// Assessor computes QualityMetrics for single files through a ContentReader.
type Assessor struct {
	reader ContentReader
}

// NewAssessor returns an assessor using the given reader, or the local
// filesystem reader when nil.
func NewAssessor(reader ContentReader) *Assessor {
	if reader == nil {
		reader = OSReader{}
	}
	return &Assessor{reader: reader}
}

// Assess scores one existing regular file. Exactly one metrics variant is
// populated, selected by the extension category; unknown extensions yield
// CategoryNone with no variant. Unreadable content returns an
// *AssessmentFailure.
func (a *Assessor) Assess(path string, info os.FileInfo) (models.QualityMetrics, error) {
	category := CategoryFor(path)
	metrics := models.QualityMetrics{Category: category}
	if category == models.CategoryNone {
		return metrics, nil
	}

	switch category {
	case models.CategoryCode, models.CategoryDocument:
		content, err := a.reader.Read(path)
		if err != nil {
			return models.QualityMetrics{}, &AssessmentFailure{Path: path, Err: err}
		}
		if category == models.CategoryCode {
			metrics.Code = scoreCode(content)
		} else {
			metrics.Document = scoreDocument(content)
		}
	case models.CategoryImage:
		metrics.Image = scoreImage(extOf(path), info.Size())
	case models.CategoryVideo:
		metrics.Video = scoreVideo(extOf(path), info.Size())
	}

	return metrics, nil
}
