// Package assess computes category-specific quality metrics for single
// files. Scoring is deliberately heuristic: deterministic functions of
// simple textual and statistical features, clamped to [0,1].
package assess

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Rumi1013/filewizard/models"
)

// AssessmentFailure reports unreadable or unparseable file content.
type AssessmentFailure struct {
	Path string
	Err  error
}

func (e *AssessmentFailure) Error() string {
	return fmt.Sprintf("failed to assess %s: %v", e.Path, e.Err)
}

func (e *AssessmentFailure) Unwrap() error { return e.Err }

// ContentReader is the external primitive supplying raw file bytes.
type ContentReader interface {
	Read(path string) ([]byte, error)
}

// MaxReadBytes caps how much content a single assessment reads. Metrics are
// statistical, so a prefix is representative for very large files.
const MaxReadBytes = 4 << 20

// OSReader reads content from the local filesystem, capped at MaxReadBytes.
type OSReader struct{}

func (OSReader) Read(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", path)
	}

	size := info.Size()
	if size > MaxReadBytes {
		size = MaxReadBytes
	}
	buf := make([]byte, size)
	// A single Read may legally return short; metrics must see the same
	// bytes on every run, so read until the cap or EOF.
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	return buf[:n], nil
}

var categoryByExtension = map[string]models.FileCategory{
	// code
	".go": models.CategoryCode, ".py": models.CategoryCode,
	".js": models.CategoryCode, ".ts": models.CategoryCode,
	".jsx": models.CategoryCode, ".tsx": models.CategoryCode,
	".rb": models.CategoryCode, ".rs": models.CategoryCode,
	".java": models.CategoryCode, ".c": models.CategoryCode,
	".h": models.CategoryCode, ".cpp": models.CategoryCode,
	".cs": models.CategoryCode, ".php": models.CategoryCode,
	".sh": models.CategoryCode, ".swift": models.CategoryCode,
	".kt": models.CategoryCode, ".sql": models.CategoryCode,
	// document
	".txt": models.CategoryDocument, ".md": models.CategoryDocument,
	".rst": models.CategoryDocument, ".doc": models.CategoryDocument,
	".docx": models.CategoryDocument, ".pdf": models.CategoryDocument,
	".rtf": models.CategoryDocument, ".odt": models.CategoryDocument,
	".tex": models.CategoryDocument,
	// image
	".jpg": models.CategoryImage, ".jpeg": models.CategoryImage,
	".png": models.CategoryImage, ".gif": models.CategoryImage,
	".webp": models.CategoryImage, ".bmp": models.CategoryImage,
	".tiff": models.CategoryImage, ".svg": models.CategoryImage,
	".heic": models.CategoryImage,
	// video
	".mp4": models.CategoryVideo, ".mov": models.CategoryVideo,
	".avi": models.CategoryVideo, ".mkv": models.CategoryVideo,
	".webm": models.CategoryVideo, ".wmv": models.CategoryVideo,
	".m4v": models.CategoryVideo,
}

// CategoryFor maps a file path to its assessment category by extension.
// Unknown extensions map to CategoryNone and receive no metrics.
func CategoryFor(path string) models.FileCategory {
	if cat, ok := categoryByExtension[extOf(path)]; ok {
		return cat
	}
	return models.CategoryNone
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func extOf(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
