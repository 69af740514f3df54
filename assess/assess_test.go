package assess

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rumi1013/filewizard/models"
)

func writeTemp(t *testing.T, name, content string) (string, os.FileInfo) {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	info, err := os.Stat(path)
	require.NoError(t, err)
	return path, info
}

func TestCategoryFor(t *testing.T) {
	cases := map[string]models.FileCategory{
		"main.go":      models.CategoryCode,
		"script.PY":    models.CategoryCode,
		"notes.md":     models.CategoryDocument,
		"paper.pdf":    models.CategoryDocument,
		"photo.jpeg":   models.CategoryImage,
		"clip.mp4":     models.CategoryVideo,
		"archive.zip":  models.CategoryNone,
		"no-extension": models.CategoryNone,
	}
	for name, want := range cases {
		assert.Equal(t, want, CategoryFor(name), "file %s", name)
	}
}

func TestOSReaderReadsFullContent(t *testing.T) {
	content := make([]byte, 300*1024)
	for i := range content {
		content[i] = byte('a' + i%26)
	}
	path := filepath.Join(t.TempDir(), "big.txt")
	require.NoError(t, os.WriteFile(path, content, 0644))

	got, err := OSReader{}.Read(path)
	require.NoError(t, err)
	assert.Equal(t, content, got, "content must come back whole, not a short read")
}

func TestOSReaderRejectsDirectory(t *testing.T) {
	_, err := OSReader{}.Read(t.TempDir())
	require.Error(t, err)
}

func assertUnit(t *testing.T, v float64, label string) {
	t.Helper()
	assert.GreaterOrEqual(t, v, 0.0, label)
	assert.LessOrEqual(t, v, 1.0, label)
}

func TestAssessShortDocumentReadsEasy(t *testing.T) {
	path, info := writeTemp(t, "note.md", "One two three four five.")

	metrics, err := NewAssessor(nil).Assess(path, info)
	require.NoError(t, err)
	require.Equal(t, models.CategoryDocument, metrics.Category)
	require.NotNil(t, metrics.Document)
	assert.Nil(t, metrics.Code)
	assert.Nil(t, metrics.Image)
	assert.Nil(t, metrics.Video)

	// Five words in one sentence lands in the Easy readability tier.
	assert.GreaterOrEqual(t, metrics.Document.Readability, 0.8)
	assertUnit(t, metrics.Document.Readability, "readability")
	assertUnit(t, metrics.Document.Formatting, "formatting")
	assertUnit(t, metrics.Document.Completeness, "completeness")
}

func TestAssessLongSentencesReadHarder(t *testing.T) {
	short, shortInfo := writeTemp(t, "short.txt", "Crisp words. Short lines. Easy reading.")

	long := "This is one extremely long winding sentence that keeps going and going with far too many words and clauses and digressions before it finally comes to an end."
	longPath, longInfo := writeTemp(t, "long.txt", long)

	assessor := NewAssessor(nil)
	shortMetrics, err := assessor.Assess(short, shortInfo)
	require.NoError(t, err)
	longMetrics, err := assessor.Assess(longPath, longInfo)
	require.NoError(t, err)

	assert.Greater(t, shortMetrics.Document.Readability, longMetrics.Document.Readability)
}

func TestAssessCodeDocumentation(t *testing.T) {
	documented := "// Package demo does things.\npackage demo\n\n// Add sums two ints.\nfunc Add(a, b int) int {\n\treturn a + b\n}\n"
	bare := "package demo\nfunc Add(a, b int) int {\n\treturn a + b\n}\n"

	docPath, docInfo := writeTemp(t, "doc.go", documented)
	barePath, bareInfo := writeTemp(t, "bare.go", bare)

	assessor := NewAssessor(nil)
	docMetrics, err := assessor.Assess(docPath, docInfo)
	require.NoError(t, err)
	bareMetrics, err := assessor.Assess(barePath, bareInfo)
	require.NoError(t, err)

	require.Equal(t, models.CategoryCode, docMetrics.Category)
	assert.Greater(t, docMetrics.Code.Documentation, 0.0)
	assert.Zero(t, bareMetrics.Code.Documentation)

	for _, m := range []*models.CodeMetrics{docMetrics.Code, bareMetrics.Code} {
		assertUnit(t, m.LintingScore, "linting")
		assertUnit(t, m.Complexity, "complexity")
		assertUnit(t, m.Documentation, "documentation")
	}
}

func TestAssessImageUsesStatOnly(t *testing.T) {
	path, info := writeTemp(t, "photo.png", "not real pixels")

	metrics, err := NewAssessor(nil).Assess(path, info)
	require.NoError(t, err)
	require.Equal(t, models.CategoryImage, metrics.Category)
	require.NotNil(t, metrics.Image)

	assert.Equal(t, 1.0, metrics.Image.ColorProfile)
	assertUnit(t, metrics.Image.Resolution, "resolution")
	assertUnit(t, metrics.Image.Compression, "compression")
}

func TestAssessVideoMetricsClamped(t *testing.T) {
	path, info := writeTemp(t, "clip.mkv", "tiny")

	metrics, err := NewAssessor(nil).Assess(path, info)
	require.NoError(t, err)
	require.NotNil(t, metrics.Video)
	assertUnit(t, metrics.Video.Resolution, "resolution")
	assertUnit(t, metrics.Video.Bitrate, "bitrate")
	assert.Equal(t, 0.5, metrics.Video.Duration)
}

func TestAssessUnknownCategoryHasNoMetrics(t *testing.T) {
	path, info := writeTemp(t, "blob.dat", "opaque")

	metrics, err := NewAssessor(nil).Assess(path, info)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryNone, metrics.Category)
	assert.Nil(t, metrics.Code)
	assert.Nil(t, metrics.Document)
	assert.Nil(t, metrics.Image)
	assert.Nil(t, metrics.Video)
	assert.Equal(t, -1.0, metrics.Average())
}

func TestAssessUnreadableFileFails(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone.md")

	_, err := NewAssessor(nil).Assess(missing, nil)
	require.Error(t, err)

	failure, ok := err.(*AssessmentFailure)
	require.True(t, ok, "expected *AssessmentFailure, got %T", err)
	assert.Equal(t, missing, failure.Path)
}

func TestAssessDeterministic(t *testing.T) {
	path, info := writeTemp(t, "stable.md", "# Title\n\nSome steady text. It does not change.")

	assessor := NewAssessor(nil)
	first, err := assessor.Assess(path, info)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := assessor.Assess(path, info)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
