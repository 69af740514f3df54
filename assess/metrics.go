package assess

import (
	"strings"
	"unicode"

	"github.com/Rumi1013/filewizard/models"
)

// Code metrics: linting discipline from line hygiene, complexity from
// branching-keyword density (inverted so flatter code scores higher),
// documentation from doc-comment presence and density.

var branchKeywords = []string{"if ", "if(", "for ", "for(", "while ", "while(", "switch ", "switch(", "case ", "catch ", "except ", "elif "}

var docMarkers = []string{"///", "//!", "/**", "\"\"\"", "'''", "# ", "// "}

func scoreCode(content []byte) *models.CodeMetrics {
	text := string(content)
	lines := strings.Split(text, "\n")
	if len(lines) == 0 {
		return &models.CodeMetrics{LintingScore: 0.5, Complexity: 0.5, Documentation: 0}
	}

	var longLines, trailingWS, commentLines, branchCount, nonEmpty int
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		nonEmpty++
		if len(line) > 120 {
			longLines++
		}
		if line != strings.TrimRight(line, " \t") {
			trailingWS++
		}
		for _, marker := range docMarkers {
			if strings.HasPrefix(trimmed, strings.TrimSpace(marker)) {
				commentLines++
				break
			}
		}
		lower := strings.ToLower(trimmed)
		for _, kw := range branchKeywords {
			branchCount += strings.Count(lower, kw)
		}
	}
	if nonEmpty == 0 {
		return &models.CodeMetrics{LintingScore: 0.5, Complexity: 0.5, Documentation: 0}
	}

	n := float64(nonEmpty)
	linting := clamp(1 - (float64(longLines)+float64(trailingWS))/n*2)
	complexity := clamp(1 - float64(branchCount)/n)

	// Any doc marker at all earns a floor; density raises it further.
	documentation := 0.0
	if commentLines > 0 {
		documentation = clamp(0.4 + float64(commentLines)/n*3)
	}

	return &models.CodeMetrics{
		LintingScore:  linting,
		Complexity:    complexity,
		Documentation: documentation,
	}
}

// Document metrics: readability from average words per sentence (short
// sentences read easier), formatting from heading and paragraph structure,
// completeness from word count toward a 300-word target.

func scoreDocument(content []byte) *models.DocumentMetrics {
	text := string(content)
	words := strings.Fields(text)
	wordCount := len(words)

	sentences := 0
	for _, r := range text {
		if r == '.' || r == '!' || r == '?' {
			sentences++
		}
	}
	if sentences == 0 {
		sentences = 1
	}

	avgWords := float64(wordCount) / float64(sentences)
	// <=5 words/sentence scores 1.0, 25+ scores 0.
	readability := clamp((25 - avgWords) / 20)
	if wordCount == 0 {
		readability = 0
	}

	var headings, blankLines int
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			blankLines++
			continue
		}
		if strings.HasPrefix(trimmed, "#") || isTitleLine(trimmed) {
			headings++
		}
	}
	formatting := clamp(0.5 + 0.25*minf(float64(headings), 2)/2 + 0.25*minf(float64(blankLines), 4)/4)

	// Non-empty documents start from a completeness floor and grow toward a
	// 300-word target.
	completeness := 0.0
	if wordCount > 0 {
		completeness = clamp(0.4 + float64(wordCount)/500)
	}

	return &models.DocumentMetrics{
		Readability:  readability,
		Formatting:   formatting,
		Completeness: completeness,
	}
}

func isTitleLine(line string) bool {
	if len(line) == 0 || len(line) > 60 {
		return false
	}
	r := rune(line[0])
	return unicode.IsUpper(r) && !strings.ContainsAny(line, ".!?")
}

// Image metrics are byte-level proxies: no decoder is pulled in, so size
// stands in for resolution and the container format for profile and
// compression quality.

func scoreImage(ext string, size int64) *models.ImageMetrics {
	resolution := clamp(float64(size) / (2 << 20))

	var profile, compression float64
	switch ext {
	case ".png", ".tiff", ".bmp":
		profile, compression = 1.0, 0.9
	case ".webp", ".heic":
		profile, compression = 0.9, 1.0
	case ".jpg", ".jpeg":
		profile, compression = 0.8, 0.7
	case ".svg":
		profile, compression = 1.0, 1.0
		resolution = 1.0 // vector, resolution-independent
	case ".gif":
		profile, compression = 0.5, 0.5
	default:
		profile, compression = 0.5, 0.5
	}

	return &models.ImageMetrics{
		Resolution:   resolution,
		ColorProfile: profile,
		Compression:  compression,
	}
}

// Video metrics: size proxies for resolution and bitrate; duration stays
// neutral since container metadata is not parsed.

func scoreVideo(ext string, size int64) *models.VideoMetrics {
	resolution := clamp(float64(size) / (100 << 20))
	bitrate := clamp(float64(size) / (50 << 20))

	switch ext {
	case ".mkv", ".webm":
		bitrate = clamp(bitrate + 0.1)
	case ".wmv", ".avi":
		bitrate = clamp(bitrate - 0.1)
	}

	return &models.VideoMetrics{
		Resolution: resolution,
		Bitrate:    bitrate,
		Duration:   0.5,
	}
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
