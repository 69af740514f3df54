package models

import (
	"time"
)

// EntryType classifies a node in a scan result tree.
type EntryType string

const (
	EntryFile      EntryType = "file"
	EntryDirectory EntryType = "directory"
	EntrySymlink   EntryType = "symlink"
	EntryUnknown   EntryType = "unknown"
	EntryError     EntryType = "error"
)

// DirectoryEntry is one node in a scan result tree. Trees are ephemeral and
// rebuilt on every scan request; diagnostic flags replace thrown errors so a
// failing subtree never aborts its siblings.
type DirectoryEntry struct {
	Name         string            `json:"name"`
	Path         string            `json:"path"`
	Type         EntryType         `json:"type"`
	Children     []*DirectoryEntry `json:"children,omitempty"`
	Size         int64             `json:"size,omitempty"`
	Hidden       bool              `json:"hidden,omitempty"`
	LastModified int64             `json:"last_modified,omitempty"`
	Created      int64             `json:"created,omitempty"`

	Error           string `json:"error,omitempty"`
	MaxDepthReached bool   `json:"max_depth_reached,omitempty"`
	PermissionError bool   `json:"permission_error,omitempty"`
	CycleDetected   bool   `json:"cycle_detected,omitempty"`
	Restricted      bool   `json:"restricted,omitempty"`
	Excluded        bool   `json:"excluded,omitempty"`

	Suggestion    string `json:"suggestion,omitempty"`
	SuggestedPath string `json:"suggested_path,omitempty"`
}

// FileCategory selects which QualityMetrics variant is populated.
type FileCategory string

const (
	CategoryCode     FileCategory = "code"
	CategoryDocument FileCategory = "document"
	CategoryImage    FileCategory = "image"
	CategoryVideo    FileCategory = "video"
	CategoryNone     FileCategory = "none"
)

type CodeMetrics struct {
	LintingScore  float64 `json:"linting_score"`
	Complexity    float64 `json:"complexity"`
	Documentation float64 `json:"documentation"`
}

type DocumentMetrics struct {
	Readability  float64 `json:"readability"`
	Formatting   float64 `json:"formatting"`
	Completeness float64 `json:"completeness"`
}

type ImageMetrics struct {
	Resolution   float64 `json:"resolution"`
	ColorProfile float64 `json:"color_profile"`
	Compression  float64 `json:"compression"`
}

type VideoMetrics struct {
	Resolution float64 `json:"resolution"`
	Bitrate    float64 `json:"bitrate"`
	Duration   float64 `json:"duration"`
}

// QualityMetrics is a tagged union: exactly one variant pointer is non-nil,
// matching Category. CategoryNone has no variant.
type QualityMetrics struct {
	Category FileCategory     `json:"category"`
	Code     *CodeMetrics     `json:"code,omitempty"`
	Document *DocumentMetrics `json:"document,omitempty"`
	Image    *ImageMetrics    `json:"image,omitempty"`
	Video    *VideoMetrics    `json:"video,omitempty"`
}

// Average returns the mean of the populated variant's metric fields, or -1
// when no variant is populated.
func (m QualityMetrics) Average() float64 {
	switch {
	case m.Code != nil:
		return (m.Code.LintingScore + m.Code.Complexity + m.Code.Documentation) / 3
	case m.Document != nil:
		return (m.Document.Readability + m.Document.Formatting + m.Document.Completeness) / 3
	case m.Image != nil:
		return (m.Image.Resolution + m.Image.ColorProfile + m.Image.Compression) / 3
	case m.Video != nil:
		return (m.Video.Resolution + m.Video.Bitrate + m.Video.Duration) / 3
	}
	return -1
}

// QualityTier is the ordinal quality classification of an assessed file.
type QualityTier string

const (
	TierPoor      QualityTier = "Poor"
	TierFair      QualityTier = "Fair"
	TierGood      QualityTier = "Good"
	TierExcellent QualityTier = "Excellent"
)

// Numeric maps a tier onto the same 0-1 scale the raw metrics use, so tier
// and threshold comparisons share one axis.
func (t QualityTier) Numeric() float64 {
	switch t {
	case TierExcellent:
		return 1.0
	case TierGood:
		return 0.75
	case TierFair:
		return 0.5
	default:
		return 0.25
	}
}

// FileAssessment is the persisted outcome of scoring one file. Immutable
// once created; re-assessment inserts a new record.
type FileAssessment struct {
	ID                   string         `json:"id"`
	FilePath             string         `json:"file_path"`
	FileType             string         `json:"file_type"`
	QualityScore         QualityTier    `json:"quality_score"`
	MonetizationEligible bool           `json:"monetization_eligible"`
	NeedsDeletion        bool           `json:"needs_deletion"`
	Metadata             QualityMetrics `json:"metadata"`
	LastModified         time.Time      `json:"last_modified"`
	SizeBytes            int64          `json:"size_bytes"`
	AssessmentDate       time.Time      `json:"assessment_date"`
}

// Tag is a user-visible label applied to files.
type Tag struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Emoji       string `json:"emoji"`
	Color       string `json:"color"`
	Description string `json:"description,omitempty"`
}

// TagMapping links a file to a tag; the (FileID, TagID) pair is unique and
// is the sole ownership link between the two.
type TagMapping struct {
	FileID string `json:"file_id"`
	TagID  string `json:"tag_id"`
}

// TagRecommendation is the output contract of the external recommender.
type TagRecommendation struct {
	Name        string  `json:"name"`
	Emoji       string  `json:"emoji"`
	Color       string  `json:"color"`
	Description string  `json:"description,omitempty"`
	Confidence  float64 `json:"confidence,omitempty"`
}

// DailyReport aggregates all assessments dated to one calendar day.
type DailyReport struct {
	Date                string               `json:"date"`
	FilesProcessed      []ProcessedFile      `json:"files_processed"`
	Deletions           []DeletionRecord     `json:"deletions"`
	OrganizationChanges []OrganizationChange `json:"organization_changes"`
	Recommendations     []Recommendation     `json:"recommendations"`
}

type ProcessedFile struct {
	Path    string      `json:"path"`
	Type    string      `json:"type"`
	Quality QualityTier `json:"quality"`
}

type DeletionRecord struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

type OrganizationChange struct {
	Path   string `json:"path"`
	Action string `json:"action"`
}

type Recommendation struct {
	Path       string `json:"path"`
	Suggestion string `json:"suggestion"`
}

// ProgressStats tracks scan pipeline throughput for periodic logging.
type ProgressStats struct {
	ProcessedFiles int64
	ProcessedBytes int64
	AssessedFiles  int64
	StartTime      time.Time
	LastLogTime    time.Time
}
