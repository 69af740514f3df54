package api

import (
	"github.com/Rumi1013/filewizard/models"
	"github.com/Rumi1013/filewizard/scanner"
	"github.com/Rumi1013/filewizard/tags"
)

// BatchScanRequest lists the roots of a multi-directory scan.
type BatchScanRequest struct {
	Paths []string `json:"paths"`
}

// BatchScanResponse maps each valid input path to its tree and reports the
// inputs excluded before scanning.
type BatchScanResponse struct {
	Results map[string]*models.DirectoryEntry `json:"results"`
	Skipped []scanner.SkippedPath             `json:"skipped"`
}

// AssessRequest names the file to assess.
type AssessRequest struct {
	Path string `json:"path"`
}

// OrganizeRequest names the file to assess and record.
type OrganizeRequest struct {
	Path string `json:"path"`
}

// OrganizeResponse confirms the recorded organization action.
type OrganizeResponse struct {
	Assessment *models.FileAssessment `json:"assessment"`
	Action     string                 `json:"action"`
}

// BatchTagRequest carries files with their recommendations to apply.
type BatchTagRequest struct {
	Items []tags.BatchItem `json:"items"`
}

// RecommendRequest lists files needing tag recommendations.
type RecommendRequest struct {
	Paths   []string `json:"paths"`
	Workers int      `json:"workers,omitempty"`
}

// PaginatedResponse represents a paginated response
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Page       int         `json:"page"`
	PerPage    int         `json:"per_page"`
	Total      int         `json:"total"`
	TotalPages int         `json:"total_pages"`
	HasNext    bool        `json:"has_next"`
}
