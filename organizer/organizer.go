// Package organizer joins the content assessor and the rule engine into
// the single-file assessment operation shared by the CLI scan pipeline and
// the HTTP layer.
package organizer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Rumi1013/filewizard/assess"
	"github.com/Rumi1013/filewizard/models"
	"github.com/Rumi1013/filewizard/rules"
)

// ErrNotAFile reports that the target path is not a regular file.
type ErrNotAFile struct {
	Path string
}

func (e *ErrNotAFile) Error() string {
	return fmt.Sprintf("%s is not a regular file", e.Path)
}

// Organizer assesses files and classifies them against the active rules.
type Organizer struct {
	assessor *assess.Assessor
	engine   *rules.Engine
	now      func() time.Time
}

// Option configures an Organizer.
type Option func(*Organizer)

// WithClock substitutes the time source; tests pin it.
func WithClock(now func() time.Time) Option {
	return func(o *Organizer) { o.now = now }
}

func New(assessor *assess.Assessor, engine *rules.Engine, opts ...Option) *Organizer {
	o := &Organizer{
		assessor: assessor,
		engine:   engine,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// AssessFile scores one existing regular file and returns a new immutable
// assessment record. Missing paths and non-files fail; a re-assessment of
// the same path produces a fresh record rather than mutating an old one.
func (o *Organizer) AssessFile(path string) (*models.FileAssessment, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, &ErrNotAFile{Path: path}
	}
	return o.AssessWithInfo(path, info)
}

// AssessWithInfo scores a file whose stat info the caller already holds,
// as the scan pipeline does mid-walk.
func (o *Organizer) AssessWithInfo(path string, info os.FileInfo) (*models.FileAssessment, error) {
	metrics, err := o.assessor.Assess(path, info)
	if err != nil {
		return nil, err
	}

	now := o.now().UTC()
	outcome := o.engine.Evaluate(metrics, rules.StatMeta{
		Extension:    strings.ToLower(filepath.Ext(path)),
		SizeBytes:    info.Size(),
		LastModified: info.ModTime(),
	}, now)

	return &models.FileAssessment{
		FilePath:             path,
		FileType:             strings.ToLower(filepath.Ext(path)),
		QualityScore:         outcome.QualityScore,
		MonetizationEligible: outcome.MonetizationEligible,
		NeedsDeletion:        outcome.NeedsDeletion,
		Metadata:             metrics,
		LastModified:         info.ModTime().UTC(),
		SizeBytes:            info.Size(),
		AssessmentDate:       now,
	}, nil
}
