// Package rules applies configurable threshold rules to assessment metrics
// to decide quality tier, monetization eligibility, and deletion
// eligibility. Evaluation is a pure function of its inputs.
package rules

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Rumi1013/filewizard/models"
)

// MonetizationCriteria gates which files may earn revenue.
type MonetizationCriteria struct {
	// MinQualityScore is compared against the tier's numeric equivalent.
	MinQualityScore float64 `yaml:"min_quality_score"`

	// RequiredMetadataFields must all be present in the populated metrics
	// variant for eligibility.
	RequiredMetadataFields []string `yaml:"required_metadata_fields"`

	// EligibleExtensions lists extensions (with dot) that may monetize.
	EligibleExtensions []string `yaml:"eligible_extensions"`
}

// DeletionRules decide when a file is flagged for deletion. Age is the
// contractual trigger; non-zero size and quality thresholds are AND-ed in
// as additional conditions.
type DeletionRules struct {
	AgeThresholdDays   int     `yaml:"age_threshold_days"`
	SizeThresholdBytes int64   `yaml:"size_threshold_bytes"`
	QualityThreshold   float64 `yaml:"quality_threshold"`
}

// Rules is the process-wide organization configuration: loaded once,
// read-only during a scan/assessment cycle.
type Rules struct {
	// QualityThresholds holds per-category minimum acceptable scores.
	QualityThresholds map[models.FileCategory]float64 `yaml:"quality_thresholds"`

	Monetization MonetizationCriteria `yaml:"monetization_criteria"`
	Deletion     DeletionRules        `yaml:"deletion_rules"`
}

// Default returns the shipped rule set.
func Default() *Rules {
	return &Rules{
		QualityThresholds: map[models.FileCategory]float64{
			models.CategoryCode:     0.5,
			models.CategoryDocument: 0.5,
			models.CategoryImage:    0.4,
			models.CategoryVideo:    0.4,
		},
		Monetization: MonetizationCriteria{
			MinQualityScore:        0.75,
			RequiredMetadataFields: nil,
			EligibleExtensions: []string{
				".md", ".pdf", ".docx",
				".jpg", ".jpeg", ".png",
				".mp4", ".mov",
			},
		},
		Deletion: DeletionRules{
			AgeThresholdDays: 90,
		},
	}
}

// Load reads rules from a YAML file, filling unset sections from Default.
func Load(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	r := Default()
	if err := yaml.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("failed to parse rules file: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate rejects configurations that could never classify anything.
func (r *Rules) Validate() error {
	if r.Deletion.AgeThresholdDays < 0 {
		return fmt.Errorf("age_threshold_days must be non-negative, got %d", r.Deletion.AgeThresholdDays)
	}
	if r.Monetization.MinQualityScore < 0 || r.Monetization.MinQualityScore > 1 {
		return fmt.Errorf("min_quality_score must be in [0,1], got %f", r.Monetization.MinQualityScore)
	}
	for cat, threshold := range r.QualityThresholds {
		if threshold < 0 || threshold > 1 {
			return fmt.Errorf("quality threshold for %s must be in [0,1], got %f", cat, threshold)
		}
	}
	return nil
}

func (r *Rules) extensionEligible(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range r.Monetization.EligibleExtensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// StatMeta is the stat metadata the engine evaluates alongside metrics.
type StatMeta struct {
	Extension    string
	SizeBytes    int64
	LastModified time.Time
}

// Outcome is the rule engine's classification of one file.
type Outcome struct {
	QualityScore         models.QualityTier
	MonetizationEligible bool
	NeedsDeletion        bool
}

// Engine evaluates assessments against one rule set.
type Engine struct {
	rules *Rules
}

// NewEngine wraps a rule set; nil falls back to Default.
func NewEngine(r *Rules) *Engine {
	if r == nil {
		r = Default()
	}
	return &Engine{rules: r}
}

// Rules exposes the active configuration (read-only by convention).
func (e *Engine) Rules() *Rules { return e.rules }

// TierFor maps a category-metric average onto the ordinal tier scale.
// Files with no metrics category land on the neutral Fair tier.
func TierFor(metrics models.QualityMetrics) models.QualityTier {
	avg := metrics.Average()
	switch {
	case avg < 0:
		return models.TierFair
	case avg >= 0.8:
		return models.TierExcellent
	case avg >= 0.6:
		return models.TierGood
	case avg >= 0.4:
		return models.TierFair
	default:
		return models.TierPoor
	}
}

// Evaluate applies all rules independently; no rule short-circuits another.
func (e *Engine) Evaluate(metrics models.QualityMetrics, stat StatMeta, now time.Time) Outcome {
	tier := TierFor(metrics)

	monetizable := e.rules.extensionEligible(stat.Extension) &&
		tier.Numeric() >= e.rules.Monetization.MinQualityScore &&
		e.requiredFieldsPresent(metrics)

	return Outcome{
		QualityScore:         tier,
		MonetizationEligible: monetizable,
		NeedsDeletion:        e.needsDeletion(metrics, stat, now),
	}
}

// needsDeletion triggers on age past the threshold. Size and quality
// thresholds left at their zero values are dead configuration; when set
// they are AND-ed in as extra conditions.
func (e *Engine) needsDeletion(metrics models.QualityMetrics, stat StatMeta, now time.Time) bool {
	d := e.rules.Deletion
	if d.AgeThresholdDays <= 0 {
		return false
	}

	ageDays := now.Sub(stat.LastModified).Hours() / 24
	if ageDays <= float64(d.AgeThresholdDays) {
		return false
	}
	if d.SizeThresholdBytes > 0 && stat.SizeBytes < d.SizeThresholdBytes {
		return false
	}
	if d.QualityThreshold > 0 {
		// No-metrics files are neutral, same as TierFor, so the quality
		// gate spares them rather than treating them as worst-quality.
		avg := metrics.Average()
		if avg < 0 || avg >= d.QualityThreshold {
			return false
		}
	}
	return true
}

func (e *Engine) requiredFieldsPresent(metrics models.QualityMetrics) bool {
	required := e.rules.Monetization.RequiredMetadataFields
	if len(required) == 0 {
		return true
	}
	present := metricFieldSet(metrics)
	for _, field := range required {
		if _, ok := present[strings.ToLower(field)]; !ok {
			return false
		}
	}
	return true
}

func metricFieldSet(metrics models.QualityMetrics) map[string]struct{} {
	fields := map[string]struct{}{}
	switch {
	case metrics.Code != nil:
		fields["linting_score"] = struct{}{}
		fields["complexity"] = struct{}{}
		fields["documentation"] = struct{}{}
	case metrics.Document != nil:
		fields["readability"] = struct{}{}
		fields["formatting"] = struct{}{}
		fields["completeness"] = struct{}{}
	case metrics.Image != nil:
		fields["resolution"] = struct{}{}
		fields["color_profile"] = struct{}{}
		fields["compression"] = struct{}{}
	case metrics.Video != nil:
		fields["resolution"] = struct{}{}
		fields["bitrate"] = struct{}{}
		fields["duration"] = struct{}{}
	}
	return fields
}
