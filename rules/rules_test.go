package rules

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rumi1013/filewizard/models"
)

func docMetrics(score float64) models.QualityMetrics {
	return models.QualityMetrics{
		Category: models.CategoryDocument,
		Document: &models.DocumentMetrics{
			Readability:  score,
			Formatting:   score,
			Completeness: score,
		},
	}
}

func TestTierForCutPoints(t *testing.T) {
	cases := []struct {
		avg  float64
		want models.QualityTier
	}{
		{0.95, models.TierExcellent},
		{0.81, models.TierExcellent},
		{0.79, models.TierGood},
		{0.61, models.TierGood},
		{0.59, models.TierFair},
		{0.41, models.TierFair},
		{0.39, models.TierPoor},
		{0.0, models.TierPoor},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TierFor(docMetrics(tc.avg)), "avg %.2f", tc.avg)
	}
}

func TestTierForNoCategoryIsNeutral(t *testing.T) {
	metrics := models.QualityMetrics{Category: models.CategoryNone}
	assert.Equal(t, models.TierFair, TierFor(metrics))
}

func TestEvaluateDeterministic(t *testing.T) {
	engine := NewEngine(nil)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	stat := StatMeta{
		Extension:    ".md",
		SizeBytes:    2048,
		LastModified: now.AddDate(0, 0, -10),
	}
	metrics := docMetrics(0.85)

	first := engine.Evaluate(metrics, stat, now)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, engine.Evaluate(metrics, stat, now))
	}
}

func TestEvaluateMonetization(t *testing.T) {
	engine := NewEngine(nil)
	now := time.Now()
	fresh := StatMeta{Extension: ".md", LastModified: now}

	// Excellent .md: eligible extension and tier numeric 1.0 >= 0.75.
	outcome := engine.Evaluate(docMetrics(0.9), fresh, now)
	assert.Equal(t, models.TierExcellent, outcome.QualityScore)
	assert.True(t, outcome.MonetizationEligible)

	// Poor quality fails the score gate.
	outcome = engine.Evaluate(docMetrics(0.1), fresh, now)
	assert.False(t, outcome.MonetizationEligible)

	// Ineligible extension fails regardless of quality.
	outcome = engine.Evaluate(docMetrics(0.9), StatMeta{Extension: ".dat", LastModified: now}, now)
	assert.False(t, outcome.MonetizationEligible)
}

func TestEvaluateRequiredMetadataFields(t *testing.T) {
	r := Default()
	r.Monetization.RequiredMetadataFields = []string{"readability", "formatting"}
	engine := NewEngine(r)
	now := time.Now()

	outcome := engine.Evaluate(docMetrics(0.9), StatMeta{Extension: ".md", LastModified: now}, now)
	assert.True(t, outcome.MonetizationEligible)

	// Image metrics lack the required document fields.
	imageMetrics := models.QualityMetrics{
		Category: models.CategoryImage,
		Image:    &models.ImageMetrics{Resolution: 1, ColorProfile: 1, Compression: 1},
	}
	outcome = engine.Evaluate(imageMetrics, StatMeta{Extension: ".png", LastModified: now}, now)
	assert.False(t, outcome.MonetizationEligible)
}

func TestEvaluateDeletionByAge(t *testing.T) {
	r := Default()
	r.Deletion.AgeThresholdDays = 90
	engine := NewEngine(r)
	now := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	old := StatMeta{Extension: ".txt", LastModified: now.AddDate(0, 0, -120)}
	young := StatMeta{Extension: ".txt", LastModified: now.AddDate(0, 0, -30)}

	assert.True(t, engine.Evaluate(docMetrics(0.9), old, now).NeedsDeletion,
		"120 days old with a 90-day threshold")
	assert.False(t, engine.Evaluate(docMetrics(0.9), young, now).NeedsDeletion,
		"30 days old with a 90-day threshold")
}

func TestEvaluateDeletionMonotonicInAge(t *testing.T) {
	engine := NewEngine(nil)
	now := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	metrics := docMetrics(0.5)

	// For files differing only in age, the older one is deletion-eligible
	// whenever the younger one is.
	for days := 0; days <= 365; days += 5 {
		younger := engine.Evaluate(metrics, StatMeta{Extension: ".txt", LastModified: now.AddDate(0, 0, -days)}, now)
		older := engine.Evaluate(metrics, StatMeta{Extension: ".txt", LastModified: now.AddDate(0, 0, -days-30)}, now)
		if younger.NeedsDeletion {
			assert.True(t, older.NeedsDeletion, "age %d days", days)
		}
	}
}

func TestEvaluateDeletionExtraThresholdsAreANDed(t *testing.T) {
	r := Default()
	r.Deletion.AgeThresholdDays = 90
	r.Deletion.SizeThresholdBytes = 1 << 20
	r.Deletion.QualityThreshold = 0.4
	engine := NewEngine(r)
	now := time.Now()

	oldSmallGood := StatMeta{Extension: ".txt", SizeBytes: 100, LastModified: now.AddDate(0, 0, -120)}
	oldBigGood := StatMeta{Extension: ".txt", SizeBytes: 2 << 20, LastModified: now.AddDate(0, 0, -120)}

	// Old but under the size threshold: kept.
	assert.False(t, engine.Evaluate(docMetrics(0.9), oldSmallGood, now).NeedsDeletion)
	// Old and big but above the quality threshold: kept.
	assert.False(t, engine.Evaluate(docMetrics(0.9), oldBigGood, now).NeedsDeletion)
	// Old, big, and poor: deleted.
	assert.True(t, engine.Evaluate(docMetrics(0.1), oldBigGood, now).NeedsDeletion)
}

func TestEvaluateDeletionSparesUncategorizedUnderQualityGate(t *testing.T) {
	r := Default()
	r.Deletion.AgeThresholdDays = 90
	r.Deletion.QualityThreshold = 0.4
	engine := NewEngine(r)
	now := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	old := StatMeta{Extension: ".dat", LastModified: now.AddDate(0, 0, -120)}

	// Files without metrics are neutral, like their Fair tier, so the
	// quality gate spares them instead of scoring them worst.
	assert.False(t, engine.Evaluate(models.QualityMetrics{}, old, now).NeedsDeletion)

	// Without a quality gate, age alone still triggers.
	r.Deletion.QualityThreshold = 0
	assert.True(t, NewEngine(r).Evaluate(models.QualityMetrics{}, old, now).NeedsDeletion)
}

func TestEvaluateDeletionDisabledThreshold(t *testing.T) {
	r := Default()
	r.Deletion.AgeThresholdDays = 0
	engine := NewEngine(r)
	now := time.Now()

	ancient := StatMeta{Extension: ".txt", LastModified: now.AddDate(-10, 0, 0)}
	assert.False(t, engine.Evaluate(docMetrics(0.1), ancient, now).NeedsDeletion)
}

func TestLoadRules(t *testing.T) {
	content := `quality_thresholds:
  code: 0.7
monetization_criteria:
  min_quality_score: 0.5
  eligible_extensions: [".md", ".png"]
deletion_rules:
  age_threshold_days: 30
`
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.7, r.QualityThresholds[models.CategoryCode])
	assert.Equal(t, 0.5, r.Monetization.MinQualityScore)
	assert.Equal(t, []string{".md", ".png"}, r.Monetization.EligibleExtensions)
	assert.Equal(t, 30, r.Deletion.AgeThresholdDays)
}

func TestLoadRulesRejectsInvalid(t *testing.T) {
	content := `deletion_rules:
  age_threshold_days: -1
`
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRulesMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
