package tags

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rumi1013/filewizard/models"
)

// fakeStore is an in-memory Store with per-pair mapping uniqueness and an
// optional failure injection by tag name.
type fakeStore struct {
	tags     map[string]*models.Tag
	mappings map[string]int
	failName string
	nextID   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tags:     map[string]*models.Tag{},
		mappings: map[string]int{},
	}
}

func (s *fakeStore) GetOrCreate(ctx context.Context, rec models.TagRecommendation) (*models.Tag, error) {
	if rec.Name == s.failName {
		return nil, errors.New("injected store failure")
	}
	if tag, ok := s.tags[rec.Name]; ok {
		return tag, nil
	}
	s.nextID++
	tag := &models.Tag{
		ID:    fmt.Sprintf("tag-%d", s.nextID),
		Name:  rec.Name,
		Emoji: rec.Emoji,
		Color: rec.Color,
	}
	s.tags[rec.Name] = tag
	return tag, nil
}

func (s *fakeStore) EnsureMapping(ctx context.Context, fileID, tagID string) error {
	key := fileID + "\x00" + tagID
	if _, ok := s.mappings[key]; !ok {
		s.mappings[key] = 0
	}
	s.mappings[key]++
	return nil
}

func (s *fakeStore) mappingCount() int { return len(s.mappings) }

func rec(name string) models.TagRecommendation {
	return models.TagRecommendation{Name: name, Emoji: "x", Color: "#ffffff"}
}

func TestApplyBatch(t *testing.T) {
	store := newFakeStore()
	applier := NewApplier(store)

	items := []BatchItem{
		{FilePath: "/w/a.md", Recommendations: []models.TagRecommendation{rec("document"), rec("draft")}},
		{FilePath: "/w/b.go", Recommendations: []models.TagRecommendation{rec("source-code")}},
	}

	results, err := applier.ApplyBatch(context.Background(), items)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "/w/a.md", results[0].FilePath)
	assert.Len(t, results[0].Tags, 2)
	assert.Len(t, results[1].Tags, 1)
	assert.Equal(t, 3, store.mappingCount())
}

func TestApplyBatchIdempotentMapping(t *testing.T) {
	store := newFakeStore()
	applier := NewApplier(store)

	items := []BatchItem{
		{FilePath: "/w/a.md", Recommendations: []models.TagRecommendation{rec("document")}},
	}

	_, err := applier.ApplyBatch(context.Background(), items)
	require.NoError(t, err)
	_, err = applier.ApplyBatch(context.Background(), items)
	require.NoError(t, err)

	// Applying the same (file, tag) pair twice leaves exactly one mapping.
	assert.Equal(t, 1, store.mappingCount())
	assert.Len(t, store.tags, 1)
}

func TestApplyBatchToleratesPartialFailure(t *testing.T) {
	store := newFakeStore()
	store.failName = "broken"
	applier := NewApplier(store)

	items := []BatchItem{
		{FilePath: "/w/a.md", Recommendations: []models.TagRecommendation{rec("broken"), rec("document")}},
		{FilePath: "/w/b.md", Recommendations: []models.TagRecommendation{rec("draft")}},
	}

	results, err := applier.ApplyBatch(context.Background(), items)
	require.Error(t, err, "partial failures are reported alongside results")
	require.Len(t, results, 2)

	// The failed recommendation is excluded; the rest still applied.
	require.Len(t, results[0].Tags, 1)
	assert.Equal(t, "document", results[0].Tags[0].Name)
	require.Len(t, results[1].Tags, 1)
	assert.Equal(t, "draft", results[1].Tags[0].Name)
}

func TestApplyBatchEmpty(t *testing.T) {
	applier := NewApplier(newFakeStore())

	results, err := applier.ApplyBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestExtensionRecommender(t *testing.T) {
	recommender := ExtensionRecommender{}

	recs, err := recommender.RecommendTags(context.Background(), "/w/main.go", nil)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "source-code", recs[0].Name)

	// Already-present tags are not re-recommended.
	existing := []*models.Tag{{ID: "t1", Name: "source-code"}}
	recs, err = recommender.RecommendTags(context.Background(), "/w/main.go", existing)
	require.NoError(t, err)
	assert.Empty(t, recs)

	// Unknown extensions get nothing.
	recs, err = recommender.RecommendTags(context.Background(), "/w/blob.dat", nil)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestBatchRecommendPreservesOrder(t *testing.T) {
	filePaths := []string{"/w/a.go", "/w/b.md", "/w/c.png", "/w/d.mp4", "/w/e.dat"}

	results := BatchRecommend(context.Background(), ExtensionRecommender{}, filePaths, 2)
	require.Len(t, results, len(filePaths))
	for i, path := range filePaths {
		assert.Equal(t, path, results[i].FilePath)
	}
	assert.Equal(t, "source-code", results[0].Recommendations[0].Name)
	assert.Empty(t, results[4].Recommendations)
}

type failingRecommender struct{}

func (failingRecommender) RecommendTags(ctx context.Context, filePath string, existing []*models.Tag) ([]models.TagRecommendation, error) {
	if filePath == "/w/bad.md" {
		return nil, errors.New("upstream rate limited")
	}
	return []models.TagRecommendation{rec("ok")}, nil
}

func TestBatchRecommendToleratesFailures(t *testing.T) {
	filePaths := []string{"/w/good.md", "/w/bad.md", "/w/also-good.md"}

	results := BatchRecommend(context.Background(), failingRecommender{}, filePaths, 1)
	require.Len(t, results, 3)
	assert.Empty(t, results[0].Error)
	assert.NotEmpty(t, results[1].Error)
	assert.Empty(t, results[1].Recommendations)
	assert.Empty(t, results[2].Error)
	require.Len(t, results[2].Recommendations, 1)
}
