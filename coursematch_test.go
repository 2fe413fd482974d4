package coursematch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/coursematch/ai/mock"
	"github.com/poiesic/coursematch/core"
	"github.com/poiesic/coursematch/ingestion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCatalog(t *testing.T) {
	t.Run("on disk", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "index")
		provider := mock.NewMockProvider()
		c, err := OpenCatalog(dir, WithProvider(provider))
		require.NoError(t, err)
		require.NotNil(t, c)

		assert.NotNil(t, c.Engine())
		assert.NotNil(t, c.Retriever())
		assert.NotNil(t, c.Extractor())
		assert.NotNil(t, c.CourseRepository())
		assert.NotNil(t, c.CheckpointRepository())
		assert.Equal(t, dir, c.Path())

		require.NoError(t, c.Close())
		assert.True(t, provider.Closed())
	})

	t.Run("in memory", func(t *testing.T) {
		c, err := OpenCatalog("", WithInMemory(), WithProvider(mock.NewMockProvider()))
		require.NoError(t, err)
		defer c.Close()
		assert.Equal(t, "", c.Path())
	})

	t.Run("error with invalid path", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		require.NoError(t, os.WriteFile(tmpFile, []byte("test"), 0644))

		c, err := OpenCatalog(tmpFile, WithProvider(mock.NewMockProvider()))
		assert.Error(t, err)
		assert.Nil(t, c)
	})
}

func TestCatalog_IngestAndRecommend(t *testing.T) {
	c, err := OpenCatalog("", WithInMemory(), WithProvider(mock.NewMockProviderWithServices(mock.NewMockEmbedder(), nil)))
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	pipeline, err := c.NewIngestionPipeline()
	require.NoError(t, err)
	defer pipeline.Release()

	result, err := pipeline.Ingest(ctx, ingestion.SampleSource, ingestion.SampleCatalog(), false)
	require.NoError(t, err)
	assert.Equal(t, len(ingestion.SampleCourses()), result.Indexed)

	count, err := c.Retriever().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(ingestion.SampleCourses()), count)

	req := core.NewRecommendationRequest("I want to be a backend engineer and I'm interested in Node.js", "backend", "nodejs")
	resp, err := c.Engine().Recommend(ctx, req)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Recommendations)
	assert.LessOrEqual(t, len(resp.Recommendations), req.MaxResults)
	assert.Equal(t, req.UserQuery, resp.Query)
}
