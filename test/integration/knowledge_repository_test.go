package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"pos-intelligence-be/internal/entity"
	"pos-intelligence-be/internal/repository/implementation"
	"pos-intelligence-be/pkg/database"
	"pos-intelligence-be/pkg/embedding"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnowledgeRepositoryRoundTrip(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)

	repo := implementation.NewKnowledgeRepository(db)
	ctx := context.Background()

	vec := make([]float32, embedding.Dimensions)
	vec[0] = 1 // unit vector along the first axis

	doc := &entity.KnowledgeDocument{
		DocumentType: "delivery_issue",
		Title:        "Integration Test Courier Delays",
		Content:      "Test couriers face delays due to integration testing.",
		Source:       "test",
		Embedding:    vec,
	}
	require.NoError(t, repo.Create(ctx, doc))
	assert.NotEmpty(t, doc.Id)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Greater(t, count, int64(0))

	// Identical vector: cosine similarity 1, clears any floor.
	hits, err := repo.VectorSearch(ctx, vec, 0.5, 20)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "Integration Test Courier Delays", hits[0].Title)
	assert.InDelta(t, 1.0, hits[0].VectorScore, 0.01)

	lexical, err := repo.LexicalSearch(ctx, "integration courier delays", 20)
	require.NoError(t, err)
	require.NotEmpty(t, lexical)
	assert.Greater(t, lexical[0].LexicalScore, 0.0)

	// Cleanup
	db.Exec("DELETE FROM knowledge_documents WHERE id = ?", doc.Id)
}
