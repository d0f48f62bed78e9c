package main

import (
	"context"
	"log"
	"os"

	"pos-intelligence-be/internal/config"
	"pos-intelligence-be/internal/entity"
	"pos-intelligence-be/internal/repository/implementation"
	"pos-intelligence-be/pkg/database"
	"pos-intelligence-be/pkg/embedding"
	"pos-intelligence-be/pkg/knowledge"
)

// Bulk-loads tagged document files straight into the knowledge store,
// bypassing the API. Usage: ingest <file> [<file>...]
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: ingest <file> [<file>...]")
	}

	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	embedder := embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	repo := implementation.NewKnowledgeRepository(db)
	ctx := context.Background()

	total := 0
	for _, path := range os.Args[1:] {
		raw, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("Error: Failed to read %s: %v", path, err)
		}

		records := knowledge.ParseDocuments(string(raw))
		log.Printf("Processing %s: %d documents", path, len(records))

		docs := make([]*entity.KnowledgeDocument, 0, len(records))
		for _, rec := range records {
			embedded, err := embedder.Generate(rec.EmbeddingText(), "RETRIEVAL_DOCUMENT")
			if err != nil {
				log.Fatalf("Error: Failed to embed %q: %v", rec.Title, err)
			}
			docs = append(docs, &entity.KnowledgeDocument{
				DocumentType: rec.DocumentType,
				Title:        rec.Title,
				Content:      rec.Content,
				Source:       rec.Source,
				Embedding:    embedded.Embedding.Values,
			})
		}

		if err := repo.CreateBulk(ctx, docs); err != nil {
			log.Fatalf("Error: Failed to insert documents from %s: %v", path, err)
		}
		total += len(docs)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		log.Fatalf("Error: Failed to count documents: %v", err)
	}
	log.Printf("✅ Ingested %d documents (%d total in store)", total, count)
}
