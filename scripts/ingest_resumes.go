package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"resumerag/matcher/internal/config"
	"resumerag/matcher/internal/repositories"
	"resumerag/matcher/internal/services"
)

// Bulk-ingests a directory of resume files into the configured storage
// and vector index. Intended for seeding a fresh deployment:
//
//	go run ./scripts <directory>
func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: ingest_resumes <directory>")
	}
	dir := os.Args[1]

	cfg := config.Load()

	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	var (
		resumeRepo repositories.ResumeRepository
		jobRepo    repositories.JobRepository
	)
	if cfg.Database.Backend == config.StoragePostgres {
		db, err := config.InitDatabase(cfg)
		if err != nil {
			log.Fatalf("failed to initialize database: %v", err)
		}
		resumeRepo = repositories.NewResumeRepository(db)
		jobRepo = repositories.NewJobRepository(db)
	} else {
		log.Println("warning: in-memory storage configured, ingested data will not outlive this run")
		resumeRepo = repositories.NewMemoryResumeRepository()
		jobRepo = repositories.NewMemoryJobRepository()
	}

	var embedder services.Embedder
	if cfg.Embedding.Backend == config.EmbedderGemini {
		embedder, err = services.NewGeminiEmbedder(cfg.Gemini.APIKey, cfg.Embedding.MaxInputChars)
		if err != nil {
			log.Fatalf("failed to initialize gemini embedder: %v", err)
		}
	} else {
		embedder = services.NewHashingEmbedder(cfg.Embedding.Dimension, cfg.Embedding.MaxInputChars)
	}

	var resumeIndex, jobIndex services.MatchIndex
	if cfg.Embedding.IndexBackend == config.IndexQdrant {
		resumeIndex, err = services.NewQdrantIndex(
			cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.ResumeCollection, embedder.Dimension())
		if err != nil {
			log.Fatalf("failed to initialize resume index: %v", err)
		}
		jobIndex, err = services.NewQdrantIndex(
			cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.JobCollection, embedder.Dimension())
		if err != nil {
			log.Fatalf("failed to initialize job index: %v", err)
		}
	} else {
		log.Println("warning: in-memory index configured, vectors will not outlive this run")
		resumeIndex = services.NewMemoryIndex(cfg.Qdrant.ResumeCollection)
		jobIndex = services.NewMemoryIndex(cfg.Qdrant.JobCollection)
	}

	extractor := services.NewDocumentExtractor()
	parser := services.NewProfileParser(services.NewSkillLexicon(nil))
	chunker := services.NewTextChunker()

	engine := services.NewMatchingEngine(
		resumeRepo, jobRepo,
		extractor, parser, embedder, chunker,
		resumeIndex, jobIndex,
		cfg.Embedding.MaxInputChars,
		zapLogger,
	)

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Fatalf("failed to read directory %s: %v", dir, err)
	}

	ctx := context.Background()
	successCount := 0
	failCount := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		ext := filepath.Ext(name)
		if !extractor.Supports(ext) {
			log.Printf("skipping %s: unsupported extension", name)
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Printf("failed to read %s: %v", name, err)
			failCount++
			continue
		}

		resume, err := engine.IngestResume(ctx, data, ext, name, "", "")
		if err != nil {
			log.Printf("failed to ingest %s: %v", name, err)
			failCount++
			continue
		}

		log.Printf("ingested %s as %s (%d skills)", name, resume.ID, len(resume.Skills))
		successCount++
	}

	log.Printf("ingestion finished: %d succeeded, %d failed", successCount, failCount)
	if failCount > 0 {
		os.Exit(1)
	}
}
