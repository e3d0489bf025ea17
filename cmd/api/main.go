package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"resumerag/matcher/internal/config"
	"resumerag/matcher/internal/handlers"
	"resumerag/matcher/internal/logger"
	"resumerag/matcher/internal/repositories"
	"resumerag/matcher/internal/services"
)

func main() {
	cfg := config.Load()

	zapLogger, err := logger.New(cfg.Server.Env, cfg.Server.Debug)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	// Repositories
	var (
		resumeRepo  repositories.ResumeRepository
		jobRepo     repositories.JobRepository
		studentRepo repositories.StudentRepository
		contactRepo repositories.ContactRepository
	)

	switch cfg.Database.Backend {
	case config.StoragePostgres:
		db, err := config.InitDatabase(cfg)
		if err != nil {
			zapLogger.Fatal("failed to initialize database", zap.Error(err))
		}
		resumeRepo = repositories.NewResumeRepository(db)
		jobRepo = repositories.NewJobRepository(db)
		studentRepo = repositories.NewStudentRepository(db)
		contactRepo = repositories.NewContactRepository(db)
		zapLogger.Info("postgres storage initialized", zap.String("db", cfg.Database.DBName))
	default:
		resumeRepo = repositories.NewMemoryResumeRepository()
		jobRepo = repositories.NewMemoryJobRepository()
		studentRepo = repositories.NewMemoryStudentRepository()
		contactRepo = repositories.NewMemoryContactRepository()
		zapLogger.Info("in-memory storage initialized")
	}

	// Services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		zapLogger.Fatal("failed to create upload directory", zap.Error(err))
	}

	extractor := services.NewDocumentExtractor()
	chunker := services.NewTextChunker()

	lexicon := services.NewSkillLexicon(nil)
	if cfg.Skills.LexiconPath != "" {
		lexicon, err = services.LoadSkillLexicon(cfg.Skills.LexiconPath)
		if err != nil {
			zapLogger.Fatal("failed to load skill lexicon", zap.Error(err))
		}
		zapLogger.Info("skill lexicon loaded",
			zap.String("path", cfg.Skills.LexiconPath),
			zap.Int("terms", len(lexicon.Terms())))
	}
	parser := services.NewProfileParser(lexicon)

	var embedder services.Embedder
	switch cfg.Embedding.Backend {
	case config.EmbedderGemini:
		embedder, err = services.NewGeminiEmbedder(cfg.Gemini.APIKey, cfg.Embedding.MaxInputChars)
		if err != nil {
			zapLogger.Fatal("failed to initialize gemini embedder", zap.Error(err))
		}
		zapLogger.Info("gemini embedder initialized")
	default:
		embedder = services.NewHashingEmbedder(cfg.Embedding.Dimension, cfg.Embedding.MaxInputChars)
		zapLogger.Info("hashing embedder initialized",
			zap.Int("dimension", embedder.Dimension()))
	}

	var resumeIndex, jobIndex services.MatchIndex
	durableIndex := false
	switch cfg.Embedding.IndexBackend {
	case config.IndexQdrant:
		resumeIndex, err = services.NewQdrantIndex(
			cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.ResumeCollection, embedder.Dimension())
		if err != nil {
			zapLogger.Fatal("failed to initialize resume index", zap.Error(err))
		}
		jobIndex, err = services.NewQdrantIndex(
			cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.JobCollection, embedder.Dimension())
		if err != nil {
			zapLogger.Fatal("failed to initialize job index", zap.Error(err))
		}
		durableIndex = true
		zapLogger.Info("qdrant indexes initialized", zap.String("url", cfg.Qdrant.URL))
	default:
		resumeIndex = services.NewMemoryIndex(cfg.Qdrant.ResumeCollection)
		jobIndex = services.NewMemoryIndex(cfg.Qdrant.JobCollection)
		zapLogger.Info("in-memory indexes initialized")
	}

	engine := services.NewMatchingEngine(
		resumeRepo,
		jobRepo,
		extractor,
		parser,
		embedder,
		chunker,
		resumeIndex,
		jobIndex,
		cfg.Embedding.MaxInputChars,
		zapLogger,
	)

	ctx := context.Background()

	// A volatile index starts empty; rebuild it from persisted records
	var worker services.ReindexWorker
	if !durableIndex {
		worker = services.NewReindexWorker(resumeRepo, jobRepo, engine, cfg.Worker.Concurrency, zapLogger)
		worker.Start(ctx)
		if err := worker.Run(ctx); err != nil {
			zapLogger.Error("startup reindex failed", zap.Error(err))
		}
	}

	// Handlers
	resumeHandler := handlers.NewResumeHandler(engine, resumeRepo, storageService, cfg.Storage.MaxFileSize, zapLogger)
	searchHandler := handlers.NewSearchHandler(engine, zapLogger)
	jobHandler := handlers.NewJobHandler(engine, jobRepo)
	studentHandler := handlers.NewStudentHandler(studentRepo)
	contactHandler := handlers.NewContactHandler(contactRepo)

	app := fiber.New(fiber.Config{
		AppName:      "ResumeRAG Matcher API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/upload-resume", resumeHandler.HandleUploadResume)
	api.Post("/search-resumes", searchHandler.HandleSearchResumes)
	api.Post("/match-jobs", searchHandler.HandleMatchJobs)
	api.Post("/add-job", jobHandler.HandleAddJob)
	api.Get("/get-resumes", resumeHandler.HandleGetResumes)
	api.Get("/get-jobs", jobHandler.HandleGetJobs)
	api.Get("/get-college-resumes", resumeHandler.HandleGetCollegeResumes)
	api.Post("/add-student", studentHandler.HandleAddStudent)
	api.Get("/get-students", studentHandler.HandleGetStudents)
	api.Post("/contact-admin", contactHandler.HandleContactAdmin)
	api.Post("/analyze-resume", resumeHandler.HandleAnalyzeResume)
	api.Get("/list-uploaded-files", resumeHandler.HandleListUploadedFiles)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zapLogger.Info("shutting down server")
		if worker != nil {
			worker.Stop()
		}
		if err := app.Shutdown(); err != nil {
			zapLogger.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zapLogger.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zapLogger.Fatal("failed to start server", zap.Error(err))
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}
