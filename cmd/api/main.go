package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"alfredoptarigan/autocv/internal/config"
	"alfredoptarigan/autocv/internal/handlers"
	"alfredoptarigan/autocv/internal/logger"
	"alfredoptarigan/autocv/internal/metrics"
	"alfredoptarigan/autocv/internal/repositories"
	"alfredoptarigan/autocv/internal/scoring"
	"alfredoptarigan/autocv/internal/services"
	"alfredoptarigan/autocv/internal/skills"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Logging.JSON, cfg.Logging.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if !cfg.EnvFileLoaded {
		log.Info("No .env file found, using environment variables")
	}
	log.Info("Config loaded", zap.String("env", cfg.Server.Env))

	metrics.Init()

	db, err := config.InitDatabase(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	reportRepo := repositories.NewReportRepository(db)

	storageService := services.NewStorageService(cfg.Storage.UploadPath, cfg.Storage.MaxFileSize, cfg.Storage.AllowedExtensions)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatal("Failed to create upload directory", zap.Error(err))
	}

	ctx := context.Background()

	taxonomy := skills.LoadOrDefault(cfg.Scoring.TaxonomyPath, log)
	log.Info("Skills taxonomy ready", zap.Int("skills", taxonomy.Size()))

	similarity, closeCache, err := services.NewSimilarityFromConfig(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize embeddings", zap.Error(err))
	}
	defer closeCache()

	scorer := scoring.NewScorer(taxonomy, similarity, log)
	analyzer := services.NewAnalyzerService(services.NewDocumentExtractor(), scorer)

	index := services.NewNoopReportIndex()
	var indexEmbedder services.DocumentEmbedder
	switch {
	case cfg.Qdrant.URL == "":
		log.Info("QDRANT_URL not set, similar reports disabled")
	case cfg.Gemini.APIKey == "":
		log.Warn("QDRANT_URL set without GEMINI_API_KEY, similar reports disabled")
	default:
		qdrantIndex, err := services.NewQdrantReportIndex(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection, cfg.Qdrant.VectorSize, log)
		if err != nil {
			log.Fatal("Failed to initialize Qdrant", zap.Error(err))
		}
		if err := qdrantIndex.InitCollection(ctx); err != nil {
			log.Fatal("Failed to initialize Qdrant collection", zap.Error(err))
		}
		index = qdrantIndex
		indexEmbedder = similarity
		log.Info("Similar-report index enabled", zap.String("collection", cfg.Qdrant.Collection))
	}

	evaluatorService := services.NewEvaluatorService(analyzer, reportRepo, index, indexEmbedder, log)

	scoreHandler := handlers.NewScoreHandler(evaluatorService, storageService, cfg.Storage.MaxFileSize, log)
	reportHandler := handlers.NewReportHandler(evaluatorService)

	app := fiber.New(fiber.Config{
		AppName:      "AutoCV Resume Scoring API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		// Leave headroom for the multipart envelope so oversized files reach
		// the handler and get the explicit size error.
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	handlers.RegisterRoutes(app, scoreHandler, reportHandler)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("Shutting down server")
		if err := app.Shutdown(); err != nil {
			log.Error("Server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("Server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
