package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/rafsal3/VideoGen-MVP-backend/pkg/validator"

	"github.com/rafsal3/VideoGen-MVP-backend/internal/adapter/handler"
	"github.com/rafsal3/VideoGen-MVP-backend/internal/infrastructure/cache"
	"github.com/rafsal3/VideoGen-MVP-backend/internal/infrastructure/media"
	"github.com/rafsal3/VideoGen-MVP-backend/internal/infrastructure/storage"
	"github.com/rafsal3/VideoGen-MVP-backend/internal/usecase/assets"
	"github.com/rafsal3/VideoGen-MVP-backend/internal/usecase/audio"
	"github.com/rafsal3/VideoGen-MVP-backend/internal/usecase/pipeline"
	"github.com/rafsal3/VideoGen-MVP-backend/internal/usecase/script"
	"github.com/rafsal3/VideoGen-MVP-backend/internal/usecase/transcript"
	"github.com/rafsal3/VideoGen-MVP-backend/internal/usecase/video"
	pkgai "github.com/rafsal3/VideoGen-MVP-backend/pkg/ai"
	"github.com/rafsal3/VideoGen-MVP-backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "X-Request-ID"},
	}))

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	// Initialize artifact workspace
	log.Println("📦 Preparing artifact workspace...")
	store, err := storage.NewLocalStore(cfg.Server.OutputDir, cfg.Server.StaticPrefix)
	if err != nil {
		log.Fatalf("Failed to prepare workspace: %v", err)
	}

	// Initialize object storage publisher (optional)
	var publisher *storage.MinIOPublisher
	if cfg.Storage.Enabled {
		log.Println("📦 Connecting to object storage...")
		publisher, err = storage.NewMinIOPublisher(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to connect to object storage: %v", err)
		}
	} else {
		log.Println("📦 Object storage disabled, serving artifacts locally")
	}

	// Initialize AI clients
	log.Println("🤖 Initializing AI clients...")
	geminiClient := pkgai.NewGeminiClient(&cfg.Gemini)
	elevenClient := pkgai.NewElevenLabsClient(&cfg.ElevenLabs)
	unsplashClient := pkgai.NewUnsplashClient(&cfg.Unsplash)
	asmClient := pkgai.NewAssemblyAIClient(&cfg.Assembly)

	// Initialize media engine
	log.Println("🎬 Initializing media engine...")
	engine := media.NewFFmpeg(cfg.Pipeline.FFmpegBin, cfg.Pipeline.FFprobeBin, logger)

	// Initialize run registry
	runs := cache.NewRunStore(time.Hour)

	// Initialize pipeline services
	log.Println("⚙️  Initializing pipeline services...")
	scriptService := script.NewService(geminiClient, logger)
	audioService := audio.NewService(elevenClient, engine, store, logger)

	var assetPublisher assets.Publisher
	var videoPublisher video.Publisher
	if publisher != nil {
		assetPublisher = publisher
		videoPublisher = publisher
	}
	assetService := assets.NewService(geminiClient, unsplashClient, store, assetPublisher, cfg.Pipeline.ImageSearchPacing, logger)
	transcriptService := transcript.NewService(asmClient, logger)
	videoService := video.NewService(engine, store, videoPublisher, logger)
	autopilotService := pipeline.NewService(scriptService, audioService, assetService, transcriptService, videoService, runs, cfg.Pipeline.RunTimeout, logger)

	// Initialize pipeline controller
	log.Println("🚀 Initializing pipeline controller...")
	pipelineController := handler.NewPipeline(scriptService, audioService, assetService, transcriptService, videoService, autopilotService, runs, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, pipelineController)
	router.Setup(e)

	// Start server
	go func() {
		addr := cfg.GetServerAddr()
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
